// Package config provides centralized configuration management for the converter.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
// Command-line flags are applied on top by cmd/mrssbulk.
package config

import (
	"fmt"
	"strings"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Convert ConvertConfig
	Logging LoggingConfig
}

// ConvertConfig holds conversion and output settings.
type ConvertConfig struct {
	// BaseName is the output file stem (default: bulk_upload)
	BaseName string `env:"MRSS_BASE_NAME" default:"bulk_upload"`

	// OutDir is the directory for batch files and bad_rows.txt (default: working directory)
	OutDir string `env:"MRSS_OUTDIR" envAlt:"MRSS_OUT_DIR"`

	// SplitSize is the maximum number of items per output file (default: 200)
	SplitSize int `env:"MRSS_SPLIT_SIZE" default:"200"`

	// Pretty indents output documents with tabs (default: false)
	Pretty bool `env:"MRSS_PRETTY" default:"false"`

	// KeepGoing drops batches that fail to serialize instead of aborting (default: false)
	KeepGoing bool `env:"MRSS_KEEP_GOING" default:"false"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// String returns a readable representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	fmt.Fprintf(&b, "Convert: {BaseName: %q, OutDir: %q, SplitSize: %d, Pretty: %v, KeepGoing: %v}, ",
		c.Convert.BaseName, c.Convert.OutDir, c.Convert.SplitSize, c.Convert.Pretty, c.Convert.KeepGoing)
	fmt.Fprintf(&b, "Logging: {Level: %q, Format: %q}", c.Logging.Level, c.Logging.Format)
	b.WriteString("}")
	return b.String()
}
