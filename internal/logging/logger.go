// Package logging provides structured logging configuration using zap.
//
// Logs go to stderr so that nothing but the caller's own output reaches
// stdout. Rejected rows are logged by line number and reason only; their
// content is recorded in bad_rows.txt.
package logging

import (
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// Setup configures the global logger based on level and format. w is
// normally stderr.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(w io.Writer, level, format string) *zap.Logger {
	logger = New(zapcore.Lock(zapcore.AddSync(w)), level, format)
	return logger
}

// New builds a logger writing to w.
func New(w zapcore.WriteSyncer, level, format string) *zap.Logger {
	var enc zapcore.Encoder
	if strings.ToLower(format) == "json" {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "time"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		cfg.EncodeCaller = nil
		cfg.CallerKey = ""
		enc = zapcore.NewConsoleEncoder(cfg)
	}
	return zap.New(zapcore.NewCore(enc, w, parseLevel(level)))
}

// parseLevel converts a string log level to a zap level.
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// L returns the global logger. Before Setup it discards everything.
func L() *zap.Logger { return logger }

// WithFields returns a logger with additional structured fields.
//
// Usage:
//
//	runLog := logging.WithFields(zap.String("input", path))
//	runLog.Info("conversion started")
func WithFields(fields ...zap.Field) *zap.Logger {
	return logger.With(fields...)
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func Sync() {
	_ = logger.Sync()
}
