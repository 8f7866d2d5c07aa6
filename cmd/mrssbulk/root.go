package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JonMunkholm/mrssbulk/internal/config"
	"github.com/JonMunkholm/mrssbulk/internal/core"
	"github.com/JonMunkholm/mrssbulk/internal/logging"
)

// flags holds command-line overrides. A flag only overrides the environment
// when it was set explicitly.
type flags struct {
	baseName  string
	outDir    string
	splitSize int
	pretty    bool
	keepGoing bool
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "mrssbulk <csvfile>",
		Short: "Convert ';'-delimited media records into bulk-upload MRSS XML files",
		Long: `mrssbulk reads a ';'-delimited file whose first row names the columns
mediaType, name, description, downloadUrl, userId, tags, categories,
startDate and endDate (in any order, extra columns allowed), and writes
the rows as bulk-upload XML files of at most --split-size items each:

  <outdir>/<base-name>_001.xml, <base-name>_002.xml, ...

Rows that are not valid UTF-8 are appended to <outdir>/bad_rows.txt.

Settings can also come from the environment or a .env file:
  MRSS_BASE_NAME, MRSS_OUTDIR, MRSS_SPLIT_SIZE, MRSS_PRETTY,
  MRSS_KEEP_GOING, LOG_LEVEL, LOG_FORMAT`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyFlags(cmd, &f, cfg)
			if err := cfg.Validate(); err != nil {
				return errors.Wrap(err, "invalid flags")
			}

			log := logging.Setup(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
			log.Debug("configuration loaded", zap.Stringer("config", cfg))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, err = convertFile(ctx, args[0], cfg)
			return err
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.baseName, "base-name", "n", core.DefaultBaseName, "output file base name")
	fs.StringVarP(&f.outDir, "outdir", "d", "", "directory for all output files (created if missing)")
	fs.IntVarP(&f.splitSize, "split-size", "s", core.DefaultSplitSize, "maximum number of items in a single bulk file")
	fs.BoolVar(&f.pretty, "pretty", false, "indent output XML with tabs")
	fs.BoolVar(&f.keepGoing, "keep-going", false, "drop batches that fail to serialize instead of aborting")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "text", "log format: text or json")

	return cmd
}

// applyFlags copies explicitly set flags over the environment configuration.
func applyFlags(cmd *cobra.Command, f *flags, cfg *config.Config) {
	set := cmd.Flags().Changed
	if set("base-name") {
		cfg.Convert.BaseName = f.baseName
	}
	if set("outdir") {
		cfg.Convert.OutDir = f.outDir
	}
	if set("split-size") {
		cfg.Convert.SplitSize = f.splitSize
	}
	if set("pretty") {
		cfg.Convert.Pretty = f.pretty
	}
	if set("keep-going") {
		cfg.Convert.KeepGoing = f.keepGoing
	}
	if set("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if set("log-format") {
		cfg.Logging.Format = f.logFormat
	}
}

// convertFile prepares the output directory and runs one conversion of path.
func convertFile(ctx context.Context, path string, cfg *config.Config) (*core.Result, error) {
	if dir := cfg.Convert.OutDir; dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "create output directory %s", dir)
		}
	}

	in, err := os.Open(path)
	if err != nil {
		return nil, errors.WithHint(errors.Wrap(err, "open input"),
			"pass the path of a ';'-delimited file as the only argument")
	}
	defer in.Close()

	conv := core.NewConverter(core.Options{
		BaseName:  cfg.Convert.BaseName,
		OutDir:    cfg.Convert.OutDir,
		SplitSize: cfg.Convert.SplitSize,
		Pretty:    cfg.Convert.Pretty,
		KeepGoing: cfg.Convert.KeepGoing,
		Logger:    logging.WithFields(zap.String("input", path)),
	})
	return conv.Run(ctx, in)
}
