package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/JonMunkholm/mrssbulk/internal/core"
	"github.com/JonMunkholm/mrssbulk/internal/logging"
)

func main() {
	// Load .env file if it exists; variables already set in the environment win.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		logging.L().Debug("run failed", zap.String("error", fmt.Sprintf("%+v", err)))
		logging.Sync()
		fmt.Fprintln(os.Stderr, "Error:", core.FormatUserError(err))
		fmt.Fprintln(os.Stderr, "Detail:", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
	logging.Sync()
}
