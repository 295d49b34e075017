package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/desertthunder/playdl/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	if err := shared.LoadEnv(".env"); err != nil {
		logger.Warn("ignoring .env", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := NewRunner(RunnerOpts{Logger: logger})
	app := rootCommand(runner)

	if err := app.Run(ctx, os.Args); err != nil {
		if errors.Is(err, shared.ErrMissingArgument) {
			logger.Error(err)
			os.Exit(1)
		}
		logger.Error("run failed", "error", err)
	}
}
