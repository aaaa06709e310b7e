package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"chinook/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config.toml, using defaults", "error", err)
		}
	}

	if config.Log.Level != "" {
		if level, err := log.ParseLevel(config.Log.Level); err == nil {
			shared.SetLogLevel(logger, level)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})
	defer runner.Close()

	app := &cli.Command{
		Name:     "chinook",
		Usage:    "Browse the music catalog and manage playlists & favorites",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
