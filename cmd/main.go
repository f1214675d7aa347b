package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lofting/spotauth/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	if os.Getenv("SPOTAUTH_DEBUG") != "" {
		shared.SetLogLevel(logger, log.DebugLevel)
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	runner := NewRunner(RunnerOpts{Config: config, Logger: logger})

	app := &cli.Command{
		Name:     "spotauth",
		Usage:    "OAuth2 login & refresh helper for the Spotify desktop widget",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
