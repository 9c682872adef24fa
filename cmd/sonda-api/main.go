// Package main provides the sonda API server.
package main

import (
	"context"
	"os"

	"github.com/dukex/sonda/pkg/cmd"
	"github.com/dukex/sonda/pkg/config"
	"github.com/dukex/sonda/pkg/log"
	cli "github.com/urfave/cli/v3"
)

func main() {
	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "sonda-api",
		Usage:                 "Serve research question answering over HTTP",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the sonda.yaml configuration file",
				Sources: cli.EnvVars("SONDA_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			cfg := config.Default()

			if path := command.String("config"); path != "" {
				loaded, err := config.Load(path)
				if err != nil {
					return err
				}

				cfg = loaded
			}

			if level := command.String("log-level"); level != "" {
				cfg.LogLevel = level
			}

			if port := command.Int("port"); port != 0 {
				cfg.API.Port = port
			}

			log.Setup(cfg.LogLevel)

			logger.InfoContext(ctx, "Initializing sonda API")

			responders, err := cmd.BuildResponders(ctx, cfg, logger)
			if err != nil {
				return err
			}

			eventBus := cmd.NewEventBus(logger)
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			api := NewAPI(logger, cfg, responders, eventBus)

			return api.Start(cfg.API.Port)
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		logger.Error("Failed to start API server", "error", err)
		os.Exit(1)
	}
}
