package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dukex/sonda/pkg/cmd"
	"github.com/dukex/sonda/pkg/config"
	"github.com/dukex/sonda/pkg/execution"
	"github.com/dukex/sonda/pkg/log"
	"github.com/dukex/sonda/pkg/otelhelper"
	"github.com/dukex/sonda/pkg/planner"
	"github.com/dukex/sonda/pkg/report"
	cli "github.com/urfave/cli/v3"
)

func AskCommand() *cli.Command {
	return &cli.Command{
		Name:      "ask",
		Aliases:   []string{"a"},
		Usage:     "Plan and execute a research question",
		ArgsUsage: "<question>",
		Flags: append(commonFlags(),
			&cli.BoolFlag{
				Name:  "save-report",
				Usage: "Persist the execution report as JSON",
			},
			&cli.BoolFlag{
				Name:    "trace",
				Usage:   "Export OpenTelemetry spans for this execution",
				Sources: cli.EnvVars("SONDA_TRACE"),
			},
		),
		Action: func(ctx context.Context, command *cli.Command) error {
			question := strings.TrimSpace(strings.Join(command.Args().Slice(), " "))
			if question == "" {
				return errors.New("a question is required")
			}

			cfg, logger, err := loadConfig(command)
			if err != nil {
				return err
			}

			responders, err := cmd.BuildResponders(ctx, cfg, logger)
			if err != nil {
				return err
			}

			eventBus := cmd.NewEventBus(logger)
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.Error("Failed to close event bus", "error", err)
				}
			}()

			engine := execution.NewEngine(responders, logger).
				WithTerminationPolicy(cfg.Termination).
				WithEventBus(eventBus)

			if command.Bool("trace") {
				tracer, err := otelhelper.NewTracer(ctx, "sonda")
				if err != nil {
					return fmt.Errorf("failed to initialize tracer: %w", err)
				}

				engine = engine.WithTracer(tracer)
			}

			plan := planner.NewPlanner(responders.Planning, logger).CreatePlan(ctx, question)
			result := engine.Execute(ctx, plan)

			fmt.Println(report.Render(&result))

			if command.Bool("save-report") {
				writer := report.NewWriter(cfg.Reports.Dir, logger)

				path, err := writer.Save(&result)
				if err != nil {
					return err
				}

				fmt.Println("Report saved to", path)
			}

			return nil
		},
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
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
	}
}

func loadConfig(command *cli.Command) (*config.Config, *slog.Logger, error) {
	cfg := config.Default()

	if path := command.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, nil, err
		}

		cfg = loaded
	}

	if level := command.String("log-level"); level != "" {
		cfg.LogLevel = level
	}

	log.Setup(cfg.LogLevel)

	return cfg, log.WithModule("cli"), nil
}
