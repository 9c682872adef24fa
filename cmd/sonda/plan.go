package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dukex/sonda/pkg/cmd"
	"github.com/dukex/sonda/pkg/planner"
	cli "github.com/urfave/cli/v3"
)

func PlanCommand() *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Aliases:   []string{"p"},
		Usage:     "Build and print the execution plan for a question without running it",
		ArgsUsage: "<question>",
		Flags:     commonFlags(),
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

			plan := planner.NewPlanner(responders.Planning, logger).CreatePlan(ctx, question)

			encoded, err := json.MarshalIndent(plan, "", "  ")
			if err != nil {
				return err
			}

			fmt.Println(string(encoded))

			return nil
		},
	}
}
