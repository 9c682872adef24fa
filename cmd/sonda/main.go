// Package main provides the sonda command line interface.
package main

import (
	"context"
	"os"

	"github.com/dukex/sonda/pkg/log"
	cli "github.com/urfave/cli/v3"
)

func main() {
	logger := log.WithModule("cli")

	cmd := &cli.Command{
		Name:                  "sonda",
		Usage:                 "Answer research questions through planned, multi-step retrieval",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			AskCommand(),
			PlanCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
