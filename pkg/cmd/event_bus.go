// Package cmd wires shared infrastructure for the sonda binaries.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/dukex/sonda/pkg/channels/gochannel"
	"github.com/dukex/sonda/pkg/eventbus"
)

// NewEventBus creates the in-process event bus the binaries share.
func NewEventBus(logger *slog.Logger) eventbus.EventBus {
	pub, sub, err := gochannel.CreateChannel(watermill.NewSlogLogger(logger))
	if err != nil {
		panic(fmt.Errorf("failed to create in-memory pub/sub: %w", err))
	}

	return eventbus.NewWatermillEventBus(pub, sub)
}
