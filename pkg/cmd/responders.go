package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukex/sonda/pkg/config"
	"github.com/dukex/sonda/pkg/knowledge"
	"github.com/dukex/sonda/pkg/protocol"
	"github.com/dukex/sonda/pkg/responders"
	"github.com/dukex/sonda/pkg/search"
)

// BuildResponders assembles the responder set from configuration: one
// shared model, web and news searchers, and the knowledge base client,
// wrapped in a Redis cache when one is configured.
func BuildResponders(ctx context.Context, cfg *config.Config, logger *slog.Logger) (protocol.Responders, error) {
	model, err := responders.NewModel(cfg.Model)
	if err != nil {
		return protocol.Responders{}, fmt.Errorf("failed to initialize model: %w", err)
	}

	web, err := search.NewWebSearcher()
	if err != nil {
		return protocol.Responders{}, fmt.Errorf("failed to initialize web search: %w", err)
	}

	news := search.NewNewsSearcher()

	knowledgeResponder, err := buildKnowledge(ctx, cfg, logger)
	if err != nil {
		return protocol.Responders{}, err
	}

	return protocol.Responders{
		Research:  responders.NewResearch(model, web, news, logger),
		Knowledge: knowledgeResponder,
		Synthesis: responders.NewSynthesis(model),
		Planning:  responders.NewPlanning(model),
	}, nil
}

func buildKnowledge(ctx context.Context, cfg *config.Config, logger *slog.Logger) (protocol.KnowledgeResponder, error) {
	if cfg.KnowledgeBase.Endpoint == "" {
		logger.Warn("No knowledge base endpoint configured, kb_query steps will find nothing")

		return emptyKnowledge{}, nil
	}

	client := knowledge.NewClient(cfg.KnowledgeBase.Endpoint, cfg.KnowledgeBase.APIKey, logger)

	if !cfg.Cache.Enabled {
		return client, nil
	}

	redisClient, err := knowledge.NewRedisClient(ctx, cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Cache.Addr, err)
	}

	return knowledge.NewCache(redisClient, client, cfg.Cache.TTL.Std(), logger), nil
}

// emptyKnowledge stands in when no knowledge base is configured.
type emptyKnowledge struct{}

func (emptyKnowledge) Retrieve(_ context.Context, _ string) (string, error) {
	return knowledge.NoDocumentsFound, nil
}
