package responders

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dukex/sonda/pkg/protocol"
	"github.com/dukex/sonda/pkg/search"
	"github.com/tmc/langchaingo/llms"
)

// Research answers exploratory queries by searching first and letting
// the model compose an answer over the results. A news-prefixed query
// routes to the recency-biased searcher. Search failures degrade to
// pure model reasoning rather than failing the step.
type Research struct {
	model  llms.Model
	web    search.Searcher
	news   search.Searcher
	logger *slog.Logger
}

func NewResearch(model llms.Model, web, news search.Searcher, logger *slog.Logger) *Research {
	return &Research{
		model:  model,
		web:    web,
		news:   news,
		logger: logger.With("module", "research"),
	}
}

func (r *Research) Research(ctx context.Context, query string) (string, error) {
	searcher := r.web
	searchQuery := query

	if topic, found := strings.CutPrefix(query, protocol.NewsQueryPrefix); found {
		searcher = r.news
		searchQuery = topic
	}

	user := query

	results, err := searcher.Search(ctx, searchQuery)
	if err != nil {
		r.logger.Warn("Search failed, answering from model knowledge only", "error", err)
	} else {
		user = query + "\n\nSearch results:\n" + search.FormatResults(results)
	}

	return complete(ctx, r.model, researchSystemPrompt, user)
}
