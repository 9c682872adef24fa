package search

import (
	"context"

	"github.com/tmc/langchaingo/tools/duckduckgo"
)

const defaultMaxResults = 10

// WebSearcher answers general web queries through DuckDuckGo. The
// underlying tool returns pre-formatted text, so results come back as a
// single snippet-only entry.
type WebSearcher struct {
	tool *duckduckgo.Tool
}

func NewWebSearcher() (*WebSearcher, error) {
	tool, err := duckduckgo.New(defaultMaxResults, duckduckgo.DefaultUserAgent)
	if err != nil {
		return nil, err
	}

	return &WebSearcher{tool: tool}, nil
}

func (s *WebSearcher) Search(ctx context.Context, query string) ([]Result, error) {
	text, err := s.tool.Call(ctx, query)
	if err != nil {
		return nil, err
	}

	return []Result{{Snippet: text}}, nil
}
