// Package search provides the web and news retrieval clients the
// research responder grounds its answers on.
package search

import (
	"context"
	"fmt"
	"strings"
)

// Result is one search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Searcher returns ranked results for a query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// FormatResults renders results as a numbered plain-text list suitable
// for inclusion in a model prompt.
func FormatResults(results []Result) string {
	if len(results) == 0 {
		return "No search results found."
	}

	var b strings.Builder

	for i, result := range results {
		fmt.Fprintf(&b, "%d. %s\n", i+1, result.Title)

		if result.URL != "" {
			fmt.Fprintf(&b, "   %s\n", result.URL)
		}

		if result.Snippet != "" {
			fmt.Fprintf(&b, "   %s\n", result.Snippet)
		}

		b.WriteString("\n")
	}

	return strings.TrimSpace(b.String())
}
