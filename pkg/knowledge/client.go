// Package knowledge retrieves passages from the internal knowledge base
// service and caches answers in Redis.
package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultMaxResults = 5
	defaultTimeout    = 30 * time.Second
)

// NoDocumentsFound is returned when the knowledge base has nothing
// relevant for a query.
const NoDocumentsFound = "No relevant documents found in the knowledge base."

type retrieveRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type document struct {
	Content string  `json:"content"`
	Source  string  `json:"source"`
	Score   float64 `json:"score"`
}

type retrieveResponse struct {
	Documents []document `json:"documents"`
}

// Client queries the knowledge base retrieval endpoint over HTTP and
// renders the returned passages as prompt-ready text.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	maxResults int
	logger     *slog.Logger
}

func NewClient(endpoint, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		endpoint:   endpoint,
		apiKey:     apiKey,
		maxResults: defaultMaxResults,
		logger:     logger.With("module", "knowledge"),
	}
}

func (c *Client) Retrieve(ctx context.Context, query string) (string, error) {
	payload, err := json.Marshal(retrieveRequest{
		Query:      query,
		MaxResults: c.maxResults,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("knowledge base request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

		return "", fmt.Errorf("knowledge base http %d: %s", resp.StatusCode, string(body))
	}

	var result retrieveResponse

	err = json.NewDecoder(resp.Body).Decode(&result)
	if err != nil {
		return "", fmt.Errorf("failed to decode knowledge base response: %w", err)
	}

	c.logger.Debug("Knowledge base query completed", "documents", len(result.Documents))

	return formatDocuments(result.Documents), nil
}

// formatDocuments renders passages one per block, labeled with source
// and relevance score.
func formatDocuments(documents []document) string {
	if len(documents) == 0 {
		return NoDocumentsFound
	}

	var b bytes.Buffer

	for i, doc := range documents {
		if i > 0 {
			b.WriteString("\n\n")
		}

		source := doc.Source
		if source == "" {
			source = "unknown"
		}

		fmt.Fprintf(&b, "[Source: %s] (relevance: %.2f)\n%s", source, doc.Score, doc.Content)
	}

	return b.String()
}
