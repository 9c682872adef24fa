package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	newsEndpoint   = "https://lite.duckduckgo.com/lite/"
	newsUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	maxNewsResults = 5
)

// NewsSearcher scrapes DuckDuckGo's lite HTML interface, biased toward
// recent coverage by restricting results to the past week.
type NewsSearcher struct {
	client   *http.Client
	endpoint string
}

func NewNewsSearcher() *NewsSearcher {
	return &NewsSearcher{
		client:   &http.Client{Timeout: 15 * time.Second},
		endpoint: newsEndpoint,
	}
}

// NewNewsSearcherWithClient overrides the HTTP client and endpoint,
// mainly for tests.
func NewNewsSearcherWithClient(client *http.Client, endpoint string) *NewsSearcher {
	return &NewsSearcher{client: client, endpoint: endpoint}
}

func (s *NewsSearcher) Search(ctx context.Context, query string) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query is empty")
	}

	formData := url.Values{}
	formData.Set("q", query)
	// Past-week filter keeps the results news-shaped.
	formData.Set("df", "w")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(formData.Encode()))
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", newsUserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return parseLiteResults(string(body)), nil
}

var (
	liteLinkPattern    = regexp.MustCompile(`<a[^>]*class=['"]result-link['"][^>]*href=['"]([^'"]+)['"][^>]*>([^<]+)</a>`)
	liteLinkPattern2   = regexp.MustCompile(`<a[^>]*href=['"]([^'"]+)['"][^>]*class=['"]result-link['"][^>]*>([^<]+)</a>`)
	liteSnippetPattern = regexp.MustCompile(`<td[^>]*class=['"]result-snippet['"][^>]*>([^<]+(?:<[^>]+>[^<]*</[^>]+>)*[^<]*)</td>`)
	tagPattern         = regexp.MustCompile(`<[^>]+>`)
)

// parseLiteResults extracts results from the lite HTML page. The page
// structure is simple: result links with class result-link, snippets in
// result-snippet table cells, in document order.
func parseLiteResults(html string) []Result {
	matches := liteLinkPattern.FindAllStringSubmatch(html, -1)
	if len(matches) == 0 {
		matches = liteLinkPattern2.FindAllStringSubmatch(html, -1)
	}

	snippets := liteSnippetPattern.FindAllStringSubmatch(html, -1)

	var results []Result

	for i, match := range matches {
		if len(match) < 3 {
			continue
		}

		resultURL := strings.TrimSpace(match[1])
		title := cleanHTML(match[2])

		if resultURL == "" || title == "" {
			continue
		}

		snippet := ""
		if i < len(snippets) && len(snippets[i]) > 1 {
			snippet = cleanHTML(snippets[i][1])
		}

		results = append(results, Result{
			Title:   title,
			URL:     resultURL,
			Snippet: snippet,
		})

		if len(results) >= maxNewsResults {
			break
		}
	}

	return results
}

func cleanHTML(text string) string {
	text = tagPattern.ReplaceAllString(text, "")

	replacer := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#x27;", "'",
		"&#39;", "'",
		"&nbsp;", " ",
	)

	return strings.TrimSpace(replacer.Replace(text))
}
