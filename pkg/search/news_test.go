package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const litePage = `<html><body><table>
<tr><td><a rel="nofollow" class='result-link' href='https://example.com/emissions'>EU tightens emission rules</a></td></tr>
<tr><td class='result-snippet'>The European Union announced stricter &amp; broader disclosure rules.</td></tr>
<tr><td><a rel="nofollow" class='result-link' href='https://example.org/report'>Annual climate report published</a></td></tr>
<tr><td class='result-snippet'>Findings show a 3% drop in industrial output emissions.</td></tr>
</table></body></html>`

func TestNewsSearcher_Search(t *testing.T) {
	var receivedQuery, receivedDateFilter string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		receivedQuery = r.PostForm.Get("q")
		receivedDateFilter = r.PostForm.Get("df")

		_, _ = w.Write([]byte(litePage))
	}))
	defer server.Close()

	searcher := NewNewsSearcherWithClient(server.Client(), server.URL)

	results, err := searcher.Search(context.Background(), "carbon disclosure")
	require.NoError(t, err)

	assert.Equal(t, "carbon disclosure", receivedQuery)
	assert.Equal(t, "w", receivedDateFilter)

	require.Len(t, results, 2)
	assert.Equal(t, "EU tightens emission rules", results[0].Title)
	assert.Equal(t, "https://example.com/emissions", results[0].URL)
	assert.Equal(t, "The European Union announced stricter & broader disclosure rules.", results[0].Snippet)
	assert.Equal(t, "Annual climate report published", results[1].Title)
}

func TestNewsSearcher_Search_EmptyQuery(t *testing.T) {
	searcher := NewNewsSearcher()

	_, err := searcher.Search(context.Background(), "   ")
	assert.Error(t, err)
}

func TestNewsSearcher_Search_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	searcher := NewNewsSearcherWithClient(server.Client(), server.URL)

	_, err := searcher.Search(context.Background(), "anything")
	assert.ErrorContains(t, err, "503")
}

func TestParseLiteResults_Empty(t *testing.T) {
	assert.Empty(t, parseLiteResults("<html><body>no results</body></html>"))
}

func TestFormatResults(t *testing.T) {
	formatted := FormatResults([]Result{
		{Title: "First", URL: "https://a.example", Snippet: "alpha"},
		{Title: "Second", URL: "https://b.example", Snippet: "beta"},
	})

	assert.Contains(t, formatted, "1. First")
	assert.Contains(t, formatted, "   https://a.example")
	assert.Contains(t, formatted, "   alpha")
	assert.Contains(t, formatted, "2. Second")
}

func TestFormatResults_Empty(t *testing.T) {
	assert.Equal(t, "No search results found.", FormatResults(nil))
}
