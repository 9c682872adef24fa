package responders

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/dukex/sonda/pkg/protocol"
	"github.com/dukex/sonda/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel answers every call with a fixed response and records the
// last message set it received.
type fakeModel struct {
	response string
	err      error
	messages []llms.MessageContent
}

func (m *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	m.messages = messages

	if m.err != nil {
		return nil, m.err
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.response}},
	}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

type searcherFunc func(ctx context.Context, query string) ([]search.Result, error)

func (f searcherFunc) Search(ctx context.Context, query string) ([]search.Result, error) {
	return f(ctx, query)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func humanText(t *testing.T, messages []llms.MessageContent) string {
	t.Helper()

	for _, message := range messages {
		if message.Role != llms.ChatMessageTypeHuman {
			continue
		}

		require.Len(t, message.Parts, 1)

		part, ok := message.Parts[0].(llms.TextContent)
		require.True(t, ok)

		return part.Text
	}

	t.Fatal("no human message found")

	return ""
}

func TestResearch_WebQueryIncludesSearchResults(t *testing.T) {
	model := &fakeModel{response: "grounded answer"}

	var webQuery string

	web := searcherFunc(func(_ context.Context, query string) ([]search.Result, error) {
		webQuery = query

		return []search.Result{{Title: "Hit", URL: "https://a.example", Snippet: "detail"}}, nil
	})
	news := searcherFunc(func(_ context.Context, _ string) ([]search.Result, error) {
		t.Fatal("news searcher must not be used for a plain query")

		return nil, nil
	})

	r := NewResearch(model, web, news, testLogger())

	answer, err := r.Research(context.Background(), "industry emission trends")
	require.NoError(t, err)
	assert.Equal(t, "grounded answer", answer)
	assert.Equal(t, "industry emission trends", webQuery)

	user := humanText(t, model.messages)
	assert.Contains(t, user, "industry emission trends")
	assert.Contains(t, user, "Search results:")
	assert.Contains(t, user, "1. Hit")
}

func TestResearch_NewsPrefixRoutesToNewsSearcher(t *testing.T) {
	model := &fakeModel{response: "news answer"}

	var newsQuery string

	web := searcherFunc(func(_ context.Context, _ string) ([]search.Result, error) {
		t.Fatal("web searcher must not be used for a news query")

		return nil, nil
	})
	news := searcherFunc(func(_ context.Context, query string) ([]search.Result, error) {
		newsQuery = query

		return []search.Result{{Title: "Headline"}}, nil
	})

	r := NewResearch(model, web, news, testLogger())

	_, err := r.Research(context.Background(), protocol.NewsQueryPrefix+"carbon tax")
	require.NoError(t, err)
	assert.Equal(t, "carbon tax", newsQuery, "prefix is stripped before searching")
}

func TestResearch_SearchFailureFallsBackToModel(t *testing.T) {
	model := &fakeModel{response: "unaided answer"}

	web := searcherFunc(func(_ context.Context, _ string) ([]search.Result, error) {
		return nil, errors.New("rate limited")
	})

	r := NewResearch(model, web, web, testLogger())

	answer, err := r.Research(context.Background(), "some question")
	require.NoError(t, err)
	assert.Equal(t, "unaided answer", answer)

	user := humanText(t, model.messages)
	assert.Equal(t, "some question", user)
	assert.NotContains(t, user, "Search results:")
}

func TestSynthesis_PassesInputThrough(t *testing.T) {
	model := &fakeModel{response: "merged"}
	s := NewSynthesis(model)

	answer, err := s.Synthesize(context.Background(), "Aggregate the following data:\n\nStep 1 output:\nX")
	require.NoError(t, err)
	assert.Equal(t, "merged", answer)
	assert.Equal(t, "Aggregate the following data:\n\nStep 1 output:\nX", humanText(t, model.messages))
}

func TestSynthesis_ModelError(t *testing.T) {
	model := &fakeModel{err: errors.New("overloaded")}
	s := NewSynthesis(model)

	_, err := s.Synthesize(context.Background(), "anything")
	assert.Error(t, err)
}

func TestPlanning_ReturnsRawModelText(t *testing.T) {
	raw := `{"question": "q", "analysis": "a", "complexity": "simple", "steps": []}`
	model := &fakeModel{response: raw}
	p := NewPlanning(model)

	text, err := p.Plan(context.Background(), "what changed?")
	require.NoError(t, err)
	assert.Equal(t, raw, text)
	assert.Equal(t, "what changed?", humanText(t, model.messages))
}

func TestComplete_NoChoices(t *testing.T) {
	model := &noChoiceModel{}

	_, err := complete(context.Background(), model, "system", "user")
	assert.ErrorContains(t, err, "no choices")
}

type noChoiceModel struct{}

func (m *noChoiceModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	return &llms.ContentResponse{}, nil
}

func (m *noChoiceModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}
