package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestClient_Retrieve(t *testing.T) {
	var receivedAuth string

	var receivedBody retrieveRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&receivedBody))

		response := retrieveResponse{
			Documents: []document{
				{Content: "Scope 1 emissions fell 4% year over year.", Source: "esg-report-2025.pdf", Score: 0.92},
				{Content: "The reduction target for 2030 is 40%.", Source: "strategy.pdf", Score: 0.81},
			},
		}

		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-key", testLogger())

	answer, err := client.Retrieve(context.Background(), "emission trends")
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-key", receivedAuth)
	assert.Equal(t, "emission trends", receivedBody.Query)
	assert.Equal(t, defaultMaxResults, receivedBody.MaxResults)

	assert.Contains(t, answer, "[Source: esg-report-2025.pdf] (relevance: 0.92)")
	assert.Contains(t, answer, "Scope 1 emissions fell 4% year over year.")
	assert.Contains(t, answer, "[Source: strategy.pdf] (relevance: 0.81)")
}

func TestClient_Retrieve_NoDocuments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(retrieveResponse{}))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", testLogger())

	answer, err := client.Retrieve(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, NoDocumentsFound, answer)
}

func TestClient_Retrieve_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "index rebuilding", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", testLogger())

	_, err := client.Retrieve(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

type fakeRedis struct {
	data     map[string]string
	getErr   error
	setCalls int
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}

	value, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}

	return redis.NewStringResult(value, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.setCalls++
	f.data[key] = value.(string)

	return redis.NewStatusResult("OK", nil)
}

type retrieverFunc func(ctx context.Context, query string) (string, error)

func (f retrieverFunc) Retrieve(ctx context.Context, query string) (string, error) {
	return f(ctx, query)
}

func TestCache_Retrieve_MissThenHit(t *testing.T) {
	backend := &fakeRedis{data: make(map[string]string)}
	innerCalls := 0

	cache := NewCache(backend, retrieverFunc(func(_ context.Context, _ string) (string, error) {
		innerCalls++

		return "fresh answer", nil
	}), DefaultCacheTTL, testLogger())

	first, err := cache.Retrieve(context.Background(), "emission trends")
	require.NoError(t, err)
	assert.Equal(t, "fresh answer", first)
	assert.Equal(t, 1, innerCalls)
	assert.Equal(t, 1, backend.setCalls)

	second, err := cache.Retrieve(context.Background(), "emission trends")
	require.NoError(t, err)
	assert.Equal(t, "fresh answer", second)
	assert.Equal(t, 1, innerCalls, "second call must come from the cache")
}

func TestCache_Retrieve_BackendDownDegradesToDirect(t *testing.T) {
	backend := &fakeRedis{data: make(map[string]string), getErr: errors.New("connection refused")}

	cache := NewCache(backend, retrieverFunc(func(_ context.Context, _ string) (string, error) {
		return "direct answer", nil
	}), DefaultCacheTTL, testLogger())

	answer, err := cache.Retrieve(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "direct answer", answer)
}

func TestCache_Retrieve_InnerErrorNotCached(t *testing.T) {
	backend := &fakeRedis{data: make(map[string]string)}

	cache := NewCache(backend, retrieverFunc(func(_ context.Context, _ string) (string, error) {
		return "", errors.New("kb unavailable")
	}), DefaultCacheTTL, testLogger())

	_, err := cache.Retrieve(context.Background(), "anything")
	require.Error(t, err)
	assert.Zero(t, backend.setCalls)
}

func TestCacheKey(t *testing.T) {
	key := cacheKey("emission trends")

	assert.True(t, strings.HasPrefix(key, cacheKeyPrefix))
	assert.Equal(t, cacheKey("emission trends"), key)
	assert.NotEqual(t, cacheKey("other query"), key)
}
