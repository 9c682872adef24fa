package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sonda.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
model:
  api_key: file-key
  model: gpt-4o
knowledge_base:
  endpoint: https://kb.internal.example/retrieve
  api_key: kb-key
cache:
  enabled: true
  addr: redis.internal:6379
  ttl: 30m
termination:
  min_synthesis_length: 500
  skippable_types: [web_search, reasoning]
reports:
  dir: /var/lib/sonda/reports
api:
  port: 8088
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "gpt-4o", cfg.Model.Model)
	assert.Equal(t, "https://kb.internal.example/retrieve", cfg.KnowledgeBase.Endpoint)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL.Std())
	assert.Equal(t, 500, cfg.Termination.MinSynthesisLength)
	assert.Len(t, cfg.Termination.SkippableTypes, 2)
	assert.Equal(t, "/var/lib/sonda/reports", cfg.Reports.Dir)
	assert.Equal(t, 8088, cfg.API.Port)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
model:
  api_key: k
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "gpt-4o-mini", cfg.Model.Model)
	assert.Equal(t, 800, cfg.Termination.MinSynthesisLength)
	assert.NotEmpty(t, cfg.Termination.SkippableTypes)
	assert.Equal(t, "./reports", cfg.Reports.Dir)
	assert.Equal(t, 9099, cfg.API.Port)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Hour, cfg.Cache.TTL.Std())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SONDA_MODEL_API_KEY", "env-key")
	t.Setenv("SONDA_REDIS_ADDR", "redis.env:6379")

	path := writeConfig(t, `
model:
  api_key: file-key
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Model.APIKey)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "redis.env:6379", cfg.Cache.Addr)
}

func TestLoad_InvalidEndpoint(t *testing.T) {
	path := writeConfig(t, `
model:
  api_key: k
knowledge_base:
  endpoint: not-a-url
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/sonda.yaml")
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 800, cfg.Termination.MinSynthesisLength)
}
