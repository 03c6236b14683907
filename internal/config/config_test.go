package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
server_url: http://localhost:8080
user_id: user-1
db_path: client.db
resources:
  - name: matches
    sync_interval: 2m
  - name: connections
    conflict_strategy: merge
    sync_interval: 5m
  - name: messages
    conflict_strategy: clientWins
    sync_interval: 0s
cache:
  buckets:
    - name: api
      strategy: network-first
      max_age: 5m
      max_entries: 10
      patterns: ["^/api/"]
  precache:
    - /
    - /app.css
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	require.Len(t, cfg.Resources, 3)

	matches, ok := cfg.Resource("matches")
	require.True(t, ok)
	assert.Equal(t, "/api/matches", matches.Endpoint, "endpoint defaults to /api/<name>")
	assert.Equal(t, DefaultStrategy, matches.Strategy, "strategy defaults to lastWriteWins")
	assert.Equal(t, 2*time.Minute, matches.SyncInterval)

	connections, ok := cfg.Resource("connections")
	require.True(t, ok)
	assert.Equal(t, StrategyMerge, connections.Strategy)

	messages, ok := cfg.Resource("messages")
	require.True(t, ok)
	assert.Equal(t, time.Duration(0), messages.SyncInterval, "zero interval means real-time")

	require.Len(t, cfg.Cache.Buckets, 1)
	assert.Equal(t, []string{"/", "/app.css"}, cfg.Cache.Precache)
}

func TestParse_UnknownStrategyRejected(t *testing.T) {
	_, err := Parse([]byte(`
resources:
  - name: matches
    conflict_strategy: newestWins
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown conflict strategy")
}

func TestParse_DuplicateResourceRejected(t *testing.T) {
	_, err := Parse([]byte(`
resources:
  - name: matches
  - name: matches
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate resource")
}

func TestParse_InvalidResourceNameRejected(t *testing.T) {
	_, err := Parse([]byte(`
resources:
  - name: "Matches/All"
`))
	assert.Error(t, err)
}

func TestParse_BucketValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "unknown cache strategy",
			yaml: `
cache:
  buckets:
    - name: api
      strategy: freshest
      max_age: 1m
      max_entries: 5
`,
		},
		{
			name: "non-positive max_entries",
			yaml: `
cache:
  buckets:
    - name: api
      strategy: cache-first
      max_age: 1m
      max_entries: 0
`,
		},
		{
			name: "invalid pattern",
			yaml: `
cache:
  buckets:
    - name: api
      strategy: cache-first
      max_age: 1m
      max_entries: 5
      patterns: ["["]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.Cache.Buckets, 4)
	assert.Equal(t, "dynamic", cfg.Cache.Buckets[len(cfg.Cache.Buckets)-1].Name)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "user-1", cfg.UserID)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
