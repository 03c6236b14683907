package resolver

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmikh/offsync/internal/config"
	"github.com/vmikh/offsync/pkg/api"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()

	cfg, err := config.Parse([]byte(`
resources:
  - name: matches
    sync_interval: 1m
  - name: connections
    conflict_strategy: merge
    sync_interval: 1m
  - name: profile
    conflict_strategy: serverWins
    sync_interval: 1m
  - name: drafts
    conflict_strategy: clientWins
    sync_interval: 1m
`))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, logger)
}

func rec(id string, updatedAt int64, fields map[string]any) api.Record {
	if fields == nil {
		fields = map[string]any{}
	}
	return api.Record{ID: id, UpdatedAt: updatedAt, Fields: fields}
}

func TestResolve_LastWriteWins_LocalNewer(t *testing.T) {
	r := newTestResolver(t)

	local := []api.Record{rec("a", 200, map[string]any{"v": "local"})}
	server := []api.Record{rec("a", 100, map[string]any{"v": "server"})}

	out := r.Resolve("matches", local, server)

	require.Len(t, out, 1)
	assert.Equal(t, "local", out[0].Fields["v"])
	assert.Equal(t, int64(200), out[0].UpdatedAt)
}

func TestResolve_LastWriteWins_TieGoesToServer(t *testing.T) {
	r := newTestResolver(t)

	local := []api.Record{rec("a", 100, map[string]any{"v": "local"})}
	server := []api.Record{rec("a", 100, map[string]any{"v": "server"})}

	out := r.Resolve("matches", local, server)

	require.Len(t, out, 1)
	assert.Equal(t, "server", out[0].Fields["v"])
}

func TestResolve_LastWriteWins_NewLocalRecordKept(t *testing.T) {
	r := newTestResolver(t)

	local := []api.Record{rec("new", 50, map[string]any{"v": "local"})}
	server := []api.Record{rec("old", 100, map[string]any{"v": "server"})}

	out := r.Resolve("matches", local, server)

	require.Len(t, out, 2)
	assert.Equal(t, "new", out[0].ID)
	assert.Equal(t, "old", out[1].ID)
}

func TestResolve_Merge_NeverDropsFields(t *testing.T) {
	r := newTestResolver(t)

	local := []api.Record{rec("c1", 100, map[string]any{"name": "Alice"})}
	server := []api.Record{rec("c1", 90, map[string]any{"company": "Acme"})}

	out := r.Resolve("connections", local, server)

	require.Len(t, out, 1)
	assert.Equal(t, "Alice", out[0].Fields["name"])
	assert.Equal(t, "Acme", out[0].Fields["company"])
}

func TestResolve_Merge_LocalFieldPrecedence(t *testing.T) {
	r := newTestResolver(t)

	local := []api.Record{rec("c1", 100, map[string]any{"name": "Alice"})}
	server := []api.Record{rec("c1", 200, map[string]any{"name": "Alicia", "city": "Berlin"})}

	out := r.Resolve("connections", local, server)

	require.Len(t, out, 1)
	// Пополевой, а не позаписный last-write-wins
	assert.Equal(t, "Alice", out[0].Fields["name"])
	assert.Equal(t, "Berlin", out[0].Fields["city"])
	assert.Equal(t, int64(200), out[0].UpdatedAt)
}

func TestResolve_ServerWins_DiscardsLocalOnlyFromView(t *testing.T) {
	r := newTestResolver(t)

	local := []api.Record{rec("local-draft", 500, nil)}
	server := []api.Record{rec("p1", 100, map[string]any{"bio": "hello"})}

	out := r.Resolve("profile", local, server)

	require.Len(t, out, 1)
	assert.Equal(t, "p1", out[0].ID)
}

func TestResolve_ClientWins_IgnoresStaleServerRead(t *testing.T) {
	r := newTestResolver(t)

	local := []api.Record{rec("d1", 10, map[string]any{"text": "unsent"})}
	server := []api.Record{rec("d1", 999, map[string]any{"text": "stale"})}

	out := r.Resolve("drafts", local, server)

	require.Len(t, out, 1)
	assert.Equal(t, "unsent", out[0].Fields["text"])
}

func TestResolve_UnknownTypeFallsBackToDefault(t *testing.T) {
	r := newTestResolver(t)

	local := []api.Record{rec("a", 200, map[string]any{"v": "local"})}
	server := []api.Record{rec("a", 100, map[string]any{"v": "server"})}

	// Неизвестный тип не должен падать: default lastWriteWins
	out := r.Resolve("unregistered", local, server)

	require.Len(t, out, 1)
	assert.Equal(t, "local", out[0].Fields["v"])
	assert.Equal(t, config.DefaultStrategy, r.StrategyFor("unregistered"))
}

func TestResolve_Idempotent(t *testing.T) {
	r := newTestResolver(t)

	local := []api.Record{
		rec("a", 200, map[string]any{"v": "local"}),
		rec("b", 10, map[string]any{"v": "only-local"}),
	}
	server := []api.Record{
		rec("a", 100, map[string]any{"v": "server"}),
		rec("c", 300, map[string]any{"v": "only-server"}),
	}

	for _, resourceType := range []string{"matches", "connections", "profile", "drafts"} {
		first := r.Resolve(resourceType, local, server)
		second := r.Resolve(resourceType, local, server)
		assert.Equal(t, first, second, "strategy for %s must be deterministic", resourceType)
	}
}

func TestResolve_DoesNotMutateInputs(t *testing.T) {
	r := newTestResolver(t)

	local := []api.Record{rec("c1", 100, map[string]any{"name": "Alice"})}
	server := []api.Record{rec("c1", 90, map[string]any{"company": "Acme"})}

	out := r.Resolve("connections", local, server)
	out[0].Fields["name"] = "mutated"
	out[0].Fields["injected"] = true

	assert.Equal(t, "Alice", local[0].Fields["name"])
	_, ok := server[0].Fields["injected"]
	assert.False(t, ok)
}

func BenchmarkResolve_LastWriteWins(b *testing.B) {
	cfg, _ := config.Parse([]byte("resources:\n  - name: matches\n"))
	r := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	now := time.Now().UnixMilli()
	local := make([]api.Record, 0, 500)
	server := make([]api.Record, 0, 500)
	for i := 0; i < 500; i++ {
		id := string(rune('a'+i%26)) + string(rune('a'+(i/26)%26)) + string(rune('a'+i%10))
		local = append(local, rec(id, now+int64(i), map[string]any{"n": i}))
		server = append(server, rec(id, now, map[string]any{"n": i}))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Resolve("matches", local, server)
	}
}
