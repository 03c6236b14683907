package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmikh/offsync/internal/server/storage"
	"github.com/vmikh/offsync/pkg/api"
)

var _ storage.RecordStore = (*Storage)(nil)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStorage_SaveAndGetRecord(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	accepted, err := s.SaveRecord(ctx, "user-1", "messages", api.Record{
		ID:        "m1",
		UpdatedAt: 100,
		Fields:    map[string]any{"text": "hello"},
	})
	require.NoError(t, err)
	assert.True(t, accepted)

	got, err := s.GetRecord(ctx, "user-1", "messages", "m1")
	require.NoError(t, err)
	assert.Equal(t, "m1", got.ID)
	assert.Equal(t, int64(100), got.UpdatedAt)
	assert.Equal(t, "hello", got.Fields["text"])
}

func TestStorage_GetRecord_NotFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.GetRecord(context.Background(), "user-1", "messages", "ghost")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestStorage_SaveRecord_LastWriteWins(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	_, err := s.SaveRecord(ctx, "user-1", "messages", api.Record{
		ID: "m1", UpdatedAt: 100, Fields: map[string]any{"text": "current"},
	})
	require.NoError(t, err)

	// Более старая версия отвергается
	accepted, err := s.SaveRecord(ctx, "user-1", "messages", api.Record{
		ID: "m1", UpdatedAt: 90, Fields: map[string]any{"text": "stale"},
	})
	require.NoError(t, err)
	assert.False(t, accepted)

	// Равный timestamp тоже: при ничьей выигрывает серверная версия
	accepted, err = s.SaveRecord(ctx, "user-1", "messages", api.Record{
		ID: "m1", UpdatedAt: 100, Fields: map[string]any{"text": "tied"},
	})
	require.NoError(t, err)
	assert.False(t, accepted)

	// Более новая принимается
	accepted, err = s.SaveRecord(ctx, "user-1", "messages", api.Record{
		ID: "m1", UpdatedAt: 110, Fields: map[string]any{"text": "newer"},
	})
	require.NoError(t, err)
	assert.True(t, accepted)

	got, err := s.GetRecord(ctx, "user-1", "messages", "m1")
	require.NoError(t, err)
	assert.Equal(t, "newer", got.Fields["text"])
}

func TestStorage_SaveRecord_StripsLocalOnly(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	_, err := s.SaveRecord(ctx, "user-1", "messages", api.Record{
		ID: "m1", UpdatedAt: 100, LocalOnly: true,
	})
	require.NoError(t, err)

	got, err := s.GetRecord(ctx, "user-1", "messages", "m1")
	require.NoError(t, err)
	assert.False(t, got.LocalOnly)
}

func TestStorage_GetRecords_IsolatedByUserAndType(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	seed := []struct {
		user, typ, id string
	}{
		{"user-1", "messages", "m1"},
		{"user-1", "messages", "m2"},
		{"user-1", "matches", "x1"},
		{"user-2", "messages", "m3"},
	}
	for i, rec := range seed {
		_, err := s.SaveRecord(ctx, rec.user, rec.typ, api.Record{ID: rec.id, UpdatedAt: int64(i + 1)})
		require.NoError(t, err)
	}

	records, err := s.GetRecords(ctx, "user-1", "messages")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "m1", records[0].ID)
	assert.Equal(t, "m2", records[1].ID)
}

func TestStorage_GetRecordsSince(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	for _, ts := range []int64{10, 20, 30} {
		_, err := s.SaveRecord(ctx, "user-1", "messages", api.Record{
			ID: "m" + string(rune('0'+ts/10)), UpdatedAt: ts,
		})
		require.NoError(t, err)
	}

	records, err := s.GetRecordsSince(ctx, "user-1", "messages", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(20), records[0].UpdatedAt)
	assert.Equal(t, int64(30), records[1].UpdatedAt)

	records, err = s.GetRecordsSince(ctx, "user-1", "messages", 30)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStorage_HasUpdatesSince(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	has, err := s.HasUpdatesSince(ctx, "user-1", "messages", 0)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = s.SaveRecord(ctx, "user-1", "messages", api.Record{ID: "m1", UpdatedAt: 50})
	require.NoError(t, err)

	has, err = s.HasUpdatesSince(ctx, "user-1", "messages", 0)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = s.HasUpdatesSince(ctx, "user-1", "messages", 50)
	require.NoError(t, err)
	assert.False(t, has)
}
