package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmikh/offsync/internal/config"
)

func testBucket(t *testing.T, maxEntries int, patterns ...string) *bucket {
	t.Helper()
	b, err := newBucket(config.Bucket{
		Name:       "test",
		Strategy:   config.CacheFirst,
		MaxAge:     time.Minute,
		MaxEntries: maxEntries,
		Patterns:   patterns,
	})
	require.NoError(t, err)
	return b
}

func TestBucket_Matches(t *testing.T) {
	b := testBucket(t, 10, `^/api/`, `\.css$`)

	assert.True(t, b.matches("/api/messages"))
	assert.True(t, b.matches("/assets/app.css"))
	assert.False(t, b.matches("/index.html"))
}

func TestBucket_InvalidPattern(t *testing.T) {
	_, err := newBucket(config.Bucket{
		Name:       "bad",
		MaxEntries: 1,
		Patterns:   []string{`[`},
	})
	require.Error(t, err)
}

func TestBucket_EvictsOldestBeyondLimit(t *testing.T) {
	const maxEntries = 10
	b := testBucket(t, maxEntries)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	// maxEntries + 5 вставок с возрастающим временем
	for i := 0; i < maxEntries+5; i++ {
		b.put(&entry{key: fmt.Sprintf("/item/%d", i)}, base.Add(time.Duration(i)*time.Second))
	}

	assert.Equal(t, 5, b.evict())
	assert.Equal(t, maxEntries, b.size())
	assert.Zero(t, b.evict(), "bucket already within the limit")

	// Вытеснены ровно пять старейших
	for i := 0; i < 5; i++ {
		_, ok := b.get(fmt.Sprintf("/item/%d", i))
		assert.False(t, ok, "oldest entry %d must be evicted", i)
	}
	for i := 5; i < maxEntries+5; i++ {
		_, ok := b.get(fmt.Sprintf("/item/%d", i))
		assert.True(t, ok, "entry %d must survive", i)
	}
}

func TestBucket_EvictionTieBreaksByInsertionOrder(t *testing.T) {
	b := testBucket(t, 2)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	b.put(&entry{key: "/a"}, now)
	b.put(&entry{key: "/b"}, now)
	b.put(&entry{key: "/c"}, now)
	b.evict()

	_, ok := b.get("/a")
	assert.False(t, ok, "first inserted entry loses the tie")
	_, ok = b.get("/b")
	assert.True(t, ok)
	_, ok = b.get("/c")
	assert.True(t, ok)
}

func TestBucket_PutSameKeyReplaces(t *testing.T) {
	b := testBucket(t, 5)
	now := time.Now()

	b.put(&entry{key: "/a", body: []byte("v1")}, now)
	b.put(&entry{key: "/a", body: []byte("v2")}, now.Add(time.Second))

	assert.Equal(t, 1, b.size())
	e, ok := b.get("/a")
	require.True(t, ok)
	assert.Equal(t, []byte("v2"), e.body)
}

func TestBucket_Clear(t *testing.T) {
	b := testBucket(t, 5)
	b.put(&entry{key: "/a"}, time.Now())
	b.put(&entry{key: "/b"}, time.Now())

	b.clear()
	assert.Equal(t, 0, b.size())
}
