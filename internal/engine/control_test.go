package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/vmikh/offsync/internal/client/api"
	"github.com/vmikh/offsync/internal/config"
	wire "github.com/vmikh/offsync/pkg/api"
)

func TestControl_SkipWaiting(t *testing.T) {
	e := New(testConfig(config.StrategyLastWriteWins), storeMock(nil), metadataMock(), &apiclient.ClientAPIMock{}, nil, nil, discardLogger())

	reply := e.Control(context.Background(), wire.ControlMessage{Type: wire.ControlSkipWaiting})
	assert.True(t, reply.OK)
	assert.Empty(t, reply.Error)
}

func TestControl_GetMetrics(t *testing.T) {
	e := New(testConfig(config.StrategyLastWriteWins), storeMock(nil), metadataMock(), &apiclient.ClientAPIMock{}, &fakeCache{}, nil, discardLogger())

	reply := e.Control(context.Background(), wire.ControlMessage{Type: wire.ControlGetMetrics})
	require.True(t, reply.OK)
	assert.Equal(t, int64(7), reply.Metrics["offsync_cache_hits_total{api}"])
	assert.Contains(t, reply.LastSync, "messages")
	assert.Zero(t, reply.LastSync["messages"], "never synced yet")
}

func TestControl_ClearCache(t *testing.T) {
	fc := &fakeCache{}
	e := New(testConfig(config.StrategyLastWriteWins), storeMock(nil), metadataMock(), &apiclient.ClientAPIMock{}, fc, nil, discardLogger())

	reply := e.Control(context.Background(), wire.ControlMessage{
		Type:       wire.ControlClearCache,
		CacheNames: []string{"static"},
	})
	assert.True(t, reply.OK)
	assert.Equal(t, []string{"static"}, fc.clearedWith)
}

func TestControl_ClearCacheWithoutCache(t *testing.T) {
	e := New(testConfig(config.StrategyLastWriteWins), storeMock(nil), metadataMock(), &apiclient.ClientAPIMock{}, nil, nil, discardLogger())

	reply := e.Control(context.Background(), wire.ControlMessage{Type: wire.ControlClearCache})
	assert.False(t, reply.OK)
	assert.NotEmpty(t, reply.Error)
}

func TestControl_ForceSyncSingleResource(t *testing.T) {
	client := &apiclient.ClientAPIMock{
		GetCollectionFunc: func(ctx context.Context, endpoint string, lastSync int64) ([]wire.Record, error) {
			return nil, nil
		},
	}
	e := New(testConfig(config.StrategyLastWriteWins), storeMock(nil), metadataMock(), client, nil, nil, discardLogger())

	reply := e.Control(context.Background(), wire.ControlMessage{
		Type:    wire.ControlForceSync,
		SyncTag: "messages",
	})
	assert.True(t, reply.OK)
	assert.Len(t, client.GetCollectionCalls(), 1)
}

func TestControl_ForceSyncUnknownResource(t *testing.T) {
	e := New(testConfig(config.StrategyLastWriteWins), storeMock(nil), metadataMock(), &apiclient.ClientAPIMock{}, nil, nil, discardLogger())

	reply := e.Control(context.Background(), wire.ControlMessage{
		Type:    wire.ControlForceSync,
		SyncTag: "ghosts",
	})
	assert.False(t, reply.OK)
	assert.Contains(t, reply.Error, "unknown resource type")
}

func TestControl_UnknownMessageType(t *testing.T) {
	e := New(testConfig(config.StrategyLastWriteWins), storeMock(nil), metadataMock(), &apiclient.ClientAPIMock{}, nil, nil, discardLogger())

	reply := e.Control(context.Background(), wire.ControlMessage{Type: "REBOOT"})
	assert.False(t, reply.OK)
	assert.Contains(t, reply.Error, "unknown control message type")
}
