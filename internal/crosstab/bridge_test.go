package crosstab

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wire "github.com/vmikh/offsync/pkg/api"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// поднимает брокер и два моста, ждет установки соединений
func bridgePair(t *testing.T) (*Bus, *Bus) {
	t.Helper()

	broker := NewBroker(discardLogger())
	srv := httptest.NewServer(broker)
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	busA, busB := NewBus(), NewBus()
	t.Cleanup(busA.Close)
	t.Cleanup(busB.Close)

	go func() { _ = NewBridge(busA, wsURL, discardLogger()).Run(ctx) }()
	go func() { _ = NewBridge(busB, wsURL, discardLogger()).Run(ctx) }()

	// Мостам нужно успеть подключиться до первой публикации
	require.Eventually(t, func() bool {
		broker.mu.Lock()
		defer broker.mu.Unlock()
		return len(broker.conns) == 2
	}, 2*time.Second, 10*time.Millisecond)

	return busA, busB
}

func TestBridge_DeliversAcrossInstances(t *testing.T) {
	busA, busB := bridgePair(t)

	got, cancel := busB.Subscribe(ChannelFor("messages"))
	defer cancel()

	busA.Publish(Message{
		Channel:  ChannelFor("messages"),
		Type:     TypeSynced,
		Resource: "messages",
		Records:  []wire.Record{{ID: "m1", UpdatedAt: 100, Fields: map[string]any{"text": "hi"}}},
	})

	select {
	case msg := <-got:
		assert.Equal(t, busA.ID(), msg.Origin)
		assert.Equal(t, "messages", msg.Resource)
		require.Len(t, msg.Records, 1)
		assert.Equal(t, "m1", msg.Records[0].ID)
		assert.Equal(t, "hi", msg.Records[0].Fields["text"])
	case <-time.After(2 * time.Second):
		t.Fatal("message did not cross the bridge")
	}
}

func TestBridge_SuppressesEcho(t *testing.T) {
	busA, _ := bridgePair(t)

	// Подписчик на шине отправителя получает событие ровно один раз
	got, cancel := busA.Subscribe(ChannelFor("messages"))
	defer cancel()

	busA.Publish(Message{Channel: ChannelFor("messages"), Type: TypeSynced, Resource: "messages"})

	select {
	case <-got:
	case <-time.After(time.Second):
		t.Fatal("local delivery missing")
	}

	select {
	case <-got:
		t.Fatal("echo came back through the bridge")
	case <-time.After(300 * time.Millisecond):
	}
}
