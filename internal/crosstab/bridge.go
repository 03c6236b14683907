package crosstab

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

// reconnectDelay пауза перед повторным подключением к брокеру
const reconnectDelay = 3 * time.Second

// Bridge соединяет in-process шину с локальным websocket брокером.
// Локальные события уходят в сокет, чужие - публикуются в шину.
// Эхо гасится по Origin: событие со своим идентификатором не пересекает
// мост второй раз.
type Bridge struct {
	bus    *Bus
	url    string
	logger *slog.Logger
}

// NewBridge создает мост к брокеру по адресу вида ws://127.0.0.1:7733/crosstab
func NewBridge(bus *Bus, url string, logger *slog.Logger) *Bridge {
	return &Bridge{
		bus:    bus,
		url:    url,
		logger: logger,
	}
}

// Run держит соединение с брокером до отмены контекста,
// переподключаясь после обрывов
func (b *Bridge) Run(ctx context.Context) error {
	for {
		if err := b.session(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			b.logger.Warn("Crosstab bridge disconnected", "error", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectDelay):
		}
	}
}

// session одно соединение с брокером: исходящий и входящий насосы
func (b *Bridge) session(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, b.url, nil)
	if err != nil {
		return fmt.Errorf("failed to dial crosstab broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	b.logger.Info("Crosstab bridge connected", "url", b.url, "instance", b.bus.ID())

	local, unsubscribe := b.bus.SubscribeAll()
	defer unsubscribe()

	writeDone := make(chan error, 1)
	go func() {
		for {
			select {
			case <-ctx.Done():
				writeDone <- ctx.Err()
				return
			case msg, ok := <-local:
				if !ok {
					writeDone <- nil
					return
				}
				if msg.Origin != b.bus.ID() {
					// Пришло из сокета, назад не отправляем
					continue
				}
				if err := conn.WriteJSON(msg); err != nil {
					writeDone <- err
					return
				}
			}
		}
	}()

	readDone := make(chan error, 1)
	go func() {
		for {
			var msg Message
			if err := conn.ReadJSON(&msg); err != nil {
				readDone <- err
				return
			}
			if msg.Origin == b.bus.ID() {
				continue
			}
			b.bus.Publish(msg)
		}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-writeDone:
		return err
	case err := <-readDone:
		return err
	}
}
