// Package crosstab реализует обмен событиями между экземплярами клиента:
// in-process шина подписок плюс опциональный websocket мост, через который
// несколько процессов на одной машине делятся результатами синхронизации.
// Экземпляр, закончивший sync, публикует событие - остальные применяют
// полученные данные напрямую, без повторного похода на сервер.
package crosstab

import (
	"sync"

	"github.com/google/uuid"

	wire "github.com/vmikh/offsync/pkg/api"
)

// Типы событий шины
const (
	// TypeSynced рассылается после успешного цикла синхронизации типа ресурса
	TypeSynced = "synced"
)

// Message одно событие шины
type Message struct {
	// Channel канал события, для синхронизации - ChannelFor(resourceType)
	Channel string `json:"channel"`
	// Type тип события
	Type string `json:"type"`
	// Resource имя типа ресурса
	Resource string `json:"resource"`
	// Origin идентификатор экземпляра-отправителя; мост гасит эхо по нему
	Origin string `json:"origin"`
	// Records данные, которые получатели применяют локально
	Records []wire.Record `json:"records,omitempty"`
}

// ChannelFor возвращает имя канала синхронизации для типа ресурса
func ChannelFor(resourceType string) string {
	return "sync_" + resourceType
}

// Bus потокобезопасная шина подписок внутри одного процесса.
// Доставка неблокирующая: медленный подписчик теряет события,
// а не задерживает публикующего.
type Bus struct {
	id     string
	mu     sync.RWMutex
	subs   map[string][]chan Message
	taps   []chan Message
	closed bool
}

// NewBus создает шину с уникальным идентификатором экземпляра
func NewBus() *Bus {
	return &Bus{
		id:   uuid.NewString(),
		subs: make(map[string][]chan Message),
	}
}

// ID возвращает идентификатор экземпляра
func (b *Bus) ID() string {
	return b.id
}

// Subscribe подписывает на канал. Возвращенная функция снимает подписку.
func (b *Bus) Subscribe(channel string) (<-chan Message, func()) {
	ch := make(chan Message, 16)

	b.mu.Lock()
	b.subs[channel] = append(b.subs[channel], ch)
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[channel]
		for i, c := range list {
			if c == ch {
				b.subs[channel] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
	return ch, cancel
}

// SubscribeAll подписывает на все каналы сразу (используется мостом)
func (b *Bus) SubscribeAll() (<-chan Message, func()) {
	ch := make(chan Message, 16)

	b.mu.Lock()
	b.taps = append(b.taps, ch)
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, c := range b.taps {
			if c == ch {
				b.taps = append(b.taps[:i], b.taps[i+1:]...)
				return
			}
		}
	}
	return ch, cancel
}

// Publish рассылает событие подписчикам канала и всем tap'ам.
// Пустой Origin заполняется идентификатором этой шины.
func (b *Bus) Publish(msg Message) {
	if msg.Origin == "" {
		msg.Origin = b.id
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, ch := range b.subs[msg.Channel] {
		select {
		case ch <- msg:
		default:
		}
	}
	for _, ch := range b.taps {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Close закрывает шину; дальнейшие публикации игнорируются
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true

	for _, list := range b.subs {
		for _, ch := range list {
			close(ch)
		}
	}
	for _, ch := range b.taps {
		close(ch)
	}
	b.subs = make(map[string][]chan Message)
	b.taps = nil
}
