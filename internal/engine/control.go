package engine

import (
	"context"
	"errors"
	"fmt"

	wire "github.com/vmikh/offsync/pkg/api"
)

// Control обрабатывает сообщение управляющего канала хост-приложения.
// Канал синхронный: одно сообщение - один ответ.
func (e *Engine) Control(ctx context.Context, msg wire.ControlMessage) wire.ControlReply {
	switch msg.Type {
	case wire.ControlSkipWaiting:
		// Немедленная активация: движок не держит ожидающих версий,
		// сообщение подтверждается ради совместимости протокола
		return wire.ControlReply{OK: true}

	case wire.ControlGetMetrics:
		reply := wire.ControlReply{
			OK:       true,
			LastSync: e.LastSyncTimes(ctx),
		}
		if e.cache != nil {
			reply.Metrics = e.cache.Metrics()
		}
		return reply

	case wire.ControlClearCache:
		if e.cache == nil {
			return wire.ControlReply{Error: "no cache attached"}
		}
		removed := e.cache.Clear(msg.CacheNames)
		e.logger.Info("Cache cleared via control channel",
			"buckets", msg.CacheNames, "entries", removed)
		return wire.ControlReply{OK: true}

	case wire.ControlForceSync:
		var err error
		if msg.SyncTag != "" {
			_, err = e.SyncDataType(ctx, msg.SyncTag)
		} else {
			_, err = e.SyncAll(ctx)
		}
		if err != nil && !errors.Is(err, ErrSyncInProgress) {
			return wire.ControlReply{Error: err.Error()}
		}
		return wire.ControlReply{OK: true}

	default:
		return wire.ControlReply{Error: fmt.Sprintf("unknown control message type %q", msg.Type)}
	}
}
