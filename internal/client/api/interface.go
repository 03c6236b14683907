package api

import (
	"context"

	wire "github.com/vmikh/offsync/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI определяет интерфейс HTTP клиента Server API.
// Все вызовы ограничены фиксированным сетевым таймаутом, чтобы зависший
// сервер не блокировал цикл синхронизации дольше необходимого.
type ClientAPI interface {
	// GetCollection запрашивает состояние коллекции типа ресурса.
	// При lastSync > 0 сервер может вернуть только дельту.
	GetCollection(ctx context.Context, endpoint string, lastSync int64) ([]wire.Record, error)

	// CheckUpdates выполняет дешевую проверку обновлений (real-time путь)
	CheckUpdates(ctx context.Context, endpoint string, lastSync int64) (*wire.UpdatesResponse, error)

	// PushBatch отправляет пакет локальных изменений
	PushBatch(ctx context.Context, endpoint string, changes []wire.Record) (*wire.BatchResponse, error)
}
