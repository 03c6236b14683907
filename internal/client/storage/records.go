package storage

import (
	"context"

	"github.com/vmikh/offsync/pkg/api"
)

//go:generate moq -out records_mock.go . LocalStore

// LocalStore defines interface for the durable per-resource-type record
// store on the client. Единственный писатель - координатор синхронизации;
// eviction политика edge-кэша на это хранилище не распространяется.
type LocalStore interface {
	// GetData returns all records of the resource type
	GetData(ctx context.Context, resourceType string) ([]api.Record, error)

	// GetModifiedSince returns records changed locally after the given
	// timestamp, plus all records still carrying the localOnly marker
	GetModifiedSince(ctx context.Context, resourceType string, since int64) ([]api.Record, error)

	// UpdateOfflineData bulk-merges records into the store by id
	// (существующие записи с теми же id перезаписываются)
	UpdateOfflineData(ctx context.Context, resourceType string, records []api.Record) error

	// MarkSynced clears the localOnly marker on the given records.
	// Вызывается только после 2xx ответа сервера на batch push.
	MarkSynced(ctx context.Context, resourceType string, ids []string) error

	// PendingCount returns the number of records awaiting server
	// acknowledgement for the resource type
	PendingCount(ctx context.Context, resourceType string) (int, error)

	// ClearAllData removes every record of every resource type.
	// Полный teardown, не часть нормальной работы.
	ClearAllData(ctx context.Context) error
}
