// Package storage определяет интерфейсы хранилища эталонного сервера
// синхронизации. Сервер хранит записи как непрозрачные документы,
// сгруппированные по пользователю и типу ресурса.
package storage

import (
	"context"

	"github.com/vmikh/offsync/pkg/api"
)

// RecordStore defines interface for server-side record persistence
type RecordStore interface {
	// SaveRecord creates or updates a record using last-write-wins logic:
	// запись сохраняется только если ее updatedAt строго больше
	// существующей. Returns true if the record was accepted.
	SaveRecord(ctx context.Context, userID, resourceType string, record api.Record) (bool, error)

	// GetRecord retrieves a single record by id.
	// Returns ErrRecordNotFound if the record doesn't exist.
	GetRecord(ctx context.Context, userID, resourceType, id string) (*api.Record, error)

	// GetRecords retrieves all records of the resource type for a user,
	// ordered by id. Returns empty slice if none found.
	GetRecords(ctx context.Context, userID, resourceType string) ([]api.Record, error)

	// GetRecordsSince retrieves records modified after the given timestamp
	// (unix millis), ordered by updatedAt. Used for delta synchronization.
	GetRecordsSince(ctx context.Context, userID, resourceType string, since int64) ([]api.Record, error)

	// HasUpdatesSince reports whether any record of the type changed
	// after the given timestamp, without loading the records
	HasUpdatesSince(ctx context.Context, userID, resourceType string, since int64) (bool, error)
}
