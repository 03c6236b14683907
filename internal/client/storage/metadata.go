package storage

import "context"

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client sync metadata
type MetadataStorage interface {
	// SaveLastSyncTimestamp saves the timestamp of the last successful sync
	// for one resource type
	SaveLastSyncTimestamp(ctx context.Context, resourceType string, timestamp int64) error

	// GetLastSyncTimestamp retrieves the timestamp of the last successful
	// sync for one resource type. Returns 0 if the type has never synced.
	GetLastSyncTimestamp(ctx context.Context, resourceType string) (int64, error)
}
