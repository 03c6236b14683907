package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"
)

const keyLastSyncPrefix = "last_sync_"

// SaveLastSyncTimestamp сохраняет timestamp последней успешной
// синхронизации типа ресурса
func (s *Storage) SaveLastSyncTimestamp(ctx context.Context, resourceType string, timestamp int64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		// Конвертируем int64 в bytes
		timestampBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(timestampBytes, uint64(timestamp))

		key := []byte(keyLastSyncPrefix + resourceType)
		if err := bucket.Put(key, timestampBytes); err != nil {
			return fmt.Errorf("failed to save last sync timestamp: %w", err)
		}

		return nil
	})
}

// GetLastSyncTimestamp возвращает timestamp последней успешной
// синхронизации типа ресурса. 0 означает, что тип еще не синхронизировался.
func (s *Storage) GetLastSyncTimestamp(ctx context.Context, resourceType string) (int64, error) {
	var timestamp int64

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		timestampBytes := bucket.Get([]byte(keyLastSyncPrefix + resourceType))
		if timestampBytes == nil {
			// Тип еще не синхронизировался
			timestamp = 0
			return nil
		}

		timestamp = int64(binary.BigEndian.Uint64(timestampBytes))
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to get last sync timestamp: %w", err)
	}

	return timestamp, nil
}
