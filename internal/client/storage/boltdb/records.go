package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/vmikh/offsync/internal/client/storage"
	"github.com/vmikh/offsync/pkg/api"
)

// GetData возвращает все записи типа ресурса
func (s *Storage) GetData(ctx context.Context, resourceType string) ([]api.Record, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var records []api.Record

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := resourceBucket(tx, resourceType)
		if bucket == nil {
			// Тип ресурса еще не писался - пустой набор
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var rec api.Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("failed to unmarshal record %s: %w", k, err)
			}
			records = append(records, rec)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get data: %w", err)
	}

	sortRecords(records)
	return records, nil
}

// GetModifiedSince возвращает записи, измененные локально после указанного
// timestamp, плюс все записи с непогашенным маркером localOnly
func (s *Storage) GetModifiedSince(ctx context.Context, resourceType string, since int64) ([]api.Record, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var records []api.Record

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := resourceBucket(tx, resourceType)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var rec api.Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("failed to unmarshal record %s: %w", k, err)
			}

			// Неподтвержденные записи всегда считаются измененными:
			// они остаются в наборе до ack от сервера
			if rec.LocalOnly || rec.UpdatedAt > since {
				records = append(records, rec)
			}

			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get modified records: %w", err)
	}

	sortRecords(records)
	return records, nil
}

// UpdateOfflineData массово вливает записи в хранилище по id
func (s *Storage) UpdateOfflineData(ctx context.Context, resourceType string, records []api.Record) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		parent, err := tx.CreateBucketIfNotExists(bucketRecords)
		if err != nil {
			return fmt.Errorf("failed to create records bucket: %w", err)
		}

		bucket, err := parent.CreateBucketIfNotExists([]byte(resourceType))
		if err != nil {
			return fmt.Errorf("failed to create bucket for %s: %w", resourceType, err)
		}

		for i := range records {
			data, err := json.Marshal(records[i])
			if err != nil {
				return fmt.Errorf("failed to marshal record %s: %w", records[i].ID, err)
			}
			if err := bucket.Put([]byte(records[i].ID), data); err != nil {
				return fmt.Errorf("failed to save record %s: %w", records[i].ID, err)
			}
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// MarkSynced снимает маркер localOnly с указанных записей
func (s *Storage) MarkSynced(ctx context.Context, resourceType string, ids []string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := resourceBucket(tx, resourceType)
		if bucket == nil {
			return storage.ErrRecordNotFound
		}

		for _, id := range ids {
			data := bucket.Get([]byte(id))
			if data == nil {
				// Запись могла быть пересогласована между push и ack
				continue
			}

			var rec api.Record
			if err := json.Unmarshal(data, &rec); err != nil {
				return fmt.Errorf("failed to unmarshal record %s: %w", id, err)
			}

			if !rec.LocalOnly {
				continue
			}
			rec.LocalOnly = false

			updated, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("failed to marshal record %s: %w", id, err)
			}
			if err := bucket.Put([]byte(id), updated); err != nil {
				return fmt.Errorf("failed to save record %s: %w", id, err)
			}
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("mark synced transaction failed: %w", err)
	}

	return nil
}

// ClearAllData удаляет все записи всех типов ресурсов вместе с sync
// метаданными. Полный teardown.
func (s *Storage) ClearAllData(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketRecords, bucketMetadata} {
			if err := tx.DeleteBucket(name); err != nil && err != bbolt.ErrBucketNotFound {
				return fmt.Errorf("failed to delete bucket %s: %w", name, err)
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return fmt.Errorf("failed to recreate bucket %s: %w", name, err)
			}
		}
		return nil
	})

	if err != nil {
		return fmt.Errorf("clear transaction failed: %w", err)
	}

	return nil
}

// PendingCount возвращает количество записей, ожидающих подтверждения сервера
func (s *Storage) PendingCount(ctx context.Context, resourceType string) (int, error) {
	records, err := s.GetModifiedSince(ctx, resourceType, 0)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := range records {
		if records[i].LocalOnly {
			count++
		}
	}
	return count, nil
}

// resourceBucket возвращает вложенный bucket типа ресурса (nil если нет)
func resourceBucket(tx *bbolt.Tx, resourceType string) *bbolt.Bucket {
	parent := tx.Bucket(bucketRecords)
	if parent == nil {
		return nil
	}
	return parent.Bucket([]byte(resourceType))
}

// sortRecords упорядочивает по ID для стабильного обхода
func sortRecords(records []api.Record) {
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
}
