package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmikh/offsync/internal/server/storage"
	"github.com/vmikh/offsync/pkg/api"
)

// SaveRecord creates or updates a record using last-write-wins logic.
// Запись принимается только если ее updatedAt строго больше существующей:
// при равных timestamp'ах выигрывает серверная версия.
// Returns true if the record was accepted.
func (s *Storage) SaveRecord(ctx context.Context, userID, resourceType string, record api.Record) (bool, error) {
	existing, err := s.GetRecord(ctx, userID, resourceType, record.ID)
	if err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to check existing record: %w", err)
	}

	if existing != nil && !record.IsNewerThan(existing) {
		return false, nil
	}

	// Маркер localOnly - чисто клиентское состояние, сервер его не хранит
	record.LocalOnly = false

	payload, err := json.Marshal(record)
	if err != nil {
		return false, fmt.Errorf("failed to marshal record: %w", err)
	}

	query := `
		INSERT INTO records (user_id, resource_type, id, updated_at, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, resource_type, id)
		DO UPDATE SET updated_at = excluded.updated_at, payload = excluded.payload
	`

	if _, err := s.db.ExecContext(ctx, query,
		userID, resourceType, record.ID, record.UpdatedAt, payload); err != nil {
		return false, fmt.Errorf("failed to save record: %w", err)
	}

	return true, nil
}

// GetRecord retrieves a single record by id.
// Returns ErrRecordNotFound if the record doesn't exist.
func (s *Storage) GetRecord(ctx context.Context, userID, resourceType, id string) (*api.Record, error) {
	query := `
		SELECT payload
		FROM records
		WHERE user_id = ? AND resource_type = ? AND id = ?
	`

	var payload []byte
	err := s.db.QueryRowContext(ctx, query, userID, resourceType, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	record := &api.Record{}
	if err := json.Unmarshal(payload, record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return record, nil
}

// GetRecords retrieves all records of the resource type for a user
func (s *Storage) GetRecords(ctx context.Context, userID, resourceType string) ([]api.Record, error) {
	query := `
		SELECT payload
		FROM records
		WHERE user_id = ? AND resource_type = ?
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, resourceType)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanRecords(rows)
}

// GetRecordsSince retrieves records modified after the given timestamp.
// Used for delta synchronization.
func (s *Storage) GetRecordsSince(ctx context.Context, userID, resourceType string, since int64) ([]api.Record, error) {
	query := `
		SELECT payload
		FROM records
		WHERE user_id = ? AND resource_type = ? AND updated_at > ?
		ORDER BY updated_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, resourceType, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query records since timestamp: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanRecords(rows)
}

// HasUpdatesSince reports whether any record changed after the timestamp
func (s *Storage) HasUpdatesSince(ctx context.Context, userID, resourceType string, since int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM records
			WHERE user_id = ? AND resource_type = ? AND updated_at > ?
		)
	`

	var exists int
	if err := s.db.QueryRowContext(ctx, query, userID, resourceType, since).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check updates: %w", err)
	}

	return exists != 0, nil
}

// scanRecords is a helper function to scan multiple records from rows
func scanRecords(rows *sql.Rows) ([]api.Record, error) {
	records := make([]api.Record, 0)

	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		var record api.Record
		if err := json.Unmarshal(payload, &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}
