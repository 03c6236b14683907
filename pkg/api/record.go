package api

import (
	"encoding/json"
	"fmt"
)

// Зарезервированные ключи документа. Всё остальное - произвольные поля ресурса.
const (
	fieldID        = "id"
	fieldUpdatedAt = "updatedAt"
	fieldLocalOnly = "localOnly"
)

// Record представляет один документ ресурса в том виде, в котором он
// ходит по проводу и лежит в локальном хранилище. Движку синхронизации
// важны только ID, UpdatedAt и LocalOnly; остальные поля непрозрачны.
type Record struct {
	Fields    map[string]any `json:"-"` // произвольные поля документа (без зарезервированных ключей)
	ID        string         `json:"-"` // уникален в пределах типа ресурса
	UpdatedAt int64          `json:"-"` // unix-миллисекунды последней мутации
	LocalOnly bool           `json:"-"` // запись создана/изменена локально и не подтверждена сервером
}

// MarshalJSON сериализует запись в плоский JSON объект:
// {"id": ..., "updatedAt": ..., "localOnly": ..., <остальные поля>}
func (r Record) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(r.Fields)+3)
	for k, v := range r.Fields {
		doc[k] = v
	}
	doc[fieldID] = r.ID
	doc[fieldUpdatedAt] = r.UpdatedAt
	if r.LocalOnly {
		doc[fieldLocalOnly] = true
	} else {
		// Подтвержденные записи маркер не несут
		delete(doc, fieldLocalOnly)
	}
	return json.Marshal(doc)
}

// UnmarshalJSON разбирает плоский JSON объект, отделяя зарезервированные
// ключи от произвольных полей документа.
func (r *Record) UnmarshalJSON(data []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal record: %w", err)
	}

	id, ok := doc[fieldID].(string)
	if !ok || id == "" {
		return fmt.Errorf("record has no %q field", fieldID)
	}

	updatedAt, err := toInt64(doc[fieldUpdatedAt])
	if err != nil {
		return fmt.Errorf("record %s: invalid %q: %w", id, fieldUpdatedAt, err)
	}

	localOnly, _ := doc[fieldLocalOnly].(bool)

	delete(doc, fieldID)
	delete(doc, fieldUpdatedAt)
	delete(doc, fieldLocalOnly)

	r.ID = id
	r.UpdatedAt = updatedAt
	r.LocalOnly = localOnly
	r.Fields = doc

	return nil
}

// IsNewerThan сравнивает две записи по UpdatedAt.
// Возвращает true только при строго большем timestamp:
// при равных значениях выигрывает существующая (серверная) версия,
// сервер является авторитетом по времени.
func (r *Record) IsNewerThan(other *Record) bool {
	return r.UpdatedAt > other.UpdatedAt
}

// Clone создает глубокую копию записи (поля копируются на один уровень:
// значения полей считаются immutable после разбора JSON).
func (r *Record) Clone() *Record {
	fields := make(map[string]any, len(r.Fields))
	for k, v := range r.Fields {
		fields[k] = v
	}
	return &Record{
		ID:        r.ID,
		UpdatedAt: r.UpdatedAt,
		LocalOnly: r.LocalOnly,
		Fields:    fields,
	}
}

// MergeFields возвращает пополевое объединение записи r (локальной) с other
// (серверной): берутся все поля обеих сторон, при совпадении ключа
// приоритет у локального значения. UpdatedAt результата - максимум из двух.
func (r *Record) MergeFields(other *Record) *Record {
	merged := other.Clone()
	for k, v := range r.Fields {
		merged.Fields[k] = v
	}
	merged.ID = r.ID
	merged.LocalOnly = r.LocalOnly || other.LocalOnly
	if r.UpdatedAt > merged.UpdatedAt {
		merged.UpdatedAt = r.UpdatedAt
	}
	return merged
}

// toInt64 приводит JSON значение timestamp к int64.
// encoding/json отдает числа как float64, json.Number появляется при UseNumber.
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return int64(n), nil
	case int64:
		return n, nil
	case json.Number:
		return n.Int64()
	default:
		return 0, fmt.Errorf("unexpected timestamp type %T", v)
	}
}
