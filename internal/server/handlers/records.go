// Package handlers реализует HTTP обработчики эталонного сервера
// синхронизации: коллекция типа ресурса с дельта-фильтрацией, дешевая
// проверка обновлений и batch прием клиентских изменений.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/vmikh/offsync/internal/validation"
	"github.com/vmikh/offsync/pkg/api"
)

// contextKey тип для ключей контекста
type contextKey string

// UserIDKey ключ для хранения user_id в контексте
const UserIDKey contextKey = "user_id"

// GetUserID извлекает user_id из контекста запроса
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

// RecordStore определяет интерфейс хранилища для обработчиков
type RecordStore interface {
	SaveRecord(ctx context.Context, userID, resourceType string, record api.Record) (bool, error)
	GetRecords(ctx context.Context, userID, resourceType string) ([]api.Record, error)
	GetRecordsSince(ctx context.Context, userID, resourceType string, since int64) ([]api.Record, error)
	HasUpdatesSince(ctx context.Context, userID, resourceType string, since int64) (bool, error)
}

// RecordsHandler handles synchronization requests
type RecordsHandler struct {
	logger  *slog.Logger
	storage RecordStore
}

// NewRecordsHandler creates a new records handler
func NewRecordsHandler(logger *slog.Logger, storage RecordStore) *RecordsHandler {
	return &RecordsHandler{
		logger:  logger,
		storage: storage,
	}
}

// Register регистрирует маршруты обработчика
func (h *RecordsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/{resource}", h.Collection)
	mux.HandleFunc("GET /api/{resource}/updates", h.Updates)
	mux.HandleFunc("POST /api/{resource}/batch", h.Batch)
}

// Collection обрабатывает GET /api/<resource>.
// С заголовком X-Last-Sync возвращается дельта, без него - вся коллекция.
func (h *RecordsHandler) Collection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, resource, ok := h.requestIdentity(w, r)
	if !ok {
		return
	}

	lastSync, ok := h.parseLastSync(w, r)
	if !ok {
		return
	}

	var (
		records []api.Record
		err     error
	)
	if lastSync > 0 {
		records, err = h.storage.GetRecordsSince(ctx, userID, resource, lastSync)
	} else {
		records, err = h.storage.GetRecords(ctx, userID, resource)
	}
	if err != nil {
		h.logger.Error("Failed to get records", "error", err, "user_id", userID, "resource", resource)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, records)
	h.logger.Info("Collection served",
		"user_id", userID, "resource", resource, "since", lastSync, "count", len(records))
}

// Updates обрабатывает GET /api/<resource>/updates: дешевая проверка
// наличия изменений после X-Last-Sync, с дельтой в ответе при их наличии
func (h *RecordsHandler) Updates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, resource, ok := h.requestIdentity(w, r)
	if !ok {
		return
	}

	lastSync, ok := h.parseLastSync(w, r)
	if !ok {
		return
	}

	has, err := h.storage.HasUpdatesSince(ctx, userID, resource, lastSync)
	if err != nil {
		h.logger.Error("Failed to check updates", "error", err, "user_id", userID, "resource", resource)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.UpdatesResponse{HasUpdates: has}
	if has {
		resp.Data, err = h.storage.GetRecordsSince(ctx, userID, resource, lastSync)
		if err != nil {
			h.logger.Error("Failed to get delta", "error", err, "user_id", userID, "resource", resource)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}

	h.writeJSON(w, resp)
}

// Batch обрабатывает POST /api/<resource>/batch: прием клиентских
// изменений с last-write-wins разрешением на сервере. Отвергнутая
// запись не ошибка: она учитывается в conflicts, клиент получает
// серверную версию при следующем fetch.
func (h *RecordsHandler) Batch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, resource, ok := h.requestIdentity(w, r)
	if !ok {
		return
	}

	var req api.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode batch request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	accepted, conflicts := 0, 0
	for _, record := range req.Changes {
		if record.ID == "" {
			h.writeError(w, http.StatusUnprocessableEntity, "record without id")
			return
		}

		saved, err := h.storage.SaveRecord(ctx, userID, resource, record)
		if err != nil {
			h.logger.Error("Failed to save record", "error", err, "record_id", record.ID)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if saved {
			accepted++
		} else {
			conflicts++
			h.logger.Debug("Record not saved (server version is newer)", "record_id", record.ID)
		}
	}

	h.writeJSON(w, api.BatchResponse{Accepted: accepted, Conflicts: conflicts})
	h.logger.Info("Batch processed",
		"user_id", userID, "resource", resource,
		"received", len(req.Changes), "accepted", accepted, "conflicts", conflicts)
}

// requestIdentity достает user_id из контекста (установлен auth
// middleware) и валидирует имя типа ресурса из пути
func (h *RecordsHandler) requestIdentity(w http.ResponseWriter, r *http.Request) (userID, resource string, ok bool) {
	userID, found := GetUserID(r.Context())
	if !found {
		h.logger.Error("User ID not found in context")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return "", "", false
	}

	resource = r.PathValue("resource")
	if err := validation.ValidateResourceName(resource); err != nil {
		h.logger.Warn("Invalid resource name", "resource", resource, "error", err)
		h.writeError(w, http.StatusBadRequest, "invalid resource name")
		return "", "", false
	}

	return userID, resource, true
}

// parseLastSync разбирает заголовок X-Last-Sync (RFC3339Nano) в unix millis.
// Отсутствующий заголовок означает первую синхронизацию (0).
func (h *RecordsHandler) parseLastSync(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.Header.Get(api.HeaderLastSync)
	if raw == "" {
		return 0, true
	}

	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		h.logger.Warn("Invalid X-Last-Sync header", "value", raw, "error", err)
		h.writeError(w, http.StatusBadRequest, "invalid X-Last-Sync header")
		return 0, false
	}

	return ts.UnixMilli(), true
}

func (h *RecordsHandler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

func (h *RecordsHandler) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(api.ErrorResponse{Error: msg}); err != nil {
		h.logger.Error("Failed to encode error response", "error", err)
	}
}
