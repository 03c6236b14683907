package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	wire "github.com/vmikh/offsync/pkg/api"
)

// NetworkTimeout фиксированный таймаут сетевых вызовов.
// Совпадает с таймаутом network-first стратегии edge-кэша: координатор
// переиспользует его, чтобы ограничить худшую длительность цикла.
const NetworkTimeout = 5 * time.Second

// ErrOffline возвращается, когда запрос обслужен offline fallback'ом
// (503 с offline:true). Retryable, не означает удаление ресурса.
var ErrOffline = errors.New("server offline")

// ServerError представляет отказ сервера (не-2xx без offline маркера)
type ServerError struct {
	Message string
	Status  int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

// IsRejection сообщает, является ли ошибка отказом сервера 4xx
// (запись остается localOnly до ручного/будущего разрешения)
func IsRejection(err error) bool {
	var se *ServerError
	return errors.As(err, &se) && se.Status >= 400 && se.Status < 500
}

// Client представляет HTTP клиент для взаимодействия с Server API
type Client struct {
	httpClient *http.Client
	baseURL    string
	userID     string
}

// NewClient создает новый API клиент.
// transport может быть edge-кэшом (или nil для http.DefaultTransport).
func NewClient(baseURL, userID string, transport http.RoundTripper) *Client {
	return &Client{
		baseURL: baseURL,
		userID:  userID,
		httpClient: &http.Client{
			Timeout:   NetworkTimeout,
			Transport: transport,
		},
	}
}

// GetCollection запрашивает состояние коллекции типа ресурса
func (c *Client) GetCollection(ctx context.Context, endpoint string, lastSync int64) ([]wire.Record, error) {
	var records []wire.Record
	if err := c.doRequest(ctx, http.MethodGet, endpoint, lastSync, nil, &records); err != nil {
		return nil, fmt.Errorf("collection request failed: %w", err)
	}
	return records, nil
}

// CheckUpdates выполняет легковесную проверку обновлений
func (c *Client) CheckUpdates(ctx context.Context, endpoint string, lastSync int64) (*wire.UpdatesResponse, error) {
	var resp wire.UpdatesResponse
	if err := c.doRequest(ctx, http.MethodGet, endpoint+"/updates", lastSync, nil, &resp); err != nil {
		return nil, fmt.Errorf("updates request failed: %w", err)
	}
	return &resp, nil
}

// PushBatch отправляет пакет локальных изменений
func (c *Client) PushBatch(ctx context.Context, endpoint string, changes []wire.Record) (*wire.BatchResponse, error) {
	req := wire.BatchRequest{Changes: changes}
	var resp wire.BatchResponse
	if err := c.doRequest(ctx, http.MethodPost, endpoint+"/batch", 0, req, &resp); err != nil {
		return nil, fmt.Errorf("batch request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос с протокольными заголовками
func (c *Client) doRequest(ctx context.Context, method, path string, lastSync int64, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userID != "" {
		req.Header.Set(wire.HeaderUserID, c.userID)
	}
	if lastSync > 0 {
		req.Header.Set(wire.HeaderLastSync, time.UnixMilli(lastSync).UTC().Format(time.RFC3339Nano))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Offline fallback edge-кэша - retryable, а не отказ сервера
		var offline wire.OfflineResponse
		if json.Unmarshal(respBody, &offline) == nil && offline.Offline {
			return ErrOffline
		}

		var errResp wire.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return &ServerError{Status: resp.StatusCode, Message: errResp.Error}
		}
		return &ServerError{Status: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
