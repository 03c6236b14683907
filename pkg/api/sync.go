package api

// HTTP заголовки протокола синхронизации
const (
	// HeaderLastSync несет timestamp последней успешной синхронизации
	// клиента в формате RFC3339; сервер отдает только изменения после него
	HeaderLastSync = "X-Last-Sync"

	// HeaderUserID несет непрозрачный идентификатор пользователя
	HeaderUserID = "X-User-ID"
)

// UpdatesResponse представляет ответ легковесной проверки обновлений
// GET /api/<type>/updates
type UpdatesResponse struct {
	Data       []Record `json:"data"`       // изменения с момента X-Last-Sync (пусто если нет)
	HasUpdates bool     `json:"hasUpdates"` // дешевый сигнал "есть ли что забирать"
}

// BatchRequest представляет пакетную отправку локальных изменений
// POST /api/<type>/batch
type BatchRequest struct {
	Changes []Record `json:"changes"`
}

// BatchResponse представляет ответ сервера на пакетную отправку
type BatchResponse struct {
	Accepted  int `json:"accepted"`  // количество принятых записей
	Conflicts int `json:"conflicts"` // количество записей, отклоненных как устаревшие
}

// OfflineResponse представляет структурированный offline fallback:
// возвращается с кодом 503, когда ни кэш, ни сеть не могут обслужить запрос.
// Вызывающие обязаны трактовать его как retryable ошибку, а не как
// удаленный ресурс.
type OfflineResponse struct {
	Error     string `json:"error"`     // всегда "Offline"
	Offline   bool   `json:"offline"`   // всегда true
	Timestamp int64  `json:"timestamp"` // unix-миллисекунды момента ответа
}

// ErrorResponse представляет ответ сервера с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
