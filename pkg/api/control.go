package api

// Типы сообщений управляющего канала движка.
// Простой request/response, не стриминговый протокол.
const (
	ControlSkipWaiting = "SKIP_WAITING"
	ControlGetMetrics  = "GET_METRICS"
	ControlClearCache  = "CLEAR_CACHE"
	ControlForceSync   = "FORCE_SYNC"
)

// ControlMessage представляет одно сообщение хост-приложения движку
type ControlMessage struct {
	Type       string   `json:"type"`
	CacheNames []string `json:"cacheNames,omitempty"` // для CLEAR_CACHE: имена bucket'ов (пусто = все)
	SyncTag    string   `json:"syncTag,omitempty"`    // для FORCE_SYNC: тип ресурса (пусто = все)
}

// ControlReply представляет ответ движка на управляющее сообщение
type ControlReply struct {
	Metrics  map[string]int64 `json:"metrics,omitempty"`  // счетчики кэша для GET_METRICS
	LastSync map[string]int64 `json:"lastSync,omitempty"` // timestamp последней синхронизации по типам
	Error    string           `json:"error,omitempty"`
	OK       bool             `json:"ok"`
}
