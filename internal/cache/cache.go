// Package cache реализует edge-кэш исходящих HTTP запросов: классификация
// по URL паттернам, три стратегии обслуживания (cache-first, network-first,
// stale-while-revalidate), TTL и лимит записей с вытеснением старейших,
// структурированный offline fallback.
//
// Кэш прозрачен для вызывающих: он встраивается как http.RoundTripper в
// http.Client и не имеет собственного API за пределами управляющих
// операций (Warm, Clear, Metrics). Хранилище ответов никак не связано с
// локальным хранилищем записей - их можно чистить независимо.
package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vmikh/offsync/internal/config"
	"github.com/vmikh/offsync/pkg/api"
)

const (
	// NetworkTimeout таймаут сетевой попытки network-first стратегии
	NetworkTimeout = 5 * time.Second

	// maxBodySize записи крупнее не кэшируются (аналог quota exceeded:
	// ответ все равно отдается вызывающему, просто без кэширования)
	maxBodySize = 4 << 20

	// headerCache диагностический заголовок источника ответа
	headerCache = "X-Cache"

	// dynamicBucket имя bucket'а по умолчанию для неклассифицированных путей
	dynamicBucket = "dynamic"
)

// Transport реализует http.RoundTripper поверх базового транспорта
type Transport struct {
	base    http.RoundTripper
	logger  *slog.Logger
	metrics *metrics
	now     func() time.Time

	mu      sync.Mutex // защищает содержимое всех bucket'ов
	buckets []*bucket

	refreshWG sync.WaitGroup
}

// New создает edge-кэш по конфигурации bucket'ов.
// base == nil означает http.DefaultTransport.
func New(cfg config.CacheConfig, base http.RoundTripper, logger *slog.Logger) (*Transport, error) {
	if base == nil {
		base = http.DefaultTransport
	}

	buckets := make([]*bucket, 0, len(cfg.Buckets))
	for _, bc := range cfg.Buckets {
		b, err := newBucket(bc)
		if err != nil {
			return nil, fmt.Errorf("failed to build cache bucket: %w", err)
		}
		buckets = append(buckets, b)
	}

	return &Transport{
		base:    base,
		buckets: buckets,
		logger:  logger,
		metrics: newMetrics(),
		now:     time.Now,
	}, nil
}

// RoundTrip обслуживает запрос согласно стратегии его bucket'а.
// Не-GET запросы и неклассифицированные пути идут мимо кэша.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return t.base.RoundTrip(req)
	}

	b := t.classify(req.URL.Path)
	if b == nil {
		return t.base.RoundTrip(req)
	}

	switch b.cfg.Strategy {
	case config.CacheFirst:
		return t.cacheFirst(b, req)
	case config.NetworkFirst:
		return t.networkFirst(b, req)
	default:
		return t.staleWhileRevalidate(b, req)
	}
}

// classify возвращает первый bucket, чей паттерн совпал с путем;
// если ни один не совпал - bucket с именем dynamic (или nil)
func (t *Transport) classify(path string) *bucket {
	var dynamic *bucket
	for _, b := range t.buckets {
		if b.matches(path) {
			return b
		}
		if b.cfg.Name == dynamicBucket {
			dynamic = b
		}
	}
	return dynamic
}

// cacheFirst: кэш при наличии записи (просроченная все равно отдается,
// обновление уходит в фон), иначе сеть со store при успехе
func (t *Transport) cacheFirst(b *bucket, req *http.Request) (*http.Response, error) {
	key := cacheKey(req)

	t.mu.Lock()
	e, ok := b.get(key)
	t.mu.Unlock()

	if ok {
		t.metrics.hits.WithLabelValues(b.cfg.Name).Inc()
		if e.age(t.now()) > b.cfg.MaxAge {
			// Stale запись не блокирует вызывающего
			t.asyncRefresh(b, req)
			return t.respondFromEntry(e, req, "stale"), nil
		}
		return t.respondFromEntry(e, req, "hit"), nil
	}

	t.metrics.misses.WithLabelValues(b.cfg.Name).Inc()

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.metrics.netErrors.WithLabelValues(b.cfg.Name).Inc()
		return t.offlineFallback(b, req), nil
	}

	return t.storeAndRespond(b, key, req, resp)
}

// networkFirst: сеть с фиксированным таймаутом, при отказе - кэш,
// при пустом кэше - offline fallback
func (t *Transport) networkFirst(b *bucket, req *http.Request) (*http.Response, error) {
	key := cacheKey(req)

	resp, err := t.fetchWithTimeout(req)
	if err == nil {
		return t.storeAndRespond(b, key, req, resp)
	}

	t.metrics.netErrors.WithLabelValues(b.cfg.Name).Inc()
	t.logger.Debug("Network-first fetch failed, trying cache",
		"url", req.URL.String(), "error", err)

	t.mu.Lock()
	e, ok := b.get(key)
	t.mu.Unlock()

	if ok {
		t.metrics.hits.WithLabelValues(b.cfg.Name).Inc()
		return t.respondFromEntry(e, req, "stale"), nil
	}

	t.metrics.misses.WithLabelValues(b.cfg.Name).Inc()
	return t.offlineFallback(b, req), nil
}

// staleWhileRevalidate: кэш немедленно, сетевое обновление всегда уходит
// в фон; без кэша - ожидание сети
func (t *Transport) staleWhileRevalidate(b *bucket, req *http.Request) (*http.Response, error) {
	key := cacheKey(req)

	t.mu.Lock()
	e, ok := b.get(key)
	t.mu.Unlock()

	if ok {
		t.metrics.hits.WithLabelValues(b.cfg.Name).Inc()
		t.asyncRefresh(b, req)
		return t.respondFromEntry(e, req, "hit"), nil
	}

	t.metrics.misses.WithLabelValues(b.cfg.Name).Inc()

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.metrics.netErrors.WithLabelValues(b.cfg.Name).Inc()
		return t.offlineFallback(b, req), nil
	}

	return t.storeAndRespond(b, key, req, resp)
}

// fetchWithTimeout выполняет сетевой вызов с жестким таймаутом,
// отвязанным от времени жизни исходного контекста
func (t *Transport) fetchWithTimeout(req *http.Request) (*http.Response, error) {
	ctx, cancel := context.WithTimeout(req.Context(), NetworkTimeout)
	resp, err := t.base.RoundTrip(req.Clone(ctx))
	if err != nil {
		cancel()
		return nil, err
	}

	// Тело дочитывается до cancel: буферизуем его сразу
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	_ = resp.Body.Close()
	cancel()
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}

// storeAndRespond кэширует успешный ответ и возвращает его вызывающему.
// Ошибка записи (слишком крупное тело) глотается: ответ уходит некэшированным.
func (t *Transport) storeAndRespond(b *bucket, key string, req *http.Request, resp *http.Response) (*http.Response, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))

	if !cacheable(resp, len(body)) {
		return resp, nil
	}

	t.store(b, key, resp, body)
	return resp, nil
}

// store помещает запись в bucket под глобальным замком. Приведение
// bucket'а к лимиту уходит в фон и не задерживает ответ вызывающему.
func (t *Transport) store(b *bucket, key string, resp *http.Response, body []byte) {
	e := &entry{
		key:    key,
		status: resp.StatusCode,
		header: resp.Header.Clone(),
		body:   append([]byte(nil), body...),
	}

	t.mu.Lock()
	b.put(e, t.now())
	t.mu.Unlock()

	t.refreshWG.Add(1)
	go func() {
		defer t.refreshWG.Done()

		t.mu.Lock()
		evicted := b.evict()
		t.mu.Unlock()

		if evicted > 0 {
			t.metrics.evictions.WithLabelValues(b.cfg.Name).Add(float64(evicted))
		}
	}()
}

// asyncRefresh обновляет запись с сети в фоне, не задерживая ответ
func (t *Transport) asyncRefresh(b *bucket, req *http.Request) {
	// Исходный контекст умрет вместе с запросом
	refreshReq := req.Clone(context.Background())

	t.refreshWG.Add(1)
	go func() {
		defer t.refreshWG.Done()

		resp, err := t.fetchWithTimeout(refreshReq)
		if err != nil {
			t.metrics.netErrors.WithLabelValues(b.cfg.Name).Inc()
			t.logger.Debug("Background refresh failed",
				"url", refreshReq.URL.String(), "error", err)
			return
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
		_ = resp.Body.Close()
		if err != nil || !cacheable(resp, len(body)) {
			return
		}

		t.store(b, cacheKey(refreshReq), resp, body)
	}()
}

// respondFromEntry синтезирует http.Response из закэшированной записи
func (t *Transport) respondFromEntry(e *entry, req *http.Request, cacheStatus string) *http.Response {
	header := e.header.Clone()
	header.Set(headerCache, cacheStatus)

	return &http.Response{
		StatusCode:    e.status,
		Status:        http.StatusText(e.status),
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(e.body)),
		ContentLength: int64(len(e.body)),
		Request:       req,
	}
}

// offlineFallback отвечает, когда ни кэш, ни сеть недоступны:
// навигационным запросам - закэшированный корневой документ,
// запросам данных - структурированный offline payload с 503
func (t *Transport) offlineFallback(b *bucket, req *http.Request) *http.Response {
	t.metrics.fallbacks.WithLabelValues(b.cfg.Name).Inc()

	if isNavigation(req) {
		if root := t.cachedRoot(); root != nil {
			return t.respondFromEntry(root, req, "offline-fallback")
		}
	}

	payload, _ := json.Marshal(api.OfflineResponse{
		Error:     "Offline",
		Offline:   true,
		Timestamp: t.now().UnixMilli(),
	})

	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	header.Set(headerCache, "offline-fallback")

	return &http.Response{
		StatusCode:    http.StatusServiceUnavailable,
		Status:        http.StatusText(http.StatusServiceUnavailable),
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(payload)),
		ContentLength: int64(len(payload)),
		Request:       req,
	}
}

// cachedRoot ищет закэшированный корневой документ для навигационного fallback
func (t *Transport) cachedRoot() *entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, b := range t.buckets {
		if e, ok := b.get("/"); ok {
			return e
		}
	}
	return nil
}

// Warm прогревает кэш списком путей. Best-effort: отдельные ошибки
// логируются и пропускаются, прогрев не фатален для старта.
func (t *Transport) Warm(ctx context.Context, baseURL string, paths []string) {
	for _, p := range paths {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+p, nil)
		if err != nil {
			t.logger.Warn("Precache skipped: bad request", "path", p, "error", err)
			continue
		}

		resp, err := t.RoundTrip(req)
		if err != nil {
			t.logger.Warn("Precache skipped: fetch failed", "path", p, "error", err)
			continue
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}
}

// Clear чистит именованные bucket'ы (пустой список = все).
// Возвращает количество удаленных записей.
func (t *Transport) Clear(names []string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	removed := 0
	for _, b := range t.buckets {
		if len(names) > 0 && !wanted[b.cfg.Name] {
			continue
		}
		removed += b.size()
		b.clear()
	}
	return removed
}

// Metrics возвращает снимок счетчиков для управляющего канала
func (t *Transport) Metrics() map[string]int64 {
	return t.metrics.snapshot()
}

// MetricsRegistry отдает prometheus registry кэша для экспорта (promhttp)
func (t *Transport) MetricsRegistry() *prometheus.Registry {
	return t.metrics.Registry()
}

// cacheKey строит ключ записи из пути и query запроса
func cacheKey(req *http.Request) string {
	return req.URL.RequestURI()
}

// cacheable: кэшируются только успешные некрупные ответы без запрета
func cacheable(resp *http.Response, bodyLen int) bool {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false
	}
	if bodyLen > maxBodySize {
		return false
	}
	if strings.Contains(resp.Header.Get("Cache-Control"), "no-store") {
		return false
	}
	return true
}

// isNavigation определяет навигационный запрос по Accept заголовку
func isNavigation(req *http.Request) bool {
	return strings.Contains(req.Header.Get("Accept"), "text/html")
}
