// Package engine реализует координатор синхронизации: полный цикл
// fetch -> resolve -> apply -> push по каждому типу ресурса, планировщик
// периодических циклов и управляющий канал для хост-приложения.
//
// Координатор однопоточен по построению: глобальный single-flight флаг
// не допускает параллельных циклов, повторный триггер во время работы -
// no-op. Повтор после ошибки не планируется отдельно: следующий тик
// таймера сам повторит цикл.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	apiclient "github.com/vmikh/offsync/internal/client/api"
	"github.com/vmikh/offsync/internal/client/storage"
	"github.com/vmikh/offsync/internal/config"
	"github.com/vmikh/offsync/internal/crosstab"
	"github.com/vmikh/offsync/internal/resolver"
	wire "github.com/vmikh/offsync/pkg/api"
)

// ErrSyncInProgress возвращается при попытке запустить цикл,
// пока предыдущий не завершился. Для планировщика это не ошибка.
var ErrSyncInProgress = errors.New("sync already in progress")

// Listener получает уведомление после применения данных типа ресурса
type Listener func(records []wire.Record)

// SyncResult содержит итоги одного цикла синхронизации типа ресурса
type SyncResult struct {
	Pulled  int // записей получено с сервера
	Pushed  int // локальных изменений принято сервером
	Applied int // записей сохранено локально после разрешения конфликтов
}

// CacheControl операции edge-кэша, нужные управляющему каналу
type CacheControl interface {
	Clear(names []string) int
	Metrics() map[string]int64
}

// Engine координирует синхронизацию всех типов ресурсов
type Engine struct {
	cfg      *config.Config
	store    storage.LocalStore
	metadata storage.MetadataStorage
	client   apiclient.ClientAPI
	resolver *resolver.Resolver
	cache    CacheControl // nil = движок без edge-кэша
	bus      *crosstab.Bus
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	syncing bool
	online  bool

	subsMu  sync.Mutex
	subs    map[string]map[int]Listener
	nextSub int

	runMu   sync.Mutex
	cancel  context.CancelFunc
	tickers map[string]*time.Ticker
	wg      sync.WaitGroup
}

// New создает координатор. Резолвер конфликтов строится из реестра
// конфигурации; неизвестные стратегии отбрасываются еще при загрузке.
func New(
	cfg *config.Config,
	store storage.LocalStore,
	metadata storage.MetadataStorage,
	client apiclient.ClientAPI,
	cache CacheControl,
	bus *crosstab.Bus,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		cfg:      cfg,
		store:    store,
		metadata: metadata,
		client:   client,
		resolver: resolver.New(cfg, logger),
		cache:    cache,
		bus:      bus,
		logger:   logger,
		now:      time.Now,
		online:   true,
		subs:     make(map[string]map[int]Listener),
		tickers:  make(map[string]*time.Ticker),
	}
}

// SyncDataType выполняет один полный цикл синхронизации типа ресурса.
// Если цикл уже идет - возвращает ErrSyncInProgress не начиная работу.
func (e *Engine) SyncDataType(ctx context.Context, resourceType string) (*SyncResult, error) {
	if !e.beginSync() {
		e.logger.Debug("Sync already in progress, skipping", "resource", resourceType)
		return nil, ErrSyncInProgress
	}
	defer e.endSync()

	return e.syncResource(ctx, resourceType)
}

// SyncAll последовательно синхронизирует все зарегистрированные типы.
// Ошибка одного типа не прерывает остальные, кроме ухода сервера в offline.
func (e *Engine) SyncAll(ctx context.Context) (map[string]*SyncResult, error) {
	if !e.beginSync() {
		e.logger.Debug("Sync already in progress, skipping full sync")
		return nil, ErrSyncInProgress
	}
	defer e.endSync()

	results := make(map[string]*SyncResult, len(e.cfg.Resources))
	for _, r := range e.cfg.Resources {
		res, err := e.syncResource(ctx, r.Name)
		if err != nil {
			e.logger.Warn("Resource sync failed", "resource", r.Name, "error", err)
			if errors.Is(err, apiclient.ErrOffline) {
				// Сервер недоступен, остальные типы ждут следующего тика
				break
			}
			continue
		}
		results[r.Name] = res
	}
	return results, nil
}

// CheckForUpdates выполняет дешевую real-time проверку и применяет дельту
// напрямую, без полного цикла. Возвращает признак наличия обновлений.
// Делит single-flight флаг с полным циклом: пока тот идет, проверка
// не выполняется и возвращает ErrSyncInProgress.
func (e *Engine) CheckForUpdates(ctx context.Context, resourceType string) (bool, error) {
	res, ok := e.cfg.Resource(resourceType)
	if !ok {
		return false, fmt.Errorf("unknown resource type %q", resourceType)
	}

	if !e.beginSync() {
		e.logger.Debug("Sync already in progress, skipping update check", "resource", resourceType)
		return false, ErrSyncInProgress
	}
	defer e.endSync()

	lastSync := e.lastSyncFor(ctx, resourceType)

	resp, err := e.client.CheckUpdates(ctx, res.Endpoint, lastSync)
	if err != nil {
		if errors.Is(err, apiclient.ErrOffline) {
			e.markOffline()
		}
		return false, fmt.Errorf("failed to check updates for %s: %w", resourceType, err)
	}

	if !resp.HasUpdates {
		return false, nil
	}

	if err := e.applyRemote(ctx, resourceType, resp.Data, true); err != nil {
		return false, err
	}

	e.saveLastSync(ctx, resourceType)
	return true, nil
}

// OnSync подписывает на уведомления о примененных данных типа ресурса.
// Возвращенная функция снимает подписку.
func (e *Engine) OnSync(resourceType string, fn Listener) func() {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()

	if e.subs[resourceType] == nil {
		e.subs[resourceType] = make(map[int]Listener)
	}
	id := e.nextSub
	e.nextSub++
	e.subs[resourceType][id] = fn

	return func() {
		e.subsMu.Lock()
		defer e.subsMu.Unlock()
		delete(e.subs[resourceType], id)
	}
}

// ClearAll полностью очищает локальное хранилище и edge-кэш.
// Метаданные синхронизации сбрасываются вместе с записями: следующий
// цикл каждого типа пройдет как первый.
func (e *Engine) ClearAll(ctx context.Context) error {
	if err := e.store.ClearAllData(ctx); err != nil {
		return fmt.Errorf("failed to clear local data: %w", err)
	}
	if e.cache != nil {
		removed := e.cache.Clear(nil)
		e.logger.Info("Edge cache cleared", "entries", removed)
	}
	return nil
}

// PendingCounts возвращает количество неподтвержденных локальных записей
// по каждому типу ресурса
func (e *Engine) PendingCounts(ctx context.Context) (map[string]int, error) {
	out := make(map[string]int, len(e.cfg.Resources))
	for _, r := range e.cfg.Resources {
		n, err := e.store.PendingCount(ctx, r.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to count pending records for %s: %w", r.Name, err)
		}
		out[r.Name] = n
	}
	return out, nil
}

// LastSyncTimes возвращает timestamp последней успешной синхронизации
// по каждому типу ресурса (0 = еще не синхронизировался)
func (e *Engine) LastSyncTimes(ctx context.Context) map[string]int64 {
	out := make(map[string]int64, len(e.cfg.Resources))
	for _, r := range e.cfg.Resources {
		out[r.Name] = e.lastSyncFor(ctx, r.Name)
	}
	return out
}

// Online сообщает текущее представление движка о доступности сервера
func (e *Engine) Online() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.online
}

// SetOnline переключает состояние сети. Переход offline -> online
// запускает полную синхронизацию в фоне.
func (e *Engine) SetOnline(online bool) {
	e.mu.Lock()
	was := e.online
	e.online = online
	e.mu.Unlock()

	if online && !was {
		e.logger.Info("Back online, starting full sync")
		go func() {
			if _, err := e.SyncAll(context.Background()); err != nil && !errors.Is(err, ErrSyncInProgress) {
				e.logger.Warn("Reconnect sync failed", "error", err)
			}
		}()
	}
}

// Foreground сигнализирует о возвращении приложения на передний план:
// при доступном сервере запускается полная синхронизация в фоне
func (e *Engine) Foreground() {
	if !e.Online() {
		return
	}
	go func() {
		if _, err := e.SyncAll(context.Background()); err != nil && !errors.Is(err, ErrSyncInProgress) {
			e.logger.Warn("Foreground sync failed", "error", err)
		}
	}()
}

// syncResource один цикл fetch -> resolve -> apply -> push.
// Вызывается только под single-flight флагом.
func (e *Engine) syncResource(ctx context.Context, resourceType string) (*SyncResult, error) {
	res, ok := e.cfg.Resource(resourceType)
	if !ok {
		return nil, fmt.Errorf("unknown resource type %q", resourceType)
	}

	e.logger.Info("Starting synchronization", "resource", resourceType)

	lastSync := e.lastSyncFor(ctx, resourceType)

	local, err := e.store.GetModifiedSince(ctx, resourceType, lastSync)
	if err != nil {
		return nil, fmt.Errorf("failed to get local changes: %w", err)
	}

	server, err := e.client.GetCollection(ctx, res.Endpoint, lastSync)
	if err != nil {
		if errors.Is(err, apiclient.ErrOffline) {
			e.markOffline()
		}
		return nil, fmt.Errorf("failed to fetch %s collection: %w", resourceType, err)
	}

	resolved := e.resolver.Resolve(resourceType, local, server)

	if err := e.store.UpdateOfflineData(ctx, resourceType, resolved); err != nil {
		return nil, fmt.Errorf("failed to apply resolved records: %w", err)
	}

	result := &SyncResult{
		Pulled:  len(server),
		Applied: len(resolved),
	}

	// На сервер уходят только неподтвержденные локальные изменения
	pending := make([]wire.Record, 0)
	for _, r := range resolved {
		if r.LocalOnly {
			pending = append(pending, r)
		}
	}

	if len(pending) > 0 {
		resp, err := e.client.PushBatch(ctx, res.Endpoint, pending)
		switch {
		case apiclient.IsRejection(err):
			// Отвергнутые записи остаются localOnly до следующего цикла
			e.logger.Warn("Server rejected batch", "resource", resourceType, "error", err)
		case err != nil:
			if errors.Is(err, apiclient.ErrOffline) {
				e.markOffline()
			}
			return nil, fmt.Errorf("failed to push local changes: %w", err)
		default:
			ids := make([]string, len(pending))
			for i, r := range pending {
				ids[i] = r.ID
			}
			if err := e.store.MarkSynced(ctx, resourceType, ids); err != nil {
				return nil, fmt.Errorf("failed to mark records synced: %w", err)
			}
			result.Pushed = resp.Accepted
			if resp.Conflicts > 0 {
				e.logger.Info("Server reported conflicts", "resource", resourceType, "count", resp.Conflicts)
			}
		}
	}

	e.saveLastSync(ctx, resourceType)

	e.notify(resourceType, resolved)
	e.publishSync(resourceType, resolved)

	e.logger.Info("Synchronization completed",
		"resource", resourceType,
		"pulled", result.Pulled,
		"pushed", result.Pushed,
		"applied", result.Applied)

	return result, nil
}

// applyRemote применяет полученные извне записи (real-time дельта или
// событие другого экземпляра) напрямую, минуя резолвер: такие записи
// уже разрешены источником, повторный прогон через локальную стратегию
// мог бы их отбросить. publish управляет ретрансляцией на шину: события
// с шины не публикуются повторно, иначе экземпляры зациклят друг друга.
// Вызывается только под single-flight флагом.
func (e *Engine) applyRemote(ctx context.Context, resourceType string, records []wire.Record, publish bool) error {
	if len(records) == 0 {
		return nil
	}

	if err := e.store.UpdateOfflineData(ctx, resourceType, records); err != nil {
		return fmt.Errorf("failed to apply records: %w", err)
	}

	e.notify(resourceType, records)
	if publish {
		e.publishSync(resourceType, records)
	}
	return nil
}

func (e *Engine) beginSync() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.syncing {
		return false
	}
	e.syncing = true
	return true
}

func (e *Engine) endSync() {
	e.mu.Lock()
	e.syncing = false
	e.mu.Unlock()
}

func (e *Engine) markOffline() {
	e.mu.Lock()
	was := e.online
	e.online = false
	e.mu.Unlock()
	if was {
		e.logger.Info("Server unreachable, switching to offline mode")
	}
}

func (e *Engine) lastSyncFor(ctx context.Context, resourceType string) int64 {
	ts, err := e.metadata.GetLastSyncTimestamp(ctx, resourceType)
	if err != nil {
		e.logger.Warn("Failed to get last sync timestamp, using 0",
			"resource", resourceType, "error", err)
		return 0
	}
	return ts
}

func (e *Engine) saveLastSync(ctx context.Context, resourceType string) {
	if err := e.metadata.SaveLastSyncTimestamp(ctx, resourceType, e.now().UnixMilli()); err != nil {
		// Не прерываем цикл: следующий просто заберет больше данных
		e.logger.Warn("Failed to save last sync timestamp",
			"resource", resourceType, "error", err)
	}
}

func (e *Engine) notify(resourceType string, records []wire.Record) {
	e.subsMu.Lock()
	listeners := make([]Listener, 0, len(e.subs[resourceType]))
	for _, fn := range e.subs[resourceType] {
		listeners = append(listeners, fn)
	}
	e.subsMu.Unlock()

	for _, fn := range listeners {
		fn(records)
	}
}

func (e *Engine) publishSync(resourceType string, records []wire.Record) {
	if e.bus == nil {
		return
	}
	e.bus.Publish(crosstab.Message{
		Channel:  crosstab.ChannelFor(resourceType),
		Type:     crosstab.TypeSynced,
		Resource: resourceType,
		Records:  records,
	})
}
