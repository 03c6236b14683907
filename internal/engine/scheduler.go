package engine

import (
	"context"
	"errors"
	"time"

	"github.com/vmikh/offsync/internal/config"
	"github.com/vmikh/offsync/internal/crosstab"
)

// realtimePollInterval период дешевой проверки обновлений для типов
// с sync_interval = 0
const realtimePollInterval = 5 * time.Second

// Start запускает планировщик: по горутине на тип ресурса плюс
// подписки на события других экземпляров. Повторный Start - no-op.
func (e *Engine) Start(ctx context.Context) {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	if e.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	for _, r := range e.cfg.Resources {
		interval := r.SyncInterval
		if interval == 0 {
			interval = realtimePollInterval
		}
		ticker := time.NewTicker(interval)
		e.tickers[r.Name] = ticker

		e.wg.Add(1)
		go e.runResource(runCtx, r, ticker)

		if e.bus != nil {
			e.wg.Add(1)
			go e.runCrosstab(runCtx, r.Name)
		}
	}

	e.logger.Info("Sync scheduler started", "resources", len(e.cfg.Resources))
}

// Stop останавливает планировщик и ждет завершения горутин
func (e *Engine) Stop() {
	e.runMu.Lock()
	cancel := e.cancel
	e.cancel = nil
	for name, ticker := range e.tickers {
		ticker.Stop()
		delete(e.tickers, name)
	}
	e.runMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	e.wg.Wait()
	e.logger.Info("Sync scheduler stopped")
}

// Reschedule заменяет таймер типа ресурса новым интервалом.
// Прежнее расписание отбрасывается, а не дополняется.
func (e *Engine) Reschedule(resourceType string, interval time.Duration) {
	if interval <= 0 {
		interval = realtimePollInterval
	}

	e.runMu.Lock()
	defer e.runMu.Unlock()

	if ticker, ok := e.tickers[resourceType]; ok {
		ticker.Reset(interval)
		e.logger.Info("Sync rescheduled", "resource", resourceType, "interval", interval)
	}
}

// runResource цикл одного типа ресурса: тик таймера запускает полный
// цикл (или real-time проверку), занятый движок пропускает тик без
// постановки в очередь. В offline тик сводится к дешевой проверке
// доступности сервера, чтобы transient сбой не отключил движок навсегда
func (e *Engine) runResource(ctx context.Context, res config.Resource, ticker *time.Ticker) {
	defer e.wg.Done()

	realtime := res.SyncInterval == 0

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !e.Online() {
				e.pingServer(ctx, res)
				continue
			}

			if realtime {
				if _, err := e.CheckForUpdates(ctx, res.Name); err != nil {
					e.logger.Debug("Update check failed", "resource", res.Name, "error", err)
				}
				continue
			}

			if _, err := e.SyncDataType(ctx, res.Name); err != nil && !errors.Is(err, ErrSyncInProgress) {
				e.logger.Warn("Scheduled sync failed", "resource", res.Name, "error", err)
			}
		}
	}
}

// pingServer дешево проверяет, вернулся ли сервер. Успешный ответ
// переводит движок в online, что само по себе запускает полную
// синхронизацию в фоне; результат проверки не применяется
func (e *Engine) pingServer(ctx context.Context, res config.Resource) {
	if _, err := e.client.CheckUpdates(ctx, res.Endpoint, e.lastSyncFor(ctx, res.Name)); err != nil {
		e.logger.Debug("Server still unreachable", "resource", res.Name, "error", err)
		return
	}
	e.SetOnline(true)
}

// runCrosstab применяет данные, синхронизированные другим экземпляром,
// без собственного похода в сеть. Во время идущего цикла событие
// отбрасывается: цикл все равно заберет эти записи с сервера
func (e *Engine) runCrosstab(ctx context.Context, resourceType string) {
	defer e.wg.Done()

	ch, unsubscribe := e.bus.Subscribe(crosstab.ChannelFor(resourceType))
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Origin == e.bus.ID() {
				continue
			}
			if !e.beginSync() {
				e.logger.Debug("Sync in progress, dropping cross-instance update",
					"resource", resourceType)
				continue
			}
			err := e.applyRemote(ctx, resourceType, msg.Records, false)
			e.endSync()
			if err != nil {
				e.logger.Warn("Failed to apply cross-instance update",
					"resource", resourceType, "error", err)
			}
		}
	}
}
