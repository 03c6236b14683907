// Package resolver реализует чистые стратегии примирения локального и
// серверного состояния одного типа ресурса. Никакого I/O: вход - два
// набора записей, выход - один согласованный набор.
package resolver

import (
	"log/slog"
	"sort"

	"github.com/vmikh/offsync/internal/config"
	"github.com/vmikh/offsync/pkg/api"
)

// Resolver выбирает стратегию по имени типа ресурса.
// Неизвестный тип не является ошибкой: применяется стратегия по умолчанию
// с предупреждением в логе.
type Resolver struct {
	strategies map[string]config.Strategy
	logger     *slog.Logger
}

// New создает resolver по реестру типов ресурсов
func New(cfg *config.Config, logger *slog.Logger) *Resolver {
	strategies := make(map[string]config.Strategy, len(cfg.Resources))
	for _, r := range cfg.Resources {
		strategies[r.Name] = r.Strategy
	}
	return &Resolver{
		strategies: strategies,
		logger:     logger,
	}
}

// StrategyFor возвращает активную стратегию для типа ресурса
func (r *Resolver) StrategyFor(resourceType string) config.Strategy {
	strategy, ok := r.strategies[resourceType]
	if !ok {
		r.logger.Warn("Unknown resource type, falling back to default strategy",
			"resource_type", resourceType,
			"strategy", config.DefaultStrategy)
		return config.DefaultStrategy
	}
	return strategy
}

// Resolve примиряет локальные изменения с серверным состоянием.
// Функция чистая и идемпотентная: повторный вызов с теми же входами
// дает идентичный результат. Выход отсортирован по ID для детерминизма.
func (r *Resolver) Resolve(resourceType string, local, server []api.Record) []api.Record {
	switch r.StrategyFor(resourceType) {
	case config.StrategyMerge:
		return mergeRecords(local, server)
	case config.StrategyServerWins:
		return serverWins(server)
	case config.StrategyClientWins:
		return clientWins(local)
	default:
		return lastWriteWins(local, server)
	}
}

// lastWriteWins стартует с серверного набора; локальная запись вытесняет
// серверную только при строго большем UpdatedAt (при равных timestamp
// выигрывает сервер - он авторитет по времени). Чисто локальные записи
// попадают в результат как есть.
func lastWriteWins(local, server []api.Record) []api.Record {
	byID := indexByID(server)

	for i := range local {
		l := &local[i]
		existing, ok := byID[l.ID]
		if !ok || l.IsNewerThan(existing) {
			byID[l.ID] = l.Clone()
		}
	}

	return sortedValues(byID)
}

// mergeRecords объединяет оба набора по ID; там, где запись есть с обеих
// сторон, выполняется пополевой merge с приоритетом локальных полей.
// Выбирается для типов, где потеря записи недопустима даже при
// конкурентных правках.
func mergeRecords(local, server []api.Record) []api.Record {
	byID := indexByID(server)

	for i := range local {
		l := &local[i]
		existing, ok := byID[l.ID]
		if !ok {
			byID[l.ID] = l.Clone()
			continue
		}
		byID[l.ID] = l.MergeFields(existing)
	}

	return sortedValues(byID)
}

// serverWins: согласованный набор - ровно серверное состояние.
// Несинхронизированные локальные записи исчезают из согласованного
// представления, но resolver ничего не удаляет из хранилища.
func serverWins(server []api.Record) []api.Record {
	return sortedValues(indexByID(server))
}

// clientWins: согласованный набор - ровно локальные изменения.
// Для эфемерного клиентского состояния, которое нельзя затирать
// устаревшим чтением с сервера.
func clientWins(local []api.Record) []api.Record {
	return sortedValues(indexByID(local))
}

func indexByID(records []api.Record) map[string]*api.Record {
	byID := make(map[string]*api.Record, len(records))
	for i := range records {
		byID[records[i].ID] = records[i].Clone()
	}
	return byID
}

func sortedValues(byID map[string]*api.Record) []api.Record {
	result := make([]api.Record, 0, len(byID))
	for _, rec := range byID {
		result = append(result, *rec)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
