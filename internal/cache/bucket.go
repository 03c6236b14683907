package cache

import (
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"time"

	"github.com/vmikh/offsync/internal/config"
)

// entry представляет один закэшированный HTTP ответ
type entry struct {
	cachedAt time.Time
	header   http.Header
	key      string
	body     []byte
	seq      uint64 // порядок вставки; вторичный ключ eviction при равных cachedAt
	status   int
}

// age возвращает возраст записи
func (e *entry) age(now time.Time) time.Duration {
	return now.Sub(e.cachedAt)
}

// bucket хранит записи одной группы кэширования и следит за лимитом.
// put может временно вывести размер за cfg.MaxEntries; evict возвращает
// его в лимит и вызывается транспортом вне пути запроса.
type bucket struct {
	entries  map[string]*entry
	cfg      config.Bucket
	patterns []*regexp.Regexp
	seq      uint64
}

// newBucket компилирует паттерны bucket'а (конфигурация уже провалидирована,
// но компиляция может не совпасть с проверочной - ошибку не глотаем)
func newBucket(cfg config.Bucket) (*bucket, error) {
	patterns := make([]*regexp.Regexp, 0, len(cfg.Patterns))
	for _, p := range cfg.Patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("bucket %s: pattern %q: %w", cfg.Name, p, err)
		}
		patterns = append(patterns, re)
	}
	return &bucket{
		cfg:      cfg,
		patterns: patterns,
		entries:  make(map[string]*entry),
	}, nil
}

// matches проверяет путь запроса по паттернам bucket'а
func (b *bucket) matches(path string) bool {
	for _, re := range b.patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// get возвращает запись по ключу
func (b *bucket) get(key string) (*entry, bool) {
	e, ok := b.entries[key]
	return e, ok
}

// put сохраняет запись, штампуя время и порядок вставки.
// Приведение к лимиту MaxEntries - отдельный шаг (evict).
func (b *bucket) put(e *entry, now time.Time) {
	e.cachedAt = now
	b.seq++
	e.seq = b.seq
	b.entries[e.key] = e
}

// evict вытесняет записи старше остальных по cachedAt (при равных - по
// порядку вставки, старейшая первой), пока размер не вернется в лимит
func (b *bucket) evict() int {
	excess := len(b.entries) - b.cfg.MaxEntries
	if excess <= 0 {
		return 0
	}

	all := make([]*entry, 0, len(b.entries))
	for _, e := range b.entries {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].cachedAt.Equal(all[j].cachedAt) {
			return all[i].cachedAt.Before(all[j].cachedAt)
		}
		return all[i].seq < all[j].seq
	})

	for _, e := range all[:excess] {
		delete(b.entries, e.key)
	}
	return excess
}

// clear удаляет все записи bucket'а
func (b *bucket) clear() {
	b.entries = make(map[string]*entry)
}

// size возвращает текущее количество записей
func (b *bucket) size() int {
	return len(b.entries)
}
