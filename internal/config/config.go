// Package config загружает и валидирует реестр типов ресурсов и
// bucket'ов кэша. Реестр разрешается один раз при старте: неизвестная
// стратегия или дубликат имени - ошибка конфигурации, а не рантайма.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vmikh/offsync/internal/validation"
)

// Strategy имя стратегии разрешения конфликтов
type Strategy string

// Стратегии разрешения конфликтов
const (
	StrategyLastWriteWins Strategy = "lastWriteWins"
	StrategyMerge         Strategy = "merge"
	StrategyServerWins    Strategy = "serverWins"
	StrategyClientWins    Strategy = "clientWins"
)

// DefaultStrategy используется для типов ресурсов без явной стратегии
const DefaultStrategy = StrategyLastWriteWins

// CacheStrategy имя стратегии кэширования HTTP ответов
type CacheStrategy string

// Стратегии edge-кэша
const (
	CacheFirst           CacheStrategy = "cache-first"
	NetworkFirst         CacheStrategy = "network-first"
	StaleWhileRevalidate CacheStrategy = "stale-while-revalidate"
)

// Resource описывает один синхронизируемый тип ресурса
type Resource struct {
	Name         string        `yaml:"name"`
	Endpoint     string        `yaml:"endpoint"`          // по умолчанию /api/<name>
	SyncInterval time.Duration `yaml:"sync_interval"`     // 0 = real-time poll
	Strategy     Strategy      `yaml:"conflict_strategy"` // по умолчанию lastWriteWins
}

// Bucket описывает одну группу кэшируемых HTTP ответов
type Bucket struct {
	Name       string        `yaml:"name"`
	Strategy   CacheStrategy `yaml:"strategy"`
	MaxAge     time.Duration `yaml:"max_age"`
	MaxEntries int           `yaml:"max_entries"`
	Patterns   []string      `yaml:"patterns"` // regexp по пути URL, первый совпавший bucket выигрывает
}

// CacheConfig конфигурация edge-кэша
type CacheConfig struct {
	Buckets  []Bucket `yaml:"buckets"`
	Precache []string `yaml:"precache"` // URL для best-effort прогрева кэша
}

// Config корневая конфигурация клиента
type Config struct {
	ServerURL string        `yaml:"server_url"`
	UserID    string        `yaml:"user_id"`
	DBPath    string        `yaml:"db_path"`
	Resources []Resource    `yaml:"resources"`
	Cache     CacheConfig   `yaml:"cache"`
	Crosstab  CrosstabConfig `yaml:"crosstab"`
}

// CrosstabConfig конфигурация моста между экземплярами клиента
type CrosstabConfig struct {
	// BridgeAddr адрес локального websocket брокера (пусто = только in-process шина)
	BridgeAddr string `yaml:"bridge_addr"`
}

// Load читает и валидирует конфигурацию из YAML файла
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse разбирает YAML, применяет значения по умолчанию и валидирует реестр
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию с дефолтными bucket'ами кэша и без ресурсов.
// Используется когда файл конфигурации не задан.
func Default() *Config {
	cfg := &Config{
		ServerURL: "http://localhost:8080",
		DBPath:    "offsync.db",
	}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults заполняет опущенные поля
func (c *Config) applyDefaults() {
	if c.DBPath == "" {
		c.DBPath = "offsync.db"
	}

	for i := range c.Resources {
		r := &c.Resources[i]
		if r.Endpoint == "" {
			r.Endpoint = "/api/" + r.Name
		}
		if r.Strategy == "" {
			r.Strategy = DefaultStrategy
		}
	}

	if len(c.Cache.Buckets) == 0 {
		c.Cache.Buckets = DefaultBuckets()
	}
}

// DefaultBuckets возвращает стандартную классификацию запросов:
// API пути - network-first, статика - cache-first, остальное -
// stale-while-revalidate (динамический bucket, паттерн-ловушка в конце).
func DefaultBuckets() []Bucket {
	return []Bucket{
		{
			Name:       "api",
			Strategy:   NetworkFirst,
			MaxAge:     5 * time.Minute,
			MaxEntries: 50,
			Patterns:   []string{`^/api/`},
		},
		{
			Name:       "static",
			Strategy:   CacheFirst,
			MaxAge:     24 * time.Hour,
			MaxEntries: 100,
			Patterns:   []string{`\.(?:css|js|woff2?)$`},
		},
		{
			Name:       "images",
			Strategy:   CacheFirst,
			MaxAge:     7 * 24 * time.Hour,
			MaxEntries: 60,
			Patterns:   []string{`\.(?:png|jpe?g|gif|svg|webp|ico)$`},
		},
		{
			Name:       "dynamic",
			Strategy:   StaleWhileRevalidate,
			MaxAge:     time.Hour,
			MaxEntries: 50,
			Patterns:   []string{`.`},
		},
	}
}

// Validate проверяет целостность реестра
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Resources))

	for _, r := range c.Resources {
		if err := validation.ValidateResourceName(r.Name); err != nil {
			return fmt.Errorf("resource %q: %w", r.Name, err)
		}
		if _, dup := seen[r.Name]; dup {
			return fmt.Errorf("duplicate resource %q", r.Name)
		}
		seen[r.Name] = struct{}{}

		if !strings.HasPrefix(r.Endpoint, "/") {
			return fmt.Errorf("resource %q: endpoint must start with /", r.Name)
		}
		if r.SyncInterval < 0 {
			return fmt.Errorf("resource %q: sync_interval cannot be negative", r.Name)
		}
		if !validStrategy(r.Strategy) {
			return fmt.Errorf("resource %q: unknown conflict strategy %q", r.Name, r.Strategy)
		}
	}

	bucketNames := make(map[string]struct{}, len(c.Cache.Buckets))
	for _, b := range c.Cache.Buckets {
		if b.Name == "" {
			return fmt.Errorf("cache bucket with empty name")
		}
		if _, dup := bucketNames[b.Name]; dup {
			return fmt.Errorf("duplicate cache bucket %q", b.Name)
		}
		bucketNames[b.Name] = struct{}{}

		switch b.Strategy {
		case CacheFirst, NetworkFirst, StaleWhileRevalidate:
		default:
			return fmt.Errorf("cache bucket %q: unknown strategy %q", b.Name, b.Strategy)
		}
		if b.MaxEntries <= 0 {
			return fmt.Errorf("cache bucket %q: max_entries must be positive", b.Name)
		}
		if b.MaxAge <= 0 {
			return fmt.Errorf("cache bucket %q: max_age must be positive", b.Name)
		}
		for _, p := range b.Patterns {
			if _, err := regexp.Compile(p); err != nil {
				return fmt.Errorf("cache bucket %q: invalid pattern %q: %w", b.Name, p, err)
			}
		}
	}

	return nil
}

// Resource возвращает дескриптор типа ресурса по имени
func (c *Config) Resource(name string) (*Resource, bool) {
	for i := range c.Resources {
		if c.Resources[i].Name == name {
			return &c.Resources[i], true
		}
	}
	return nil, false
}

func validStrategy(s Strategy) bool {
	switch s {
	case StrategyLastWriteWins, StrategyMerge, StrategyServerWins, StrategyClientWins:
		return true
	}
	return false
}
