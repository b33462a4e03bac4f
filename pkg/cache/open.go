package cache

import (
	"context"
	"fmt"
	"strings"
)

// Backend names accepted by [Open].
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend    string `json:"backend" toml:"backend"`
	Dir        string `json:"dir,omitempty" toml:"dir"`               // file
	URL        string `json:"url,omitempty" toml:"url"`               // redis, mongo
	Database   string `json:"database,omitempty" toml:"database"`     // mongo
	Collection string `json:"collection,omitempty" toml:"collection"` // mongo

	// Prefix scopes every key so several projects can share one backend.
	Prefix string `json:"prefix,omitempty" toml:"prefix"`
}

// Keyer returns the keyer for cfg: the default keyer, scoped by Prefix
// when one is set.
func (cfg Config) Keyer() Keyer {
	if cfg.Prefix == "" {
		return NewDefaultKeyer()
	}
	return NewScopedKeyer(nil, cfg.Prefix)
}

// Open creates the backend described by cfg. An empty backend name
// disables caching.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendMemory:
		return NewMemoryCache(), nil
	case BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache: no directory")
		}
		c, err := NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		if cfg.URL == "" {
			return nil, fmt.Errorf("redis cache: no url")
		}
		c, err := NewRedisCache(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMongo:
		if cfg.URL == "" {
			return nil, fmt.Errorf("mongo cache: no url")
		}
		c, err := NewMongoCache(ctx, cfg.URL, cfg.Database, cfg.Collection)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
