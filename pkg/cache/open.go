package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`
	Redis   RedisConfig `toml:"redis"`
	Mongo   MongoConfig `toml:"mongo"`
}

// Open returns the backend named by cfg.Backend. An empty name means file.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case "", BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache: no directory configured")
		}
		return wrap(NewFileCache(cfg.Dir))
	case BackendRedis:
		return wrap(NewRedisCache(ctx, cfg.Redis))
	case BackendMongo:
		return wrap(NewMongoCache(ctx, cfg.Mongo))
	default:
		return nil, fmt.Errorf("unknown cache backend %q (want none, file, redis or mongo)", cfg.Backend)
	}
}

// wrap avoids returning a typed nil inside a non-nil Cache.
func wrap[C Cache](c C, err error) (Cache, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}
