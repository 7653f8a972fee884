package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"xchanger/internal/config"
	"xchanger/internal/domain/ports"
	"xchanger/pkg/logger"
)

func noClose() error { return nil }

// Open builds the configured response cache. A backend that cannot be
// reached degrades to Nop so fetching keeps working; only an unknown backend
// name is an error. The returned func releases the backend.
func Open(ctx context.Context, cfg config.CacheConfig, log *logger.Logger) (ports.ResponseCache, func() error, error) {
	switch cfg.Backend {
	case "sqlite", "":
		store, err := NewSQLiteStore(cfg.Path, cfg.TTL, log)
		if err != nil {
			log.Warn("Response cache unavailable, fetching without it", "backend", "sqlite", "path", cfg.Path, "error", err)
			return Nop{}, noClose, nil
		}
		if err := store.ClearExpired(ctx); err != nil {
			log.Warn("Failed to clear expired cache entries", "error", err)
		}
		return store, store.Close, nil

	case "redis":
		store, err := NewRedisStore(ctx, &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.RedisPrefix, cfg.TTL, log)
		if err != nil {
			log.Warn("Response cache unavailable, fetching without it", "backend", "redis", "addr", cfg.RedisAddr, "error", err)
			return Nop{}, noClose, nil
		}
		return store, store.Close, nil

	case "memory":
		return NewMemoryCache(cfg.TTL, log), noClose, nil

	case "none":
		return Nop{}, noClose, nil
	}

	return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}
