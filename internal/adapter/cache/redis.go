package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"xchanger/pkg/logger"
)

// RedisStore shares the response cache between processes. Expiry is left to
// Redis, so ClearExpired has nothing to do.
type RedisStore struct {
	client   *redis.Client
	prefix   string
	cacheTTL time.Duration
	log      *logger.Logger
}

func NewRedisStore(ctx context.Context, opt *redis.Options, prefix string, cacheTTL time.Duration, log *logger.Logger) (*RedisStore, error) {
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client, prefix: prefix, cacheTTL: cacheTTL, log: log}, nil
}

func (r *RedisStore) key(key string) string {
	return r.prefix + key
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		r.log.Debug("Redis cache miss", "key", key)
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}

	r.log.Debug("Redis cache hit", "key", key)
	return val, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key, body string) error {
	if err := r.client.Set(ctx, r.key(key), body, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	r.log.Debug("Redis cache set", "key", key)
	return nil
}

func (r *RedisStore) ClearExpired(ctx context.Context) error {
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
