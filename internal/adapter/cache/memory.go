package cache

import (
	"context"
	"sync"
	"time"

	"xchanger/pkg/logger"
)

type memoryEntry struct {
	body      string
	expiresAt time.Time
}

// MemoryCache keeps responses for the life of the process.
type MemoryCache struct {
	cacheMap map[string]memoryEntry
	mutex    sync.RWMutex
	cacheTTL time.Duration
	log      *logger.Logger
	now      func() time.Time
}

func NewMemoryCache(cacheTTL time.Duration, log *logger.Logger) *MemoryCache {
	return &MemoryCache{
		cacheMap: make(map[string]memoryEntry),
		cacheTTL: cacheTTL,
		log:      log,
		now:      time.Now,
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, found := c.cacheMap[key]
	if !found {
		c.log.Debug("Cache miss", "key", key)
		return "", false, nil
	}

	if !c.now().Before(entry.expiresAt) {
		c.log.Debug("Cache entry expired", "key", key)
		return "", false, nil
	}

	c.log.Debug("Cache hit", "key", key)
	return entry.body, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key, body string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cacheMap[key] = memoryEntry{body: body, expiresAt: c.now().Add(c.cacheTTL)}
	c.log.Debug("Cache set", "key", key)

	return nil
}

func (c *MemoryCache) ClearExpired(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	expiredKeys := make([]string, 0)

	for key, entry := range c.cacheMap {
		if !now.Before(entry.expiresAt) {
			expiredKeys = append(expiredKeys, key)
		}
	}

	for _, key := range expiredKeys {
		delete(c.cacheMap, key)
		c.log.Debug("Removed expired cache entry", "key", key)
	}

	c.log.Info("Cleared expired cache entries", "count", len(expiredKeys))
	return nil
}
