package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xchanger/internal/config"
	"xchanger/internal/domain/ports"
	"xchanger/pkg/logger"
)

const testURL = "https://www.xe.com/currencyconverter/convert/?Amount=1&From=USD&To=PKR"

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newSQLiteStore(t *testing.T, clock *fakeClock) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"), time.Hour, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	store.now = clock.now
	return store
}

func newMemoryCache(clock *fakeClock) *MemoryCache {
	c := NewMemoryCache(time.Hour, logger.Discard())
	c.now = clock.now
	return c
}

func TestStores_TTL(t *testing.T) {
	testCases := []struct {
		name  string
		build func(t *testing.T, clock *fakeClock) ports.ResponseCache
	}{
		{"memory", func(t *testing.T, clock *fakeClock) ports.ResponseCache { return newMemoryCache(clock) }},
		{"sqlite", func(t *testing.T, clock *fakeClock) ports.ResponseCache { return newSQLiteStore(t, clock) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
			store := tc.build(t, clock)

			_, ok, err := store.Get(ctx, testURL)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Set(ctx, testURL, "<html>v1</html>"))

			body, ok, err := store.Get(ctx, testURL)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "<html>v1</html>", body)

			clock.advance(59 * time.Minute)
			_, ok, err = store.Get(ctx, testURL)
			require.NoError(t, err)
			assert.True(t, ok, "entry should live for the whole TTL")

			clock.advance(time.Minute)
			_, ok, err = store.Get(ctx, testURL)
			require.NoError(t, err)
			assert.False(t, ok, "entry should be absent once the TTL elapsed")

			require.NoError(t, store.Set(ctx, testURL, "<html>v2</html>"))
			body, ok, err = store.Get(ctx, testURL)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "<html>v2</html>", body)
		})
	}
}

func TestSQLiteStore_ClearExpired(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	store := newSQLiteStore(t, clock)

	require.NoError(t, store.Set(ctx, "old", "a"))
	clock.advance(2 * time.Hour)
	require.NoError(t, store.Set(ctx, "new", "b"))

	require.NoError(t, store.ClearExpired(ctx))

	var count int64
	require.NoError(t, store.db.Model(&responseEntry{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	body, ok, err := store.Get(ctx, "new")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", body)
}

func TestSQLiteStore_PersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	first, err := NewSQLiteStore(path, time.Hour, logger.Discard())
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, testURL, "body"))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path, time.Hour, logger.Discard())
	require.NoError(t, err)
	defer second.Close()

	body, ok, err := second.Get(ctx, testURL)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "body", body)
}

func TestSQLiteStore_ExpiryIgnoresTimeZone(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	eastern := time.FixedZone("UTC-5", -5*60*60)
	writer, err := NewSQLiteStore(path, time.Hour, logger.Discard())
	require.NoError(t, err)
	writer.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, eastern) }
	require.NoError(t, writer.Set(ctx, testURL, "body"))
	require.NoError(t, writer.Close())

	reader, err := NewSQLiteStore(path, time.Hour, logger.Discard())
	require.NoError(t, err)
	defer reader.Close()

	// written at 17:00Z, so it expires at 18:00Z
	clock := &fakeClock{t: time.Date(2024, 5, 1, 17, 30, 0, 0, time.UTC)}
	reader.now = clock.now

	body, ok, err := reader.Get(ctx, testURL)
	require.NoError(t, err)
	assert.True(t, ok, "entry written 30 minutes earlier should be a hit")
	assert.Equal(t, "body", body)

	clock.advance(30 * time.Minute)
	_, ok, err = reader.Get(ctx, testURL)
	require.NoError(t, err)
	assert.False(t, ok, "entry should be absent once the TTL elapsed")

	require.NoError(t, reader.ClearExpired(ctx))
	var count int64
	require.NoError(t, reader.db.Model(&responseEntry{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMemoryCache_ClearExpired(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Now()}
	c := newMemoryCache(clock)

	require.NoError(t, c.Set(ctx, "a", "1"))
	clock.advance(2 * time.Hour)
	require.NoError(t, c.Set(ctx, "b", "2"))
	require.NoError(t, c.ClearExpired(ctx))

	assert.Len(t, c.cacheMap, 1)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	log := logger.Discard()

	store, closeFn, err := Open(ctx, config.CacheConfig{Backend: "sqlite", Path: filepath.Join(t.TempDir(), "c.db"), TTL: time.Hour}, log)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)
	assert.NoError(t, closeFn())

	store, _, err = Open(ctx, config.CacheConfig{Backend: "memory", TTL: time.Hour}, log)
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, store)

	store, _, err = Open(ctx, config.CacheConfig{Backend: "none"}, log)
	require.NoError(t, err)
	assert.Equal(t, Nop{}, store)

	_, _, err = Open(ctx, config.CacheConfig{Backend: "bogus"}, log)
	assert.Error(t, err)
}

func TestOpen_UnavailableStoreDegradesToNop(t *testing.T) {
	ctx := context.Background()
	log := logger.Discard()

	badPath := filepath.Join(t.TempDir(), "missing", "dir", "c.db")
	store, closeFn, err := Open(ctx, config.CacheConfig{Backend: "sqlite", Path: badPath, TTL: time.Hour}, log)
	require.NoError(t, err)
	assert.Equal(t, Nop{}, store)
	assert.NoError(t, closeFn())

	store, _, err = Open(ctx, config.CacheConfig{Backend: "redis", RedisAddr: "127.0.0.1:1", TTL: time.Hour}, log)
	require.NoError(t, err)
	assert.Equal(t, Nop{}, store)
}

func TestNop(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, Nop{}.Set(ctx, "k", "v"))
	_, ok, err := Nop{}.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
