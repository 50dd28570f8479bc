package cache

import (
	"context"
	"time"
)

// LayeredCache keeps a short-lived in-process copy in front of Redis so
// repeated scans within a few seconds skip the network.
type LayeredCache struct {
	memCache   *MemoryCache
	redisCache *RedisCache
	l1TTL      time.Duration
}

// NewLayeredCache fronts redisCache with an in-process cache of memSize
// entries. Entries stay in process for at most l1TTL.
func NewLayeredCache(redisCache *RedisCache, memSize int, l1TTL time.Duration) *LayeredCache {
	if l1TTL <= 0 {
		l1TTL = 5 * time.Second
	}
	return &LayeredCache{
		memCache:   NewMemoryCache(memSize),
		redisCache: redisCache,
		l1TTL:      l1TTL,
	}
}

func (lc *LayeredCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := lc.redisCache.Set(ctx, key, value, expiration); err != nil {
		return err
	}
	_ = lc.memCache.Set(ctx, key, value, lc.memoryTTL(expiration))
	return nil
}

func (lc *LayeredCache) Get(ctx context.Context, key string, dest interface{}) error {
	if err := lc.memCache.Get(ctx, key, dest); err == nil {
		return nil
	}
	var raw []byte
	if err := lc.redisCache.Get(ctx, key, &raw); err != nil {
		return err
	}
	_ = lc.memCache.Set(ctx, key, raw, lc.l1TTL)
	return decode(raw, dest)
}

func (lc *LayeredCache) MSet(ctx context.Context, values map[string]interface{}, expiration time.Duration) error {
	if err := lc.redisCache.MSet(ctx, values, expiration); err != nil {
		return err
	}
	_ = lc.memCache.MSet(ctx, values, lc.memoryTTL(expiration))
	return nil
}

func (lc *LayeredCache) MGet(ctx context.Context, keys ...string) (map[string]string, error) {
	results, _ := lc.memCache.MGet(ctx, keys...)

	missing := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := results[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) == 0 {
		return results, nil
	}

	fromRedis, err := lc.redisCache.MGet(ctx, missing...)
	if err != nil {
		return nil, err
	}
	backfill := make(map[string]interface{}, len(fromRedis))
	for k, v := range fromRedis {
		results[k] = v
		backfill[k] = v
	}
	_ = lc.memCache.MSet(ctx, backfill, lc.l1TTL)
	return results, nil
}

func (lc *LayeredCache) memoryTTL(expiration time.Duration) time.Duration {
	if expiration > 0 && expiration < lc.l1TTL {
		return expiration
	}
	return lc.l1TTL
}

// Close closes both cache layers.
func (lc *LayeredCache) Close() error {
	_ = lc.memCache.Close()
	return lc.redisCache.Close()
}
