package sosa

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"sosa_resort/internal/domain"
)

// CacheResult reports a cache maintenance operation. Err is informational:
// cache trouble never fails a request.
type CacheResult struct {
	Op  string
	Key string
	Err error
}

func (r CacheResult) OK() bool { return r.Err == nil }

// responseCache counts clears in gen. A read that started before a clear
// carries the old gen and is not written back.
type responseCache struct {
	store domain.Cache
	ttl   time.Duration

	mu  sync.Mutex
	gen uint64
}

func (c *responseCache) epoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

func (c *responseCache) lookup(ctx context.Context, key string) (rawResponse, bool) {
	var hit rawResponse
	ok, err := c.store.Get(ctx, key, &hit)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("response cache read failed; treating as miss")
		return rawResponse{}, false
	}
	return hit, ok
}

func (c *responseCache) save(ctx context.Context, key string, r rawResponse, epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.gen {
		log.Debug().Str("key", key).Msg("response predates a cache clear; not stored")
		return
	}
	if err := c.store.Set(ctx, key, r, c.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("response cache write failed")
	}
}

func (c *responseCache) clear(ctx context.Context) CacheResult {
	c.mu.Lock()
	c.gen++
	res := CacheResult{Op: "clear", Err: c.store.Clear(ctx)}
	c.mu.Unlock()
	if res.Err != nil {
		log.Error().Err(res.Err).Msg("error clearing response cache")
	}
	return res
}

func (c *responseCache) forget(ctx context.Context, key string) CacheResult {
	c.mu.Lock()
	c.gen++
	res := CacheResult{Op: "forget", Key: key, Err: c.store.Del(ctx, key)}
	c.mu.Unlock()
	if res.Err != nil {
		log.Error().Err(res.Err).Str("key", key).Msg("error clearing endpoint cache")
	}
	return res
}
