// Package bootstrap turns a shared.Config into live dependencies.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"sosa_resort/internal/adapters/memory"
	redisad "sosa_resort/internal/adapters/redis"
	"sosa_resort/internal/adapters/sosa"
	"sosa_resort/internal/domain"
	"sosa_resort/internal/shared"
	"sosa_resort/internal/storage/sqlcache"
)

// Deps is everything the entrypoints share.
type Deps struct {
	Cache  domain.Cache
	Client *sosa.Client
	close  func() error
}

func (d *Deps) Close() error {
	if d.close == nil {
		return nil
	}
	return d.close()
}

// OpenCache picks the response cache backend from cfg.CacheDriver.
// An empty driver or "none" disables caching.
func OpenCache(ctx context.Context, cfg shared.Config) (domain.Cache, func() error, error) {
	noop := func() error { return nil }
	switch cfg.CacheDriver {
	case "", "none":
		return nil, noop, nil
	case "memory":
		return memory.New(), noop, nil
	case "redis":
		c := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := c.Ping(pctx); err != nil {
			_ = c.Close()
			return nil, noop, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		return c, c.Close, nil
	case "sqlite":
		s, err := sqlcache.Open(ctx, sqlcache.SQLite, cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case "mysql":
		s, err := sqlcache.Open(ctx, sqlcache.MySQL, cfg.MySQLDSN)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown CACHE_DRIVER %q", cfg.CacheDriver)
	}
}

// New opens the cache and builds the upstream client on top of it.
func New(ctx context.Context, cfg shared.Config) (*Deps, error) {
	cache, closeFn, err := OpenCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	client, err := sosa.New(sosa.Config{
		BaseURL:  cfg.SosaBaseURL,
		APIURL:   cfg.SosaAPIURL,
		APIKey:   cfg.SosaAPIKey,
		Timeout:  cfg.SosaTimeout,
		RPS:      cfg.SosaRPS,
		Cache:    cache,
		CacheTTL: cfg.CacheTTL,
	})
	if err != nil {
		_ = closeFn()
		return nil, err
	}
	log.Info().Str("cache", cfg.CacheDriver).Str("api", cfg.SosaAPIURL).Msg("sosa client ready")
	return &Deps{Cache: cache, Client: client, close: closeFn}, nil
}
