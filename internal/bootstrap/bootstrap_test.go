package bootstrap_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"sosa_resort/internal/bootstrap"
	"sosa_resort/internal/shared"
)

func baseConfig() shared.Config {
	return shared.Config{
		SosaBaseURL: "http://localhost:8000",
		SosaAPIURL:  "http://localhost:8000/api/v1",
		SosaTimeout: time.Second,
		CacheTTL:    time.Minute,
	}
}

func TestOpenCache_Drivers(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	cases := map[string]func(*shared.Config){
		"memory": func(c *shared.Config) { c.CacheDriver = "memory" },
		"redis":  func(c *shared.Config) { c.CacheDriver = "redis"; c.RedisAddr = mr.Addr() },
		"sqlite": func(c *shared.Config) {
			c.CacheDriver = "sqlite"
			c.SQLitePath = filepath.Join(t.TempDir(), "cache.db")
		},
	}
	for name, set := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := baseConfig()
			set(&cfg)
			cache, closeFn, err := bootstrap.OpenCache(ctx, cfg)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer closeFn()
			if err := cache.Set(ctx, "k", map[string]int{"n": 1}, time.Minute); err != nil {
				t.Fatalf("set: %v", err)
			}
			var got map[string]int
			ok, err := cache.Get(ctx, "k", &got)
			if err != nil || !ok || got["n"] != 1 {
				t.Fatalf("get: ok=%v err=%v got=%v", ok, err, got)
			}
		})
	}
}

func TestOpenCache_NoneAndUnknown(t *testing.T) {
	cfg := baseConfig()
	cfg.CacheDriver = "none"
	cache, _, err := bootstrap.OpenCache(context.Background(), cfg)
	if err != nil || cache != nil {
		t.Fatalf("none: cache=%v err=%v", cache, err)
	}
	cfg.CacheDriver = "memcached"
	if _, _, err := bootstrap.OpenCache(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestNew_BuildsClient(t *testing.T) {
	cfg := baseConfig()
	cfg.CacheDriver = "memory"
	d, err := bootstrap.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer d.Close()
	if d.Client.BaseURL() != "http://localhost:8000" {
		t.Fatalf("base url = %q", d.Client.BaseURL())
	}
}
