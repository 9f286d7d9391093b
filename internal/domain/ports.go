package domain

import (
	"context"
	"time"
)

// Cache is a key/value store with per-entry expiry. Expired entries must read as absent.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
