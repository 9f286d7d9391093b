package memory_test

import (
	"context"
	"testing"
	"time"

	"sosa_resort/internal/adapters/memory"
)

func TestCache_SetGetExpire(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := memory.New().WithClock(func() time.Time { return now })
	ctx := context.Background()

	if err := c.Set(ctx, "k", map[string]int{"a": 1}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got map[string]int
	ok, err := c.Get(ctx, "k", &got)
	if err != nil || !ok || got["a"] != 1 {
		t.Fatalf("expected hit, got ok=%v err=%v val=%v", ok, err, got)
	}

	now = now.Add(time.Minute)
	ok, _ = c.Get(ctx, "k", &got)
	if ok {
		t.Fatalf("expected entry to expire at ttl")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry not evicted, len=%d", c.Len())
	}
}

func TestCache_DelAndClear(t *testing.T) {
	c := memory.New()
	ctx := context.Background()
	_ = c.Set(ctx, "a", 1, 0)
	_ = c.Set(ctx, "b", 2, 0)

	_ = c.Del(ctx, "a")
	var v int
	if ok, _ := c.Get(ctx, "a", &v); ok {
		t.Fatalf("a should be deleted")
	}
	if ok, _ := c.Get(ctx, "b", &v); !ok || v != 2 {
		t.Fatalf("b should survive Del(a)")
	}

	_ = c.Clear(ctx)
	if c.Len() != 0 {
		t.Fatalf("clear left %d entries", c.Len())
	}
}
