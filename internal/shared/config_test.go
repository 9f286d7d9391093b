package shared_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"

	"sosa_resort/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SOSA_BASE_URL", "https://api.sosa.example/")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("CACHE_DRIVER", "Redis")

	c := shared.Load()
	if c.SosaAPIURL != "https://api.sosa.example/api/v1" {
		t.Fatalf("api url: %q", c.SosaAPIURL)
	}
	if c.CacheTTL != 90*time.Second || c.CacheDriver != "redis" {
		t.Fatalf("cache: %v %q", c.CacheTTL, c.CacheDriver)
	}
	if c.SosaTimeout != 30*time.Second || c.DebounceDelay != 500*time.Millisecond || c.HealthInterval != 30*time.Second {
		t.Fatalf("durations: %+v", c)
	}
}

func TestFromViper_ExplicitAPIURL(t *testing.T) {
	v := viper.New()
	v.Set("SOSA_BASE_URL", "https://sosa.example")
	v.Set("SOSA_API_URL", "https://gw.example/v2")
	v.Set("SOSA_RPS", 3)

	c := shared.FromViper(v)
	if c.SosaAPIURL != "https://gw.example/v2" || c.SosaRPS != 3 {
		t.Fatalf("unexpected: %+v", c)
	}
}
