package shared

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	LogFile     string

	SosaBaseURL string
	SosaAPIURL  string
	SosaAPIKey  string
	SosaTimeout time.Duration
	SosaRPS     int

	CacheDriver string // memory | redis | sqlite | mysql
	CacheTTL    time.Duration
	RedisAddr   string
	RedisPass   string
	RedisDB     int
	MySQLDSN    string
	SQLitePath  string

	DebounceDelay  time.Duration
	HealthInterval time.Duration
}

// Load reads configuration from the environment, after an optional .env in
// the working directory. Real environment variables win over .env values.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_ENV", "prod")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("METRICS_ADDR", "")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("SOSA_BASE_URL", "http://localhost:8000")
	v.SetDefault("SOSA_API_URL", "")
	v.SetDefault("SOSA_API_KEY", "")
	v.SetDefault("SOSA_TIMEOUT", "30s")
	v.SetDefault("SOSA_RPS", 10)
	v.SetDefault("CACHE_DRIVER", "memory")
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("MYSQL_DSN", "root:root@tcp(localhost:3306)/sosa?parseTime=true&charset=utf8mb4&loc=UTC")
	v.SetDefault("SQLITE_PATH", "sosa-cache.db")
	v.SetDefault("DEBOUNCE_DELAY", "500ms")
	v.SetDefault("HEALTH_INTERVAL", "30s")
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from v; exposed so tests can feed values directly.
func FromViper(v *viper.Viper) Config {
	c := Config{
		AppEnv:         v.GetString("APP_ENV"),
		HTTPAddr:       v.GetString("HTTP_ADDR"),
		MetricsAddr:    v.GetString("METRICS_ADDR"),
		LogFile:        v.GetString("LOG_FILE"),
		SosaBaseURL:    strings.TrimRight(v.GetString("SOSA_BASE_URL"), "/"),
		SosaAPIURL:     v.GetString("SOSA_API_URL"),
		SosaAPIKey:     v.GetString("SOSA_API_KEY"),
		SosaTimeout:    v.GetDuration("SOSA_TIMEOUT"),
		SosaRPS:        v.GetInt("SOSA_RPS"),
		CacheDriver:    strings.ToLower(v.GetString("CACHE_DRIVER")),
		CacheTTL:       v.GetDuration("CACHE_TTL"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPass:      v.GetString("REDIS_PASSWORD"),
		RedisDB:        v.GetInt("REDIS_DB"),
		MySQLDSN:       v.GetString("MYSQL_DSN"),
		SQLitePath:     v.GetString("SQLITE_PATH"),
		DebounceDelay:  v.GetDuration("DEBOUNCE_DELAY"),
		HealthInterval: v.GetDuration("HEALTH_INTERVAL"),
	}
	if c.SosaAPIURL == "" {
		c.SosaAPIURL = c.SosaBaseURL + "/api/v1"
	}
	if c.SosaAPIKey == "" {
		log.Warn().Msg("SOSA_API_KEY is empty")
	}
	return c
}
