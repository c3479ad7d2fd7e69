// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mmynk/shophub/internal/catalog"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

const devSessionSecret = "shophub-dev-secret"

// Config holds application configuration loaded from environment variables.
// Defaults suit local development.
type Config struct {
	Port string

	// Persistence
	StoreBackend string // sqlite or redis
	DBPath       string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	// Session
	SessionSecret string
	SessionTTL    time.Duration // zero means sessions never expire
	AuthDelay     time.Duration
	RequireLogin  bool

	// Catalog
	CatalogURL     string
	CatalogLimit   int
	CatalogTimeout time.Duration

	// Logging
	LogLevel  string
	LogFormat string // text or json

	MetricsEnabled bool
}

// Load reads the configuration. Invalid values fall back to their defaults
// with a warning.
func Load() Config {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		StoreBackend: strings.ToLower(getenv("STORE_BACKEND", BackendSQLite)),
		DBPath:       getenv("DB_PATH", "./data/shophub.db"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),
		RedisPrefix:   getenv("REDIS_PREFIX", "shophub:"),

		SessionSecret: getenv("SESSION_SECRET", ""),
		SessionTTL:    getdur("SESSION_TTL", 0),
		AuthDelay:     getdur("AUTH_DELAY", 0),
		RequireLogin:  getbool("REQUIRE_LOGIN", false),

		CatalogURL:     getenv("CATALOG_URL", catalog.DefaultURL),
		CatalogLimit:   getint("CATALOG_LIMIT", catalog.DefaultLimit),
		CatalogTimeout: getdur("CATALOG_TIMEOUT", 10*time.Second),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: strings.ToLower(getenv("LOG_FORMAT", "text")),

		MetricsEnabled: getbool("METRICS_ENABLED", true),
	}

	if cfg.SessionSecret == "" {
		slog.Warn("SESSION_SECRET not set, using development secret")
		cfg.SessionSecret = devSessionSecret
	}

	return cfg
}

// Validate reports configuration that the server cannot start with.
func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required for the %s backend", BackendSQLite)
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the %s backend", BackendRedis)
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (want %s or %s)", c.StoreBackend, BackendSQLite, BackendRedis)
	}
	if c.CatalogLimit < 1 {
		return fmt.Errorf("CATALOG_LIMIT must be positive, got %d", c.CatalogLimit)
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("SESSION_TTL must not be negative, got %s", c.SessionTTL)
	}
	return nil
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, def string) string {
	if v := os.Getenv(key); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			slog.Warn("Invalid boolean, using default", "key", key, "value", v, "default", def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("Invalid int, using default", "key", key, "value", v, "default", def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("Invalid duration, using default", "key", key, "value", v, "default", def)
			return def
		}
		return d
	}
	return def
}
