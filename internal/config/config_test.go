package config

import (
	"strings"
	"testing"
	"time"

	"github.com/mmynk/shophub/internal/catalog"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "STORE_BACKEND", "DB_PATH", "REDIS_ADDR", "REDIS_DB", "REDIS_PREFIX",
		"SESSION_SECRET", "SESSION_TTL", "AUTH_DELAY", "REQUIRE_LOGIN",
		"CATALOG_URL", "CATALOG_LIMIT", "CATALOG_TIMEOUT", "LOG_FORMAT", "METRICS_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Addr() != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr())
	}
	if cfg.StoreBackend != BackendSQLite || cfg.DBPath != "./data/shophub.db" {
		t.Errorf("unexpected store defaults: %s %s", cfg.StoreBackend, cfg.DBPath)
	}
	if cfg.CatalogURL != catalog.DefaultURL || cfg.CatalogLimit != catalog.DefaultLimit || cfg.CatalogTimeout != 10*time.Second {
		t.Errorf("unexpected catalog defaults: %d %s", cfg.CatalogLimit, cfg.CatalogTimeout)
	}
	if cfg.SessionTTL != 0 || cfg.AuthDelay != 0 || cfg.RequireLogin {
		t.Errorf("unexpected session defaults: %+v", cfg)
	}
	if cfg.SessionSecret == "" {
		t.Error("expected development secret fallback")
	}
	if !cfg.MetricsEnabled || cfg.LogFormat != "text" {
		t.Errorf("unexpected ambient defaults: metrics=%v format=%s", cfg.MetricsEnabled, cfg.LogFormat)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("AUTH_DELAY", "750ms")
	t.Setenv("REQUIRE_LOGIN", "true")
	t.Setenv("CATALOG_LIMIT", "not-a-number")

	cfg := Load()

	if cfg.StoreBackend != BackendRedis {
		t.Errorf("StoreBackend = %q, want redis", cfg.StoreBackend)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("RedisDB = %d, want 3", cfg.RedisDB)
	}
	if cfg.AuthDelay != 750*time.Millisecond {
		t.Errorf("AuthDelay = %s, want 750ms", cfg.AuthDelay)
	}
	if !cfg.RequireLogin {
		t.Error("expected RequireLogin")
	}
	if cfg.CatalogLimit != 12 {
		t.Errorf("invalid CATALOG_LIMIT should fall back to 12, got %d", cfg.CatalogLimit)
	}
}

func TestValidate(t *testing.T) {
	base := Config{StoreBackend: BackendSQLite, DBPath: "x.db", CatalogLimit: 12, SessionTTL: time.Hour}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown backend", mutate: func(c *Config) { c.StoreBackend = "mongo" }, wantErr: "unknown STORE_BACKEND"},
		{name: "redis without addr", mutate: func(c *Config) { c.StoreBackend = BackendRedis }, wantErr: "REDIS_ADDR"},
		{name: "zero limit", mutate: func(c *Config) { c.CatalogLimit = 0 }, wantErr: "CATALOG_LIMIT"},
		{name: "zero ttl never expires", mutate: func(c *Config) { c.SessionTTL = 0 }},
		{name: "negative ttl", mutate: func(c *Config) { c.SessionTTL = -time.Hour }, wantErr: "SESSION_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
