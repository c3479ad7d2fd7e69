package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/shophub/internal/auth"
	"github.com/mmynk/shophub/internal/catalog"
	"github.com/mmynk/shophub/internal/config"
	"github.com/mmynk/shophub/internal/httpapi"
	"github.com/mmynk/shophub/internal/metrics"
	"github.com/mmynk/shophub/internal/service"
	"github.com/mmynk/shophub/internal/storage"
	"github.com/mmynk/shophub/internal/storage/redis"
	"github.com/mmynk/shophub/internal/storage/sqlite"
	"github.com/mmynk/shophub/pkg/logging"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Storage initialized", "backend", cfg.StoreBackend)

	var (
		m             *metrics.Metrics
		metricsHandle http.Handler
	)
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
		metricsHandle = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	loader := catalog.NewLoader(
		catalog.WithURL(cfg.CatalogURL),
		catalog.WithLimit(cfg.CatalogLimit),
		catalog.WithHTTPClient(&http.Client{Timeout: cfg.CatalogTimeout}),
		catalog.WithLogger(logger),
	)

	shop := service.NewShop(service.Options{
		Store:     store,
		Tokens:    auth.NewSessionTokens(cfg.SessionSecret, cfg.SessionTTL),
		Catalog:   loader,
		Logger:    logger,
		Metrics:   m,
		AuthDelay: cfg.AuthDelay,
	})
	shop.Restore(ctx)

	router := httpapi.NewRouter(httpapi.NewHandler(shop, logger), httpapi.RouterOptions{
		Logger:       logger,
		RequireLogin: cfg.RequireLogin,
		Metrics:      metricsHandle,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", srv.Addr, "url", "http://localhost"+srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		return redis.New(ctx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	default:
		return sqlite.New(cfg.DBPath)
	}
}
