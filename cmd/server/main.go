package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yuggu7665-beep/converter-tools/internal/config"
	"github.com/yuggu7665-beep/converter-tools/internal/converters"
	"github.com/yuggu7665-beep/converter-tools/internal/dispatch"
	"github.com/yuggu7665-beep/converter-tools/internal/domain"
	"github.com/yuggu7665-beep/converter-tools/internal/logging"
	"github.com/yuggu7665-beep/converter-tools/internal/rates"
	"github.com/yuggu7665-beep/converter-tools/internal/registry"
	"github.com/yuggu7665-beep/converter-tools/internal/server"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupRedis(cfg *config.Config) *goredis.Client {
	opts, err := goredis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to parse Redis URL", "error", err)
		os.Exit(1)
	}
	client := goredis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

// setupRateProvider builds the provider chain: HTTP upstream, optionally
// wrapped in a Redis read-through layer, always topped by the in-memory
// cache.
func setupRateProvider(cfg *config.Config, redisClient *goredis.Client) (domain.RateProvider, *rates.Cache) {
	var provider domain.RateProvider = rates.NewHTTPProvider(
		cfg.ExchangeRateURL, cfg.CryptoPriceURL, cfg.UpstreamTimeout)

	if redisClient != nil {
		provider = rates.NewRedisCache(redisClient, provider, cfg.RateCacheTTL)
	}

	memoryCache := rates.NewCache(provider, cfg.RateCacheTTL)
	return memoryCache, memoryCache
}

func runGracefulShutdown(srv *server.Server, memoryCache *rates.Cache) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		memoryCache.Stop()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	var redisClient *goredis.Client
	var healthChecks []server.HealthCheck
	if cfg.RedisURL != "" {
		redisClient = setupRedis(cfg)
		defer func() { _ = redisClient.Close() }()
		healthChecks = append(healthChecks, server.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}

	provider, memoryCache := setupRateProvider(cfg, redisClient)

	set := converters.New(provider, clock)

	reg, err := registry.New(registry.Entries(set))
	if err != nil {
		slog.Error("Failed to build operation registry", "error", err)
		os.Exit(1)
	}

	dispatcher := dispatch.New(reg, cfg.MaxUploadBytes)
	srv := server.NewServer(cfg, dispatcher, reg, healthChecks)

	done := runGracefulShutdown(srv, memoryCache)

	slog.Info("Server starting", "port", cfg.Port, "operations", reg.Len())
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
