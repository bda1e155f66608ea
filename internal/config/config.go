package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultMaxUploadBytes  = 5 << 20 // 5 MiB
	defaultRateCacheTTL    = 5 * time.Minute
	defaultUpstreamTimeout = 5 * time.Second
)

type Config struct {
	AppEnv    string
	Port      string
	LogLevel  string
	LogFormat string

	// MaxUploadBytes is the ceiling for byte payloads of file-bearing
	// operations. It is the only externally tunable limit of the
	// conversion core.
	MaxUploadBytes int64

	ExchangeRateURL string
	CryptoPriceURL  string
	UpstreamTimeout time.Duration
	RateCacheTTL    time.Duration

	// RedisURL enables the Redis-backed rate cache when set.
	RedisURL string
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		ExchangeRateURL: getEnv("EXCHANGE_RATE_API_URL", "https://api.exchangerate-api.com/v4/latest"),
		CryptoPriceURL:  getEnv("CRYPTO_PRICE_API_URL", "https://api.coingecko.com/api/v3/simple/price"),
		RedisURL:        getEnv("REDIS_URL", ""),
	}

	maxUpload, err := getEnvInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	if err != nil {
		return nil, err
	}
	if maxUpload <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", maxUpload)
	}
	cfg.MaxUploadBytes = maxUpload

	timeout, err := getEnvDuration("UPSTREAM_TIMEOUT", defaultUpstreamTimeout)
	if err != nil {
		return nil, err
	}
	cfg.UpstreamTimeout = timeout

	ttl, err := getEnvDuration("RATE_CACHE_TTL", defaultRateCacheTTL)
	if err != nil {
		return nil, err
	}
	cfg.RateCacheTTL = ttl

	if cfg.ExchangeRateURL == "" {
		return nil, fmt.Errorf("EXCHANGE_RATE_API_URL must not be empty")
	}
	if cfg.CryptoPriceURL == "" {
		return nil, fmt.Errorf("CRYPTO_PRICE_API_URL must not be empty")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration (e.g. 5s): %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, value)
	}
	return value, nil
}
