package rates

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yuggu7665-beep/converter-tools/internal/domain"
	"github.com/yuggu7665-beep/converter-tools/internal/metrics"
)

const redisKeyPrefix = "rate_cache:"

// RedisCache provides read-through rate caching: Redis → upstream. It is
// strictly best-effort; a broken Redis degrades to upstream lookups, never
// to failed conversions.
type RedisCache struct {
	rdb   goredis.Cmdable
	inner domain.RateProvider
	ttl   time.Duration
}

// NewRedisCache creates a read-through Redis layer over inner.
func NewRedisCache(rdb goredis.Cmdable, inner domain.RateProvider, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, inner: inner, ttl: ttl}
}

// Lookup tries Redis first and falls through to the inner provider on a miss
// or Redis error. Successful upstream lookups populate Redis best-effort.
func (r *RedisCache) Lookup(ctx context.Context, key string) (float64, error) {
	cacheKey := redisKeyPrefix + key

	raw, err := r.rdb.Get(ctx, cacheKey).Result()
	if err == nil {
		rate, parseErr := strconv.ParseFloat(raw, 64)
		if parseErr == nil {
			metrics.RateCacheHits.WithLabelValues("redis").Inc()
			return rate, nil
		}
		slog.Warn("Failed to parse cached rate, falling through to upstream",
			"key", key, "error", parseErr)
	} else if !errors.Is(err, goredis.Nil) {
		slog.Warn("Redis rate cache GET failed, falling through to upstream",
			"key", key, "error", err)
	}
	metrics.RateCacheMisses.WithLabelValues("redis").Inc()

	rate, err := r.inner.Lookup(ctx, key)
	if err != nil {
		return 0, err
	}

	encoded := strconv.FormatFloat(rate, 'f', -1, 64)
	if err := r.rdb.Set(ctx, cacheKey, encoded, r.ttl).Err(); err != nil {
		slog.Warn("Failed to populate Redis rate cache", "key", key, "error", err)
	}

	return rate, nil
}
