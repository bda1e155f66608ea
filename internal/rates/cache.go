package rates

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/yuggu7665-beep/converter-tools/internal/domain"
	"github.com/yuggu7665-beep/converter-tools/internal/metrics"
)

// Cache is an in-memory read-through layer over another provider. Only
// successful lookups are cached; failures always propagate and are retried
// on the next request.
type Cache struct {
	inner domain.RateProvider
	cache *ttlcache.Cache[string, float64]
}

// NewCache wraps inner with an in-memory TTL cache.
func NewCache(inner domain.RateProvider, ttl time.Duration) *Cache {
	cache := ttlcache.New[string, float64](
		ttlcache.WithTTL[string, float64](ttl),
		ttlcache.WithDisableTouchOnHit[string, float64](),
	)
	go cache.Start()

	return &Cache{inner: inner, cache: cache}
}

// Lookup serves from memory when fresh, otherwise delegates and caches the
// result.
func (c *Cache) Lookup(ctx context.Context, key string) (float64, error) {
	if item := c.cache.Get(key); item != nil {
		metrics.RateCacheHits.WithLabelValues("memory").Inc()
		return item.Value(), nil
	}
	metrics.RateCacheMisses.WithLabelValues("memory").Inc()

	rate, err := c.inner.Lookup(ctx, key)
	if err != nil {
		return 0, err
	}

	c.cache.Set(key, rate, ttlcache.DefaultTTL)
	return rate, nil
}

// Stop shuts down the cache's expiration goroutine.
func (c *Cache) Stop() {
	c.cache.Stop()
}
