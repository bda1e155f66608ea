// Package metrics declares the service's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/yuggu7665-beep/converter-tools/internal/version"
)

var (
	// ConversionsTotal counts conversion requests by operation and outcome.
	// Outcome is "success" or the failure kind.
	ConversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversions_total",
			Help: "Total conversion requests by category, operation, and outcome",
		},
		[]string{"category", "operation", "outcome"},
	)

	// ConversionDuration tracks how long converters take, per operation.
	ConversionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "conversion_duration_seconds",
			Help:    "Duration of conversion handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"category", "operation"},
	)

	// PayloadBytes observes the size of uploaded file payloads.
	PayloadBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "conversion_payload_bytes",
			Help:    "Size of uploaded payloads in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
		[]string{"category", "operation"},
	)

	// RateLookupsTotal counts upstream rate lookups by outcome.
	RateLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_lookups_total",
			Help: "Total upstream rate lookups by outcome",
		},
		[]string{"outcome"},
	)

	// RateLookupDuration tracks upstream rate provider latency.
	RateLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rate_lookup_duration_seconds",
			Help:    "Duration of upstream rate lookups in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// RateCacheHits counts rate cache hits by layer (memory, redis).
	RateCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_cache_hits_total",
			Help: "Total rate cache hits by layer",
		},
		[]string{"layer"},
	)

	// RateCacheMisses counts rate cache misses by layer.
	RateCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_cache_misses_total",
			Help: "Total rate cache misses by layer",
		},
		[]string{"layer"},
	)

	buildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "build_info",
			Help: "Build information, value is always 1",
		},
		[]string{"version", "commit"},
	)
)

func init() {
	info := version.Get()
	buildInfo.WithLabelValues(info.Version, info.Commit).Set(1)
}
