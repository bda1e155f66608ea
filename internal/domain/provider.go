package domain

import "context"

// RateProvider is the single narrow interface to external rate/price data.
// Keys are namespaced strings: "fiat:USD:EUR" for exchange rates,
// "crypto:bitcoin:usd" for crypto prices. Implementations return
// ErrRateUnavailable when no usable rate exists; the conversion core never
// retries, caches, or substitutes a fallback rate.
type RateProvider interface {
	Lookup(ctx context.Context, key string) (float64, error)
}
