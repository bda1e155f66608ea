// Package rates implements the external rate provider chain: an HTTP client
// against the public exchange-rate and crypto-price APIs, wrapped by optional
// Redis and in-memory caching layers. The conversion core sees only the
// provider interface; caching never leaks into converters.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yuggu7665-beep/converter-tools/internal/domain"
	"github.com/yuggu7665-beep/converter-tools/internal/metrics"
)

// HTTPProvider looks up fiat exchange rates and crypto prices from public
// JSON APIs. Keys have the form "fiat:FROM:TO" or "crypto:COIN:VS".
type HTTPProvider struct {
	client          *http.Client
	exchangeRateURL string
	cryptoPriceURL  string
}

// NewHTTPProvider creates an upstream provider. timeout bounds every lookup;
// there are no retries, a failed lookup surfaces immediately.
func NewHTTPProvider(exchangeRateURL, cryptoPriceURL string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		client:          &http.Client{Timeout: timeout},
		exchangeRateURL: strings.TrimRight(exchangeRateURL, "/"),
		cryptoPriceURL:  cryptoPriceURL,
	}
}

// Lookup resolves a rate key against the upstream API.
func (p *HTTPProvider) Lookup(ctx context.Context, key string) (float64, error) {
	timer := prometheus.NewTimer(metrics.RateLookupDuration)
	rate, err := p.lookup(ctx, key)
	timer.ObserveDuration()

	if err != nil {
		metrics.RateLookupsTotal.WithLabelValues("failure").Inc()
		return 0, err
	}
	metrics.RateLookupsTotal.WithLabelValues("success").Inc()
	return rate, nil
}

func (p *HTTPProvider) lookup(ctx context.Context, key string) (float64, error) {
	parts := strings.Split(key, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed rate key %q: %w", key, domain.ErrRateUnavailable)
	}

	switch parts[0] {
	case "fiat":
		return p.fiatRate(ctx, parts[1], parts[2])
	case "crypto":
		return p.cryptoPrice(ctx, parts[1], parts[2])
	default:
		return 0, fmt.Errorf("unknown rate source %q: %w", parts[0], domain.ErrRateUnavailable)
	}
}

// fiatRate queries the exchange-rate API: GET {base}/{FROM} returns a rates
// table keyed by target currency.
func (p *HTTPProvider) fiatRate(ctx context.Context, from, to string) (float64, error) {
	var body struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := p.getJSON(ctx, p.exchangeRateURL+"/"+url.PathEscape(from), &body); err != nil {
		return 0, err
	}

	rate, ok := body.Rates[to]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("no rate for %s to %s: %w", from, to, domain.ErrRateUnavailable)
	}
	return rate, nil
}

// cryptoPrice queries the price API: GET {base}?ids={coin}&vs_currencies={vs}
// returns a nested map of coin → currency → price.
func (p *HTTPProvider) cryptoPrice(ctx context.Context, coin, vsCurrency string) (float64, error) {
	query := url.Values{}
	query.Set("ids", coin)
	query.Set("vs_currencies", vsCurrency)

	var body map[string]map[string]float64
	if err := p.getJSON(ctx, p.cryptoPriceURL+"?"+query.Encode(), &body); err != nil {
		return 0, err
	}

	price, ok := body[coin][vsCurrency]
	if !ok || price <= 0 {
		return 0, fmt.Errorf("no price for %s in %s: %w", coin, vsCurrency, domain.ErrRateUnavailable)
	}
	return price, nil
}

func (p *HTTPProvider) getJSON(ctx context.Context, requestURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("building rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("rate request failed: %w: %w", err, domain.ErrRateUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rate provider returned status %d: %w", resp.StatusCode, domain.ErrRateUnavailable)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding rate response: %w: %w", err, domain.ErrRateUnavailable)
	}
	return nil
}
