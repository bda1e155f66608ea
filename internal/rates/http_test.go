package rates

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuggu7665-beep/converter-tools/internal/domain"
)

func newFiatServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestHTTPProviderFiatRate(t *testing.T) {
	server := newFiatServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/USD", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rates":{"EUR":0.92,"GBP":0.79}}`))
	})
	provider := NewHTTPProvider(server.URL, server.URL, time.Second)

	rate, err := provider.Lookup(context.Background(), "fiat:USD:EUR")

	require.NoError(t, err)
	assert.Equal(t, 0.92, rate)
}

func TestHTTPProviderFiatRateMissingTarget(t *testing.T) {
	server := newFiatServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"rates":{"EUR":0.92}}`))
	})
	provider := NewHTTPProvider(server.URL, server.URL, time.Second)

	_, err := provider.Lookup(context.Background(), "fiat:USD:XXX")

	assert.ErrorIs(t, err, domain.ErrRateUnavailable)
}

func TestHTTPProviderCryptoPrice(t *testing.T) {
	server := newFiatServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "bitcoin", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		_, _ = w.Write([]byte(`{"bitcoin":{"usd":43250.5}}`))
	})
	provider := NewHTTPProvider(server.URL, server.URL, time.Second)

	price, err := provider.Lookup(context.Background(), "crypto:bitcoin:usd")

	require.NoError(t, err)
	assert.Equal(t, 43250.5, price)
}

func TestHTTPProviderUpstreamErrorStatus(t *testing.T) {
	server := newFiatServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	provider := NewHTTPProvider(server.URL, server.URL, time.Second)

	_, err := provider.Lookup(context.Background(), "fiat:USD:EUR")

	assert.ErrorIs(t, err, domain.ErrRateUnavailable)
}

func TestHTTPProviderMalformedBody(t *testing.T) {
	server := newFiatServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})
	provider := NewHTTPProvider(server.URL, server.URL, time.Second)

	_, err := provider.Lookup(context.Background(), "fiat:USD:EUR")

	assert.ErrorIs(t, err, domain.ErrRateUnavailable)
}

func TestHTTPProviderZeroRateIsUnavailable(t *testing.T) {
	server := newFiatServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"rates":{"EUR":0}}`))
	})
	provider := NewHTTPProvider(server.URL, server.URL, time.Second)

	_, err := provider.Lookup(context.Background(), "fiat:USD:EUR")

	assert.ErrorIs(t, err, domain.ErrRateUnavailable)
}

func TestHTTPProviderMalformedKey(t *testing.T) {
	provider := NewHTTPProvider("http://localhost", "http://localhost", time.Second)

	for _, key := range []string{"", "fiat:USD", "stocks:AAPL:usd"} {
		_, err := provider.Lookup(context.Background(), key)
		assert.ErrorIs(t, err, domain.ErrRateUnavailable, "key %q", key)
	}
}

func TestHTTPProviderRespectsContextCancellation(t *testing.T) {
	server := newFiatServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	provider := NewHTTPProvider(server.URL, server.URL, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := provider.Lookup(ctx, "fiat:USD:EUR")

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded) || errors.Is(err, domain.ErrRateUnavailable))
}
