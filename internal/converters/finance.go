package converters

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/yuggu7665-beep/converter-tools/internal/errors"
	"github.com/yuggu7665-beep/converter-tools/internal/validate"
)

// coinIDs maps supported crypto symbols to provider coin identifiers.
var coinIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"BNB":   "binancecoin",
	"XRP":   "ripple",
	"ADA":   "cardano",
	"DOGE":  "dogecoin",
	"SOL":   "solana",
	"MATIC": "matic-network",
}

// CryptoSymbols lists the supported crypto symbols for the descriptor enum.
func CryptoSymbols() []string {
	return []string{"BTC", "ETH", "BNB", "XRP", "ADA", "DOGE", "SOL", "MATIC"}
}

type CurrencyConvertResult struct {
	FromCurrency    string  `json:"from_currency"`
	ToCurrency      string  `json:"to_currency"`
	Amount          float64 `json:"amount"`
	ConvertedAmount float64 `json:"converted_amount"`
	ExchangeRate    float64 `json:"exchange_rate"`
	Timestamp       string  `json:"timestamp"`
}

// CurrencyConvert converts an amount between fiat currencies at the
// provider's current rate. A failed or empty lookup surfaces as an upstream
// failure; there is no fallback rate.
func (s *Set) CurrencyConvert(ctx context.Context, in *validate.Input) (any, error) {
	amount := in.Number("amount")
	from := strings.ToUpper(in.String("from_currency"))
	to := strings.ToUpper(in.String("to_currency"))

	rate, err := s.rates.Lookup(ctx, fmt.Sprintf("fiat:%s:%s", from, to))
	if err != nil {
		return nil, apperrors.Upstream(fmt.Sprintf("exchange rate %s to %s is unavailable", from, to), err)
	}

	return CurrencyConvertResult{
		FromCurrency:    from,
		ToCurrency:      to,
		Amount:          amount,
		ConvertedAmount: round2(amount * rate),
		ExchangeRate:    rate,
		Timestamp:       s.clock.Now().UTC().Format(time.RFC3339),
	}, nil
}

type CryptoPriceResult struct {
	Cryptocurrency string  `json:"cryptocurrency"`
	Currency       string  `json:"currency"`
	Price          float64 `json:"price"`
	Timestamp      string  `json:"timestamp"`
}

// CryptoPrice looks up the current price of a supported cryptocurrency.
func (s *Set) CryptoPrice(ctx context.Context, in *validate.Input) (any, error) {
	symbol := in.String("symbol")
	vsCurrency := strings.ToLower(in.String("vs_currency"))

	price, err := s.rates.Lookup(ctx, fmt.Sprintf("crypto:%s:%s", coinIDs[symbol], vsCurrency))
	if err != nil {
		return nil, apperrors.Upstream(fmt.Sprintf("price for %s in %s is unavailable", symbol, strings.ToUpper(vsCurrency)), err)
	}

	return CryptoPriceResult{
		Cryptocurrency: symbol,
		Currency:       strings.ToUpper(vsCurrency),
		Price:          price,
		Timestamp:      s.clock.Now().UTC().Format(time.RFC3339),
	}, nil
}

type TaxCalculateResult struct {
	BaseAmount     float64 `json:"base_amount"`
	TaxRatePercent float64 `json:"tax_rate_percent"`
	TaxAmount      float64 `json:"tax_amount"`
	TotalAmount    float64 `json:"total_amount"`
	TaxIncluded    bool    `json:"tax_included"`
}

// TaxCalculate computes a GST/VAT/sales-tax breakdown. When tax_included is
// true the amount is treated as gross and the base is extracted; otherwise
// tax is added on top. Rounding happens once, on the outputs.
func TaxCalculate(_ context.Context, in *validate.Input) (any, error) {
	amount := in.Number("amount")
	taxRate := in.Number("tax_rate")
	taxIncluded := in.Bool("tax_included")

	var base, tax, total float64
	if taxIncluded {
		base = amount / (1 + taxRate/100)
		tax = amount - base
		total = amount
	} else {
		base = amount
		tax = amount * taxRate / 100
		total = amount + tax
	}

	return TaxCalculateResult{
		BaseAmount:     round2(base),
		TaxRatePercent: taxRate,
		TaxAmount:      round2(tax),
		TotalAmount:    round2(total),
		TaxIncluded:    taxIncluded,
	}, nil
}
