package converters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yuggu7665-beep/converter-tools/internal/domain"
	"github.com/yuggu7665-beep/converter-tools/internal/validate"
)

// stubRates serves fixed rates, keyed exactly as converters ask for them.
type stubRates struct {
	rates map[string]float64
	calls []string
}

func (s *stubRates) Lookup(_ context.Context, key string) (float64, error) {
	s.calls = append(s.calls, key)
	rate, ok := s.rates[key]
	if !ok {
		return 0, domain.ErrRateUnavailable
	}
	return rate, nil
}

// input builds a typed Input directly, bypassing schema validation. Converter
// tests exercise converter logic; the validator has its own tests.
func input(t *testing.T, fields map[string]any) *validate.Input {
	t.Helper()
	return inputWithPayload(t, fields, nil)
}

func inputWithPayload(t *testing.T, fields map[string]any, payload []byte) *validate.Input {
	t.Helper()

	specs := make([]domain.FieldSpec, 0, len(fields))
	for name, value := range fields {
		spec := domain.FieldSpec{Name: name, Required: false}
		switch value.(type) {
		case string:
			spec.Kind = domain.KindString
		case float64:
			spec.Kind = domain.KindNumber
		case int:
			spec.Kind = domain.KindInt
		case bool:
			spec.Kind = domain.KindBool
		default:
			t.Fatalf("unsupported test field type %T for %q", value, name)
		}
		spec.Default = value
		specs = append(specs, spec)
	}

	desc := domain.Descriptor{
		Category:       domain.CategoryUtility,
		Name:           "test",
		Fields:         specs,
		AcceptsPayload: payload != nil,
	}

	in, err := validate.Apply(desc, domain.Request{Payload: payload}, int64(len(payload))+1)
	require.Nil(t, err)
	return in
}
