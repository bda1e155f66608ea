// Package converters implements one pure conversion function per operation.
//
// Converters receive a validated input and return exactly one outcome: a
// result value or a typed failure. They never re-check what the schema
// already guarantees; only cross-field rules the flat schema cannot express
// (unit membership within a category, operands per calculation type) are
// enforced here. Rounding is applied once, at the end of a computation.
package converters

import (
	"encoding/base64"
	"fmt"
	"math"

	"github.com/jonboulle/clockwork"

	"github.com/yuggu7665-beep/converter-tools/internal/domain"
)

// Set bundles the converters with their injected collaborators: the upstream
// rate provider for finance operations and the clock for operations where
// "now" matters.
type Set struct {
	rates domain.RateProvider
	clock clockwork.Clock
}

// New creates the converter set.
func New(rates domain.RateProvider, clock clockwork.Clock) *Set {
	return &Set{rates: rates, clock: clock}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func dataURI(mime string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}
