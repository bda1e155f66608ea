// Package dispatch routes validated conversion requests to their converters
// and wraps every outcome in the uniform response envelope.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	apperrors "github.com/yuggu7665-beep/converter-tools/internal/errors"

	"github.com/yuggu7665-beep/converter-tools/internal/domain"
	"github.com/yuggu7665-beep/converter-tools/internal/metrics"
	"github.com/yuggu7665-beep/converter-tools/internal/registry"
	"github.com/yuggu7665-beep/converter-tools/internal/validate"
)

// Response is the wire shape of a successful conversion. Failures are written
// by the errors middleware; the two shapes share the "ok" discriminator.
type Response struct {
	OK   bool `json:"ok"`
	Data any  `json:"data"`
}

// Dispatcher resolves requests against the registry, validates them, and
// executes the converter. It holds no per-request state.
type Dispatcher struct {
	registry   *registry.Registry
	maxPayload int64
}

// New creates a dispatcher over the given registry. maxPayload is the byte
// ceiling applied to file payloads.
func New(reg *registry.Registry, maxPayload int64) *Dispatcher {
	return &Dispatcher{registry: reg, maxPayload: maxPayload}
}

// Dispatch runs one conversion request through lookup, validation, and the
// converter. The returned error is always a structured *errors.Error; the
// not-found check runs before validation so unknown operations never leak
// field-level messages.
func (d *Dispatcher) Dispatch(ctx context.Context, req domain.Request) (*Response, *apperrors.Error) {
	category := domain.Category(strings.ToLower(strings.TrimSpace(string(req.Category))))
	operation := strings.ToLower(strings.TrimSpace(req.Operation))

	entry, ok := d.registry.Lookup(category, operation)
	if !ok {
		metrics.ConversionsTotal.WithLabelValues(string(category), operation, string(apperrors.KindNotFound)).Inc()
		return nil, apperrors.NotFound(fmt.Sprintf("unknown operation %s/%s", category, operation))
	}

	desc := entry.Descriptor

	in, verr := validate.Apply(desc, req, d.maxPayload)
	if verr != nil {
		d.observe(desc, verr)
		return nil, verr
	}

	if desc.AcceptsPayload {
		metrics.PayloadBytes.WithLabelValues(string(desc.Category), desc.Name).Observe(float64(len(req.Payload)))
	}

	timer := prometheus.NewTimer(metrics.ConversionDuration.WithLabelValues(string(desc.Category), desc.Name))
	result, err := d.run(ctx, entry, in)
	timer.ObserveDuration()

	if err != nil {
		structuredErr := apperrors.AsStructuredError(err).
			WithContext("category", string(desc.Category)).
			WithContext("operation", desc.Name)
		d.observe(desc, structuredErr)
		return nil, structuredErr
	}

	metrics.ConversionsTotal.WithLabelValues(string(desc.Category), desc.Name, "success").Inc()
	slog.InfoContext(ctx, "Conversion succeeded",
		"category", desc.Category,
		"operation", desc.Name,
	)

	return &Response{OK: true, Data: result}, nil
}

// run executes the converter with a panic guard. A panicking converter is a
// bug; the caller still gets a well-formed internal failure.
func (d *Dispatcher) run(ctx context.Context, entry registry.Entry, in *validate.Input) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = apperrors.Internal(fmt.Sprintf("converter panicked: %v", r), nil)
		}
	}()
	return entry.Handler(ctx, in)
}

func (d *Dispatcher) observe(desc domain.Descriptor, err *apperrors.Error) {
	metrics.ConversionsTotal.WithLabelValues(string(desc.Category), desc.Name, string(err.Kind)).Inc()
}
