package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPErrorsTotal tracks HTTP errors by failure kind
	HTTPErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total HTTP errors by failure kind",
		},
		[]string{"kind"},
	)
)

// Response is the wire shape of a failed conversion. Successful conversions
// are written by the dispatch layer; this package only ever emits failures.
type Response struct {
	OK        bool   `json:"ok"`
	ErrorKind Kind   `json:"error_kind"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
}

// ToResponse converts an Error to the failure half of the response envelope.
func (e *Error) ToResponse() Response {
	return Response{
		OK:        false,
		ErrorKind: e.Kind,
		Message:   e.Message,
		Field:     e.Field,
	}
}

// Middleware returns an Echo middleware that converts errors escaping a
// handler into well-formed failure envelopes. Handlers on the conversion
// path write their envelopes directly; this is the backstop that guarantees
// the caller never sees an unstructured fault.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			// Echo middleware (e.g. BodyLimit) reports via HTTPError;
			// translate it so the envelope contract still holds.
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				structuredErr := WrapHTTPError(httpErr)
				HTTPErrorsTotal.WithLabelValues(string(structuredErr.Kind)).Inc()
				logError(c, structuredErr)
				return writeResponse(c, structuredErr)
			}

			structuredErr := AsStructuredError(err)
			HTTPErrorsTotal.WithLabelValues(string(structuredErr.Kind)).Inc()
			logError(c, structuredErr)
			return writeResponse(c, structuredErr)
		}
	}
}

func writeResponse(c echo.Context, err *Error) error {
	if c.Response().Committed {
		return nil
	}
	if jsonErr := c.JSON(err.HTTPStatus(), err.ToResponse()); jsonErr != nil {
		return fmt.Errorf("failed to write error response: %w", jsonErr)
	}
	return nil
}

// logError logs an error with request context.
func logError(c echo.Context, err *Error) {
	attrs := []any{
		"error_kind", err.Kind,
		"message", err.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"status", err.HTTPStatus(),
	}

	if err.Field != "" {
		attrs = append(attrs, "field", err.Field)
	}
	for k, v := range err.Context {
		attrs = append(attrs, k, v)
	}

	ctx := c.Request().Context()
	switch err.Kind {
	case KindInvalidInput, KindNotFound, KindPayloadTooLarge, KindUnsupportedFormat:
		slog.InfoContext(ctx, "Conversion rejected", attrs...)
	case KindUpstreamUnavailable:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.ErrorContext(ctx, "Upstream provider unavailable", attrs...)
	case KindInternal:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.ErrorContext(ctx, "Internal error", attrs...)
	default:
		slog.ErrorContext(ctx, "Unknown error kind", attrs...)
	}
}

// WrapHTTPError converts Echo's HTTPError to a structured Error.
func WrapHTTPError(httpErr *echo.HTTPError) *Error {
	message := "internal server error"
	if httpErr.Message != nil {
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	var kind Kind
	switch httpErr.Code {
	case http.StatusBadRequest:
		kind = KindInvalidInput
	case http.StatusNotFound:
		kind = KindNotFound
	case http.StatusRequestEntityTooLarge:
		kind = KindPayloadTooLarge
	case http.StatusUnprocessableEntity:
		kind = KindUnsupportedFormat
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		kind = KindUpstreamUnavailable
	default:
		kind = KindInternal
	}

	err := &Error{
		Kind:    kind,
		Message: message,
		Context: make(map[string]any),
	}

	if httpErr.Internal != nil {
		err.Cause = httpErr.Internal
	}

	return err
}
