// Package errors provides the closed failure-kind taxonomy of the conversion
// core, with HTTP status code mapping and context propagation.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes a conversion failure for the response envelope, metrics,
// and status mapping. The set is closed; every kind maps to exactly one
// HTTP status.
type Kind string

const (
	// KindInvalidInput indicates a validation failure; always names the field (HTTP 400).
	KindInvalidInput Kind = "invalid_input"
	// KindNotFound indicates an unknown category/operation pair (HTTP 404).
	KindNotFound Kind = "not_found"
	// KindPayloadTooLarge indicates a byte payload over the configured ceiling (HTTP 413).
	KindPayloadTooLarge Kind = "payload_too_large"
	// KindUnsupportedFormat indicates content the converter cannot interpret (HTTP 422).
	KindUnsupportedFormat Kind = "unsupported_format"
	// KindUpstreamUnavailable indicates a failed or empty external provider lookup (HTTP 502).
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	// KindInternal indicates an unexpected converter failure; a bug, never expected (HTTP 500).
	KindInternal Kind = "internal"
)

// Error represents a structured conversion failure with kind, message, the
// offending field (for validation failures), and context.
type Error struct {
	Kind    Kind
	Message string
	Field   string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the HTTP status code for this failure kind. The mapping
// is total: every kind has exactly one status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindUnsupportedFormat:
		return http.StatusUnprocessableEntity
	case KindUpstreamUnavailable:
		return http.StatusBadGateway
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// InvalidInput creates a validation failure naming the offending field.
func InvalidInput(field, message string) *Error {
	return &Error{
		Kind:    KindInvalidInput,
		Message: message,
		Field:   field,
		Context: make(map[string]any),
	}
}

// NotFound creates an unknown-operation failure.
func NotFound(message string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: message,
		Context: make(map[string]any),
	}
}

// PayloadTooLarge creates an oversized-payload failure.
func PayloadTooLarge(message string) *Error {
	return &Error{
		Kind:    KindPayloadTooLarge,
		Message: message,
		Context: make(map[string]any),
	}
}

// UnsupportedFormat creates a failure for content a converter cannot interpret.
func UnsupportedFormat(message string) *Error {
	return &Error{
		Kind:    KindUnsupportedFormat,
		Message: message,
		Context: make(map[string]any),
	}
}

// Upstream creates a failure for an unavailable external data provider.
func Upstream(message string, cause error) *Error {
	return &Error{
		Kind:    KindUpstreamUnavailable,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// Internal creates a failure for an unexpected converter error.
func Internal(message string, cause error) *Error {
	return &Error{
		Kind:    KindInternal,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// WithContext adds context fields to the error (chainable).
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// AsStructuredError converts any error into a structured Error.
// If err is already an *Error, returns it unchanged.
// Otherwise wraps it as an internal error.
func AsStructuredError(err error) *Error {
	if err == nil {
		return nil
	}

	var structuredErr *Error
	if errors.As(err, &structuredErr) {
		return structuredErr
	}

	return Internal("internal server error", err)
}
