package domain

import "errors"

var (
	// ErrRateUnavailable signals that a provider failed or returned no
	// usable rate for the requested key.
	ErrRateUnavailable = errors.New("rate unavailable")
)
