package domain

import "errors"

// Error kinds surfaced by the catalog engine. Callers classify with errors.Is.
var (
	// ErrInvalidInput marks malformed or missing identifiers.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks a reference to an item that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks a favorite operation attempted without a user.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrStoreUnavailable marks a transient store failure. It is never
	// converted into an empty result.
	ErrStoreUnavailable = errors.New("store unavailable")
)
