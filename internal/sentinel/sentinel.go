package sentinel

import "errors"

// Errors shared by the store, the accountant and the snapshot backends.
// Wrap them with context; the service maps them to domain errors.
var (
	// ErrInvalidInput rejects a caller-supplied value (capacity, page bounds).
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidState marks persisted data that cannot be used as-is.
	ErrInvalidState = errors.New("invalid state")
	// ErrUnavailable marks a backend or dependency that cannot be reached.
	ErrUnavailable = errors.New("unavailable")
)
