package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIdentifier means the caller supplied an id that is not a
	// well-formed store key. It is detected locally, before any store call.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrNotFound means the id was well-formed but matched nothing.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable wraps transient store failures (timeouts,
	// connection loss). Never collapsed into a not-found.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrValidationFailed is reserved for message-shape checks.
	ErrValidationFailed = errors.New("validation failed")
)

// InvalidIdentifier reports a malformed store key.
func InvalidIdentifier(id string) error {
	return fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
}

// NotFound reports a missing entity.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// StoreUnavailable wraps a store-level failure, keeping the cause.
func StoreUnavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

// ValidationFailed reports a rejected message shape.
func ValidationFailed(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, reason)
}
