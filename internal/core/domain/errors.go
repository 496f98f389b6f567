package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not available
	// with the configured adapters.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedKind indicates an entity kind other than student or course.
	ErrUnsupportedKind = errors.New("unsupported entity kind")

	// Persistence Errors.

	// ErrMalformedRecord indicates a stored line could not be decoded.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrStoreUnavailable indicates the backing store for a kind could not be opened.
	// Loading treats this as an empty set for that kind.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrSaveFailed indicates the in-memory change was applied but could not be persisted.
	ErrSaveFailed = errors.New("save failed")

	// ErrUnsupportedBackend indicates an unknown storage backend in settings.
	ErrUnsupportedBackend = errors.New("unsupported storage backend")
)
