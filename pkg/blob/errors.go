package blob

import "errors"

// Standard store errors. Backends map their native failure modes onto these
// sentinels so callers can branch with errors.Is regardless of backend type.
var (
	// ErrNotFound indicates the named entry does not exist in the store.
	ErrNotFound = errors.New("entry not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("store is closed")

	// ErrInvalidName indicates the entry name is empty or otherwise
	// unusable as a key.
	ErrInvalidName = errors.New("invalid entry name")
)
