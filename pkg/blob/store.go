// Package blob defines the storage backend contract consumed by the
// unit-of-work coordinator.
//
// A Store is a key-value-shaped durable namespace: whole values addressed by
// name, with existence check, read, write, and delete. The coordinator in
// pkg/txn imposes all transactional semantics on top of this interface; a
// Store itself makes no atomicity promises across calls.
//
// Implementations live in subpackages (memory, fs, badger, s3) and must pass
// the conformance suite in pkg/blob/storetest.
package blob

import "context"

// Store is the durable backend mutated by a unit of work.
//
// Implementations must be safe for concurrent use: the backend may be shared
// by unrelated units of work. All methods honor context cancellation.
type Store interface {
	// Exists reports whether an entry with the given name is present.
	// A false return with nil error means the name is absent; a non-nil
	// error means the backend itself could not answer.
	Exists(ctx context.Context, name string) (bool, error)

	// TryRead returns the stored payload for name, or ErrNotFound if the
	// entry is absent. Absence is an error value, not a panic or a nil slice.
	TryRead(ctx context.Context, name string) ([]byte, error)

	// Write creates or overwrites the entry with the given content.
	Write(ctx context.Context, name string, content []byte) error

	// Delete removes the entry. Deleting an absent name returns ErrNotFound
	// so callers can distinguish a lost entry from a successful removal.
	Delete(ctx context.Context, name string) error

	// HealthCheck verifies the store is accessible and operational.
	HealthCheck(ctx context.Context) error

	// Close releases resources held by the store. Operations on a closed
	// store return ErrStoreClosed.
	Close() error
}
