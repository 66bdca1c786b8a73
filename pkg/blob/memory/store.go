// Package memory provides an in-memory blob store implementation.
//
// The memory store is intended for tests and for exercising the unit-of-work
// coordinator without touching disk. Contents are lost when the process exits.
package memory

import (
	"context"
	"sync"

	"github.com/marmos91/txfs/pkg/blob"
)

// Store is a map-backed implementation of blob.Store.
type Store struct {
	mu      sync.RWMutex
	entries map[string][]byte
	closed  bool
}

// New creates an empty in-memory blob store.
func New() *Store {
	return &Store{
		entries: make(map[string][]byte),
	}
}

// Exists reports whether an entry with the given name is present.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, blob.ErrStoreClosed
	}
	if name == "" {
		return false, blob.ErrInvalidName
	}

	_, ok := s.entries[name]
	return ok, nil
}

// TryRead returns the stored payload or blob.ErrNotFound.
func (s *Store) TryRead(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, blob.ErrStoreClosed
	}
	if name == "" {
		return nil, blob.ErrInvalidName
	}

	content, ok := s.entries[name]
	if !ok {
		return nil, blob.ErrNotFound
	}

	// Return a copy so callers cannot mutate stored state.
	out := make([]byte, len(content))
	copy(out, content)
	return out, nil
}

// Write creates or overwrites the entry.
func (s *Store) Write(ctx context.Context, name string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return blob.ErrStoreClosed
	}
	if name == "" {
		return blob.ErrInvalidName
	}

	stored := make([]byte, len(content))
	copy(stored, content)
	s.entries[name] = stored
	return nil
}

// Delete removes the entry, returning blob.ErrNotFound if it is absent.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return blob.ErrStoreClosed
	}
	if name == "" {
		return blob.ErrInvalidName
	}

	if _, ok := s.entries[name]; !ok {
		return blob.ErrNotFound
	}

	delete(s.entries, name)
	return nil
}

// HealthCheck verifies the store is usable.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return blob.ErrStoreClosed
	}
	return nil
}

// Close marks the store as closed and drops all entries.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.entries = nil
	return nil
}

// Len returns the number of stored entries (for testing).
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Ensure Store implements blob.Store.
var _ blob.Store = (*Store)(nil)
