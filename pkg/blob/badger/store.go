// Package badger provides a BadgerDB-backed blob store implementation.
//
// Entries are stored under a key prefix in a single Badger database. The
// store supports Badger's in-memory mode for tests that want durable-store
// semantics without touching disk.
package badger

import (
	"context"
	"errors"
	"sync"

	badgerdb "github.com/dgraph-io/badger/v4"

	"github.com/marmos91/txfs/pkg/blob"
)

// keyPrefix namespaces blob entries within the database.
const keyPrefix = "blob:"

// Store is a BadgerDB-backed implementation of blob.Store.
type Store struct {
	mu     sync.RWMutex
	db     *badgerdb.DB
	closed bool
}

// Config holds configuration for the Badger blob store.
type Config struct {
	// Path is the directory for the Badger database files.
	// Ignored when InMemory is true.
	Path string

	// InMemory runs Badger entirely in memory. Intended for tests.
	InMemory bool
}

// New opens a Badger database and returns a blob store backed by it.
func New(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badger store requires a path unless in-memory")
	}

	opts := badgerdb.DefaultOptions(cfg.Path)
	opts.InMemory = cfg.InMemory
	// Badger's default logger writes to stderr unconditionally; the store
	// surfaces failures through error returns instead.
	opts.Logger = nil

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

func entryKey(name string) []byte {
	return []byte(keyPrefix + name)
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

	exists := false
	err := s.db.View(func(txn *badgerdb.Txn) error {
		_, err := txn.Get(entryKey(name))
		if err == badgerdb.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	})

	return exists, err
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

	var content []byte
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(entryKey(name))
		if err == badgerdb.ErrKeyNotFound {
			return blob.ErrNotFound
		}
		if err != nil {
			return err
		}

		content, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	return content, nil
}

// Write creates or overwrites the entry.
func (s *Store) Write(ctx context.Context, name string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return blob.ErrStoreClosed
	}
	if name == "" {
		return blob.ErrInvalidName
	}

	return s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(entryKey(name), content)
	})
}

// Delete removes the entry, returning blob.ErrNotFound if it is absent.
// Badger's Delete succeeds for missing keys, so presence is checked inside
// the same transaction.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return blob.ErrStoreClosed
	}
	if name == "" {
		return blob.ErrInvalidName
	}

	return s.db.Update(func(txn *badgerdb.Txn) error {
		_, err := txn.Get(entryKey(name))
		if err == badgerdb.ErrKeyNotFound {
			return blob.ErrNotFound
		}
		if err != nil {
			return err
		}

		return txn.Delete(entryKey(name))
	})
}

// HealthCheck verifies the database is open and readable.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return blob.ErrStoreClosed
	}

	return s.db.View(func(txn *badgerdb.Txn) error {
		return nil
	})
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Ensure Store implements blob.Store.
var _ blob.Store = (*Store)(nil)
