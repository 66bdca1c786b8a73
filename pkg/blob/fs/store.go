// Package fs provides a filesystem-backed blob store implementation.
package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/marmos91/txfs/pkg/blob"
)

// Store is a filesystem-backed implementation of blob.Store.
// Each entry is stored as a file with the entry name as the path.
type Store struct {
	mu       sync.RWMutex
	basePath string
	fileMode os.FileMode
	closed   bool
}

// Config holds configuration for the filesystem blob store.
type Config struct {
	// BasePath is the root directory for entry storage.
	// Entry names are stored as paths relative to this directory.
	BasePath string

	// CreateDir creates the base directory if it doesn't exist.
	// Default: true
	CreateDir bool

	// DirMode is the permission mode for created directories.
	// Default: 0755
	DirMode os.FileMode

	// FileMode is the permission mode for created files.
	// Default: 0644
	FileMode os.FileMode
}

// DefaultConfig returns the default configuration.
func DefaultConfig(basePath string) Config {
	return Config{
		BasePath:  basePath,
		CreateDir: true,
		DirMode:   0755,
		FileMode:  0644,
	}
}

// New creates a new filesystem blob store with the given configuration.
func New(cfg Config) (*Store, error) {
	if cfg.BasePath == "" {
		return nil, errors.New("base path is required")
	}

	if cfg.DirMode == 0 {
		cfg.DirMode = 0755
	}
	if cfg.FileMode == 0 {
		cfg.FileMode = 0644
	}

	if cfg.CreateDir {
		if err := os.MkdirAll(cfg.BasePath, cfg.DirMode); err != nil {
			return nil, err
		}
	}

	info, err := os.Stat(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("base path is not a directory")
	}

	return &Store{
		basePath: cfg.BasePath,
		fileMode: cfg.FileMode,
	}, nil
}

// NewWithPath creates a new filesystem blob store with default configuration.
func NewWithPath(basePath string) (*Store, error) {
	return New(DefaultConfig(basePath))
}

// entryPath returns the full filesystem path for an entry name.
// Entry names use forward slashes as separators.
func (s *Store) entryPath(name string) string {
	return filepath.Join(s.basePath, filepath.FromSlash(name))
}

// validName rejects names that would escape the base path.
func validName(name string) bool {
	if name == "" {
		return false
	}
	if strings.HasPrefix(name, "/") || strings.Contains(name, "..") {
		return false
	}
	return true
}

// Exists reports whether a file for the given entry name is present.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, blob.ErrStoreClosed
	}
	if !validName(name) {
		return false, blob.ErrInvalidName
	}

	_, err := os.Stat(s.entryPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// TryRead reads a complete entry from the filesystem.
func (s *Store) TryRead(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, blob.ErrStoreClosed
	}
	if !validName(name) {
		return nil, blob.ErrInvalidName
	}

	content, err := os.ReadFile(s.entryPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, blob.ErrNotFound
		}
		return nil, err
	}

	return content, nil
}

// Write writes an entry to the filesystem.
func (s *Store) Write(ctx context.Context, name string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return blob.ErrStoreClosed
	}
	if !validName(name) {
		return blob.ErrInvalidName
	}

	path := s.entryPath(name)

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	// Write to a temporary file first, then rename for atomicity
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, s.fileMode); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // Clean up on failure
		return err
	}

	return nil
}

// Delete removes an entry from the filesystem.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return blob.ErrStoreClosed
	}
	if !validName(name) {
		return blob.ErrInvalidName
	}

	path := s.entryPath(name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return blob.ErrNotFound
		}
		return err
	}

	// Try to clean up empty parent directories
	s.cleanEmptyDirs(filepath.Dir(path))

	return nil
}

// cleanEmptyDirs removes empty directories up to the base path.
func (s *Store) cleanEmptyDirs(dir string) {
	for dir != s.basePath && strings.HasPrefix(dir, s.basePath) {
		err := os.Remove(dir)
		if err != nil {
			// Directory not empty or other error, stop
			break
		}
		dir = filepath.Dir(dir)
	}
}

// HealthCheck verifies the base path is accessible.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return blob.ErrStoreClosed
	}

	_, err := os.Stat(s.basePath)
	return err
}

// Close marks the store as closed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// BasePath returns the base path of the store (for testing).
func (s *Store) BasePath() string {
	return s.basePath
}

// Ensure Store implements blob.Store.
var _ blob.Store = (*Store)(nil)
