package blob

import (
	"context"
	"time"
)

// StoreMetrics records backend operation outcomes. A nil StoreMetrics
// disables recording with zero overhead.
type StoreMetrics interface {
	// ObserveOperation records a backend call with its duration and outcome
	// (nil err on success). Operation names: "exists", "read", "write",
	// "delete", "health".
	ObserveOperation(operation string, duration time.Duration, err error)

	// RecordBytes records payload bytes moved by "read" and "write"
	// operations.
	RecordBytes(operation string, bytes int64)
}

// NewInstrumented wraps a Store so every backend call is reported to m.
// A nil m returns the store unchanged.
func NewInstrumented(store Store, m StoreMetrics) Store {
	if m == nil {
		return store
	}
	return &instrumentedStore{store: store, metrics: m}
}

type instrumentedStore struct {
	store   Store
	metrics StoreMetrics
}

func (s *instrumentedStore) Exists(ctx context.Context, name string) (bool, error) {
	start := time.Now()
	exists, err := s.store.Exists(ctx, name)
	s.metrics.ObserveOperation("exists", time.Since(start), err)
	return exists, err
}

func (s *instrumentedStore) TryRead(ctx context.Context, name string) ([]byte, error) {
	start := time.Now()
	content, err := s.store.TryRead(ctx, name)
	s.metrics.ObserveOperation("read", time.Since(start), err)
	if err == nil {
		s.metrics.RecordBytes("read", int64(len(content)))
	}
	return content, err
}

func (s *instrumentedStore) Write(ctx context.Context, name string, content []byte) error {
	start := time.Now()
	err := s.store.Write(ctx, name, content)
	s.metrics.ObserveOperation("write", time.Since(start), err)
	if err == nil {
		s.metrics.RecordBytes("write", int64(len(content)))
	}
	return err
}

func (s *instrumentedStore) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := s.store.Delete(ctx, name)
	s.metrics.ObserveOperation("delete", time.Since(start), err)
	return err
}

func (s *instrumentedStore) HealthCheck(ctx context.Context) error {
	start := time.Now()
	err := s.store.HealthCheck(ctx)
	s.metrics.ObserveOperation("health", time.Since(start), err)
	return err
}

func (s *instrumentedStore) Close() error {
	return s.store.Close()
}

var _ Store = (*instrumentedStore)(nil)
