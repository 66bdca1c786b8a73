// Package storetest provides a conformance test suite for blob.Store
// implementations. Every backend runs the same suite so contract drift
// between backends is caught immediately.
package storetest

import (
	"bytes"
	"errors"
	"testing"

	"github.com/marmos91/txfs/pkg/blob"
)

// StoreFactory creates a fresh Store instance for each test.
// The factory receives *testing.T so it can use t.TempDir() for stores
// that need filesystem paths and t.Cleanup() for teardown.
type StoreFactory func(t *testing.T) blob.Store

// RunConformanceSuite runs the full conformance test suite against the
// provided store factory. Each test gets a fresh store instance to ensure
// isolation.
func RunConformanceSuite(t *testing.T, factory StoreFactory) {
	t.Helper()

	t.Run("Exists", func(t *testing.T) {
		runExistsTests(t, factory)
	})

	t.Run("ReadWrite", func(t *testing.T) {
		runReadWriteTests(t, factory)
	})

	t.Run("Delete", func(t *testing.T) {
		runDeleteTests(t, factory)
	})

	t.Run("Lifecycle", func(t *testing.T) {
		runLifecycleTests(t, factory)
	})
}

func runExistsTests(t *testing.T, factory StoreFactory) {
	t.Run("AbsentEntry", func(t *testing.T) {
		store := factory(t)
		ctx := t.Context()

		exists, err := store.Exists(ctx, "missing.txt")
		if err != nil {
			t.Fatalf("Exists() failed: %v", err)
		}
		if exists {
			t.Error("Exists() = true for absent entry")
		}
	})

	t.Run("PresentEntry", func(t *testing.T) {
		store := factory(t)
		ctx := t.Context()

		if err := store.Write(ctx, "present.txt", []byte("data")); err != nil {
			t.Fatalf("Write() failed: %v", err)
		}

		exists, err := store.Exists(ctx, "present.txt")
		if err != nil {
			t.Fatalf("Exists() failed: %v", err)
		}
		if !exists {
			t.Error("Exists() = false for present entry")
		}
	})
}

func runReadWriteTests(t *testing.T, factory StoreFactory) {
	t.Run("RoundTrip", func(t *testing.T) {
		store := factory(t)
		ctx := t.Context()

		content := []byte("hello world")
		if err := store.Write(ctx, "file.txt", content); err != nil {
			t.Fatalf("Write() failed: %v", err)
		}

		got, err := store.TryRead(ctx, "file.txt")
		if err != nil {
			t.Fatalf("TryRead() failed: %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Errorf("TryRead() = %q, want %q", got, content)
		}
	})

	t.Run("AbsentReturnsNotFound", func(t *testing.T) {
		store := factory(t)
		ctx := t.Context()

		_, err := store.TryRead(ctx, "missing.txt")
		if !errors.Is(err, blob.ErrNotFound) {
			t.Errorf("TryRead() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("OverwriteReplacesContent", func(t *testing.T) {
		store := factory(t)
		ctx := t.Context()

		if err := store.Write(ctx, "file.txt", []byte("first")); err != nil {
			t.Fatalf("Write() failed: %v", err)
		}
		if err := store.Write(ctx, "file.txt", []byte("second")); err != nil {
			t.Fatalf("Overwrite failed: %v", err)
		}

		got, err := store.TryRead(ctx, "file.txt")
		if err != nil {
			t.Fatalf("TryRead() failed: %v", err)
		}
		if string(got) != "second" {
			t.Errorf("TryRead() = %q, want %q", got, "second")
		}
	})

	t.Run("EmptyContent", func(t *testing.T) {
		store := factory(t)
		ctx := t.Context()

		if err := store.Write(ctx, "empty.txt", []byte{}); err != nil {
			t.Fatalf("Write() of empty content failed: %v", err)
		}

		exists, err := store.Exists(ctx, "empty.txt")
		if err != nil {
			t.Fatalf("Exists() failed: %v", err)
		}
		if !exists {
			t.Error("Exists() = false after writing empty content")
		}

		got, err := store.TryRead(ctx, "empty.txt")
		if err != nil {
			t.Fatalf("TryRead() failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("TryRead() = %q, want empty", got)
		}
	})

	t.Run("BinaryContent", func(t *testing.T) {
		store := factory(t)
		ctx := t.Context()

		content := []byte{0x00, 0xff, 0x42, 0x00, 0x7f}
		if err := store.Write(ctx, "binary.dat", content); err != nil {
			t.Fatalf("Write() failed: %v", err)
		}

		got, err := store.TryRead(ctx, "binary.dat")
		if err != nil {
			t.Fatalf("TryRead() failed: %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Errorf("TryRead() = %v, want %v", got, content)
		}
	})

	t.Run("IndependentEntries", func(t *testing.T) {
		store := factory(t)
		ctx := t.Context()

		if err := store.Write(ctx, "a.txt", []byte("aaa")); err != nil {
			t.Fatalf("Write(a) failed: %v", err)
		}
		if err := store.Write(ctx, "b.txt", []byte("bbb")); err != nil {
			t.Fatalf("Write(b) failed: %v", err)
		}

		gotA, err := store.TryRead(ctx, "a.txt")
		if err != nil {
			t.Fatalf("TryRead(a) failed: %v", err)
		}
		gotB, err := store.TryRead(ctx, "b.txt")
		if err != nil {
			t.Fatalf("TryRead(b) failed: %v", err)
		}
		if string(gotA) != "aaa" || string(gotB) != "bbb" {
			t.Errorf("Entries interfered: a=%q b=%q", gotA, gotB)
		}
	})
}

func runDeleteTests(t *testing.T, factory StoreFactory) {
	t.Run("RemovesEntry", func(t *testing.T) {
		store := factory(t)
		ctx := t.Context()

		if err := store.Write(ctx, "file.txt", []byte("data")); err != nil {
			t.Fatalf("Write() failed: %v", err)
		}
		if err := store.Delete(ctx, "file.txt"); err != nil {
			t.Fatalf("Delete() failed: %v", err)
		}

		exists, err := store.Exists(ctx, "file.txt")
		if err != nil {
			t.Fatalf("Exists() failed: %v", err)
		}
		if exists {
			t.Error("Exists() = true after Delete()")
		}
	})

	t.Run("AbsentReturnsNotFound", func(t *testing.T) {
		store := factory(t)
		ctx := t.Context()

		err := store.Delete(ctx, "missing.txt")
		if !errors.Is(err, blob.ErrNotFound) {
			t.Errorf("Delete() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("RewriteAfterDelete", func(t *testing.T) {
		store := factory(t)
		ctx := t.Context()

		if err := store.Write(ctx, "file.txt", []byte("first")); err != nil {
			t.Fatalf("Write() failed: %v", err)
		}
		if err := store.Delete(ctx, "file.txt"); err != nil {
			t.Fatalf("Delete() failed: %v", err)
		}
		if err := store.Write(ctx, "file.txt", []byte("second")); err != nil {
			t.Fatalf("Rewrite failed: %v", err)
		}

		got, err := store.TryRead(ctx, "file.txt")
		if err != nil {
			t.Fatalf("TryRead() failed: %v", err)
		}
		if string(got) != "second" {
			t.Errorf("TryRead() = %q, want %q", got, "second")
		}
	})
}

func runLifecycleTests(t *testing.T, factory StoreFactory) {
	t.Run("HealthCheck", func(t *testing.T) {
		store := factory(t)

		if err := store.HealthCheck(t.Context()); err != nil {
			t.Errorf("HealthCheck() failed: %v", err)
		}
	})

	t.Run("OperationsAfterClose", func(t *testing.T) {
		store := factory(t)
		ctx := t.Context()

		if err := store.Close(); err != nil {
			t.Fatalf("Close() failed: %v", err)
		}

		if _, err := store.Exists(ctx, "file.txt"); !errors.Is(err, blob.ErrStoreClosed) {
			t.Errorf("Exists() after Close: error = %v, want ErrStoreClosed", err)
		}
		if _, err := store.TryRead(ctx, "file.txt"); !errors.Is(err, blob.ErrStoreClosed) {
			t.Errorf("TryRead() after Close: error = %v, want ErrStoreClosed", err)
		}
		if err := store.Write(ctx, "file.txt", []byte("x")); !errors.Is(err, blob.ErrStoreClosed) {
			t.Errorf("Write() after Close: error = %v, want ErrStoreClosed", err)
		}
		if err := store.Delete(ctx, "file.txt"); !errors.Is(err, blob.ErrStoreClosed) {
			t.Errorf("Delete() after Close: error = %v, want ErrStoreClosed", err)
		}
	})

	t.Run("DoubleCloseIsSafe", func(t *testing.T) {
		store := factory(t)

		if err := store.Close(); err != nil {
			t.Fatalf("First Close() failed: %v", err)
		}
		if err := store.Close(); err != nil {
			t.Errorf("Second Close() failed: %v", err)
		}
	})
}
