package badger

import (
	"testing"

	"github.com/marmos91/txfs/pkg/blob"
	"github.com/marmos91/txfs/pkg/blob/storetest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(Config{InMemory: true})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestConformance(t *testing.T) {
	storetest.RunConformanceSuite(t, func(t *testing.T) blob.Store {
		return newTestStore(t)
	})
}

func TestPersistence(t *testing.T) {
	dir := t.TempDir()
	ctx := t.Context()

	store, err := New(Config{Path: dir})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if err := store.Write(ctx, "file.txt", []byte("survives restart")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	reopened, err := New(Config{Path: dir})
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.TryRead(ctx, "file.txt")
	if err != nil {
		t.Fatalf("TryRead() after reopen failed: %v", err)
	}
	if string(got) != "survives restart" {
		t.Errorf("TryRead() = %q, want %q", got, "survives restart")
	}
}

func TestNew_RequiresPathOrInMemory(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("Expected error for empty config")
	}
}
