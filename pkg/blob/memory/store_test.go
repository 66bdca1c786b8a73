package memory

import (
	"testing"

	"github.com/marmos91/txfs/pkg/blob"
	"github.com/marmos91/txfs/pkg/blob/storetest"
)

func TestConformance(t *testing.T) {
	storetest.RunConformanceSuite(t, func(t *testing.T) blob.Store {
		return New()
	})
}

func TestLen(t *testing.T) {
	store := New()
	ctx := t.Context()

	if store.Len() != 0 {
		t.Errorf("Len() = %d for fresh store, want 0", store.Len())
	}

	if err := store.Write(ctx, "a.txt", []byte("a")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if err := store.Write(ctx, "b.txt", []byte("b")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}

	if err := store.Delete(ctx, "a.txt"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	if store.Len() != 1 {
		t.Errorf("Len() = %d after delete, want 1", store.Len())
	}
}

func TestDefensiveCopies(t *testing.T) {
	store := New()
	ctx := t.Context()

	content := []byte("original")
	if err := store.Write(ctx, "file.txt", content); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	// Mutating the written slice must not affect stored content.
	content[0] = 'X'

	got, err := store.TryRead(ctx, "file.txt")
	if err != nil {
		t.Fatalf("TryRead() failed: %v", err)
	}
	if string(got) != "original" {
		t.Errorf("Stored content mutated through caller slice: %q", got)
	}

	// Mutating the read slice must not affect stored content either.
	got[0] = 'Y'

	again, err := store.TryRead(ctx, "file.txt")
	if err != nil {
		t.Fatalf("TryRead() failed: %v", err)
	}
	if string(again) != "original" {
		t.Errorf("Stored content mutated through read slice: %q", again)
	}
}
