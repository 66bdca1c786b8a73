package txn

import "testing"

func assertOrder(t *testing.T, b *buffer, want []string) {
	t.Helper()
	got := b.names()
	if len(got) != len(want) {
		t.Fatalf("names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names() = %v, want %v", got, want)
		}
	}
}

func TestBuffer_InsertionOrder(t *testing.T) {
	b := newBuffer()
	b.put("c", []byte("3"))
	b.put("a", []byte("1"))
	b.put("b", []byte("2"))

	assertOrder(t, b, []string{"c", "a", "b"})
}

func TestBuffer_RePutKeepsPositionUpdatesContent(t *testing.T) {
	b := newBuffer()
	b.put("a", []byte("old"))
	b.put("b", []byte("2"))
	b.put("a", []byte("new"))

	assertOrder(t, b, []string{"a", "b"})

	content, ok := b.get("a")
	if !ok || string(content) != "new" {
		t.Errorf("get(a) = %q, %v; want \"new\", true", content, ok)
	}
	if b.len() != 2 {
		t.Errorf("len() = %d, want 2", b.len())
	}
}

func TestBuffer_RemovePreservesRelativeOrder(t *testing.T) {
	b := newBuffer()
	b.put("a", nil)
	b.put("b", nil)
	b.put("c", nil)

	b.remove("b")
	assertOrder(t, b, []string{"a", "c"})

	// Removing an absent name is a no-op.
	b.remove("missing")
	assertOrder(t, b, []string{"a", "c"})

	if b.has("b") {
		t.Error("has(b) = true after remove")
	}
}

func TestBuffer_NamesReturnsCopy(t *testing.T) {
	b := newBuffer()
	b.put("a", nil)
	b.put("b", nil)

	names := b.names()
	names[0] = "mutated"

	assertOrder(t, b, []string{"a", "b"})
}
