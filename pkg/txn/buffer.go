package txn

// buffer is an insertion-ordered name → content map. Staging order is
// caller-visible through backend side effects at commit time, so the buffer
// preserves the order of first insertion; re-staging a name keeps its
// original position (last-write-wins on content only).
//
// Buffers are replaced wholesale rather than cleared in place, so a
// reference captured during commit stays stable while the owning unit of
// work moves on to a fresh pair.
type buffer struct {
	order   []string
	entries map[string][]byte
}

func newBuffer() *buffer {
	return &buffer{
		entries: make(map[string][]byte),
	}
}

// put inserts or overwrites an entry.
func (b *buffer) put(name string, content []byte) {
	if _, ok := b.entries[name]; !ok {
		b.order = append(b.order, name)
	}
	b.entries[name] = content
}

// get returns the content for name and whether it is buffered.
func (b *buffer) get(name string) ([]byte, bool) {
	content, ok := b.entries[name]
	return content, ok
}

// has reports whether name is buffered.
func (b *buffer) has(name string) bool {
	_, ok := b.entries[name]
	return ok
}

// remove deletes an entry, preserving the relative order of the rest.
func (b *buffer) remove(name string) {
	if _, ok := b.entries[name]; !ok {
		return
	}
	delete(b.entries, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// names returns the buffered names in insertion order.
func (b *buffer) names() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// len returns the number of buffered entries.
func (b *buffer) len() int {
	return len(b.entries)
}
