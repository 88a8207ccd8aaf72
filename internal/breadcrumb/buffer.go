package breadcrumb

import "sync"

// DefaultCapacity is the number of breadcrumbs a Buffer keeps when no
// capacity is given.
const DefaultCapacity = 100

// Buffer is a bounded in-memory Recorder. When full, the oldest breadcrumb
// is dropped to make room.
type Buffer struct {
	mu       sync.Mutex
	crumbs   []Breadcrumb
	start    int
	size     int
	recorded uint64
}

// NewBuffer creates a buffer holding at most capacity breadcrumbs.
// A non-positive capacity selects DefaultCapacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{crumbs: make([]Breadcrumb, capacity)}
}

// Record appends crumb, evicting the oldest entry when the buffer is full.
func (b *Buffer) Record(crumb Breadcrumb) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	capacity := len(b.crumbs)
	if b.size < capacity {
		b.crumbs[(b.start+b.size)%capacity] = crumb
		b.size++
	} else {
		b.crumbs[b.start] = crumb
		b.start = (b.start + 1) % capacity
	}
	b.recorded++
	return nil
}

// Snapshot returns the retained breadcrumbs, oldest first.
func (b *Buffer) Snapshot() []Breadcrumb {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Breadcrumb, b.size)
	for i := 0; i < b.size; i++ {
		out[i] = b.crumbs[(b.start+i)%len(b.crumbs)]
	}
	return out
}

// Len returns the number of retained breadcrumbs.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// Recorded returns how many breadcrumbs were ever recorded, evicted ones included.
func (b *Buffer) Recorded() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.recorded
}

// Clear drops every retained breadcrumb.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.crumbs {
		b.crumbs[i] = Breadcrumb{}
	}
	b.start = 0
	b.size = 0
}
