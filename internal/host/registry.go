package host

import (
	"sort"
	"sync"
)

// Registry tracks live web contents by ID.
// It provides command-query separation for contents access.
type Registry struct {
	mu       sync.RWMutex
	contents map[int]*WebContents // ID -> contents
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{contents: make(map[int]*WebContents)}
}

// Len returns the number of live contents (query).
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.contents)
}

// IDs returns the live IDs in ascending order (query).
func (r *Registry) IDs() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int, 0, len(r.contents))
	for id := range r.contents {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Set stores contents under id, replacing any previous entry (command).
func (r *Registry) Set(id int, contents *WebContents) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contents[id] = contents
}

// Delete removes id (command).
// This should be called when the contents are destroyed.
func (r *Registry) Delete(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.contents, id)
}
