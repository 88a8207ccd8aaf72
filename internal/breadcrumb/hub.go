package breadcrumb

import "sync/atomic"

// Hub holds the active recorder behind an explicit, swappable indirection.
// The zero value has no recorder bound.
type Hub struct {
	current atomic.Pointer[binding]
}

type binding struct {
	recorder Recorder
}

// NewHub creates a hub with r bound. r may be nil.
func NewHub(r Recorder) *Hub {
	h := &Hub{}
	h.Bind(r)
	return h
}

// Bind makes r the active recorder and returns the previously active one.
// Binding nil leaves the hub without a recorder.
func (h *Hub) Bind(r Recorder) Recorder {
	var next *binding
	if r != nil {
		next = &binding{recorder: r}
	}
	prev := h.current.Swap(next)
	if prev == nil {
		return nil
	}
	return prev.recorder
}

// Recorder returns the active recorder or ErrNoRecorder.
func (h *Hub) Recorder() (Recorder, error) {
	b := h.current.Load()
	if b == nil {
		return nil, ErrNoRecorder
	}
	return b.recorder, nil
}
