package host

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Web contents event names.
const (
	EventDOMReady           = "dom-ready"
	EventDidStartNavigation = "did-start-navigation"
	EventLoadURL            = "load-url"
	EventDestroyed          = "destroyed"
)

// WebContents is the content object of one sub-process.
// Its ID is zero until the host populates it on the tick after creation.
type WebContents struct {
	*Object
	loop     *Loop
	registry *Registry

	id        atomic.Int32
	destroyed atomic.Bool

	mu          sync.Mutex
	initialized bool
	waiters     []func()
}

func newWebContents(loop *Loop, registry *Registry) *WebContents {
	return &WebContents{
		Object:   NewObject("WebContents"),
		loop:     loop,
		registry: registry,
	}
}

// ID returns the numeric identifier, or 0 before it is populated.
func (c *WebContents) ID() int {
	return int(c.id.Load())
}

// Label returns "WebContents[<id>]" for the current ID.
func (c *WebContents) Label() string {
	return fmt.Sprintf("WebContents[%d]", c.ID())
}

// Initialized runs fn once the ID has been populated. fn never runs inside
// this call: when the contents are already initialized it is deferred to
// the next tick.
func (c *WebContents) Initialized(fn func()) {
	c.mu.Lock()
	if !c.initialized {
		c.waiters = append(c.waiters, fn)
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.loop.Defer(func() {
		if !c.IsDestroyed() {
			fn()
		}
	})
}

// assign populates the ID and releases everything waiting on Initialized.
// Contents destroyed before their ID arrives never enter the registry and
// their waiters are dropped.
func (c *WebContents) assign(id int) {
	c.id.Store(int32(id)) //nolint:gosec // IDs are small sequential counters

	c.mu.Lock()
	c.initialized = true
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()

	if c.IsDestroyed() {
		return
	}
	c.registry.Set(id, c)

	for _, fn := range waiters {
		fn()
	}
}

// IsDestroyed reports whether Destroy has been called.
func (c *WebContents) IsDestroyed() bool {
	return c.destroyed.Load()
}

// Destroy dispatches the destroyed event and removes the contents from the registry.
func (c *WebContents) Destroy() error {
	if !c.destroyed.CompareAndSwap(false, true) {
		return ErrDestroyed
	}
	_, err := c.Emit(EventDestroyed)
	c.registry.Delete(c.ID())
	return err
}
