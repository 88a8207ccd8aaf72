package host

import "sync"

// Object is a named host object with a replaceable dispatch entry point.
type Object struct {
	name    string
	emitter *Emitter

	mu    sync.RWMutex
	entry EventSource
}

// NewObject creates an object whose entry point is its own emitter.
func NewObject(name string) *Object {
	emitter := NewEmitter()
	return &Object{
		name:    name,
		emitter: emitter,
		entry:   emitter,
	}
}

// Name returns the object's name.
func (o *Object) Name() string {
	return o.name
}

// On registers a listener on the underlying emitter.
func (o *Object) On(event string, fn Listener) {
	o.emitter.On(event, fn)
}

// Once registers a one-shot listener on the underlying emitter.
func (o *Object) Once(event string, fn Listener) {
	o.emitter.Once(event, fn)
}

// ListenerCount returns the number of listeners registered for event.
func (o *Object) ListenerCount(event string) int {
	return o.emitter.ListenerCount(event)
}

// Decorate replaces the entry point with wrap(current entry point).
// Decorations stack: the last one applied runs first.
func (o *Object) Decorate(wrap func(EventSource) EventSource) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.entry = wrap(o.entry)
}

// EntryPoint returns the current dispatch entry point.
func (o *Object) EntryPoint() EventSource {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.entry
}

// Emit dispatches event through the current entry point.
func (o *Object) Emit(event string, args ...any) (bool, error) {
	return o.EntryPoint().Dispatch(event, args...)
}
