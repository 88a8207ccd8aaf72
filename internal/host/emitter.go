package host

import "sync"

// EventSource dispatches named events to zero or more listeners.
// The bool result reports whether at least one listener ran.
type EventSource interface {
	Dispatch(event string, args ...any) (bool, error)
}

// EventSourceFunc adapts a function literal to the EventSource interface.
type EventSourceFunc func(event string, args ...any) (bool, error)

// Dispatch calls the underlying function.
func (f EventSourceFunc) Dispatch(event string, args ...any) (bool, error) {
	return f(event, args...)
}

// Listener handles one dispatched event.
type Listener func(args ...any) error

type registration struct {
	fn   Listener
	once bool
}

// Emitter keeps listeners per event name and calls them in registration order.
type Emitter struct {
	mu        sync.Mutex
	listeners map[string][]*registration
}

// NewEmitter creates an emitter with no listeners.
func NewEmitter() *Emitter {
	return &Emitter{listeners: make(map[string][]*registration)}
}

// On registers fn for every dispatch of event.
func (e *Emitter) On(event string, fn Listener) {
	e.add(event, &registration{fn: fn})
}

// Once registers fn for the next dispatch of event only.
func (e *Emitter) Once(event string, fn Listener) {
	e.add(event, &registration{fn: fn, once: true})
}

func (e *Emitter) add(event string, reg *registration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.listeners == nil {
		e.listeners = make(map[string][]*registration)
	}
	e.listeners[event] = append(e.listeners[event], reg)
}

// ListenerCount returns the number of listeners registered for event.
func (e *Emitter) ListenerCount(event string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[event])
}

// Dispatch calls the listeners registered for event with args.
// A once-listener is removed right before it runs, so a listener that is
// never reached stays registered. The first listener error stops the
// dispatch and is returned.
func (e *Emitter) Dispatch(event string, args ...any) (bool, error) {
	e.mu.Lock()
	regs := e.listeners[event]
	if len(regs) == 0 {
		e.mu.Unlock()
		return false, nil
	}
	snapshot := make([]*registration, len(regs))
	copy(snapshot, regs)
	e.mu.Unlock()

	for _, reg := range snapshot {
		// Already consumed by a nested dispatch
		if reg.once && !e.remove(event, reg) {
			continue
		}
		if err := reg.fn(args...); err != nil {
			return true, err
		}
	}
	return true, nil
}

// remove unregisters reg and reports whether it was still registered.
func (e *Emitter) remove(event string, target *registration) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	regs := e.listeners[event]
	for i, reg := range regs {
		if reg != target {
			continue
		}
		kept := make([]*registration, 0, len(regs)-1)
		kept = append(kept, regs[:i]...)
		kept = append(kept, regs[i+1:]...)
		if len(kept) == 0 {
			delete(e.listeners, event)
		} else {
			e.listeners[event] = kept
		}
		return true
	}
	return false
}
