package host

import (
	"fmt"
	"sync/atomic"
)

// App event names.
const (
	EventReady              = "ready"
	EventWebContentsCreated = "web-contents-created"
	EventWindowAllClosed    = "window-all-closed"
	EventWillQuit           = "will-quit"
)

// App is the application-lifecycle object of the host.
type App struct {
	*Object
	loop     *Loop
	screen   *Object
	power    *Object
	contents *Registry

	ready  atomic.Bool
	nextID atomic.Int32
}

// NewApp creates an application object scheduled on loop.
func NewApp(loop *Loop) *App {
	return &App{
		Object:   NewObject("app"),
		loop:     loop,
		screen:   NewObject("Screen"),
		power:    NewObject("PowerMonitor"),
		contents: NewRegistry(),
	}
}

// Loop returns the scheduler the app runs on.
func (a *App) Loop() *Loop {
	return a.loop
}

// Contents returns the registry of live web contents.
func (a *App) Contents() *Registry {
	return a.contents
}

// IsReady reports whether Ready has been signalled.
func (a *App) IsReady() bool {
	return a.ready.Load()
}

// OnceReady registers fn to run when the ready event is dispatched.
func (a *App) OnceReady(fn func() error) {
	a.Once(EventReady, func(...any) error {
		return fn()
	})
}

// Ready marks the app ready and dispatches the ready event.
func (a *App) Ready() error {
	if !a.ready.CompareAndSwap(false, true) {
		return ErrAlreadyReady
	}
	if _, err := a.Emit(EventReady); err != nil {
		return fmt.Errorf("dispatch %s: %w", EventReady, err)
	}
	return nil
}

// Screen returns the display-info object. It is only reachable after ready.
func (a *App) Screen() (*Object, error) {
	if !a.IsReady() {
		return nil, fmt.Errorf("screen: %w", ErrNotReady)
	}
	return a.screen, nil
}

// PowerMonitor returns the power-state object. It is only reachable after ready.
func (a *App) PowerMonitor() (*Object, error) {
	if !a.IsReady() {
		return nil, fmt.Errorf("power monitor: %w", ErrNotReady)
	}
	return a.power, nil
}

// OnContentsCreated registers fn for every newly created web contents.
func (a *App) OnContentsCreated(fn func(*WebContents) error) {
	a.On(EventWebContentsCreated, func(args ...any) error {
		for _, arg := range args {
			if contents, ok := arg.(*WebContents); ok {
				return fn(contents)
			}
		}
		return nil
	})
}

// CreateWebContents creates the content object of a new sub-process and
// dispatches web-contents-created. The returned contents get their ID on
// the next loop tick.
func (a *App) CreateWebContents() (*WebContents, error) {
	contents := newWebContents(a.loop, a.contents)
	id := int(a.nextID.Add(1))
	a.loop.Defer(func() {
		contents.assign(id)
	})

	if _, err := a.Emit(EventWebContentsCreated, contents); err != nil {
		return contents, fmt.Errorf("dispatch %s: %w", EventWebContentsCreated, err)
	}
	return contents, nil
}
