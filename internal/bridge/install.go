package bridge

import (
	"fmt"

	"github.com/mrzor/crumbtrail/internal/host"
)

// ContentsEvents are the only web contents events recorded: ready for
// display, navigation start and destruction.
var ContentsEvents = []string{
	host.EventDOMReady,
	host.EventDidStartNavigation,
	host.EventDestroyed,
}

// Decorator is an object whose dispatch entry point can be wrapped.
type Decorator interface {
	Decorate(wrap func(host.EventSource) host.EventSource)
}

// Host is the environment Install attaches to. *host.App implements it.
type Host interface {
	Decorator
	OnceReady(fn func() error)
	Screen() (*host.Object, error)
	PowerMonitor() (*host.Object, error)
	OnContentsCreated(fn func(*host.WebContents) error)
}

// Attach wraps target's entry point with a recording Source.
func (b *Bridge) Attach(label string, target Decorator, events ...string) {
	target.Decorate(func(next host.EventSource) host.EventSource {
		return b.Wrap(label, next, events...)
	})
}

// Install attaches the bridge to h. It must run once per host: installing
// twice records every breadcrumb twice.
func (b *Bridge) Install(h Host) {
	b.Attach("app", h)

	// Screen and PowerMonitor are not reachable until ready
	h.OnceReady(func() error {
		screen, err := h.Screen()
		if err != nil {
			return fmt.Errorf("instrument screen: %w", err)
		}
		b.Attach("Screen", screen)

		power, err := h.PowerMonitor()
		if err != nil {
			return fmt.Errorf("instrument power monitor: %w", err)
		}
		b.Attach("PowerMonitor", power)
		return nil
	})

	// The contents ID is populated after creation; the label needs it
	h.OnContentsCreated(func(contents *host.WebContents) error {
		contents.Initialized(func() {
			b.Attach(contents.Label(), contents, ContentsEvents...)
		})
		return nil
	})
}
