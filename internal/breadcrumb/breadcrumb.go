package breadcrumb

import (
	"errors"
	"fmt"
)

// ErrNoRecorder is returned by a Provider that has no active recorder.
var ErrNoRecorder = errors.New("no active breadcrumb recorder")

// Breadcrumb is a small structured record of a notable occurrence.
// Values are never modified after they are handed to a Recorder.
type Breadcrumb struct {
	Category  string         `json:"category"`
	Message   string         `json:"message"`
	Timestamp float64        `json:"timestamp"` // seconds since the Unix epoch
	Type      string         `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
}

// String returns a compact human-readable form.
func (b Breadcrumb) String() string {
	return fmt.Sprintf("[%s/%s] %s @%.3f", b.Category, b.Type, b.Message, b.Timestamp)
}

// Recorder stores or queues breadcrumbs.
type Recorder interface {
	Record(crumb Breadcrumb) error
}

// RecorderFunc adapts a function literal to the Recorder interface.
type RecorderFunc func(crumb Breadcrumb) error

// Record calls the underlying function.
func (f RecorderFunc) Record(crumb Breadcrumb) error {
	return f(crumb)
}

// Discard is a Recorder that drops every breadcrumb.
var Discard Recorder = RecorderFunc(func(Breadcrumb) error { return nil })

// Provider returns the recorder that is active right now.
type Provider interface {
	Recorder() (Recorder, error)
}

// ProviderFunc adapts a function literal to the Provider interface.
type ProviderFunc func() (Recorder, error)

// Recorder calls the underlying function.
func (f ProviderFunc) Recorder() (Recorder, error) {
	return f()
}

// Static returns a Provider that always yields r.
func Static(r Recorder) Provider {
	return ProviderFunc(func() (Recorder, error) {
		if r == nil {
			return nil, ErrNoRecorder
		}
		return r, nil
	})
}

// Multi returns a Recorder that records to every member in order.
// All members are attempted; their errors are joined.
func Multi(recorders ...Recorder) Recorder {
	members := make([]Recorder, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			members = append(members, r)
		}
	}
	return RecorderFunc(func(crumb Breadcrumb) error {
		var errs []error
		for _, r := range members {
			if err := r.Record(crumb); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
