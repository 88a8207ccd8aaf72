package bridge

import (
	"log/slog"

	"github.com/mrzor/crumbtrail/internal/host"
)

// Source is an event source decorated with breadcrumb recording.
// It implements host.EventSource and forwards every dispatch to the source
// it wraps with the same arguments and result.
type Source struct {
	bridge *Bridge
	label  string
	inner  host.EventSource
	filter map[string]struct{}
}

// Wrap decorates source so that dispatches of the listed events are recorded
// under label. With no events, every dispatch is recorded.
func (b *Bridge) Wrap(label string, source host.EventSource, events ...string) *Source {
	var filter map[string]struct{}
	if len(events) > 0 {
		filter = make(map[string]struct{}, len(events))
		for _, event := range events {
			filter[event] = struct{}{}
		}
	}
	return &Source{
		bridge: b,
		label:  label,
		inner:  source,
		filter: filter,
	}
}

// Label returns the label breadcrumbs are recorded under.
func (s *Source) Label() string {
	return s.label
}

// Unwrap returns the decorated source.
func (s *Source) Unwrap() host.EventSource {
	return s.inner
}

// Records reports whether a dispatch of event produces a breadcrumb.
func (s *Source) Records(event string) bool {
	if len(s.filter) == 0 {
		return true
	}
	_, ok := s.filter[event]
	return ok
}

// Dispatch records a breadcrumb when event passes the filter, then forwards
// to the wrapped source and returns its result unchanged.
func (s *Source) Dispatch(event string, args ...any) (bool, error) {
	if s.Records(event) {
		if err := s.bridge.record(s.label, event, args); err != nil {
			if s.bridge.onRecordFail == nil {
				return false, err
			}
			s.bridge.logger.Warn("breadcrumb not recorded",
				slog.String("message", s.label+"."+event),
				slog.String("error", err.Error()))
			s.bridge.onRecordFail(err)
		}
	}
	return s.inner.Dispatch(event, args...)
}
