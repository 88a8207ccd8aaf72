package bridge

import (
	"log/slog"

	"github.com/mrzor/crumbtrail/internal/attributes"
	"github.com/mrzor/crumbtrail/internal/breadcrumb"
	"github.com/mrzor/crumbtrail/internal/timesync"
)

// Breadcrumb category and type shared by every breadcrumb this bridge records.
const (
	Category = "electron"
	TypeUI   = "ui"
)

// Bridge records breadcrumbs for the event sources it wraps.
type Bridge struct {
	provider     breadcrumb.Provider
	clock        timesync.Clock
	logger       *slog.Logger
	enricher     *attributes.Evaluator
	onRecordFail func(error)
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithClock sets the clock used for breadcrumb timestamps.
func WithClock(clock timesync.Clock) Option {
	return func(b *Bridge) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithEnricher attaches data expressions and a drop rule to every breadcrumb.
func WithEnricher(e *attributes.Evaluator) Option {
	return func(b *Bridge) {
		b.enricher = e
	}
}

// WithRecordErrorHandler hands recording failures to fn and forwards the
// event anyway. Without it, failures are returned from Dispatch and the
// original source is not reached.
func WithRecordErrorHandler(fn func(error)) Option {
	return func(b *Bridge) {
		b.onRecordFail = fn
	}
}

// New creates a bridge that looks up its recorder through provider on every event.
func New(provider breadcrumb.Provider, opts ...Option) *Bridge {
	b := &Bridge{
		provider: provider,
		clock:    timesync.System,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// record builds and records the breadcrumb for one dispatch.
func (b *Bridge) record(label, event string, args []any) error {
	message := label + "." + event

	var data map[string]any
	if !b.enricher.Empty() {
		ev := attributes.Event{Label: label, Name: event, Message: message, Args: args}
		if b.enricher.ShouldDrop(ev) {
			b.logger.Debug("breadcrumb dropped", slog.String("message", message))
			return nil
		}
		data = b.enricher.Evaluate(ev)
	}

	crumb := breadcrumb.Breadcrumb{
		Category:  Category,
		Message:   message,
		Timestamp: b.clock.Seconds(),
		Type:      TypeUI,
		Data:      data,
	}

	recorder, err := b.provider.Recorder()
	if err != nil {
		return err
	}
	if err := recorder.Record(crumb); err != nil {
		return err
	}

	b.logger.Debug("breadcrumb recorded", slog.String("message", message))
	return nil
}
