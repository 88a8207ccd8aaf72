package output

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mrzor/crumbtrail/internal/breadcrumb"
	"github.com/mrzor/crumbtrail/internal/timesync"
)

// ErrClosed is returned when recording to a closed recorder.
var ErrClosed = errors.New("recorder closed")

// SessionOptions describe the session span breadcrumb spans hang under.
type SessionOptions struct {
	// Name of the session span
	Name string
	// TraceID and ParentID attach the session to an existing trace when both are valid
	TraceID  trace.TraceID
	ParentID trace.SpanID
	// Attributes are set on the session span
	Attributes []attribute.KeyValue
	// Start defaults to the current time
	Start time.Time
}

// OTELRecorder records breadcrumbs as OpenTelemetry spans.
type OTELRecorder struct {
	tracer trace.Tracer

	mu      sync.Mutex
	ctx     context.Context // carries the session span
	session trace.Span
	count   int
	closed  bool
}

// NewOTELRecorder starts the session span and returns a recorder for it.
func NewOTELRecorder(tracer trace.Tracer, opts SessionOptions) *OTELRecorder {
	name := opts.Name
	if name == "" {
		name = "breadcrumbs.session"
	}
	start := opts.Start
	if start.IsZero() {
		start = time.Now()
	}

	ctx := context.Background()
	if opts.TraceID.IsValid() && opts.ParentID.IsValid() {
		parent := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    opts.TraceID,
			SpanID:     opts.ParentID,
			TraceFlags: trace.FlagsSampled,
			Remote:     true,
		})
		ctx = trace.ContextWithRemoteSpanContext(ctx, parent)
	}

	ctx, session := tracer.Start(ctx, name,
		trace.WithTimestamp(start),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(opts.Attributes...),
	)

	return &OTELRecorder{
		tracer:  tracer,
		ctx:     ctx,
		session: session,
	}
}

// SessionContext returns the session span context.
func (r *OTELRecorder) SessionContext() trace.SpanContext {
	return r.session.SpanContext()
}

// Record emits crumb as a zero-length span at its timestamp.
func (r *OTELRecorder) Record(crumb breadcrumb.Breadcrumb) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}

	at := timesync.FromEpochSeconds(crumb.Timestamp)
	_, span := r.tracer.Start(r.ctx, crumb.Message,
		trace.WithTimestamp(at),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(breadcrumbAttributes(crumb)...),
	)
	span.End(trace.WithTimestamp(at))
	r.count++
	return nil
}

// Close ends the session span. Later Record calls fail with ErrClosed.
func (r *OTELRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	r.session.SetAttributes(attribute.Int("breadcrumb.count", r.count))
	r.session.End()
	return nil
}

// breadcrumbAttributes converts crumb into span attributes.
func breadcrumbAttributes(crumb breadcrumb.Breadcrumb) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("breadcrumb.category", crumb.Category),
		attribute.String("breadcrumb.type", crumb.Type),
		attribute.String("breadcrumb.message", crumb.Message),
		attribute.Float64("breadcrumb.timestamp", crumb.Timestamp),
	}

	keys := make([]string, 0, len(crumb.Data))
	for k := range crumb.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, dataAttribute("breadcrumb.data."+k, crumb.Data[k]))
	}
	return attrs
}

func dataAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}
