package attributes

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ResolveTraceID turns raw into a trace ID. A 32-char hex value is used as
// is; anything else non-empty is hashed with SHA-256 and a warning attribute
// is returned. Empty input yields a zero trace ID (the SDK picks one).
func ResolveTraceID(raw string) (trace.TraceID, []attribute.KeyValue) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return trace.TraceID{}, nil
	}

	if len(raw) == 32 {
		if traceID, err := trace.TraceIDFromHex(strings.ToLower(raw)); err == nil {
			return traceID, nil
		}
	}

	hash := sha256.Sum256([]byte(raw))
	var traceID trace.TraceID
	copy(traceID[:], hash[:16])

	warnings := []attribute.KeyValue{
		attribute.String("_trace_id_input", raw),
		attribute.String("_trace_id_invalid_warning",
			fmt.Sprintf("%q is not a valid 32-char hex trace ID, used SHA-256 hash %s instead", raw, hex.EncodeToString(hash[:16]))),
	}
	return traceID, warnings
}

// ResolveParentID turns raw into a parent span ID. Anything but a valid
// 16-char hex value yields a zero span ID; non-empty invalid input also
// returns a warning attribute.
func ResolveParentID(raw string) (trace.SpanID, []attribute.KeyValue) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return trace.SpanID{}, nil
	}

	if len(raw) == 16 {
		if spanID, err := trace.SpanIDFromHex(strings.ToLower(raw)); err == nil {
			return spanID, nil
		}
	}

	return trace.SpanID{}, []attribute.KeyValue{
		attribute.String("_parent_id_input", raw),
		attribute.String("_parent_id_invalid_warning",
			fmt.Sprintf("%q is not a valid 16-char hex span ID, using null parent ID instead", raw)),
	}
}
