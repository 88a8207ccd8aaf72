// Package output provides breadcrumb recorders backed by real sinks.
//
// OTELRecorder is a pure formatting layer that:
//   - Receives finished breadcrumbs
//   - Creates one zero-length OpenTelemetry span per breadcrumb
//   - Parents every span under a single session span
//
// JSONRecorder writes newline-delimited JSON, one breadcrumb per line.
//
// Neither recorder retries or buffers: a sink failure is returned to the
// caller as is.
package output
