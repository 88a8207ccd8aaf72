// Package breadcrumb defines the breadcrumb record and the recorder side of the
// telemetry client.
//
// Two narrow interfaces connect the bridge to telemetry:
//   - Provider: get the active recorder (looked up on every event)
//   - Recorder: record one breadcrumb
//
// Hub is the swappable Provider used when the active recorder can change over
// the life of the host process. Buffer is the bounded in-memory recorder that
// keeps the most recent breadcrumbs for inclusion in later error reports.
package breadcrumb
