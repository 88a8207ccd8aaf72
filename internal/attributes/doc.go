// Package attributes provides expression evaluation for breadcrumb data and
// breadcrumb suppression, plus trace/span ID resolution for exported sessions.
//
// Expressions are evaluated against the dispatched event using the expr
// language. The environment exposes:
//   - label: the wrapped source label ("app", "WebContents[3]", ...)
//   - event: the event name
//   - message: "<label>.<event>"
//   - args: the dispatch arguments
//
// Invalid trace IDs are hashed with SHA-256 to produce valid IDs.
// Invalid parent IDs result in a null parent (zero span ID).
package attributes
