// Package host models the event-emitting desktop host the bridge attaches to.
//
// The host is event-driven and cooperative: handlers run to completion and
// deferred work runs on later ticks of a Loop. Host objects dispatch named
// events to listeners through a replaceable entry point:
//
//	Emit ──→ entry point (EventSource) ──→ [decorators...] ──→ Emitter ──→ listeners
//
// Decorate wraps the current entry point instead of mutating the emitter, so
// a wrapper can be built and tested in isolation and the emitter's own
// listener bookkeeping is never touched.
//
// Objects:
//   - App: application lifecycle (ready, web-contents-created, ...)
//   - Screen / PowerMonitor: reachable only after App is ready
//   - WebContents: one per sub-process; its ID is populated one tick after creation
package host
