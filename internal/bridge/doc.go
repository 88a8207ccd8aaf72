// Package bridge mirrors host events into breadcrumbs.
//
// Wrap decorates one event source: every dispatched event that passes the
// filter is recorded as a breadcrumb, then forwarded unchanged to the
// original source.
//
//	host ──→ Source.Dispatch ──→ filter? ──→ Provider.Recorder().Record(crumb)
//	                                 │
//	                                 └──────→ original.Dispatch(event, args...)
//
// Recording happens strictly before forwarding, so breadcrumbs appear in
// dispatch order. A recorder lookup or record failure is returned to the
// dispatcher and the original source is not reached, unless a record error
// handler was configured with WithRecordErrorHandler.
//
// Install attaches the bridge to a Host: the app immediately, Screen and
// PowerMonitor once the app is ready, and every new WebContents once its ID
// has been populated.
package bridge
