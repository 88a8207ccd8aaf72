// Package timesync provides the clocks used to timestamp breadcrumbs.
//
// Breadcrumb timestamps are seconds since the Unix epoch as a float, with
// millisecond precision. Clocks are plain functions so tests and replays can
// substitute deterministic time sources.
package timesync
