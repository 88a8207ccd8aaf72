package timesync

import (
	"math"
	"sync"
	"time"
)

// Clock returns the current wall-clock time.
type Clock func() time.Time

// System is the process wall clock.
var System Clock = time.Now

// Seconds returns the clock's current time as epoch seconds.
func (c Clock) Seconds() float64 {
	return EpochSeconds(c())
}

// EpochSeconds converts t to seconds since the Unix epoch, truncated to
// millisecond precision.
func EpochSeconds(t time.Time) float64 {
	return float64(t.UnixMilli()) / 1000
}

// FromEpochSeconds converts epoch seconds back to a UTC time.
func FromEpochSeconds(seconds float64) time.Time {
	return time.UnixMilli(int64(math.Round(seconds * 1000))).UTC()
}

// Fixed returns a clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// Stepping returns a clock that starts at start and advances by step on
// every reading. It is safe for concurrent use.
func Stepping(start time.Time, step time.Duration) Clock {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(step)
		return now
	}
}
