package host

import "errors"

var (
	// ErrNotReady is returned when accessing objects that only exist after ready.
	ErrNotReady = errors.New("host is not ready")
	// ErrAlreadyReady is returned when ready is signalled twice.
	ErrAlreadyReady = errors.New("host is already ready")
	// ErrDestroyed is returned when destroying contents twice.
	ErrDestroyed = errors.New("web contents already destroyed")
)
