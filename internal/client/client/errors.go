package client

import "errors"

// Sentinels the services branch on when choosing between the online and
// offline paths.
var (
	// ErrUnavailable covers connectivity failures; writes that see it fall
	// back to the offline queue.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized covers rejected credentials and expired sessions.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrLocalDataNotAvailable means the local cache could not be read, so
	// there is nothing to show offline.
	ErrLocalDataNotAvailable = errors.New("local data unavailable")
)
