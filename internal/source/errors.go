package source

import "errors"

var (
	// ErrInvalidAddress is returned by [New] when REDIS_SERVER cannot be
	// parsed as host[:port].
	ErrInvalidAddress = errors.New("invalid redis address")

	// ErrStoreUnavailable wraps connection and protocol failures of the
	// external store.
	ErrStoreUnavailable = errors.New("redis is unavailable")
)
