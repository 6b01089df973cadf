package dbcheck

import "errors"

var (
	// ErrAuthFailed is returned when the server rejects the credentials.
	ErrAuthFailed = errors.New("database rejected credentials")

	// ErrUnreachable is returned when the server cannot be reached or
	// reports any other error.
	ErrUnreachable = errors.New("database is unreachable")
)
