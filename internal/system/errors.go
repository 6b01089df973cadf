package system

import "errors"

var (
	// ErrCommandFailed wraps a subprocess that could not start or exited
	// non-zero.
	ErrCommandFailed = errors.New("command failed")

	// ErrExecFailed is returned when the supervisor could not replace the
	// current process.
	ErrExecFailed = errors.New("exec failed")

	// ErrUnsupported is returned on platforms without POSIX ownership.
	ErrUnsupported = errors.New("not supported on this platform")
)
