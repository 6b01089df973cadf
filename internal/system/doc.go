// Package system wraps the operating system capabilities the boot sequence
// needs: looking up file owners, running chown and mkdir as subprocesses,
// and replacing the current process image with the supervisor.
package system
