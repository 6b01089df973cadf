// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package system

import (
	"fmt"
	"os"
	"os/exec"
)

// ExecFunc has the signature of syscall.Exec.
type ExecFunc func(argv0 string, argv []string, envv []string) error

// Handoff replaces the current process with another program.
type Handoff struct {
	exec     ExecFunc
	lookPath func(file string) (string, error)
	environ  func() []string
}

// NewHandoff builds a Handoff. A nil execFn means the platform exec call.
func NewHandoff(execFn ExecFunc) *Handoff {
	if execFn == nil {
		execFn = platformExec
	}

	return &Handoff{
		exec:     execFn,
		lookPath: exec.LookPath,
		environ:  os.Environ,
	}
}

// Exec resolves binary through PATH and replaces the current process with
// it, passing the current environment. It only returns on failure.
func (h *Handoff) Exec(binary string, args []string) error {
	path, err := h.lookPath(binary)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExecFailed, binary, err)
	}

	argv := append([]string{binary}, args...)
	if err := h.exec(path, argv, h.environ()); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExecFailed, path, err)
	}

	// exec returned without error; only fakes do that
	return nil
}
