// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package system

import (
	"context"

	"github.com/Vauxoo/docker-entrypoint/internal/logger"
)

// Shell implements the ownership and directory capabilities of the boot
// sequence by shelling out to chown and mkdir.
type Shell struct {
	runner Runner
	log    *logger.Logger
}

// NewShell builds a Shell over runner.
func NewShell(runner Runner, log *logger.Logger) *Shell {
	return &Shell{
		runner: runner,
		log:    log,
	}
}

// Owner returns the user name owning path.
func (s *Shell) Owner(path string) (string, error) {
	return OwnerOf(path)
}

// Chown runs `chown -R spec path`. spec is "user" or "user:group".
func (s *Shell) Chown(ctx context.Context, spec, path string) error {
	return s.run(ctx, "chown", "-R", spec, path)
}

// MakeDir runs `mkdir -p path`.
func (s *Shell) MakeDir(ctx context.Context, path string) error {
	return s.run(ctx, "mkdir", "-p", path)
}

func (s *Shell) run(ctx context.Context, name string, args ...string) error {
	s.log.Debug().Str("cmd", name).Strs("args", args).Msg("running command")

	out, err := s.runner.Run(ctx, name, args...)
	if err != nil {
		s.log.Err(err).Str("cmd", name).Msg("command failed")
		return err
	}

	if len(out) > 0 {
		s.log.Debug().Str("cmd", name).Bytes("output", out).Msg("command output")
	}
	return nil
}
