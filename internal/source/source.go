// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package source resolves named settings from the value source that is
// active for the run: the process environment, or a Redis hash keyed by the
// deployment stage when an external store is configured.
package source

//go:generate mockgen -source=source.go -destination=../mock/source_mock.go -package=mock

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/Vauxoo/docker-entrypoint/internal/config"
)

// Source resolves a setting by name. ok is false when the setting is not
// configured; err is reserved for failures to reach the source.
type Source interface {
	Lookup(ctx context.Context, name string) (value string, ok bool, err error)

	// Name identifies the strategy for logging ("env" or "redis").
	Name() string
}

// New selects the strategy for the whole run: Redis when an address is
// configured, the environment otherwise.
func New(cfg config.Source) (Source, error) {
	if !cfg.UseRedis() {
		return NewEnvSource(nil), nil
	}

	host, port, err := config.SplitRedisAddress(cfg.RedisServer)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidAddress, cfg.RedisServer, err)
	}

	return NewRedisSource(net.JoinHostPort(host, strconv.Itoa(port)), cfg.Stage, cfg.DialTimeout), nil
}
