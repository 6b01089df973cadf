// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis"
)

// RedisSource reads settings from the hash named after the deployment
// stage: HGET <stage> <name>.
//
// Every lookup dials its own connection and closes it afterwards. Failed
// commands are not retried.
type RedisSource struct {
	addr        string
	stage       string
	dialTimeout time.Duration
}

// NewRedisSource builds a RedisSource for the store at addr (host:port).
// A zero dialTimeout keeps the client default.
func NewRedisSource(addr, stage string, dialTimeout time.Duration) *RedisSource {
	return &RedisSource{
		addr:        addr,
		stage:       stage,
		dialTimeout: dialTimeout,
	}
}

// Lookup returns the hash field. A missing field and an empty value are both
// absent.
func (s *RedisSource) Lookup(ctx context.Context, name string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:        s.addr,
		DialTimeout: s.dialTimeout,
		PoolSize:    1,
		MaxRetries:  0,
	})
	defer client.Close()

	v, err := client.HGet(s.stage, name).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: HGET %s %s at %s: %w", ErrStoreUnavailable, s.stage, name, s.addr, err)
	}
	if v == "" {
		return "", false, nil
	}

	return v, true, nil
}

// Name implements Source.
func (s *RedisSource) Name() string {
	return "redis"
}

// Addr returns the store address used for lookups.
func (s *RedisSource) Addr() string {
	return s.addr
}

// Stage returns the hash key used for lookups.
func (s *RedisSource) Stage() string {
	return s.stage
}
