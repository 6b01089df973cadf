// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package dbcheck verifies, once, that the configured PostgreSQL server
// accepts connections before the application is started.
package dbcheck

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/Vauxoo/docker-entrypoint/internal/config"
	"github.com/Vauxoo/docker-entrypoint/internal/logger"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	defaultHost = "localhost"
	defaultPort = "5432"
)

// Checker pings the database with a single connection attempt.
type Checker struct {
	user     string
	password string
	name     string
	timeout  time.Duration
}

// NewChecker builds a Checker from the preflight settings. Check logs
// through the logger attached to its context.
func NewChecker(cfg config.Preflight) *Checker {
	return &Checker{
		user:     cfg.User,
		password: cfg.Password,
		name:     cfg.Name,
		timeout:  cfg.Timeout,
	}
}

// Check connects to host:port and pings. Empty host or port fall back to
// localhost:5432. A missing database counts as success: the server is up
// and Odoo creates databases itself.
func (c *Checker) Check(ctx context.Context, host, port string) error {
	if host == "" {
		host = defaultHost
	}
	if port == "" {
		port = defaultPort
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	conn, err := sql.Open("pgx", c.DSN(host, port))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer conn.Close()

	log := logger.FromContext(ctx)
	err = conn.PingContext(ctx)
	if err = classify(err); err != nil {
		log.Err(err).Str("host", host).Str("port", port).Msg("database preflight failed")
		return err
	}

	log.Info().Str("host", host).Str("port", port).Msg("database is reachable")
	return nil
}

// DSN renders the connection URL for host and port.
func (c *Checker) DSN(host, port string) string {
	q := url.Values{}
	q.Set("connect_timeout", strconv.Itoa(max(1, int(c.timeout/time.Second))))

	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + c.name,
		RawQuery: q.Encode(),
	}
	if c.password != "" {
		u.User = url.UserPassword(c.user, c.password)
	} else if c.user != "" {
		u.User = url.User(c.user)
	}

	return u.String()
}

func classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.InvalidCatalogName:
			return nil
		case pgerrcode.InvalidPassword, pgerrcode.InvalidAuthorizationSpecification:
			return fmt.Errorf("%w: %w", ErrAuthFailed, err)
		}
	}

	return fmt.Errorf("%w: %w", ErrUnreachable, err)
}
