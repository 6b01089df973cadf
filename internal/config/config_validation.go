// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] can drive a boot.
//
// Returns nil if the configuration is valid, or one of the Err* sentinels
// (possibly wrapped with the offending value) otherwise.
func (cfg *StructuredConfig) validate() error {
	p := cfg.Paths
	if p.ConfigFile == "" || p.DefaultConfigFile == "" || p.DataDir == "" || p.HomeDir == "" {
		return ErrInvalidPathConfigs
	}

	if cfg.Service.User == "" {
		return ErrInvalidServiceConfigs
	}

	if cfg.Source.UseRedis() && cfg.Source.Stage == "" {
		return fmt.Errorf("%w: STAGE is required when REDIS_SERVER is set", ErrInvalidSourceConfigs)
	}

	if cfg.Supervisor.Binary == "" {
		return ErrInvalidSupervisorConfigs
	}

	if cfg.Preflight.Enabled && cfg.Preflight.Timeout <= 0 {
		return ErrInvalidPreflightConfigs
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogConfigs, cfg.Log.Level)
	}

	return nil
}
