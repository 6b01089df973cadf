// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package boot

import (
	"context"
	"fmt"

	"github.com/Vauxoo/docker-entrypoint/internal/config"
	"github.com/Vauxoo/docker-entrypoint/internal/configfile"
	"github.com/Vauxoo/docker-entrypoint/internal/logger"
	"github.com/Vauxoo/docker-entrypoint/internal/odoorc"
	"github.com/Vauxoo/docker-entrypoint/internal/source"
)

// Options carries the collaborators of a [Bootstrapper].
type Options struct {
	Source     source.Source
	System     System
	Supervisor Supervisor

	// Preflight is consulted only when the config enables it.
	Preflight Preflight

	// Overrides drive the ini stage; it is skipped when not Enabled.
	Overrides odoorc.Options

	// Settings defaults to [DefaultSettings].
	Settings []Setting
}

// Bootstrapper runs the boot sequence described in the package doc.
type Bootstrapper struct {
	paths      config.Paths
	service    config.Service
	supervisor config.Supervisor
	preflight  bool

	source    source.Source
	system    System
	handoff   Supervisor
	checker   Preflight
	overrides odoorc.Options
	settings  []Setting
	logger    *logger.Logger
}

// NewBootstrapper builds a Bootstrapper for cfg.
func NewBootstrapper(cfg *config.StructuredConfig, opts Options, log *logger.Logger) *Bootstrapper {
	settings := opts.Settings
	if settings == nil {
		settings = DefaultSettings()
	}

	return &Bootstrapper{
		paths:      cfg.Paths,
		service:    cfg.Service,
		supervisor: cfg.Supervisor,
		preflight:  cfg.Preflight.Enabled,
		source:     opts.Source,
		system:     opts.System,
		handoff:    opts.Supervisor,
		checker:    opts.Preflight,
		overrides:  opts.Overrides,
		settings:   settings,
		logger:     log,
	}
}

// Run executes every step in order and finishes by handing off to the
// supervisor. On success Run only returns if the Supervisor does.
func (b *Bootstrapper) Run(ctx context.Context) error {
	if err := b.ensureConfigFile(); err != nil {
		return fmt.Errorf("error preparing config file: %w", err)
	}

	resolved, err := b.applySettings(ctx)
	if err != nil {
		return fmt.Errorf("error applying settings: %w", err)
	}

	if err := b.applyOverrides(); err != nil {
		return fmt.Errorf("error applying config overrides: %w", err)
	}

	if err := b.checkDatabase(ctx, resolved); err != nil {
		return fmt.Errorf("error checking database: %w", err)
	}

	if err := b.ensureConfigOwner(ctx); err != nil {
		return fmt.Errorf("error fixing config file owner: %w", err)
	}

	if err := b.ensureDataDir(ctx); err != nil {
		return fmt.Errorf("error preparing data directory: %w", err)
	}

	if err := b.ensureDataOwner(ctx); err != nil {
		return fmt.Errorf("error fixing data directory owner: %w", err)
	}

	log := b.logger.WithStep("handoff")
	log.Info().Str("binary", b.supervisor.Binary).Strs("args", b.supervisor.Args).Msg("starting supervisor")
	if err := b.handoff.Exec(b.supervisor.Binary, b.supervisor.Args); err != nil {
		return fmt.Errorf("error starting supervisor: %w", err)
	}

	return nil
}

// ensureConfigFile copies the bundled default into place when the config
// file is missing, then appends the fragments to the fresh copy.
func (b *Bootstrapper) ensureConfigFile() error {
	log := b.logger.WithStep("config")

	exists, err := configfile.Exists(b.paths.ConfigFile)
	if err != nil {
		return err
	}
	if exists {
		log.Debug().Str("path", b.paths.ConfigFile).Msg("config file present")
		return nil
	}

	log.Info().Str("from", b.paths.DefaultConfigFile).Str("to", b.paths.ConfigFile).Msg("installing default config file")
	if err := configfile.Copy(b.paths.DefaultConfigFile, b.paths.ConfigFile); err != nil {
		return err
	}

	if b.paths.FragmentsDir == "" {
		return nil
	}

	n, err := configfile.AppendFragments(b.paths.ConfigFile, b.paths.FragmentsDir)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info().Int("fragments", n).Str("dir", b.paths.FragmentsDir).Msg("appended config fragments")
	}

	return nil
}

// applySettings patches each setting the value source knows about and
// returns the resolved values by name.
func (b *Bootstrapper) applySettings(ctx context.Context) (map[string]string, error) {
	log := b.logger.WithStep("settings").With().Str("source", b.source.Name()).Logger()
	resolved := make(map[string]string, len(b.settings))

	for _, s := range b.settings {
		value, ok, err := b.source.Lookup(ctx, s.Name)
		if err != nil {
			return nil, fmt.Errorf("error looking up %s: %w", s.Name, err)
		}
		if !ok {
			log.Debug().Str("setting", s.Name).Msg("setting not configured")
			continue
		}
		resolved[s.Name] = value

		n, err := configfile.ChangeValue(b.paths.ConfigFile, s.Prefix, s.Line(value))
		if err != nil {
			return nil, fmt.Errorf("error patching %s: %w", s.Prefix, err)
		}
		if n == 0 {
			log.Warn().Str("setting", s.Name).Str("prefix", s.Prefix).
				Msg("config file has no line for setting, value dropped")
			continue
		}

		log.Info().Str("setting", s.Name).Str("value", value).Msg("patched config file")
	}

	return resolved, nil
}

func (b *Bootstrapper) applyOverrides() error {
	if !b.overrides.Enabled() {
		return nil
	}

	b.logger.WithStep("overrides").Info().
		Int("vars", len(b.overrides.Vars)).
		Str("container_type", b.overrides.ContainerType).
		Msg("applying ini overrides")

	return odoorc.Apply(b.paths.ConfigFile, b.overrides)
}

// checkDatabase pings the database the final config file points at. Values
// resolved from the source fill in keys the file does not define.
func (b *Bootstrapper) checkDatabase(ctx context.Context, resolved map[string]string) error {
	if !b.preflight || b.checker == nil {
		return nil
	}

	host, port, err := odoorc.DatabaseAddress(b.paths.ConfigFile)
	if err != nil {
		return err
	}
	if host == "" {
		host = resolved[settingDBHost]
	}
	if port == "" {
		port = resolved[settingDBPort]
	}

	b.logger.WithStep("preflight").Info().Str("host", host).Str("port", port).Msg("checking database")
	return b.checker.Check(ctx, host, port)
}

func (b *Bootstrapper) ensureConfigOwner(ctx context.Context) error {
	owner, err := b.system.Owner(b.paths.ConfigFile)
	if err != nil {
		return err
	}
	if owner == b.service.User {
		return nil
	}

	b.logger.WithStep("ownership").Info().Str("path", b.paths.ConfigFile).Str("owner", owner).
		Str("want", b.service.User).Msg("changing config file owner")

	return b.system.Chown(ctx, b.service.User, b.paths.ConfigFile)
}

func (b *Bootstrapper) ensureDataDir(ctx context.Context) error {
	exists, err := configfile.Exists(b.paths.DataDir)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	b.logger.WithStep("datadir").Info().Str("path", b.paths.DataDir).Msg("creating data directory")
	return b.system.MakeDir(ctx, b.paths.DataDir)
}

// ensureDataOwner chowns the whole home directory when the data directory
// is not owned by the service user.
func (b *Bootstrapper) ensureDataOwner(ctx context.Context) error {
	owner, err := b.system.Owner(b.paths.DataDir)
	if err != nil {
		return err
	}
	if owner == b.service.User {
		return nil
	}

	spec := b.service.User + ":" + b.service.Group
	b.logger.WithStep("ownership").Info().Str("path", b.paths.HomeDir).Str("owner", owner).
		Str("want", spec).Msg("changing home directory owner")

	return b.system.Chown(ctx, spec, b.paths.HomeDir)
}
