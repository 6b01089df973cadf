// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package odoorc applies structured overrides to the Odoo ini configuration:
// ODOORC_* environment variables, worker profiles selected by the container
// type, sentry settings and a few enforced defaults.
package odoorc

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	varPrefix   = "odoorc_"
	mainSection = "options"
)

// Options carries the inputs of [Apply].
type Options struct {
	// Vars maps config keys to values, see [Vars].
	Vars map[string]string

	// ContainerType selects a worker profile, see [SetupWorker].
	ContainerType string

	// InstanceType and Stage are resolved with [InstanceType] when sentry
	// is enabled in the file.
	InstanceType string
	Stage        string

	// Random generates the replacement admin password. Nil means
	// [RandomString].
	Random func(n int) (string, error)
}

// Enabled reports whether there is anything for [Apply] to do.
func (o Options) Enabled() bool {
	return len(o.Vars) > 0 || o.ContainerType != ""
}

// Apply loads the ini file at path, applies every override and saves it
// back.
func Apply(path string, opts Options) error {
	cfg, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("error loading odoo config: %w", err)
	}

	ApplyVars(cfg, opts.Vars)

	if err := SetupWorker(cfg, opts.ContainerType); err != nil {
		return err
	}

	if sentryEnabled(cfg) {
		instanceType, err := InstanceType(opts.InstanceType, opts.Stage)
		if err != nil {
			return err
		}
		UpdateSentry(cfg, instanceType)
	}

	random := opts.Random
	if random == nil {
		random = RandomString
	}
	if err := SetDefaults(cfg, random); err != nil {
		return err
	}

	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("error saving odoo config: %w", err)
	}

	return nil
}

// Vars filters environ ("KEY=value" entries) down to the ODOORC_ variables
// and returns them keyed by the lower-cased config key with the prefix
// removed. The prefix is matched case-insensitively.
func Vars(environ []string) map[string]string {
	res := make(map[string]string)
	for _, v := range environ {
		name, value, ok := strings.Cut(v, "=")
		if !ok {
			continue
		}

		key := strings.ToLower(name)
		if !strings.HasPrefix(key, varPrefix) {
			continue
		}

		key = strings.TrimPrefix(key, varPrefix)
		if key == "" {
			continue
		}
		res[key] = value
	}

	return res
}

// ApplyVars sets every key in whichever section already defines it, or in
// [options] when no section does.
func ApplyVars(cfg *ini.File, vars map[string]string) {
	sections := cfg.Sections()
	for k, v := range vars {
		updated := false
		for _, section := range sections {
			if section.HasKey(k) {
				section.Key(k).SetValue(v)
				updated = true
				break
			}
		}

		if !updated {
			cfg.Section(mainSection).Key(k).SetValue(v)
		}
	}
}

// SetupWorker tunes the config for a single-purpose container:
//   - worker: http only, no cron threads;
//   - cron: cron only, http and xmlrpc disabled;
//   - longpoll: longpolling workers only.
//
// An empty containerType leaves the config untouched.
func SetupWorker(cfg *ini.File, containerType string) error {
	opts := cfg.Section(mainSection)

	switch strings.ToLower(containerType) {
	case "":
		return nil

	case "worker":
		opts.Key("http_enable").SetValue("True")
		opts.Key("max_cron_threads").SetValue("0")
		opts.Key("workers").SetValue("0")
		opts.Key("xmlrpcs").SetValue("False")

	case "cron":
		opts.Key("http_enable").SetValue("False")
		opts.Key("max_cron_threads").SetValue("1")
		opts.Key("workers").SetValue("0")
		opts.Key("xmlrpcs").SetValue("False")
		opts.Key("xmlrpc").SetValue("False")

	case "longpoll":
		opts.Key("http_enable").SetValue("False")
		opts.Key("max_cron_threads").SetValue("0")
		opts.Key("workers").SetValue("2")
		opts.Key("xmlrpcs").SetValue("False")

	default:
		return fmt.Errorf("%w: %q", ErrUnknownContainerType, containerType)
	}

	return nil
}
