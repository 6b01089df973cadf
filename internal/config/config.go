// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the entry
// point. It is populated by merging values from environment variables,
// command-line flags, an optional JSON file, and finally [Defaults].
//
// Environment variable names are flat (no prefixes) because the container
// images that run this binary already export them under these names.
type StructuredConfig struct {
	// Paths locates the files and directories the boot sequence touches.
	Paths Paths

	// Service names the account that must own the config and data files.
	Service Service

	// Source selects and configures the value source for settings.
	Source Source

	// Supervisor is the process the entry point hands control to.
	Supervisor Supervisor

	// Odoo holds the knobs of the ini override stage.
	Odoo Odoo

	// Preflight configures the optional database reachability check.
	Preflight Preflight

	// Log holds logger settings.
	Log Log

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Paths groups every file system location used during boot.
type Paths struct {
	// ConfigFile is the application server configuration file that gets
	// patched in place.
	// Env: ODOO_CONFIG_FILE
	ConfigFile string `env:"ODOO_CONFIG_FILE"`

	// DefaultConfigFile is the bundled template copied into place when
	// ConfigFile does not exist yet.
	// Env: DEFAULT_CONFIG_FILE
	DefaultConfigFile string `env:"DEFAULT_CONFIG_FILE"`

	// FragmentsDir holds extra config snippets appended to a freshly
	// copied config file.
	// Env: CONFIG_FRAGMENTS_DIR
	FragmentsDir string `env:"CONFIG_FRAGMENTS_DIR"`

	// DataDir is the application data directory (filestore).
	// Env: FILESTORE_PATH
	DataDir string `env:"FILESTORE_PATH"`

	// HomeDir is the service account home, chowned recursively when the
	// data directory has the wrong owner.
	// Env: ODOO_HOME
	HomeDir string `env:"ODOO_HOME"`
}

// Service identifies the account the application runs as.
type Service struct {
	// User is the expected owner of the config file and data directory.
	// Env: ODOO_USER
	User string `env:"ODOO_USER"`

	// Group is used for the recursive home directory chown. Defaults to
	// User.
	// Env: ODOO_GROUP
	Group string `env:"ODOO_GROUP"`
}

// Source configures where setting values come from.
type Source struct {
	// RedisServer is the address of the external key-value store. When
	// non-empty, settings are read from Redis instead of the environment.
	// Env: REDIS_SERVER
	RedisServer string `env:"REDIS_SERVER"`

	// Stage is the deployment stage, used as the Redis hash key.
	// Env: STAGE
	Stage string `env:"STAGE"`

	// DialTimeout bounds the Redis connect. Zero keeps the client default.
	// Env: REDIS_DIAL_TIMEOUT
	DialTimeout time.Duration `env:"REDIS_DIAL_TIMEOUT"`
}

// Supervisor describes the process that replaces the entry point.
type Supervisor struct {
	// Binary is the supervisor executable, resolved through PATH when not
	// absolute.
	// Env: SUPERVISOR_BINARY
	Binary string `env:"SUPERVISOR_BINARY"`

	// Args are passed to the supervisor after argv[0].
	// Env: SUPERVISOR_ARGS (comma separated)
	Args []string `env:"SUPERVISOR_ARGS" envSeparator:","`
}

// Odoo holds the inputs of the ini override stage.
type Odoo struct {
	// ContainerType selects a worker profile: worker, cron or longpoll.
	// Env: CONTAINER_TYPE
	ContainerType string `env:"CONTAINER_TYPE"`

	// InstanceType is the deployment flavour used by sentry.
	// Env: INSTANCE_TYPE
	InstanceType string `env:"INSTANCE_TYPE"`

	// Stage is the Odoo-native spelling of InstanceType; both must agree.
	// Env: ODOO_STAGE
	Stage string `env:"ODOO_STAGE"`
}

// Preflight configures the database reachability check.
type Preflight struct {
	// Enabled turns the check on.
	// Env: DB_CHECK
	Enabled bool `env:"DB_CHECK"`

	// User is the role used to connect.
	// Env: DB_USER
	User string `env:"DB_USER"`

	// Password for User.
	// Env: DB_PASSWORD
	Password string `env:"DB_PASSWORD"`

	// Name is the maintenance database to connect to.
	// Env: DB_NAME
	Name string `env:"DB_NAME"`

	// Timeout bounds the connect and ping.
	// Env: DB_CHECK_TIMEOUT
	Timeout time.Duration `env:"DB_CHECK_TIMEOUT"`
}

// Log holds logger settings.
type Log struct {
	// Level is a zerolog level name.
	// Env: LOG_LEVEL
	Level string `env:"LOG_LEVEL"`
}

// Defaults returns the values used for every field left empty by the
// environment, flags and JSON file.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		Paths: Paths{
			ConfigFile:        "/home/odoo/.openerp_serverrc",
			DefaultConfigFile: "/external_files/.openerp_serverrc",
			FragmentsDir:      "/external_files/odoocfg",
			DataDir:           "/home/odoo/.local/share/Odoo",
			HomeDir:           "/home/odoo",
		},
		Service: Service{
			User: "odoo",
		},
		Supervisor: Supervisor{
			Binary: "/usr/bin/supervisord",
		},
		Preflight: Preflight{
			User:    "odoo",
			Name:    "postgres",
			Timeout: 10 * time.Second,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// UseRedis reports whether settings are read from the external store.
func (s Source) UseRedis() bool {
	return s.RedisServer != ""
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources in the following priority order (last source wins
// for non-zero fields):
//  1. Environment variables
//  2. Command-line flags parsed from args (without the program name)
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
