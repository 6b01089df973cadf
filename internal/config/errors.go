package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidPathConfigs indicates that one of the file system paths
	// (config file, bundled default, data dir, home dir) is empty.
	ErrInvalidPathConfigs = errors.New("invalid path configuration")
	// ErrInvalidServiceConfigs indicates a missing service account.
	ErrInvalidServiceConfigs = errors.New("invalid service account configuration")
	// ErrInvalidSourceConfigs indicates an external store address without
	// a stage to look settings up under.
	ErrInvalidSourceConfigs = errors.New("invalid value source configuration")
	// ErrInvalidSupervisorConfigs indicates a missing supervisor binary.
	ErrInvalidSupervisorConfigs = errors.New("invalid supervisor configuration")
	// ErrInvalidPreflightConfigs indicates an enabled database check with
	// a non-positive timeout.
	ErrInvalidPreflightConfigs = errors.New("invalid database preflight configuration")
	// ErrInvalidLogConfigs indicates an unknown log level.
	ErrInvalidLogConfigs = errors.New("invalid log configuration")
)
