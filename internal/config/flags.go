package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// defaultRedisPort is appended to a bare Redis host.
const defaultRedisPort = 6379

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the configuration flags found in args.
//
// Flags:
//
//	-config-file      application config file path
//	-default-config   bundled default config path
//	-fragments-dir    directory of config fragments
//	-data-dir         application data directory
//	-home             service account home directory
//	-user             service account user
//	-group            service account group
//	-redis-server     Redis address in format host[:port]
//	-stage            deployment stage (Redis hash key)
//	-redis-dial-timeout Redis connect timeout (e.g. "2s")
//	-supervisor       supervisor binary
//	-container-type   worker profile (worker, cron, longpoll)
//	-db-check         check database reachability before handoff
//	-log-level        log level
//	-c/-config        json file path with configs
func ParseFlags(args []string) (*StructuredConfig, error) {
	var redisServer NetAddress
	var configFile, defaultConfig, fragmentsDir, dataDir, homeDir string
	var user, group, stage, supervisor, containerType, logLevel string
	var jsonConfigPath string
	var dialTimeout time.Duration
	var dbCheck bool

	fs := flag.NewFlagSet("entrypoint", flag.ContinueOnError)
	fs.StringVar(&configFile, "config-file", "", "Application config file path")
	fs.StringVar(&defaultConfig, "default-config", "", "Bundled default config path")
	fs.StringVar(&fragmentsDir, "fragments-dir", "", "Config fragments directory")
	fs.StringVar(&dataDir, "data-dir", "", "Application data directory")
	fs.StringVar(&homeDir, "home", "", "Service account home directory")
	fs.StringVar(&user, "user", "", "Service account user")
	fs.StringVar(&group, "group", "", "Service account group")
	fs.Var(&redisServer, "redis-server", "Redis address host[:port]")
	fs.StringVar(&stage, "stage", "", "Deployment stage")
	fs.DurationVar(&dialTimeout, "redis-dial-timeout", 0, "Redis dial timeout (e.g., 2s)")
	fs.StringVar(&supervisor, "supervisor", "", "Supervisor binary")
	fs.StringVar(&containerType, "container-type", "", "Container type (worker, cron, longpoll)")
	fs.BoolVar(&dbCheck, "db-check", false, "Check database reachability")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Paths: Paths{
			ConfigFile:        configFile,
			DefaultConfigFile: defaultConfig,
			FragmentsDir:      fragmentsDir,
			DataDir:           dataDir,
			HomeDir:           homeDir,
		},
		Service: Service{
			User:  user,
			Group: group,
		},
		Source: Source{
			RedisServer: redisServer.String(),
			Stage:       stage,
			DialTimeout: dialTimeout,
		},
		Supervisor: Supervisor{
			Binary: supervisor,
		},
		Odoo: Odoo{
			ContainerType: containerType,
		},
		Preflight: Preflight{
			Enabled: dbCheck,
		},
		Log: Log{
			Level: logLevel,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form host[:port] and populates the
// NetAddress. A missing port defaults to 6379. Host names are accepted
// because the store is usually addressed by its container name.
func (a *NetAddress) Set(s string) error {
	host, port, err := SplitRedisAddress(s)
	if err != nil {
		return err
	}

	a.Host = host
	a.Port = port
	return nil
}

// SplitRedisAddress splits host[:port], filling in the default Redis port.
func SplitRedisAddress(s string) (string, int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", 0, errors.New("need address in a form `host[:port]`")
	}

	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		// no port given
		if strings.Contains(err.Error(), "missing port") {
			return strings.Trim(s, "[]"), defaultRedisPort, nil
		}
		return "", 0, err
	}

	if host == "" {
		return "", 0, errors.New("need address in a form `host[:port]`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, err
	}

	if port < 1 || port > 65535 {
		return "", 0, errors.New("port number must be between 1 and 65535")
	}

	return host, port, nil
}
