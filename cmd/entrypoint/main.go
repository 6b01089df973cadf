package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Vauxoo/docker-entrypoint/internal/boot"
	"github.com/Vauxoo/docker-entrypoint/internal/config"
	"github.com/Vauxoo/docker-entrypoint/internal/dbcheck"
	"github.com/Vauxoo/docker-entrypoint/internal/logger"
	"github.com/Vauxoo/docker-entrypoint/internal/odoorc"
	"github.com/Vauxoo/docker-entrypoint/internal/source"
	"github.com/Vauxoo/docker-entrypoint/internal/system"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewLogger("entrypoint")
	logBuildInfo(log)

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err := log.SetLevel(cfg.Log.Level); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	log.Debug().Any("config", redacted(cfg)).Msg("received configs")

	src, err := source.New(cfg.Source)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating value source")
	}
	logSource(log, src)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.WithContext(ctx)

	b := boot.NewBootstrapper(cfg, boot.Options{
		Source:     src,
		System:     system.NewShell(system.NewCommandRunner(), log),
		Supervisor: system.NewHandoff(nil),
		Preflight:  dbcheck.NewChecker(cfg.Preflight),
		Overrides: odoorc.Options{
			Vars:          odoorc.Vars(os.Environ()),
			ContainerType: cfg.Odoo.ContainerType,
			InstanceType:  cfg.Odoo.InstanceType,
			Stage:         cfg.Odoo.Stage,
		},
	}, log)

	if err := b.Run(ctx); err != nil {
		stop()
		log.Fatal().Err(err).Msg("boot failed")
	}
}

// redacted returns a copy of cfg safe for logging.
func redacted(cfg *config.StructuredConfig) config.StructuredConfig {
	c := *cfg
	if c.Preflight.Password != "" {
		c.Preflight.Password = "***"
	}
	return c
}

// logBuildInfo records the build stamp. Stdout belongs to the supervisor.
func logBuildInfo(log *logger.Logger) {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	log.Info().
		Str("version", buildVersion).
		Str("date", buildDate).
		Str("commit", buildCommit).
		Msg("build info")
}

func logSource(log *logger.Logger, src source.Source) {
	ev := log.Info().Str("source", src.Name())
	if rs, ok := src.(*source.RedisSource); ok {
		ev = ev.Str("addr", rs.Addr()).Str("stage", rs.Stage())
	}
	ev.Msg("value source selected")
}
