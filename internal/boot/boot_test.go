package boot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Vauxoo/docker-entrypoint/internal/config"
	"github.com/Vauxoo/docker-entrypoint/internal/logger"
	"github.com/Vauxoo/docker-entrypoint/internal/mock"
	"github.com/Vauxoo/docker-entrypoint/internal/odoorc"
	"github.com/Vauxoo/docker-entrypoint/internal/source"
	"github.com/alicebob/miniredis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gopkg.in/ini.v1"
)

const sampleConfig = "[options]\n" +
	"admin_passwd = secret\n" +
	"db_host = localhost\n" +
	"db_port = 5432\n" +
	"db_user = odoo\n"

type fixture struct {
	cfg        *config.StructuredConfig
	system     *mock.MockSystem
	supervisor *mock.MockSupervisor
	preflight  *mock.MockPreflight
}

// newFixture lays out a home directory with the default config in place and
// an existing data directory.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	root := t.TempDir()

	home := filepath.Join(root, "home")
	dataDir := filepath.Join(home, ".local", "share", "Odoo")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))

	defaultConfig := filepath.Join(root, "external", ".openerp_serverrc")
	require.NoError(t, os.MkdirAll(filepath.Dir(defaultConfig), 0o755))
	require.NoError(t, os.WriteFile(defaultConfig, []byte(sampleConfig), 0o644))

	configFile := filepath.Join(home, ".openerp_serverrc")
	require.NoError(t, os.WriteFile(configFile, []byte(sampleConfig), 0o644))

	return &fixture{
		cfg: &config.StructuredConfig{
			Paths: config.Paths{
				ConfigFile:        configFile,
				DefaultConfigFile: defaultConfig,
				FragmentsDir:      filepath.Join(root, "external", "odoocfg"),
				DataDir:           dataDir,
				HomeDir:           home,
			},
			Service:    config.Service{User: "odoo", Group: "odoo"},
			Supervisor: config.Supervisor{Binary: "/usr/bin/supervisord", Args: []string{"-n"}},
		},
		system:     mock.NewMockSystem(ctrl),
		supervisor: mock.NewMockSupervisor(ctrl),
		preflight:  mock.NewMockPreflight(ctrl),
	}
}

func (f *fixture) bootstrapper(src source.Source) *Bootstrapper {
	return NewBootstrapper(f.cfg, Options{
		Source:     src,
		System:     f.system,
		Supervisor: f.supervisor,
		Preflight:  f.preflight,
	}, logger.Nop())
}

// expectOwned makes both ownership checks pass.
func (f *fixture) expectOwned() {
	f.system.EXPECT().Owner(f.cfg.Paths.ConfigFile).Return("odoo", nil)
	f.system.EXPECT().Owner(f.cfg.Paths.DataDir).Return("odoo", nil)
}

func envOf(vars map[string]string) source.Source {
	return source.NewEnvSource(func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	})
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestRun_PatchesFromEnvironment(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.expectOwned()
	f.supervisor.EXPECT().Exec("/usr/bin/supervisord", []string{"-n"}).Return(nil)

	// Act
	err := f.bootstrapper(envOf(map[string]string{"DB_HOST": "mydb"})).Run(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "[options]\n"+
		"admin_passwd = secret\n"+
		"db_host = mydb\n"+
		"db_port = 5432\n"+
		"db_user = odoo\n", readFile(t, f.cfg.Paths.ConfigFile))
}

func TestRun_NoSettingsLeavesFileUntouched(t *testing.T) {
	f := newFixture(t)
	f.expectOwned()
	f.supervisor.EXPECT().Exec(gomock.Any(), gomock.Any()).Return(nil)

	err := f.bootstrapper(envOf(nil)).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, sampleConfig, readFile(t, f.cfg.Paths.ConfigFile))
}

func TestRun_SettingWithoutLineIsDropped(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.cfg.Paths.ConfigFile, []byte("[options]\ndb_user = odoo\n"), 0o644))
	f.expectOwned()
	f.supervisor.EXPECT().Exec(gomock.Any(), gomock.Any()).Return(nil)

	err := f.bootstrapper(envOf(map[string]string{"DB_HOST": "mydb"})).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "[options]\ndb_user = odoo\n", readFile(t, f.cfg.Paths.ConfigFile))
}

func TestRun_CopiesDefaultConfig(t *testing.T) {
	// Arrange
	f := newFixture(t)
	require.NoError(t, os.Remove(f.cfg.Paths.ConfigFile))
	f.expectOwned()
	f.supervisor.EXPECT().Exec(gomock.Any(), gomock.Any()).Return(nil)

	// Act
	err := f.bootstrapper(envOf(nil)).Run(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, sampleConfig, readFile(t, f.cfg.Paths.ConfigFile))
}

func TestRun_AppendsFragmentsToFreshCopy(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(f.cfg.Paths.ConfigFile))
	require.NoError(t, os.MkdirAll(f.cfg.Paths.FragmentsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(f.cfg.Paths.FragmentsDir, "10-workers"),
		[]byte("workers = 4\n"), 0o644))
	f.expectOwned()
	f.supervisor.EXPECT().Exec(gomock.Any(), gomock.Any()).Return(nil)

	err := f.bootstrapper(envOf(nil)).Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, readFile(t, f.cfg.Paths.ConfigFile), "workers = 4\n")
}

func TestRun_ExistingConfigSkipsFragments(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.MkdirAll(f.cfg.Paths.FragmentsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(f.cfg.Paths.FragmentsDir, "10-workers"),
		[]byte("workers = 4\n"), 0o644))
	f.expectOwned()
	f.supervisor.EXPECT().Exec(gomock.Any(), gomock.Any()).Return(nil)

	err := f.bootstrapper(envOf(nil)).Run(context.Background())

	require.NoError(t, err)
	assert.NotContains(t, readFile(t, f.cfg.Paths.ConfigFile), "workers")
}

func TestRun_MissingDefaultConfig(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(f.cfg.Paths.ConfigFile))
	require.NoError(t, os.Remove(f.cfg.Paths.DefaultConfigFile))

	err := f.bootstrapper(envOf(nil)).Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error preparing config file")
}

func TestRun_PatchesFromRedis(t *testing.T) {
	// Arrange
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()
	s.HSet("prod", "DB_PORT", "5433")

	f := newFixture(t)
	f.expectOwned()
	f.supervisor.EXPECT().Exec(gomock.Any(), gomock.Any()).Return(nil)

	src, err := source.New(config.Source{RedisServer: s.Addr(), Stage: "prod"})
	require.NoError(t, err)

	// Act
	err = f.bootstrapper(src).Run(context.Background())

	// Assert
	require.NoError(t, err)
	content := readFile(t, f.cfg.Paths.ConfigFile)
	assert.Contains(t, content, "db_port = 5433\n")
	assert.Contains(t, content, "db_host = localhost\n")
}

func TestRun_RedisUnavailable(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	addr := s.Addr()
	s.Close()

	f := newFixture(t)
	src, err := source.New(config.Source{RedisServer: addr, Stage: "prod"})
	require.NoError(t, err)

	err = f.bootstrapper(src).Run(context.Background())

	assert.ErrorIs(t, err, source.ErrStoreUnavailable)
	assert.Equal(t, sampleConfig, readFile(t, f.cfg.Paths.ConfigFile))
}

func TestRun_FixesOwnership(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()
	gomock.InOrder(
		f.system.EXPECT().Owner(f.cfg.Paths.ConfigFile).Return("root", nil),
		f.system.EXPECT().Chown(ctx, "odoo", f.cfg.Paths.ConfigFile).Return(nil),
		f.system.EXPECT().Owner(f.cfg.Paths.DataDir).Return("root", nil),
		f.system.EXPECT().Chown(ctx, "odoo:odoo", f.cfg.Paths.HomeDir).Return(nil),
		f.supervisor.EXPECT().Exec(gomock.Any(), gomock.Any()).Return(nil),
	)

	// Act
	err := f.bootstrapper(envOf(nil)).Run(ctx)

	// Assert
	require.NoError(t, err)
}

func TestRun_ChownFails(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("operation not permitted")
	f.system.EXPECT().Owner(f.cfg.Paths.ConfigFile).Return("root", nil)
	f.system.EXPECT().Chown(gomock.Any(), "odoo", f.cfg.Paths.ConfigFile).Return(boom)

	err := f.bootstrapper(envOf(nil)).Run(context.Background())

	assert.ErrorIs(t, err, boom)
}

func TestRun_CreatesDataDir(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.RemoveAll(f.cfg.Paths.DataDir))
	ctx := context.Background()
	gomock.InOrder(
		f.system.EXPECT().Owner(f.cfg.Paths.ConfigFile).Return("odoo", nil),
		f.system.EXPECT().MakeDir(ctx, f.cfg.Paths.DataDir).Return(nil),
		f.system.EXPECT().Owner(f.cfg.Paths.DataDir).Return("root", nil),
		f.system.EXPECT().Chown(ctx, "odoo:odoo", f.cfg.Paths.HomeDir).Return(nil),
		f.supervisor.EXPECT().Exec(gomock.Any(), gomock.Any()).Return(nil),
	)

	err := f.bootstrapper(envOf(nil)).Run(ctx)

	require.NoError(t, err)
}

func TestRun_PreflightUsesResolvedValues(t *testing.T) {
	f := newFixture(t)
	f.cfg.Preflight.Enabled = true
	gomock.InOrder(
		f.preflight.EXPECT().Check(gomock.Any(), "mydb", "5433").Return(nil),
		f.system.EXPECT().Owner(f.cfg.Paths.ConfigFile).Return("odoo", nil),
	)
	f.system.EXPECT().Owner(f.cfg.Paths.DataDir).Return("odoo", nil)
	f.supervisor.EXPECT().Exec(gomock.Any(), gomock.Any()).Return(nil)

	err := f.bootstrapper(envOf(map[string]string{"DB_HOST": "mydb", "DB_PORT": "5433"})).Run(context.Background())

	require.NoError(t, err)
}

func TestRun_PreflightUsesConfigFileAddress(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.cfg.Preflight.Enabled = true
	require.NoError(t, os.WriteFile(f.cfg.Paths.ConfigFile,
		[]byte("[options]\ndb_host = remote-db\ndb_port = 6543\n"), 0o644))
	f.preflight.EXPECT().Check(gomock.Any(), "remote-db", "6543").Return(nil)
	f.expectOwned()
	f.supervisor.EXPECT().Exec(gomock.Any(), gomock.Any()).Return(nil)

	// Act
	err := f.bootstrapper(envOf(nil)).Run(context.Background())

	// Assert
	require.NoError(t, err)
}

func TestRun_PreflightSeesIniOverride(t *testing.T) {
	f := newFixture(t)
	f.cfg.Preflight.Enabled = true
	f.preflight.EXPECT().Check(gomock.Any(), "override-db", "5432").Return(nil)
	f.expectOwned()
	f.supervisor.EXPECT().Exec(gomock.Any(), gomock.Any()).Return(nil)

	b := NewBootstrapper(f.cfg, Options{
		Source:     envOf(map[string]string{"DB_HOST": "mydb"}),
		System:     f.system,
		Supervisor: f.supervisor,
		Preflight:  f.preflight,
		Overrides:  odoorc.Options{Vars: map[string]string{"db_host": "override-db"}},
	}, logger.Nop())

	err := b.Run(context.Background())

	require.NoError(t, err)
}

func TestRun_PreflightFallsBackToResolvedValues(t *testing.T) {
	f := newFixture(t)
	f.cfg.Preflight.Enabled = true
	require.NoError(t, os.WriteFile(f.cfg.Paths.ConfigFile, []byte("[options]\ndb_user = odoo\n"), 0o644))
	f.preflight.EXPECT().Check(gomock.Any(), "mydb", "").Return(nil)
	f.expectOwned()
	f.supervisor.EXPECT().Exec(gomock.Any(), gomock.Any()).Return(nil)

	err := f.bootstrapper(envOf(map[string]string{"DB_HOST": "mydb"})).Run(context.Background())

	require.NoError(t, err)
}

func TestRun_PreflightFailureStopsBoot(t *testing.T) {
	f := newFixture(t)
	f.cfg.Preflight.Enabled = true
	boom := errors.New("connection refused")
	f.preflight.EXPECT().Check(gomock.Any(), "localhost", "5432").Return(boom)

	err := f.bootstrapper(envOf(nil)).Run(context.Background())

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "error checking database")
}

func TestRun_AppliesOverrides(t *testing.T) {
	f := newFixture(t)
	f.expectOwned()
	f.supervisor.EXPECT().Exec(gomock.Any(), gomock.Any()).Return(nil)

	b := NewBootstrapper(f.cfg, Options{
		Source:     envOf(nil),
		System:     f.system,
		Supervisor: f.supervisor,
		Overrides: odoorc.Options{
			Vars:          map[string]string{"workers": "8"},
			ContainerType: "cron",
			Random:        func(int) (string, error) { return "generated", nil },
		},
	}, logger.Nop())

	err := b.Run(context.Background())

	require.NoError(t, err)
	cfg, err := ini.Load(f.cfg.Paths.ConfigFile)
	require.NoError(t, err)
	opts := cfg.Section("options")
	assert.Equal(t, "8", opts.Key("workers").String())
	assert.Equal(t, "5432", opts.Key("db_port").String())
	assert.Equal(t, "secret", opts.Key("admin_passwd").String())
}

func TestRun_ExecFailure(t *testing.T) {
	f := newFixture(t)
	f.expectOwned()
	boom := errors.New("no such file")
	f.supervisor.EXPECT().Exec("/usr/bin/supervisord", []string{"-n"}).Return(boom)

	err := f.bootstrapper(envOf(nil)).Run(context.Background())

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "error starting supervisor")
}

func TestRun_CanceledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.bootstrapper(envOf(map[string]string{"DB_HOST": "mydb"})).Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSetting_Line(t *testing.T) {
	assert.Equal(t, "db_host = mydb", Setting{Name: "DB_HOST", Prefix: "db_host"}.Line("mydb"))
}
