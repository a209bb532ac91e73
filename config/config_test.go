package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/housing-engine/config"
)

// chdirTemp runs the test in an empty directory so no stray config.yaml
// or .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := config.Load("")

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "housing.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:8080"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "au-2025", cfg.Rules.Active)
}

func TestLoad_FileThenEnv(t *testing.T) {
	// GIVEN: A config file and an env override for the port
	dir := chdirTemp(t)
	path := filepath.Join(dir, "housing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
  read_timeout: 5s
database:
  path: ":memory:"
log:
  format: json
`), 0o600))
	t.Setenv("HOUSING_SERVER_PORT", "9100")

	// WHEN: Loading
	cfg, err := config.Load(path)

	// THEN: Env beats file, file beats defaults
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HOUSING_LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("HOUSING_LOG_LEVEL") })

	cfg, err := config.Load("")

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidPort(t *testing.T) {
	chdirTemp(t)
	t.Setenv("HOUSING_SERVER_PORT", "70000")

	_, err := config.Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	chdirTemp(t)

	_, err := config.Load("/does/not/exist.yaml")

	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() config.Config {
		return config.Config{
			Server:   config.ServerConfig{Port: 8080},
			Database: config.DatabaseConfig{Driver: "sqlite", Path: "x.db"},
			Log:      config.LogConfig{Level: "info", Format: "console"},
			Rules:    config.RulesConfig{Active: "au-2025"},
		}
	}

	cfg := base()
	assert.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Database.Path = " "
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Database.Driver = "memory"
	cfg.Database.Path = ""
	assert.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Database.Driver = "postgres"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Log.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Log.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Rules.Active = ""
	assert.Error(t, cfg.Validate())
}
