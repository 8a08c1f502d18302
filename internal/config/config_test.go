package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"usersvc/internal/config"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "environment: production\n"))
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Environment)
	require.Empty(t, cfg.LogLevel)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, 10*time.Second, cfg.HTTP.RequestTimeout)
	require.Equal(t, "/api/docs/", cfg.HTTP.DocsPath)
	require.Equal(t, "/docs/openapi.yaml", cfg.HTTP.SpecPath)
	require.Equal(t, "users", cfg.Database.DatabaseName)
	require.Equal(t, 5432, cfg.Database.Port)
	require.Equal(t, 24*time.Hour, cfg.Reports.RegistrationInterval)
	require.Equal(t, 10*time.Second, cfg.GracefulShutdownTimeout)
}

func TestLoad_Values(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, `
logLevel: debug
http:
  addr: ":9090"
  docsPath: /docs/
database:
  host: db
  name: people
reports:
  registrationInterval: 1h
`))
	require.NoError(t, err)

	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, ":9090", cfg.HTTP.Addr)
	require.Equal(t, "/docs/", cfg.HTTP.DocsPath)
	require.Equal(t, "db", cfg.Database.Host)
	require.Equal(t, "people", cfg.Database.DatabaseName)
	require.Equal(t, time.Hour, cfg.Reports.RegistrationInterval)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}
