package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "sqlite", cfg.Store.Driver)
	require.Equal(t, "sprintdeck.db", cfg.Store.Path)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SPRINTDECK_SERVER_PORT", "9090")
	t.Setenv("SPRINTDECK_STORE_DRIVER", "memory")
	t.Setenv("SPRINTDECK_CORS_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("SPRINTDECK_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "memory", cfg.Store.Driver)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := `
server:
  port: 9000
store:
  driver: memory
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	t.Setenv("SPRINTDECK_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9000, cfg.Server.Port)
	require.Equal(t, "memory", cfg.Store.Driver)

	// Environment variables win over the file.
	t.Setenv("SPRINTDECK_SERVER_PORT", "9001")
	cfg, err = Load()
	require.NoError(t, err)
	require.Equal(t, 9001, cfg.Server.Port)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SPRINTDECK_STORE_DRIVER", "postgres")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("SPRINTDECK_STORE_DRIVER", "sqlite")
	t.Setenv("SPRINTDECK_SERVER_PORT", "not-a-port")
	_, err = Load()
	require.Error(t, err)
}
