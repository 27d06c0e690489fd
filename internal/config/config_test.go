package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
env: dev
storage:
  driver: postgres
  dsn: postgres://localhost:5432/registry
http_server:
  address: localhost:9090
client:
  server_url: http://localhost:9090
  request_timeout: 2s
  notification_ttl: 5s
  tasks_path: /tmp/tasks.json
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "postgres://localhost:5432/registry", cfg.Storage.DSN)
	assert.Equal(t, "localhost:9090", cfg.HTTPServer.Addr)
	assert.Equal(t, 2*time.Second, cfg.Client.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.Client.NotificationTTL)
	assert.Equal(t, "/tmp/tasks.json", cfg.Client.TasksPath)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
env: dev
storage:
  path: test.db
http_server:
  address: localhost:8082
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "http://localhost:8082", cfg.Client.ServerURL)
	assert.Equal(t, 10*time.Second, cfg.Client.RequestTimeout)
	assert.Equal(t, 3*time.Second, cfg.Client.NotificationTTL)
	assert.Equal(t, "tasks.json", cfg.Client.TasksPath)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("STORAGE_DSN", "postgres://env-host:5432/registry")

	path := writeConfig(t, `
env: dev
storage:
  driver: sqlite
  path: test.db
http_server:
  address: localhost:8082
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "postgres://env-host:5432/registry", cfg.Storage.DSN)
}
