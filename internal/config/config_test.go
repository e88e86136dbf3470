package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Web.Addr())
	assert.Equal(t, "clientes.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Launcher.Path)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "config.yaml")
	body := `
web:
  host: 127.0.0.1
  port: "9000"
database:
  path: /var/lib/go-desk/clientes.db
launcher:
  candidates:
    - /opt/rustdesk/rustdesk
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("WEB_PORT", "9100")
	t.Setenv("RUSTDESK_PATH", "/usr/local/bin/rustdesk")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9100", cfg.Web.Addr())
	assert.Equal(t, "/var/lib/go-desk/clientes.db", cfg.Database.Path)
	assert.Equal(t, []string{"/opt/rustdesk/rustdesk"}, cfg.Launcher.Candidates)
	assert.Equal(t, "/usr/local/bin/rustdesk", cfg.Launcher.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadIgnoresEmptyEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("WEB_HOST", "")
	t.Setenv("DB_PATH", "/tmp/outro.db")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Web.Host)
	assert.Equal(t, "/tmp/outro.db", cfg.Database.Path)
}
