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
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Estimator.Strict)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sjdb.yaml")
	data := `
catalogue:
  path: stats.db
  driver: sqlite
log:
  level: debug
  seq_url: http://localhost:5341
estimator:
  strict: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "stats.db", cfg.Catalogue.Path)
	assert.Equal(t, "sqlite", cfg.Catalogue.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "http://localhost:5341", cfg.Log.SeqURL)
	assert.True(t, cfg.Estimator.Strict)
	// Unset fields keep their defaults
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadSearchPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", "sjdb.yaml"), []byte("server:\n  addr: \":9090\"\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
