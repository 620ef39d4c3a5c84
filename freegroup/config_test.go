package freegroup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	pathname := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(pathname, []byte(body), 0o644))
	return pathname
}

func TestLoadConfigTOML(t *testing.T) {
	pathname := writeFile(t, "fg.toml", `
[catalog]
db_path = "/tmp/orbits"

[orbit]
max_nodes = 500
verbose = true

[redis]
addr = "localhost:6379"
`)
	cfg, err := LoadConfig(pathname)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/orbits", cfg.Catalog.DbPathName)
	assert.Equal(t, 500, cfg.Orbit.MaxNodes)
	assert.True(t, cfg.Orbit.Verbose)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)

	// defaults survive when a section omits them
	assert.Equal(t, "freegroup:seen", cfg.Redis.Key)
	assert.Equal(t, 2, cfg.Log.Verbosity)
}

func TestLoadConfigYAML(t *testing.T) {
	pathname := writeFile(t, "fg.yaml", `
orbit:
  max_nodes: 12
log:
  verbosity: 0
  use_color: false
`)
	cfg, err := LoadConfig(pathname)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Orbit.MaxNodes)
	assert.Equal(t, 0, cfg.Log.Verbosity)
	assert.False(t, cfg.Log.UseColor)
	assert.Equal(t, "", cfg.Catalog.DbPathName)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(writeFile(t, "fg.json", `{}`))
	assert.ErrorIs(t, err, ErrBadConfig)

	_, err = LoadConfig(writeFile(t, "fg.toml", "[orbit]\nmax_nodes = -3\n"))
	assert.ErrorIs(t, err, ErrBadConfig)

	_, err = LoadConfig(writeFile(t, "fg.yaml", "catalog:\n  read_only: true\n"))
	assert.ErrorIs(t, err, ErrBadConfig)

	_, err = LoadConfig(writeFile(t, "fg.toml", "[orbit\n"))
	assert.ErrorIs(t, err, ErrBadConfig)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
