package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUsesXDG(t *testing.T) {
	cfg := t.TempDir()
	state := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfg)
	t.Setenv("XDG_STATE_HOME", state)
	t.Setenv(EnvConfigDir, "")
	t.Setenv(EnvStateDir, "")

	p := New()
	assert.Equal(t, filepath.Join(cfg, "envtmpl"), p.ConfigDir())
	assert.Equal(t, filepath.Join(state, "envtmpl"), p.StateDir())
	assert.Equal(t, filepath.Join(cfg, "envtmpl", "config.toml"), p.UserConfigPath())
	assert.Equal(t, filepath.Join(state, "envtmpl", "envtmpl.log"), p.LogFilePath())
}

func TestNewHonoursOverrides(t *testing.T) {
	t.Setenv(EnvConfigDir, "/opt/envtmpl/etc")
	t.Setenv(EnvStateDir, "/var/lib/envtmpl")

	p := New()
	assert.Equal(t, "/opt/envtmpl/etc", p.ConfigDir())
	assert.Equal(t, "/var/lib/envtmpl/envtmpl.log", p.LogFilePath())
}

func TestFindProjectConfig(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "", FindProjectConfig(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".envtmpl.yaml"), []byte("render: {}"), 0644))
	assert.Equal(t, filepath.Join(dir, ".envtmpl.yaml"), FindProjectConfig(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".envtmpl.toml"), []byte(""), 0644))
	assert.Equal(t, filepath.Join(dir, ".envtmpl.toml"), FindProjectConfig(dir))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/abs", "/abs"},
		{"rel/path", "rel/path"},
		{"~", home},
		{"~/x/y", filepath.Join(home, "x", "y")},
		{"~other/x", "~other/x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandHome(tt.in), tt.in)
	}
}
