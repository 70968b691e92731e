package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("LEMONADE_CONFIG", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	c, err := Load("", nil)
	require.NoError(t, err)
	require.Equal(t, "sqlite", c.Store.Backend)
	require.Equal(t, filepath.Join(home, ".local", "share", "lemonade", "lemonade.db"), c.Store.Path)
	require.Equal(t, "default", c.Store.Slot)
	require.Equal(t, "info", c.Log.Level)
	require.Equal(t, "file", c.Log.Output)
	require.True(t, c.UI.AltScreen)
	require.True(t, c.UI.Mouse)
	require.Zero(t, c.UI.Seed)
	require.Equal(t, Default(), c)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "lemonade.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[store]
backend = "file"
file = "/tmp/lemon.json"
slot = "porch"

[log]
level = "debug"
output = "stderr"

[ui]
mouse = false
`), 0o600))

	t.Setenv("LEMONADE_STORE_SLOT", "kitchen")
	t.Setenv("LEMONADE_UI_SEED", "42")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("backend", "", "")
	fs.String("log-level", "", "")
	require.NoError(t, fs.Parse([]string{"--backend", "memory"}))

	c, err := Load(path, fs)
	require.NoError(t, err)
	require.Equal(t, "memory", c.Store.Backend)
	require.Equal(t, "/tmp/lemon.json", c.Store.File)
	require.Equal(t, "kitchen", c.Store.Slot)
	require.Equal(t, "debug", c.Log.Level)
	require.Equal(t, "stderr", c.Log.Output)
	require.Equal(t, uint64(42), c.UI.Seed)
	require.False(t, c.UI.Mouse)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	isolate(t)
	t.Setenv("LEMONADE_STORE_BACKEND", "postgres")
	_, err := Load("", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid config")
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[store\nbackend=="), 0o600))

	_, err := Load(path, nil)
	require.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "cfg", "config.toml")

	c := Default()
	c.Store.Backend = "file"
	c.Store.Slot = "garden"
	c.UI.Seed = 7
	require.NoError(t, Save(path, c))

	got, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, c, got)
}

func TestPathPrecedence(t *testing.T) {
	home := isolate(t)
	require.Equal(t, filepath.Join(home, ".config", "lemonade", "config.toml"), Path(""))
	t.Setenv("LEMONADE_CONFIG", "/etc/lemonade.toml")
	require.Equal(t, "/etc/lemonade.toml", Path(""))
	require.Equal(t, "/x.toml", Path("/x.toml"))
}
