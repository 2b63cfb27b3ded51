package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultTOMLMatchesDefault(t *testing.T) {
	var cfg Config
	_, err := toml.Decode(DefaultTOML(), &cfg)
	require.NoError(t, err)
	assert.Equal(t, *Default(), cfg)
}

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	t.Setenv(EnvSite, "")
	t.Setenv(EnvLog, "")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestMergeUserOverDefaults(t *testing.T) {
	t.Setenv(EnvSite, "")
	t.Setenv(EnvLog, "")

	path := writeConfig(t, `
[site]
base = "./site"

[intro]
disabled = true
dotMs = 10

[keybindings]
quit = "Q"
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "./site", cfg.Site.Base)
	assert.Equal(t, "manni-dm.dev", cfg.Site.Domain, "unset values keep defaults")
	assert.True(t, cfg.Intro.Disabled)
	assert.Equal(t, 10, cfg.Intro.DotMs)
	assert.Equal(t, 4000, cfg.Intro.SystemCheckMs)
	assert.Equal(t, "Q", cfg.Keybindings.Quit)
	assert.Equal(t, "b", cfg.Keybindings.Blog)
}

func TestEmptyKeybindingClearsDefault(t *testing.T) {
	t.Setenv(EnvSite, "")
	t.Setenv(EnvLog, "")

	path := writeConfig(t, `
[keybindings]
toggleTheme = ""
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Empty(t, cfg.Keybindings.ToggleTheme)
	assert.Equal(t, "f", cfg.Keybindings.ToggleFKeys, "unset bindings keep defaults")
	assert.Equal(t, "q", cfg.Keybindings.Quit)
}

func TestLoadFileBadTOML(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "[site\nbase ="))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvSite, "file:///srv/site")
	t.Setenv(EnvLog, "/tmp/mainframe.log")

	cfg, err := LoadFile(writeConfig(t, "[site]\nbase = \"https://example.com/\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "file:///srv/site", cfg.Site.Base)

	path, err := cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/mainframe.log", path)
}

func TestPaths(t *testing.T) {
	cfg := Default()
	cfg.Storage.Path = "/var/lib/mainframe/prefs.db"
	p, err := cfg.StorePath()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/mainframe/prefs.db", p)

	t.Setenv("HOME", "/home/chia")
	cfg = Default()
	p, err = cfg.StorePath()
	require.NoError(t, err)
	assert.Equal(t, "/home/chia/.config/mainframe/prefs.db", p)
	p, err = cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/home/chia/.cache/mainframe/mainframe.log", p)
}

func TestMatchSingle(t *testing.T) {
	assert.True(t, MatchSingle('b', "b"))
	assert.False(t, MatchSingle('b', "bb"))
	assert.False(t, MatchSingle('b', ""))
}
