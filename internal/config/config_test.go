package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"seeker/internal/config"
	"seeker/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const (
	validTOML = `
window_theme = "light"
font_size = 16.0

[dialog]
start_dir = "/srv/projects"
ignore = ["*.swp", "node_modules"]
name_width = 20

[log]
debug = true
`
	validYAML = `
window_theme: dark
dialog:
  start_dir: /srv/work
  column_width: 40
storage:
  database: /var/lib/seeker/seeker.db
`
	invalidSyntaxTOML = `
window_theme = "dark
`
	invalidThemeTOML = `window_theme = "solarized"`
	invalidGlobTOML  = `
[dialog]
ignore = ["[unclosed"]
`
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("load valid toml", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(writeConfig(t, "config.toml", validTOML))
		require.NoError(t, err)

		assert.Equal(t, "light", cfg.WindowTheme)
		assert.Equal(t, float32(16), cfg.FontSize)
		assert.Equal(t, "/srv/projects", cfg.Dialog.StartDir)
		assert.Equal(t, []string{"*.swp", "node_modules"}, cfg.Dialog.Ignore)
		assert.Equal(t, 20, cfg.Dialog.NameWidth)
		assert.True(t, cfg.Log.Debug)

		// untouched keys keep their defaults
		assert.Equal(t, config.DefaultColumnWidth, cfg.Dialog.ColumnWidth)
		assert.True(t, cfg.Dialog.ShowDetailsType)
	})

	t.Run("load valid yaml", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(writeConfig(t, "config.yaml", validYAML))
		require.NoError(t, err)

		assert.Equal(t, "dark", cfg.WindowTheme)
		assert.Equal(t, "/srv/work", cfg.Dialog.StartDir)
		assert.Equal(t, 40, cfg.Dialog.ColumnWidth)
		assert.Equal(t, config.DefaultNameWidth, cfg.Dialog.NameWidth)
		assert.Equal(t, "/var/lib/seeker/seeker.db", cfg.Storage.Database)
	})

	t.Run("load non-existent file", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
		require.NoError(t, err)
		assert.Equal(t, config.New(), cfg)
	})

	t.Run("invalid syntax", func(t *testing.T) {
		_, err := config.LoadConfigFile(writeConfig(t, "config.toml", invalidSyntaxTOML))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error parsing config file")
		assert.True(t, errors.IsInvalidConfig(err))
	})

	t.Run("unknown theme", func(t *testing.T) {
		_, err := config.LoadConfigFile(writeConfig(t, "config.toml", invalidThemeTOML))
		require.Error(t, err)

		var ce *errors.ConfigError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, "window_theme", ce.Param())
	})

	t.Run("bad ignore glob", func(t *testing.T) {
		_, err := config.LoadConfigFile(writeConfig(t, "config.toml", invalidGlobTOML))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dialog.ignore")
	})
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		param   string
		wantErr bool
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "zero font", mutate: func(c *config.Config) { c.FontSize = 0 }, param: "font_size", wantErr: true},
		{name: "huge font", mutate: func(c *config.Config) { c.FontSize = 200 }, param: "font_size", wantErr: true},
		{name: "narrow names", mutate: func(c *config.Config) { c.Dialog.NameWidth = 2 }, param: "dialog.name_width", wantErr: true},
		{
			name:    "column narrower than names",
			mutate:  func(c *config.Config) { c.Dialog.ColumnWidth = c.Dialog.NameWidth },
			param:   "dialog.column_width",
			wantErr: true,
		},
		{name: "empty theme", mutate: func(c *config.Config) { c.WindowTheme = "" }, param: "window_theme", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var ce *errors.ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.param, ce.Param())
		})
	}

	var nilCfg *config.Config
	assert.Error(t, nilCfg.Validate())
}

func TestSaveConfigRoundTrip(t *testing.T) {
	for _, name := range []string{"nested/config.toml", "nested/config.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := config.New()
			cfg.WindowTheme = "light"
			cfg.Dialog.Ignore = []string{"*.o"}

			require.NoError(t, config.SaveConfig(cfg, path))
			loaded, err := config.LoadConfigFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := config.DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".Seeker", "config.toml"), path)

	cfg := config.New()
	db, err := cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".Seeker", "seeker.db"), db)

	start, err := cfg.StartDir()
	require.NoError(t, err)
	assert.Equal(t, home, start)

	cfg.Dialog.StartDir = "~/code"
	start, err = cfg.StartDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "code"), start)

	abs, err := config.ExpandPath("/etc/seeker")
	require.NoError(t, err)
	assert.Equal(t, "/etc/seeker", abs)
}

func TestThemes(t *testing.T) {
	assert.Equal(t, []string{"dark", "light"}, config.ListThemes())

	dark := config.GetTheme("dark")
	assert.True(t, dark.Dark)
	assert.Equal(t, config.RGB{43, 45, 48}, dark.HomeMenu)
	assert.Equal(t, "#32426b", dark.Hovered.Hex())
	assert.Equal(t, uint8(0xff), dark.Font.NRGBA().A)

	assert.Equal(t, dark, config.GetTheme("nope"))

	cfg := config.New()
	cfg.WindowTheme = "light"
	assert.False(t, cfg.Palette().Dark)
}
