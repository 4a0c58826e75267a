package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"seeker/internal/errors"
	"seeker/internal/log"
)

const (
	// AppDir is the per-user directory holding config and database.
	AppDir = ".Seeker"

	DefaultFontSize    = 14
	DefaultNameWidth   = 24
	DefaultColumnWidth = 30

	minNameWidth = 5
	maxFontSize  = 72
)

// Config is the Seeker configuration file.
type Config struct {
	WindowTheme string        `toml:"window_theme" yaml:"window_theme"` // dark or light
	FontSize    float32       `toml:"font_size" yaml:"font_size"`
	Dialog      DialogConfig  `toml:"dialog" yaml:"dialog"`
	Storage     StorageConfig `toml:"storage" yaml:"storage"`
	Log         LogConfig     `toml:"log" yaml:"log"`
}

// DialogConfig controls the file dialog.
type DialogConfig struct {
	StartDir        string   `toml:"start_dir" yaml:"start_dir"`       // empty means the user's home
	Ignore          []string `toml:"ignore" yaml:"ignore"`             // glob patterns hidden from listings
	NameWidth       int      `toml:"name_width" yaml:"name_width"`     // display width budget of a directory row
	ColumnWidth     int      `toml:"column_width" yaml:"column_width"` // terminal cells per column
	ShowDetailsType bool     `toml:"show_details_type" yaml:"show_details_type"`
}

type StorageConfig struct {
	Database string `toml:"database" yaml:"database"`
}

type LogConfig struct {
	File  string `toml:"file" yaml:"file"`
	Debug bool   `toml:"debug" yaml:"debug"`
	JSON  bool   `toml:"json" yaml:"json"`
}

// DefaultPath returns ~/.Seeker/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.NewConfigError("cannot resolve home directory", "path", errors.ConfigNotFound, err)
	}
	return filepath.Join(home, AppDir, "config.toml"), nil
}

// LoadConfigFile loads configuration from path, decoding YAML for .yaml/.yml
// and TOML otherwise. Keys absent from the file keep their defaults; a
// missing file yields the defaults.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	if isYAML(path) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
		}
	} else {
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
		}
		for _, key := range md.Undecoded() {
			log.LogWithFields(log.F("key", key.String()), log.F("path", path)).Warn("unknown config key")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func defaultConfig() *Config {
	return &Config{
		WindowTheme: "dark",
		FontSize:    DefaultFontSize,
		Dialog: DialogConfig{
			NameWidth:       DefaultNameWidth,
			ColumnWidth:     DefaultColumnWidth,
			ShowDetailsType: true,
		},
		Storage: StorageConfig{
			Database: filepath.Join("~", AppDir, "seeker.db"),
		},
	}
}

// New returns the default configuration.
func New() *Config {
	return defaultConfig()
}

// SaveConfig writes cfg to path in the format implied by its extension,
// creating parent directories as needed.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.FromOS("failed to create config directory", filepath.Dir(path), err)
	}

	var data []byte
	if isYAML(path) {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config")
		}
		data = out
	} else {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return errors.Wrap(err, "failed to marshal config")
		}
		data = buf.Bytes()
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.FromOS("failed to write config file", path, err)
	}
	return nil
}

// Validate reports the first invalid setting as a ConfigError.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.ConfigNotSet, nil)
	}
	if _, ok := themes[c.WindowTheme]; !ok {
		return errors.NewConfigError(
			fmt.Sprintf("unknown theme %q (want one of %s)", c.WindowTheme, strings.Join(ListThemes(), ", ")),
			"window_theme", errors.InvalidConfig, nil)
	}
	if c.FontSize <= 0 || c.FontSize > maxFontSize {
		return errors.NewConfigError(fmt.Sprintf("font size must be in (0, %d]", maxFontSize),
			"font_size", errors.InvalidConfig, nil)
	}
	if c.Dialog.NameWidth < minNameWidth {
		return errors.NewConfigError(fmt.Sprintf("name width must be >= %d", minNameWidth),
			"dialog.name_width", errors.InvalidConfig, nil)
	}
	// a column holds the name, a space and the ">" marker
	if c.Dialog.ColumnWidth < c.Dialog.NameWidth+2 {
		return errors.NewConfigError("column width must leave room for the name and marker",
			"dialog.column_width", errors.InvalidConfig, nil)
	}
	for _, pattern := range c.Dialog.Ignore {
		if _, err := glob.Compile(pattern); err != nil {
			return errors.NewConfigError(fmt.Sprintf("bad ignore pattern %q", pattern),
				"dialog.ignore", errors.InvalidConfig, err)
		}
	}
	return nil
}

// StartDir returns the directory the file dialog opens in: the configured
// start_dir, or the user's home directory.
func (c *Config) StartDir() (string, error) {
	if c.Dialog.StartDir != "" {
		return ExpandPath(c.Dialog.StartDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.NewConfigError("cannot resolve home directory", "dialog.start_dir", errors.ConfigNotSet, err)
	}
	return home, nil
}

// DatabasePath returns the expanded project database location.
func (c *Config) DatabasePath() (string, error) {
	return ExpandPath(c.Storage.Database)
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.NewFileError("cannot expand path", path, errors.InvalidPath, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
