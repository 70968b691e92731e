package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Store StoreConfig `mapstructure:"store" json:"store"`
	Log   LogConfig   `mapstructure:"log" json:"log"`
	UI    UIConfig    `mapstructure:"ui" json:"ui"`
}

// StoreConfig selects where the lemonade snapshot is kept between runs.
type StoreConfig struct {
	Backend string `mapstructure:"backend" json:"backend" validate:"oneof=sqlite file memory"`
	Path    string `mapstructure:"path" json:"path" validate:"required_if=Backend sqlite"`
	File    string `mapstructure:"file" json:"file"`
	Slot    string `mapstructure:"slot" json:"slot" validate:"required,max=64"`
}

// LogConfig holds zerolog settings.
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level" validate:"oneof=debug info warn error disabled"`
	Output string `mapstructure:"output" json:"output" validate:"oneof=file stderr stdout"`
	File   string `mapstructure:"file" json:"file" validate:"required_if=Output file"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Seed      uint64 `mapstructure:"seed" json:"seed"`
	AltScreen bool   `mapstructure:"alt_screen" json:"alt_screen"`
	Mouse     bool   `mapstructure:"mouse" json:"mouse"`
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"backend":   "store.backend",
	"slot":      "store.slot",
	"log-level": "log.level",
	"seed":      "ui.seed",
}

// Path returns the config file location: explicit, then $LEMONADE_CONFIG,
// then ~/.config/lemonade/config.toml.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv("LEMONADE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "lemonade", "config.toml")
}

// Load reads configuration from file, env and flags, in increasing order of
// precedence. Env var overrides use prefix LEMONADE_. flags may be nil.
func Load(explicitPath string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path(explicitPath))

	v.SetEnvPrefix("LEMONADE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, errors.Wrapf(err, "bind flag %s", name)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return Config{}, errors.Wrap(err, "read config")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Default returns the configuration used when no file, env or flag is set.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

func setDefaults(v *viper.Viper) {
	home := os.Getenv("HOME")
	v.SetDefault("store.backend", "sqlite")
	v.SetDefault("store.path", filepath.Join(home, ".local", "share", "lemonade", "lemonade.db"))
	v.SetDefault("store.file", "")
	v.SetDefault("store.slot", "default")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "file")
	v.SetDefault("log.file", filepath.Join(home, ".local", "state", "lemonade", "lemonade.log"))
	v.SetDefault("ui.seed", 0)
	v.SetDefault("ui.alt_screen", true)
	v.SetDefault("ui.mouse", true)
}

func isNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, os.ErrNotExist)
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

// Save writes the provided config to path (see Path), creating the config
// directory if needed.
func Save(explicitPath string, cfg Config) error {
	path := Path(explicitPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "mkdir config dir")
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("store.backend", cfg.Store.Backend)
	v.Set("store.path", cfg.Store.Path)
	v.Set("store.file", cfg.Store.File)
	v.Set("store.slot", cfg.Store.Slot)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.output", cfg.Log.Output)
	v.Set("log.file", cfg.Log.File)
	v.Set("ui.seed", cfg.UI.Seed)
	v.Set("ui.alt_screen", cfg.UI.AltScreen)
	v.Set("ui.mouse", cfg.UI.Mouse)

	if err := v.WriteConfigAs(path); err != nil {
		return errors.Wrap(err, "write config")
	}
	return nil
}
