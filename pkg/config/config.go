// Package config loads the service configuration from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mchmarny/currentmenu/pkg/logger"
	"github.com/mchmarny/currentmenu/pkg/menu"
	"github.com/mchmarny/currentmenu/pkg/render"
	"github.com/mchmarny/currentmenu/pkg/server"
)

// EnvPrefix prefixes environment overrides, e.g. CURRENTMENU_SERVER_PORT.
const EnvPrefix = "CURRENTMENU"

// Config is the complete service configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Store  StoreConfig  `mapstructure:"store"`
	Render RenderConfig `mapstructure:"render"`
	Menus  MenusConfig  `mapstructure:"menus"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig selects the menu data source. Exactly one of File and RedisURL is set.
type StoreConfig struct {
	File        string `mapstructure:"file"`
	RedisURL    string `mapstructure:"redis_url"`
	RedisPrefix string `mapstructure:"redis_prefix"`
}

// RenderConfig contains list rendering settings.
type RenderConfig struct {
	Depth int    `mapstructure:"depth"`
	Class string `mapstructure:"class"`
}

// MenusConfig controls which menus the editor offers.
type MenusConfig struct {
	Hidden []int64 `mapstructure:"hidden"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"port":      "server.port",
	"file":      "store.file",
	"redis-url": "store.redis_url",
	"log-level": "log.level",
}

// Load reads configuration from cfgFile (optional), the environment and flags,
// in increasing order of precedence.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".currentmenu")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/currentmenu")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", server.DefaultPort)
	v.SetDefault("server.shutdown_timeout", server.DefaultShutdownTimeout)
	v.SetDefault("store.redis_prefix", "currentmenu")
	v.SetDefault("render.depth", render.Unlimited)
	v.SetDefault("render.class", "wp-block-current-menu")
	v.SetDefault("menus.hidden", []int64{})

	level := os.Getenv(logger.EnvVarLogLevel)
	if level == "" {
		level = "info"
	}
	v.SetDefault("log.level", level)
}

// Validate checks the configuration for conflicting or missing settings.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}

	switch {
	case c.Store.File == "" && c.Store.RedisURL == "":
		return errors.New("either store.file or store.redis_url is required")
	case c.Store.File != "" && c.Store.RedisURL != "":
		return errors.New("store.file and store.redis_url are mutually exclusive")
	}

	if c.Render.Depth < render.Flat {
		return fmt.Errorf("invalid render depth %d", c.Render.Depth)
	}

	return nil
}

// MenuFilter returns a filter dropping the hidden menus, or nil when none are hidden.
func (c *Config) MenuFilter() func([]menu.Menu) []menu.Menu {
	if len(c.Menus.Hidden) == 0 {
		return nil
	}

	hidden := slices.Clone(c.Menus.Hidden)

	return func(menus []menu.Menu) []menu.Menu {
		return slices.DeleteFunc(slices.Clone(menus), func(m menu.Menu) bool {
			return slices.Contains(hidden, m.ID)
		})
	}
}
