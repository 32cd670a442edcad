// Package config loads slidepane configuration from file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Panels PanelsConfig `mapstructure:"panels"`
	Anim   AnimConfig   `mapstructure:"anim"`
	Shell  ShellConfig  `mapstructure:"shell"`
}

// PanelsConfig holds the side-pane reveal offsets, in columns of the main
// pane left on screen when a side pane opens.
type PanelsConfig struct {
	LeftOffset  float64 `mapstructure:"left_offset"`
	RightOffset float64 `mapstructure:"right_offset"`
}

// AnimConfig holds transition timing settings.
type AnimConfig struct {
	FPS        int     `mapstructure:"fps"`
	DurationMS int     `mapstructure:"duration_ms"`
	Damping    float64 `mapstructure:"damping"`
}

// Duration returns the configured transition duration.
func (a AnimConfig) Duration() time.Duration {
	return time.Duration(a.DurationMS) * time.Millisecond
}

// ShellConfig holds the command spawned in the main pane.
type ShellConfig struct {
	Command string `mapstructure:"command"`
}

// Load reads configuration from file and env. The file is
// $SLIDEPANE_CONFIG or ~/.config/slidepane/config.toml; env var overrides
// use prefix SLIDEPANE_ (e.g. SLIDEPANE_PANELS_LEFT_OFFSET).
func Load() (Config, error) {
	v := viper.New()

	shellDefault := os.Getenv("SHELL")
	if shellDefault == "" {
		shellDefault = "sh"
	}

	// default values
	v.SetDefault("panels.left_offset", 150.0)
	v.SetDefault("panels.right_offset", 150.0)
	v.SetDefault("anim.fps", 60)
	v.SetDefault("anim.duration_ms", 500)
	v.SetDefault("anim.damping", 0.8)
	v.SetDefault("shell.command", shellDefault)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SLIDEPANE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "slidepane"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SLIDEPANE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.Panels.LeftOffset < 0 || c.Panels.RightOffset < 0 {
		return fmt.Errorf("config: offsets must be non-negative (%v, %v)",
			c.Panels.LeftOffset, c.Panels.RightOffset)
	}
	if c.Anim.FPS <= 0 {
		return fmt.Errorf("config: fps must be positive (%d)", c.Anim.FPS)
	}
	if c.Anim.DurationMS < 0 {
		return fmt.Errorf("config: duration_ms must be non-negative (%d)", c.Anim.DurationMS)
	}
	if c.Anim.Damping < 0 || c.Anim.Damping > 1 {
		return fmt.Errorf("config: damping must be in [0,1] (%v)", c.Anim.Damping)
	}
	if c.Shell.Command == "" {
		return fmt.Errorf("config: shell command must not be empty")
	}
	return nil
}
