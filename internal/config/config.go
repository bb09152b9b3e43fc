// Package config loads the gitstate-go CLI configuration from the user
// config directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	appDir     = "gitstate-go"
	configFile = "config.toml"
)

// Config controls CLI presentation and watch behavior.
type Config struct {
	Color        bool `toml:"color"`
	WatchDelayMS int  `toml:"watch_delay_ms"`
	Verbose      bool `toml:"verbose"`
}

func Default() Config {
	return Config{Color: true, WatchDelayMS: 350}
}

// WatchDelay returns the configured debounce delay, or zero when unset so the
// watcher falls back to its own default.
func (c Config) WatchDelay() time.Duration {
	if c.WatchDelayMS <= 0 {
		return 0
	}
	return time.Duration(c.WatchDelayMS) * time.Millisecond
}

// Load reads the configuration file under the user config directory.
// A missing file yields the defaults.
func Load() (Config, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(filepath.Join(dir, appDir, configFile))
}

// LoadFile reads the configuration from an explicit path. A missing file
// yields the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
