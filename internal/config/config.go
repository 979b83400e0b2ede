// Package config owns the on-disk configuration: general options and the
// mode table with its key bindings. The engine never parses this itself; it
// receives the table fully formed at startup and only looks modes up by
// name.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"ferret/internal/msg"
)

// Version of the running build. A configuration file declaring a different
// version aborts startup before any session exists.
const Version = "v0.4.2"

// Action is an ordered list of commands bound to one resolution tier.
type Action struct {
	Help     string         `yaml:"help,omitempty"`
	Messages []msg.External `yaml:"messages"`
}

// KeyBindings holds the five resolution tiers of a mode: exact key, then
// the alphabet/number/special-character fallbacks, then the mode default.
type KeyBindings struct {
	OnKey              map[string]Action `yaml:"on_key"`
	OnAlphabet         *Action           `yaml:"on_alphabet"`
	OnNumber           *Action           `yaml:"on_number"`
	OnSpecialCharacter *Action           `yaml:"on_special_character"`
	Default            *Action           `yaml:"default"`
}

// Mode is a named key-binding table, swappable at runtime via SwitchMode.
type Mode struct {
	Name        string      `yaml:"name"`
	KeyBindings KeyBindings `yaml:"key_bindings"`
}

type General struct {
	ShowHidden bool `yaml:"show_hidden"`
}

type Config struct {
	Version string          `yaml:"version"`
	General General         `yaml:"general"`
	Modes   map[string]Mode `yaml:"modes"`
}

// Load reads the configuration from the default location
// (~/.config/ferret/config.yml).
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFile(filepath.Join(home, ".config", "ferret", "config.yml"))
}

// LoadFile loads configuration from a specific path. A missing file yields
// the defaults; a present file must declare the running version.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if loaded.Version != Version {
		return nil, fmt.Errorf(
			"incompatible configuration version in %s: config version is %s, required version is %s",
			path, loaded.Version, Version,
		)
	}

	cfg.General = loaded.General
	if len(loaded.Modes) > 0 {
		cfg.Modes = loaded.Modes
	}

	return cfg, nil
}

// Mode returns the named mode from the table.
func (c *Config) Mode(name string) (Mode, bool) {
	m, ok := c.Modes[name]
	return m, ok
}
