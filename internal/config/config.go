// Package config loads assistant settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Storage drivers.
const (
	StorageSQLite = "sqlite"
	StorageYAML   = "yaml"
)

// Config holds the assistant's runtime settings.
type Config struct {
	Storage  string `env:"ADDRESSBOOK_STORAGE"   envDefault:"sqlite"`
	DBPath   string `env:"ADDRESSBOOK_DB_PATH"   envDefault:"./data/contacts.db"`
	YAMLPath string `env:"ADDRESSBOOK_YAML_PATH" envDefault:"./data/contacts.yaml"`

	// BirthdayWindow is how many days ahead the birthdays command looks.
	BirthdayWindow int `env:"ADDRESSBOOK_BIRTHDAY_WINDOW" envDefault:"7"`

	// MetricsAddr enables the Prometheus endpoint when non-empty, e.g. ":9090".
	MetricsAddr string `env:"ADDRESSBOOK_METRICS_ADDR"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config. It does not validate, so
// values can still be overridden (e.g. by flags) before calling Validate.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	switch c.Storage {
	case StorageSQLite, StorageYAML:
	default:
		return fmt.Errorf("unknown storage %q (want %s or %s)", c.Storage, StorageSQLite, StorageYAML)
	}
	if c.BirthdayWindow < 0 {
		return fmt.Errorf("birthday window must not be negative, got %d", c.BirthdayWindow)
	}
	return nil
}
