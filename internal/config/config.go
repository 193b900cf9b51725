// Package config reads ~/.hrdash/config.toml and the environment overrides
// layered on top of it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/hrdash/hrdash/internal/mail"
	"github.com/hrdash/hrdash/internal/records"
)

// Environment variables that override file settings.
const (
	EnvHome          = "HRDASH_HOME"
	EnvProfile       = "HRDASH_PROFILE"
	EnvMongoURI      = "HRDASH_MONGO_URI"
	EnvMongoDatabase = "HRDASH_MONGO_DATABASE"
)

// Config represents the global ~/.hrdash/config.toml.
type Config struct {
	DefaultProfile string  `toml:"default_profile"`
	Store          Store   `toml:"store"`
	Display        Display `toml:"display"`
	Mail           Mail    `toml:"mail"`
}

type Store struct {
	Backend       string `toml:"backend"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

type Display struct {
	Layout   string `toml:"layout"`
	Timezone string `toml:"timezone"`
}

type Mail struct {
	Subject string `toml:"subject"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Store:   Store{Backend: "sqlite", MongoDatabase: "hrdash"},
		Display: Display{Layout: records.DefaultDisplayLayout},
		Mail:    Mail{Subject: mail.DefaultSubject},
	}
}

// Load reads config from the given path. Returns nil and an error if the
// file is missing or malformed. Unset keys keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}

// LoadDotEnv loads each existing .env file into the process environment.
// Variables already set are not overwritten, so earlier files win.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overlays HRDASH_MONGO_* variables onto the store settings.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvMongoURI); v != "" {
		c.Store.MongoURI = v
	}
	if v := os.Getenv(EnvMongoDatabase); v != "" {
		c.Store.MongoDatabase = v
	}
}

// Formatter builds the display formatter for the configured layout and zone.
func (c *Config) Formatter() (records.Formatter, error) {
	return records.NewFormatter(c.Display.Layout, c.Display.Timezone)
}

// Validate rejects settings the daemon cannot act on.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "", "sqlite":
	case "mongo":
		if c.Store.MongoURI == "" {
			return fmt.Errorf("store backend mongo requires mongo_uri or %s", EnvMongoURI)
		}
		if c.Store.MongoDatabase == "" {
			return errors.New("store backend mongo requires mongo_database")
		}
	default:
		return fmt.Errorf("unknown store backend %q: want sqlite or mongo", c.Store.Backend)
	}
	return nil
}
