// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for circles configuration.
	DefaultConfigDir = ".circles"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultDatabaseFile is the default event store file name.
	DefaultDatabaseFile = "circles.db"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	Store    StoreConfig    `yaml:"store,omitempty"`
	Display  DisplayConfig  `yaml:"display,omitempty"`
	Log      LogConfig      `yaml:"log,omitempty"`
	Taxonomy TaxonomyConfig `yaml:"taxonomy,omitempty"`
}

// StoreConfig holds configuration for the SQLite event store.
type StoreConfig struct {
	// Path is the file path to the SQLite database. Relative paths are
	// resolved against the directory holding .circles.
	Path string `yaml:"path,omitempty"`
}

// DisplayConfig holds presentation settings.
type DisplayConfig struct {
	Locale string `yaml:"locale,omitempty"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string `yaml:"level,omitempty"`
	Development bool   `yaml:"development,omitempty"`
}

// TaxonomyConfig holds product-level taxonomy additions.
type TaxonomyConfig struct {
	// Aliases maps extra legacy keys or labels to canonical category keys.
	Aliases map[string]string `yaml:"aliases,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Path: filepath.Join(DefaultConfigDir, DefaultDatabaseFile),
		},
		Display: DisplayConfig{
			Locale: "en",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the .circles directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'circles init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	cfg.applyEnvOverrides()

	return cfg, nil
}

// LoadOrDefault loads the configuration if it exists and falls back to
// defaults (with environment overrides) otherwise.
func LoadOrDefault(basePath string) (*Config, error) {
	if !Exists(basePath) {
		cfg := Default()
		cfg.applyEnvOverrides()
		return cfg, nil
	}
	return Load(basePath)
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("CIRCLES_DB_PATH"); path != "" {
		c.Store.Path = path
	}
	if locale := os.Getenv("CIRCLES_LOCALE"); locale != "" {
		c.Display.Locale = strings.ToLower(locale)
	}
	if level := os.Getenv("CIRCLES_LOG_LEVEL"); level != "" {
		c.Log.Level = strings.ToLower(level)
	}
}

// DatabasePath returns the absolute event store path for basePath.
func (c *Config) DatabasePath(basePath string) string {
	if c.Store.Path == ":memory:" || filepath.IsAbs(c.Store.Path) {
		return c.Store.Path
	}
	return filepath.Join(basePath, c.Store.Path)
}

// ConfigDir returns the path to the .circles config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// Exists checks if a circles config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
