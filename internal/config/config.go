// Package config loads dealflow's YAML configuration
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/thenoetrevino/dealflow/internal/config/colors"
	"gopkg.in/yaml.v3"
)

// Environment overrides, applied after the config file
const (
	EnvSeedPath   = "DEALFLOW_SEED"
	EnvSeedDriver = "DEALFLOW_SEED_DRIVER"
	EnvLogLevel   = "DEALFLOW_LOG_LEVEL"
	EnvLogFile    = "DEALFLOW_LOG_FILE"
	EnvThemeFile  = "DEALFLOW_THEME_FILE"
)

// DefaultUser is the user a new session starts as when nothing else is
// configured
const DefaultUser = "user123"

// Config represents the application configuration
type Config struct {
	Seed        SeedConfig         `yaml:"seed"`
	Session     SessionConfig      `yaml:"session"`
	Log         LogConfig          `yaml:"log"`
	ColorScheme colors.ColorScheme `yaml:"theme"`
}

// SeedConfig selects where the initial board comes from
type SeedConfig struct {
	// Driver is builtin, yaml or sqlite; empty infers it from Path
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// SessionConfig configures the acting user
type SessionConfig struct {
	DefaultUser string `yaml:"default_user"`
}

// LogConfig configures the slog handler
type LogConfig struct {
	// File is the log destination. Empty means ~/.dealflow/logs/dealflow.log,
	// "-" means stderr.
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// SlogLevel parses Level, falling back to info
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads config from the user's config directory.
// Returns default config if file doesn't exist.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		// Return default config if we can't determine config path
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}
	return LoadFrom(configPath)
}

// LoadFrom loads config from path. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the config to path, creating its directory
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Path returns the path Load reads
func Path() (string, error) {
	return getConfigPath()
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "dealflow", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "dealflow", "config.yaml"), nil
}

// applyEnv overrides file values with DEALFLOW_* environment variables
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvSeedPath); v != "" {
		c.Seed.Path = v
	}
	if v := os.Getenv(EnvSeedDriver); v != "" {
		c.Seed.Driver = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Log.File = v
	}
	loadThemeFile(c)
	c.applyNoColor()
}

// loadThemeFile merges the theme from DEALFLOW_THEME_FILE, if set and readable
func loadThemeFile(c *Config) {
	themeFile := os.Getenv(EnvThemeFile)
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme colors.ColorScheme `yaml:"theme"`
	}
	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		c.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Session.DefaultUser == "" {
		c.Session.DefaultUser = DefaultUser
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.ColorScheme.ApplyDefaults()
}
