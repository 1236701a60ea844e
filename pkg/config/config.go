// Package config loads and validates the dlstore CLI configuration.
//
// Configuration sources (in order of precedence):
//  1. CLI flags (highest priority, applied by the caller)
//  2. Environment variables (DLSTORE_*)
//  3. Configuration file (YAML)
//  4. Default values (lowest priority)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete dlstore configuration.
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging"`

	// Service describes the filesystem endpoint and its credentials
	Service ServiceConfig `mapstructure:"service"`

	// Journal configures continuation-token persistence for resumable
	// delete and rename operations
	Journal JournalConfig `mapstructure:"journal"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`

	// File mirrors log output to a rotating file when non-empty
	File string `mapstructure:"file"`

	// MaxSizeMB is the rotation threshold of the log file
	MaxSizeMB int `mapstructure:"max_size_mb" validate:"gte=0"`

	// MaxBackups is the number of rotated files to keep
	MaxBackups int `mapstructure:"max_backups" validate:"gte=0"`
}

// ServiceConfig describes the target filesystem endpoint.
type ServiceConfig struct {
	// URL is the base URL of the filesystem, e.g.
	// "https://account.dls.example.net/myfs"
	URL string `mapstructure:"url" validate:"required,url"`

	// Auth selects and configures the credential scheme
	Auth AuthConfig `mapstructure:"auth"`
}

// AuthConfig selects the credential scheme. The scheme-specific section
// matching Type is decoded by the factory; the others are ignored.
type AuthConfig struct {
	// Type is the credential scheme
	// Valid values: none, bearer
	Type string `mapstructure:"type" validate:"required,oneof=none bearer"`

	// Bearer holds bearer-token settings (used when Type is "bearer")
	Bearer map[string]any `mapstructure:"bearer"`
}

// JournalConfig configures continuation-token persistence.
type JournalConfig struct {
	// Enabled turns journaling of multi-step operations on
	Enabled bool `mapstructure:"enabled"`

	// Dir is the directory holding the journal database
	Dir string `mapstructure:"dir" validate:"required_if=Enabled true"`
}

// Load reads, defaults, and validates the configuration.
//
// Parameters:
//   - configPath: Path to config file (empty string uses default location)
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: Configuration loading or validation error
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setupViper configures viper with environment variables and config file settings.
func setupViper(v *viper.Viper, configPath string) {
	// Environment variables use the DLSTORE_ prefix and underscores.
	// Example: DLSTORE_SERVICE_URL=https://host/fs
	v.SetEnvPrefix("DLSTORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists.
func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is acceptable: defaults plus environment
		// variables may be a complete configuration.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// getConfigDir returns the configuration directory path.
//
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config, or falls back to the
// current directory if the home directory cannot be determined.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "dlstore")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "dlstore")
}
