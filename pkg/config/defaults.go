package config

import "strings"

// GetDefaultConfig returns a configuration populated with every default
// value. The service URL has no sensible default and stays empty.
func GetDefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "INFO",
			MaxSizeMB:  64,
			MaxBackups: 3,
		},
		Service: ServiceConfig{
			Auth: AuthConfig{Type: "none"},
		},
		Journal: JournalConfig{
			Enabled: false,
		},
	}
}

// ApplyDefaults fills in any missing values and normalizes the log level to
// uppercase.
func ApplyDefaults(cfg *Config) {
	defaults := GetDefaultConfig()

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)

	if cfg.Logging.MaxSizeMB == 0 {
		cfg.Logging.MaxSizeMB = defaults.Logging.MaxSizeMB
	}
	if cfg.Logging.MaxBackups == 0 {
		cfg.Logging.MaxBackups = defaults.Logging.MaxBackups
	}
	if cfg.Service.Auth.Type == "" {
		cfg.Service.Auth.Type = defaults.Service.Auth.Type
	}
}
