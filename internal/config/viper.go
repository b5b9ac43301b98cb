// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Data struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"data" yaml:"data"`

	Storage struct {
		Backend    string `mapstructure:"backend" yaml:"backend"`
		Slot       string `mapstructure:"slot" yaml:"slot"`
		SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	} `mapstructure:"storage" yaml:"storage"`

	Report struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"report" yaml:"report"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.financial-tracker")
	v.AddConfigPath(".financial-tracker")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("FINTRACK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
		// Config file not found or invalid is OK, we'll use defaults and env vars
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")

	// Data defaults
	v.SetDefault("data.directory", "")

	// Storage defaults
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.slot", "default")
	v.SetDefault("storage.sqlite_path", "")

	// Report defaults
	v.SetDefault("report.format", "text")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate CSV delimiter
	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	// Validate storage backend
	if config.Storage.Backend != "file" && config.Storage.Backend != "sqlite" {
		return fmt.Errorf("invalid storage backend: %s (must be 'file' or 'sqlite')", config.Storage.Backend)
	}

	// Validate slot name
	if config.Storage.Slot == "" {
		return fmt.Errorf("storage slot name must not be empty")
	}

	// Validate report format
	if config.Report.Format != "text" && config.Report.Format != "json" {
		return fmt.Errorf("invalid report format: %s (must be 'text' or 'json')", config.Report.Format)
	}

	return nil
}

// ResolveDataDir returns the configured data directory, falling back to
// ~/.financial-tracker when none is set.
func (c *Config) ResolveDataDir() string {
	if c.Data.Directory != "" {
		return c.Data.Directory
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(home, ".financial-tracker")
}

// ResolveSQLitePath returns the configured SQLite database path, defaulting
// to financial-tracker.db inside the data directory.
func (c *Config) ResolveSQLitePath() string {
	if c.Storage.SQLitePath != "" {
		return c.Storage.SQLitePath
	}
	return filepath.Join(c.ResolveDataDir(), "financial-tracker.db")
}

// ResolveTaxProfilesPath returns the path of the tax profiles YAML file
// inside the data directory.
func (c *Config) ResolveTaxProfilesPath() string {
	return filepath.Join(c.ResolveDataDir(), "taxprofiles.yaml")
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	// Parse and set log level
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Configure log format
	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
