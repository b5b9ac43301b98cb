package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	// Clear any existing environment variables
	clearTestEnvVars(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	// Test default values
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, "", config.Data.Directory)
	assert.Equal(t, "file", config.Storage.Backend)
	assert.Equal(t, "default", config.Storage.Slot)
	assert.Equal(t, "", config.Storage.SQLitePath)
	assert.Equal(t, "text", config.Report.Format)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	// Clear any existing environment variables
	clearTestEnvVars(t)

	// Set test environment variables
	testEnvVars := map[string]string{
		"FINTRACK_LOG_LEVEL":       "debug",
		"FINTRACK_LOG_FORMAT":      "json",
		"FINTRACK_CSV_DELIMITER":   ";",
		"FINTRACK_STORAGE_BACKEND": "sqlite",
		"FINTRACK_STORAGE_SLOT":    "scratch",
		"FINTRACK_REPORT_FORMAT":   "json",
	}

	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	// Test environment variable overrides
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, "sqlite", config.Storage.Backend)
	assert.Equal(t, "scratch", config.Storage.Slot)
	assert.Equal(t, "json", config.Report.Format)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	// Clear any existing environment variables
	clearTestEnvVars(t)

	// Create temporary config file
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
log:
  level: "warn"
  format: "json"
csv:
  delimiter: "|"
storage:
  backend: "sqlite"
  slot: "household"
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	require.NoError(t, err)

	// Change to temp directory so config file is found
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		err := os.Chdir(originalDir)
		require.NoError(t, err)
	}()

	err = os.Chdir(tempDir)
	require.NoError(t, err)

	config, err := InitializeConfig()
	require.NoError(t, err)

	// Test config file values
	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, "sqlite", config.Storage.Backend)
	assert.Equal(t, "household", config.Storage.Slot)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	// Clear any existing environment variables
	clearTestEnvVars(t)

	// Create temporary config file
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
log:
  level: "warn"
csv:
  delimiter: "|"
storage:
  slot: "household"
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	require.NoError(t, err)

	// Set environment variables that should override config file
	t.Setenv("FINTRACK_LOG_LEVEL", "error")
	t.Setenv("FINTRACK_STORAGE_SLOT", "scratch")

	// Change to temp directory
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		err := os.Chdir(originalDir)
		require.NoError(t, err)
	}()

	err = os.Chdir(tempDir)
	require.NoError(t, err)

	config, err := InitializeConfig()
	require.NoError(t, err)

	// Test precedence: env vars override the config file, config file values
	// without an env override survive
	assert.Equal(t, "error", config.Log.Level)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, "scratch", config.Storage.Slot)
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name: "invalid log level",
			modifyConfig: func(c *Config) {
				c.Log.Level = "invalid"
			},
			expectError: "invalid log level",
		},
		{
			name: "invalid log format",
			modifyConfig: func(c *Config) {
				c.Log.Format = "invalid"
			},
			expectError: "invalid log format",
		},
		{
			name: "invalid CSV delimiter",
			modifyConfig: func(c *Config) {
				c.CSV.Delimiter = "abc"
			},
			expectError: "CSV delimiter must be a single character",
		},
		{
			name: "invalid storage backend",
			modifyConfig: func(c *Config) {
				c.Storage.Backend = "redis"
			},
			expectError: "invalid storage backend",
		},
		{
			name: "empty slot name",
			modifyConfig: func(c *Config) {
				c.Storage.Slot = ""
			},
			expectError: "storage slot name must not be empty",
		},
		{
			name: "invalid report format",
			modifyConfig: func(c *Config) {
				c.Report.Format = "xml"
			},
			expectError: "invalid report format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearTestEnvVars(t)
			config, err := InitializeConfig()
			require.NoError(t, err)

			tt.modifyConfig(config)
			err = validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestResolvePaths(t *testing.T) {
	clearTestEnvVars(t)
	config, err := InitializeConfig()
	require.NoError(t, err)

	t.Run("explicit data directory", func(t *testing.T) {
		config.Data.Directory = "/tmp/tracker-data"
		assert.Equal(t, "/tmp/tracker-data", config.ResolveDataDir())
		assert.Equal(t, filepath.Join("/tmp/tracker-data", "financial-tracker.db"), config.ResolveSQLitePath())
		assert.Equal(t, filepath.Join("/tmp/tracker-data", "taxprofiles.yaml"), config.ResolveTaxProfilesPath())
	})

	t.Run("default data directory under home", func(t *testing.T) {
		config.Data.Directory = ""
		home, err := os.UserHomeDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".financial-tracker"), config.ResolveDataDir())
	})

	t.Run("explicit sqlite path wins", func(t *testing.T) {
		config.Storage.SQLitePath = "/tmp/custom.db"
		assert.Equal(t, "/tmp/custom.db", config.ResolveSQLitePath())
	})
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	clearTestEnvVars(t)

	t.Run("text format info level", func(t *testing.T) {
		config, err := InitializeConfig()
		require.NoError(t, err)

		logger := ConfigureLoggingFromConfig(config)
		require.NotNil(t, logger)
		assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
		assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
	})

	t.Run("json format debug level", func(t *testing.T) {
		config, err := InitializeConfig()
		require.NoError(t, err)
		config.Log.Level = "debug"
		config.Log.Format = "json"

		logger := ConfigureLoggingFromConfig(config)
		require.NotNil(t, logger)
		assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
		assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
	})
}

// Helper function to clear test environment variables
func clearTestEnvVars(t *testing.T) {
	envVars := []string{
		"FINTRACK_LOG_LEVEL",
		"FINTRACK_LOG_FORMAT",
		"FINTRACK_CSV_DELIMITER",
		"FINTRACK_DATA_DIRECTORY",
		"FINTRACK_STORAGE_BACKEND",
		"FINTRACK_STORAGE_SLOT",
		"FINTRACK_STORAGE_SQLITE_PATH",
		"FINTRACK_REPORT_FORMAT",
	}

	for _, envVar := range envVars {
		if err := os.Unsetenv(envVar); err != nil {
			// Log warning but continue - this is test cleanup
			fmt.Printf("Warning: failed to unset environment variable %s: %v\n", envVar, err)
		}
	}
}
