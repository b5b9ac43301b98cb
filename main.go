package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Te4g/financial-tracker/cmd/add"
	"github.com/Te4g/financial-tracker/cmd/backup"
	"github.com/Te4g/financial-tracker/cmd/export"
	"github.com/Te4g/financial-tracker/cmd/importcmd"
	"github.com/Te4g/financial-tracker/cmd/list"
	"github.com/Te4g/financial-tracker/cmd/profiles"
	"github.com/Te4g/financial-tracker/cmd/remove"
	"github.com/Te4g/financial-tracker/cmd/restore"
	"github.com/Te4g/financial-tracker/cmd/root"
	"github.com/Te4g/financial-tracker/cmd/summary"
	"github.com/Te4g/financial-tracker/cmd/update"
	"github.com/Te4g/financial-tracker/internal/logging"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// 2. Configure global log level directly - this affects ALL new loggers
	logLevel := configureLogLevelDirectly()

	// 3. Force this level on ALL existing and future loggers
	logging.SetAllLogLevels(logLevel.String())

	// 4. Now that logging is properly configured, initialize root command
	root.Init()

	// 5. Add all subcommands
	root.Cmd.AddCommand(add.Cmd)
	root.Cmd.AddCommand(list.Cmd)
	root.Cmd.AddCommand(remove.Cmd)
	root.Cmd.AddCommand(update.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(importcmd.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(backup.Cmd)
	root.Cmd.AddCommand(restore.Cmd)
	root.Cmd.AddCommand(profiles.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	// Try to find .env file in current directory
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		// Try to find .env in parent directory (project root)
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}

	// Load .env file silently without logging
	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly sets the global log level for all logrus instances
// and returns the configured level
func configureLogLevelDirectly() logrus.Level {
	// Get log level from environment variable
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info" // Default log level
	}

	// Parse the log level
	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		// Don't log here, just use default info level if we can't parse
		logLevel = logrus.InfoLevel
	}

	// This is critical: set the global logrus level BEFORE any logging happens
	// This affects ALL existing and future loggers
	logrus.SetLevel(logLevel)

	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
