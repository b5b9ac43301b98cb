// Package logging provides the shared logger used across the application.
// Packages that keep their own logger expose a SetLogger function so the
// root command can point them all at this one.
package logging

import (
	"github.com/sirupsen/logrus"
)

var shared = newDefault()

func newDefault() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}

// GetLogger returns the shared logger instance.
func GetLogger() *logrus.Logger {
	return shared
}

// SetAllLogLevels applies the given level to the shared logger.
// Invalid levels fall back to info.
func SetAllLogLevels(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		shared.Warnf("Invalid log level '%s', using 'info'", level)
		parsed = logrus.InfoLevel
	}
	shared.SetLevel(parsed)
}

// SetFormat switches the shared logger between text and json output.
func SetFormat(format string) {
	if format == "json" {
		shared.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	shared.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}
