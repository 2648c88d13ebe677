// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Package-level default logger is intentional
var defaultLogger = New("info")

// New creates a logger writing to stderr at the given level. Unknown
// level names fall back to info.
func New(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(parseLevel(level))
	return logger
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Default returns the package-level default logger.
func Default() *log.Logger {
	return defaultLogger
}

// SetDefault replaces the package-level default logger.
func SetDefault(logger *log.Logger) {
	if logger != nil {
		defaultLogger = logger
	}
}

// SetLevel updates the log level of the default logger.
func SetLevel(level string) {
	defaultLogger.SetLevel(parseLevel(level))
}
