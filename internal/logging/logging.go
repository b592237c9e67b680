// Package logging configures leveled console logging with charmbracelet/log.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/taskdeck/taskdeck/internal/config"
)

// New builds a console logger from the configuration.
func New(w io.Writer, cfg *config.Config) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(cfg.LogLevel),
		Formatter:       ParseFormatter(cfg.LogFormat),
		ReportTimestamp: cfg.LogTimestamps,
		Prefix:          "taskdeck",
	})
}

// ParseLevel parses a string log level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a string formatter name, defaulting to text.
func ParseFormatter(name string) log.Formatter {
	switch strings.ToLower(name) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
