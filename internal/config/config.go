// Package config handles configuration loading and defaults.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultTasksFile    = "tasks.json"
	DefaultExportDir    = "."
	DefaultExportFormat = "markdown"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// Config holds the full configuration for taskdeck.
type Config struct {
	// Paths
	TasksFile string `toml:"tasks_file"`
	ExportDir string `toml:"export_dir"`

	// Export
	ExportFormat string `toml:"export_format"`

	// Logging
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`

	// Output
	NoColor bool `toml:"no_color"`
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.taskdeck/taskdeck.toml or OS-specific config dir)
// 3. Project config file (taskdeck.toml or .taskdeck.toml in current directory)
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if userFile := findUserConfigFile(); userFile != "" {
		if err := loadConfigFile(cfg, userFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userFile, err)
		}
	}
	if projFile := findProjectConfigFile(); projFile != "" {
		if err := loadConfigFile(cfg, projFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projFile, err)
		}
	}

	loadFromEnv(cfg)

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	finalize(cfg)
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.TasksFile = DefaultTasksFile
	cfg.ExportDir = DefaultExportDir
	cfg.ExportFormat = DefaultExportFormat
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// findUserConfigFile returns the user-level config path, or "" if absent.
func findUserConfigFile() string {
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".taskdeck", "taskdeck.toml")
		if fileExists(p) {
			return p
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(dir, "taskdeck", "taskdeck.toml")
		if fileExists(p) {
			return p
		}
	}
	return ""
}

// findProjectConfigFile returns the project-level config path, or "" if absent.
func findProjectConfigFile() string {
	for _, name := range []string{"taskdeck.toml", ".taskdeck.toml"} {
		if fileExists(name) {
			return name
		}
	}
	return ""
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

// loadFromEnv overrides config from TASKDECK_* environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKDECK_TASKS"); v != "" {
		cfg.TasksFile = v
	}
	if v := os.Getenv("TASKDECK_EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}
	if v := os.Getenv("TASKDECK_EXPORT_FORMAT"); v != "" {
		cfg.ExportFormat = v
	}
	if v := os.Getenv("TASKDECK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TASKDECK_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TASKDECK_NO_COLOR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.NoColor = b
		}
	}
}

// parseFlags registers CLI flags on fs and parses args. Flags override
// every other source.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	fs.StringVar(&cfg.TasksFile, "tasks-file", cfg.TasksFile, "Path to the tasks file")
	fs.StringVar(&cfg.ExportDir, "export-dir", cfg.ExportDir, "Directory for exported documents")
	fs.StringVar(&cfg.ExportFormat, "export-format", cfg.ExportFormat, "Default export format (markdown|pdf)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output")
	return fs.Parse(args)
}

// finalize expands "~" in path fields.
func finalize(cfg *Config) {
	cfg.TasksFile = expandTilde(cfg.TasksFile)
	cfg.ExportDir = expandTilde(cfg.ExportDir)
}

func expandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
