package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Taskdeck configuration file
# Values can be overridden by TASKDECK_* environment variables or CLI flags

# Tasks file (relative to the working directory, supports ~ expansion)
tasks_file = "tasks.json"

# Directory exported documents are written to
export_dir = "."

# Default export format: markdown or pdf
export_format = "markdown"

# Log level: debug, info, warn, error
log_level = "info"

# Log format: text, json, logfmt
log_format = "text"

# Include timestamps in log output
log_timestamps = false

# Disable colored task listings
no_color = false
`
}
