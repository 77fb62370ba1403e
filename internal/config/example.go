package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tickler configuration file
# Values can be overridden by TICKLER_* environment variables or CLI flags

# Tasks directory (relative paths are relative to this file; ~ is expanded)
tasks_dir = "tasks"

# Glob selecting task files inside the tasks directory (supports ** and {a,b})
pattern = "*.{json,yaml,yml}"

# Format for newly created task files: json or yaml
format = "json"

# Take an advisory lock while writing task files
lock = true

# Diagnostic logging (written to stderr)
log_level = "warn"       # debug, info, warn, error
log_format = "text"      # text, json, logfmt
log_timestamps = false
`
}
