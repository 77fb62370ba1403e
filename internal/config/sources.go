package config

import (
	"strings"

	"github.com/nibzard/tickler/internal/store"
)

// Field names used for source tracking. They match the TOML keys.
const (
	FieldTasksDir      = "tasks_dir"
	FieldPattern       = "pattern"
	FieldFormat        = "format"
	FieldLock          = "lock"
	FieldLogLevel      = "log_level"
	FieldLogFormat     = "log_format"
	FieldLogTimestamps = "log_timestamps"
)

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		FieldTasksDir,
		FieldPattern,
		FieldFormat,
		FieldLock,
		FieldLogLevel,
		FieldLogFormat,
		FieldLogTimestamps,
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TasksDir = DefaultTasksDir
	cfg.Pattern = store.DefaultPattern
	cfg.Format = DefaultFormat
	cfg.Lock = DefaultLock
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
}

// Value returns the string form of a field, for display.
func (c *Config) Value(field string) string {
	switch field {
	case FieldTasksDir:
		return c.TasksDir
	case FieldPattern:
		return c.Pattern
	case FieldFormat:
		return c.Format
	case FieldLock:
		return formatBool(c.Lock)
	case FieldLogLevel:
		return c.LogLevel
	case FieldLogFormat:
		return c.LogFormat
	case FieldLogTimestamps:
		return formatBool(c.LogTimestamps)
	}
	return ""
}

// Fields returns the configurable field names in display order.
func Fields() []string {
	return configFields()
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
