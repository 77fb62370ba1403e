package config

import "os"

// envBindings maps environment variables to config fields.
var envBindings = []struct {
	name  string
	field string
}{
	{"TICKLER_DIR", FieldTasksDir},
	{"TICKLER_PATTERN", FieldPattern},
	{"TICKLER_FORMAT", FieldFormat},
	{"TICKLER_LOCK", FieldLock},
	{"TICKLER_LOG_LEVEL", FieldLogLevel},
	{"TICKLER_LOG_FORMAT", FieldLogFormat},
	{"TICKLER_LOG_TIMESTAMPS", FieldLogTimestamps},
}

// loadFromEnv overrides config from environment variables and records the
// source of every value it sets. sources may be nil.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	for _, b := range envBindings {
		v := os.Getenv(b.name)
		if v == "" {
			continue
		}
		setField(cfg, b.field, v)
		if sources != nil {
			sources[b.field] = SourceEnv
		}
	}
}

// setField assigns a string value to a field.
func setField(cfg *Config, field, v string) {
	switch field {
	case FieldTasksDir:
		cfg.TasksDir = v
	case FieldPattern:
		cfg.Pattern = v
	case FieldFormat:
		cfg.Format = v
	case FieldLock:
		cfg.Lock = boolFromString(v)
	case FieldLogLevel:
		cfg.LogLevel = v
	case FieldLogFormat:
		cfg.LogFormat = v
	case FieldLogTimestamps:
		cfg.LogTimestamps = boolFromString(v)
	}
}
