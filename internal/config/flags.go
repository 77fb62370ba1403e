package config

import (
	"github.com/spf13/pflag"
)

// flagBindings maps CLI flags to config fields.
var flagBindings = []struct {
	name  string
	field string
}{
	{"dir", FieldTasksDir},
	{"pattern", FieldPattern},
	{"format", FieldFormat},
	{"lock", FieldLock},
	{"log-level", FieldLogLevel},
	{"log-format", FieldLogFormat},
	{"log-timestamps", FieldLogTimestamps},
}

// RegisterFlags defines the configuration flags on fs. Defaults shown in
// help are the built-in defaults; only flags the user sets override other
// sources.
func RegisterFlags(fs *pflag.FlagSet) {
	defaults := &Config{}
	setDefaults(defaults)

	fs.StringP("dir", "d", defaults.TasksDir, "Tasks directory")
	fs.String("pattern", defaults.Pattern, "Glob matching task files inside the tasks directory")
	fs.String("format", defaults.Format, "Format for new task files (json or yaml)")
	fs.Bool("lock", defaults.Lock, "Take an advisory lock while writing")
	fs.String("log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")
	fs.String("log-format", defaults.LogFormat, "Log format (text, json, logfmt)")
	fs.Bool("log-timestamps", defaults.LogTimestamps, "Include timestamps in log output")
}

// applyFlags copies explicitly set flags into cfg.
func applyFlags(cfg *Config, fs *pflag.FlagSet, sources map[string]ConfigSource) error {
	if fs == nil {
		return nil
	}
	for _, b := range flagBindings {
		f := fs.Lookup(b.name)
		if f == nil || !f.Changed {
			continue
		}
		setField(cfg, b.field, f.Value.String())
		if sources != nil {
			sources[b.field] = SourceFlag
		}
	}
	return nil
}
