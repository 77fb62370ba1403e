package config

import (
	"fmt"

	"github.com/nibzard/tickler/internal/logging"
	"github.com/nibzard/tickler/internal/store"
	"github.com/nibzard/tickler/internal/task"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultTasksDir  = "tasks"
	DefaultFormat    = "json"
	DefaultLock      = true
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for tickler.
type Config struct {
	// Paths
	TasksDir string `toml:"tasks_dir"`
	Pattern  string `toml:"pattern"`

	// Documents
	Format string `toml:"format"`
	Lock   bool   `toml:"lock"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
}

// StoreOptions translates the config into store options.
func (c *Config) StoreOptions() ([]store.Option, error) {
	format, err := task.ParseFormat(c.Format)
	if err != nil {
		return nil, err
	}
	return []store.Option{
		store.WithPattern(c.Pattern),
		store.WithFormat(format),
		store.WithLocking(c.Lock),
	}, nil
}

// Validate checks values that cannot be checked by the TOML decoder.
func (c *Config) Validate() error {
	if c.TasksDir == "" {
		return fmt.Errorf("tasks_dir cannot be empty")
	}
	if _, err := task.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("log_level: unknown level %q, must be one of: debug, info, warn, error, fatal", c.LogLevel)
	}
	if !logging.ValidFormatter(c.LogFormat) {
		return fmt.Errorf("log_format: unknown format %q, must be one of: text, json, logfmt", c.LogFormat)
	}
	return nil
}
