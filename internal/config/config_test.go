// Package config tests configuration loading.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/nibzard/tickler/internal/store"
)

// isolate points HOME and XDG at empty temp dirs, clears TICKLER_* and
// moves into a fresh working directory.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, b := range envBindings {
		t.Setenv(b.name, "")
	}
	wd := t.TempDir()
	t.Chdir(wd)
	return home
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("tickler", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestDefaults(t *testing.T) {
	isolate(t)

	cws, err := LoadWithSources(nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	if cfg.TasksDir != DefaultTasksDir {
		t.Errorf("TasksDir: got %q, want %q", cfg.TasksDir, DefaultTasksDir)
	}
	if cfg.Pattern != store.DefaultPattern {
		t.Errorf("Pattern: got %q, want %q", cfg.Pattern, store.DefaultPattern)
	}
	if cfg.Format != "json" || !cfg.Lock || cfg.LogLevel != "warn" || cfg.LogFormat != "text" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	for _, field := range Fields() {
		if cws.Sources[field] != SourceDefault {
			t.Errorf("source of %s: got %q, want default", field, cws.Sources[field])
		}
	}
	if cws.ConfigFile() != "" {
		t.Errorf("expected no config file, got %q", cws.ConfigFile())
	}
}

func TestPriorityOrder(t *testing.T) {
	home := isolate(t)
	userFile := filepath.Join(home, ".tickler", "tickler.toml")
	writeConfig(t, userFile, `
tasks_dir = "/srv/user-tasks"
format = "yaml"
log_level = "info"
lock = false
`)
	writeConfig(t, "tickler.toml", `
format = "json"
log_format = "logfmt"
`)
	t.Setenv("TICKLER_LOG_LEVEL", "error")
	t.Setenv("TICKLER_PATTERN", "**/*.json")

	cws, err := LoadWithSources(newFlags(t, "--log-level", "debug"))
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	tests := []struct {
		field  string
		want   string
		source ConfigSource
	}{
		{FieldTasksDir, "/srv/user-tasks", SourceUserFile},
		{FieldFormat, "json", SourceProjFile},
		{FieldLogFormat, "logfmt", SourceProjFile},
		{FieldLock, "false", SourceUserFile},
		{FieldPattern, "**/*.json", SourceEnv},
		{FieldLogLevel, "debug", SourceFlag},
		{FieldLogTimestamps, "false", SourceDefault},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if got := cfg.Value(tt.field); got != tt.want {
				t.Errorf("value: got %q, want %q", got, tt.want)
			}
			if got := cws.Sources[tt.field]; got != tt.source {
				t.Errorf("source: got %q, want %q", got, tt.source)
			}
		})
	}

	if len(cws.Files) != 2 {
		t.Fatalf("expected two config files, got %v", cws.Files)
	}
	if filepath.Base(cws.ConfigFile()) != "tickler.toml" || cws.ConfigFile() == userFile {
		t.Errorf("ConfigFile: got %q, want the project file", cws.ConfigFile())
	}
}

func TestXDGConfigFallback(t *testing.T) {
	home := isolate(t)
	if osUserConfigDir() != filepath.Join(home, ".config") {
		t.Skip("platform does not use XDG_CONFIG_HOME")
	}
	writeConfig(t, filepath.Join(home, ".config", "tickler", "tickler.toml"), `format = "yaml"`)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format != "yaml" {
		t.Errorf("Format: got %q, want yaml", cfg.Format)
	}
}

func TestRelativeTasksDirFollowsConfigFile(t *testing.T) {
	home := isolate(t)
	writeConfig(t, filepath.Join(home, ".tickler", "tickler.toml"), `tasks_dir = "mine"`)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := filepath.Join(home, ".tickler", "mine")
	if cfg.TasksDir != want {
		t.Errorf("TasksDir: got %q, want %q", cfg.TasksDir, want)
	}
}

func TestTildeExpansion(t *testing.T) {
	home := isolate(t)
	t.Setenv("TICKLER_DIR", "~/notes/tasks")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(home, "notes", "tasks"); cfg.TasksDir != want {
		t.Errorf("TasksDir: got %q, want %q", cfg.TasksDir, want)
	}
}

func TestEnvBooleans(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"YES", true},
		{"on", true},
		{"0", false},
		{"false", false},
		{"nope", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			isolate(t)
			t.Setenv("TICKLER_LOCK", tt.input)
			cfg, err := Load(nil)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.Lock != tt.want {
				t.Errorf("Lock for %q: got %v, want %v", tt.input, cfg.Lock, tt.want)
			}
		})
	}
}

func TestFlagsOverrideEverything(t *testing.T) {
	isolate(t)
	t.Setenv("TICKLER_DIR", "/from/env")

	cws, err := LoadWithSources(newFlags(t, "-d", "/from/flag", "--lock=false", "--format", "YAML"))
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	if cws.Config.TasksDir != "/from/flag" {
		t.Errorf("TasksDir: got %q", cws.Config.TasksDir)
	}
	if cws.Config.Lock {
		t.Error("Lock: expected false")
	}
	if cws.Config.Format != "yaml" {
		t.Errorf("Format: got %q", cws.Config.Format)
	}
	if cws.Sources[FieldTasksDir] != SourceFlag {
		t.Errorf("source: got %q", cws.Sources[FieldTasksDir])
	}
}

func TestUnsetFlagsDoNotOverride(t *testing.T) {
	isolate(t)
	t.Setenv("TICKLER_FORMAT", "yaml")

	cfg, err := Load(newFlags(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format != "yaml" {
		t.Errorf("Format: got %q, want yaml from env", cfg.Format)
	}
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		wantErr string
	}{
		{name: "bad toml", file: `tasks_dir = `, wantErr: "project config file"},
		{name: "unknown key", file: "colour = \"red\"\n", wantErr: "unknown keys: colour"},
		{name: "bad format", env: map[string]string{"TICKLER_FORMAT": "xml"}, wantErr: "format"},
		{name: "bad level", env: map[string]string{"TICKLER_LOG_LEVEL": "loud"}, wantErr: "log_level"},
		{name: "bad log format", env: map[string]string{"TICKLER_LOG_FORMAT": "pretty"}, wantErr: "log_format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if tt.file != "" {
				writeConfig(t, ".tickler.toml", tt.file)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestExampleConfigDecodes(t *testing.T) {
	cfg := &Config{}
	md, err := toml.Decode(ExampleConfig(), cfg)
	if err != nil {
		t.Fatalf("decode example: %v", err)
	}
	if len(md.Undecoded()) != 0 {
		t.Errorf("example has unknown keys: %v", md.Undecoded())
	}
	defaults := &Config{}
	setDefaults(defaults)
	if *cfg != *defaults {
		t.Errorf("example differs from defaults:\n got %+v\nwant %+v", cfg, defaults)
	}
}

func TestStoreOptions(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	opts, err := cfg.StoreOptions()
	if err != nil {
		t.Fatalf("StoreOptions: %v", err)
	}
	s, err := store.New(t.TempDir(), opts...)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	if s.Format() != "json" {
		t.Errorf("Format: got %q", s.Format())
	}
}
