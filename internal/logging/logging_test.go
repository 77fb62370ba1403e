package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{" error ", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.WarnLevel},
		{"verbose", log.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if ValidLevel("verbose") {
		t.Error("expected verbose to be rejected")
	}
	if !ValidLevel("Debug") {
		t.Error("expected Debug to be accepted")
	}
}

func TestParseFormatter(t *testing.T) {
	if got := ParseFormatter("json"); got != log.JSONFormatter {
		t.Errorf("json: got %v", got)
	}
	if got := ParseFormatter("logfmt"); got != log.LogfmtFormatter {
		t.Errorf("logfmt: got %v", got)
	}
	if got := ParseFormatter("pretty"); got != log.TextFormatter {
		t.Errorf("fallback: got %v", got)
	}
	if ValidFormatter("pretty") {
		t.Error("expected pretty to be rejected")
	}
}

func TestNewFromConfigFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFromConfig(&buf, "info", "text", false)

	logger.Debug("hidden")
	logger.Info("loaded task", "path", "buy_milk.json")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line should be filtered: %q", out)
	}
	if !strings.Contains(out, "loaded task") || !strings.Contains(out, "buy_milk.json") {
		t.Errorf("missing info line: %q", out)
	}
	if !strings.Contains(out, Prefix) {
		t.Errorf("missing prefix: %q", out)
	}
}

func TestNewFromConfigJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFromConfig(&buf, "debug", "json", false)
	logger.Warn("skipped file", "path", "broken.json")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON object, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "skipped file" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["path"] != "broken.json" {
		t.Errorf("path = %v", entry["path"])
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing to see")
	if logger.GetLevel() != log.FatalLevel {
		t.Errorf("level = %v", logger.GetLevel())
	}
}
