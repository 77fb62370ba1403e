package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown document format %q, must be json or yaml", s)
}

// FormatFor returns the format implied by a file extension.
func FormatFor(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	}
	return "", false
}

// Ext returns the file extension for new documents, including the dot.
func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// Document is a decoded task plus what happened while decoding it.
type Document struct {
	Task Task
	// Migrated is true when the stored shape was a legacy one and the Task
	// reflects the upgraded shape. The bytes on disk are unchanged.
	Migrated bool
}

// document is the wire shape shared by JSON and YAML.
type document struct {
	Name       string      `json:"name" yaml:"name"`
	Priority   *int        `json:"priority,omitempty" yaml:"priority,omitempty"`
	Due        *string     `json:"due,omitempty" yaml:"due,omitempty"`
	Preview    *int        `json:"preview,omitempty" yaml:"preview,omitempty"`
	Reschedule *reschedule `json:"reschedule,omitempty" yaml:"reschedule,omitempty"`
	Recurring  *recurring  `json:"recurring,omitempty" yaml:"recurring,omitempty"`
	History    []string    `json:"history,omitempty" yaml:"history,omitempty"`
}

type reschedule struct {
	Interval int    `json:"interval" yaml:"interval"`
	From     string `json:"from" yaml:"from"`
}

type recurring struct {
	Completed *string `json:"completed,omitempty" yaml:"completed,omitempty"`
	Duration  int     `json:"duration" yaml:"duration"`
}

// Decode parses, migrates and validates a task document.
func Decode(data []byte, format Format) (Document, error) {
	tree, err := parseTree(data, format)
	if err != nil {
		return Document{}, malformed(err)
	}
	if tree == nil {
		return Document{}, malformed(fmt.Errorf("empty document"))
	}
	root, ok := tree.(map[string]any)
	if !ok {
		return Document{}, violation(&ValidationError{
			Err: fmt.Errorf("root must be an object, got %s", describe(tree)),
		})
	}

	root, migrated := Migrate(root)

	if errs := validateTree(root); len(errs) > 0 {
		return Document{}, violation(errs...)
	}

	t, err := fromTree(root)
	if err != nil {
		return Document{}, err
	}
	return Document{Task: t, Migrated: migrated}, nil
}

// Encode renders t in the given format.
func Encode(t Task, format Format) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	doc := toDocument(t)

	if format == FormatYAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("marshal task: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("marshal task: %w", err)
		}
		return buf.Bytes(), nil
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal task: %w", err)
	}

	// Add trailing newline
	return append(data, '\n'), nil
}

func parseTree(data []byte, format Format) (any, error) {
	if format == FormatYAML {
		var tree any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		return normalizeYAML(tree), nil
	}

	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return tree, nil
}

// normalizeYAML converts a yaml.v3 tree into the shapes encoding/json
// produces, so migration and validation see one representation.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeYAML(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeYAML(item)
		}
		return out
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case uint64:
		return float64(val)
	case time.Time:
		// Unquoted YAML timestamps; a bare date comes back as UTC midnight.
		if val.Equal(DateOf(val).t) {
			return DateOf(val).String()
		}
		return val.Format(time.RFC3339)
	}
	return v
}

func describe(v any) string {
	switch v.(type) {
	case []any:
		return "an array"
	case string:
		return "a string"
	case float64:
		return "a number"
	case bool:
		return "a boolean"
	}
	return fmt.Sprintf("%T", v)
}

func fromTree(tree map[string]any) (Task, error) {
	data, err := json.Marshal(tree)
	if err != nil {
		return Task{}, violation(fmt.Errorf("re-encode document: %w", err))
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Task{}, violation(fmt.Errorf("decode document: %w", err))
	}
	return doc.task()
}

func (d document) task() (Task, error) {
	t := Task{
		name:     d.Name,
		priority: d.Priority,
		preview:  d.Preview,
	}

	var dateErrs []error
	parse := func(path, s string) Date {
		parsed, err := ParseDate(s)
		if err != nil {
			dateErrs = append(dateErrs, &ValidationError{Path: path, Err: err})
		}
		return parsed
	}

	if d.Due != nil {
		due := parse("due", *d.Due)
		t.due = &due
	}
	if d.Reschedule != nil {
		t.reschedule = &Reschedule{Interval: d.Reschedule.Interval, From: Anchor(d.Reschedule.From)}
	}
	if d.Recurring != nil {
		r := Recurring{Duration: d.Recurring.Duration}
		if d.Recurring.Completed != nil {
			completed := parse("recurring.completed", *d.Recurring.Completed)
			r.Completed = &completed
		}
		t.recurring = &r
	}
	for i, entry := range d.History {
		t.history = append(t.history, parse(fmt.Sprintf("history[%d]", i), entry))
	}

	if len(dateErrs) > 0 {
		return Task{}, &DocumentError{Kind: ErrInvalidDate, Errs: dateErrs}
	}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}

func toDocument(t Task) document {
	d := document{
		Name:     t.name,
		Priority: t.priority,
		Preview:  t.preview,
	}
	if t.due != nil {
		due := t.due.String()
		d.Due = &due
	}
	if t.reschedule != nil {
		d.Reschedule = &reschedule{Interval: t.reschedule.Interval, From: string(t.reschedule.From)}
	}
	if t.recurring != nil {
		r := &recurring{Duration: t.recurring.Duration}
		if t.recurring.Completed != nil {
			completed := t.recurring.Completed.String()
			r.Completed = &completed
		}
		d.Recurring = r
	}
	for _, entry := range t.history {
		d.History = append(d.History, entry.String())
	}
	return d
}
