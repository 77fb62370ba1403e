package task

import (
	"strconv"
	"strings"
)

// legacyRule rewrites one legacy shape in place and reports whether it did.
type legacyRule struct {
	name  string
	apply func(doc map[string]any) bool
}

// legacyRules run in order. Each one only adds or renames fields, so a
// document that no rule matches comes out untouched.
var legacyRules = []legacyRule{
	{name: "root recurrence fields", apply: foldRootRecurrence},
	{name: "textual reschedule interval", apply: numericRescheduleInterval},
	{name: "worded reschedule basis", apply: canonicalRescheduleFrom},
	{name: "root completion list", apply: foldCompletedList},
}

// Migrate upgrades a decoded document tree from older shapes to the current
// one. It never modifies doc; when nothing matches it returns doc itself and
// false. Trees use the encoding/json generic representation (numbers are
// float64). Migrate is idempotent.
//
// Recognised legacy shapes:
//   - root last_completed / recur_every → recurring{completed, duration}
//   - reschedule.interval as text ("10", "3 days", "2 weeks") → integer days
//   - reschedule.from in words ("Due Date", "completion-date") → enum value
//   - root completed list → appended to history
func Migrate(doc map[string]any) (map[string]any, bool) {
	out := cloneTree(doc).(map[string]any)
	changed := false
	for _, rule := range legacyRules {
		if rule.apply(out) {
			changed = true
		}
	}
	if !changed {
		return doc, false
	}
	return out, true
}

// LegacyRuleNames lists the migrations Migrate knows, in application order.
func LegacyRuleNames() []string {
	names := make([]string, len(legacyRules))
	for i, r := range legacyRules {
		names[i] = r.name
	}
	return names
}

func foldRootRecurrence(doc map[string]any) bool {
	last, hasLast := doc["last_completed"]
	every, hasEvery := doc["recur_every"]
	if !hasLast && !hasEvery {
		return false
	}

	rec := map[string]any{}
	if existing, ok := doc["recurring"]; ok {
		m, ok := existing.(map[string]any)
		if !ok {
			return false
		}
		rec = m
	}
	if _, ok := rec["completed"]; !ok && hasLast {
		rec["completed"] = last
	}
	if _, ok := rec["duration"]; !ok && hasEvery {
		rec["duration"] = every
	}
	delete(doc, "last_completed")
	delete(doc, "recur_every")
	// The old format kept a computed due date next to the recurrence.
	delete(doc, "due")
	doc["recurring"] = rec
	return true
}

func numericRescheduleInterval(doc map[string]any) bool {
	r, ok := doc["reschedule"].(map[string]any)
	if !ok {
		return false
	}
	s, ok := r["interval"].(string)
	if !ok {
		return false
	}
	days, ok := parseLegacyInterval(s)
	if !ok {
		return false
	}
	r["interval"] = float64(days)
	return true
}

// parseLegacyInterval understands "N", "N day(s)" and "N week(s)".
func parseLegacyInterval(s string) (int, bool) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 || len(fields) > 2 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 {
		return 0, false
	}
	if len(fields) == 1 {
		return n, true
	}
	switch fields[1] {
	case "d", "day", "days":
		return n, true
	case "w", "week", "weeks":
		return n * 7, true
	}
	return 0, false
}

func canonicalRescheduleFrom(doc map[string]any) bool {
	r, ok := doc["reschedule"].(map[string]any)
	if !ok {
		return false
	}
	s, ok := r["from"].(string)
	if !ok {
		return false
	}
	words := strings.Fields(strings.ToLower(strings.ReplaceAll(s, "-", " ")))
	canonical := strings.Join(words, "_")
	if canonical == s {
		return false
	}
	if _, err := ParseAnchor(canonical); err != nil {
		return false
	}
	r["from"] = canonical
	return true
}

func foldCompletedList(doc map[string]any) bool {
	completed, ok := doc["completed"].([]any)
	if !ok {
		return false
	}
	var history []any
	if existing, ok := doc["history"]; ok {
		h, ok := existing.([]any)
		if !ok {
			return false
		}
		history = h
	}
	doc["history"] = append(history, completed...)
	delete(doc, "completed")
	return true
}

func cloneTree(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneTree(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneTree(item)
		}
		return out
	}
	return v
}
