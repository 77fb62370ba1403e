package store

import (
	"strings"
	"unicode"
)

// fallbackName is used when a task name has no usable characters.
const fallbackName = "task"

// maxNameLength caps the base filename, leaving room for a suffix and extension.
const maxNameLength = 96

// SanitizeFilename derives a filesystem-safe base name (no extension) from a
// task name: letters and digits are kept and lowercased, everything else
// collapses into single underscores.
func SanitizeFilename(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.TrimSpace(name) {
		valid := unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-'
		if !valid {
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
			continue
		}
		b.WriteRune(unicode.ToLower(r))
		lastUnderscore = false
	}

	slug := strings.Trim(b.String(), "_-")
	if runes := []rune(slug); len(runes) > maxNameLength {
		slug = strings.TrimRight(string(runes[:maxNameLength]), "_-")
	}
	if slug == "" {
		return fallbackName
	}
	return slug
}
