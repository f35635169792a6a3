// utils/format.go - Form field sanitization and display formatting
package utils

import (
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// Date layouts accepted from the public form, most common first.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
}

// SanitizeText strips every HTML tag and attribute from free-text input,
// leaving plain text only. The result is stable under re-sanitization.
func SanitizeText(input string) string {
	return strings.TrimSpace(stripPolicy.Sanitize(input))
}

// FormatDateValue normalizes a user-supplied date string to DD-MM-YYYY.
// Anything unparseable degrades to the literal "N/A"; it never fails.
func FormatDateValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "N/A"
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("02-01-2006")
		}
	}
	return "N/A"
}

// FormatDatePtr renders a stored timestamp as DD-MM-YYYY, or "N/A" when absent.
func FormatDatePtr(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "N/A"
	}
	return t.Format("02-01-2006")
}

// HumanizeFieldName turns a snake_case form field name into a display label:
// underscores become spaces and each word is capitalized. The stored key is
// never mutated; this is a display projection only.
func HumanizeFieldName(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}
