package models

import (
	"sort"
	"strings"
)

// FieldErrors maps a form field name to a message for the visitor. The
// empty key holds errors that belong to the form as a whole.
type FieldErrors map[string]string

// Add records msg for field, keeping the first message per field.
func (fe FieldErrors) Add(field, msg string) {
	if _, exists := fe[field]; !exists {
		fe[field] = msg
	}
}

// Has reports whether field has an error.
func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// Get returns the message for field, or "".
func (fe FieldErrors) Get(field string) string {
	return fe[field]
}

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			parts = append(parts, fe[f])
			continue
		}
		parts = append(parts, f+": "+fe[f])
	}
	return "invalid submission: " + strings.Join(parts, "; ")
}
