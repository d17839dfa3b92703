// Package model defines the entity types exchanged with the calibration
// API and the pure validation rules applied before submission.
package model

import "time"

// FieldError attributes a human-readable validation message to a field.
type FieldError struct {
	Field   string
	Message string
}

// Messages flattens field errors into their message strings.
func Messages(errs []FieldError) []string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return msgs
}

// ByField indexes field errors by field name. Later errors for the same
// field overwrite earlier ones, matching the form display which shows one
// message per field.
func ByField(errs []FieldError) map[string]string {
	m := make(map[string]string, len(errs))
	for _, e := range errs {
		m[e.Field] = e.Message
	}
	return m
}

// dateLayouts are the accepted formats for date fields coming from forms
// or the API.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// validDate reports whether s parses as a date in any accepted layout.
func validDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// ParseDate parses a date field value, trying each accepted layout.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
