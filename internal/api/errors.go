package api

import "fmt"

// APIError is a non-2xx response from the calibration service. Message
// carries the server-provided message when the payload includes one;
// Fields carries the optional per-field error payload (register and
// create/update endpoints return Laravel-style validation maps).
type APIError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: request failed with status %d", e.Status)
}

// ErrorMessage extracts the server message from err, falling back to the
// given default. Page and form controllers use this to surface a single
// human-readable line without inspecting the error themselves.
func ErrorMessage(err error, fallback string) string {
	if apiErr, ok := err.(*APIError); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// FieldErrors returns the per-field error payload from err, if any.
func FieldErrors(err error) map[string][]string {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Fields
	}
	return nil
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == 401
}
