// Package errs defines the error shape returned to API clients.
//
// Every failed request is answered with a serialized HTTPError, optionally
// carrying field-level validation errors and a client action hint.
package errs

import "strings"

// FieldError is a validation failure for a single request field.
//
//	{ "field": "title", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType names an instruction the client should follow.
type ActionType string

// Action is an optional "what to do next" hint, e.g. redirect to login.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the application error type and the JSON error body.
//
// Code is machine-readable (NOT_FOUND, RECIPE_NOT_FOUND, ...). Override tells
// clients the message is safe to display verbatim.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
	Action   *Action      `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError regardless of its fields.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
