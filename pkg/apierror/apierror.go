package apierror

import (
	"fmt"
	"net/http"
)

// FieldError identifies a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the wire-level error envelope. It serializes directly as the
// response body, so handlers never reshape it.
type Error struct {
	Status  int          `json:"status"`
	Message string       `json:"message"`
	Reason  string       `json:"error,omitempty"`
	Fields  []FieldError `json:"errors,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}

	if len(e.Fields) > 0 {
		return fmt.Sprintf("%d %s (%d field errors)", e.Status, e.Message, len(e.Fields))
	}
	if e.Reason != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Message, e.Reason)
	}

	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

// Validation reports one or more invalid fields with the standard 400 envelope.
func Validation(fields ...FieldError) *Error {
	return &Error{Status: http.StatusBadRequest, Message: "Validation failed", Fields: fields}
}

// BadRequest carries a custom message, e.g. for malformed path parameters.
func BadRequest(message string, fields ...FieldError) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message, Fields: fields}
}

// Conflict marks a uniqueness violation so the handler can emit 409 instead of 400.
func Conflict(fields ...FieldError) *Error {
	return &Error{Status: http.StatusConflict, Message: "Conflict", Fields: fields}
}

func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

func Unauthorized(message string, reason string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message, Reason: reason}
}
