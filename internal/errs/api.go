package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// FieldError describes one failing input field in a validation response.
type FieldError struct {
	Message string `json:"message"`
}

// APIError carries an HTTP status alongside a human-readable message and,
// for validation failures, the per-field error list. Every operation
// classifies its own failures eagerly; anything unclassified defaults to
// 500 at the outermost handler.
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
	cause   error
}

func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the underlying sentinel for errors.Is checks.
func (e *APIError) Unwrap() error { return e.cause }

// Validation builds a 422 error with field details.
func Validation(msg string, fields ...FieldError) *APIError {
	return &APIError{Status: http.StatusUnprocessableEntity, Message: msg, Fields: fields}
}

// Unauthenticated builds a 401 error wrapping ErrUnauthenticated.
func Unauthenticated(msg string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: msg, cause: ErrUnauthenticated}
}

// Forbidden builds a 403 error wrapping ErrForbidden.
func Forbidden(msg string) *APIError {
	return &APIError{Status: http.StatusForbidden, Message: msg, cause: ErrForbidden}
}

// NotFound builds a 404 error wrapping ErrNotFound.
func NotFound(msg string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: msg, cause: ErrNotFound}
}

// Internal wraps an unclassified failure as a 500.
func Internal(msg string, cause error) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Message: msg, cause: cause}
}

// StatusOf reports the HTTP status for err: the APIError status when
// classified, 500 otherwise.
func StatusOf(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		return api.Status
	}
	return http.StatusInternalServerError
}
