// Package reply defines the error taxonomy shared by every public operation
// of the download pipeline. Failures are reported as *Error values carrying a
// category and a human-readable message; callers branch on the category with
// IsType and render the error with the standard "{category} : {message}" form.
package reply

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType categorizes a pipeline failure.
type ErrorType string

const (
	// IoError means a local file system operation failed.
	IoError ErrorType = "IoError"

	// ExternalError means the encoder process failed to start or produced no usable output.
	ExternalError ErrorType = "ExternalError"

	// ValidationError means the caller supplied a bad index or format.
	ValidationError ErrorType = "ValidationError"

	// NotFound means the manifest or a requested resource is absent.
	NotFound ErrorType = "NotFound"

	// ServerError means the remote provider failed.
	ServerError ErrorType = "ServerError"

	// NetworkError means a network-level failure occurred before any response.
	NetworkError ErrorType = "NetworkError"

	// AppError is an uncategorized internal failure.
	AppError ErrorType = "AppError"

	// Unauthorized is reserved for request-gating collaborators.
	Unauthorized ErrorType = "Unauthorized"

	// Conflict is reserved for request-gating collaborators.
	Conflict ErrorType = "Conflict"
)

// Error is a categorized pipeline error.
type Error struct {
	Type    ErrorType
	Message string
	Err     error // wrapped cause, may be nil
}

// Error renders the error as "{category} : {message}".
func (e *Error) Error() string {
	return fmt.Sprintf("%s : %s", e.Type, e.Message)
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a categorized error from a format string.
func New(t ErrorType, format string, args ...any) *Error {
	return &Error{Type: t, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a categorized error around a cause. The cause's text is
// appended to the message so no detail is lost when the error is logged.
func Wrap(t ErrorType, err error, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &Error{Type: t, Message: msg, Err: err}
}

// TypeOf returns the category of err, or AppError when err carries none.
func TypeOf(err error) ErrorType {
	var re *Error
	if errors.As(err, &re) {
		return re.Type
	}
	return AppError
}

// IsType reports whether err carries the given category.
func IsType(err error, t ErrorType) bool {
	return TypeOf(err) == t
}

// FromStatus maps an HTTP status code to an error category.
func FromStatus(code int) ErrorType {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return Unauthorized
	case code == http.StatusNotFound:
		return NotFound
	case code == http.StatusConflict:
		return Conflict
	case code >= 400 && code < 500:
		return ValidationError
	case code >= 500:
		return ServerError
	default:
		return AppError
	}
}
