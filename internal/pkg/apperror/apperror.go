package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a custom error type that includes an HTTP status code and an optional internal error code.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new AppError with a formatted message.
func Newf(code int, format string, args ...any) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound creates a 404 error with a formatted message.
func NotFound(format string, args ...any) *AppError {
	return Newf(http.StatusNotFound, format, args...)
}

// BadRequest creates a 400 error with a formatted message.
func BadRequest(format string, args ...any) *AppError {
	return Newf(http.StatusBadRequest, format, args...)
}

// Forbidden creates a 403 error with a formatted message.
func Forbidden(format string, args ...any) *AppError {
	return Newf(http.StatusForbidden, format, args...)
}

// Conflict creates a 409 error with a formatted message.
func Conflict(format string, args ...any) *AppError {
	return Newf(http.StatusConflict, format, args...)
}
