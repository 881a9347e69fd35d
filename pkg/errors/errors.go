package errors

import (
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeUnsupportedFile    ErrorType = "unsupported_file_type"
	ErrorTypeEmptyOrCorrupt     ErrorType = "empty_or_corrupt_file"
	ErrorTypeReadFailure        ErrorType = "read_failure"
	ErrorTypeRenderFailure      ErrorType = "render_failure"
	ErrorTypeStoragePartial     ErrorType = "storage_partial"
	ErrorTypeStorageUnavailable ErrorType = "storage_unavailable"
	ErrorTypeValidation         ErrorType = "validation"
	ErrorTypeNotFound           ErrorType = "not_found"
	ErrorTypeInternal           ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewUnsupportedFileError creates an error for a file that failed the allow-list check.
// The selection is rejected before any read begins.
func NewUnsupportedFileError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeUnsupportedFile,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
	}
}

// NewEmptyOrCorruptError creates an error for a zero-length payload or a
// payload whose magic bytes do not match its declared format.
func NewEmptyOrCorruptError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeEmptyOrCorrupt,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewReadFailureError creates an error for a failed file read
func NewReadFailureError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeReadFailure,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewRenderFailureError creates an error for content an external renderer rejected.
// Distinct from read failures: the bytes were read fine but cannot be displayed.
func NewRenderFailureError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeRenderFailure,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewStorageUnavailableError creates an error for a persistent store that
// cannot be reached at all. Callers degrade to in-memory state; this error
// only surfaces when a reload fails to recover.
func NewStorageUnavailableError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeStorageUnavailable,
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
