package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an application error per the snapshot/persistence
// error taxonomy: envelope failures are fatal to the operation but
// recoverable by the user, storage and read failures likewise, and
// validation failures guard inbound requests.
type ErrorType string

const (
	ErrorTypeValidation      ErrorType = "VALIDATION"
	ErrorTypeNotFound        ErrorType = "NOT_FOUND"
	ErrorTypeFormat          ErrorType = "FORMAT"
	ErrorTypeVersionMismatch ErrorType = "VERSION_MISMATCH"
	ErrorTypeIO              ErrorType = "IO"
	ErrorTypeStorage         ErrorType = "STORAGE"
	ErrorTypeInternal        ErrorType = "INTERNAL"
)

// AppError is the application error carried across package boundaries.
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	HTTPStatus int                    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails adds error details
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewFormatError creates a snapshot envelope/format error
func NewFormatError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeFormat,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewVersionMismatchError creates a format error for a snapshot whose
// version field exists but differs from the supported constant.
func NewVersionMismatchError(expected int, actual string) *AppError {
	return &AppError{
		Type:    ErrorTypeVersionMismatch,
		Message: fmt.Sprintf("unsupported snapshot version: expected %d, got %s", expected, actual),
		Details: map[string]interface{}{
			"expected": expected,
			"actual":   actual,
		},
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewIOError creates a read/write error for a user-supplied source
func NewIOError(message string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeIO,
		Message:    message,
		Cause:      err,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewStorageError creates a key-value storage error
func NewStorageError(operation string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeStorage,
		Message:    fmt.Sprintf("storage operation '%s' failed", operation),
		Cause:      err,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

// IsFormat checks if an error is a snapshot format error
func IsFormat(err error) bool {
	return IsType(err, ErrorTypeFormat)
}

// IsVersionMismatch checks if an error is a snapshot version mismatch
func IsVersionMismatch(err error) bool {
	return IsType(err, ErrorTypeVersionMismatch)
}

// IsIO checks if an error is a read error
func IsIO(err error) bool {
	return IsType(err, ErrorTypeIO)
}

// IsStorage checks if an error is a storage error
func IsStorage(err error) bool {
	return IsType(err, ErrorTypeStorage)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	if appErr := GetAppError(err); appErr != nil {
		appErr.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return appErr
	}

	return NewInternalError(message).WithCause(err)
}
