package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Domain errors
	ErrorTypeValidation ErrorType = "VALIDATION"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"

	// Persistence errors. Both are recovered locally and never fatal.
	ErrorTypePersistenceRead  ErrorType = "PERSISTENCE_READ"
	ErrorTypePersistenceWrite ErrorType = "PERSISTENCE_WRITE"

	// Application errors
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// Validation rule codes. A ValidationError always carries one of these.
const (
	RuleRuneEmpty             = "RUNE_EMPTY"
	RuleTitleRequired         = "TITLE_REQUIRED"
	RuleInvalidTimestamp      = "INVALID_TIMESTAMP"
	RuleTimeRangeInverted     = "TIME_RANGE_INVERTED"
	RulePaletteEmpty          = "PALETTE_EMPTY"
	RuleUnsupportedConversion = "UNSUPPORTED_CONVERSION"
	RuleInvalidInput          = "INVALID_INPUT"
)

// AppError represents an application-specific error
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Code       string                 `json:"code,omitempty"`
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

// WithCode sets the error code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithDetail adds a single detail entry
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// NewValidationError creates a validation error naming the violated rule.
func NewValidationError(rule, message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Code:       rule,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		Code:       "NOT_FOUND",
		HTTPStatus: http.StatusNotFound,
	}
}

// NewPersistenceReadError reports a missing or unparseable stored value.
func NewPersistenceReadError(key string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypePersistenceRead,
		Message:    fmt.Sprintf("stored value for %q could not be read", key),
		Code:       "PERSISTENCE_READ",
		Cause:      err,
		Details:    map[string]interface{}{"key": key},
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewPersistenceWriteError reports a durable write that did not land.
func NewPersistenceWriteError(key string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypePersistenceWrite,
		Message:    fmt.Sprintf("value for %q was not persisted", key),
		Code:       "PERSISTENCE_WRITE",
		Cause:      err,
		Details:    map[string]interface{}{"key": key},
		HTTPStatus: http.StatusInsufficientStorage,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		Code:       "INTERNAL_ERROR",
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Helper functions

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

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

// IsPersistence reports whether err is a read or write persistence failure.
func IsPersistence(err error) bool {
	return IsType(err, ErrorTypePersistenceRead) || IsType(err, ErrorTypePersistenceWrite)
}

// RuleOf returns the violated rule code of a validation error, or "".
func RuleOf(err error) string {
	if appErr := GetAppError(err); appErr != nil && appErr.Type == ErrorTypeValidation {
		return appErr.Code
	}
	return ""
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr := GetAppError(err); appErr != nil {
		return fmt.Errorf("%s: %w", message, appErr)
	}
	return NewInternalError(message).WithCause(err)
}
