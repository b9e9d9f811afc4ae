package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the kind of failure returned to the API layer
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken    ErrorCode = "INVALID_TOKEN"
	ErrCodeInvalidPassword ErrorCode = "INVALID_PASSWORD"
	ErrCodeUserExists      ErrorCode = "USER_EXISTS"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"

	// Booking and room errors
	ErrCodeValidation        ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrCodeUnavailable       ErrorCode = "UNAVAILABLE"
	ErrCodeConflict          ErrorCode = "CONFLICT"
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	ErrCodeInvalidState      ErrorCode = "INVALID_STATE"

	// Database errors
	ErrCodeDBError ErrorCode = "DB_ERROR"
)

// AppError is the typed failure every service returns
type AppError struct {
	Code    ErrorCode
	Message string
	// Field names the offending input, if any
	Field string
	// Details carries structured context such as a conflicting booking range
	Details map[string]interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another AppError with the same code, so sentinels like ErrConflict work with errors.Is
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithField sets the offending field
func (e *AppError) WithField(field string) *AppError {
	e.Field = field
	return e
}

// WithDetail adds one detail entry
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewAppError creates a new AppError
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Validation(field, message string) *AppError {
	return NewAppError(ErrCodeValidation, message, nil).WithField(field)
}

func NotFound(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, nil)
}

func Unavailable(message string) *AppError {
	return NewAppError(ErrCodeUnavailable, message, nil)
}

func Conflict(message string) *AppError {
	return NewAppError(ErrCodeConflict, message, nil)
}

func InvalidTransition(from, to string) *AppError {
	return NewAppError(ErrCodeInvalidTransition, fmt.Sprintf("cannot move booking from %s to %s", from, to), nil).
		WithDetail("from", from).
		WithDetail("to", to)
}

func InvalidState(message string) *AppError {
	return NewAppError(ErrCodeInvalidState, message, nil)
}

func Forbidden(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, nil)
}

// DBError wraps a storage failure; the message stays generic
func DBError(err error) *AppError {
	return NewAppError(ErrCodeDBError, "storage failure", err)
}

// IsAppError reports whether err is or wraps an AppError
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

// GetAppError returns the AppError in err's chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err carries the given code
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

// Is and As forward to the standard library so callers need a single errors import
func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target interface{}) bool { return errors.As(err, target) }

func New(text string) error { return errors.New(text) }

var (
	ErrValidation        = &AppError{Code: ErrCodeValidation}
	ErrNotFound          = &AppError{Code: ErrCodeNotFound}
	ErrUnavailable       = &AppError{Code: ErrCodeUnavailable}
	ErrConflict          = &AppError{Code: ErrCodeConflict}
	ErrInvalidTransition = &AppError{Code: ErrCodeInvalidTransition}
	ErrInvalidState      = &AppError{Code: ErrCodeInvalidState}
	ErrForbidden         = &AppError{Code: ErrCodeForbidden}
	ErrDB                = &AppError{Code: ErrCodeDBError}
)
