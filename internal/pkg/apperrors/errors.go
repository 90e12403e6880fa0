package apperrors

import (
	"errors"
	"fmt"
)

// Error kinds. Every error surfaced by a service unwraps to exactly one of these.
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Workflow errors
	ErrInvalidState = errors.New("invalid state")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Student errors
var (
	ErrStudentNotFound = NewCustomError(ErrResourceNotFound, "student not found")
	ErrStudentChanged  = NewCustomError(ErrConflict, "student was modified by another request")
)

// Guardian errors
var (
	ErrGuardianNotFound = NewCustomError(ErrResourceNotFound, "guardian not found")
)

// Interview errors
var (
	ErrInterviewNotFound         = NewCustomError(ErrResourceNotFound, "no scheduled interview found for student")
	ErrInterviewAlreadyScheduled = NewCustomError(ErrConflict, "student already has a scheduled interview")
	ErrNoInterviewConductor      = NewCustomError(ErrResourceNotFound, "no director is available to conduct the interview")
)

// Notification errors
var (
	ErrNotificationNotFound = NewCustomError(ErrResourceNotFound, "notification not found")
)

// Staff errors
var (
	ErrUserNotFound       = NewCustomError(ErrResourceNotFound, "user not found")
	ErrEmailAlreadyExists = NewCustomError(ErrConflict, "email already exists")
)

// Halqa and classroom errors
var (
	ErrHalqaNotFound     = NewCustomError(ErrResourceNotFound, "halqa not found")
	ErrClassroomNotFound = NewCustomError(ErrResourceNotFound, "classroom not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a validation error with a message
func NewValidationError(format string, args ...interface{}) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewInvalidStateError reports a workflow transition whose precondition does not hold.
func NewInvalidStateError(format string, args ...interface{}) error {
	return &CustomError{
		Err:     ErrInvalidState,
		Message: fmt.Sprintf(format, args...),
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// Message returns the human readable message carried by err, or its text.
func Message(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return err.Error()
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
