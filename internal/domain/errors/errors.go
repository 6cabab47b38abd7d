package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// DenyReason enumerates why the authorization matrix refused an action.
type DenyReason string

const (
	DenyNotOwner         DenyReason = "NotOwner"
	DenyWrongRole        DenyReason = "WrongRole"
	DenyRecordLocked     DenyReason = "RecordLocked"
	DenyNotVerified      DenyReason = "NotVerified"
	DenyAccountSuspended DenyReason = "AccountSuspended"
)

// AuthorizationError is returned when a role or ownership check fails.
type AuthorizationError struct {
	Action string
	Reason DenyReason
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("authorization denied for %s: %s", e.Action, e.Reason)
}

func (e *AuthorizationError) Unwrap() error { return ErrForbidden }

// Denied builds an AuthorizationError
func Denied(action string, reason DenyReason) *AuthorizationError {
	return &AuthorizationError{Action: action, Reason: reason}
}

// ValidationError is returned when a required field is missing or a
// command is not legal for the record's current state. No write is attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid builds a ValidationError
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InvalidTransition reports a command that the state machine does not accept
// from the record's current status.
func InvalidTransition(machine, from, command string) *ValidationError {
	return &ValidationError{
		Field:   "status",
		Message: fmt.Sprintf("%s: cannot %s from %s", machine, command, from),
	}
}

// StoreUnavailable wraps a transport or driver failure.
func StoreUnavailable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// AppError represents application error with HTTP status
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates a new app error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal server error", err)
}
