package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrAccountRestricted  = errors.New("account restricted")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTooManyImages      = errors.New("too many images")
)

// Error codes returned in HTTP responses
const (
	CodeNotFound           = "NOT_FOUND"
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeAccountRestricted  = "ACCOUNT_RESTRICTED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// AppError represents an application error with an HTTP status and a stable code
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func Restricted(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeAccountRestricted, message, ErrAccountRestricted)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeAlreadyExists, message, ErrAlreadyExists)
}

// InternalError wraps an unexpected error. The underlying message is kept so
// collaborator failures surface verbatim to the caller.
func InternalError(err error) *AppError {
	message := "internal server error"
	if err != nil {
		message = err.Error()
	}
	return NewAppError(http.StatusInternalServerError, CodeInternalError, message, err)
}

// FromDomain maps a sentinel domain error onto an AppError.
func FromDomain(err error, message string) *AppError {
	switch {
	case errors.Is(err, ErrNotFound):
		return NotFound(message)
	case errors.Is(err, ErrAlreadyExists):
		return Conflict(message)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrTooManyImages):
		return BadRequest(message)
	case errors.Is(err, ErrInvalidCredentials):
		return NewAppError(http.StatusUnauthorized, CodeInvalidCredentials, message, err)
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrTokenExpired):
		return Unauthorized(message)
	case errors.Is(err, ErrAccountRestricted):
		return Restricted(message)
	case errors.Is(err, ErrForbidden):
		return Forbidden(message)
	default:
		return InternalError(err)
	}
}
