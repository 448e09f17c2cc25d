package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("resource already exists")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotApproved        = errors.New("account is not approved")
	ErrTokenReuse         = errors.New("refresh token reuse detected")
	ErrConfiguration      = errors.New("server is misconfigured")
	ErrUnavailable        = errors.New("service unavailable")

	// ErrAlreadyProcessed marks a verification request that is no longer pending
	ErrAlreadyProcessed = &wrapped{msg: "request already processed", err: ErrConflict}
)

// Stable error codes returned to clients
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeAlreadyProcessed   = "ALREADY_PROCESSED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeNotApproved        = "NOT_APPROVED"
	CodeForbidden          = "FORBIDDEN"
	CodeTokenReuse         = "TOKEN_REUSE"
	CodeConfiguration      = "CONFIGURATION_ERROR"
	CodeUnavailable        = "SERVICE_UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
)

type wrapped struct {
	msg string
	err error
}

func (w *wrapped) Error() string { return w.msg }
func (w *wrapped) Unwrap() error { return w.err }

// AppError represents application error with HTTP status
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

// Validation wraps ErrValidation with a client-facing message
func Validation(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeValidation, message, ErrValidation)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

// Unavailable reports a dependency outage to the client
func Unavailable(message string) *AppError {
	return NewAppError(http.StatusServiceUnavailable, CodeUnavailable, message, ErrUnavailable)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// FromError maps any error chain to an AppError. Existing AppErrors pass
// through; sentinels get their status; anything else is a 500.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	msg := err.Error()
	switch {
	case errors.Is(err, ErrValidation):
		return NewAppError(http.StatusBadRequest, CodeValidation, msg, err)
	case errors.Is(err, ErrNotFound):
		return NewAppError(http.StatusNotFound, CodeNotFound, msg, err)
	case errors.Is(err, ErrAlreadyProcessed):
		return NewAppError(http.StatusConflict, CodeAlreadyProcessed, msg, err)
	case errors.Is(err, ErrConflict):
		return NewAppError(http.StatusConflict, CodeConflict, msg, err)
	case errors.Is(err, ErrInvalidCredentials):
		return NewAppError(http.StatusUnauthorized, CodeInvalidCredentials, "invalid email, password or role", err)
	case errors.Is(err, ErrNotApproved):
		return NewAppError(http.StatusUnauthorized, CodeNotApproved, msg, err)
	case errors.Is(err, ErrUnauthorized):
		return NewAppError(http.StatusUnauthorized, CodeUnauthorized, msg, err)
	case errors.Is(err, ErrTokenReuse):
		return NewAppError(http.StatusForbidden, CodeTokenReuse, msg, err)
	case errors.Is(err, ErrForbidden):
		return NewAppError(http.StatusForbidden, CodeForbidden, msg, err)
	case errors.Is(err, ErrUnavailable):
		return NewAppError(http.StatusServiceUnavailable, CodeUnavailable, msg, err)
	case errors.Is(err, ErrConfiguration):
		return NewAppError(http.StatusInternalServerError, CodeConfiguration, "server is misconfigured", err)
	default:
		return InternalError(err)
	}
}

