package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrForbidden
	ErrInvalidTransition
	ErrStoreUnavailable
	ErrInternal
)

// Error constructors
func NewNotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func NewBadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

// NewForbidden records the operation and resource that were denied so the
// audit trail can name them.
func NewForbidden(operation, resource string) *AppError {
	return &AppError{
		Code:    ErrForbidden,
		Message: fmt.Sprintf("not permitted to %s %s", operation, resource),
	}
}

// NewCountryForbidden is the denial shown when a write targets a country the
// principal does not administer.
func NewCountryForbidden(countryCode string) *AppError {
	return &AppError{
		Code:    ErrForbidden,
		Message: fmt.Sprintf("you do not have permission to modify data for %s", countryCode),
	}
}

// NewInvalidTransition names the current state and the rejected event.
func NewInvalidTransition(current, event string) *AppError {
	return &AppError{
		Code:    ErrInvalidTransition,
		Message: fmt.Sprintf("cannot apply %q while page is %q", event, current),
	}
}

func NewStoreUnavailable(err error) *AppError {
	return &AppError{
		Code:    ErrStoreUnavailable,
		Message: "store unavailable",
		Err:     err,
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

// IsCode reports whether err is an AppError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func IsForbidden(err error) bool         { return IsCode(err, ErrForbidden) }
func IsInvalidTransition(err error) bool { return IsCode(err, ErrInvalidTransition) }
func IsNotFound(err error) bool          { return IsCode(err, ErrNotFound) }
func IsStoreUnavailable(err error) bool  { return IsCode(err, ErrStoreUnavailable) }
