package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine readable error code sent to clients.
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken       ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"

	// Resource errors
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeConflict ErrorCode = "CONFLICT"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"

	// Server errors
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Sentinels for errors.Is checks across packages.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)

// AppError is an error that knows how it should be presented over HTTP.
type AppError struct {
	Code    ErrorCode
	Message string
	Status  int
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

// NewAppError builds an AppError, deriving the HTTP status from the code.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  statusForCode(code),
		Err:     err,
	}
}

// Validation reports malformed or missing input. Nothing has been written when it is returned.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Status: http.StatusBadRequest, Err: ErrValidation}
}

// NotFound reports that the resource identified by id does not exist.
func NotFound(resource string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: resource + " not found", Status: http.StatusNotFound, Err: ErrNotFound}
}

// Forbidden reports that the caller is neither the owner nor an admin.
func Forbidden(message string) *AppError {
	return &AppError{Code: ErrCodeForbidden, Message: message, Status: http.StatusForbidden, Err: ErrForbidden}
}

// Conflict reports a uniqueness violation such as a duplicate review.
func Conflict(message string) *AppError {
	return &AppError{Code: ErrCodeConflict, Message: message, Status: http.StatusConflict, Err: ErrConflict}
}

func Unauthorized(message string) *AppError {
	return &AppError{Code: ErrCodeUnauthorized, Message: message, Status: http.StatusUnauthorized, Err: ErrUnauthorized}
}

// Internal wraps an unexpected failure. The wrapped error is logged, never sent to clients.
func Internal(err error) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: "Server error", Status: http.StatusInternalServerError, Err: err}
}

// IsAppError reports whether err is (or wraps) an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts the AppError from err, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HTTPStatus returns the HTTP status for err.
func HTTPStatus(err error) int {
	if appErr := GetAppError(err); appErr != nil && appErr.Status != 0 {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func statusForCode(code ErrorCode) int {
	switch code {
	case ErrCodeValidation, ErrCodeRequiredField, ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeUnauthorized, ErrCodeInvalidToken, ErrCodeMissingToken, ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
