package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime"
)

// AppError represents an application-specific error
type AppError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	Cause     error  `json:"-"`
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
	Operation string `json:"operation,omitempty"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error recording the caller's
// position.
func NewAppError(code, message string, cause error) *AppError {
	return newAppError(2, code, message, cause)
}

func newAppError(skip int, code, message string, cause error) *AppError {
	_, file, line, _ := runtime.Caller(skip)
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
		File:    file,
		Line:    line,
	}
}

// WithOperation adds operation context to the error
func (e *AppError) WithOperation(operation string) *AppError {
	e.Operation = operation
	return e
}

// WithDetails adds additional details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// Common error codes
const (
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeInternalError   = "INTERNAL_ERROR"
	ErrCodeDatabaseError   = "DATABASE_ERROR"
	ErrCodeValidationError = "VALIDATION_ERROR"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeServiceError    = "SERVICE_ERROR"
	ErrCodeRateLimited     = "RATE_LIMITED"
)

var statusByCode = map[string]int{
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeForbidden:       http.StatusForbidden,
	ErrCodeInternalError:   http.StatusInternalServerError,
	ErrCodeDatabaseError:   http.StatusInternalServerError,
	ErrCodeValidationError: http.StatusUnprocessableEntity,
	ErrCodeConflict:        http.StatusConflict,
	ErrCodeServiceError:    http.StatusServiceUnavailable,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
}

// AsAppError returns the first *AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Code returns the application code of err, INTERNAL_ERROR for foreign
// errors and "" for nil.
func Code(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ErrCodeInternalError
}

// HTTPStatus maps err to the response status handlers should send.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if status, ok := statusByCode[Code(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Common error constructors
func NotFound(message string, cause error) *AppError {
	return newAppError(2, ErrCodeNotFound, message, cause)
}

func InvalidInput(message string, cause error) *AppError {
	return newAppError(2, ErrCodeInvalidInput, message, cause)
}

func Unauthorized(message string, cause error) *AppError {
	return newAppError(2, ErrCodeUnauthorized, message, cause)
}

func Forbidden(message string, cause error) *AppError {
	return newAppError(2, ErrCodeForbidden, message, cause)
}

func InternalError(message string, cause error) *AppError {
	return newAppError(2, ErrCodeInternalError, message, cause)
}

func DatabaseError(message string, cause error) *AppError {
	return newAppError(2, ErrCodeDatabaseError, message, cause)
}

func ValidationError(message string, cause error) *AppError {
	return newAppError(2, ErrCodeValidationError, message, cause)
}

func Conflict(message string, cause error) *AppError {
	return newAppError(2, ErrCodeConflict, message, cause)
}

func ServiceError(message string, cause error) *AppError {
	return newAppError(2, ErrCodeServiceError, message, cause)
}

func RateLimited(message string) *AppError {
	return newAppError(2, ErrCodeRateLimited, message, nil)
}
