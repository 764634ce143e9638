package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode classifies an application error for clients and for HTTP mapping.
type ErrorCode string

const (
	ErrorCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrorCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrorCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrorCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrorCodeForbidden     ErrorCode = "FORBIDDEN"
	ErrorCodeInvalidState  ErrorCode = "INVALID_STATE"

	ErrorCodeInternal        ErrorCode = "INTERNAL_ERROR"
	ErrorCodeDatabase        ErrorCode = "DATABASE_ERROR"
	ErrorCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrorCodeTimeout         ErrorCode = "TIMEOUT_ERROR"

	ErrorCodeBadRequest  ErrorCode = "BAD_REQUEST"
	ErrorCodeInvalidJSON ErrorCode = "INVALID_JSON"
)

var httpStatusByCode = map[ErrorCode]int{
	ErrorCodeValidation:      http.StatusBadRequest,
	ErrorCodeBadRequest:      http.StatusBadRequest,
	ErrorCodeInvalidJSON:     http.StatusBadRequest,
	ErrorCodeNotFound:        http.StatusNotFound,
	ErrorCodeAlreadyExists:   http.StatusConflict,
	ErrorCodeInvalidState:    http.StatusConflict,
	ErrorCodeUnauthorized:    http.StatusUnauthorized,
	ErrorCodeForbidden:       http.StatusForbidden,
	ErrorCodeTimeout:         http.StatusRequestTimeout,
	ErrorCodeExternalService: http.StatusBadGateway,
}

// AppError is the structured error carried from services up to the HTTP
// layer. The Cause, if any, never reaches the client.
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Cause     error                  `json:"-"`
	Timestamp time.Time              `json:"timestamp"`
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

// GetHTTPStatus maps the error code to a response status. Unknown and purely
// technical codes fall through to 500.
func (e *AppError) GetHTTPStatus() int {
	if status, ok := httpStatusByCode[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewAppErrorWithCause creates a new application error wrapping an underlying cause
func NewAppErrorWithCause(code ErrorCode, message string, cause error) *AppError {
	err := NewAppError(code, message)
	err.Cause = cause
	return err
}

// Constructors for the common cases.

func ValidationError(message string) *AppError {
	return NewAppError(ErrorCodeValidation, message)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(ErrorCodeNotFound, fmt.Sprintf("%s not found", resource))
}

func AlreadyExistsError(resource string) *AppError {
	return NewAppError(ErrorCodeAlreadyExists, fmt.Sprintf("%s already exists", resource))
}

// InvalidStateError reports an operation applied to an entity whose workflow
// state does not permit it.
func InvalidStateError(message string) *AppError {
	return NewAppError(ErrorCodeInvalidState, message)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrorCodeUnauthorized, message)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrorCodeForbidden, message)
}

func DatabaseError(message string, cause error) *AppError {
	return NewAppErrorWithCause(ErrorCodeDatabase, message, cause)
}

func InternalError(message string, cause error) *AppError {
	return NewAppErrorWithCause(ErrorCodeInternal, message, cause)
}

// AsAppError unwraps err to an AppError if one is anywhere in its chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
