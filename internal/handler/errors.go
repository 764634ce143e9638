package handler

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"

	"asset-management-api/internal/repository"
	"asset-management-api/pkg/errors"
)

// ErrorResponse is the JSON shape of every failed request.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// SuccessResponse is the JSON envelope for mutations that report a message
// alongside the affected entity.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorHandler centralizes response writing and error-to-status mapping so
// individual handlers stay declarative.
type ErrorHandler struct {
	Logger *log.Logger
}

// NewErrorHandler creates a new ErrorHandler instance
func NewErrorHandler(logger *log.Logger) *ErrorHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &ErrorHandler{Logger: logger}
}

func (e *ErrorHandler) writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(payload)
}

// SendErrorResponse sends a structured error response
func (e *ErrorHandler) SendErrorResponse(w http.ResponseWriter, statusCode int, message, code string, details map[string]string) {
	err := e.writeJSON(w, statusCode, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
	if err != nil {
		e.Logger.Printf("Failed to encode error response: %v", err)
	}
}

// SendSuccessResponse sends a structured success response
func (e *ErrorHandler) SendSuccessResponse(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	err := e.writeJSON(w, statusCode, SuccessResponse{
		Message: message,
		Data:    data,
	})
	if err != nil {
		e.Logger.Printf("Failed to encode success response: %v", err)
	}
}

// SendJSONResponse sends a payload as-is, without the success envelope.
func (e *ErrorHandler) SendJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	if err := e.writeJSON(w, statusCode, data); err != nil {
		e.Logger.Printf("Failed to encode JSON response: %v", err)
		e.SendErrorResponse(w, http.StatusInternalServerError, "Failed to encode response", "ENCODING_ERROR", nil)
	}
}

// HandleServiceError maps service-layer errors to HTTP responses. Structured
// application errors carry their own status and code; anything else is an
// internal error.
func (e *ErrorHandler) HandleServiceError(w http.ResponseWriter, err error, operation string) {
	e.Logger.Printf("Service error during %s: %v", operation, err)

	if appErr, ok := errors.AsAppError(err); ok {
		e.SendErrorResponse(w, appErr.GetHTTPStatus(), appErr.Message, string(appErr.Code), nil)
		return
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		e.SendErrorResponse(w, http.StatusRequestTimeout, "Operation timed out", "TIMEOUT", nil)
		return
	}

	e.SendErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Failed to %s", operation), "INTERNAL_ERROR", nil)
}

// HandleRepositoryError maps repository sentinel errors to HTTP responses for
// the handlers that talk to repositories directly.
func (e *ErrorHandler) HandleRepositoryError(w http.ResponseWriter, err error, operation string) {
	e.Logger.Printf("Repository error during %s: %v", operation, err)

	switch {
	case stderrors.Is(err, repository.ErrUserNotFound):
		e.SendErrorResponse(w, http.StatusNotFound, "User not found", "USER_NOT_FOUND", nil)
	case stderrors.Is(err, repository.ErrAssetNotFound):
		e.SendErrorResponse(w, http.StatusNotFound, "Asset not found", "ASSET_NOT_FOUND", nil)
	case stderrors.Is(err, repository.ErrDuplicateEmail):
		e.SendErrorResponse(w, http.StatusConflict, "User with this email already exists", "DUPLICATE_EMAIL", nil)
	case stderrors.Is(err, repository.ErrDuplicateSerial):
		e.SendErrorResponse(w, http.StatusConflict, "Asset with this serial number already exists", "DUPLICATE_SERIAL", nil)
	case stderrors.Is(err, context.DeadlineExceeded):
		e.SendErrorResponse(w, http.StatusRequestTimeout, "Operation timed out", "TIMEOUT", nil)
	default:
		e.SendErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Failed to %s", operation), "INTERNAL_ERROR", nil)
	}
}

// HandleValidationErrors reports field-level validation failures.
func (e *ErrorHandler) HandleValidationErrors(w http.ResponseWriter, validationErrors map[string]string) {
	if len(validationErrors) > 0 {
		e.SendErrorResponse(w, http.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}
}

// HandleJSONDecodeError handles malformed request bodies.
func (e *ErrorHandler) HandleJSONDecodeError(w http.ResponseWriter, err error) {
	e.Logger.Printf("JSON decode error: %v", err)
	e.SendErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", "INVALID_JSON", nil)
}

// ParseAndValidateUUID parses a path or query ID, writing the 400 itself when
// the value is missing or malformed.
func (e *ErrorHandler) ParseAndValidateUUID(w http.ResponseWriter, idStr string) (uuid.UUID, bool) {
	if idStr == "" {
		e.SendErrorResponse(w, http.StatusBadRequest, "ID is required", "INVALID_UUID", nil)
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		e.Logger.Printf("UUID parse error: %v", err)
		e.SendErrorResponse(w, http.StatusBadRequest, "Invalid UUID format", "INVALID_UUID", nil)
		return uuid.Nil, false
	}

	return id, true
}
