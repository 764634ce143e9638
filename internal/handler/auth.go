package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"asset-management-api/internal/middleware"
	"asset-management-api/internal/service"
)

// Constants for handler timeouts
const (
	DefaultTimeout     = 10 * time.Second
	LongRunningTimeout = 15 * time.Second
)

// AuthHandler handles login, logout, and session lookup.
type AuthHandler struct {
	Service *service.AuthService
	Logger  *log.Logger

	ErrorHandler   *ErrorHandler
	ResponseHelper *ResponseHelper
}

// NewAuthHandler creates a new AuthHandler with dependencies and helpers
func NewAuthHandler(svc *service.AuthService, logger *log.Logger) *AuthHandler {
	if logger == nil {
		logger = log.Default()
	}

	return &AuthHandler{
		Service:        svc,
		Logger:         logger,
		ErrorHandler:   NewErrorHandler(logger),
		ResponseHelper: NewResponseHelper(),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler authenticates a user by email and issues a session token.
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, err)
		return
	}

	result, err := h.Service.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "log in")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, result)
}

// LogoutHandler ends a session. Tokens are stateless, so the server has
// nothing to tear down; clients discard the token.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if principal := middleware.PrincipalFromContext(r.Context()); principal != nil {
		h.Logger.Printf("User logged out: ID=%s", principal.ID)
	}
	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "Logged out successfully", nil)
}

// MeHandler re-reads the authenticated user, reflecting role or status
// changes made since the token was issued.
func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		h.ErrorHandler.SendErrorResponse(w, http.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
		return
	}

	user, err := h.Service.CurrentUser(ctx, principal.ID)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "refresh session")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, user)
}

// HealthHandler provides a health check endpoint
func (h *AuthHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	healthData := h.ResponseHelper.CreateHealthCheckData()
	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "Service is healthy", healthData)
}
