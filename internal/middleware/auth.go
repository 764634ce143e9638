package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"asset-management-api/internal/auth"
	"asset-management-api/internal/authz"
	"asset-management-api/internal/model"
	"asset-management-api/internal/repository"
)

type principalKeyType struct{}

var principalKey principalKeyType

// PrincipalFromContext returns the authenticated user, or nil.
func PrincipalFromContext(ctx context.Context) *model.User {
	principal, _ := ctx.Value(principalKey).(*model.User)
	return principal
}

// ContextWithPrincipal attaches a principal to a context. Exposed for tests.
func ContextWithPrincipal(ctx context.Context, principal *model.User) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// AuthMiddleware resolves the session token into a principal and enforces the
// role-based access gate.
type AuthMiddleware struct {
	tokens *auth.TokenManager
	users  repository.UserRepository
	logger *log.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(tokens *auth.TokenManager, users repository.UserRepository, logger *log.Logger) *AuthMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AuthMiddleware{
		tokens: tokens,
		users:  users,
		logger: logger,
	}
}

// Authenticate validates the bearer token and loads the current user record
// behind it, so role changes and deactivation take effect on the next request.
func (am *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			writeGateDecision(w, http.StatusUnauthorized, "missing or invalid Authorization header", authz.LoginPath)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := am.tokens.Validate(tokenString)
		if err != nil {
			am.logger.Printf("Token validation failed: %v", err)
			writeGateDecision(w, http.StatusUnauthorized, "invalid or expired session token", authz.LoginPath)
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			writeGateDecision(w, http.StatusUnauthorized, "malformed session token", authz.LoginPath)
			return
		}

		user, err := am.users.GetUserByID(r.Context(), userID)
		if err != nil {
			am.logger.Printf("Session user %s not found: %v", claims.UserID, err)
			writeGateDecision(w, http.StatusUnauthorized, "session user not found", authz.LoginPath)
			return
		}

		if !user.IsActive {
			writeGateDecision(w, http.StatusUnauthorized, "account is deactivated", authz.LoginPath)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), user)))
	})
}

// RequireRoles wraps a handler with the access-control gate. A denied
// principal gets the redirect path for their own dashboard, mirroring the UI
// behavior of bouncing users to where they belong.
func RequireRoles(next http.HandlerFunc, roles ...model.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := PrincipalFromContext(r.Context())

		decision := authz.Authorize(principal, roles...)
		if decision.Allowed() {
			next.ServeHTTP(w, r)
			return
		}

		if principal == nil {
			writeGateDecision(w, http.StatusUnauthorized, "authentication required", decision.RedirectTo)
			return
		}
		writeGateDecision(w, http.StatusForbidden, "insufficient role for this resource", decision.RedirectTo)
	}
}

func writeGateDecision(w http.ResponseWriter, status int, message, redirect string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":    message,
		"redirect": redirect,
	})
}
