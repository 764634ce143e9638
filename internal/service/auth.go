package service

import (
	"context"
	stderrors "errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"asset-management-api/internal/auth"
	"asset-management-api/internal/model"
	"asset-management-api/internal/repository"
	"asset-management-api/pkg/errors"
)

// AuthService implements the identity store: login, logout, and session
// lookup. Per the directory-login contract, passwords are not verified; any
// non-empty password succeeds when the email is registered and active.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	logger *log.Logger
}

// LoginResult is a successful login: the principal plus their session token.
type LoginResult struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, logger *log.Logger) *AuthService {
	if logger == nil {
		logger = log.Default()
	}
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Login looks up a user by case-insensitive email and issues a session token.
// An unknown email is an authentication failure, not a crash.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if strings.TrimSpace(email) == "" {
		return nil, errors.ValidationError("email is required")
	}
	if password == "" {
		return nil, errors.ValidationError("password is required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, repository.ErrUserNotFound) {
			s.logger.Printf("Login failed: no user with email %s", email)
			return nil, errors.UnauthorizedError("invalid credentials")
		}
		return nil, errors.DatabaseError("failed to look up user", err)
	}

	if !user.IsActive {
		s.logger.Printf("Login rejected for deactivated user %s", user.ID)
		return nil, errors.UnauthorizedError("account is deactivated")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, errors.InternalError("failed to issue session token", err)
	}

	s.logger.Printf("User logged in: ID=%s, role=%s", user.ID, user.Role)

	return &LoginResult{User: user, Token: token}, nil
}

// CurrentUser re-reads the principal behind a session claim. Used by the
// session-refresh endpoint after external state changes.
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.UnauthorizedError("session user no longer exists")
		}
		return nil, errors.DatabaseError("failed to look up session user", err)
	}
	return user, nil
}
