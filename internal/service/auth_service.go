package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/message-board/internal/auth"
	"github.com/spec-kit/message-board/internal/config"
	"github.com/spec-kit/message-board/internal/domain"
	"github.com/spec-kit/message-board/internal/events"
	"github.com/spec-kit/message-board/internal/repository"
	apperrors "github.com/spec-kit/message-board/pkg/util"
)

// LoginResult carries the issued token plus the denormalized account fields
// returned to the client.
type LoginResult struct {
	Token     string
	ExpiresIn int64
	Username  string
	Role      domain.Role
}

// AuthService coordinates the login flow.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	dummyHash  string
}

// NewAuthService builds the service. The dummy hash is compared against when
// the username is unknown so that the unknown-user and wrong-password paths
// cost the same.
func NewAuthService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	dummyHash, _ := auth.HashPassword(uuid.NewString(), cfg.Auth.BcryptCost)
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLSeconds),
		dispatcher: dispatcher,
		dummyHash:  dummyHash,
	}
}

// Login verifies credentials and issues a session token. Unknown usernames
// and wrong passwords surface as the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			auth.VerifyPassword(s.dummyHash, password)
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, apperrors.NewInternalError(err)
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, apperrors.NewInvalidCredentials()
	}

	token, _, err := s.tokenMgr.Issue(user.Username, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserLoggedIn,
			Actor:     user.Username,
			Timestamp: time.Now(),
			Payload:   events.UserLoggedInPayload{Username: user.Username, Role: user.Role},
		})
	}

	return &LoginResult{
		Token:     token,
		ExpiresIn: int64(s.tokenMgr.TTL().Seconds()),
		Username:  user.Username,
		Role:      user.Role,
	}, nil
}

// CurrentUser resolves the account behind an authenticated principal.
func (s *AuthService) CurrentUser(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
