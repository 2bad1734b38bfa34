package service_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/message-board/internal/auth"
	"github.com/spec-kit/message-board/internal/config"
	"github.com/spec-kit/message-board/internal/domain"
	"github.com/spec-kit/message-board/internal/repository"
	"github.com/spec-kit/message-board/internal/service"
	apperrors "github.com/spec-kit/message-board/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLSeconds: 3600,
			BcryptCost:            bcrypt.MinCost,
		},
	}
}

func seedUser(t *testing.T, users repository.UserRepository, username, password string, role domain.Role) {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := users.Create(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}); err != nil {
		t.Fatalf("create user: %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	seedUser(t, users, "testuser", "password123", domain.RoleUser)
	seedUser(t, users, "boardadmin", "adminpass", domain.RoleAdmin)

	svc := service.NewAuthService(testConfig(), users, nil)

	tests := []struct {
		name     string
		username string
		password string
		wantRole domain.Role
	}{
		{name: "user login", username: "testuser", password: "password123", wantRole: domain.RoleUser},
		{name: "admin login", username: "boardadmin", password: "adminpass", wantRole: domain.RoleAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Login(context.Background(), tt.username, tt.password)
			if err != nil {
				t.Fatalf("Login() failed: %v", err)
			}
			if result.Token == "" {
				t.Fatal("Login() returned empty token")
			}
			if result.Username != tt.username {
				t.Errorf("username = %q, want %q", result.Username, tt.username)
			}
			if result.Role != tt.wantRole {
				t.Errorf("role = %q, want %q", result.Role, tt.wantRole)
			}
			if result.ExpiresIn != 3600 {
				t.Errorf("expires_in = %d, want 3600", result.ExpiresIn)
			}

			principal, err := svc.TokenManager().Authenticate(result.Token)
			if err != nil {
				t.Fatalf("Authenticate(issued token) failed: %v", err)
			}
			if principal.Username != tt.username || principal.Role != tt.wantRole {
				t.Errorf("principal = %+v, want {%s %s}", principal, tt.username, tt.wantRole)
			}
		})
	}
}

func TestAuthService_Login_FailuresIndistinguishable(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	seedUser(t, users, "testuser", "password123", domain.RoleUser)

	svc := service.NewAuthService(testConfig(), users, nil)

	_, wrongPassErr := svc.Login(context.Background(), "testuser", "wrong")
	_, unknownUserErr := svc.Login(context.Background(), "nobody", "password123")

	if wrongPassErr == nil || unknownUserErr == nil {
		t.Fatal("expected both login attempts to fail")
	}

	var wrongPass, unknownUser *apperrors.DomainError
	if !errors.As(wrongPassErr, &wrongPass) || !errors.As(unknownUserErr, &unknownUser) {
		t.Fatalf("expected domain errors, got %T and %T", wrongPassErr, unknownUserErr)
	}
	if wrongPass.Code != "INVALID_CREDENTIALS" {
		t.Errorf("wrong password code = %q, want INVALID_CREDENTIALS", wrongPass.Code)
	}
	if wrongPass.Code != unknownUser.Code || wrongPass.Message != unknownUser.Message || wrongPass.HTTPStatus != unknownUser.HTTPStatus {
		t.Errorf("failure cases are distinguishable: %+v vs %+v", wrongPass, unknownUser)
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	seedUser(t, users, "testuser", "password123", domain.RoleUser)

	svc := service.NewAuthService(testConfig(), users, nil)

	user, err := svc.CurrentUser(context.Background(), "testuser")
	if err != nil {
		t.Fatalf("CurrentUser() failed: %v", err)
	}
	if user.Username != "testuser" || user.Role != domain.RoleUser {
		t.Errorf("user = %+v", user)
	}

	_, err = svc.CurrentUser(context.Background(), "ghost")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "NOT_FOUND" {
		t.Errorf("CurrentUser(ghost) error = %v, want NOT_FOUND", err)
	}
}
