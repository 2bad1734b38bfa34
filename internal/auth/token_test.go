package auth_test

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/message-board/internal/auth"
	"github.com/spec-kit/message-board/internal/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, role domain.Role, issuedAt, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  "testuser",
		"role": string(role),
		"iat":  issuedAt.Unix(),
		"exp":  expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return signed
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, 60)

	token, expiresAt, err := tm.Issue("testuser", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}
	if remaining := time.Until(expiresAt); remaining <= 0 || remaining > time.Minute {
		t.Errorf("expiry out of range: %v", remaining)
	}

	principal, err := tm.Authenticate(token)
	if err != nil {
		t.Fatalf("Authenticate() failed: %v", err)
	}
	if principal.Username != "testuser" {
		t.Errorf("subject = %q, want %q", principal.Username, "testuser")
	}
	if principal.Role != domain.RoleUser {
		t.Errorf("role = %q, want %q", principal.Role, domain.RoleUser)
	}
}

func TestTokenManager_DistinctTokens(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, 60)

	first, _, err := tm.Issue("testuser", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}
	second, _, err := tm.Issue("testuser", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	if first == second {
		t.Error("back-to-back tokens are identical")
	}
	for _, token := range []string{first, second} {
		if _, err := tm.Authenticate(token); err != nil {
			t.Errorf("Authenticate(%q...) failed: %v", token[:12], err)
		}
	}
}

func TestTokenManager_Authenticate_Failures(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, 60)
	now := time.Now()

	valid, _, err := tm.Issue("testuser", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:    "garbage token",
			token:   "not-a-token",
			wantErr: auth.ErrTokenMalformed,
		},
		{
			name:    "empty token",
			token:   "",
			wantErr: auth.ErrTokenMalformed,
		},
		{
			name:    "tampered payload",
			token:   valid[:len(valid)-4] + "AAAA",
			wantErr: auth.ErrTokenSignatureInvalid,
		},
		{
			name:    "different secret",
			token:   signToken(t, "other-secret", domain.RoleUser, now, now.Add(time.Hour)),
			wantErr: auth.ErrTokenSignatureInvalid,
		},
		{
			name:    "expired with valid signature",
			token:   signToken(t, testSecret, domain.RoleUser, now.Add(-2*time.Hour), now.Add(-time.Hour)),
			wantErr: auth.ErrTokenExpired,
		},
		{
			name:    "unknown role",
			token:   signToken(t, testSecret, domain.Role("ROOT"), now, now.Add(time.Hour)),
			wantErr: auth.ErrTokenMalformed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := tm.Authenticate(tt.token)
			if err == nil {
				t.Fatalf("Authenticate() succeeded with principal %+v, want %v", principal, tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTokenManager_RoleAtIssuance(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, 60)

	token, _, err := tm.Issue("admin", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	principal, err := tm.Authenticate(token)
	if err != nil {
		t.Fatalf("Authenticate() failed: %v", err)
	}
	if principal.Role != domain.RoleAdmin {
		t.Errorf("role = %q, want %q", principal.Role, domain.RoleAdmin)
	}
}
