package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecomama/marketplace/internal/core/domain"
	"github.com/ecomama/marketplace/internal/core/ports"
)

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &stubRevoker{}, "secret", time.Hour)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "  Alice@Example.com ",
		Name:     "Alice",
		Password: "pass1234",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubRevoker{}, "secret", time.Hour)

	cases := map[string]ports.RegisterInput{
		"bad email":      {Email: "not-an-email", Name: "A", Password: "pass1234"},
		"short password": {Email: "a@example.com", Name: "A", Password: "short"},
		"blank name":     {Email: "a@example.com", Name: "   ", Password: "pass1234"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), in)
			if domain.KindOf(err) != domain.KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubRevoker{}, "secret", time.Hour)
	in := ports.RegisterInput{Email: "bob@example.com", Name: "Bob", Password: "pass1234"}

	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &stubRevoker{}, "secret", time.Hour)

	registered, err := svc.Register(context.Background(), ports.RegisterInput{Email: "carol@example.com", Name: "Carol", Password: "pass1234"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "CAROL@example.com", "pass1234")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("unexpected user %q", user.ID)
	}

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("failed to parse token: %v", err)
	}
	if claims.Subject != registered.ID {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
	if claims.Role != domain.RoleUser {
		t.Fatalf("unexpected role claim %q", claims.Role)
	}
	if claims.ID == "" {
		t.Fatalf("expected token id claim")
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &stubRevoker{}, "secret", time.Hour)
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "dan@example.com", Name: "Dan", Password: "pass1234"}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "dan@example.com", "wrong-pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "pass1234"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	revoker := &stubRevoker{}
	svc := NewAuthService(newStubUserRepo(), revoker, "secret", time.Hour)
	svc.now = fixedClock(now)

	session := &domain.Session{
		User:      domain.SessionUser{ID: "u1", Role: domain.RoleUser},
		TokenID:   "tok-1",
		ExpiresAt: now.Add(30 * time.Minute),
	}
	if err := svc.Logout(context.Background(), session); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if ttl := revoker.revoked["tok-1"]; ttl != 30*time.Minute {
		t.Fatalf("expected revocation for remaining lifetime, got %v", ttl)
	}

	expired := &domain.Session{TokenID: "tok-2", ExpiresAt: now.Add(-time.Minute)}
	if err := svc.Logout(context.Background(), expired); err != nil {
		t.Fatalf("Logout of expired session returned error: %v", err)
	}
	if _, ok := revoker.revoked["tok-2"]; ok {
		t.Fatalf("expired token should not be stored")
	}

	if err := svc.Logout(context.Background(), nil); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for nil session, got %v", err)
	}
}

func TestAuthService_Logout_RevokerError(t *testing.T) {
	boom := errors.New("redis down")
	svc := NewAuthService(newStubUserRepo(), &stubRevoker{err: boom}, "secret", time.Hour)

	session := &domain.Session{TokenID: "tok", ExpiresAt: time.Now().Add(time.Hour)}
	if err := svc.Logout(context.Background(), session); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped revoker error, got %v", err)
	}
}
