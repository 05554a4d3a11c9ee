package ports

import (
	"context"
	"time"

	"github.com/ecomama/marketplace/internal/core/domain"
)

// UserRepository defines persistence for registered users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

// TokenRevoker records session tokens that must no longer be accepted.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, session *domain.Session) error
}
