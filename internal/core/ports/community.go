package ports

import (
	"context"

	"github.com/ecomama/marketplace/internal/core/domain"
)

// CommunityFilter carries the query parameters for listing communities.
type CommunityFilter struct {
	Search string // optional: partial match on name or description
	Page   int
	Limit  int
}

type CommunityRepository interface {
	Create(ctx context.Context, c *domain.Community) error
	FindByID(ctx context.Context, id string) (*domain.Community, error)
	List(ctx context.Context, filter CommunityFilter) ([]*domain.Community, int64, error)
	Update(ctx context.Context, c *domain.Community) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type CreateCommunityInput struct {
	Name        string
	Description string
	Location    domain.Location
	RadiusKm    float64
	CreatorID   string
}

// UpdateCommunityInput is a partial update; nil fields are left untouched.
type UpdateCommunityInput struct {
	Name        *string
	Description *string
	Location    *domain.Location
	RadiusKm    *float64
	ActorID     string
}

type CommunityService interface {
	Create(ctx context.Context, in CreateCommunityInput) (*domain.Community, error)
	Get(ctx context.Context, id string) (*domain.Community, error)
	List(ctx context.Context, filter CommunityFilter) (*Page[*domain.Community], error)
	Update(ctx context.Context, id string, in UpdateCommunityInput) (*domain.Community, error)
	Delete(ctx context.Context, id string) error
}
