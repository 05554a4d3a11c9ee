package ports

import (
	"context"
	"time"

	"github.com/ecomama/marketplace/internal/core/domain"
)

// ListingFilter carries all query parameters for listing offers and demands.
type ListingFilter struct {
	CommunityID string
	Type        domain.ListingType   // optional
	Status      domain.ListingStatus // optional
	Category    string               // optional
	AuthorID    string               // optional
	Search      string               // optional: partial match on title or description
	Page        int
	Limit       int
}

type ListingRepository interface {
	Create(ctx context.Context, l *domain.Listing) error
	FindByID(ctx context.Context, id string) (*domain.Listing, error)
	List(ctx context.Context, filter ListingFilter) ([]*domain.Listing, int64, error)
	Update(ctx context.Context, l *domain.Listing) error
	Delete(ctx context.Context, id string) error
	IsAuthor(ctx context.Context, userID, listingID string) (bool, error)
	Count(ctx context.Context, filter ListingFilter) (int64, error)
	// ExpireBefore marks ACTIVE listings whose expiry is before t as EXPIRED
	// and returns how many were changed.
	ExpireBefore(ctx context.Context, t time.Time) (int64, error)
}

type CreateListingInput struct {
	CommunityID string
	AuthorID    string
	Type        domain.ListingType
	Category    string
	Title       string
	Description string
	Price       *float64
	ExpiresAt   *time.Time
}

// UpdateListingInput is a partial update; nil fields are left untouched.
type UpdateListingInput struct {
	Category    *string
	Title       *string
	Description *string
	Price       *float64
	Status      *domain.ListingStatus
	ExpiresAt   *time.Time
}

type ListingService interface {
	Create(ctx context.Context, in CreateListingInput) (*domain.Listing, error)
	Get(ctx context.Context, id string) (*domain.Listing, error)
	List(ctx context.Context, filter ListingFilter) (*Page[*domain.Listing], error)
	Update(ctx context.Context, id string, in UpdateListingInput) (*domain.Listing, error)
	Delete(ctx context.Context, id, actorID string) error
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}
