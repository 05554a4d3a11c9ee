package ports

import (
	"context"
	"time"

	"github.com/ecomama/marketplace/internal/core/domain"
)

type EventFilter struct {
	CommunityID string
	From        time.Time // optional: events ending at or after From
	Page        int
	Limit       int
}

type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) error
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, filter EventFilter) ([]*domain.Event, int64, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id string) error
	IsAuthor(ctx context.Context, userID, eventID string) (bool, error)
	Count(ctx context.Context, filter EventFilter) (int64, error)
}

type CreateEventInput struct {
	CommunityID string
	AuthorID    string
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
}

type UpdateEventInput struct {
	Title       *string
	Description *string
	Location    *string
	StartsAt    *time.Time
	EndsAt      *time.Time
}

type ListEventsInput struct {
	CommunityID  string
	UpcomingOnly bool
	Page         int
	Limit        int
}

type EventService interface {
	Create(ctx context.Context, in CreateEventInput) (*domain.Event, error)
	Get(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, in ListEventsInput) (*Page[*domain.Event], error)
	Update(ctx context.Context, id string, in UpdateEventInput) (*domain.Event, error)
	Delete(ctx context.Context, id, actorID string) error
}
