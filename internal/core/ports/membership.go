package ports

import (
	"context"

	"github.com/ecomama/marketplace/internal/core/domain"
)

// MembershipFilter carries the query parameters for listing a community's members.
type MembershipFilter struct {
	CommunityID string
	Status      domain.MembershipStatus // optional
	Page        int
	Limit       int
}

// MembershipRepository persists memberships. Create must reject a second
// membership for the same (community, user) with domain.ErrDuplicateMember.
type MembershipRepository interface {
	Create(ctx context.Context, m *domain.Membership) error
	Find(ctx context.Context, communityID, userID string) (*domain.Membership, error)
	ListByCommunity(ctx context.Context, filter MembershipFilter) ([]*domain.Membership, int64, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Membership, error)
	Update(ctx context.Context, m *domain.Membership) error
	Delete(ctx context.Context, communityID, userID string) error
	DeleteByCommunity(ctx context.Context, communityID string) error
	IsAdmin(ctx context.Context, userID, communityID string) (bool, error)
	IsMember(ctx context.Context, userID, communityID string) (bool, error)
	CountByCommunity(ctx context.Context, communityID string, status domain.MembershipStatus) (int64, error)
}

type DecideMembershipInput struct {
	CommunityID string
	UserID      string
	ActorID     string
	Status      domain.MembershipStatus
}

type MembershipService interface {
	Request(ctx context.Context, communityID, userID, message string) (*domain.Membership, error)
	Get(ctx context.Context, communityID, userID string) (*domain.Membership, error)
	ListForUser(ctx context.Context, userID string) ([]*domain.Membership, error)
	List(ctx context.Context, filter MembershipFilter) (*Page[*domain.Membership], error)
	Decide(ctx context.Context, in DecideMembershipInput) (*domain.Membership, error)
	Remove(ctx context.Context, communityID, userID, actorID string) error
	Leave(ctx context.Context, communityID, userID string) error
}
