package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ecomama/marketplace/internal/core/domain"
	"github.com/ecomama/marketplace/internal/core/ports"
)

const maxActivityLimit = 100

// StatsService aggregates dashboard counters. Every figure is a single
// counting query against its repository.
type StatsService struct {
	users       ports.UserRepository
	communities ports.CommunityRepository
	memberships ports.MembershipRepository
	listings    ports.ListingRepository
	events      ports.EventRepository
	activity    ports.ActivityRepository
	now         func() time.Time
}

func NewStatsService(
	users ports.UserRepository,
	communities ports.CommunityRepository,
	memberships ports.MembershipRepository,
	listings ports.ListingRepository,
	events ports.EventRepository,
	activity ports.ActivityRepository,
) *StatsService {
	return &StatsService{
		users:       users,
		communities: communities,
		memberships: memberships,
		listings:    listings,
		events:      events,
		activity:    activity,
		now:         time.Now,
	}
}

func (s *StatsService) Community(ctx context.Context, communityID string) (*domain.CommunityStats, error) {
	if _, err := s.communities.FindByID(ctx, communityID); err != nil {
		return nil, err
	}

	stats := &domain.CommunityStats{CommunityID: communityID}
	var err error

	if stats.Members, err = s.memberships.CountByCommunity(ctx, communityID, domain.MembershipApproved); err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}
	if stats.PendingRequests, err = s.memberships.CountByCommunity(ctx, communityID, domain.MembershipPending); err != nil {
		return nil, fmt.Errorf("count pending requests: %w", err)
	}

	active := ports.ListingFilter{CommunityID: communityID, Status: domain.ListingActive}
	if stats.ActiveListings, err = s.listings.Count(ctx, active); err != nil {
		return nil, fmt.Errorf("count listings: %w", err)
	}
	active.Type = domain.ListingOffer
	if stats.Offers, err = s.listings.Count(ctx, active); err != nil {
		return nil, fmt.Errorf("count offers: %w", err)
	}
	active.Type = domain.ListingDemand
	if stats.Demands, err = s.listings.Count(ctx, active); err != nil {
		return nil, fmt.Errorf("count demands: %w", err)
	}

	upcoming := ports.EventFilter{CommunityID: communityID, From: s.now().UTC()}
	if stats.UpcomingEvents, err = s.events.Count(ctx, upcoming); err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	return stats, nil
}

func (s *StatsService) Platform(ctx context.Context) (*domain.PlatformStats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	communities, err := s.communities.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count communities: %w", err)
	}
	return &domain.PlatformStats{Users: users, Communities: communities}, nil
}

func (s *StatsService) RecentActivity(ctx context.Context, communityID string, limit int) ([]*domain.Activity, error) {
	if limit <= 0 || limit > maxActivityLimit {
		limit = ports.DefaultPageLimit
	}
	items, err := s.activity.ListByCommunity(ctx, communityID, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	if items == nil {
		items = []*domain.Activity{}
	}
	return items, nil
}
