package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ecomama/marketplace/internal/core/domain"
	"github.com/ecomama/marketplace/internal/core/ports"
)

type CommunityService struct {
	repo        ports.CommunityRepository
	memberships ports.MembershipRepository
	activity    ports.ActivityRecorder
	logger      zerolog.Logger
	now         func() time.Time
}

func NewCommunityService(
	repo ports.CommunityRepository,
	memberships ports.MembershipRepository,
	activity ports.ActivityRecorder,
	logger zerolog.Logger,
) *CommunityService {
	return &CommunityService{repo: repo, memberships: memberships, activity: activity, logger: logger, now: time.Now}
}

// Create stores a community and makes its creator the first approved admin.
func (s *CommunityService) Create(ctx context.Context, in ports.CreateCommunityInput) (*domain.Community, error) {
	name := strings.TrimSpace(in.Name)
	if len(name) < 3 {
		return nil, domain.Validation("name must be at least 3 characters")
	}
	if err := validateLocation(in.Location); err != nil {
		return nil, err
	}
	if in.RadiusKm < 0 {
		return nil, domain.Validation("radius_km must not be negative")
	}

	now := s.now().UTC()
	community := &domain.Community{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Location:    in.Location,
		RadiusKm:    in.RadiusKm,
		CreatedBy:   in.CreatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, community); err != nil {
		s.logger.Error().Err(err).Msg("failed to create community")
		return nil, err
	}

	admin := &domain.Membership{
		ID:          uuid.NewString(),
		CommunityID: community.ID,
		UserID:      in.CreatorID,
		Role:        domain.MemberRoleAdmin,
		Status:      domain.MembershipApproved,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.memberships.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("create community admin membership: %w", err)
	}

	s.logger.Info().Str("community_id", community.ID).Str("creator_id", in.CreatorID).Msg("community created")
	return community, nil
}

func (s *CommunityService) Get(ctx context.Context, id string) (*domain.Community, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CommunityService) List(ctx context.Context, filter ports.CommunityFilter) (*ports.Page[*domain.Community], error) {
	filter.Page, filter.Limit = ports.NormalizePage(filter.Page, filter.Limit)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list communities: %w", err)
	}
	return ports.NewPage(items, total, filter.Page, filter.Limit), nil
}

func (s *CommunityService) Update(ctx context.Context, id string, in ports.UpdateCommunityInput) (*domain.Community, error) {
	community, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len(name) < 3 {
			return nil, domain.Validation("name must be at least 3 characters")
		}
		community.Name = name
	}
	if in.Description != nil {
		community.Description = strings.TrimSpace(*in.Description)
	}
	if in.Location != nil {
		if err := validateLocation(*in.Location); err != nil {
			return nil, err
		}
		community.Location = *in.Location
	}
	if in.RadiusKm != nil {
		if *in.RadiusKm < 0 {
			return nil, domain.Validation("radius_km must not be negative")
		}
		community.RadiusKm = *in.RadiusKm
	}
	community.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, community); err != nil {
		return nil, err
	}

	s.activity.Record(domain.Activity{
		CommunityID: community.ID,
		ActorID:     in.ActorID,
		Action:      domain.ActivityCommunityUpdated,
		SubjectID:   community.ID,
	})
	return community, nil
}

// Delete removes the community and every membership attached to it.
func (s *CommunityService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.memberships.DeleteByCommunity(ctx, id); err != nil {
		return fmt.Errorf("delete community memberships: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("community_id", id).Msg("community deleted")
	return nil
}

func validateLocation(loc domain.Location) error {
	if loc.Lat < -90 || loc.Lat > 90 {
		return domain.Validation("location.lat must be between -90 and 90")
	}
	if loc.Lng < -180 || loc.Lng > 180 {
		return domain.Validation("location.lng must be between -180 and 180")
	}
	return nil
}
