package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ecomama/marketplace/internal/api/metrics"
	"github.com/ecomama/marketplace/internal/core/domain"
	"github.com/ecomama/marketplace/internal/core/ports"
)

type ListingService struct {
	repo     ports.ListingRepository
	activity ports.ActivityRecorder
	logger   zerolog.Logger
	now      func() time.Time
}

func NewListingService(repo ports.ListingRepository, activity ports.ActivityRecorder, logger zerolog.Logger) *ListingService {
	return &ListingService{repo: repo, activity: activity, logger: logger, now: time.Now}
}

func (s *ListingService) Create(ctx context.Context, in ports.CreateListingInput) (*domain.Listing, error) {
	if in.Type != domain.ListingOffer && in.Type != domain.ListingDemand {
		return nil, domain.Validation("type must be one of: OFFER DEMAND")
	}
	title := strings.TrimSpace(in.Title)
	if len(title) < 3 {
		return nil, domain.Validation("title must be at least 3 characters")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, domain.Validation("category is required")
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, domain.Validation("price must not be negative")
	}

	now := s.now().UTC()
	if in.ExpiresAt != nil && !in.ExpiresAt.After(now) {
		return nil, domain.Validation("expires_at must be in the future")
	}

	listing := &domain.Listing{
		ID:          uuid.NewString(),
		CommunityID: in.CommunityID,
		AuthorID:    in.AuthorID,
		Type:        in.Type,
		Category:    category,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Status:      domain.ListingActive,
		ExpiresAt:   in.ExpiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, listing); err != nil {
		s.logger.Error().Err(err).Msg("failed to create listing")
		return nil, err
	}

	metrics.ListingsCreatedTotal.WithLabelValues(string(listing.Type)).Inc()
	s.activity.Record(domain.Activity{
		CommunityID: listing.CommunityID,
		ActorID:     listing.AuthorID,
		Action:      domain.ActivityListingCreated,
		SubjectID:   listing.ID,
	})
	s.logger.Info().Str("listing_id", listing.ID).Str("community_id", listing.CommunityID).Msg("listing created")
	return listing, nil
}

func (s *ListingService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ListingService) List(ctx context.Context, filter ports.ListingFilter) (*ports.Page[*domain.Listing], error) {
	filter.Page, filter.Limit = ports.NormalizePage(filter.Page, filter.Limit)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return ports.NewPage(items, total, filter.Page, filter.Limit), nil
}

func (s *ListingService) Update(ctx context.Context, id string, in ports.UpdateListingInput) (*domain.Listing, error) {
	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if len(title) < 3 {
			return nil, domain.Validation("title must be at least 3 characters")
		}
		listing.Title = title
	}
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		if category == "" {
			return nil, domain.Validation("category is required")
		}
		listing.Category = category
	}
	if in.Description != nil {
		listing.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, domain.Validation("price must not be negative")
		}
		listing.Price = in.Price
	}
	if in.Status != nil {
		if !listing.Status.CanTransitionTo(*in.Status) {
			return nil, domain.Validation(fmt.Sprintf("cannot change listing status from %s to %s", listing.Status, *in.Status))
		}
		listing.Status = *in.Status
	}

	now := s.now().UTC()
	if in.ExpiresAt != nil {
		if !in.ExpiresAt.After(now) {
			return nil, domain.Validation("expires_at must be in the future")
		}
		listing.ExpiresAt = in.ExpiresAt
	}
	listing.UpdatedAt = now

	if err := s.repo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *ListingService) Delete(ctx context.Context, id, actorID string) error {
	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(domain.Activity{
		CommunityID: listing.CommunityID,
		ActorID:     actorID,
		Action:      domain.ActivityListingDeleted,
		SubjectID:   id,
	})
	return nil
}

// ExpireStale moves every ACTIVE listing whose expiry has passed to EXPIRED.
func (s *ListingService) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.repo.ExpireBefore(ctx, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("expire listings: %w", err)
	}
	if n > 0 {
		metrics.ListingsExpiredTotal.Add(float64(n))
		s.logger.Info().Int64("count", n).Msg("listings expired")
	}
	return n, nil
}
