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

type EventService struct {
	repo     ports.EventRepository
	activity ports.ActivityRecorder
	logger   zerolog.Logger
	now      func() time.Time
}

func NewEventService(repo ports.EventRepository, activity ports.ActivityRecorder, logger zerolog.Logger) *EventService {
	return &EventService{repo: repo, activity: activity, logger: logger, now: time.Now}
}

func (s *EventService) Create(ctx context.Context, in ports.CreateEventInput) (*domain.Event, error) {
	title := strings.TrimSpace(in.Title)
	if len(title) < 3 {
		return nil, domain.Validation("title must be at least 3 characters")
	}
	if in.StartsAt.IsZero() || in.EndsAt.IsZero() {
		return nil, domain.Validation("starts_at and ends_at are required")
	}
	if !in.EndsAt.After(in.StartsAt) {
		return nil, domain.Validation("ends_at must be after starts_at")
	}

	now := s.now().UTC()
	event := &domain.Event{
		ID:          uuid.NewString(),
		CommunityID: in.CommunityID,
		AuthorID:    in.AuthorID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		StartsAt:    in.StartsAt.UTC(),
		EndsAt:      in.EndsAt.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		s.logger.Error().Err(err).Msg("failed to create event")
		return nil, err
	}

	s.activity.Record(domain.Activity{
		CommunityID: event.CommunityID,
		ActorID:     event.AuthorID,
		Action:      domain.ActivityEventCreated,
		SubjectID:   event.ID,
	})
	return event, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EventService) List(ctx context.Context, in ports.ListEventsInput) (*ports.Page[*domain.Event], error) {
	page, limit := ports.NormalizePage(in.Page, in.Limit)
	filter := ports.EventFilter{CommunityID: in.CommunityID, Page: page, Limit: limit}
	if in.UpcomingOnly {
		filter.From = s.now().UTC()
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return ports.NewPage(items, total, page, limit), nil
}

func (s *EventService) Update(ctx context.Context, id string, in ports.UpdateEventInput) (*domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if len(title) < 3 {
			return nil, domain.Validation("title must be at least 3 characters")
		}
		event.Title = title
	}
	if in.Description != nil {
		event.Description = strings.TrimSpace(*in.Description)
	}
	if in.Location != nil {
		event.Location = strings.TrimSpace(*in.Location)
	}
	if in.StartsAt != nil {
		event.StartsAt = in.StartsAt.UTC()
	}
	if in.EndsAt != nil {
		event.EndsAt = in.EndsAt.UTC()
	}
	if !event.EndsAt.After(event.StartsAt) {
		return nil, domain.Validation("ends_at must be after starts_at")
	}
	event.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id, actorID string) error {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(domain.Activity{
		CommunityID: event.CommunityID,
		ActorID:     actorID,
		Action:      domain.ActivityEventDeleted,
		SubjectID:   id,
	})
	return nil
}
