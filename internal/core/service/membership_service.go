package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ecomama/marketplace/internal/api/metrics"
	"github.com/ecomama/marketplace/internal/core/domain"
	"github.com/ecomama/marketplace/internal/core/ports"
)

type MembershipService struct {
	repo        ports.MembershipRepository
	communities ports.CommunityRepository
	activity    ports.ActivityRecorder
	logger      zerolog.Logger
	now         func() time.Time
}

func NewMembershipService(
	repo ports.MembershipRepository,
	communities ports.CommunityRepository,
	activity ports.ActivityRecorder,
	logger zerolog.Logger,
) *MembershipService {
	return &MembershipService{repo: repo, communities: communities, activity: activity, logger: logger, now: time.Now}
}

// Request files a PENDING membership request. A REJECTED request may be
// filed again; a pending or approved one may not.
func (s *MembershipService) Request(ctx context.Context, communityID, userID, message string) (*domain.Membership, error) {
	if _, err := s.communities.FindByID(ctx, communityID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	existing, err := s.repo.Find(ctx, communityID, userID)
	switch {
	case err == nil:
		switch existing.Status {
		case domain.MembershipPending:
			return nil, domain.Validation("a membership request is already pending")
		case domain.MembershipApproved:
			return nil, domain.Validation("you are already a member of this community")
		}
		existing.Status = domain.MembershipPending
		existing.Message = strings.TrimSpace(message)
		existing.UpdatedAt = now
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("resubmit membership request: %w", err)
		}
		s.recordRequest(existing)
		return existing, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("load membership: %w", err)
	}

	m := &domain.Membership{
		ID:          uuid.NewString(),
		CommunityID: communityID,
		UserID:      userID,
		Role:        domain.MemberRoleMember,
		Status:      domain.MembershipPending,
		Message:     strings.TrimSpace(message),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	s.recordRequest(m)
	return m, nil
}

func (s *MembershipService) recordRequest(m *domain.Membership) {
	metrics.MembershipDecisionsTotal.WithLabelValues(string(domain.MembershipPending)).Inc()
	s.activity.Record(domain.Activity{
		CommunityID: m.CommunityID,
		ActorID:     m.UserID,
		Action:      domain.ActivityMembershipRequested,
		SubjectID:   m.UserID,
	})
	s.logger.Info().Str("community_id", m.CommunityID).Str("user_id", m.UserID).Msg("membership requested")
}

func (s *MembershipService) Get(ctx context.Context, communityID, userID string) (*domain.Membership, error) {
	return s.repo.Find(ctx, communityID, userID)
}

func (s *MembershipService) ListForUser(ctx context.Context, userID string) ([]*domain.Membership, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	if items == nil {
		items = []*domain.Membership{}
	}
	return items, nil
}

func (s *MembershipService) List(ctx context.Context, filter ports.MembershipFilter) (*ports.Page[*domain.Membership], error) {
	filter.Page, filter.Limit = ports.NormalizePage(filter.Page, filter.Limit)
	items, total, err := s.repo.ListByCommunity(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return ports.NewPage(items, total, filter.Page, filter.Limit), nil
}

// Decide approves or rejects a pending request.
func (s *MembershipService) Decide(ctx context.Context, in ports.DecideMembershipInput) (*domain.Membership, error) {
	if in.Status != domain.MembershipApproved && in.Status != domain.MembershipRejected {
		return nil, domain.Validation("status must be one of: APPROVED REJECTED")
	}
	if in.UserID == in.ActorID {
		return nil, domain.Validation("You cannot decide on your own membership")
	}

	m, err := s.repo.Find(ctx, in.CommunityID, in.UserID)
	if err != nil {
		return nil, err
	}
	if m.Status != domain.MembershipPending {
		return nil, domain.Validation("membership is not pending")
	}

	m.Status = in.Status
	m.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("update membership: %w", err)
	}

	action := domain.ActivityMembershipApproved
	if in.Status == domain.MembershipRejected {
		action = domain.ActivityMembershipRejected
	}
	metrics.MembershipDecisionsTotal.WithLabelValues(string(in.Status)).Inc()
	s.activity.Record(domain.Activity{
		CommunityID: in.CommunityID,
		ActorID:     in.ActorID,
		Action:      action,
		SubjectID:   in.UserID,
	})
	s.logger.Info().
		Str("community_id", in.CommunityID).
		Str("user_id", in.UserID).
		Str("status", string(in.Status)).
		Msg("membership decided")
	return m, nil
}

// Remove deletes another user's membership. Removing yourself and removing a
// community admin are both rejected.
func (s *MembershipService) Remove(ctx context.Context, communityID, userID, actorID string) error {
	if userID == actorID {
		return domain.Validation("You cannot remove yourself from the community")
	}

	m, err := s.repo.Find(ctx, communityID, userID)
	if err != nil {
		return err
	}
	if m.Role == domain.MemberRoleAdmin {
		return domain.Validation("community administrators cannot be removed")
	}

	if err := s.repo.Delete(ctx, communityID, userID); err != nil {
		return fmt.Errorf("remove member: %w", err)
	}

	s.activity.Record(domain.Activity{
		CommunityID: communityID,
		ActorID:     actorID,
		Action:      domain.ActivityMemberRemoved,
		SubjectID:   userID,
	})
	s.logger.Info().Str("community_id", communityID).Str("user_id", userID).Msg("member removed")
	return nil
}

// Leave deletes the caller's own membership. Admins cannot leave.
func (s *MembershipService) Leave(ctx context.Context, communityID, userID string) error {
	m, err := s.repo.Find(ctx, communityID, userID)
	if err != nil {
		return err
	}
	if m.Role == domain.MemberRoleAdmin {
		return domain.Validation("community administrators cannot leave the community")
	}
	if err := s.repo.Delete(ctx, communityID, userID); err != nil {
		return fmt.Errorf("leave community: %w", err)
	}

	s.activity.Record(domain.Activity{
		CommunityID: communityID,
		ActorID:     userID,
		Action:      domain.ActivityMemberLeft,
		SubjectID:   userID,
	})
	return nil
}
