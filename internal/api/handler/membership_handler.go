package handler

import (
	"context"

	"github.com/ecomama/marketplace/internal/api/query"
	"github.com/ecomama/marketplace/internal/api/route"
	"github.com/ecomama/marketplace/internal/core/domain"
	"github.com/ecomama/marketplace/internal/core/ports"
)

var memberFilters = query.Config{
	"status": query.EnumField(string(domain.MembershipPending), string(domain.MembershipApproved), string(domain.MembershipRejected)),
	"page":   query.NumberField(),
	"limit":  query.NumberField(),
}

// MembershipHandler serves joining, leaving and community member administration.
type MembershipHandler struct {
	memberships ports.MembershipService
}

func NewMembershipHandler(memberships ports.MembershipService) *MembershipHandler {
	return &MembershipHandler{memberships: memberships}
}

// Join files a membership request for the caller.
//
// @Summary      Request membership
// @Tags         memberships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true   "Community ID"
// @Param        body  body      joinRequest  false  "Optional message to the admins"
// @Success      201   {object}  route.SuccessResponse{data=domain.Membership}
// @Failure      400   {object}  route.ErrorResponse
// @Failure      404   {object}  route.ErrorResponse
// @Router       /api/communities/{id}/join [post]
func (h *MembershipHandler) Join(ctx context.Context, rc *route.Context, body *joinRequest) (*domain.Membership, error) {
	var message string
	if body != nil {
		message = body.Message
	}
	return h.memberships.Request(ctx, rc.Param("id"), rc.UserID(), message)
}

// Mine returns the caller's membership of a community.
//
// @Summary      Get own membership
// @Tags         memberships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Community ID"
// @Success      200  {object}  route.SuccessResponse{data=domain.Membership}
// @Failure      404  {object}  route.ErrorResponse
// @Router       /api/communities/{id}/membership [get]
func (h *MembershipHandler) Mine(ctx context.Context, rc *route.Context) (*domain.Membership, error) {
	return h.memberships.Get(ctx, rc.Param("id"), rc.UserID())
}

// Leave deletes the caller's membership.
//
// @Summary      Leave a community
// @Tags         memberships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Community ID"
// @Success      200  {object}  route.SuccessResponse{data=deletedResponse}
// @Failure      400  {object}  route.ErrorResponse
// @Failure      403  {object}  route.ErrorResponse
// @Router       /api/communities/{id}/membership [delete]
func (h *MembershipHandler) Leave(ctx context.Context, rc *route.Context) (deletedResponse, error) {
	if err := h.memberships.Leave(ctx, rc.Param("id"), rc.UserID()); err != nil {
		return deletedResponse{}, err
	}
	return deletedResponse{Success: true}, nil
}

// MyCommunities lists every membership of the caller.
//
// @Summary      List own memberships
// @Tags         memberships
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  route.SuccessResponse{data=[]domain.Membership}
// @Router       /api/me/communities [get]
func (h *MembershipHandler) MyCommunities(ctx context.Context, rc *route.Context) ([]*domain.Membership, error) {
	return h.memberships.ListForUser(ctx, rc.UserID())
}

// Members lists the memberships of a community for its admins.
//
// @Summary      List community members
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true   "Community ID"
// @Param        status  query     string  false  "PENDING, APPROVED or REJECTED"
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  route.SuccessResponse{data=ports.Page[domain.Membership]}
// @Failure      403     {object}  route.ErrorResponse
// @Router       /api/admin/community/{id}/members [get]
func (h *MembershipHandler) Members(ctx context.Context, rc *route.Context) (*ports.Page[*domain.Membership], error) {
	f := query.Parse(rc.Query, memberFilters)
	return h.memberships.List(ctx, ports.MembershipFilter{
		CommunityID: rc.Param("id"),
		Status:      domain.MembershipStatus(f.String("status")),
		Page:        f.Int("page", 1),
		Limit:       f.Int("limit", ports.DefaultPageLimit),
	})
}

// Decide approves or rejects a pending membership request.
//
// @Summary      Approve or reject a member
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string                   true  "Community ID"
// @Param        userId  path      string                   true  "User ID"
// @Param        body    body      decideMembershipRequest  true  "Decision"
// @Success      200     {object}  route.SuccessResponse{data=domain.Membership}
// @Failure      400     {object}  route.ErrorResponse
// @Failure      403     {object}  route.ErrorResponse
// @Failure      404     {object}  route.ErrorResponse
// @Router       /api/admin/community/{id}/members/{userId} [put]
func (h *MembershipHandler) Decide(ctx context.Context, rc *route.Context, body *decideMembershipRequest) (*domain.Membership, error) {
	return h.memberships.Decide(ctx, ports.DecideMembershipInput{
		CommunityID: rc.Param("id"),
		UserID:      rc.Param("userId"),
		ActorID:     rc.UserID(),
		Status:      domain.MembershipStatus(body.Status),
	})
}

// Remove deletes another user's membership.
//
// @Summary      Remove a member
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "Community ID"
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  route.SuccessResponse{data=deletedResponse}
// @Failure      400     {object}  route.ErrorResponse
// @Failure      403     {object}  route.ErrorResponse
// @Failure      404     {object}  route.ErrorResponse
// @Router       /api/admin/community/{id}/members/{userId} [delete]
func (h *MembershipHandler) Remove(ctx context.Context, rc *route.Context) (deletedResponse, error) {
	userID := rc.Param("userId")
	if userID == rc.UserID() {
		return deletedResponse{}, domain.Validation("You cannot remove yourself from the community")
	}
	if err := h.memberships.Remove(ctx, rc.Param("id"), userID, rc.UserID()); err != nil {
		return deletedResponse{}, err
	}
	return deletedResponse{Success: true}, nil
}
