package handler

import (
	"context"

	"github.com/ecomama/marketplace/internal/api/query"
	"github.com/ecomama/marketplace/internal/api/route"
	"github.com/ecomama/marketplace/internal/core/domain"
	"github.com/ecomama/marketplace/internal/core/ports"
)

var communityFilters = query.Config{
	"search": query.StringField(),
	"page":   query.NumberField(),
	"limit":  query.NumberField(),
}

// CommunityHandler serves community CRUD.
type CommunityHandler struct {
	communities ports.CommunityService
}

func NewCommunityHandler(communities ports.CommunityService) *CommunityHandler {
	return &CommunityHandler{communities: communities}
}

// List returns communities, optionally filtered by a search term.
//
// @Summary      List communities
// @Tags         communities
// @Produce      json
// @Param        search  query     string  false  "Partial match on name or description"
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  route.SuccessResponse{data=ports.Page[domain.Community]}
// @Router       /api/communities [get]
func (h *CommunityHandler) List(ctx context.Context, rc *route.Context) (*ports.Page[*domain.Community], error) {
	f := query.Parse(rc.Query, communityFilters)
	return h.communities.List(ctx, ports.CommunityFilter{
		Search: f.String("search"),
		Page:   f.Int("page", 1),
		Limit:  f.Int("limit", ports.DefaultPageLimit),
	})
}

// Get returns a single community.
//
// @Summary      Get a community
// @Tags         communities
// @Produce      json
// @Param        id   path      string  true  "Community ID"
// @Success      200  {object}  route.SuccessResponse{data=domain.Community}
// @Failure      404  {object}  route.ErrorResponse
// @Router       /api/communities/{id} [get]
func (h *CommunityHandler) Get(ctx context.Context, rc *route.Context) (*domain.Community, error) {
	return h.communities.Get(ctx, rc.Param("id"))
}

// Create registers a new community; the caller becomes its first admin.
//
// @Summary      Create a community
// @Tags         communities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCommunityRequest  true  "Community details"
// @Success      201   {object}  route.SuccessResponse{data=domain.Community}
// @Failure      400   {object}  route.ErrorResponse
// @Failure      403   {object}  route.ErrorResponse
// @Router       /api/communities [post]
func (h *CommunityHandler) Create(ctx context.Context, rc *route.Context, body *createCommunityRequest) (*domain.Community, error) {
	return h.communities.Create(ctx, ports.CreateCommunityInput{
		Name:        body.Name,
		Description: body.Description,
		Location:    domain.Location{Lat: body.Location.Lat, Lng: body.Location.Lng},
		RadiusKm:    body.RadiusKm,
		CreatorID:   rc.UserID(),
	})
}

// Update applies a partial update to a community.
//
// @Summary      Update a community
// @Tags         communities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Community ID"
// @Param        body  body      updateCommunityRequest  true  "Fields to change"
// @Success      200   {object}  route.SuccessResponse{data=domain.Community}
// @Failure      400   {object}  route.ErrorResponse
// @Failure      403   {object}  route.ErrorResponse
// @Failure      404   {object}  route.ErrorResponse
// @Router       /api/communities/{id} [put]
func (h *CommunityHandler) Update(ctx context.Context, rc *route.Context, body *updateCommunityRequest) (*domain.Community, error) {
	in := ports.UpdateCommunityInput{
		Name:        body.Name,
		Description: body.Description,
		RadiusKm:    body.RadiusKm,
		ActorID:     rc.UserID(),
	}
	if body.Location != nil {
		in.Location = &domain.Location{Lat: body.Location.Lat, Lng: body.Location.Lng}
	}
	return h.communities.Update(ctx, rc.Param("id"), in)
}

// Delete removes a community and its memberships.
//
// @Summary      Delete a community
// @Tags         communities
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Community ID"
// @Success      200  {object}  route.SuccessResponse{data=deletedResponse}
// @Failure      403  {object}  route.ErrorResponse
// @Failure      404  {object}  route.ErrorResponse
// @Router       /api/communities/{id} [delete]
func (h *CommunityHandler) Delete(ctx context.Context, rc *route.Context) (deletedResponse, error) {
	if err := h.communities.Delete(ctx, rc.Param("id")); err != nil {
		return deletedResponse{}, err
	}
	return deletedResponse{Success: true}, nil
}
