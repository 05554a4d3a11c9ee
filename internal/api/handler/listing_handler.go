package handler

import (
	"context"

	"github.com/ecomama/marketplace/internal/api/authz"
	"github.com/ecomama/marketplace/internal/api/query"
	"github.com/ecomama/marketplace/internal/api/route"
	"github.com/ecomama/marketplace/internal/core/domain"
	"github.com/ecomama/marketplace/internal/core/ports"
)

var listingFilters = query.Config{
	"type":     query.EnumField(string(domain.ListingOffer), string(domain.ListingDemand)),
	"status":   query.EnumField(string(domain.ListingActive), string(domain.ListingInactive), string(domain.ListingExpired)),
	"category": query.StringField(),
	"author":   query.StringField(),
	"search":   query.StringField(),
	"page":     query.NumberField(),
	"limit":    query.NumberField(),
}

// ListingHandler serves the offers and demands of a community.
type ListingHandler struct {
	listings ports.ListingService
	isMember authz.MembershipLookup
}

func NewListingHandler(listings ports.ListingService, isMember authz.MembershipLookup) *ListingHandler {
	return &ListingHandler{listings: listings, isMember: isMember}
}

// List returns the listings of a community.
//
// @Summary      List listings
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true   "Community ID"
// @Param        type      query     string  false  "OFFER or DEMAND"
// @Param        status    query     string  false  "ACTIVE, INACTIVE or EXPIRED"
// @Param        category  query     string  false  "Category"
// @Param        author    query     string  false  "Author user ID"
// @Param        search    query     string  false  "Partial match on title or description"
// @Param        page      query     int     false  "Page number (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  route.SuccessResponse{data=ports.Page[domain.Listing]}
// @Failure      403       {object}  route.ErrorResponse
// @Router       /api/communities/{id}/listings [get]
func (h *ListingHandler) List(ctx context.Context, rc *route.Context) (*ports.Page[*domain.Listing], error) {
	f := query.Parse(rc.Query, listingFilters)
	return h.listings.List(ctx, ports.ListingFilter{
		CommunityID: rc.Param("id"),
		Type:        domain.ListingType(f.String("type")),
		Status:      domain.ListingStatus(f.String("status")),
		Category:    f.String("category"),
		AuthorID:    f.String("author"),
		Search:      f.String("search"),
		Page:        f.Int("page", 1),
		Limit:       f.Int("limit", ports.DefaultPageLimit),
	})
}

// Create publishes a listing in a community.
//
// @Summary      Create a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Community ID"
// @Param        body  body      createListingRequest  true  "Listing details"
// @Success      201   {object}  route.SuccessResponse{data=domain.Listing}
// @Failure      400   {object}  route.ErrorResponse
// @Failure      403   {object}  route.ErrorResponse
// @Router       /api/communities/{id}/listings [post]
func (h *ListingHandler) Create(ctx context.Context, rc *route.Context, body *createListingRequest) (*domain.Listing, error) {
	return h.listings.Create(ctx, ports.CreateListingInput{
		CommunityID: rc.Param("id"),
		AuthorID:    rc.UserID(),
		Type:        domain.ListingType(body.Type),
		Category:    body.Category,
		Title:       body.Title,
		Description: body.Description,
		Price:       body.Price,
		ExpiresAt:   body.ExpiresAt,
	})
}

// Get returns a listing to members of its community.
//
// @Summary      Get a listing
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        listingId  path      string  true  "Listing ID"
// @Success      200        {object}  route.SuccessResponse{data=domain.Listing}
// @Failure      403        {object}  route.ErrorResponse
// @Failure      404        {object}  route.ErrorResponse
// @Router       /api/listings/{listingId} [get]
func (h *ListingHandler) Get(ctx context.Context, rc *route.Context) (*domain.Listing, error) {
	listing, err := h.listings.Get(ctx, rc.Param("listingId"))
	if err != nil {
		return nil, err
	}
	if rc.Session.IsSuperAdmin() {
		return listing, nil
	}
	ok, err := h.isMember(ctx, rc.UserID(), listing.CommunityID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.Forbidden("Forbidden")
	}
	return listing, nil
}

// Update applies a partial update to a listing.
//
// @Summary      Update a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        listingId  path      string                true  "Listing ID"
// @Param        body       body      updateListingRequest  true  "Fields to change"
// @Success      200        {object}  route.SuccessResponse{data=domain.Listing}
// @Failure      400        {object}  route.ErrorResponse
// @Failure      403        {object}  route.ErrorResponse
// @Failure      404        {object}  route.ErrorResponse
// @Router       /api/listings/{listingId} [put]
func (h *ListingHandler) Update(ctx context.Context, rc *route.Context, body *updateListingRequest) (*domain.Listing, error) {
	in := ports.UpdateListingInput{
		Category:    body.Category,
		Title:       body.Title,
		Description: body.Description,
		Price:       body.Price,
		ExpiresAt:   body.ExpiresAt,
	}
	if body.Status != nil {
		status := domain.ListingStatus(*body.Status)
		in.Status = &status
	}
	return h.listings.Update(ctx, rc.Param("listingId"), in)
}

// Delete removes a listing.
//
// @Summary      Delete a listing
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        listingId  path      string  true  "Listing ID"
// @Success      200        {object}  route.SuccessResponse{data=deletedResponse}
// @Failure      403        {object}  route.ErrorResponse
// @Failure      404        {object}  route.ErrorResponse
// @Router       /api/listings/{listingId} [delete]
func (h *ListingHandler) Delete(ctx context.Context, rc *route.Context) (deletedResponse, error) {
	if err := h.listings.Delete(ctx, rc.Param("listingId"), rc.UserID()); err != nil {
		return deletedResponse{}, err
	}
	return deletedResponse{Success: true}, nil
}
