package handler

import (
	"context"

	"github.com/ecomama/marketplace/internal/api/query"
	"github.com/ecomama/marketplace/internal/api/route"
	"github.com/ecomama/marketplace/internal/core/domain"
	"github.com/ecomama/marketplace/internal/core/ports"
)

var eventFilters = query.Config{
	"upcoming": query.BoolField(),
	"page":     query.NumberField(),
	"limit":    query.NumberField(),
}

// EventHandler serves community events.
type EventHandler struct {
	events ports.EventService
}

func NewEventHandler(events ports.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// List returns the events of a community.
//
// @Summary      List events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true   "Community ID"
// @Param        upcoming  query     bool    false  "Only events that have not ended"
// @Param        page      query     int     false  "Page number (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  route.SuccessResponse{data=ports.Page[domain.Event]}
// @Failure      403       {object}  route.ErrorResponse
// @Router       /api/communities/{id}/events [get]
func (h *EventHandler) List(ctx context.Context, rc *route.Context) (*ports.Page[*domain.Event], error) {
	f := query.Parse(rc.Query, eventFilters)
	upcoming, _ := f.Bool("upcoming")
	return h.events.List(ctx, ports.ListEventsInput{
		CommunityID:  rc.Param("id"),
		UpcomingOnly: upcoming,
		Page:         f.Int("page", 1),
		Limit:        f.Int("limit", ports.DefaultPageLimit),
	})
}

// Create schedules an event in a community.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Community ID"
// @Param        body  body      createEventRequest  true  "Event details"
// @Success      201   {object}  route.SuccessResponse{data=domain.Event}
// @Failure      400   {object}  route.ErrorResponse
// @Failure      403   {object}  route.ErrorResponse
// @Router       /api/communities/{id}/events [post]
func (h *EventHandler) Create(ctx context.Context, rc *route.Context, body *createEventRequest) (*domain.Event, error) {
	return h.events.Create(ctx, ports.CreateEventInput{
		CommunityID: rc.Param("id"),
		AuthorID:    rc.UserID(),
		Title:       body.Title,
		Description: body.Description,
		Location:    body.Location,
		StartsAt:    body.StartsAt,
		EndsAt:      body.EndsAt,
	})
}

// Update applies a partial update to an event.
//
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        eventId  path      string              true  "Event ID"
// @Param        body     body      updateEventRequest  true  "Fields to change"
// @Success      200      {object}  route.SuccessResponse{data=domain.Event}
// @Failure      400      {object}  route.ErrorResponse
// @Failure      403      {object}  route.ErrorResponse
// @Failure      404      {object}  route.ErrorResponse
// @Router       /api/events/{eventId} [put]
func (h *EventHandler) Update(ctx context.Context, rc *route.Context, body *updateEventRequest) (*domain.Event, error) {
	return h.events.Update(ctx, rc.Param("eventId"), ports.UpdateEventInput{
		Title:       body.Title,
		Description: body.Description,
		Location:    body.Location,
		StartsAt:    body.StartsAt,
		EndsAt:      body.EndsAt,
	})
}

// Delete removes an event.
//
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        eventId  path      string  true  "Event ID"
// @Success      200      {object}  route.SuccessResponse{data=deletedResponse}
// @Failure      403      {object}  route.ErrorResponse
// @Failure      404      {object}  route.ErrorResponse
// @Router       /api/events/{eventId} [delete]
func (h *EventHandler) Delete(ctx context.Context, rc *route.Context) (deletedResponse, error) {
	if err := h.events.Delete(ctx, rc.Param("eventId"), rc.UserID()); err != nil {
		return deletedResponse{}, err
	}
	return deletedResponse{Success: true}, nil
}
