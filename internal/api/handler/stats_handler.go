package handler

import (
	"context"

	"github.com/ecomama/marketplace/internal/api/query"
	"github.com/ecomama/marketplace/internal/api/route"
	"github.com/ecomama/marketplace/internal/core/domain"
	"github.com/ecomama/marketplace/internal/core/ports"
)

var activityFilters = query.Config{
	"limit": query.NumberField(),
}

// StatsHandler serves the admin dashboards.
type StatsHandler struct {
	stats ports.StatsService
}

func NewStatsHandler(stats ports.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Community returns the counters of one community.
//
// @Summary      Community dashboard
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Community ID"
// @Success      200  {object}  route.SuccessResponse{data=domain.CommunityStats}
// @Failure      403  {object}  route.ErrorResponse
// @Failure      404  {object}  route.ErrorResponse
// @Router       /api/admin/community/{id}/stats [get]
func (h *StatsHandler) Community(ctx context.Context, rc *route.Context) (*domain.CommunityStats, error) {
	return h.stats.Community(ctx, rc.Param("id"))
}

// Activity returns the most recent audit entries of a community.
//
// @Summary      Community activity
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Community ID"
// @Param        limit  query     int     false  "Number of entries (max 100)"
// @Success      200    {object}  route.SuccessResponse{data=[]domain.Activity}
// @Failure      403    {object}  route.ErrorResponse
// @Router       /api/admin/community/{id}/activity [get]
func (h *StatsHandler) Activity(ctx context.Context, rc *route.Context) ([]*domain.Activity, error) {
	f := query.Parse(rc.Query, activityFilters)
	return h.stats.RecentActivity(ctx, rc.Param("id"), f.Int("limit", ports.DefaultPageLimit))
}

// Platform returns platform-wide counters.
//
// @Summary      Platform dashboard
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  route.SuccessResponse{data=domain.PlatformStats}
// @Failure      403  {object}  route.ErrorResponse
// @Router       /api/admin/stats [get]
func (h *StatsHandler) Platform(ctx context.Context, _ *route.Context) (*domain.PlatformStats, error) {
	return h.stats.Platform(ctx)
}
