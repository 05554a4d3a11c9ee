package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/ecomama/marketplace/internal/api/authz"
	"github.com/ecomama/marketplace/internal/api/handler"
	"github.com/ecomama/marketplace/internal/api/middleware"
	"github.com/ecomama/marketplace/internal/api/route"
	"github.com/ecomama/marketplace/internal/core/domain"
	"github.com/ecomama/marketplace/internal/core/ports"
)

// Deps is everything the router needs to register its routes.
type Deps struct {
	Auth        ports.AuthService
	Communities ports.CommunityService
	Memberships ports.MembershipService
	Listings    ports.ListingService
	Events      ports.EventService
	Stats       ports.StatsService

	Sessions  route.SessionResolver
	IsAdmin   authz.MembershipLookup
	IsMember  authz.MembershipLookup
	Resources authz.Resources

	Health []handler.DependencyCheck
	Log    zerolog.Logger
	// Registry receives the HTTP metrics and serves /metrics. Nil means the
	// default prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = route.NewEchoValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "ecomama",
		Registerer: registerer,
	}))

	f := route.NewFactory(d.Sessions, d.Log)

	superAdmin := authz.RequireRole(domain.RoleSuperAdmin)
	communityAdmin := authz.RequireCommunityAdmin(d.IsAdmin, authz.CommunityParam)
	member := authz.RequireCommunityMember(d.IsMember, authz.CommunityParam)
	memberOrSuperAdmin := authz.Any(member, superAdmin)
	listingAuthor := d.Resources.RequireAuthor(authz.ResourceListing, authz.Param("listingId"))
	eventAuthor := d.Resources.RequireAuthor(authz.ResourceEvent, authz.Param("eventId"))

	// --- Auth ---
	auth := handler.NewAuthHandler(d.Auth)
	e.POST("/api/auth/register", auth.Register)
	e.POST("/api/auth/login", auth.Login)
	e.POST("/api/auth/logout", route.POST(f, auth.Logout, route.BodyOptions{OptionalBody: true}))

	// --- Communities ---
	communities := handler.NewCommunityHandler(d.Communities)
	e.GET("/api/communities", route.GET(f, communities.List, route.GetOptions{Public: true}))
	e.GET("/api/communities/:id", route.GET(f, communities.Get, route.GetOptions{Public: true}))
	e.POST("/api/communities", route.POST(f, communities.Create, route.BodyOptions{Authorize: superAdmin}))
	e.PUT("/api/communities/:id", route.PUT(f, communities.Update, route.BodyOptions{Authorize: communityAdmin}))
	e.DELETE("/api/communities/:id", route.DELETE(f, communities.Delete, route.DeleteOptions{Authorize: superAdmin}))

	// --- Memberships ---
	memberships := handler.NewMembershipHandler(d.Memberships)
	e.POST("/api/communities/:id/join", route.POST(f, memberships.Join, route.BodyOptions{OptionalBody: true}))
	e.GET("/api/communities/:id/membership", route.GET(f, memberships.Mine, route.GetOptions{}))
	e.DELETE("/api/communities/:id/membership", route.DELETE(f, memberships.Leave, route.DeleteOptions{Authorize: member}))
	e.GET("/api/me/communities", route.GET(f, memberships.MyCommunities, route.GetOptions{}))

	// --- Listings ---
	listings := handler.NewListingHandler(d.Listings, d.IsMember)
	e.GET("/api/communities/:id/listings", route.GET(f, listings.List, route.GetOptions{Authorize: memberOrSuperAdmin}))
	e.POST("/api/communities/:id/listings", route.POST(f, listings.Create, route.BodyOptions{Authorize: memberOrSuperAdmin}))
	e.GET("/api/listings/:listingId", route.GET(f, listings.Get, route.GetOptions{}))
	e.PUT("/api/listings/:listingId", route.PUT(f, listings.Update, route.BodyOptions{Authorize: listingAuthor}))
	e.DELETE("/api/listings/:listingId", route.DELETE(f, listings.Delete, route.DeleteOptions{Authorize: listingAuthor}))

	// --- Events ---
	events := handler.NewEventHandler(d.Events)
	e.GET("/api/communities/:id/events", route.GET(f, events.List, route.GetOptions{Authorize: memberOrSuperAdmin}))
	e.POST("/api/communities/:id/events", route.POST(f, events.Create, route.BodyOptions{Authorize: memberOrSuperAdmin}))
	e.PUT("/api/events/:eventId", route.PUT(f, events.Update, route.BodyOptions{Authorize: eventAuthor}))
	e.DELETE("/api/events/:eventId", route.DELETE(f, events.Delete, route.DeleteOptions{Authorize: eventAuthor}))

	// --- Community administration ---
	stats := handler.NewStatsHandler(d.Stats)
	admin := e.Group("/api/admin")
	admin.GET("/community/:id/members", route.GET(f, memberships.Members, route.GetOptions{Authorize: communityAdmin}))
	admin.PUT("/community/:id/members/:userId", route.PUT(f, memberships.Decide, route.BodyOptions{Authorize: communityAdmin}))
	admin.DELETE("/community/:id/members/:userId", route.DELETE(f, memberships.Remove, route.DeleteOptions{Authorize: communityAdmin}))
	admin.GET("/community/:id/stats", route.GET(f, stats.Community, route.GetOptions{Authorize: communityAdmin}))
	admin.GET("/community/:id/activity", route.GET(f, stats.Activity, route.GetOptions{Authorize: communityAdmin}))
	admin.GET("/stats", route.GET(f, stats.Platform, route.GetOptions{Authorize: superAdmin}))

	// --- Operations (no auth required) ---
	health := handler.NewHealthHandler(d.Health...)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
