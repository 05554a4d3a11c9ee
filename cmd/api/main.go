// @title                       Ecomama Marketplace API
// @version                     1.0
// @description                 Community marketplace for local producers and consumers.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/ecomama/marketplace/docs"
	"github.com/ecomama/marketplace/internal/api"
	"github.com/ecomama/marketplace/internal/api/authz"
	"github.com/ecomama/marketplace/internal/api/handler"
	"github.com/ecomama/marketplace/internal/api/middleware"
	"github.com/ecomama/marketplace/internal/core/service"
	mongostore "github.com/ecomama/marketplace/internal/infrastructure/db/mongo"
	redisstore "github.com/ecomama/marketplace/internal/infrastructure/db/redis"
	"github.com/ecomama/marketplace/internal/infrastructure/queue"
	"github.com/ecomama/marketplace/internal/pkg/config"
	"github.com/ecomama/marketplace/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.MustLoad()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "ecomama-api",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	repos := mongostore.NewRepositories(db)
	if err := repos.EnsureIndexes(ctx); err != nil {
		return err
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()
	revocations := redisstore.NewRevocationStore(rdb)

	// Background workers outlive ctx until the server has drained.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	activity := queue.NewDispatcher(cfg.Workers.ActivityWorkers, repos.Activity, log)
	activity.Start(workerCtx)

	listings := service.NewListingService(repos.Listings, activity, log)
	sweeper := queue.NewSweeper(listings, cfg.Workers.ExpirySweepInterval, log)
	sweeper.Start(workerCtx)

	e := api.NewRouter(api.Deps{
		Auth:        service.NewAuthService(repos.Users, revocations, cfg.JWTSecret, cfg.TokenTTL),
		Communities: service.NewCommunityService(repos.Communities, repos.Memberships, activity, log),
		Memberships: service.NewMembershipService(repos.Memberships, repos.Communities, activity, log),
		Listings:    listings,
		Events:      service.NewEventService(repos.Events, activity, log),
		Stats: service.NewStatsService(
			repos.Users, repos.Communities, repos.Memberships, repos.Listings, repos.Events, repos.Activity,
		),
		Sessions: middleware.NewJWTSessions(cfg.JWTSecret, revocations, log),
		IsAdmin:  repos.Memberships.IsAdmin,
		IsMember: repos.Memberships.IsMember,
		Resources: authz.Resources{
			authz.ResourceListing: repos.Listings.IsAuthor,
			authz.ResourceEvent:   repos.Events.IsAuthor,
		},
		Health: []handler.DependencyCheck{handler.MongoCheck(db), handler.RedisCheck(rdb)},
		Log:    log,
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	stopWorkers()
	activity.Wait()
	<-sweeper.Done()
	log.Info().Msg("shutdown complete")
	return nil
}
