package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/adapters/cache"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/adapters/database"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/adapters/events"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/adapters/ingest"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/api/handlers"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/api/middleware"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/api/routes"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/application/services"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/providers"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/repositories"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/infrastructure/clients/postgres"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/infrastructure/clients/redis"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/infrastructure/observability"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/pkg/config"
)

func main() {
	// .env is optional; real deployments use actual environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("chaskiway-api", cfg.Env)

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer pgClient.Close()

	// Redis is optional: without it the API serves uncached from Postgres.
	var (
		cacheProvider providers.CacheProvider
		eventBus      providers.EventBus
	)
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient.Client())
		eventBus = events.NewRedisEventBus(redisClient.Client())
	}

	var offerRepo repositories.OfferRepository = database.NewPostgresOfferAdapter(pgClient.DB())
	if err := offerRepo.InitSchema(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize schema")
	}
	if cacheProvider != nil {
		offerRepo = database.NewCachedOfferAdapter(offerRepo, cacheProvider)
	}

	etlService := services.NewETLService(
		ingest.NewFareReader(cfg.Data.FaresDir),
		ingest.NewWeatherReader(cfg.Data.WeatherCSV),
		ingest.NewImageReader(cfg.Data.ImagesCSV),
		offerRepo,
		eventBus,
	)
	recommendationService := services.NewRecommendationService(
		offerRepo,
		services.NewScoringService(),
		services.NewSavingsService(nil),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cacheProvider != nil && eventBus != nil {
		invalidation := services.NewCacheInvalidationService(eventBus, cacheProvider)
		if err := invalidation.Start(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to start cache invalidation")
		}
	}

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
	}

	router := routes.NewRouter(
		handlers.NewOfferHandler(offerRepo),
		handlers.NewRecommendationHandler(recommendationService),
		handlers.NewPipelineHandler(etlService),
		cacheMiddleware,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close event bus")
		}
	}
}
