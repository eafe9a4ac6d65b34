package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/adapters/database"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/adapters/events"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/adapters/ingest"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/application/services"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/providers"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/infrastructure/clients/postgres"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/infrastructure/clients/redis"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/infrastructure/observability"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/pkg/config"
)

// Runs one full ETL pass and exits. Meant for cron or manual invocation.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("chaskiway-pipeline", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer pgClient.Close()

	// The run still completes without Redis; API replicas just keep their
	// cached snapshots until the TTL expires.
	var eventBus providers.EventBus
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, run will not be announced")
	} else {
		defer redisClient.Close()
		eventBus = events.NewRedisEventBus(redisClient.Client())
	}

	offerRepo := database.NewPostgresOfferAdapter(pgClient.DB())
	if err := offerRepo.InitSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize schema")
	}

	etlService := services.NewETLService(
		ingest.NewFareReader(cfg.Data.FaresDir),
		ingest.NewWeatherReader(cfg.Data.WeatherCSV),
		ingest.NewImageReader(cfg.Data.ImagesCSV),
		offerRepo,
		eventBus,
	)

	report, err := etlService.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("pipeline run failed")
		os.Exit(1)
	}

	log.Info().
		Str("run_id", report.RunID).
		Int("offers", report.Offers).
		Int("weather_matches", report.WeatherMatches).
		Int("image_matches", report.ImageMatches).
		Msg("pipeline finished")
}
