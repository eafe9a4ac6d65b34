package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/entities"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/providers"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/repositories"
	apperrors "github.com/JhoJha/Viajes-Economicos-Chaskiway/pkg/errors"
)

// FareSource provides the raw fare records. Fares are the load-bearing source;
// a failure here aborts the pipeline.
type FareSource interface {
	Load(ctx context.Context) ([]*entities.RawTrip, error)
}

// WeatherSource provides per-destination/date weather aggregates. Optional.
type WeatherSource interface {
	Load(ctx context.Context) ([]*entities.WeatherStat, error)
}

// ImageSource provides per-destination image links. Optional.
type ImageSource interface {
	Load(ctx context.Context) ([]*entities.DestinationImage, error)
}

// RunReport summarizes one pipeline run.
type RunReport struct {
	RunID          string        `json:"run_id"`
	Offers         int           `json:"offers"`
	WeatherMatches int           `json:"weather_matches"`
	ImageMatches   int           `json:"image_matches"`
	Duration       time.Duration `json:"duration_ms"`
	CompletedAt    time.Time     `json:"completed_at"`
}

// ETLService merges the three scraped sources into the offer store.
type ETLService struct {
	fares   FareSource
	weather WeatherSource
	images  ImageSource
	repo    repositories.OfferRepository
	bus     providers.EventBus
}

// NewETLService creates a new ETL service. The event bus may be nil, in which
// case run completions are not announced.
func NewETLService(
	fares FareSource,
	weather WeatherSource,
	images ImageSource,
	repo repositories.OfferRepository,
	bus providers.EventBus,
) *ETLService {
	return &ETLService{fares: fares, weather: weather, images: images, repo: repo, bus: bus}
}

// Run executes one full pipeline pass: load the sources, merge, replace the
// store, announce completion. Weather and image failures degrade to missing
// enrichment; a fare failure aborts the run.
func (s *ETLService) Run(ctx context.Context) (*RunReport, error) {
	started := time.Now()
	runID := uuid.NewString()
	log.Info().Str("run_id", runID).Msg("starting pipeline run")

	trips, err := s.fares.Load(ctx)
	if err != nil {
		return nil, apperrors.NewExternalError("fare source unavailable", err)
	}
	if len(trips) == 0 {
		return nil, apperrors.NewExternalError("fare source yielded no trips", nil)
	}

	weather, err := s.weather.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Str("run_id", runID).Msg("weather source unavailable, continuing without enrichment")
		weather = nil
	}

	images, err := s.images.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Str("run_id", runID).Msg("image source unavailable, continuing without enrichment")
		images = nil
	}

	offers := MergeSources(trips, weather, images)
	if err := s.repo.ReplaceAll(ctx, offers); err != nil {
		return nil, err
	}

	report := &RunReport{
		RunID:       runID,
		Offers:      len(offers),
		Duration:    time.Since(started),
		CompletedAt: time.Now().UTC(),
	}
	for _, offer := range offers {
		if offer.AvgTemperature != nil {
			report.WeatherMatches++
		}
		if offer.DestinationImageURL != "" {
			report.ImageMatches++
		}
	}

	if s.bus != nil {
		event := &entities.PipelineEvent{
			RunID:       runID,
			Offers:      report.Offers,
			CompletedAt: report.CompletedAt,
		}
		if err := s.bus.Publish(ctx, providers.EventChannelPipelineRuns, event); err != nil {
			log.Warn().Err(err).Str("run_id", runID).Msg("failed to publish pipeline event")
		}
	}

	log.Info().
		Str("run_id", runID).
		Int("offers", report.Offers).
		Int("weather_matches", report.WeatherMatches).
		Int("image_matches", report.ImageMatches).
		Dur("duration", report.Duration).
		Msg("pipeline run completed")
	return report, nil
}

// MergeSources joins the three sources into the canonical offer set. Every
// fare record appears exactly once; weather is matched on (destination, date),
// images on destination; a missing match leaves the enrichment fields empty.
func MergeSources(
	trips []*entities.RawTrip,
	weather []*entities.WeatherStat,
	images []*entities.DestinationImage,
) []*entities.TripOffer {
	type weatherKey struct {
		destination string
		date        time.Time
	}
	weatherIndex := make(map[weatherKey]*entities.WeatherStat, len(weather))
	for _, stat := range weather {
		weatherIndex[weatherKey{stat.Destination, stat.Date}] = stat
	}
	imageIndex := make(map[string]string, len(images))
	for _, image := range images {
		if _, ok := imageIndex[image.Destination]; !ok {
			imageIndex[image.Destination] = image.URL
		}
	}

	offers := make([]*entities.TripOffer, 0, len(trips))
	for _, trip := range trips {
		offer := &entities.TripOffer{
			Origin:         trip.Origin,
			Destination:    trip.Destination,
			TravelDate:     trip.TravelDate,
			Company:        trip.Company,
			MinPrice:       trip.MinPrice,
			AvailableSeats: trip.AvailableSeats,
			CompanyRating:  trip.CompanyRating,
		}
		if stat, ok := weatherIndex[weatherKey{trip.Destination, trip.TravelDate}]; ok {
			avg := stat.AvgTemperature
			offer.AvgTemperature = &avg
			offer.ClimateCategory = stat.Category
		}
		offer.DestinationImageURL = imageIndex[trip.Destination]
		offers = append(offers, offer)
	}
	return offers
}
