package services

import (
	"context"
	"time"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/entities"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/providers"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/repositories"
)

type stubOfferRepo struct {
	offers   []*entities.TripOffer
	replaced [][]*entities.TripOffer
	listErr  error
}

func (r *stubOfferRepo) InitSchema(ctx context.Context) error { return nil }

func (r *stubOfferRepo) ReplaceAll(ctx context.Context, offers []*entities.TripOffer) error {
	r.replaced = append(r.replaced, offers)
	r.offers = offers
	return nil
}

func (r *stubOfferRepo) List(ctx context.Context, filter repositories.OfferFilter) ([]*entities.TripOffer, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.offers, nil
}

func (r *stubOfferRepo) Destinations(ctx context.Context) ([]string, error) { return nil, nil }

func (r *stubOfferRepo) Stats(ctx context.Context) (*repositories.StoreStats, error) {
	return &repositories.StoreStats{Offers: len(r.offers)}, nil
}

type stubEventBus struct {
	published []*entities.PipelineEvent
}

func (b *stubEventBus) Publish(ctx context.Context, channel string, event *entities.PipelineEvent) error {
	b.published = append(b.published, event)
	return nil
}

func (b *stubEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.PipelineEvent, error) {
	ch := make(chan *entities.PipelineEvent)
	close(ch)
	return ch, nil
}

func (b *stubEventBus) Close() error { return nil }

var _ providers.EventBus = (*stubEventBus)(nil)

type stubFareSource struct {
	trips []*entities.RawTrip
	err   error
}

func (s *stubFareSource) Load(ctx context.Context) ([]*entities.RawTrip, error) {
	return s.trips, s.err
}

type stubWeatherSource struct {
	stats []*entities.WeatherStat
	err   error
}

func (s *stubWeatherSource) Load(ctx context.Context) ([]*entities.WeatherStat, error) {
	return s.stats, s.err
}

type stubImageSource struct {
	images []*entities.DestinationImage
	err    error
}

func (s *stubImageSource) Load(ctx context.Context) ([]*entities.DestinationImage, error) {
	return s.images, s.err
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func offer(destination string, travelDate time.Time, company string, price *float64) *entities.TripOffer {
	return &entities.TripOffer{
		Origin:      "Lima",
		Destination: destination,
		TravelDate:  travelDate,
		Company:     company,
		MinPrice:    price,
	}
}
