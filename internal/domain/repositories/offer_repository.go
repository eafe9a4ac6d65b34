package repositories

import (
	"context"
	"time"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/entities"
)

// OfferFilter narrows a read of the offer store. Zero values mean "no constraint".
type OfferFilter struct {
	Destination string
	Companies   []string
	Climate     entities.ClimateCategory
	MaxPrice    *float64
	MinRating   *float64
	MinSeats    *int
	DateFrom    *time.Time
	DateTo      *time.Time
	Limit       int
	Offset      int
}

// StoreStats summarizes the offer store for the landing page.
type StoreStats struct {
	Offers       int      `json:"offers"`
	Destinations int      `json:"destinations"`
	Companies    int      `json:"companies"`
	MinPrice     *float64 `json:"min_price"`
	MaxPrice     *float64 `json:"max_price"`
}

// OfferRepository is the read/replace contract over the merged trip-offer table.
// The store is only ever rewritten wholesale by the ETL pipeline; readers work
// against the last completed snapshot.
type OfferRepository interface {
	// InitSchema creates the trip_offers table if it does not exist
	InitSchema(ctx context.Context) error

	// ReplaceAll atomically replaces the entire table with the given offers
	ReplaceAll(ctx context.Context, offers []*entities.TripOffer) error

	// List retrieves offers matching the filter
	List(ctx context.Context, filter OfferFilter) ([]*entities.TripOffer, error)

	// Destinations retrieves the distinct destination names
	Destinations(ctx context.Context) ([]string, error)

	// Stats summarizes the current store contents
	Stats(ctx context.Context) (*StoreStats, error)
}
