package entities

import (
	"time"
)

// ClimateCategory is the coarse temperature bucket assigned to a destination/date
type ClimateCategory string

const (
	ClimateWarm      ClimateCategory = "Warm"
	ClimateTemperate ClimateCategory = "Temperate"
	ClimateCold      ClimateCategory = "Cold"
)

// ClimateFromTemperature buckets an average temperature in Celsius.
// Thresholds: >= 22 Warm, >= 15 Temperate, below that Cold.
func ClimateFromTemperature(avgCelsius float64) ClimateCategory {
	switch {
	case avgCelsius >= 22:
		return ClimateWarm
	case avgCelsius >= 15:
		return ClimateTemperate
	default:
		return ClimateCold
	}
}

// TripOffer is one scraped fare option for a route/date/carrier, enriched with
// weather and destination-image data where a match exists. Enrichment fields are
// nil/empty when the secondary sources had no match; the fare row is kept anyway.
type TripOffer struct {
	Origin              string          `json:"origin" db:"origin"`
	Destination         string          `json:"destination" db:"destination"`
	TravelDate          time.Time       `json:"travel_date" db:"travel_date"`
	Company             string          `json:"company" db:"company"`
	MinPrice            *float64        `json:"min_price" db:"min_price"`
	AvailableSeats      *int            `json:"available_seats" db:"available_seats"`
	CompanyRating       *float64        `json:"company_rating" db:"company_rating"`
	AvgTemperature      *float64        `json:"avg_temperature" db:"avg_temperature"`
	ClimateCategory     ClimateCategory `json:"climate_category,omitempty" db:"climate_category"`
	DestinationImageURL string          `json:"destination_image_url,omitempty" db:"destination_image_url"`
}
