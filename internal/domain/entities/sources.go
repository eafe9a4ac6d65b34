package entities

import (
	"time"
)

// RawTrip is one normalized fare record from the fare source, before merging.
// MinPrice is nil when the scraped fare list contained no numeric entry.
type RawTrip struct {
	Origin         string
	Destination    string
	TravelDate     time.Time
	Company        string
	MinPrice       *float64
	AvailableSeats *int
	CompanyRating  *float64
}

// WeatherStat is the pre-aggregated average temperature for one destination/date.
type WeatherStat struct {
	Destination    string
	Date           time.Time
	AvgTemperature float64
	Category       ClimateCategory
}

// DestinationImage is the representative image URL for a destination.
// Image data is destination-level, not per-date.
type DestinationImage struct {
	Destination string
	URL         string
}
