package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/entities"
	apperrors "github.com/JhoJha/Viajes-Economicos-Chaskiway/pkg/errors"
)

// redbusFile mirrors the scraper's JSON output. One file covers one
// origin/destination pair on one scrape.
type redbusFile struct {
	ParentSrcCityName string            `json:"parentSrcCityName"`
	ParentDstCityName string            `json:"parentDstCityName"`
	Inventories       []redbusInventory `json:"inventories"`
}

// redbusInventory is one departure in a scraped file. FareList is untyped
// because the scraper sometimes captures placeholder strings among the prices.
type redbusInventory struct {
	DepartureTime  string        `json:"departureTime"`
	TravelsName    string        `json:"travelsName"`
	FareList       []interface{} `json:"fareList"`
	AvailableSeats *int          `json:"availableSeats"`
	TotalRatings   *float64      `json:"totalRatings"`
}

// FareReader loads scraped bus-fare JSON files from a directory.
type FareReader struct {
	dir string
}

// NewFareReader creates a fare reader over the given directory
func NewFareReader(dir string) *FareReader {
	return &FareReader{dir: dir}
}

// Load reads every *.json file in the directory and returns the normalized
// trips. Files that are empty, unreadable, or missing their inventory list are
// skipped with a warning; an empty directory is an error because fares are the
// backbone of the dataset.
func (r *FareReader) Load(ctx context.Context) ([]*entities.RawTrip, error) {
	paths, err := filepath.Glob(filepath.Join(r.dir, "*.json"))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan fare directory", err)
	}
	if len(paths) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no fare files found in %s", r.dir))
	}

	var trips []*entities.RawTrip
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		file, ok := readFareFile(path)
		if !ok {
			continue
		}

		for _, inv := range file.Inventories {
			travelDate, err := parseDepartureDate(inv.DepartureTime)
			if err != nil {
				log.Warn().Str("file", filepath.Base(path)).Str("departure_time", inv.DepartureTime).
					Msg("skipping trip with unparseable departure time")
				continue
			}

			trips = append(trips, &entities.RawTrip{
				Origin:         file.ParentSrcCityName,
				Destination:    file.ParentDstCityName,
				TravelDate:     travelDate,
				Company:        inv.TravelsName,
				MinPrice:       minFare(inv.FareList),
				AvailableSeats: inv.AvailableSeats,
				CompanyRating:  inv.TotalRatings,
			})
		}
	}

	log.Info().Int("files", len(paths)).Int("trips", len(trips)).Msg("loaded fare data")
	return trips, nil
}

func readFareFile(path string) (*redbusFile, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("file", filepath.Base(path)).Msg("skipping unreadable fare file")
		return nil, false
	}
	if len(content) == 0 {
		log.Warn().Str("file", filepath.Base(path)).Msg("skipping empty fare file")
		return nil, false
	}

	var file redbusFile
	if err := json.Unmarshal(content, &file); err != nil {
		log.Warn().Err(err).Str("file", filepath.Base(path)).Msg("skipping malformed fare file")
		return nil, false
	}
	if file.Inventories == nil {
		log.Warn().Str("file", filepath.Base(path)).Msg("skipping fare file without inventory list")
		return nil, false
	}
	return &file, true
}

// minFare returns the lowest numeric entry in the fare list, or nil when the
// list has no usable price. The trip is still kept in that case; a missing
// price excludes it from budget filtering but not from the dataset.
func minFare(fareList []interface{}) *float64 {
	var min *float64
	for _, raw := range fareList {
		price, ok := raw.(float64)
		if !ok {
			continue
		}
		if min == nil || price < *min {
			v := price
			min = &v
		}
	}
	return min
}

// parseDepartureDate extracts the calendar date from a scraped departure
// timestamp such as "2025-07-15 08:30:00".
func parseDepartureDate(departureTime string) (time.Time, error) {
	if len(departureTime) < 10 {
		return time.Time{}, fmt.Errorf("departure time too short: %q", departureTime)
	}
	return time.Parse("2006-01-02", departureTime[:10])
}
