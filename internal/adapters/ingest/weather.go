package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/entities"
	apperrors "github.com/JhoJha/Viajes-Economicos-Chaskiway/pkg/errors"
)

// WeatherReader loads the hourly temperature CSV and aggregates it into one
// average per destination per day.
type WeatherReader struct {
	path string
}

// NewWeatherReader creates a weather reader over the given CSV file
func NewWeatherReader(path string) *WeatherReader {
	return &WeatherReader{path: path}
}

// Load reads the CSV, averages the hourly temperatures per destination/date,
// rounds to two decimals and assigns the climate category. Rows that are too
// short or carry a non-numeric temperature or unparseable timestamp are
// skipped with a warning; a bad row never aborts the batch.
func (r *WeatherReader) Load(ctx context.Context) ([]*entities.WeatherStat, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("weather file not found: %s", r.path))
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Row length is validated per record below; a stray comma in one row must
	// not abort the batch.
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read weather header", err)
	}

	cols, err := columnIndex(header, "time", "temperature_c", "destination")
	if err != nil {
		return nil, err
	}
	timeCol, tempCol, destCol := cols[0], cols[1], cols[2]
	minFields := maxIndex(cols) + 1

	type accumulator struct {
		sum   float64
		count int
	}
	type groupKey struct {
		destination string
		date        time.Time
	}
	groups := make(map[groupKey]*accumulator)
	skipped := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewInternalError("failed to read weather row", err)
		}
		if len(record) < minFields {
			skipped++
			continue
		}

		date, dateErr := parseObservationDate(record[timeCol])
		temp, tempErr := strconv.ParseFloat(strings.TrimSpace(record[tempCol]), 64)
		if dateErr != nil || tempErr != nil {
			skipped++
			continue
		}

		key := groupKey{destination: record[destCol], date: date}
		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{}
			groups[key] = acc
		}
		acc.sum += temp
		acc.count++
	}

	if skipped > 0 {
		log.Warn().Int("rows", skipped).Msg("skipped malformed weather rows")
	}

	stats := make([]*entities.WeatherStat, 0, len(groups))
	for key, acc := range groups {
		avg := math.Round(acc.sum/float64(acc.count)*100) / 100
		stats = append(stats, &entities.WeatherStat{
			Destination:    key.destination,
			Date:           key.date,
			AvgTemperature: avg,
			Category:       entities.ClimateFromTemperature(avg),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Destination != stats[j].Destination {
			return stats[i].Destination < stats[j].Destination
		}
		return stats[i].Date.Before(stats[j].Date)
	})

	log.Info().Int("stats", len(stats)).Msg("loaded weather data")
	return stats, nil
}

// parseObservationDate extracts the calendar date from an hourly timestamp
// such as "2025-07-01T14:00" or "2025-07-01 14:00:00".
func parseObservationDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if len(value) < 10 {
		return time.Time{}, fmt.Errorf("timestamp too short: %q", value)
	}
	return time.Parse("2006-01-02", value[:10])
}

func maxIndex(indexes []int) int {
	max := 0
	for _, i := range indexes {
		if i > max {
			max = i
		}
	}
	return max
}

// columnIndex resolves required header names to their positions,
// case-insensitively.
func columnIndex(header []string, names ...string) ([]int, error) {
	indexes := make([]int, len(names))
	for i, name := range names {
		found := -1
		for j, col := range header {
			if strings.EqualFold(strings.TrimSpace(col), name) {
				found = j
				break
			}
		}
		if found == -1 {
			return nil, apperrors.NewValidationError(fmt.Sprintf("missing required column %q", name))
		}
		indexes[i] = found
	}
	return indexes, nil
}
