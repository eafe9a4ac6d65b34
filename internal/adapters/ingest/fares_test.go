package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestFareReader_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lima_cusco.json", `{
		"parentSrcCityName": "Lima",
		"parentDstCityName": "Cusco",
		"inventories": [
			{
				"departureTime": "2026-07-15 08:30:00",
				"travelsName": "Civa",
				"fareList": [120.5, 85.5, 99],
				"availableSeats": 24,
				"totalRatings": 4.2
			},
			{
				"departureTime": "2026-07-15 22:00:00",
				"travelsName": "Oltursa",
				"fareList": ["S/ 90", 110],
				"availableSeats": 10,
				"totalRatings": 3.8
			}
		]
	}`)

	reader := NewFareReader(dir)
	trips, err := reader.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, trips, 2)

	civa := trips[0]
	assert.Equal(t, "Lima", civa.Origin)
	assert.Equal(t, "Cusco", civa.Destination)
	assert.Equal(t, time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC), civa.TravelDate)
	assert.Equal(t, "Civa", civa.Company)
	require.NotNil(t, civa.MinPrice)
	assert.Equal(t, 85.5, *civa.MinPrice)
	require.NotNil(t, civa.AvailableSeats)
	assert.Equal(t, 24, *civa.AvailableSeats)
	require.NotNil(t, civa.CompanyRating)
	assert.Equal(t, 4.2, *civa.CompanyRating)

	oltursa := trips[1]
	require.NotNil(t, oltursa.MinPrice)
	assert.Equal(t, 110.0, *oltursa.MinPrice)
}

func TestFareReader_GarbageOnlyFareListKeepsTrip(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lima_piura.json", `{
		"parentSrcCityName": "Lima",
		"parentDstCityName": "Piura",
		"inventories": [
			{
				"departureTime": "2026-07-20 09:00:00",
				"travelsName": "Tepsa",
				"fareList": ["N/A", "consultar", null],
				"availableSeats": 5
			}
		]
	}`)

	reader := NewFareReader(dir)
	trips, err := reader.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Nil(t, trips[0].MinPrice)
	assert.Nil(t, trips[0].CompanyRating)
}

func TestFareReader_SkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.json", "")
	writeFile(t, dir, "malformed.json", "{not json")
	writeFile(t, dir, "no_inventories.json", `{"parentSrcCityName": "Lima", "parentDstCityName": "Ica"}`)
	writeFile(t, dir, "good.json", `{
		"parentSrcCityName": "Lima",
		"parentDstCityName": "Ica",
		"inventories": [
			{"departureTime": "2026-07-18 07:00:00", "travelsName": "Soyuz", "fareList": [35]}
		]
	}`)

	reader := NewFareReader(dir)
	trips, err := reader.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "Ica", trips[0].Destination)
}

func TestFareReader_SkipsUnparseableDepartureTime(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad_dates.json", `{
		"parentSrcCityName": "Lima",
		"parentDstCityName": "Cusco",
		"inventories": [
			{"departureTime": "soon", "travelsName": "Civa", "fareList": [80]},
			{"departureTime": "2026-07-15 08:00:00", "travelsName": "Civa", "fareList": [80]}
		]
	}`)

	reader := NewFareReader(dir)
	trips, err := reader.Load(context.Background())

	require.NoError(t, err)
	assert.Len(t, trips, 1)
}

func TestFareReader_EmptyDirectoryFails(t *testing.T) {
	reader := NewFareReader(t.TempDir())
	_, err := reader.Load(context.Background())
	assert.Error(t, err)
}
