package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/entities"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/repositories"
)

func offerColumns() []string {
	return []string{
		"origin", "destination", "travel_date", "company",
		"min_price", "available_seats", "company_rating",
		"avg_temperature", "climate_category", "destination_image_url",
	}
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestPostgresOfferAdapter_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	travelDate := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(offerColumns()).
		AddRow("Lima", "Cusco", travelDate, "Civa", 85.50, 24, 4.2, 12.35, "Cold", "https://img.example.com/cusco.jpg").
		AddRow("Lima", "Piura", travelDate, "Oltursa", nil, nil, nil, nil, nil, nil)

	mock.ExpectQuery(`SELECT .* FROM "trip_offers"`).WillReturnRows(rows)

	adapter := NewPostgresOfferAdapter(db)
	offers, err := adapter.List(context.Background(), repositories.OfferFilter{})

	require.NoError(t, err)
	require.Len(t, offers, 2)

	cusco := offers[0]
	assert.Equal(t, "Cusco", cusco.Destination)
	require.NotNil(t, cusco.MinPrice)
	assert.Equal(t, 85.50, *cusco.MinPrice)
	require.NotNil(t, cusco.AvailableSeats)
	assert.Equal(t, 24, *cusco.AvailableSeats)
	assert.Equal(t, entities.ClimateCold, cusco.ClimateCategory)
	assert.Equal(t, "https://img.example.com/cusco.jpg", cusco.DestinationImageURL)

	piura := offers[1]
	assert.Nil(t, piura.MinPrice)
	assert.Nil(t, piura.AvailableSeats)
	assert.Nil(t, piura.CompanyRating)
	assert.Nil(t, piura.AvgTemperature)
	assert.Equal(t, entities.ClimateCategory(""), piura.ClimateCategory)
	assert.Empty(t, piura.DestinationImageURL)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresOfferAdapter_ListEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM "trip_offers"`).
		WillReturnRows(sqlmock.NewRows(offerColumns()))

	adapter := NewPostgresOfferAdapter(db)
	offers, err := adapter.List(context.Background(), repositories.OfferFilter{
		Destination: "Arequipa",
		MaxPrice:    floatPtr(100),
		MinSeats:    intPtr(10),
	})

	require.NoError(t, err)
	assert.Empty(t, offers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresOfferAdapter_ReplaceAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "trip_offers"`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT INTO "trip_offers"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	adapter := NewPostgresOfferAdapter(db)
	offers := []*entities.TripOffer{
		{
			Origin:      "Lima",
			Destination: "Cusco",
			TravelDate:  time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
			Company:     "Civa",
			MinPrice:    floatPtr(85.50),
		},
		{
			Origin:      "Lima",
			Destination: "Trujillo",
			TravelDate:  time.Date(2026, 7, 16, 0, 0, 0, 0, time.UTC),
			Company:     "Oltursa",
			MinPrice:    nil,
		},
	}

	err = adapter.ReplaceAll(context.Background(), offers)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresOfferAdapter_ReplaceAllEmptyClearsTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "trip_offers"`).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	adapter := NewPostgresOfferAdapter(db)
	err = adapter.ReplaceAll(context.Background(), nil)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresOfferAdapter_ReplaceAllRollsBackOnInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "trip_offers"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "trip_offers"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	adapter := NewPostgresOfferAdapter(db)
	err = adapter.ReplaceAll(context.Background(), []*entities.TripOffer{
		{Origin: "Lima", Destination: "Cusco", TravelDate: time.Now(), Company: "Civa"},
	})

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresOfferAdapter_Destinations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"destination"}).
		AddRow("Arequipa").
		AddRow("Cusco").
		AddRow("Trujillo")
	mock.ExpectQuery(`SELECT DISTINCT "destination" FROM "trip_offers"`).
		WillReturnRows(rows)

	adapter := NewPostgresOfferAdapter(db)
	destinations, err := adapter.Destinations(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Arequipa", "Cusco", "Trujillo"}, destinations)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresOfferAdapter_Stats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"offers", "destinations", "companies", "min_price", "max_price"}).
		AddRow(120, 8, 15, 35.0, 210.0)
	mock.ExpectQuery(`SELECT COUNT`).WillReturnRows(rows)

	adapter := NewPostgresOfferAdapter(db)
	stats, err := adapter.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 120, stats.Offers)
	assert.Equal(t, 8, stats.Destinations)
	assert.Equal(t, 15, stats.Companies)
	require.NotNil(t, stats.MinPrice)
	assert.Equal(t, 35.0, *stats.MinPrice)
	require.NotNil(t, stats.MaxPrice)
	assert.Equal(t, 210.0, *stats.MaxPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresOfferAdapter_StatsEmptyStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"offers", "destinations", "companies", "min_price", "max_price"}).
		AddRow(0, 0, 0, nil, nil)
	mock.ExpectQuery(`SELECT COUNT`).WillReturnRows(rows)

	adapter := NewPostgresOfferAdapter(db)
	stats, err := adapter.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, stats.Offers)
	assert.Nil(t, stats.MinPrice)
	assert.Nil(t, stats.MaxPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}
