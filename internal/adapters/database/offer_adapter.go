package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/rs/zerolog/log"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/entities"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/repositories"
	apperrors "github.com/JhoJha/Viajes-Economicos-Chaskiway/pkg/errors"
)

const offersTable = "trip_offers"

// replaceBatchSize bounds the number of rows per INSERT during ReplaceAll.
const replaceBatchSize = 500

// PostgresOfferAdapter implements OfferRepository using PostgreSQL
type PostgresOfferAdapter struct {
	db      *sql.DB
	dialect goqu.DialectWrapper
}

// NewPostgresOfferAdapter creates a new PostgreSQL offer adapter
func NewPostgresOfferAdapter(db *sql.DB) repositories.OfferRepository {
	return &PostgresOfferAdapter{
		db:      db,
		dialect: goqu.Dialect("postgres"),
	}
}

// InitSchema creates the trip_offers table if it does not exist.
// The unique constraint mirrors the dedupe key of the merge step, so a
// re-inserted duplicate is silently dropped rather than doubled.
func (a *PostgresOfferAdapter) InitSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS trip_offers (
		id SERIAL PRIMARY KEY,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		travel_date DATE NOT NULL,
		company TEXT NOT NULL,
		min_price NUMERIC(10, 2),
		available_seats INTEGER,
		company_rating NUMERIC(3, 2),
		avg_temperature NUMERIC(5, 2),
		climate_category TEXT,
		destination_image_url TEXT,
		UNIQUE (origin, destination, travel_date, company, min_price)
	);
	CREATE INDEX IF NOT EXISTS idx_trip_offers_destination ON trip_offers (destination);
	CREATE INDEX IF NOT EXISTS idx_trip_offers_travel_date ON trip_offers (travel_date);
	CREATE INDEX IF NOT EXISTS idx_trip_offers_min_price ON trip_offers (min_price);
	`
	if _, err := a.db.ExecContext(ctx, schema); err != nil {
		return apperrors.NewInternalError("failed to create trip_offers schema", err)
	}
	return nil
}

// ReplaceAll atomically replaces the entire table with the given offers.
// The delete and all inserts share one transaction, so readers only ever see
// the previous snapshot or the new one, never a half-written table.
func (a *PostgresOfferAdapter) ReplaceAll(ctx context.Context, offers []*entities.TripOffer) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewInternalError("failed to begin replace transaction", err)
	}
	defer tx.Rollback()

	deleteSQL, deleteArgs, err := a.dialect.Delete(offersTable).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	if _, err := tx.ExecContext(ctx, deleteSQL, deleteArgs...); err != nil {
		return apperrors.NewInternalError("failed to clear trip_offers", err)
	}

	for start := 0; start < len(offers); start += replaceBatchSize {
		end := start + replaceBatchSize
		if end > len(offers) {
			end = len(offers)
		}

		records := make([]goqu.Record, 0, end-start)
		for _, offer := range offers[start:end] {
			records = append(records, goqu.Record{
				"origin":                offer.Origin,
				"destination":           offer.Destination,
				"travel_date":           offer.TravelDate,
				"company":               offer.Company,
				"min_price":             offer.MinPrice,
				"available_seats":       offer.AvailableSeats,
				"company_rating":        offer.CompanyRating,
				"avg_temperature":       offer.AvgTemperature,
				"climate_category":      nullableCategory(offer.ClimateCategory),
				"destination_image_url": nullableString(offer.DestinationImageURL),
			})
		}

		insertSQL, insertArgs, err := a.dialect.Insert(offersTable).
			Rows(recordsToInterfaces(records)...).
			OnConflict(goqu.DoNothing()).
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build insert query", err)
		}
		if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
			return apperrors.NewInternalError("failed to insert trip offers", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit replace transaction", err)
	}

	log.Info().Int("offers", len(offers)).Msg("replaced trip_offers table")
	return nil
}

// List retrieves offers matching the filter, ordered by date, price, company.
func (a *PostgresOfferAdapter) List(ctx context.Context, filter repositories.OfferFilter) ([]*entities.TripOffer, error) {
	ds := a.dialect.From(offersTable).Select(
		"origin", "destination", "travel_date", "company",
		"min_price", "available_seats", "company_rating",
		"avg_temperature", "climate_category", "destination_image_url",
	)

	if filter.Destination != "" {
		ds = ds.Where(goqu.Ex{"destination": filter.Destination})
	}
	if len(filter.Companies) > 0 {
		ds = ds.Where(goqu.Ex{"company": filter.Companies})
	}
	if filter.Climate != "" {
		ds = ds.Where(goqu.Ex{"climate_category": string(filter.Climate)})
	}
	if filter.MaxPrice != nil {
		ds = ds.Where(goqu.C("min_price").Lte(*filter.MaxPrice))
	}
	if filter.MinRating != nil {
		ds = ds.Where(goqu.C("company_rating").Gte(*filter.MinRating))
	}
	if filter.MinSeats != nil {
		ds = ds.Where(goqu.C("available_seats").Gte(*filter.MinSeats))
	}
	if filter.DateFrom != nil {
		ds = ds.Where(goqu.C("travel_date").Gte(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		ds = ds.Where(goqu.C("travel_date").Lte(*filter.DateTo))
	}

	ds = ds.Order(
		goqu.C("travel_date").Asc(),
		goqu.C("min_price").Asc().NullsLast(),
		goqu.C("company").Asc(),
	)

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list trip offers", err)
	}
	defer rows.Close()

	var offers []*entities.TripOffer
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate trip offers", err)
	}

	return offers, nil
}

// Destinations retrieves the distinct destination names in alphabetical order.
func (a *PostgresOfferAdapter) Destinations(ctx context.Context) ([]string, error) {
	query, args, err := a.dialect.From(offersTable).
		SelectDistinct("destination").
		Order(goqu.C("destination").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build destinations query", err)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list destinations", err)
	}
	defer rows.Close()

	var destinations []string
	for rows.Next() {
		var destination string
		if err := rows.Scan(&destination); err != nil {
			return nil, apperrors.NewInternalError("failed to scan destination", err)
		}
		destinations = append(destinations, destination)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate destinations", err)
	}

	return destinations, nil
}

// Stats summarizes the current store contents.
func (a *PostgresOfferAdapter) Stats(ctx context.Context) (*repositories.StoreStats, error) {
	query, args, err := a.dialect.From(offersTable).Select(
		goqu.COUNT(goqu.Star()).As("offers"),
		goqu.L("COUNT(DISTINCT destination)").As("destinations"),
		goqu.L("COUNT(DISTINCT company)").As("companies"),
		goqu.MIN("min_price").As("min_price"),
		goqu.MAX("min_price").As("max_price"),
	).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build stats query", err)
	}

	var (
		stats    repositories.StoreStats
		minPrice sql.NullFloat64
		maxPrice sql.NullFloat64
	)
	row := a.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&stats.Offers, &stats.Destinations, &stats.Companies, &minPrice, &maxPrice); err != nil {
		return nil, apperrors.NewInternalError("failed to scan store stats", err)
	}
	if minPrice.Valid {
		stats.MinPrice = &minPrice.Float64
	}
	if maxPrice.Valid {
		stats.MaxPrice = &maxPrice.Float64
	}

	return &stats, nil
}

func scanOffer(rows *sql.Rows) (*entities.TripOffer, error) {
	var (
		offer    entities.TripOffer
		price    sql.NullFloat64
		seats    sql.NullInt64
		rating   sql.NullFloat64
		temp     sql.NullFloat64
		climate  sql.NullString
		imageURL sql.NullString
	)
	err := rows.Scan(
		&offer.Origin, &offer.Destination, &offer.TravelDate, &offer.Company,
		&price, &seats, &rating, &temp, &climate, &imageURL,
	)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan trip offer", err)
	}

	if price.Valid {
		offer.MinPrice = &price.Float64
	}
	if seats.Valid {
		s := int(seats.Int64)
		offer.AvailableSeats = &s
	}
	if rating.Valid {
		offer.CompanyRating = &rating.Float64
	}
	if temp.Valid {
		offer.AvgTemperature = &temp.Float64
	}
	if climate.Valid {
		offer.ClimateCategory = entities.ClimateCategory(climate.String)
	}
	if imageURL.Valid {
		offer.DestinationImageURL = imageURL.String
	}

	return &offer, nil
}

func nullableCategory(c entities.ClimateCategory) interface{} {
	if c == "" {
		return nil
	}
	return string(c)
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func recordsToInterfaces(records []goqu.Record) []interface{} {
	out := make([]interface{}, len(records))
	for i, r := range records {
		out[i] = r
	}
	return out
}
