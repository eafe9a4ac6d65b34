package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/entities"
)

func TestScoringService_FullMatch(t *testing.T) {
	travelDate := date(2026, time.July, 15)
	scorer := NewScoringService()

	scored := scorer.Score(
		&entities.TripOffer{
			Destination:    "Cusco",
			TravelDate:     travelDate,
			Company:        "Civa",
			MinPrice:       fp(60),
			CompanyRating:  fp(4.5),
			AvailableSeats: ip(20),
		},
		&entities.TripQuery{MaxBudget: 100, TravelDate: travelDate},
	)

	assert.Equal(t, 91.8, scored.Score)
	assert.Equal(t, TierPerfect, scored.MatchTier)
	assert.Equal(t, 40.0, scored.Breakdown["price"])
	assert.Equal(t, 25.0, scored.Breakdown["date"])
	assert.Equal(t, 15.0, scored.Breakdown["climate"])
	assert.Equal(t, 8.75, scored.Breakdown["rating"])
	assert.Equal(t, 3.0, scored.Breakdown["seats"])
}

func TestScoringService_PriceBuckets(t *testing.T) {
	travelDate := date(2026, time.July, 15)
	query := &entities.TripQuery{MaxBudget: 100, TravelDate: travelDate}
	scorer := NewScoringService()

	cases := []struct {
		price float64
		want  float64
	}{
		{70, 40},
		{70.01, 30},
		{85, 30},
		{85.01, 20},
		{100, 20},
		{100.01, 0},
	}
	for _, tc := range cases {
		scored := scorer.Score(offer("Cusco", travelDate, "Civa", fp(tc.price)), query)
		assert.Equal(t, tc.want, scored.Breakdown["price"], "price %.2f", tc.price)
	}
}

func TestScoringService_DateProximityBuckets(t *testing.T) {
	queryDate := date(2026, time.July, 15)
	query := &entities.TripQuery{MaxBudget: 100, TravelDate: queryDate}
	scorer := NewScoringService()

	cases := []struct {
		offsetDays int
		want       float64
	}{
		{0, 25},
		{1, 20},
		{-1, 20},
		{3, 15},
		{7, 10},
		{8, 5},
		{-30, 5},
	}
	for _, tc := range cases {
		travelDate := queryDate.AddDate(0, 0, tc.offsetDays)
		scored := scorer.Score(offer("Cusco", travelDate, "Civa", fp(60)), query)
		assert.Equal(t, tc.want, scored.Breakdown["date"], "offset %d", tc.offsetDays)
	}
}

func TestScoringService_ClimateComponent(t *testing.T) {
	travelDate := date(2026, time.July, 15)
	scorer := NewScoringService()

	warm := offer("Piura", travelDate, "Civa", fp(60))
	warm.ClimateCategory = entities.ClimateWarm

	noPref := scorer.Score(warm, &entities.TripQuery{MaxBudget: 100, TravelDate: travelDate})
	assert.Equal(t, 15.0, noPref.Breakdown["climate"])

	match := scorer.Score(warm, &entities.TripQuery{
		MaxBudget: 100, TravelDate: travelDate, PreferredClimate: entities.ClimateWarm,
	})
	assert.Equal(t, 20.0, match.Breakdown["climate"])

	mismatch := scorer.Score(warm, &entities.TripQuery{
		MaxBudget: 100, TravelDate: travelDate, PreferredClimate: entities.ClimateCold,
	})
	assert.Equal(t, 10.0, mismatch.Breakdown["climate"])

	unknown := offer("Piura", travelDate, "Civa", fp(60))
	unknownScored := scorer.Score(unknown, &entities.TripQuery{
		MaxBudget: 100, TravelDate: travelDate, PreferredClimate: entities.ClimateWarm,
	})
	assert.Equal(t, 10.0, unknownScored.Breakdown["climate"])
}

func TestScoringService_MissingFields(t *testing.T) {
	travelDate := date(2026, time.July, 15)
	query := &entities.TripQuery{MaxBudget: 100, TravelDate: travelDate}
	scorer := NewScoringService()

	scored := scorer.Score(offer("Cusco", travelDate, "Civa", nil), query)
	assert.Equal(t, 0.0, scored.Breakdown["price"])
	assert.Equal(t, 0.0, scored.Breakdown["rating"])
	assert.Equal(t, 1.0, scored.Breakdown["seats"])
}

func TestScoringService_SeatBuckets(t *testing.T) {
	travelDate := date(2026, time.July, 15)
	query := &entities.TripQuery{MaxBudget: 100, TravelDate: travelDate}
	scorer := NewScoringService()

	cases := []struct {
		seats int
		want  float64
	}{
		{30, 5},
		{29, 3},
		{15, 3},
		{14, 1},
		{0, 1},
	}
	for _, tc := range cases {
		o := offer("Cusco", travelDate, "Civa", fp(60))
		o.AvailableSeats = ip(tc.seats)
		scored := scorer.Score(o, query)
		assert.Equal(t, tc.want, scored.Breakdown["seats"], "seats %d", tc.seats)
	}
}

func TestScoringService_ScoreIsBounded(t *testing.T) {
	queryDate := date(2026, time.July, 15)
	query := &entities.TripQuery{
		MaxBudget:        100,
		TravelDate:       queryDate,
		PreferredClimate: entities.ClimateWarm,
	}
	scorer := NewScoringService()

	best := offer("Piura", queryDate, "Civa", fp(10))
	best.ClimateCategory = entities.ClimateWarm
	best.CompanyRating = fp(5)
	best.AvailableSeats = ip(40)
	scored := scorer.Score(best, query)
	assert.Equal(t, 100.0, scored.Score)

	worst := offer("Cusco", queryDate.AddDate(0, 0, 90), "Civa", nil)
	worstScored := scorer.Score(worst, query)
	require.GreaterOrEqual(t, worstScored.Score, 0.0)
	assert.LessOrEqual(t, worstScored.Score, 100.0)
}

func TestScoringService_CheaperNeverScoresLower(t *testing.T) {
	travelDate := date(2026, time.July, 15)
	query := &entities.TripQuery{MaxBudget: 100, TravelDate: travelDate}
	scorer := NewScoringService()

	prev := -1.0
	for price := 150.0; price >= 10; price -= 10 {
		scored := scorer.Score(offer("Cusco", travelDate, "Civa", fp(price)), query)
		assert.GreaterOrEqual(t, scored.Score, prev, "price %.0f", price)
		prev = scored.Score
	}
}

func TestMatchTiers(t *testing.T) {
	assert.Equal(t, TierPerfect, matchTier(85))
	assert.Equal(t, TierGood, matchTier(84.9))
	assert.Equal(t, TierGood, matchTier(70))
	assert.Equal(t, TierViable, matchTier(69.9))
	assert.Equal(t, TierViable, matchTier(50))
	assert.Equal(t, TierFallback, matchTier(49.9))
}
