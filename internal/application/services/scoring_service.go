package services

import (
	"math"
	"time"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/entities"
)

// Component weights of the match score. They sum to 100.
const (
	priceWeight   = 40.0
	dateWeight    = 25.0
	climateWeight = 20.0
	ratingWeight  = 10.0
	seatsWeight   = 5.0
)

// Match tier thresholds over the total score.
const (
	tierPerfectMin = 85.0
	tierGoodMin    = 70.0
	tierViableMin  = 50.0
)

// Match tier labels
const (
	TierPerfect  = "perfect"
	TierGood     = "good"
	TierViable   = "viable"
	TierFallback = "fallback"
)

// ScoringService computes the weighted match score of an offer against a
// query. It is stateless; scoring is a pure function of its two inputs.
type ScoringService struct{}

// NewScoringService creates a new scoring service
func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// Score computes the match score of one offer against one query. The total is
// the sum of five independent components, rounded to one decimal.
func (s *ScoringService) Score(offer *entities.TripOffer, query *entities.TripQuery) *entities.ScoredOffer {
	breakdown := map[string]float64{
		"price":   s.priceScore(offer, query),
		"date":    s.dateScore(offer, query),
		"climate": s.climateScore(offer, query),
		"rating":  s.ratingScore(offer),
		"seats":   s.seatsScore(offer),
	}

	total := 0.0
	for _, component := range breakdown {
		total += component
	}
	total = math.Round(total*10) / 10

	return &entities.ScoredOffer{
		TripOffer: offer,
		Score:     total,
		MatchTier: matchTier(total),
		Breakdown: breakdown,
	}
}

// priceScore rewards offers well under budget. An offer without a price
// contributes nothing.
func (s *ScoringService) priceScore(offer *entities.TripOffer, query *entities.TripQuery) float64 {
	if offer.MinPrice == nil {
		return 0
	}
	ratio := *offer.MinPrice / query.MaxBudget
	switch {
	case ratio <= 0.70:
		return priceWeight
	case ratio <= 0.85:
		return 30
	case ratio <= 1.00:
		return 20
	default:
		return 0
	}
}

// dateScore rewards proximity to the requested travel date.
func (s *ScoringService) dateScore(offer *entities.TripOffer, query *entities.TripQuery) float64 {
	days := daysBetween(offer.TravelDate, query.TravelDate)
	switch {
	case days == 0:
		return dateWeight
	case days <= 1:
		return 20
	case days <= 3:
		return 15
	case days <= 7:
		return 10
	default:
		return 5
	}
}

// climateScore is neutral when the query has no preference, and penalizes a
// mismatch without zeroing it out. An offer with unknown climate counts as a
// mismatch.
func (s *ScoringService) climateScore(offer *entities.TripOffer, query *entities.TripQuery) float64 {
	if query.PreferredClimate == "" {
		return 15
	}
	if offer.ClimateCategory == query.PreferredClimate {
		return climateWeight
	}
	return 10
}

// ratingScore maps the 1-5 carrier rating linearly onto [0, 10].
func (s *ScoringService) ratingScore(offer *entities.TripOffer) float64 {
	if offer.CompanyRating == nil {
		return 0
	}
	return ((*offer.CompanyRating - 1) / 4) * ratingWeight
}

func (s *ScoringService) seatsScore(offer *entities.TripOffer) float64 {
	if offer.AvailableSeats == nil {
		return 1
	}
	switch {
	case *offer.AvailableSeats >= 30:
		return seatsWeight
	case *offer.AvailableSeats >= 15:
		return 3
	default:
		return 1
	}
}

func matchTier(score float64) string {
	switch {
	case score >= tierPerfectMin:
		return TierPerfect
	case score >= tierGoodMin:
		return TierGood
	case score >= tierViableMin:
		return TierViable
	default:
		return TierFallback
	}
}

// daysBetween returns the absolute whole-day distance between two dates,
// ignoring time-of-day.
func daysBetween(a, b time.Time) int {
	aDay := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bDay := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	days := int(aDay.Sub(bDay).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}
