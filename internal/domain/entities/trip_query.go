package entities

import (
	"time"

	apperrors "github.com/JhoJha/Viajes-Economicos-Chaskiway/pkg/errors"
)

// DefaultFlexDays is the date window used when a query does not set one.
const DefaultFlexDays = 3

// TripQuery is one user's search criteria. It lives for a single request;
// nothing about it is persisted. Empty PreferredClimate/PreferredDestination
// means "no preference".
type TripQuery struct {
	MaxBudget            float64         `json:"max_budget"`
	TravelDate           time.Time       `json:"travel_date"`
	PreferredClimate     ClimateCategory `json:"preferred_climate,omitempty"`
	PreferredDestination string          `json:"preferred_destination,omitempty"`
	FlexDays             int             `json:"flex_days"`
}

// Validate checks the required fields. Scoring must never run on an invalid query.
func (q *TripQuery) Validate() error {
	if q.MaxBudget <= 0 {
		return apperrors.NewValidationError("max budget must be greater than zero")
	}
	if q.TravelDate.IsZero() {
		return apperrors.NewValidationError("travel date is required")
	}
	return nil
}

// EffectiveFlexDays returns the date-flexibility window, falling back to the default.
func (q *TripQuery) EffectiveFlexDays() int {
	if q.FlexDays <= 0 {
		return DefaultFlexDays
	}
	return q.FlexDays
}

// ScoredOffer is a TripOffer with its match score attached. Exists only for the
// duration of a request.
type ScoredOffer struct {
	*TripOffer
	Score     float64            `json:"score"`
	MatchTier string             `json:"match_tier"`
	Breakdown map[string]float64 `json:"score_breakdown,omitempty"`
}

// Suggestion is a savings tip generated alongside the recommendations.
type Suggestion struct {
	Type    string  `json:"type"`
	Message string  `json:"message"`
	Savings float64 `json:"savings"`
}

// Suggestion types
const (
	SuggestionDateShift      = "date_shift"
	SuggestionCheaperCarrier = "cheaper_carrier"
	SuggestionWeekendDeal    = "weekend_deal"
)
