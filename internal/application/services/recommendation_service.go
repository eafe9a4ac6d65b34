package services

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/entities"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/repositories"
)

// Budget ceilings of the relaxation ladder, as multiples of the query budget.
const (
	strictBudgetFactor  = 1.20
	relaxedBudgetFactor = 1.50
)

// maxRecommendations caps the ranked result set.
const maxRecommendations = 20

// Relaxation labels, in ladder order. RelaxationNone means no pass matched.
const (
	RelaxationStrict        = "strict"
	RelaxationWiderBudget   = "wider_budget"
	RelaxationNoClimate     = "no_climate"
	RelaxationNoDestination = "no_destination"
	RelaxationNone          = "none"
)

// Recommendation is the full response of one search: the ranked offers, which
// relaxation pass produced them, and the savings tips derived from them.
type Recommendation struct {
	Results     []*entities.ScoredOffer `json:"results"`
	Relaxation  string                  `json:"relaxation"`
	Suggestions []*entities.Suggestion  `json:"suggestions"`
}

// SecondaryFilter narrows an already-ranked result set. It mirrors the
// sidebar filters of the search page and is applied by the handler after the
// ranking cap, never before.
type SecondaryFilter struct {
	Companies []string
	MinRating *float64
	MinSeats  *int
	DateFrom  *time.Time
	DateTo    *time.Time
}

// RecommendationService ranks the offer store against a user query.
type RecommendationService struct {
	repo    repositories.OfferRepository
	scorer  *ScoringService
	savings *SavingsService
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(
	repo repositories.OfferRepository,
	scorer *ScoringService,
	savings *SavingsService,
) *RecommendationService {
	return &RecommendationService{repo: repo, scorer: scorer, savings: savings}
}

// Recommend validates the query, walks the relaxation ladder over the full
// offer set, scores and ranks the survivors and attaches savings suggestions.
// An empty store or a ladder with no survivors yields an empty result, not an
// error.
func (s *RecommendationService) Recommend(ctx context.Context, query *entities.TripQuery) (*Recommendation, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	offers, err := s.repo.List(ctx, repositories.OfferFilter{})
	if err != nil {
		return nil, err
	}

	survivors, relaxation := relaxingFilter(offers, query)
	if relaxation != RelaxationStrict && relaxation != RelaxationNone {
		log.Debug().Str("relaxation", relaxation).Int("survivors", len(survivors)).
			Msg("strict filters relaxed to find candidates")
	}

	scored := make([]*entities.ScoredOffer, 0, len(survivors))
	for _, offer := range survivors {
		scored = append(scored, s.scorer.Score(offer, query))
	}
	sortScored(scored)
	if len(scored) > maxRecommendations {
		scored = scored[:maxRecommendations]
	}

	return &Recommendation{
		Results:     scored,
		Relaxation:  relaxation,
		Suggestions: s.savings.Suggestions(scored, query),
	}, nil
}

// relaxingFilter walks the ladder of predicate sets over the full offer set.
// Each pass is evaluated from scratch against all offers, never against the
// previous pass's output, so a later pass can widen in one dimension without
// inheriting an earlier pass's narrowing in another.
func relaxingFilter(offers []*entities.TripOffer, query *entities.TripQuery) ([]*entities.TripOffer, string) {
	passes := []struct {
		label     string
		predicate func(*entities.TripOffer) bool
	}{
		{RelaxationStrict, func(o *entities.TripOffer) bool {
			return withinBudget(o, query, strictBudgetFactor) &&
				matchesDestination(o, query) &&
				matchesClimate(o, query)
		}},
		{RelaxationWiderBudget, func(o *entities.TripOffer) bool {
			return withinBudget(o, query, relaxedBudgetFactor) &&
				matchesClimate(o, query)
		}},
		{RelaxationNoClimate, func(o *entities.TripOffer) bool {
			return withinBudget(o, query, relaxedBudgetFactor) &&
				matchesDestination(o, query)
		}},
		{RelaxationNoDestination, func(o *entities.TripOffer) bool {
			return withinBudget(o, query, relaxedBudgetFactor)
		}},
	}

	for _, pass := range passes {
		var survivors []*entities.TripOffer
		for _, offer := range offers {
			if pass.predicate(offer) {
				survivors = append(survivors, offer)
			}
		}
		if len(survivors) > 0 {
			return survivors, pass.label
		}
	}
	return nil, RelaxationNone
}

// withinBudget requires a known price. Unpriced offers never pass a price
// predicate.
func withinBudget(offer *entities.TripOffer, query *entities.TripQuery, factor float64) bool {
	return offer.MinPrice != nil && *offer.MinPrice <= factor*query.MaxBudget
}

func matchesDestination(offer *entities.TripOffer, query *entities.TripQuery) bool {
	return query.PreferredDestination == "" || offer.Destination == query.PreferredDestination
}

func matchesClimate(offer *entities.TripOffer, query *entities.TripQuery) bool {
	return query.PreferredClimate == "" || offer.ClimateCategory == query.PreferredClimate
}

// sortScored orders by score descending, breaking ties by ascending price then
// company name. Unpriced offers sort after priced ones at the same score.
func sortScored(scored []*entities.ScoredOffer) {
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		switch {
		case a.MinPrice == nil && b.MinPrice == nil:
			return a.Company < b.Company
		case a.MinPrice == nil:
			return false
		case b.MinPrice == nil:
			return true
		case *a.MinPrice != *b.MinPrice:
			return *a.MinPrice < *b.MinPrice
		default:
			return a.Company < b.Company
		}
	})
}

// ApplySecondaryFilter narrows a ranked result set with the sidebar filters.
// Relative order is preserved.
func ApplySecondaryFilter(scored []*entities.ScoredOffer, filter SecondaryFilter) []*entities.ScoredOffer {
	allowed := make(map[string]bool, len(filter.Companies))
	for _, company := range filter.Companies {
		allowed[company] = true
	}

	result := make([]*entities.ScoredOffer, 0, len(scored))
	for _, offer := range scored {
		if len(allowed) > 0 && !allowed[offer.Company] {
			continue
		}
		if filter.MinRating != nil && (offer.CompanyRating == nil || *offer.CompanyRating < *filter.MinRating) {
			continue
		}
		if filter.MinSeats != nil && (offer.AvailableSeats == nil || *offer.AvailableSeats < *filter.MinSeats) {
			continue
		}
		day := truncateToDay(offer.TravelDate)
		if filter.DateFrom != nil && day.Before(truncateToDay(*filter.DateFrom)) {
			continue
		}
		if filter.DateTo != nil && day.After(truncateToDay(*filter.DateTo)) {
			continue
		}
		result = append(result, offer)
	}
	return result
}
