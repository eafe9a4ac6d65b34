package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/application/services"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/entities"
)

// RecommendationHandler serves the search endpoint
type RecommendationHandler struct {
	service *services.RecommendationService
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(service *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

// GetRecommendations handles GET /api/recommendations.
//
// Required: budget, date. Optional: climate, destination, flex_days, plus the
// sidebar filters companies, min_rating and min_seats which are applied after
// ranking.
func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	query, secondary, err := parseRecommendationQuery(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	recommendation, err := h.service.Recommend(r.Context(), query)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	results := services.ApplySecondaryFilter(recommendation.Results, secondary)
	if results == nil {
		results = []*entities.ScoredOffer{}
	}
	suggestions := recommendation.Suggestions
	if suggestions == nil {
		suggestions = []*entities.Suggestion{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"results":     results,
		"count":       len(results),
		"relaxation":  recommendation.Relaxation,
		"suggestions": suggestions,
	})
}

func parseRecommendationQuery(r *http.Request) (*entities.TripQuery, services.SecondaryFilter, error) {
	params := r.URL.Query()
	var secondary services.SecondaryFilter

	query := &entities.TripQuery{
		PreferredClimate:     entities.ClimateCategory(params.Get("climate")),
		PreferredDestination: params.Get("destination"),
	}

	if v := params.Get("budget"); v != "" {
		budget, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, secondary, errInvalidParam("budget")
		}
		query.MaxBudget = budget
	}
	if v := params.Get("date"); v != "" {
		travelDate, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, secondary, errInvalidParam("date")
		}
		query.TravelDate = travelDate
	}
	if v := params.Get("flex_days"); v != "" {
		flexDays, err := strconv.Atoi(v)
		if err != nil || flexDays < 0 {
			return nil, secondary, errInvalidParam("flex_days")
		}
		query.FlexDays = flexDays
	}

	if companies := params.Get("companies"); companies != "" {
		secondary.Companies = splitCSV(companies)
	}
	if v := params.Get("min_rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, secondary, errInvalidParam("min_rating")
		}
		secondary.MinRating = &rating
	}
	if v := params.Get("min_seats"); v != "" {
		seats, err := strconv.Atoi(v)
		if err != nil {
			return nil, secondary, errInvalidParam("min_seats")
		}
		secondary.MinSeats = &seats
	}

	// The date-flexibility window doubles as the secondary date filter.
	if !query.TravelDate.IsZero() {
		flex := query.EffectiveFlexDays()
		from := query.TravelDate.AddDate(0, 0, -flex)
		to := query.TravelDate.AddDate(0, 0, flex)
		secondary.DateFrom = &from
		secondary.DateTo = &to
	}

	return query, secondary, nil
}
