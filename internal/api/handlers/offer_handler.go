package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/entities"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/repositories"
)

const (
	defaultOfferLimit = 50
	maxOfferLimit     = 200
)

// OfferHandler serves browse-style reads of the offer store
type OfferHandler struct {
	repo repositories.OfferRepository
}

// NewOfferHandler creates a new offer handler
func NewOfferHandler(repo repositories.OfferRepository) *OfferHandler {
	return &OfferHandler{repo: repo}
}

// ListOffers handles GET /api/offers
func (h *OfferHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	filter, err := parseOfferFilter(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	offers, err := h.repo.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if offers == nil {
		offers = []*entities.TripOffer{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"offers": offers,
		"count":  len(offers),
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// GetStats handles GET /api/offers/stats
func (h *OfferHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Stats(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// ListDestinations handles GET /api/destinations
func (h *OfferHandler) ListDestinations(w http.ResponseWriter, r *http.Request) {
	destinations, err := h.repo.Destinations(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if destinations == nil {
		destinations = []string{}
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"destinations": destinations,
	})
}

func parseOfferFilter(r *http.Request) (repositories.OfferFilter, error) {
	query := r.URL.Query()
	filter := repositories.OfferFilter{
		Destination: query.Get("destination"),
		Climate:     entities.ClimateCategory(query.Get("climate")),
		Limit:       defaultOfferLimit,
	}

	if companies := query.Get("companies"); companies != "" {
		filter.Companies = splitCSV(companies)
	}
	if v := query.Get("max_price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, errInvalidParam("max_price")
		}
		filter.MaxPrice = &price
	}
	if v := query.Get("min_rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, errInvalidParam("min_rating")
		}
		filter.MinRating = &rating
	}
	if v := query.Get("min_seats"); v != "" {
		seats, err := strconv.Atoi(v)
		if err != nil {
			return filter, errInvalidParam("min_seats")
		}
		filter.MinSeats = &seats
	}
	if v := query.Get("date_from"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, errInvalidParam("date_from")
		}
		filter.DateFrom = &from
	}
	if v := query.Get("date_to"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, errInvalidParam("date_to")
		}
		filter.DateTo = &to
	}
	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return filter, errInvalidParam("limit")
		}
		if limit > maxOfferLimit {
			limit = maxOfferLimit
		}
		filter.Limit = limit
	}
	if v := query.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return filter, errInvalidParam("offset")
		}
		filter.Offset = offset
	}

	return filter, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

type paramError struct {
	name string
}

func (e paramError) Error() string {
	return "invalid value for parameter " + e.name
}

func errInvalidParam(name string) error {
	return paramError{name: name}
}
