package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/entities"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/repositories"
)

func TestListOffers(t *testing.T) {
	travelDate := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	repo := &stubOfferRepo{offers: []*entities.TripOffer{
		{Origin: "Lima", Destination: "Cusco", TravelDate: travelDate, Company: "Civa", MinPrice: floatPtr(85.5)},
	}}
	handler := NewOfferHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/offers?destination=Cusco", nil)
	rec := httptest.NewRecorder()
	handler.ListOffers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Offers []struct {
			Destination string `json:"destination"`
		} `json:"offers"`
		Count int `json:"count"`
		Limit int `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, defaultOfferLimit, body.Limit)
	require.Len(t, body.Offers, 1)
	assert.Equal(t, "Cusco", body.Offers[0].Destination)
}

func TestListOffers_EmptyStore(t *testing.T) {
	handler := NewOfferHandler(&stubOfferRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/offers", nil)
	rec := httptest.NewRecorder()
	handler.ListOffers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"offers":[]`)
}

func TestListOffers_InvalidParams(t *testing.T) {
	handler := NewOfferHandler(&stubOfferRepo{})

	for _, target := range []string{
		"/api/offers?max_price=cheap",
		"/api/offers?min_seats=many",
		"/api/offers?date_from=soon",
		"/api/offers?limit=0",
		"/api/offers?offset=-1",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		handler.ListOffers(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestGetStats(t *testing.T) {
	repo := &stubOfferRepo{stats: &repositories.StoreStats{
		Offers:       120,
		Destinations: 8,
		Companies:    15,
		MinPrice:     floatPtr(35),
		MaxPrice:     floatPtr(210),
	}}
	handler := NewOfferHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/offers/stats", nil)
	rec := httptest.NewRecorder()
	handler.GetStats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var stats repositories.StoreStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 120, stats.Offers)
	require.NotNil(t, stats.MinPrice)
	assert.Equal(t, 35.0, *stats.MinPrice)
}

func TestListDestinations(t *testing.T) {
	repo := &stubOfferRepo{dests: []string{"Arequipa", "Cusco"}}
	handler := NewOfferHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/destinations", nil)
	rec := httptest.NewRecorder()
	handler.ListDestinations(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Destinations []string `json:"destinations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"Arequipa", "Cusco"}, body.Destinations)
}

func TestListDestinations_Empty(t *testing.T) {
	handler := NewOfferHandler(&stubOfferRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/destinations", nil)
	rec := httptest.NewRecorder()
	handler.ListDestinations(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"destinations":[]`)
}
