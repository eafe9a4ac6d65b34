package services

import (
	"fmt"
	"time"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/entities"
)

// maxSuggestions caps the number of savings tips returned with a result set.
const maxSuggestions = 3

// SavingsService derives savings tips from an already-scored result set.
// The clock is injected so the weekend window is testable.
type SavingsService struct {
	now func() time.Time
}

// NewSavingsService creates a savings service. A nil clock defaults to time.Now.
func NewSavingsService(now func() time.Time) *SavingsService {
	if now == nil {
		now = time.Now
	}
	return &SavingsService{now: now}
}

// Suggestions runs the three generators over the scored offers, deduplicates
// by (type, message) keeping the first occurrence, and caps the result.
func (s *SavingsService) Suggestions(offers []*entities.ScoredOffer, query *entities.TripQuery) []*entities.Suggestion {
	var all []*entities.Suggestion
	all = append(all, s.dateShiftSuggestions(offers, query)...)
	all = append(all, s.cheaperCarrierSuggestions(offers)...)
	all = append(all, s.weekendDealSuggestions(offers)...)

	type dedupeKey struct {
		suggestionType string
		message        string
	}
	seen := make(map[dedupeKey]bool)
	result := make([]*entities.Suggestion, 0, maxSuggestions)
	for _, suggestion := range all {
		key := dedupeKey{suggestion.Type, suggestion.Message}
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, suggestion)
		if len(result) == maxSuggestions {
			break
		}
	}
	return result
}

// dateShiftSuggestions compares the cheapest offer inside the flexibility
// window against the cheapest offer on the exact requested date. No suggestion
// is emitted when the exact date has no priced offer to compare against.
func (s *SavingsService) dateShiftSuggestions(offers []*entities.ScoredOffer, query *entities.TripQuery) []*entities.Suggestion {
	flexDays := query.EffectiveFlexDays()

	var exactCheapest, windowCheapest *entities.ScoredOffer
	for _, offer := range offers {
		if offer.MinPrice == nil {
			continue
		}
		distance := daysBetween(offer.TravelDate, query.TravelDate)
		if distance > flexDays {
			continue
		}
		if windowCheapest == nil || *offer.MinPrice < *windowCheapest.MinPrice {
			windowCheapest = offer
		}
		if distance == 0 && (exactCheapest == nil || *offer.MinPrice < *exactCheapest.MinPrice) {
			exactCheapest = offer
		}
	}

	if exactCheapest == nil || windowCheapest == nil {
		return nil
	}
	savings := *exactCheapest.MinPrice - *windowCheapest.MinPrice
	if savings <= 0 {
		return nil
	}

	offset := signedDayOffset(windowCheapest.TravelDate, query.TravelDate)
	direction := "later"
	if offset < 0 {
		direction = "earlier"
		offset = -offset
	}
	message := fmt.Sprintf(
		"Traveling %d day(s) %s with %s costs %.2f less",
		offset, direction, windowCheapest.Company, savings,
	)
	return []*entities.Suggestion{{
		Type:    entities.SuggestionDateShift,
		Message: message,
		Savings: savings,
	}}
}

// cheaperCarrierSuggestions flags offers undercut by another carrier on the
// same destination and date.
func (s *SavingsService) cheaperCarrierSuggestions(offers []*entities.ScoredOffer) []*entities.Suggestion {
	type routeKey struct {
		destination string
		date        time.Time
	}

	cheapest := make(map[routeKey]*entities.ScoredOffer)
	counts := make(map[routeKey]int)
	for _, offer := range offers {
		if offer.MinPrice == nil {
			continue
		}
		key := routeKey{offer.Destination, offer.TravelDate}
		counts[key]++
		if best, ok := cheapest[key]; !ok || *offer.MinPrice < *best.MinPrice {
			cheapest[key] = offer
		}
	}

	var suggestions []*entities.Suggestion
	for _, offer := range offers {
		if offer.MinPrice == nil {
			continue
		}
		key := routeKey{offer.Destination, offer.TravelDate}
		if counts[key] < 2 {
			continue
		}
		best := cheapest[key]
		if best == offer || *best.MinPrice >= *offer.MinPrice {
			continue
		}
		savings := *offer.MinPrice - *best.MinPrice
		suggestions = append(suggestions, &entities.Suggestion{
			Type: entities.SuggestionCheaperCarrier,
			Message: fmt.Sprintf(
				"%s covers %s on the same date for %.2f less than %s",
				best.Company, offer.Destination, savings, offer.Company,
			),
			Savings: savings,
		})
	}
	return suggestions
}

// weekendDealSuggestions flags offers in the next Friday-Sunday window priced
// below that window's average.
func (s *SavingsService) weekendDealSuggestions(offers []*entities.ScoredOffer) []*entities.Suggestion {
	friday, sunday := nextWeekend(s.now())

	var inWindow []*entities.ScoredOffer
	total := 0.0
	for _, offer := range offers {
		if offer.MinPrice == nil {
			continue
		}
		day := truncateToDay(offer.TravelDate)
		if day.Before(friday) || day.After(sunday) {
			continue
		}
		inWindow = append(inWindow, offer)
		total += *offer.MinPrice
	}
	if len(inWindow) == 0 {
		return nil
	}

	mean := total / float64(len(inWindow))
	var suggestions []*entities.Suggestion
	for _, offer := range inWindow {
		if *offer.MinPrice >= mean {
			continue
		}
		savings := mean - *offer.MinPrice
		suggestions = append(suggestions, &entities.Suggestion{
			Type: entities.SuggestionWeekendDeal,
			Message: fmt.Sprintf(
				"Weekend deal: %s to %s on %s is %.2f below the weekend average",
				offer.Company, offer.Destination, offer.TravelDate.Format("2006-01-02"), savings,
			),
			Savings: savings,
		})
	}
	return suggestions
}

// nextWeekend returns the next Friday and Sunday from the given moment. When
// today already is Friday, Saturday or Sunday the current weekend is used.
func nextWeekend(now time.Time) (time.Time, time.Time) {
	today := truncateToDay(now)
	offset := (int(time.Friday) - int(today.Weekday()) + 7) % 7
	if today.Weekday() == time.Saturday || today.Weekday() == time.Sunday {
		offset = -int(today.Weekday() - time.Friday)
		if today.Weekday() == time.Sunday {
			offset = -2
		}
	}
	friday := today.AddDate(0, 0, offset)
	return friday, friday.AddDate(0, 0, 2)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// signedDayOffset returns a-b in whole days, negative when a precedes b.
func signedDayOffset(a, b time.Time) int {
	return int(truncateToDay(a).Sub(truncateToDay(b)).Hours() / 24)
}
