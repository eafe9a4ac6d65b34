package routes

import (
	"net/http"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/api/handlers"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	offerHandler          *handlers.OfferHandler
	recommendationHandler *handlers.RecommendationHandler
	pipelineHandler       *handlers.PipelineHandler

	cacheMiddleware *middleware.CacheMiddleware
}

// NewRouter creates a new router
func NewRouter(
	offerHandler *handlers.OfferHandler,
	recommendationHandler *handlers.RecommendationHandler,
	pipelineHandler *handlers.PipelineHandler,
	cacheMiddleware *middleware.CacheMiddleware,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		offerHandler:          offerHandler,
		recommendationHandler: recommendationHandler,
		pipelineHandler:       pipelineHandler,

		cacheMiddleware: cacheMiddleware,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Offer browse endpoints
	r.mux.HandleFunc("GET /api/offers", r.offerHandler.ListOffers)
	r.mux.HandleFunc("GET /api/offers/stats", r.offerHandler.GetStats)
	r.mux.HandleFunc("GET /api/destinations", r.offerHandler.ListDestinations)

	// Search endpoint
	r.mux.HandleFunc("GET /api/recommendations", r.recommendationHandler.GetRecommendations)

	// Pipeline trigger endpoint
	r.mux.HandleFunc("POST /api/pipeline/run", r.pipelineHandler.TriggerRun)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
