package middleware

import (
	"net/http"
	"os"
	"strings"
)

// The API surface is read-mostly: GET for browsing offers and searching
// recommendations, POST only for the pipeline trigger.
const (
	corsAllowedMethods = http.MethodGet + ", " + http.MethodPost + ", " + http.MethodOptions
	corsAllowedHeaders = "Content-Type, Authorization"
)

// corsPolicy decides which origins get CORS headers. Origins come from the
// ALLOWED_ORIGINS env var (comma-separated); unset means wildcard, which suits
// local development. Production deployments set the explicit list.
type corsPolicy struct {
	origins  []string
	wildcard bool
}

func newCORSPolicy() corsPolicy {
	raw := os.Getenv("ALLOWED_ORIGINS")
	if raw == "" {
		return corsPolicy{wildcard: true}
	}

	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			return corsPolicy{wildcard: true}
		}
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return corsPolicy{origins: origins}
}

func (p corsPolicy) allows(origin string) bool {
	if p.wildcard {
		return true
	}
	for _, allowed := range p.origins {
		if allowed == origin {
			return true
		}
	}
	return false
}

// CORSMiddleware adds CORS headers and short-circuits preflight requests.
func CORSMiddleware(next http.Handler) http.Handler {
	policy := newCORSPolicy()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" && policy.allows(origin) {
			if policy.wildcard {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
		}

		w.Header().Set("Access-Control-Allow-Methods", corsAllowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", corsAllowedHeaders)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
