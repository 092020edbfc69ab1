package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/9seconds/geoenrich/enricher"
)

const requestTimeout = 60 * time.Second

// Enricher handles a single incoming event.
type Enricher interface {
	Enrich(ctx context.Context, evt enricher.Event) (enricher.EnrichedEvent, bool)
}

// Opts configures HTTP API. Stats are serialized as is; if User is
// empty, API is not protected by basic auth.
type Opts struct {
	Enricher      Enricher
	CacheStats    json.Marshaler
	EnricherStats json.Marshaler
	User          string
	Password      string
}

type api struct {
	enricher      Enricher
	cacheStats    json.Marshaler
	enricherStats json.Marshaler
}

// MakeServer returns a router with the following endpoints:
//
//   POST /events - enrich a single JSON event
//   GET  /stats  - usage statistics
func MakeServer(opts Opts) *chi.Mux {
	router := chi.NewRouter()
	apiInstance := &api{
		enricher:      opts.Enricher,
		cacheStats:    opts.CacheStats,
		enricherStats: opts.EnricherStats,
	}

	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(requestTimeout))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(basicAuth(opts.User, opts.Password))

	router.Post("/events", apiInstance.enrichEvent)
	router.Get("/stats", apiInstance.stats)

	return router
}

func encodeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.Encode(data) // nolint: errcheck
}

func abort(w http.ResponseWriter, code int, message string) {
	encodeJSON(w, code, map[string]string{"error": message})
}
