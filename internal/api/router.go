package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/PauloCruz06/batepapo-uol-api/internal/api/middleware"
	"github.com/PauloCruz06/batepapo-uol-api/internal/handlers"
	"github.com/PauloCruz06/batepapo-uol-api/internal/store"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(logger zerolog.Logger, dataStore store.DataStore) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	// Security middleware
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(8 * 1024)) // 8KB max body
	r.Use(middleware.RequireJSON)

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// Rate limiting: generous per-IP budget, enough for a chat client
	// heartbeating every few seconds
	limiter := middleware.NewRateLimiter(50, 100)
	r.Use(limiter.Middleware)

	// CORS - allow all origins, the identity header must be allowed through
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", handlers.IdentityHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	h := handlers.NewHandler(dataStore)

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", h.Root)
	r.Get("/health", h.Health)

	r.Post("/participants", h.Register)
	r.Get("/participants", h.ListParticipants)

	r.Post("/messages", h.PostMessage)
	r.Get("/messages", h.ListMessages)
	r.Put("/messages/{id}", h.EditMessage)
	r.Delete("/messages/{id}", h.DeleteMessage)

	r.Post("/status", h.Heartbeat)

	return r
}
