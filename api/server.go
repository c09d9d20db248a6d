/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the frontend

ROUTE GROUPS:
  /api/fuel/*           Fuel entry records
  /api/adjustments/*    Compensation payments and debt deductions
  /api/maintenance/*    Maintenance record book
  /api/summary          Reconciliation summary
  /api/config           Engine constants

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Fuel entry routes
		r.Route("/fuel", func(r chi.Router) {
			r.Get("/", h.ListFuel)
			r.Post("/", h.CreateFuel)
			r.Get("/{id}", h.GetFuel)
			r.Put("/{id}", h.UpdateFuel)
			r.Delete("/{id}", h.DeleteFuel)
		})

		// Adjustment routes
		r.Route("/adjustments", func(r chi.Router) {
			r.Get("/", h.ListAdjustments)
			r.Post("/", h.CreateAdjustment)
			r.Delete("/{id}", h.DeleteAdjustment)
		})

		// Maintenance routes
		r.Route("/maintenance", func(r chi.Router) {
			r.Get("/", h.ListMaintenance)
			r.Post("/", h.CreateMaintenance)
			r.Put("/{id}", h.UpdateMaintenance)
			r.Delete("/{id}", h.DeleteMaintenance)
		})

		// Reconciliation routes
		r.Get("/summary", h.GetSummary)
		r.Get("/config", h.GetConfig)
	})

	return r
}
