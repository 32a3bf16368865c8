package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Telemetry ingestion
		r.Post("/telemetry", s.handleSubmitTelemetry)

		// Score endpoints
		r.Route("/scores", func(r chi.Router) {
			r.Get("/", s.handleListScores)
			r.Post("/rebuild", s.handleRebuildScores)
		})

		// Device endpoints
		r.Route("/devices/{id}", func(r chi.Router) {
			r.Get("/score", s.handleGetDeviceScore)
			r.Get("/capabilities", s.handleGetDeviceCapabilities)
			r.Get("/versions", s.handleGetDeviceVersions)
		})

		// Specification browsing
		r.Route("/spec", func(r chi.Router) {
			r.Get("/device-types", s.handleListDeviceTypes)
			r.Get("/clusters", s.handleListClusters)
		})
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"version":      s.version,
		"device_types": s.registry.DeviceTypeCount(),
		"clusters":     s.registry.ClusterCount(),
	})
}
