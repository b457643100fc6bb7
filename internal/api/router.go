package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// healthCheckTimeout bounds the store probe behind GET /health.
const healthCheckTimeout = 2 * time.Second

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	cors := newCORSPolicy(s.cfg.CORS.AllowedOrigins, s.cfg.CORS.AllowedMethods, s.cfg.CORS.AllowedHeaders)
	r.Use(
		requestID,
		s.accessLog,
		cors.handler,
		middleware.RequestSize(maxRequestBodySize),
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/graph", s.handleGetGraph)

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", s.handleListScenarios)

			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", s.handleGetScenario)
				r.Get("/history", s.handleGetHistory)
				r.Post("/transitions", s.handleProposeTransition)
			})
		})

		r.Get("/audit", s.handleListAuditEvents)

		if s.metrics != nil {
			r.Method(http.MethodGet, "/metrics", s.metrics)
		}

		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// handleHealth returns the server health status. A failing store probe
// answers 503 so load balancers drain the node.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status, code := "ok", http.StatusOK
	if err := s.HealthCheck(ctx); err != nil {
		s.logger.Warn("health check failed", "error", err)
		status, code = "degraded", http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]any{
		"status":     status,
		"version":    s.version,
		"ws_clients": s.Hub().ClientCount(),
	})
}
