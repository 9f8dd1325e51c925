// Package httptransport wires the domain handlers, platform middleware, and
// operational endpoints into one router. It carries no business logic.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"orlof/internal/platform/metrics"
	"orlof/internal/platform/middleware"
	"orlof/pkg/platform/httputil"
)

// Registrar is anything that can attach its routes to the router. All domain
// handlers implement it.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker reports readiness of an attached dependency. Nil checkers are
// skipped so optional backends (Redis, Postgres) wire in only when configured.
type HealthChecker func(r *http.Request) error

// NewRouter builds the full HTTP surface: domain routes behind the shared
// middleware chain, plus /healthz and /metrics outside of it.
func NewRouter(logger *slog.Logger, m *metrics.Metrics, health []HealthChecker, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", handleHealth(health))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Recovery(logger))
		r.Use(middleware.RequestID)
		r.Use(middleware.Logger(logger))
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.ContentTypeJSON)
		if m != nil {
			r.Use(middleware.Latency(m))
		}

		for _, h := range handlers {
			h.Register(r)
		}
	})

	return r
}

func handleHealth(checks []HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if check == nil {
				continue
			}
			if err := check(r); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"error":  err.Error(),
				})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
