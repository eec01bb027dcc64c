package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/creditdesk/credit-engine/internal/observability"
)

// NewRouter assembles the full route tree: API endpoints, health probes and
// the Prometheus scrape endpoint.
func NewRouter(h *Handler, health *HealthHandler, metrics *observability.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestDuration(metrics))

	h.Register(r)
	health.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// requestDuration records per-route latency using the chi route pattern so
// path parameters do not explode the label space.
func requestDuration(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			metrics.RequestDuration.
				WithLabelValues(route, strconv.Itoa(ww.Status())).
				Observe(time.Since(start).Seconds())
		})
	}
}
