package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	readyCheck  func(ctx context.Context) error
}

// NewHealthHandler creates a health handler. readyCheck may be nil, in which
// case readiness always reports ready.
func NewHealthHandler(serviceName string, readyCheck func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, readyCheck: readyCheck}
}

// Register mounts the probe routes.
func (h *HealthHandler) Register(r chi.Router) {
	r.Get("/healthz", h.liveness)
	r.Get("/readyz", h.readiness)
}

func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": h.serviceName,
	})
}

func (h *HealthHandler) readiness(w http.ResponseWriter, r *http.Request) {
	if h.readyCheck != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.readyCheck(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":  "unavailable",
				"service": h.serviceName,
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"service": h.serviceName,
	})
}
