package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/wordwell/wordwell/internal/store"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	store *store.Store
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(s *store.Store) *HealthHandler {
	return &HealthHandler{store: s}
}

// Alive reports that the process is up. It never touches the database.
// GET /health/alive
func (h *HealthHandler) Alive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports whether the service can serve traffic, which requires a
// working database connection.
// GET /health/ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
