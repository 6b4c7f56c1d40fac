package api

import (
	"net/http"
	"time"

	"github.com/DivyanshuSingh0/HabitSphere/internal/api/respond"
	"github.com/DivyanshuSingh0/HabitSphere/internal/store"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	store store.Store
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(st store.Store) *HealthHandler { return &HealthHandler{store: st} }

// CheckHealth handles GET /api/health. The process is healthy if it can
// answer at all; dependency state is reported by CheckStorageHealth.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// CheckStorageHealth handles GET /api/health/db by pinging the backing store.
func (h *HealthHandler) CheckStorageHealth(w http.ResponseWriter, r *http.Request) {
	pinger, ok := h.store.(store.Pinger)
	if !ok {
		respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "unknown",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	status := "healthy"
	code := http.StatusOK
	if err := pinger.HealthPing(r.Context()); err != nil {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	respond.WriteJSON(w, code, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
