package handler

import (
	"net/http"

	"github.com/Dan9191/task-service/internal/respond"
)

// Health reports liveness along with the last heartbeat result
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"last_heartbeat": h.health.Last(),
	})
}

// HealthFull checks database connectivity now
func (h *Handler) HealthFull(w http.ResponseWriter, r *http.Request) {
	if err := h.health.Check(r.Context()); err != nil {
		respond.JSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "db": "unavailable"})
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok", "db": "connected"})
}
