package handler

import (
	"context"
	"log/slog"
	"net/http"

	"problem-hunt-api/internal/model"
)

// Pinger is implemented by the database handle. A nil Pinger means the
// in-memory store is active and there is no backend to probe.
type Pinger interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.Health(r.Context()); err != nil {
			slog.Error("health check failed", "error", err.Error())
			writeJSON(w, http.StatusServiceUnavailable, model.ErrorResponse{Error: "database unavailable"})
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
