package handler

import (
	"net/http"
	"strings"

	"problem-hunt-api/internal/service"
)

type LeaderboardHandler struct {
	service *service.LeaderboardService
}

func NewLeaderboardHandler(service *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	period := strings.TrimSpace(query.Get("period"))
	limit := parseIntOrDefault(query.Get("limit"), 20)

	leaderboard, err := h.service.Get(r.Context(), period, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, leaderboard)
}
