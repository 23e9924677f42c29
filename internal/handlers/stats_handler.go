package handlers

import (
	"net/http"
	"vocadrill/internal/service"
)

// StatsHandler serves the statistics report
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Get returns the statistics report for the requested range
// (all, week or month; anything else falls back to all)
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	timeRange := r.URL.Query().Get("range")
	if timeRange == "" {
		timeRange = "all"
	}

	report, err := h.statsService.Report(user.ID, timeRange)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to build statistics", "stats failed", err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}
