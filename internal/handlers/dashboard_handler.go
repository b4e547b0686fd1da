package handlers

import (
	"log/slog"
	"net/http"

	"wellmind/internal/service"
)

// DashboardHandler serves the aggregate monitoring views
type DashboardHandler struct {
	aggregations *service.AggregationService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(aggregations *service.AggregationService) *DashboardHandler {
	return &DashboardHandler{aggregations: aggregations}
}

// GetDashboard returns the global summary, department rollup, and the
// ten most recent submissions, computed fresh from storage.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	view, err := h.aggregations.Dashboard()
	if err != nil {
		slog.Error("Failed to build dashboard", "error", err)
		respondWithError(w, http.StatusInternalServerError, ErrMsgInternalError)
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}
