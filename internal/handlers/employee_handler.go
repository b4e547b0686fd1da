package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"wellmind/internal/repository"
	"wellmind/internal/service"
)

// EmployeeHandler serves the employee roster and per-employee history
type EmployeeHandler struct {
	aggregations *service.AggregationService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(aggregations *service.AggregationService) *EmployeeHandler {
	return &EmployeeHandler{aggregations: aggregations}
}

// ListEmployees returns every employee with its latest assessment status.
func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	roster, err := h.aggregations.Roster()
	if err != nil {
		slog.Error("Failed to get employee roster", "error", err)
		respondWithError(w, http.StatusInternalServerError, ErrMsgInternalError)
		return
	}

	respondWithJSON(w, http.StatusOK, roster)
}

// GetHistory returns one employee's identity and ordered submission
// history, or 404 when the id is unknown.
func (h *EmployeeHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidEmployeeID)
		return
	}

	history, err := h.aggregations.History(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			respondWithError(w, http.StatusNotFound, ErrMsgEmployeeNotFound)
			return
		}
		slog.Error("Failed to get employee history", "employee_id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, ErrMsgInternalError)
		return
	}

	respondWithJSON(w, http.StatusOK, history)
}
