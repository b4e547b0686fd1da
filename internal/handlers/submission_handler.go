package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"wellmind/internal/models"
	"wellmind/internal/service"
)

// SubmissionHandler handles submission and predict requests
type SubmissionHandler struct {
	submissions *service.SubmissionService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissions *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions}
}

// Submit ingests one workload submission. The response always carries the
// terminal anchoring outcome; anchoring failures do not fail the request.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	result, err := h.submissions.Record(&req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("Failed to record submission", "error", err)
		respondWithError(w, http.StatusInternalServerError, ErrMsgInternalError)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// Predict scores a workload without persisting anything. Absent or zero
// fields fall back to neutral defaults on this path only.
func (h *SubmissionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkHours   *int `json:"work_hours"`
		StressLevel *int `json:"stress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	score, label := h.submissions.Predict(req.WorkHours, req.StressLevel)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"risk":  label,
		"score": score,
	})
}
