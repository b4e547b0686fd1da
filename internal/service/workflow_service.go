package service

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"wellmind/internal/config"
	"wellmind/internal/models"
	"wellmind/internal/scoring"
)

// WorkflowService notifies an external HR workflow when a submission
// lands in the High risk band. Fire-and-forget: errors are logged only.
type WorkflowService struct {
	url     string
	enabled bool
	client  *http.Client
}

// NewWorkflowService creates a new workflow service
func NewWorkflowService(cfg *config.WorkflowConfig) *WorkflowService {
	return &WorkflowService{
		url:     cfg.URL,
		enabled: cfg.Enabled && cfg.URL != "",
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type workflowTrigger struct {
	EmployeeID uint   `json:"employee_id"`
	RecordID   uint   `json:"record_id"`
	RiskScore  int    `json:"risk_score"`
	RiskLabel  string `json:"risk_label"`
}

// Enrich triggers the workflow for High-risk records.
func (s *WorkflowService) Enrich(req *models.SubmissionRequest, rec *models.AssessmentRecord) {
	if !s.enabled || rec.Label != scoring.LabelHigh {
		return
	}

	jsonData, err := json.Marshal(workflowTrigger{
		EmployeeID: rec.EmployeeID,
		RecordID:   rec.ID,
		RiskScore:  rec.RiskScore,
		RiskLabel:  rec.Label,
	})
	if err != nil {
		slog.Error("Failed to marshal workflow trigger", "error", err)
		return
	}

	resp, err := s.client.Post(s.url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		slog.Warn("Workflow trigger unreachable", "error", err)
		return
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			slog.Error("Failed to close workflow response body", "error", err)
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("Workflow trigger rejected", "status", resp.StatusCode)
		return
	}

	slog.Info("Workflow triggered for high-risk submission", "record_id", rec.ID)
}
