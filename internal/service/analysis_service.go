package service

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"wellmind/internal/config"
	"wellmind/internal/models"
)

// AnalysisService forwards free-text comments to the external text
// analysis collaborator. It is a best-effort enricher: the submission
// pipeline never waits on it or observes its failures.
type AnalysisService struct {
	baseURL string
	enabled bool
	client  *http.Client
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(cfg *config.AnalysisConfig) *AnalysisService {
	return &AnalysisService{
		baseURL: cfg.BaseURL,
		enabled: cfg.Enabled && cfg.BaseURL != "",
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type analysisRequest struct {
	RecordID  uint   `json:"record_id"`
	RiskLabel string `json:"risk_label"`
	Comment   string `json:"comment"`
}

// Enrich sends the submission comment for analysis. No comment, no call.
func (s *AnalysisService) Enrich(req *models.SubmissionRequest, rec *models.AssessmentRecord) {
	if !s.enabled || req.Comment == "" {
		return
	}

	jsonData, err := json.Marshal(analysisRequest{
		RecordID:  rec.ID,
		RiskLabel: rec.Label,
		Comment:   req.Comment,
	})
	if err != nil {
		slog.Error("Failed to marshal analysis request", "error", err)
		return
	}

	resp, err := s.client.Post(s.baseURL+"/v1/analyze", "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		slog.Warn("Text analysis service unreachable", "error", err)
		return
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			slog.Error("Failed to close analysis response body", "error", err)
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		slog.Warn("Text analysis returned non-200 status", "status", resp.StatusCode, "body", string(bodyBytes))
		return
	}

	slog.Debug("Comment forwarded for analysis", "record_id", rec.ID)
}
