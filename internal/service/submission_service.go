package service

import (
	"errors"
	"fmt"
	"log/slog"

	"wellmind/internal/models"
	"wellmind/internal/scoring"
	"wellmind/pkg/validator"
)

// ErrValidation marks request-shaped failures that map to a 4xx response.
var ErrValidation = errors.New("validation failed")

// SubmissionStore is the transactional write boundary for one submission.
type SubmissionStore interface {
	CreateSubmission(emp *models.Employee, rec *models.AssessmentRecord) error
	FinalizeAnchoring(recordID uint, status, receipt string) error
}

// Anchorer submits a record fingerprint to the external ledger.
type Anchorer interface {
	Anchor(rec *models.AssessmentRecord) (string, error)
}

// Enricher is a best-effort post-persistence collaborator (free-text
// analysis, workflow triggers). Failures are logged and never surfaced.
type Enricher interface {
	Enrich(req *models.SubmissionRequest, rec *models.AssessmentRecord)
}

// SubmissionService orchestrates scoring, identity resolution, durable
// write, and anchoring for one inbound submission.
type SubmissionService struct {
	store     SubmissionStore
	anchorer  Anchorer
	enrichers []Enricher
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(store SubmissionStore, anchorer Anchorer, enrichers ...Enricher) *SubmissionService {
	return &SubmissionService{
		store:     store,
		anchorer:  anchorer,
		enrichers: enrichers,
	}
}

// Record validates and persists one submission, then resolves the
// anchoring outcome before returning. The result never reports a pending
// anchoring status: the record is anchored or simulated by the time the
// caller sees it. Anchoring failure alone never fails a submission.
func (s *SubmissionService) Record(req *models.SubmissionRequest) (*models.SubmissionResult, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	score, label := scoring.Score(*req.WorkHours, *req.StressLevel)

	emp := &models.Employee{
		Name:       req.Name,
		Department: req.Department,
		Email:      req.Email,
	}
	rec := &models.AssessmentRecord{
		RiskScore:   score,
		Label:       label,
		WorkHours:   *req.WorkHours,
		StressLevel: *req.StressLevel,
	}

	if err := s.store.CreateSubmission(emp, rec); err != nil {
		return nil, err
	}

	if err := s.resolveAnchoring(rec); err != nil {
		return nil, err
	}

	for _, enricher := range s.enrichers {
		go enricher.Enrich(req, rec)
	}

	return &models.SubmissionResult{
		EmployeeID:      emp.ID,
		RecordID:        rec.ID,
		RiskLabel:       rec.Label,
		RiskScore:       rec.RiskScore,
		AnchoringStatus: rec.AnchoringStatus,
		Message:         "Submission recorded successfully",
	}, nil
}

// resolveAnchoring attempts the ledger write and stores the terminal
// outcome. The error value from the anchorer selects the branch; the
// simulated fallback keeps the submission successful when the ledger is
// unreachable. Failing to persist the outcome is a storage error and
// fails the request: the caller must never see a status the stored row
// does not carry.
func (s *SubmissionService) resolveAnchoring(rec *models.AssessmentRecord) error {
	status := models.AnchoringAnchored
	receipt, err := s.anchorer.Anchor(rec)
	if err != nil {
		slog.Warn("Anchoring failed, falling back to simulated receipt",
			"record_id", rec.ID, "error", err)
		status = models.AnchoringSimulated
		receipt = models.SimulatedReceipt
	}

	if err := s.store.FinalizeAnchoring(rec.ID, status, receipt); err != nil {
		return fmt.Errorf("failed to persist anchoring outcome: %w", err)
	}

	rec.AnchoringStatus = status
	rec.AnchoringReceipt = &receipt
	return nil
}

// Predict scores a workload without persisting anything. Unlike Record,
// absent or zero fields fall back to the neutral defaults (40 hours,
// stress 5); on this path only, an explicit zero is indistinguishable
// from leaving the field out.
func (s *SubmissionService) Predict(workHours, stressLevel *int) (int, string) {
	hours := 40
	stress := 5
	if workHours != nil && *workHours != 0 {
		hours = *workHours
	}
	if stressLevel != nil && *stressLevel != 0 {
		stress = *stressLevel
	}
	return scoring.Score(hours, stress)
}
