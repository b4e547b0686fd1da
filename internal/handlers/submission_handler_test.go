package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wellmind/internal/models"
	"wellmind/internal/service"
)

type stubStore struct {
	employees map[string]uint
	nextEmp   uint
	nextRec   uint
	finalized map[uint][2]string
}

func newStubStore() *stubStore {
	return &stubStore{
		employees: make(map[string]uint),
		finalized: make(map[uint][2]string),
		nextEmp:   1,
		nextRec:   1,
	}
}

func (s *stubStore) CreateSubmission(emp *models.Employee, rec *models.AssessmentRecord) error {
	id, ok := s.employees[emp.Email]
	if !ok {
		id = s.nextEmp
		s.nextEmp++
		s.employees[emp.Email] = id
	}
	emp.ID = id
	rec.EmployeeID = id
	rec.ID = s.nextRec
	s.nextRec++
	rec.AnchoringStatus = models.AnchoringPending
	return nil
}

func (s *stubStore) FinalizeAnchoring(recordID uint, status, receipt string) error {
	s.finalized[recordID] = [2]string{status, receipt}
	return nil
}

type stubAnchorer struct {
	receipt string
	err     error
}

func (s *stubAnchorer) Anchor(rec *models.AssessmentRecord) (string, error) {
	return s.receipt, s.err
}

func newSubmissionHandler(anchorer service.Anchorer) *SubmissionHandler {
	svc := service.NewSubmissionService(newStubStore(), anchorer)
	return NewSubmissionHandler(svc)
}

func TestSubmitOK(t *testing.T) {
	handler := newSubmissionHandler(&stubAnchorer{receipt: "0.0.7@555"})

	body := `{"name":"Ada","department":"Engineering","email":"ada@example.com","work_hours":40,"stress_level":5}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Submit(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}

	var resp models.SubmissionResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.RiskScore != 75 || resp.RiskLabel != "High" {
		t.Errorf("Response score = (%d, %q), want (75, High)", resp.RiskScore, resp.RiskLabel)
	}
	if resp.AnchoringStatus != models.AnchoringAnchored {
		t.Errorf("AnchoringStatus = %q, want anchored", resp.AnchoringStatus)
	}
	if resp.EmployeeID == 0 || resp.RecordID == 0 {
		t.Error("Response should carry assigned ids")
	}
}

func TestSubmitAnchoringDownStillSucceeds(t *testing.T) {
	handler := newSubmissionHandler(&stubAnchorer{err: http.ErrHandlerTimeout})

	body := `{"name":"Ada","email":"ada@example.com","work_hours":40,"stress_level":5}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Submit(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200 despite anchoring failure", w.Code)
	}

	var resp models.SubmissionResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.AnchoringStatus != models.AnchoringSimulated {
		t.Errorf("AnchoringStatus = %q, want simulated", resp.AnchoringStatus)
	}
}

func TestSubmitValidationError(t *testing.T) {
	handler := newSubmissionHandler(&stubAnchorer{receipt: "r"})

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"name":"Ada","work_hours":40,"stress_level":5}`},
		{"missing numeric fields", `{"name":"Ada","email":"ada@example.com"}`},
		{"non-numeric hours", `{"name":"Ada","email":"ada@example.com","work_hours":"lots","stress_level":5}`},
		{"malformed body", `{`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", strings.NewReader(c.body))
			w := httptest.NewRecorder()

			handler.Submit(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Status = %d, want 400", w.Code)
			}
		})
	}
}

func TestPredictDefaultsApplied(t *testing.T) {
	handler := newSubmissionHandler(&stubAnchorer{receipt: "r"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	handler.Predict(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}

	var resp struct {
		Risk  string `json:"risk"`
		Score int    `json:"score"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Score != 75 || resp.Risk != "High" {
		t.Errorf("Predict = (%d, %q), want defaults 40h/5 => (75, High)", resp.Score, resp.Risk)
	}
}
