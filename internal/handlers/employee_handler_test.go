package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wellmind/internal/models"
	"wellmind/internal/repository"
	"wellmind/internal/service"
)

type stubEmployeeReader struct {
	statuses []models.EmployeeStatus
	byID     map[uint]*models.Employee
}

func (s *stubEmployeeReader) CountAll() (int, error) { return len(s.byID), nil }

func (s *stubEmployeeReader) GetAllWithLatest() ([]models.EmployeeStatus, error) {
	return s.statuses, nil
}

func (s *stubEmployeeReader) GetByID(id uint) (*models.Employee, error) {
	if emp, ok := s.byID[id]; ok {
		return emp, nil
	}
	return nil, repository.ErrEmployeeNotFound
}

type stubAssessmentReader struct {
	byEmployee map[uint][]models.AssessmentRecord
}

func (s *stubAssessmentReader) Stats() (*models.DashboardSummary, error) {
	return &models.DashboardSummary{}, nil
}

func (s *stubAssessmentReader) DepartmentRollup() ([]models.DepartmentStats, error) {
	return []models.DepartmentStats{}, nil
}

func (s *stubAssessmentReader) Recent(limit int) ([]models.AssessmentRecord, error) {
	return []models.AssessmentRecord{}, nil
}

func (s *stubAssessmentReader) ByEmployee(employeeID uint) ([]models.AssessmentRecord, error) {
	if recs, ok := s.byEmployee[employeeID]; ok {
		return recs, nil
	}
	return []models.AssessmentRecord{}, nil
}

func historyMux(h *EmployeeHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/employees/{id}/history", h.GetHistory)
	mux.HandleFunc("GET /api/v1/employees", h.ListEmployees)
	return mux
}

func TestGetHistoryOK(t *testing.T) {
	now := time.Now()
	aggregations := service.NewAggregationService(
		&stubEmployeeReader{byID: map[uint]*models.Employee{
			1: {ID: 1, Name: "Ada", Department: "Engineering", Email: "ada@example.com"},
		}},
		&stubAssessmentReader{byEmployee: map[uint][]models.AssessmentRecord{
			1: {
				{ID: 2, EmployeeID: 1, RiskScore: 75, Label: "High", CreatedAt: now},
				{ID: 1, EmployeeID: 1, RiskScore: 35, Label: "Low", CreatedAt: now.Add(-time.Hour)},
			},
		}},
	)
	mux := historyMux(NewEmployeeHandler(aggregations))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/1/history", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}

	var history models.EmployeeHistory
	if err := json.NewDecoder(w.Body).Decode(&history); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if history.Employee.Name != "Ada" {
		t.Errorf("Employee.Name = %q, want Ada", history.Employee.Name)
	}
	if len(history.Submissions) != 2 {
		t.Fatalf("Submissions length = %d, want 2", len(history.Submissions))
	}
	if history.Submissions[0].ID != 2 {
		t.Error("Submissions should be ordered newest first")
	}
}

func TestGetHistoryNotFound(t *testing.T) {
	aggregations := service.NewAggregationService(
		&stubEmployeeReader{byID: map[uint]*models.Employee{}},
		&stubAssessmentReader{},
	)
	mux := historyMux(NewEmployeeHandler(aggregations))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/99/history", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", w.Code)
	}
}

func TestGetHistoryInvalidID(t *testing.T) {
	aggregations := service.NewAggregationService(
		&stubEmployeeReader{byID: map[uint]*models.Employee{}},
		&stubAssessmentReader{},
	)
	mux := historyMux(NewEmployeeHandler(aggregations))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/abc/history", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", w.Code)
	}
}

func TestListEmployeesRoster(t *testing.T) {
	aggregations := service.NewAggregationService(
		&stubEmployeeReader{statuses: []models.EmployeeStatus{
			{ID: 1, Name: "Ada", LatestRiskLabel: "High"},
			{ID: 2, Name: "Brian", LatestRiskLabel: models.NoDataLabel},
		}},
		&stubAssessmentReader{},
	)
	mux := historyMux(NewEmployeeHandler(aggregations))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}

	var roster []models.EmployeeStatus
	if err := json.NewDecoder(w.Body).Decode(&roster); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(roster) != 2 {
		t.Fatalf("Roster length = %d, want 2", len(roster))
	}
	if roster[1].LatestRiskScore != nil {
		t.Error("Employee without records should have a null latest score")
	}
}
