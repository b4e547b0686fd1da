package service

import (
	"errors"
	"testing"

	"wellmind/internal/models"
	"wellmind/internal/repository"
)

type fakeEmployeeReader struct {
	count    int
	statuses []models.EmployeeStatus
	byID     map[uint]*models.Employee
}

func (f *fakeEmployeeReader) CountAll() (int, error) { return f.count, nil }

func (f *fakeEmployeeReader) GetAllWithLatest() ([]models.EmployeeStatus, error) {
	return f.statuses, nil
}

func (f *fakeEmployeeReader) GetByID(id uint) (*models.Employee, error) {
	if emp, ok := f.byID[id]; ok {
		return emp, nil
	}
	return nil, repository.ErrEmployeeNotFound
}

type fakeAssessmentReader struct {
	summary     models.DashboardSummary
	rollup      []models.DepartmentStats
	recent      []models.AssessmentRecord
	byEmployee  map[uint][]models.AssessmentRecord
	recentLimit int
}

func (f *fakeAssessmentReader) Stats() (*models.DashboardSummary, error) {
	s := f.summary
	return &s, nil
}

func (f *fakeAssessmentReader) DepartmentRollup() ([]models.DepartmentStats, error) {
	return f.rollup, nil
}

func (f *fakeAssessmentReader) Recent(limit int) ([]models.AssessmentRecord, error) {
	f.recentLimit = limit
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeAssessmentReader) ByEmployee(employeeID uint) ([]models.AssessmentRecord, error) {
	if recs, ok := f.byEmployee[employeeID]; ok {
		return recs, nil
	}
	return []models.AssessmentRecord{}, nil
}

func TestDashboardEmpty(t *testing.T) {
	svc := NewAggregationService(
		&fakeEmployeeReader{},
		&fakeAssessmentReader{
			rollup: []models.DepartmentStats{},
			recent: []models.AssessmentRecord{},
		},
	)

	view, err := svc.Dashboard()
	if err != nil {
		t.Fatalf("Dashboard failed on empty data: %v", err)
	}

	s := view.Summary
	if s.TotalEmployees != 0 || s.TotalSubmissions != 0 {
		t.Error("Empty store should yield zero counts")
	}
	if s.AverageRisk != 0 || s.AverageHours != 0 || s.AverageStress != 0 {
		t.Error("Empty store should yield zero means, not an error or NaN")
	}
	if len(view.Departments) != 0 || len(view.RecentSubmissions) != 0 {
		t.Error("Empty store should yield empty lists")
	}
}

func TestDashboardCombinesSources(t *testing.T) {
	records := &fakeAssessmentReader{
		summary: models.DashboardSummary{
			TotalSubmissions: 3,
			HighRiskCount:    1,
			MediumRiskCount:  1,
			LowRiskCount:     1,
			AverageRisk:      51.7,
		},
		rollup: []models.DepartmentStats{
			{Department: "Engineering", Count: 2, AverageRisk: 62.5},
		},
		recent: []models.AssessmentRecord{{ID: 3}, {ID: 2}, {ID: 1}},
	}
	svc := NewAggregationService(&fakeEmployeeReader{count: 2}, records)

	view, err := svc.Dashboard()
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}

	if view.Summary.TotalEmployees != 2 {
		t.Errorf("TotalEmployees = %d, want 2", view.Summary.TotalEmployees)
	}
	if records.recentLimit != 10 {
		t.Errorf("Recent limit = %d, want 10", records.recentLimit)
	}
	if len(view.Departments) != 1 || view.Departments[0].Department != "Engineering" {
		t.Error("Department rollup should pass through")
	}
}

func TestHistoryUnknownEmployee(t *testing.T) {
	svc := NewAggregationService(
		&fakeEmployeeReader{byID: map[uint]*models.Employee{}},
		&fakeAssessmentReader{},
	)

	_, err := svc.History(42)
	if !errors.Is(err, repository.ErrEmployeeNotFound) {
		t.Errorf("History error = %v, want ErrEmployeeNotFound", err)
	}
}

func TestHistoryEmployeeWithoutRecords(t *testing.T) {
	svc := NewAggregationService(
		&fakeEmployeeReader{byID: map[uint]*models.Employee{
			1: {ID: 1, Name: "Ada", Department: "Engineering", Email: "ada@example.com"},
		}},
		&fakeAssessmentReader{byEmployee: map[uint][]models.AssessmentRecord{}},
	)

	history, err := svc.History(1)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if history.Employee.ID != 1 {
		t.Errorf("Employee.ID = %d, want 1", history.Employee.ID)
	}
	if history.Submissions == nil || len(history.Submissions) != 0 {
		t.Error("Zero records should yield an empty, non-nil list")
	}
}

func TestRosterPassthrough(t *testing.T) {
	statuses := []models.EmployeeStatus{
		{ID: 1, Name: "Ada", LatestRiskLabel: "High"},
		{ID: 2, Name: "Brian", LatestRiskLabel: models.NoDataLabel},
	}
	svc := NewAggregationService(&fakeEmployeeReader{statuses: statuses}, &fakeAssessmentReader{})

	roster, err := svc.Roster()
	if err != nil {
		t.Fatalf("Roster failed: %v", err)
	}
	if len(roster) != 2 {
		t.Fatalf("Roster length = %d, want 2", len(roster))
	}
	if roster[1].LatestRiskLabel != models.NoDataLabel {
		t.Errorf("Employee without records should carry the %q sentinel", models.NoDataLabel)
	}
}
