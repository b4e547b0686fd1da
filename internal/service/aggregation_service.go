package service

import (
	"wellmind/internal/models"
)

// recentLimit caps the dashboard's recent-submissions list.
const recentLimit = 10

// EmployeeReader is the read boundary for employee rows.
type EmployeeReader interface {
	CountAll() (int, error)
	GetAllWithLatest() ([]models.EmployeeStatus, error)
	GetByID(id uint) (*models.Employee, error)
}

// AssessmentReader is the read boundary for assessment records.
type AssessmentReader interface {
	Stats() (*models.DashboardSummary, error)
	DepartmentRollup() ([]models.DepartmentStats, error)
	Recent(limit int) ([]models.AssessmentRecord, error)
	ByEmployee(employeeID uint) ([]models.AssessmentRecord, error)
}

// AggregationService computes the dashboard and roster views fresh from
// storage on every call. Reads are not snapshotted across sub-queries;
// concurrent writes may land between them.
type AggregationService struct {
	employees EmployeeReader
	records   AssessmentReader
}

// NewAggregationService creates a new aggregation service
func NewAggregationService(employees EmployeeReader, records AssessmentReader) *AggregationService {
	return &AggregationService{
		employees: employees,
		records:   records,
	}
}

// Dashboard returns the global summary, department rollup, and recent
// submissions. An empty record set yields zero counts and zero means.
func (s *AggregationService) Dashboard() (*models.DashboardView, error) {
	summary, err := s.records.Stats()
	if err != nil {
		return nil, err
	}

	totalEmployees, err := s.employees.CountAll()
	if err != nil {
		return nil, err
	}
	summary.TotalEmployees = totalEmployees

	departments, err := s.records.DepartmentRollup()
	if err != nil {
		return nil, err
	}

	recent, err := s.records.Recent(recentLimit)
	if err != nil {
		return nil, err
	}

	return &models.DashboardView{
		Summary:           *summary,
		Departments:       departments,
		RecentSubmissions: recent,
	}, nil
}

// Roster returns every employee with its latest assessment status.
func (s *AggregationService) Roster() ([]models.EmployeeStatus, error) {
	return s.employees.GetAllWithLatest()
}

// History returns an employee's identity and full submission history,
// newest first. An unknown id yields repository.ErrEmployeeNotFound; an
// employee with no records yields an empty list.
func (s *AggregationService) History(employeeID uint) (*models.EmployeeHistory, error) {
	emp, err := s.employees.GetByID(employeeID)
	if err != nil {
		return nil, err
	}

	records, err := s.records.ByEmployee(employeeID)
	if err != nil {
		return nil, err
	}

	return &models.EmployeeHistory{
		Employee:    *emp,
		Submissions: records,
	}, nil
}
