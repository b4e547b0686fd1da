package models

import (
	"time"
)

// Anchoring status values for an AssessmentRecord. A record starts as
// pending and transitions exactly once to anchored or simulated.
const (
	AnchoringPending   = "pending"
	AnchoringAnchored  = "anchored"
	AnchoringSimulated = "simulated"
)

// SimulatedReceipt is stored as the anchoring receipt when the ledger
// service could not be reached and the result was recorded locally only.
const SimulatedReceipt = "SIMULATED_TX"

// DefaultDepartment is assigned when a submission carries no department.
const DefaultDepartment = "General"

// Employee represents a person submitting workload assessments. Email is
// the natural identity key: at most one row per email value.
type Employee struct {
	ID         uint      `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Department string    `json:"department" db:"department"`
	Email      string    `json:"email" db:"email"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// AssessmentRecord is one scored submission belonging to an employee.
// Immutable after creation except for the anchoring fields.
type AssessmentRecord struct {
	ID               uint      `json:"id" db:"id"`
	EmployeeID       uint      `json:"employee_id" db:"employee_id"`
	RiskScore        int       `json:"risk_score" db:"risk_score"`
	Label            string    `json:"label" db:"label"`
	WorkHours        int       `json:"work_hours" db:"work_hours"`
	StressLevel      int       `json:"stress_level" db:"stress_level"`
	AnchoringStatus  string    `json:"anchoring_status" db:"anchoring_status"`
	AnchoringReceipt *string   `json:"anchoring_receipt,omitempty" db:"anchoring_receipt"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`

	// Populated on joined dashboard queries only, not a column.
	EmployeeName       string `json:"employee_name,omitempty"`
	EmployeeDepartment string `json:"employee_department,omitempty"`
}

// DashboardSummary holds global aggregate counts and means. Means are 0
// when no records exist and are rounded to one decimal place.
type DashboardSummary struct {
	TotalEmployees   int     `json:"total_employees"`
	TotalSubmissions int     `json:"total_submissions"`
	HighRiskCount    int     `json:"high_risk_count"`
	MediumRiskCount  int     `json:"medium_risk_count"`
	LowRiskCount     int     `json:"low_risk_count"`
	AverageRisk      float64 `json:"average_risk"`
	AverageHours     float64 `json:"average_hours"`
	AverageStress    float64 `json:"average_stress"`
}

// DepartmentStats is the per-department rollup. Departments whose
// employees have no records are absent entirely.
type DepartmentStats struct {
	Department  string  `json:"department"`
	Count       int     `json:"count"`
	AverageRisk float64 `json:"avg_risk"`
}

// EmployeeStatus annotates an employee with its most recent record, or
// sentinel values ("No data", nulls) when none exists.
type EmployeeStatus struct {
	ID              uint       `json:"id"`
	Name            string     `json:"name"`
	Department      string     `json:"department"`
	Email           string     `json:"email"`
	LatestRiskScore *int       `json:"latest_risk_score"`
	LatestRiskLabel string     `json:"latest_risk_label"`
	WorkHours       *int       `json:"work_hours"`
	StressLevel     *int       `json:"stress_level"`
	LastSubmission  *time.Time `json:"last_submission"`
	Anchored        bool       `json:"anchored"`
}

// NoDataLabel is the roster sentinel for employees without records.
const NoDataLabel = "No data"

// SubmissionRequest is the inbound survey payload. Numeric fields are
// pointers so that absent and zero can be told apart at validation time.
type SubmissionRequest struct {
	Name        string  `json:"name" validate:"required"`
	Department  string  `json:"department"`
	Email       string  `json:"email" validate:"required,email"`
	WorkHours   *int    `json:"work_hours" validate:"required"`
	StressLevel *int    `json:"stress_level" validate:"required"`
	Comment     string  `json:"comment"`
}

// SubmissionResult is returned to the caller once the record is persisted
// and the anchoring outcome is final. AnchoringStatus is never "pending".
type SubmissionResult struct {
	EmployeeID      uint   `json:"employee_id"`
	RecordID        uint   `json:"record_id"`
	RiskLabel       string `json:"risk_label"`
	RiskScore       int    `json:"risk_score"`
	AnchoringStatus string `json:"anchoring_status"`
	Message         string `json:"message"`
}

// EmployeeHistory is the per-employee history view.
type EmployeeHistory struct {
	Employee    Employee           `json:"employee"`
	Submissions []AssessmentRecord `json:"submissions"`
}

// DashboardView bundles everything the monitoring dashboard renders.
type DashboardView struct {
	Summary           DashboardSummary   `json:"summary"`
	Departments       []DepartmentStats  `json:"departments"`
	RecentSubmissions []AssessmentRecord `json:"recent_submissions"`
}
