package repository

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"wellmind/internal/models"
)

// AssessmentRepository handles assessment record database operations
type AssessmentRepository struct {
	db *sql.DB
}

// NewAssessmentRepository creates a new assessment repository
func NewAssessmentRepository(db *sql.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// CreateTx persists a new record inside tx with anchoring_status=pending.
func (r *AssessmentRepository) CreateTx(tx *sql.Tx, rec *models.AssessmentRecord) error {
	query := `
		INSERT INTO assessment_records (employee_id, risk_score, label, work_hours, stress_level, anchoring_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	now := time.Now()
	err := tx.QueryRow(
		query,
		rec.EmployeeID,
		rec.RiskScore,
		rec.Label,
		rec.WorkHours,
		rec.StressLevel,
		models.AnchoringPending,
		now,
	).Scan(&rec.ID)

	if err != nil {
		return fmt.Errorf("failed to create assessment record: %w", err)
	}

	rec.AnchoringStatus = models.AnchoringPending
	rec.CreatedAt = now
	return nil
}

// FinalizeAnchoring transitions a record from pending to a terminal
// anchoring status. The WHERE clause makes the transition one-shot: a
// record that already left pending is never rewritten.
func (r *AssessmentRepository) FinalizeAnchoring(recordID uint, status, receipt string) error {
	query := `
		UPDATE assessment_records
		SET anchoring_status = $1, anchoring_receipt = $2
		WHERE id = $3 AND anchoring_status = $4
	`

	_, err := r.db.Exec(query, status, receipt, recordID, models.AnchoringPending)
	if err != nil {
		return fmt.Errorf("failed to finalize anchoring: %w", err)
	}

	return nil
}

// Stats returns the global record count, risk band counts, and means in
// a single query. Means are 0 for an empty table, rounded to one decimal.
func (r *AssessmentRepository) Stats() (*models.DashboardSummary, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE risk_score >= 70),
		       COUNT(*) FILTER (WHERE risk_score >= 40 AND risk_score < 70),
		       COUNT(*) FILTER (WHERE risk_score < 40),
		       COALESCE(AVG(risk_score), 0),
		       COALESCE(AVG(work_hours), 0),
		       COALESCE(AVG(stress_level), 0)
		FROM assessment_records
	`

	summary := &models.DashboardSummary{}
	err := r.db.QueryRow(query).Scan(
		&summary.TotalSubmissions,
		&summary.HighRiskCount,
		&summary.MediumRiskCount,
		&summary.LowRiskCount,
		&summary.AverageRisk,
		&summary.AverageHours,
		&summary.AverageStress,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment stats: %w", err)
	}

	summary.AverageRisk = roundOne(summary.AverageRisk)
	summary.AverageHours = roundOne(summary.AverageHours)
	summary.AverageStress = roundOne(summary.AverageStress)
	return summary, nil
}

// DepartmentRollup returns record count and mean risk per department.
// Inner join: departments whose employees have no records are omitted.
func (r *AssessmentRepository) DepartmentRollup() ([]models.DepartmentStats, error) {
	query := `
		SELECT e.department, COUNT(r.id), AVG(r.risk_score)
		FROM employees e
		JOIN assessment_records r ON r.employee_id = e.id
		GROUP BY e.department
		ORDER BY e.department
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get department rollup: %w", err)
	}
	defer rows.Close()

	stats := make([]models.DepartmentStats, 0)
	for rows.Next() {
		var st models.DepartmentStats
		if err := rows.Scan(&st.Department, &st.Count, &st.AverageRisk); err != nil {
			return nil, fmt.Errorf("failed to scan department stats: %w", err)
		}
		st.AverageRisk = roundOne(st.AverageRisk)
		stats = append(stats, st)
	}

	return stats, rows.Err()
}

// Recent returns the most recently created records, newest first, ties
// broken by insertion order, joined with the owning employee for display.
func (r *AssessmentRepository) Recent(limit int) ([]models.AssessmentRecord, error) {
	query := `
		SELECT r.id, r.employee_id, r.risk_score, r.label, r.work_hours, r.stress_level,
		       r.anchoring_status, r.anchoring_receipt, r.created_at,
		       e.name, e.department
		FROM assessment_records r
		JOIN employees e ON e.id = r.employee_id
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $1
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows, true)
}

// ByEmployee returns all records for one employee, newest first.
func (r *AssessmentRepository) ByEmployee(employeeID uint) ([]models.AssessmentRecord, error) {
	query := `
		SELECT id, employee_id, risk_score, label, work_hours, stress_level,
		       anchoring_status, anchoring_receipt, created_at
		FROM assessment_records
		WHERE employee_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get records for employee: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows, false)
}

func scanRecords(rows *sql.Rows, withEmployee bool) ([]models.AssessmentRecord, error) {
	records := make([]models.AssessmentRecord, 0)
	for rows.Next() {
		var (
			rec     models.AssessmentRecord
			receipt sql.NullString
		)
		dest := []interface{}{
			&rec.ID, &rec.EmployeeID, &rec.RiskScore, &rec.Label,
			&rec.WorkHours, &rec.StressLevel,
			&rec.AnchoringStatus, &receipt, &rec.CreatedAt,
		}
		if withEmployee {
			dest = append(dest, &rec.EmployeeName, &rec.EmployeeDepartment)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan assessment record: %w", err)
		}
		if receipt.Valid {
			rec.AnchoringReceipt = &receipt.String
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func roundOne(v float64) float64 {
	return math.Round(v*10) / 10
}
