package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"wellmind/internal/models"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
)

// uniqueViolation is the PostgreSQL error code raised when an insert
// collides with the employees_email_key constraint.
const uniqueViolation = "23505"

// EmployeeRepository handles employee database operations
type EmployeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// FindOrCreateTx resolves the employee for the given email inside tx,
// creating it when absent. The insert uses ON CONFLICT DO NOTHING so two
// concurrent first-time submissions for the same email can never produce
// two rows; the loser of the race falls back to fetching the winner's row.
// When the employee already exists, the submitted name and department are
// discarded and the stored row is returned unchanged.
func (r *EmployeeRepository) FindOrCreateTx(tx *sql.Tx, emp *models.Employee) error {
	if emp.Department == "" {
		emp.Department = models.DefaultDepartment
	}

	existing, err := r.getByEmailTx(tx, emp.Email)
	if err == nil {
		*emp = *existing
		return nil
	}
	if !errors.Is(err, ErrEmployeeNotFound) {
		return err
	}

	query := `
		INSERT INTO employees (name, department, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO NOTHING
		RETURNING id, created_at
	`

	err = tx.QueryRow(query, emp.Name, emp.Department, emp.Email).Scan(&emp.ID, &emp.CreatedAt)
	if err == nil {
		return nil
	}

	// No row back means another transaction created the employee between
	// our lookup and insert; the conflict clause swallowed the insert.
	var pqErr *pq.Error
	if errors.Is(err, sql.ErrNoRows) || (errors.As(err, &pqErr) && pqErr.Code == uniqueViolation) {
		existing, err := r.getByEmailTx(tx, emp.Email)
		if err != nil {
			return err
		}
		*emp = *existing
		return nil
	}

	return fmt.Errorf("failed to create employee: %w", err)
}

func (r *EmployeeRepository) getByEmailTx(tx *sql.Tx, email string) (*models.Employee, error) {
	query := `
		SELECT id, name, department, email, created_at
		FROM employees
		WHERE email = $1
	`

	emp := &models.Employee{}
	err := tx.QueryRow(query, email).Scan(&emp.ID, &emp.Name, &emp.Department, &emp.Email, &emp.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee by email: %w", err)
	}

	return emp, nil
}

// GetByID retrieves an employee by ID
func (r *EmployeeRepository) GetByID(id uint) (*models.Employee, error) {
	query := `
		SELECT id, name, department, email, created_at
		FROM employees
		WHERE id = $1
	`

	emp := &models.Employee{}
	err := r.db.QueryRow(query, id).Scan(&emp.ID, &emp.Name, &emp.Department, &emp.Email, &emp.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// CountAll returns the total number of employees
func (r *EmployeeRepository) CountAll() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM employees`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return count, nil
}

// GetAllWithLatest returns every employee annotated with its most recent
// assessment record, or sentinel values for employees with none.
func (r *EmployeeRepository) GetAllWithLatest() ([]models.EmployeeStatus, error) {
	query := `
		SELECT DISTINCT ON (e.id)
		       e.id, e.name, e.department, e.email,
		       r.risk_score, r.label, r.work_hours, r.stress_level,
		       r.created_at, r.anchoring_receipt
		FROM employees e
		LEFT JOIN assessment_records r ON r.employee_id = e.id
		ORDER BY e.id, r.created_at DESC NULLS LAST, r.id DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees with latest status: %w", err)
	}
	defer rows.Close()

	statuses := make([]models.EmployeeStatus, 0)
	for rows.Next() {
		var (
			st       models.EmployeeStatus
			score    sql.NullInt64
			label    sql.NullString
			hours    sql.NullInt64
			stress   sql.NullInt64
			lastAt   sql.NullTime
			receipt  sql.NullString
		)
		if err := rows.Scan(
			&st.ID, &st.Name, &st.Department, &st.Email,
			&score, &label, &hours, &stress, &lastAt, &receipt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee status: %w", err)
		}

		st.LatestRiskLabel = models.NoDataLabel
		if label.Valid {
			st.LatestRiskLabel = label.String
		}
		if score.Valid {
			v := int(score.Int64)
			st.LatestRiskScore = &v
		}
		if hours.Valid {
			v := int(hours.Int64)
			st.WorkHours = &v
		}
		if stress.Valid {
			v := int(stress.Int64)
			st.StressLevel = &v
		}
		if lastAt.Valid {
			t := lastAt.Time
			st.LastSubmission = &t
		}
		st.Anchored = receipt.Valid && receipt.String != ""

		statuses = append(statuses, st)
	}

	return statuses, rows.Err()
}
