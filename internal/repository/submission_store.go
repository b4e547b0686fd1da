package repository

import (
	"database/sql"
	"fmt"

	"wellmind/internal/models"
)

// SubmissionStore executes the write side of one submission as a single
// transaction: resolve-or-create the employee, then insert the pending
// assessment record. Either both rows land or neither does.
type SubmissionStore struct {
	db          *sql.DB
	employees   *EmployeeRepository
	assessments *AssessmentRepository
}

// NewSubmissionStore creates a new submission store
func NewSubmissionStore(db *sql.DB, employees *EmployeeRepository, assessments *AssessmentRepository) *SubmissionStore {
	return &SubmissionStore{
		db:          db,
		employees:   employees,
		assessments: assessments,
	}
}

// CreateSubmission persists the employee (if new) and the record
// atomically. On return emp holds the stored row (which may differ from
// the submitted profile fields) and rec has its id, timestamp, and
// pending anchoring status filled in.
func (s *SubmissionStore) CreateSubmission(emp *models.Employee, rec *models.AssessmentRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := s.employees.FindOrCreateTx(tx, emp); err != nil {
		tx.Rollback()
		return err
	}

	rec.EmployeeID = emp.ID
	if err := s.assessments.CreateTx(tx, rec); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit submission: %w", err)
	}

	return nil
}

// FinalizeAnchoring records the terminal anchoring outcome for a record.
func (s *SubmissionStore) FinalizeAnchoring(recordID uint, status, receipt string) error {
	return s.assessments.FinalizeAnchoring(recordID, status, receipt)
}
