package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/camride/camride/internal/pkg/errs"
	"github.com/camride/camride/internal/pkg/models"
)

const studentColumns = `
	id, full_name, matric_no, email, phone_no, password, is_verified,
	otp_code, otp_expires_at, profile_image, created_at, updated_at
`

// CreateStudent inserts a student together with their wallet. Both rows
// commit or roll back as one unit.
func (r *AccountRepo) CreateStudent(ctx context.Context, student *models.Student) error {
	student.ID = uuid.New()
	now := time.Now()
	student.CreatedAt = now
	student.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO students (id, full_name, matric_no, email, phone_no, password,
			is_verified, otp_code, otp_expires_at, created_at, updated_at
		) VALUES (:id, :full_name, :matric_no, :email, :phone_no, :password,
			:is_verified, :otp_code, :otp_expires_at, :created_at, :updated_at)
	`
	if _, err = tx.NamedExecContext(ctx, query, student); err != nil {
		if isUniqueViolation(err) {
			return errs.ErrDuplicateAccount
		}
		return fmt.Errorf("failed to insert student: %w", err)
	}

	if err = r.wallets.CreateWalletTx(ctx, tx, student.ID, models.RoleStudent); err != nil {
		return fmt.Errorf("failed to provision wallet: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetStudentByID retrieves a student by ID
func (r *AccountRepo) GetStudentByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return &student, nil
}

// GetStudentByEmail retrieves a student by email
func (r *AccountRepo) GetStudentByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE email = $1`

	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return &student, nil
}

// GetStudentByMatricNo retrieves a student by matriculation number
func (r *AccountRepo) GetStudentByMatricNo(ctx context.Context, matricNo string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE matric_no = $1`

	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, matricNo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return &student, nil
}

// UpdateStudent persists profile changes for a student
func (r *AccountRepo) UpdateStudent(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now()

	query := `
		UPDATE students
		SET full_name = :full_name,
			phone_no = :phone_no,
			profile_image = :profile_image,
			updated_at = :updated_at
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, student)
	if err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return errs.ErrAccountNotFound
	}
	return nil
}
