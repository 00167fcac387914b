package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camride/camride/internal/pkg/errs"
	"github.com/camride/camride/internal/pkg/models"
)

// stubProvisioner records wallet provisioning calls made inside the
// account transaction.
type stubProvisioner struct {
	err   error
	calls int
}

func (s *stubProvisioner) CreateWalletTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, role models.Role) error {
	s.calls++
	return s.err
}

func setupAccountRepoTest(t *testing.T) (*AccountRepo, sqlmock.Sqlmock, *stubProvisioner, func()) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	wallets := &stubProvisioner{}

	repo := &AccountRepo{
		cfg:     &models.Config{},
		db:      sqlxDB,
		wallets: wallets,
	}

	cleanup := func() {
		sqlxDB.Close()
	}

	return repo, mock, wallets, cleanup
}

func TestCreateStudent_ProvisionsWalletInSameTx(t *testing.T) {
	repo, mock, wallets, cleanup := setupAccountRepoTest(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("(?s)INSERT INTO students").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	student := &models.Student{
		FullName: "Ada Student",
		MatricNo: "CSC/2021/044",
		Email:    "ada@campus.edu",
		Password: "hashed",
	}
	err := repo.CreateStudent(context.Background(), student)

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, student.ID)
	assert.Equal(t, 1, wallets.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStudent_DuplicateEmail(t *testing.T) {
	repo, mock, wallets, cleanup := setupAccountRepoTest(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("(?s)INSERT INTO students").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "students_email_key"})
	mock.ExpectRollback()

	err := repo.CreateStudent(context.Background(), &models.Student{
		FullName: "Ada Student",
		MatricNo: "CSC/2021/044",
		Email:    "ada@campus.edu",
		Password: "hashed",
	})

	assert.ErrorIs(t, err, errs.ErrDuplicateAccount)
	assert.Equal(t, 0, wallets.calls)
}

func TestCreateStudent_WalletFailureRollsBack(t *testing.T) {
	repo, mock, wallets, cleanup := setupAccountRepoTest(t)
	defer cleanup()

	wallets.err = assert.AnError

	mock.ExpectBegin()
	mock.ExpectExec("(?s)INSERT INTO students").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := repo.CreateStudent(context.Background(), &models.Student{
		FullName: "Ada Student",
		MatricNo: "CSC/2021/044",
		Email:    "ada@campus.edu",
		Password: "hashed",
	})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStudentByEmail(t *testing.T) {
	repo, mock, _, cleanup := setupAccountRepoTest(t)
	defer cleanup()

	id := uuid.New()
	now := time.Now()
	columns := []string{
		"id", "full_name", "matric_no", "email", "phone_no", "password", "is_verified",
		"otp_code", "otp_expires_at", "profile_image", "created_at", "updated_at",
	}
	rows := sqlmock.NewRows(columns).
		AddRow(id, "Ada Student", "CSC/2021/044", "ada@campus.edu", "0800", "hashed", true,
			nil, nil, nil, now, now)

	mock.ExpectQuery("(?s)SELECT (.+) FROM students WHERE email =").
		WithArgs("ada@campus.edu").
		WillReturnRows(rows)

	student, err := repo.GetStudentByEmail(context.Background(), "ada@campus.edu")

	assert.NoError(t, err)
	assert.Equal(t, id, student.ID)
	assert.True(t, student.IsVerified)
}

func TestGetStudentByEmail_NotFound(t *testing.T) {
	repo, mock, _, cleanup := setupAccountRepoTest(t)
	defer cleanup()

	mock.ExpectQuery("(?s)SELECT (.+) FROM students WHERE email =").
		WithArgs("ghost@campus.edu").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetStudentByEmail(context.Background(), "ghost@campus.edu")

	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
}

func TestSetOTP_UsesRoleTable(t *testing.T) {
	repo, mock, _, cleanup := setupAccountRepoTest(t)
	defer cleanup()

	expiresAt := time.Now().Add(15 * time.Minute)

	mock.ExpectExec("(?s)UPDATE drivers(.+)SET otp_code =").
		WithArgs("482913", expiresAt, sqlmock.AnyArg(), "driver@campus.edu").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetOTP(context.Background(), models.RoleDriver, "driver@campus.edu", "482913", expiresAt)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetOTP_UnknownEmail(t *testing.T) {
	repo, mock, _, cleanup := setupAccountRepoTest(t)
	defer cleanup()

	mock.ExpectExec("(?s)UPDATE students(.+)SET otp_code =").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetOTP(context.Background(), models.RoleStudent, "ghost@campus.edu", "482913", time.Now())

	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
}

func TestMarkVerified_ClearsOTP(t *testing.T) {
	repo, mock, _, cleanup := setupAccountRepoTest(t)
	defer cleanup()

	mock.ExpectExec("(?s)UPDATE students(.+)SET is_verified = TRUE, otp_code = NULL").
		WithArgs(sqlmock.AnyArg(), "ada@campus.edu").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkVerified(context.Background(), models.RoleStudent, "ada@campus.edu")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
