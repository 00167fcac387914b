package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camride/camride/internal/pkg/errs"
	"github.com/camride/camride/internal/pkg/models"
)

// stubLedger lets tests control the outcome of the fare transfer.
type stubLedger struct {
	err   error
	calls int
}

func (s *stubLedger) TransferForRideTx(ctx context.Context, tx *sqlx.Tx, rideID, studentID, driverID uuid.UUID, amount float64) error {
	s.calls++
	return s.err
}

func setupRideRepoTest(t *testing.T) (*RideRepo, sqlmock.Sqlmock, *stubLedger, func()) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	ledger := &stubLedger{}

	repo := &RideRepo{
		db:     sqlxDB,
		cfg:    &models.Config{},
		ledger: ledger,
	}

	cleanup := func() {
		sqlxDB.Close()
	}

	return repo, mock, ledger, cleanup
}

func ongoingRide(studentID, driverID uuid.UUID, method models.PaymentMethod) *models.Ride {
	return &models.Ride{
		ID:            uuid.New(),
		StudentID:     studentID,
		DriverID:      &driverID,
		Fare:          120,
		PaymentMethod: method,
		Status:        models.RideStatusOngoing,
	}
}

func TestAcceptRide_Claims(t *testing.T) {
	repo, mock, _, cleanup := setupRideRepoTest(t)
	defer cleanup()

	rideID := uuid.New()
	driverID := uuid.New()

	mock.ExpectExec("(?s)UPDATE rides(.+)SET status =").
		WithArgs(models.RideStatusAccepted, driverID, sqlmock.AnyArg(), rideID, models.RideStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AcceptRide(context.Background(), rideID, driverID)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptRide_LostRace(t *testing.T) {
	repo, mock, _, cleanup := setupRideRepoTest(t)
	defer cleanup()

	rideID := uuid.New()
	driverID := uuid.New()

	// another driver already claimed the ride, no row matches
	mock.ExpectExec("(?s)UPDATE rides(.+)SET status =").
		WithArgs(models.RideStatusAccepted, driverID, sqlmock.AnyArg(), rideID, models.RideStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AcceptRide(context.Background(), rideID, driverID)
	assert.ErrorIs(t, err, errs.ErrRideNotPending)
}

func TestCompleteRide_CashSkipsLedger(t *testing.T) {
	repo, mock, ledger, cleanup := setupRideRepoTest(t)
	defer cleanup()

	studentID := uuid.New()
	driverID := uuid.New()
	ride := ongoingRide(studentID, driverID, models.PaymentMethodCash)

	mock.ExpectBegin()
	mock.ExpectExec("(?s)UPDATE rides(.+)SET status =").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE drivers SET total_rides = total_rides \\+ 1").
		WithArgs(sqlmock.AnyArg(), driverID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CompleteRide(context.Background(), ride, &models.CompleteRideRequest{})

	assert.NoError(t, err)
	assert.Equal(t, 0, ledger.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteRide_WalletTransfersInSameTx(t *testing.T) {
	repo, mock, ledger, cleanup := setupRideRepoTest(t)
	defer cleanup()

	studentID := uuid.New()
	driverID := uuid.New()
	ride := ongoingRide(studentID, driverID, models.PaymentMethodWallet)

	mock.ExpectBegin()
	mock.ExpectExec("(?s)UPDATE rides(.+)SET status =").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE drivers SET total_rides = total_rides \\+ 1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CompleteRide(context.Background(), ride, &models.CompleteRideRequest{})

	assert.NoError(t, err)
	assert.Equal(t, 1, ledger.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteRide_InsufficientBalanceRollsBack(t *testing.T) {
	repo, mock, ledger, cleanup := setupRideRepoTest(t)
	defer cleanup()

	studentID := uuid.New()
	driverID := uuid.New()
	ride := ongoingRide(studentID, driverID, models.PaymentMethodWallet)
	ledger.err = errs.ErrInsufficientBalance

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := repo.CompleteRide(context.Background(), ride, &models.CompleteRideRequest{})

	// the ride status update never ran, so the ride stays ongoing
	assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelRide_TerminalStateLoses(t *testing.T) {
	repo, mock, _, cleanup := setupRideRepoTest(t)
	defer cleanup()

	rideID := uuid.New()

	mock.ExpectExec("(?s)UPDATE rides(.+)SET status =").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.CancelRide(context.Background(), rideID, models.RoleStudent, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestRateRide_StoresOnceAndRefreshesAverage(t *testing.T) {
	repo, mock, _, cleanup := setupRideRepoTest(t)
	defer cleanup()

	rideID := uuid.New()
	driverID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("(?s)UPDATE rides(.+)SET rating =").
		WithArgs(5, nil, sqlmock.AnyArg(), rideID, models.RideStatusCompleted).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("(?s)UPDATE drivers(.+)SET rating =").
		WithArgs(driverID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.RateRide(context.Background(), rideID, driverID, 5, nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateRide_SecondAttemptLoses(t *testing.T) {
	repo, mock, _, cleanup := setupRideRepoTest(t)
	defer cleanup()

	rideID := uuid.New()
	driverID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("(?s)UPDATE rides(.+)SET rating =").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.RateRide(context.Background(), rideID, driverID, 4, nil)
	assert.ErrorIs(t, err, errs.ErrAlreadyRated)
}

func TestListPendingRides(t *testing.T) {
	repo, mock, _, cleanup := setupRideRepoTest(t)
	defer cleanup()

	now := time.Now()
	columns := []string{
		"id", "student_id", "driver_id",
		"pickup_address", "pickup_lat", "pickup_lng",
		"dropoff_address", "dropoff_lat", "dropoff_lng",
		"fare", "payment_method", "status",
		"estimated_distance", "estimated_duration", "actual_distance", "actual_duration",
		"start_time", "end_time", "rating", "review",
		"cancelled_by", "cancellation_reason", "created_at", "updated_at",
	}
	rows := sqlmock.NewRows(columns).
		AddRow(uuid.New(), uuid.New(), nil,
			"Main Gate", 6.5244, 3.3792,
			"Faculty of Science", 6.5170, 3.3900,
			150.0, models.PaymentMethodCash, models.RideStatusPending,
			nil, nil, nil, nil,
			nil, nil, nil, nil,
			nil, nil, now, now)

	mock.ExpectQuery("(?s)SELECT (.+) FROM rides(.+)ORDER BY created_at DESC").
		WithArgs(models.RideStatusPending, 20).
		WillReturnRows(rows)

	rideList, err := repo.ListPendingRides(context.Background(), 20)

	assert.NoError(t, err)
	require.Len(t, rideList, 1)
	assert.Equal(t, "Main Gate", rideList[0].Pickup.Address)
	assert.Equal(t, models.RideStatusPending, rideList[0].Status)
}
