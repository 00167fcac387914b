package repository

import (
	"context"
	"fmt"
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

func setupWalletRepoTest(t *testing.T) (*WalletRepo, sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")

	repo := &WalletRepo{
		db:  sqlxDB,
		cfg: &models.Config{},
	}

	cleanup := func() {
		sqlxDB.Close()
	}

	return repo, mock, cleanup
}

func walletRows(walletID, userID uuid.UUID, role models.Role, balance float64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "user_id", "user_role", "balance", "created_at", "updated_at"}).
		AddRow(walletID, userID, role, balance, now, now)
}

func TestGetWalletByUser(t *testing.T) {
	repo, mock, cleanup := setupWalletRepoTest(t)
	defer cleanup()

	walletID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery("(?s)SELECT (.+) FROM wallets").
		WithArgs(userID, models.RoleStudent).
		WillReturnRows(walletRows(walletID, userID, models.RoleStudent, 500))

	wallet, err := repo.GetWalletByUser(context.Background(), userID, models.RoleStudent)

	assert.NoError(t, err)
	assert.Equal(t, walletID, wallet.ID)
	assert.Equal(t, 500.0, wallet.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWalletByUser_NotFound(t *testing.T) {
	repo, mock, cleanup := setupWalletRepoTest(t)
	defer cleanup()

	userID := uuid.New()

	mock.ExpectQuery("(?s)SELECT (.+) FROM wallets").
		WithArgs(userID, models.RoleDriver).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "user_role", "balance", "created_at", "updated_at"}))

	wallet, err := repo.GetWalletByUser(context.Background(), userID, models.RoleDriver)

	assert.Nil(t, wallet)
	assert.ErrorIs(t, err, errs.ErrWalletNotFound)
}

func TestCredit_AppendsLedgerEntry(t *testing.T) {
	repo, mock, cleanup := setupWalletRepoTest(t)
	defer cleanup()

	walletID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("(?s)SELECT (.+) FROM wallets(.+)FOR UPDATE").
		WithArgs(userID, models.RoleStudent).
		WillReturnRows(walletRows(walletID, userID, models.RoleStudent, 100))
	mock.ExpectExec("UPDATE wallets SET balance = balance \\+").
		WithArgs(50.0, sqlmock.AnyArg(), walletID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("(?s)INSERT INTO wallet_transactions").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	txn, err := repo.Credit(context.Background(), userID, models.RoleStudent, 50, "Wallet funding", nil)

	assert.NoError(t, err)
	assert.Equal(t, models.TransactionCredit, txn.Type)
	assert.Equal(t, 100.0, txn.BalanceBefore)
	assert.Equal(t, 150.0, txn.BalanceAfter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDebit_InsufficientBalanceRollsBack(t *testing.T) {
	repo, mock, cleanup := setupWalletRepoTest(t)
	defer cleanup()

	walletID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("(?s)SELECT (.+) FROM wallets(.+)FOR UPDATE").
		WithArgs(userID, models.RoleStudent).
		WillReturnRows(walletRows(walletID, userID, models.RoleStudent, 20))
	// balance guard in the WHERE clause matches no rows
	mock.ExpectExec("(?s)UPDATE wallets SET balance = balance -").
		WithArgs(50.0, sqlmock.AnyArg(), walletID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	txn, err := repo.Debit(context.Background(), userID, models.RoleStudent, 50, "Withdrawal", nil)

	assert.Nil(t, txn)
	assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferForRideTx_DebitsThenCredits(t *testing.T) {
	repo, mock, cleanup := setupWalletRepoTest(t)
	defer cleanup()

	rideID := uuid.New()
	studentID := uuid.New()
	driverID := uuid.New()
	studentWalletID := uuid.New()
	driverWalletID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("(?s)SELECT (.+) FROM wallets(.+)FOR UPDATE").
		WithArgs(studentID, models.RoleStudent).
		WillReturnRows(walletRows(studentWalletID, studentID, models.RoleStudent, 200))
	mock.ExpectExec("(?s)UPDATE wallets SET balance = balance -").
		WithArgs(75.0, sqlmock.AnyArg(), studentWalletID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("(?s)INSERT INTO wallet_transactions").
		WithArgs(sqlmock.AnyArg(), studentWalletID, models.TransactionDebit, 75.0,
			fmt.Sprintf("Ride payment - #%s", rideID), rideID, 200.0, 125.0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("(?s)SELECT (.+) FROM wallets(.+)FOR UPDATE").
		WithArgs(driverID, models.RoleDriver).
		WillReturnRows(walletRows(driverWalletID, driverID, models.RoleDriver, 10))
	mock.ExpectExec("UPDATE wallets SET balance = balance \\+").
		WithArgs(75.0, sqlmock.AnyArg(), driverWalletID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("(?s)INSERT INTO wallet_transactions").
		WithArgs(sqlmock.AnyArg(), driverWalletID, models.TransactionCredit, 75.0,
			fmt.Sprintf("Ride earnings - #%s", rideID), rideID, 10.0, 85.0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := repo.db.Beginx()
	require.NoError(t, err)

	err = repo.TransferForRideTx(context.Background(), tx, rideID, studentID, driverID, 75)
	assert.NoError(t, err)

	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWalletTx(t *testing.T) {
	repo, mock, cleanup := setupWalletRepoTest(t)
	defer cleanup()

	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO wallets").
		WithArgs(sqlmock.AnyArg(), userID, models.RoleStudent, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := repo.db.Beginx()
	require.NoError(t, err)

	err = repo.CreateWalletTx(context.Background(), tx, userID, models.RoleStudent)
	assert.NoError(t, err)

	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
