package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/camride/camride/internal/pkg/errs"
	"github.com/camride/camride/internal/pkg/models"
)

// CreateWalletTx inserts a zero-balance wallet inside the caller's
// transaction. Account creation calls this so the identity and its
// wallet commit together.
func (r *WalletRepo) CreateWalletTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, role models.Role) error {
	now := time.Now()
	query := `
		INSERT INTO wallets (id, user_id, user_role, balance, created_at, updated_at)
		VALUES ($1, $2, $3, 0, $4, $4)
	`
	if _, err := tx.ExecContext(ctx, query, uuid.New(), userID, role, now); err != nil {
		return fmt.Errorf("failed to insert wallet: %w", err)
	}
	return nil
}

// GetWalletByUser retrieves the wallet owned by a (user, role) pair
func (r *WalletRepo) GetWalletByUser(ctx context.Context, userID uuid.UUID, role models.Role) (*models.Wallet, error) {
	query := `
		SELECT id, user_id, user_role, balance, created_at, updated_at
		FROM wallets
		WHERE user_id = $1 AND user_role = $2
	`
	var wallet models.Wallet
	if err := r.db.GetContext(ctx, &wallet, query, userID, role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

// Credit adds funds to a wallet and appends the ledger entry, both in
// one transaction.
func (r *WalletRepo) Credit(ctx context.Context, userID uuid.UUID, role models.Role, amount float64, description string, rideID *uuid.UUID) (*models.Transaction, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	txn, err := r.creditTx(ctx, tx, userID, role, amount, description, rideID)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return txn, nil
}

// Debit removes funds from a wallet and appends the ledger entry, both
// in one transaction. Fails with ErrInsufficientBalance when the
// balance does not cover the amount.
func (r *WalletRepo) Debit(ctx context.Context, userID uuid.UUID, role models.Role, amount float64, description string, rideID *uuid.UUID) (*models.Transaction, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	txn, err := r.debitTx(ctx, tx, userID, role, amount, description, rideID)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return txn, nil
}

// TransferForRideTx debits the student and credits the driver inside
// the caller's transaction. Ride completion calls this so the fare
// transfer and the status change commit together or not at all.
func (r *WalletRepo) TransferForRideTx(ctx context.Context, tx *sqlx.Tx, rideID, studentID, driverID uuid.UUID, amount float64) error {
	if _, err := r.debitTx(ctx, tx, studentID, models.RoleStudent, amount,
		fmt.Sprintf("Ride payment - #%s", rideID), &rideID); err != nil {
		return err
	}
	if _, err := r.creditTx(ctx, tx, driverID, models.RoleDriver, amount,
		fmt.Sprintf("Ride earnings - #%s", rideID), &rideID); err != nil {
		return err
	}
	return nil
}

// ListTransactions returns a page of ledger entries, newest first
func (r *WalletRepo) ListTransactions(ctx context.Context, walletID uuid.UUID, offset, limit int) ([]models.Transaction, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM wallet_transactions WHERE wallet_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, walletID); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := `
		SELECT id, wallet_id, type, amount, description, ride_id,
			balance_before, balance_after, created_at
		FROM wallet_transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	transactions := []models.Transaction{}
	if err := r.db.SelectContext(ctx, &transactions, query, walletID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, total, nil
}

// creditTx applies a credit inside an open transaction
func (r *WalletRepo) creditTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, role models.Role, amount float64, description string, rideID *uuid.UUID) (*models.Transaction, error) {
	wallet, err := r.lockWallet(ctx, tx, userID, role)
	if err != nil {
		return nil, err
	}

	updateQuery := `UPDATE wallets SET balance = balance + $1, updated_at = $2 WHERE id = $3`
	if _, err := tx.ExecContext(ctx, updateQuery, amount, time.Now(), wallet.ID); err != nil {
		return nil, fmt.Errorf("failed to credit wallet: %w", err)
	}

	return r.insertLedgerEntry(ctx, tx, wallet, models.TransactionCredit, amount, description, rideID)
}

// debitTx applies a debit inside an open transaction. The balance guard
// is part of the UPDATE so concurrent debits cannot overdraw.
func (r *WalletRepo) debitTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, role models.Role, amount float64, description string, rideID *uuid.UUID) (*models.Transaction, error) {
	wallet, err := r.lockWallet(ctx, tx, userID, role)
	if err != nil {
		return nil, err
	}

	updateQuery := `
		UPDATE wallets SET balance = balance - $1, updated_at = $2
		WHERE id = $3 AND balance >= $1
	`
	result, err := tx.ExecContext(ctx, updateQuery, amount, time.Now(), wallet.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to debit wallet: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check debit result: %w", err)
	}
	if rows == 0 {
		return nil, errs.ErrInsufficientBalance
	}

	return r.insertLedgerEntry(ctx, tx, wallet, models.TransactionDebit, amount, description, rideID)
}

// lockWallet reads the wallet row with FOR UPDATE so the balance
// snapshot used for the ledger entry stays consistent.
func (r *WalletRepo) lockWallet(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, role models.Role) (*models.Wallet, error) {
	query := `
		SELECT id, user_id, user_role, balance, created_at, updated_at
		FROM wallets
		WHERE user_id = $1 AND user_role = $2
		FOR UPDATE
	`
	var wallet models.Wallet
	if err := tx.GetContext(ctx, &wallet, query, userID, role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &wallet, nil
}

func (r *WalletRepo) insertLedgerEntry(ctx context.Context, tx *sqlx.Tx, wallet *models.Wallet, txnType models.TransactionType, amount float64, description string, rideID *uuid.UUID) (*models.Transaction, error) {
	balanceAfter := wallet.Balance + amount
	if txnType == models.TransactionDebit {
		balanceAfter = wallet.Balance - amount
	}

	txn := &models.Transaction{
		ID:            uuid.New(),
		WalletID:      wallet.ID,
		Type:          txnType,
		Amount:        amount,
		Description:   description,
		RideID:        rideID,
		BalanceBefore: wallet.Balance,
		BalanceAfter:  balanceAfter,
		CreatedAt:     time.Now(),
	}

	query := `
		INSERT INTO wallet_transactions (id, wallet_id, type, amount, description,
			ride_id, balance_before, balance_after, created_at
		) VALUES (:id, :wallet_id, :type, :amount, :description,
			:ride_id, :balance_before, :balance_after, :created_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, txn); err != nil {
		return nil, fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return txn, nil
}
