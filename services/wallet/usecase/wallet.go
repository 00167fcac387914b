package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/camride/camride/internal/pkg/errs"
	"github.com/camride/camride/internal/pkg/logger"
	"github.com/camride/camride/internal/pkg/models"
)

// GetBalance returns the wallet of the given (user, role) pair
func (uc *WalletUC) GetBalance(ctx context.Context, userID uuid.UUID, role models.Role) (*models.Wallet, error) {
	return uc.walletRepo.GetWalletByUser(ctx, userID, role)
}

// FundWallet credits a top-up into the caller's wallet
func (uc *WalletUC) FundWallet(ctx context.Context, userID uuid.UUID, role models.Role, req *models.FundWalletRequest) (*models.Transaction, error) {
	if req.Amount <= 0 {
		return nil, errs.Validation("amount must be greater than zero")
	}

	description := "Wallet funding"
	if req.PaymentReference != "" {
		description = fmt.Sprintf("Wallet funding (ref %s)", req.PaymentReference)
	}

	txn, err := uc.walletRepo.Credit(ctx, userID, role, req.Amount, description, nil)
	if err != nil {
		return nil, err
	}

	logger.Info("Wallet funded",
		logger.String("user_id", userID.String()),
		logger.Float64("amount", req.Amount))
	return txn, nil
}

// Withdraw debits funds out of a driver's wallet. The conditional
// update in the repository guards against overdrawing.
func (uc *WalletUC) Withdraw(ctx context.Context, driverID uuid.UUID, req *models.WithdrawRequest) (*models.Transaction, error) {
	if req.Amount <= 0 {
		return nil, errs.Validation("amount must be greater than zero")
	}
	if req.BankDetails == nil || req.BankDetails.AccountNumber == "" {
		return nil, errs.Validation("bank details are required")
	}

	description := fmt.Sprintf("Withdrawal to %s (%s)", req.BankDetails.BankName, req.BankDetails.AccountNumber)
	txn, err := uc.walletRepo.Debit(ctx, driverID, models.RoleDriver, req.Amount, description, nil)
	if err != nil {
		return nil, err
	}

	logger.Info("Withdrawal processed",
		logger.String("driver_id", driverID.String()),
		logger.Float64("amount", req.Amount))
	return txn, nil
}

// GetTransactions returns a page of the caller's ledger, newest first
func (uc *WalletUC) GetTransactions(ctx context.Context, userID uuid.UUID, role models.Role, page, limit int) (*models.TransactionHistory, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	wallet, err := uc.walletRepo.GetWalletByUser(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	transactions, total, err := uc.walletRepo.ListTransactions(ctx, wallet.ID, offset, limit)
	if err != nil {
		return nil, err
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	return &models.TransactionHistory{
		Balance:      wallet.Balance,
		Transactions: transactions,
		Total:        total,
		Page:         page,
		TotalPages:   totalPages,
	}, nil
}
