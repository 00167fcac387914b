package usecase

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/camride/camride/internal/pkg/errs"
	"github.com/camride/camride/internal/pkg/models"
	"github.com/camride/camride/services/wallet/mocks"
)

func setupWalletUCTest(t *testing.T) (*WalletUC, *mocks.MockWalletRepo, func()) {
	ctrl := gomock.NewController(t)
	walletRepo := mocks.NewMockWalletRepo(ctrl)
	uc := NewWalletUC(walletRepo, &models.Config{})
	return uc, walletRepo, ctrl.Finish
}

func TestFundWallet_Success(t *testing.T) {
	uc, walletRepo, finish := setupWalletUCTest(t)
	defer finish()

	userID := uuid.New()

	walletRepo.EXPECT().
		Credit(gomock.Any(), userID, models.RoleStudent, 500.0, "Wallet funding (ref PAY-123)", nil).
		Return(&models.Transaction{Type: models.TransactionCredit, Amount: 500}, nil)

	txn, err := uc.FundWallet(context.Background(), userID, models.RoleStudent,
		&models.FundWalletRequest{Amount: 500, PaymentReference: "PAY-123"})

	assert.NoError(t, err)
	assert.Equal(t, 500.0, txn.Amount)
}

func TestFundWallet_NonPositiveAmount(t *testing.T) {
	uc, _, finish := setupWalletUCTest(t)
	defer finish()

	_, err := uc.FundWallet(context.Background(), uuid.New(), models.RoleStudent,
		&models.FundWalletRequest{Amount: 0})

	assert.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestWithdraw_RequiresBankDetails(t *testing.T) {
	uc, _, finish := setupWalletUCTest(t)
	defer finish()

	_, err := uc.Withdraw(context.Background(), uuid.New(),
		&models.WithdrawRequest{Amount: 100})

	assert.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestWithdraw_InsufficientBalance(t *testing.T) {
	uc, walletRepo, finish := setupWalletUCTest(t)
	defer finish()

	driverID := uuid.New()

	walletRepo.EXPECT().
		Debit(gomock.Any(), driverID, models.RoleDriver, 1000.0, gomock.Any(), nil).
		Return(nil, errs.ErrInsufficientBalance)

	_, err := uc.Withdraw(context.Background(), driverID, &models.WithdrawRequest{
		Amount:      1000,
		BankDetails: &models.BankDetails{AccountName: "A Driver", AccountNumber: "0123456789", BankName: "First Bank"},
	})

	assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
}

func TestGetTransactions_PagingMath(t *testing.T) {
	uc, walletRepo, finish := setupWalletUCTest(t)
	defer finish()

	userID := uuid.New()
	walletID := uuid.New()

	walletRepo.EXPECT().GetWalletByUser(gomock.Any(), userID, models.RoleStudent).
		Return(&models.Wallet{ID: walletID, Balance: 250}, nil)
	// page 2 with limit 10 skips the first 10 entries
	walletRepo.EXPECT().ListTransactions(gomock.Any(), walletID, 10, 10).
		Return([]models.Transaction{{Amount: 50}}, 25, nil)

	history, err := uc.GetTransactions(context.Background(), userID, models.RoleStudent, 2, 10)

	assert.NoError(t, err)
	assert.Equal(t, 250.0, history.Balance)
	assert.Equal(t, 25, history.Total)
	assert.Equal(t, 2, history.Page)
	assert.Equal(t, 3, history.TotalPages)
}

func TestGetTransactions_ClampsPageAndLimit(t *testing.T) {
	uc, walletRepo, finish := setupWalletUCTest(t)
	defer finish()

	userID := uuid.New()
	walletID := uuid.New()

	walletRepo.EXPECT().GetWalletByUser(gomock.Any(), userID, models.RoleDriver).
		Return(&models.Wallet{ID: walletID}, nil)
	walletRepo.EXPECT().ListTransactions(gomock.Any(), walletID, 0, maxPageSize).
		Return([]models.Transaction{}, 0, nil)

	history, err := uc.GetTransactions(context.Background(), userID, models.RoleDriver, 0, 5000)

	assert.NoError(t, err)
	assert.Equal(t, 1, history.Page)
	assert.Equal(t, 0, history.TotalPages)
}
