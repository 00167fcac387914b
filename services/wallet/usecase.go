package wallet

import (
	"context"

	"github.com/google/uuid"

	"github.com/camride/camride/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/camride/camride/services/wallet WalletUC

// WalletUC represents the wallet usecase interface
type WalletUC interface {
	GetBalance(ctx context.Context, userID uuid.UUID, role models.Role) (*models.Wallet, error)
	FundWallet(ctx context.Context, userID uuid.UUID, role models.Role, req *models.FundWalletRequest) (*models.Transaction, error)
	Withdraw(ctx context.Context, driverID uuid.UUID, req *models.WithdrawRequest) (*models.Transaction, error)
	GetTransactions(ctx context.Context, userID uuid.UUID, role models.Role, page, limit int) (*models.TransactionHistory, error)
}
