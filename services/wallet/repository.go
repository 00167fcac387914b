package wallet

import (
	"context"

	"github.com/google/uuid"

	"github.com/camride/camride/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/camride/camride/services/wallet WalletRepo

// WalletRepo defines the wallet repository interface
type WalletRepo interface {
	GetWalletByUser(ctx context.Context, userID uuid.UUID, role models.Role) (*models.Wallet, error)

	// Credit adds funds and records the ledger entry in one transaction
	Credit(ctx context.Context, userID uuid.UUID, role models.Role, amount float64, description string, rideID *uuid.UUID) (*models.Transaction, error)

	// Debit removes funds only when the balance covers the amount,
	// recording the ledger entry in the same transaction
	Debit(ctx context.Context, userID uuid.UUID, role models.Role, amount float64, description string, rideID *uuid.UUID) (*models.Transaction, error)

	// ListTransactions returns a page of ledger entries, newest first,
	// along with the total entry count
	ListTransactions(ctx context.Context, walletID uuid.UUID, offset, limit int) ([]models.Transaction, int, error)
}
