package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/camride/camride/internal/pkg/database"
	"github.com/camride/camride/internal/pkg/models"
)

// WalletProvisioner creates the wallet that backs a new account within
// the caller's transaction, so identity and wallet commit together.
type WalletProvisioner interface {
	CreateWalletTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, role models.Role) error
}

// AccountRepo implements the account repository on PostgreSQL
type AccountRepo struct {
	cfg     *models.Config
	db      *sqlx.DB
	wallets WalletProvisioner
}

// NewAccountRepo creates a new account repository instance
func NewAccountRepo(cfg *models.Config, client *database.PostgresClient, wallets WalletProvisioner) *AccountRepo {
	return &AccountRepo{
		cfg:     cfg,
		db:      client.GetDB(),
		wallets: wallets,
	}
}
