package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/camride/camride/internal/pkg/database"
	"github.com/camride/camride/internal/pkg/models"
)

// WalletRepo implements the wallet repository on PostgreSQL
type WalletRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewWalletRepo creates a new wallet repository instance
func NewWalletRepo(cfg *models.Config, client *database.PostgresClient) *WalletRepo {
	return &WalletRepo{
		cfg: cfg,
		db:  client.GetDB(),
	}
}
