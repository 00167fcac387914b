package usecase

import (
	"github.com/camride/camride/internal/pkg/models"
	"github.com/camride/camride/services/wallet"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type WalletUC struct {
	walletRepo wallet.WalletRepo
	cfg        *models.Config
}

// NewWalletUC creates a new wallet usecase instance
func NewWalletUC(walletRepo wallet.WalletRepo, cfg *models.Config) *WalletUC {
	return &WalletUC{
		walletRepo: walletRepo,
		cfg:        cfg,
	}
}
