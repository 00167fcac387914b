package usecase

import (
	"github.com/camride/camride/internal/pkg/models"
	"github.com/camride/camride/services/accounts"
)

const otpTTL = 15 // minutes

type AccountUC struct {
	accountRepo accounts.AccountRepo
	accountGW   accounts.AccountGW
	cfg         *models.Config
}

// NewAccountUC creates a new account usecase instance
func NewAccountUC(
	accountRepo accounts.AccountRepo,
	accountGW accounts.AccountGW,
	cfg *models.Config,
) *AccountUC {
	return &AccountUC{
		accountRepo: accountRepo,
		accountGW:   accountGW,
		cfg:         cfg,
	}
}
