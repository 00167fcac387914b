package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/camride/camride/internal/pkg/middleware"
	"github.com/camride/camride/internal/pkg/models"
	"github.com/camride/camride/internal/utils"
	"github.com/camride/camride/services/wallet"
)

// WalletHandler exposes wallet endpoints for authenticated accounts
type WalletHandler struct {
	walletUC wallet.WalletUC
}

// NewWalletHandler creates a new wallet handler instance
func NewWalletHandler(walletUC wallet.WalletUC) *WalletHandler {
	return &WalletHandler{walletUC: walletUC}
}

// GetBalance returns the caller's wallet balance
func (h *WalletHandler) GetBalance(c echo.Context) error {
	userID, role, ok := middleware.CallerIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	w, err := h.walletUC.GetBalance(c.Request().Context(), userID, role)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "", w)
}

// FundWallet credits a top-up into the caller's wallet
func (h *WalletHandler) FundWallet(c echo.Context) error {
	userID, role, ok := middleware.CallerIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var request models.FundWalletRequest
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	txn, err := h.walletUC.FundWallet(c.Request().Context(), userID, role, &request)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Wallet funded successfully", txn)
}

// Withdraw debits funds out of the caller's wallet. Drivers only.
func (h *WalletHandler) Withdraw(c echo.Context) error {
	userID, _, ok := middleware.CallerIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var request models.WithdrawRequest
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	txn, err := h.walletUC.Withdraw(c.Request().Context(), userID, &request)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Withdrawal processed", txn)
}

// GetTransactions returns a page of the caller's ledger
func (h *WalletHandler) GetTransactions(c echo.Context) error {
	userID, role, ok := middleware.CallerIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	history, err := h.walletUC.GetTransactions(c.Request().Context(), userID, role, page, limit)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "", history)
}
