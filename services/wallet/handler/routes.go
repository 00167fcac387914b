package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/camride/camride/internal/pkg/middleware"
	"github.com/camride/camride/internal/pkg/models"
	wallethttp "github.com/camride/camride/services/wallet/handler/http"
)

// Handler coordinates the HTTP handlers for the wallet service
type Handler struct {
	walletHandler *wallethttp.WalletHandler
	cfg           *models.Config
}

// NewHandler creates and initializes the wallet handler
func NewHandler(walletHandler *wallethttp.WalletHandler, cfg *models.Config) *Handler {
	return &Handler{
		walletHandler: walletHandler,
		cfg:           cfg,
	}
}

// RegisterRoutes wires the wallet endpoints onto the Echo instance
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	jwtGuard := middleware.JWTAuthMiddleware(h.cfg.JWT)

	wallets := e.Group("/api/v1/wallet", jwtGuard)
	wallets.GET("/balance", h.walletHandler.GetBalance)
	wallets.POST("/fund", h.walletHandler.FundWallet, middleware.RequireRole(models.RoleStudent))
	wallets.GET("/transactions", h.walletHandler.GetTransactions)
	wallets.POST("/withdraw", h.walletHandler.Withdraw, middleware.RequireRole(models.RoleDriver))
}
