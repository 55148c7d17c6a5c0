package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/domainmart/domainmart/internal/domain/errors"
	"github.com/domainmart/domainmart/internal/server/http/dto"
)

// WalletHandler serves prepaid balance endpoints.
type WalletHandler struct {
	facade WalletFacade
}

// NewWalletHandler constructs WalletHandler.
func NewWalletHandler(facade WalletFacade) *WalletHandler {
	return &WalletHandler{facade: facade}
}

// Balance handles GET /api/users/:telegram_id/wallet.
func (h *WalletHandler) Balance(c *gin.Context) {
	telegramID, ok := telegramIDParam(c)
	if !ok {
		return
	}

	wallet, err := h.facade.Balance(c.Request.Context(), telegramID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusOK, dto.WalletResponse{TelegramID: telegramID})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.WalletResponse{
		TelegramID: wallet.TelegramID,
		BalanceUSD: wallet.BalanceUSD,
	})
}

// Entries handles GET /api/users/:telegram_id/wallet/entries.
func (h *WalletHandler) Entries(c *gin.Context) {
	telegramID, ok := telegramIDParam(c)
	if !ok {
		return
	}

	entries, err := h.facade.WalletEntries(c.Request.Context(), telegramID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(entries) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.WalletEntryResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, dto.WalletEntryResponse{
			OrderID:   e.OrderID,
			AmountUSD: e.AmountUSD,
			Kind:      string(e.Kind),
			CreatedAt: e.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

// TopUp handles POST /api/users/:telegram_id/wallet/topup.
func (h *WalletHandler) TopUp(c *gin.Context) {
	telegramID, ok := telegramIDParam(c)
	if !ok {
		return
	}

	var req dto.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.TopUp(c.Request.Context(), telegramID, req.AmountUSD, req.OrderID); err != nil {
		if errors.Is(err, domainErrors.ErrInvalidAmount) {
			c.Status(http.StatusUnprocessableEntity)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

// PayOrder handles POST /api/users/:telegram_id/wallet/pay.
func (h *WalletHandler) PayOrder(c *gin.Context) {
	telegramID, ok := telegramIDParam(c)
	if !ok {
		return
	}

	var req dto.PayOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.PayOrder(c.Request.Context(), telegramID, req.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrOrderInvalid):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrInsufficientBalance):
			c.Status(http.StatusPaymentRequired)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusOK)
}
