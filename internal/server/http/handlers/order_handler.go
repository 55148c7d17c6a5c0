package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/domainmart/domainmart/internal/domain/errors"
	"github.com/domainmart/domainmart/internal/domain/model"
	"github.com/domainmart/domainmart/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// CreatePayment handles POST /api/orders/:id/payment.
func (h *OrderHandler) CreatePayment(c *gin.Context) {
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	payment, err := h.facade.CreatePayment(c.Request.Context(), c.Param("id"), req.Coin)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrOrderInvalid):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.PaymentResponse{
		Reference:   payment.Reference,
		Address:     payment.Address,
		ExpectedUSD: payment.ExpectedUSD,
		Status:      string(payment.Status),
	})
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:             order.ID,
		TelegramID:     order.TelegramID,
		DomainName:     order.DomainName,
		NameserverMode: string(order.NameserverMode),
		PaymentStatus:  string(order.PaymentStatus),
		TotalPriceUSD:  order.TotalPriceUSD,
		CreatedAt:      order.CreatedAt,
	}
}
