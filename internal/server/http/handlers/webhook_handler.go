package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/domainmart/domainmart/internal/domain/errors"
	"github.com/domainmart/domainmart/internal/pkg/auth"
	"github.com/domainmart/domainmart/internal/server/http/dto"
)

// SignatureHeader carries the gateway's HMAC over the raw request body.
const SignatureHeader = "X-Callback-Signature"

// WebhookHandler receives payment gateway callbacks. Confirmed payments move
// the order forward; registration itself is driven by the background poller.
type WebhookHandler struct {
	facade   OrderFacade
	verifier *auth.WebhookVerifier
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade OrderFacade, verifier *auth.WebhookVerifier) *WebhookHandler {
	return &WebhookHandler{facade: facade, verifier: verifier}
}

// Payment handles POST /api/webhooks/payment.
func (h *WebhookHandler) Payment(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.verifier.Verify(body, c.GetHeader(SignatureHeader)); err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	var payload dto.PaymentWebhook
	if err := json.Unmarshal(body, &payload); err != nil || payload.OrderID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	if payload.Status != "confirmed" {
		c.Status(http.StatusOK)
		return
	}

	if err := h.facade.ConfirmPayment(c.Request.Context(), payload.OrderID, payload.ValueUSD); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusOK)
}
