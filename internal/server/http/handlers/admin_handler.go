package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/domainmart/domainmart/internal/server/http/dto"
	"github.com/domainmart/domainmart/internal/worker"
)

// AdminHandler exposes operator-only actions.
type AdminHandler struct {
	runner RegistrationRunner
	health HealthFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(runner RegistrationRunner, health HealthFacade) *AdminHandler {
	return &AdminHandler{runner: runner, health: health}
}

// Register handles POST /api/admin/orders/:id/register. It runs the
// registration pipeline synchronously, letting operators retry failed orders
// and reconciled duplicates without waiting for the poller.
func (h *AdminHandler) Register(c *gin.Context) {
	result, err := h.runner.RunRegistration(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, worker.ErrRegistrationInProgress) {
			c.Status(http.StatusConflict)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, dto.RegistrationResponse{
		Success:           result.Success,
		DomainName:        result.DomainName,
		Nameservers:       result.Nameservers,
		RegistrarDomainID: result.RegistrarDomainID,
		CloudflareZoneID:  result.CloudflareZoneID,
		Reason:            string(result.Reason),
		Detail:            result.Detail,
	})
}

// Health handles GET /healthz.
func (h *AdminHandler) Health(c *gin.Context) {
	if err := h.health.HealthCheck(c.Request.Context()); err != nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	c.Status(http.StatusOK)
}
