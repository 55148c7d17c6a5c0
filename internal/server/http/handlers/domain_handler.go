package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/domainmart/domainmart/internal/domain/model"
	"github.com/domainmart/domainmart/internal/server/http/dto"
)

// DomainHandler serves registered domain queries.
type DomainHandler struct {
	facade DomainFacade
}

// NewDomainHandler constructs DomainHandler.
func NewDomainHandler(facade DomainFacade) *DomainHandler {
	return &DomainHandler{facade: facade}
}

// List handles GET /api/users/:telegram_id/domains.
func (h *DomainHandler) List(c *gin.Context) {
	telegramID, ok := telegramIDParam(c)
	if !ok {
		return
	}

	domains, err := h.facade.Domains(c.Request.Context(), telegramID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(domains) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.DomainResponse, 0, len(domains))
	for _, d := range domains {
		response = append(response, toDomainResponse(d))
	}
	c.JSON(http.StatusOK, response)
}

func toDomainResponse(domain model.RegisteredDomain) dto.DomainResponse {
	zoneID := ""
	if domain.CloudflareZoneID != nil {
		zoneID = *domain.CloudflareZoneID
	}
	return dto.DomainResponse{
		DomainName:        domain.DomainName,
		Status:            string(domain.Status),
		NameserverMode:    string(domain.NameserverMode),
		Nameservers:       domain.Nameservers,
		RegistrarDomainID: domain.RegistrarDomainID,
		CloudflareZoneID:  zoneID,
		ExpiryDate:        domain.ExpiryDate,
	}
}

func telegramIDParam(c *gin.Context) (int64, bool) {
	telegramID, err := strconv.ParseInt(c.Param("telegram_id"), 10, 64)
	if err != nil || telegramID <= 0 {
		c.Status(http.StatusBadRequest)
		return 0, false
	}
	return telegramID, true
}
