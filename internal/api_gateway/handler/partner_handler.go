package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/boostdesk-reconciliation/internal/api_gateway/service"
)

// PartnerHandler handles HTTP requests for the partner roster
type PartnerHandler struct {
	partnerService service.PartnerService
	logger         *slog.Logger
}

// NewPartnerHandler creates a new partner handler
func NewPartnerHandler(logger *slog.Logger, partnerService service.PartnerService) *PartnerHandler {
	return &PartnerHandler{
		partnerService: partnerService,
		logger:         logger,
	}
}

// List retrieves the full partner roster
func (h *PartnerHandler) List(c *gin.Context) {
	partners, err := h.partnerService.ListPartners(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list partners", "error", err)
		RespondInternalError(c)
		return
	}

	response := make([]PartnerResponse, 0, len(partners))
	for _, p := range partners {
		response = append(response, PartnerResponse{
			ID:       p.ID.String(),
			Username: p.Username,
			Name:     p.Name,
		})
	}

	RespondOK(c, response)
}
