package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/boostdesk-reconciliation/internal/api_gateway/service"
)

// PaymentHandler handles HTTP requests for the payment audit trail
type PaymentHandler struct {
	paymentService service.PaymentService
	logger         *slog.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(logger *slog.Logger, paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// GetByPartner retrieves paginated payment confirmations for a partner
func (h *PaymentHandler) GetByPartner(c *gin.Context) {
	partnerUsername := c.Param("username")
	if partnerUsername == "" {
		RespondBadRequest(c, "Partner username is required")
		return
	}

	var params PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.logger.Error("Invalid pagination parameters", "error", err)
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	confirmations, total, err := h.paymentService.GetPaymentsByPartner(c.Request.Context(), partnerUsername, params.Page, params.PerPage)
	if err != nil {
		h.logger.Error("Failed to get payments", "partner", partnerUsername, "error", err)
		RespondInternalError(c)
		return
	}

	response := PaymentListResponse{Payments: make([]PaymentResponse, 0, len(confirmations))}
	for _, conf := range confirmations {
		response.Payments = append(response.Payments, PaymentResponse{
			Code:      conf.Code,
			Amount:    conf.Amount,
			Partner:   conf.Partner,
			OrderID:   conf.OrderID.String(),
			Timestamp: conf.Timestamp.Format(time.RFC3339),
		})
	}

	RespondWithPaginatedData(c, http.StatusOK, response, params.Page, params.PerPage, int(total))
}
