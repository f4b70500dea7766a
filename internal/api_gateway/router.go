package api_gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/boostdesk-reconciliation/internal/api_gateway/handler"
	"github.com/boostdesk-reconciliation/internal/api_gateway/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	partnerHandler *handler.PartnerHandler,
	paymentHandler *handler.PaymentHandler,
	reconciliationHandler *handler.ReconciliationHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Partner roster and payment audit trail
		partners := v1.Group("/partners")
		{
			partners.GET("", partnerHandler.List)
			partners.GET("/:username/payments", paymentHandler.GetByPartner)
		}

		// Reconciliation operations
		reconciliation := v1.Group("/reconciliation")
		{
			reconciliation.POST("/analyze", reconciliationHandler.Analyze)
			reconciliation.POST("/commit", reconciliationHandler.Commit)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
