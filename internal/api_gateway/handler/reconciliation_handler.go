package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/boostdesk-reconciliation/internal/api_gateway/middleware"
	"github.com/boostdesk-reconciliation/internal/api_gateway/service"
	"github.com/boostdesk-reconciliation/internal/domain/partner"
	"github.com/boostdesk-reconciliation/internal/reconcile"
)

// ReconciliationHandler handles HTTP requests for reconciliation operations
type ReconciliationHandler struct {
	reconciliationService service.ReconciliationService
	logger                *slog.Logger
}

// NewReconciliationHandler creates a new reconciliation handler
func NewReconciliationHandler(logger *slog.Logger, reconciliationService service.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{
		reconciliationService: reconciliationService,
		logger:                logger,
	}
}

// Analyze classifies a pasted partner ledger against the partner's orders
func (h *ReconciliationHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.reconciliationService.Analyze(c.Request.Context(), req.Partner, req.LedgerText)
	if err != nil {
		h.respondAnalysisError(c, req.Partner, err)
		return
	}

	RespondOK(c, mapResultToResponse(result))
}

// Commit confirms payment for the selected subset of matched codes
func (h *ReconciliationHandler) Commit(c *gin.Context) {
	var req CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	correlationID := middleware.GetCorrelationID(c)
	outcome, err := h.reconciliationService.Commit(c.Request.Context(), req.Partner, req.LedgerText, req.SelectedCodes, correlationID)
	if err != nil {
		if errors.Is(err, reconcile.ErrNoSelection) {
			RespondWithError(c, http.StatusBadRequest, "NO_SELECTION", "No codes selected for payment confirmation")
			return
		}
		var partial reconcile.PartialCommitError
		if errors.As(err, &partial) {
			h.logger.Error("Commit failed partway through batch",
				"partner", req.Partner,
				"code", partial.Code,
				"stage", partial.Stage,
				"committed", partial.Committed,
				"error", err,
			)
			RespondWithError(c, http.StatusInternalServerError, "PARTIAL_COMMIT_FAILURE", partial.Error())
			return
		}
		h.respondAnalysisError(c, req.Partner, err)
		return
	}

	RespondOK(c, CommitResponse{
		Committed:   outcome.Committed,
		TotalAmount: outcome.TotalAmount,
		BatchTime:   outcome.BatchTime.Format(time.RFC3339),
	})
}

// respondAnalysisError maps errors shared by analyze and commit
func (h *ReconciliationHandler) respondAnalysisError(c *gin.Context, partnerUsername string, err error) {
	if errors.Is(err, partner.ErrPartnerNotFound{}) {
		RespondNotFound(c, "Partner not found: "+partnerUsername)
		return
	}
	if errors.Is(err, reconcile.ErrNoAnchorMatches) {
		RespondWithError(c, http.StatusUnprocessableEntity, "NO_MATCHING_ORDERS", "No orders match the partner ledger")
		return
	}
	h.logger.Error("Reconciliation failed", "partner", partnerUsername, "error", err)
	RespondInternalError(c)
}

func mapResultToResponse(result *reconcile.Result) ReconciliationResponse {
	resp := ReconciliationResponse{
		Matched:          []MatchedClaimResponse{},
		PriceMismatch:    []PriceMismatchResponse{},
		NotInSystem:      []ClaimResponse{},
		MissingInPartner: []OrderSummaryResponse{},
		From:             result.From.Format(time.RFC3339),
		To:               result.To.Format(time.RFC3339),
		TotalPayable:     result.TotalPayable,
		DuplicateClaims:  result.DuplicateClaims,
	}

	for _, m := range result.Matched {
		resp.Matched = append(resp.Matched, MatchedClaimResponse{
			Code:      m.Claim.Code,
			Price:     m.Claim.Price,
			OrderID:   m.Order.ID.String(),
			Status:    string(m.Order.Status),
			CreatedAt: m.Order.CreatedAt.Format(time.RFC3339),
		})
	}
	for _, pm := range result.PriceMismatch {
		resp.PriceMismatch = append(resp.PriceMismatch, PriceMismatchResponse{
			Code:         pm.Claim.Code,
			PartnerPrice: pm.Claim.Price,
			SystemPrice:  pm.SystemPrice,
			OrderID:      pm.Order.ID.String(),
		})
	}
	for _, claim := range result.NotInSystem {
		resp.NotInSystem = append(resp.NotInSystem, ClaimResponse{
			Code:  claim.Code,
			Price: claim.Price,
		})
	}
	for _, o := range result.MissingInPartner {
		resp.MissingInPartner = append(resp.MissingInPartner, OrderSummaryResponse{
			ID:        o.ID.String(),
			Code:      o.Code,
			Price:     o.Price,
			Status:    string(o.Status),
			CreatedAt: o.CreatedAt.Format(time.RFC3339),
		})
	}

	return resp
}
