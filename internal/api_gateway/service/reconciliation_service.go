package service

import (
	"context"
	"log/slog"

	"github.com/boostdesk-reconciliation/internal/domain/order"
	"github.com/boostdesk-reconciliation/internal/domain/partner"
	"github.com/boostdesk-reconciliation/internal/domain/shared"
	"github.com/boostdesk-reconciliation/internal/platform/messaging/producers"
	"github.com/boostdesk-reconciliation/internal/reconcile"
)

// ReconciliationServiceImpl implements the ReconciliationService interface
type ReconciliationServiceImpl struct {
	partnerRepo partner.Repository
	orderRepo   order.Repository
	committer   BatchCommitter
	producer    producers.MessagePublisher
	logger      *slog.Logger
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(
	logger *slog.Logger,
	partnerRepo partner.Repository,
	orderRepo order.Repository,
	committer BatchCommitter,
	producer producers.MessagePublisher,
) ReconciliationService {
	return &ReconciliationServiceImpl{
		partnerRepo: partnerRepo,
		orderRepo:   orderRepo,
		committer:   committer,
		producer:    producer,
		logger:      logger,
	}
}

// Analyze validates the partner, fetches a fresh snapshot of the partner's
// orders, and classifies the pasted ledger against it. Order state is
// re-fetched on every call; nothing is cached between runs.
func (s *ReconciliationServiceImpl) Analyze(ctx context.Context, partnerUsername, ledgerText string) (*reconcile.Result, error) {
	if _, err := s.partnerRepo.GetByUsername(ctx, partnerUsername); err != nil {
		return nil, err
	}

	claims := reconcile.ParseLedger(ledgerText)
	orders, err := s.orderRepo.GetByPartner(ctx, partnerUsername)
	if err != nil {
		s.logger.Error("Failed to fetch orders for analysis",
			"partner", partnerUsername,
			"error", err,
		)
		return nil, err
	}

	result, err := reconcile.Analyze(claims, orders)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reconciliation analysis completed",
		"partner", partnerUsername,
		"claims", len(claims),
		"matched", len(result.Matched),
		"price_mismatch", len(result.PriceMismatch),
		"not_in_system", len(result.NotInSystem),
		"missing_in_partner", len(result.MissingInPartner),
		"duplicate_claims", result.DuplicateClaims,
		"total_payable", result.TotalPayable,
	)

	return result, nil
}

// Commit re-derives the matched set from the submitted ledger text and
// confirms payment for the selected codes. The API is stateless: the matched
// set is never trusted from the client, always recomputed against fresh order
// state. After a fully successful commit a batch event is published for the
// notification feed; publish failure is logged and never fails the commit.
func (s *ReconciliationServiceImpl) Commit(ctx context.Context, partnerUsername, ledgerText string, selectedCodes []string, correlationID string) (*reconcile.Outcome, error) {
	if len(selectedCodes) == 0 {
		return nil, reconcile.ErrNoSelection
	}

	result, err := s.Analyze(ctx, partnerUsername, ledgerText)
	if err != nil {
		return nil, err
	}

	outcome, err := s.committer.Commit(ctx, partnerUsername, selectedCodes, result.Matched)
	if err != nil {
		return outcome, err
	}

	event := &shared.BatchCommittedEvent{
		Partner:       partnerUsername,
		Committed:     outcome.Committed,
		TotalAmount:   outcome.TotalAmount,
		BatchTime:     outcome.BatchTime,
		CorrelationID: correlationID,
	}
	if err := s.producer.Publish(ctx, partnerUsername, event); err != nil {
		s.logger.Warn("Failed to publish batch committed event",
			"partner", partnerUsername,
			"committed", outcome.Committed,
			"error", err,
		)
	}

	return outcome, nil
}
