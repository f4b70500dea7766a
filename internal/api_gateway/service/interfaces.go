package service

import (
	"context"

	"github.com/boostdesk-reconciliation/internal/domain/partner"
	"github.com/boostdesk-reconciliation/internal/domain/payment"
	"github.com/boostdesk-reconciliation/internal/reconcile"
)

// ReconciliationService defines the interface for reconciliation operations
type ReconciliationService interface {
	// Analyze parses a partner ledger paste and classifies it against the
	// partner's orders. Returns ErrNoAnchorMatches when nothing overlaps and
	// ErrPartnerNotFound for an unknown partner.
	Analyze(ctx context.Context, partnerUsername, ledgerText string) (*reconcile.Result, error)

	// Commit re-runs analysis and confirms payment for the selected subset of
	// matched codes. On a mid-batch failure the returned outcome carries the
	// committed prefix alongside a PartialCommitError.
	Commit(ctx context.Context, partnerUsername, ledgerText string, selectedCodes []string, correlationID string) (*reconcile.Outcome, error)
}

// PartnerService defines the interface for partner roster operations
type PartnerService interface {
	// ListPartners retrieves the full partner roster
	ListPartners(ctx context.Context) ([]*partner.Partner, error)
}

// PaymentService defines the interface for payment audit-trail reads
type PaymentService interface {
	// GetPaymentsByPartner retrieves paginated payment confirmations for a
	// partner. Returns confirmations, total count of all confirmations, and
	// any error.
	GetPaymentsByPartner(ctx context.Context, partnerUsername string, page, perPage int) ([]*payment.Confirmation, int64, error)
}

// BatchCommitter applies a selected subset of matched claims. Satisfied by
// *reconcile.Committer.
type BatchCommitter interface {
	Commit(ctx context.Context, partnerID string, selectedCodes []string, matched []reconcile.Match) (*reconcile.Outcome, error)
}
