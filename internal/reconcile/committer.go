package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/boostdesk-reconciliation/internal/domain/order"
	"github.com/boostdesk-reconciliation/internal/domain/payment"
)

// ErrNoSelection indicates a commit was invoked with an empty selection. It is
// rejected before any write.
var ErrNoSelection = errors.New("no codes selected for payment confirmation")

// Commit stages, used to report where a partial failure happened
const (
	StageOrderUpdate   = "order_update"
	StagePaymentAppend = "payment_append"
)

// PartialCommitError reports a failure partway through a commit batch. Writes
// are sequential and not transactional: the iterations before Code remain
// committed, and the operator must re-run analysis to see true state.
type PartialCommitError struct {
	Code      string
	Stage     string
	Committed int
	Err       error
}

func (e PartialCommitError) Error() string {
	return fmt.Sprintf("commit failed at %s for %s after %d confirmed: %v",
		e.Stage, e.Code, e.Committed, e.Err)
}

func (e PartialCommitError) Unwrap() error {
	return e.Err
}

// Outcome summarizes a fully successful commit. The caller must re-run
// analysis afterwards: confirmed orders flip to DONE_PAID and drop out of the
// matched set.
type Outcome struct {
	Committed   int       `json:"committed"`
	TotalAmount int64     `json:"total_amount"`
	BatchTime   time.Time `json:"batch_time"`
}

// Committer applies an operator's selected subset of matched claims
type Committer struct {
	orders   order.Repository
	payments payment.Repository
	logger   *slog.Logger
}

// NewCommitter creates a committer over the given stores
func NewCommitter(logger *slog.Logger, orders order.Repository, payments payment.Repository) *Committer {
	return &Committer{
		orders:   orders,
		payments: payments,
		logger:   logger,
	}
}

// Commit confirms payment for every selected code found in matched. For each
// code, sequentially: the order status is flipped to DONE_PAID, then a
// confirmation is appended to the payment log. All confirmations in the batch
// share one timestamp captured before the first write.
//
// Selected codes with no corresponding match are skipped with a warning.
// On a mid-batch failure the loop stops and a PartialCommitError is returned;
// the completed prefix stays committed.
func (c *Committer) Commit(ctx context.Context, partnerID string, selectedCodes []string, matched []Match) (*Outcome, error) {
	if len(selectedCodes) == 0 {
		return nil, ErrNoSelection
	}

	matchedByCode := make(map[string]Match, len(matched))
	for _, m := range matched {
		matchedByCode[m.Claim.Code] = m
	}

	batchTime := time.Now().UTC()
	outcome := &Outcome{BatchTime: batchTime}

	for _, code := range selectedCodes {
		m, ok := matchedByCode[code]
		if !ok {
			c.logger.Warn("Selected code has no matched claim, skipping",
				"code", code,
				"partner", partnerID,
			)
			continue
		}

		if err := c.orders.UpdateStatus(ctx, m.Order.ID, order.StatusDonePaid); err != nil {
			c.logger.Error("Failed to update order status",
				"code", code,
				"order_id", m.Order.ID.String(),
				"committed", outcome.Committed,
				"error", err,
			)
			return outcome, PartialCommitError{
				Code:      code,
				Stage:     StageOrderUpdate,
				Committed: outcome.Committed,
				Err:       err,
			}
		}

		confirmation := &payment.Confirmation{
			Code:      m.Claim.Code,
			Amount:    m.Claim.Price,
			Partner:   partnerID,
			OrderID:   m.Order.ID,
			Timestamp: batchTime,
		}
		if err := c.payments.Append(ctx, confirmation); err != nil {
			c.logger.Error("Failed to append payment confirmation",
				"code", code,
				"order_id", m.Order.ID.String(),
				"committed", outcome.Committed,
				"error", err,
			)
			return outcome, PartialCommitError{
				Code:      code,
				Stage:     StagePaymentAppend,
				Committed: outcome.Committed,
				Err:       err,
			}
		}

		outcome.Committed++
		outcome.TotalAmount += m.Claim.Price
	}

	c.logger.Info("Payment confirmation batch committed",
		"partner", partnerID,
		"committed", outcome.Committed,
		"total_amount", outcome.TotalAmount,
		"batch_time", batchTime,
	)

	return outcome, nil
}
