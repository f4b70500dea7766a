package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository provides read access to a partner's orders and the single write
// this subsystem is allowed: flipping an order's status. Callers re-fetch on
// every reconciliation run rather than caching across runs.
type Repository interface {
	GetByPartner(ctx context.Context, partner string) ([]*Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}

// ErrOrderNotFound indicates a status update targeted a missing order
type ErrOrderNotFound struct {
	OrderID uuid.UUID
}

func (e ErrOrderNotFound) Error() string {
	return "order not found: " + e.OrderID.String()
}

// Is implements the errors.Is interface for ErrOrderNotFound
func (e ErrOrderNotFound) Is(target error) bool {
	t, ok := target.(ErrOrderNotFound)
	if !ok {
		return false
	}
	if t.OrderID == uuid.Nil {
		return true
	}
	return e.OrderID == t.OrderID
}
