package payment

import (
	"context"
)

// Repository manages the append-only partner payment log with pagination
// support for the audit-trail views. There is no update or delete: a written
// confirmation is a historical fact.
type Repository interface {
	Append(ctx context.Context, confirmation *Confirmation) error
	GetByPartner(ctx context.Context, partner string, limit, offset int) ([]*Confirmation, error)
	CountByPartner(ctx context.Context, partner string) (int64, error)
}
