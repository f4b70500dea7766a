// Package postgres provides the PostgreSQL implementation of the partner
// roster repository. The roster is maintained by the user-management
// subsystem; this service only reads it.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/boostdesk-reconciliation/internal/domain/partner"
	"github.com/boostdesk-reconciliation/internal/platform/persistence"
)

// PartnerRepository implements the partner.Repository interface for PostgreSQL
type PartnerRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewPartnerRepository creates a new PostgreSQL partner repository.
// It expects db.Pool() to satisfy persistence.Querier.
func NewPartnerRepository(logger *slog.Logger, db *persistence.PostgresDB) partner.Repository {
	return &PartnerRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// List retrieves the full partner roster ordered by display name
func (r *PartnerRepository) List(ctx context.Context) ([]*partner.Partner, error) {
	query := `
		SELECT id, username, name, created_at
		FROM partners
		ORDER BY name
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list partners", "error", err)
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}
	defer rows.Close()

	var partners []*partner.Partner
	for rows.Next() {
		var p partner.Partner
		if err := rows.Scan(&p.ID, &p.Username, &p.Name, &p.CreatedAt); err != nil {
			r.logger.Error("Failed to scan partner row", "error", err)
			return nil, fmt.Errorf("failed to scan partner row: %w", err)
		}
		partners = append(partners, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read partner rows: %w", err)
	}

	return partners, nil
}

// GetByUsername retrieves a roster entry by its username.
// Returns ErrPartnerNotFound if no partner exists with the given username.
func (r *PartnerRepository) GetByUsername(ctx context.Context, username string) (*partner.Partner, error) {
	query := `
		SELECT id, username, name, created_at
		FROM partners
		WHERE username = $1
	`

	var p partner.Partner
	err := r.querier.QueryRow(ctx, query, username).Scan(
		&p.ID,
		&p.Username,
		&p.Name,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, partner.ErrPartnerNotFound{Username: username}
		}
		r.logger.Error("Failed to get partner", "username", username, "error", err)
		return nil, fmt.Errorf("failed to get partner: %w", err)
	}

	return &p, nil
}
