package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/boostdesk-reconciliation/internal/domain/payment"
)

const (
	// PaymentsCollectionName is the name of the payment log collection in MongoDB
	PaymentsCollectionName = "partner_payments"
)

// PaymentRepository implements the payment.Repository interface for MongoDB.
// The collection is append-only; confirmations are never updated or removed.
type PaymentRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewPaymentRepository creates a new MongoDB payment repository
func NewPaymentRepository(logger *slog.Logger, db *mongo.Database) payment.Repository {
	return &PaymentRepository{
		db:     db,
		logger: logger,
	}
}

// Append stores a new payment confirmation
func (r *PaymentRepository) Append(ctx context.Context, confirmation *payment.Confirmation) error {
	collection := r.db.Collection(PaymentsCollectionName)

	_, err := collection.InsertOne(ctx, confirmation)
	if err != nil {
		r.logger.Error("Failed to append payment confirmation",
			"code", confirmation.Code,
			"partner", confirmation.Partner,
			"error", err)
		return fmt.Errorf("failed to append payment confirmation: %w", err)
	}

	return nil
}

// GetByPartner retrieves paginated payment confirmations for a partner.
// Results are sorted by batch timestamp in descending order (newest first),
// so confirmations from one batch stay adjacent.
func (r *PaymentRepository) GetByPartner(ctx context.Context, partner string, limit, offset int) ([]*payment.Confirmation, error) {
	collection := r.db.Collection(PaymentsCollectionName)

	filter := bson.M{"partner": partner}
	opts := options.Find().
		SetSort(bson.M{"timestamp": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to get payment confirmations",
			"partner", partner,
			"error", err)
		return nil, fmt.Errorf("failed to get payment confirmations: %w", err)
	}
	defer cursor.Close(ctx)

	var confirmations []*payment.Confirmation
	if err := cursor.All(ctx, &confirmations); err != nil {
		r.logger.Error("Failed to decode payment confirmations",
			"partner", partner,
			"error", err)
		return nil, fmt.Errorf("failed to decode payment confirmations: %w", err)
	}

	return confirmations, nil
}

// CountByPartner counts the total number of payment confirmations for a partner
func (r *PaymentRepository) CountByPartner(ctx context.Context, partner string) (int64, error) {
	collection := r.db.Collection(PaymentsCollectionName)

	filter := bson.M{"partner": partner}
	count, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to count payment confirmations",
			"partner", partner,
			"error", err)
		return 0, fmt.Errorf("failed to count payment confirmations: %w", err)
	}

	return count, nil
}
