// Package mongo provides MongoDB implementations of the order and payment
// repositories backing the reconciliation engine.
package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/boostdesk-reconciliation/internal/domain/order"
)

const (
	// OrdersCollectionName is the name of the orders collection in MongoDB
	OrdersCollectionName = "orders"
)

// OrderRepository implements the order.Repository interface for MongoDB
type OrderRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewOrderRepository creates a new MongoDB order repository
func NewOrderRepository(logger *slog.Logger, db *mongo.Database) order.Repository {
	return &OrderRepository{
		db:     db,
		logger: logger,
	}
}

// GetByPartner retrieves the full set of a partner's orders. Reconciliation
// operates on the whole partner-scoped set in memory, so there is no
// pagination here; result ordering follows creation time.
func (r *OrderRepository) GetByPartner(ctx context.Context, partner string) ([]*order.Order, error) {
	collection := r.db.Collection(OrdersCollectionName)

	filter := bson.M{"partner": partner}
	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to get orders",
			"partner", partner,
			"error", err)
		return nil, fmt.Errorf("failed to get orders for partner %s: %w", partner, err)
	}
	defer cursor.Close(ctx)

	var orders []*order.Order
	if err := cursor.All(ctx, &orders); err != nil {
		r.logger.Error("Failed to decode orders",
			"partner", partner,
			"error", err)
		return nil, fmt.Errorf("failed to decode orders for partner %s: %w", partner, err)
	}

	return orders, nil
}

// UpdateStatus flips an order's status field. Returns ErrOrderNotFound if the
// order doesn't exist.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) error {
	collection := r.db.Collection(OrdersCollectionName)

	filter := bson.M{"id": id}
	update := bson.M{
		"$set": bson.M{
			"status": status,
		},
	}

	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		r.logger.Error("Failed to update order status",
			"order_id", id.String(),
			"status", string(status),
			"error", err)
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if result.MatchedCount == 0 {
		return order.ErrOrderNotFound{OrderID: id}
	}

	return nil
}
