package payment

import (
	"time"

	"github.com/google/uuid"
)

// Confirmation is one confirmed partner payment in the append-only
// partner_payments log. All confirmations written by a single commit share
// one Timestamp, which groups them into an auditable batch.
type Confirmation struct {
	Code      string    `json:"code" bson:"code"`
	Amount    int64     `json:"amount" bson:"amount"`
	Partner   string    `json:"partner" bson:"partner"`
	OrderID   uuid.UUID `json:"order_id" bson:"order_id"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
