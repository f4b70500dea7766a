package order

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Status defines the lifecycle states of an order. The label only moves
// forward; DONE_PAID is terminal.
type Status string

const (
	StatusInProgress      Status = "IN_PROGRESS"
	StatusCompleted       Status = "COMPLETED"
	StatusCompletedVerify Status = "COMPLETED_VERIFY"
	StatusDonePaid        Status = "DONE_PAID"
)

// codePattern is the partner-visible order code format: PAL followed by
// at least five digits.
var codePattern = regexp.MustCompile(`^PAL\d{5,}$`)

// Order represents a single boosting order as stored in the orders collection
type Order struct {
	ID        uuid.UUID `json:"id" bson:"id"`
	Code      string    `json:"code" bson:"code"`
	Price     int64     `json:"price" bson:"price"` // Whole currency units
	Status    Status    `json:"status" bson:"status"`
	Partner   string    `json:"partner" bson:"partner"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Eligible reports whether the order is in a completed-family state and may
// participate in payment reconciliation.
func (o *Order) Eligible() bool {
	switch o.Status {
	case StatusCompleted, StatusCompletedVerify, StatusDonePaid:
		return true
	}
	return false
}

// Settled reports whether the order has already been paid out. Settled orders
// are terminal and must never reappear as actionable.
func (o *Order) Settled() bool {
	return o.Status == StatusDonePaid
}

// ValidCode reports whether code matches the order code format. Codes are
// expected to be uppercased by the caller.
func ValidCode(code string) bool {
	return codePattern.MatchString(code)
}
