package shared

import (
	"time"
)

// BatchCommittedEvent defines a Kafka message announcing a completed payment
// confirmation batch. The notification subsystem consumes these to alert
// operators; delivery is best-effort and never blocks the commit itself.
type BatchCommittedEvent struct {
	Partner       string    `json:"partner"`
	Committed     int       `json:"committed"`
	TotalAmount   int64     `json:"total_amount"` // Whole currency units
	BatchTime     time.Time `json:"batch_time"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}
