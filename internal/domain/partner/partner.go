package partner

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrEmptyUsername = errors.New("partner username cannot be empty")
	ErrEmptyName     = errors.New("partner display name cannot be empty")
)

// Partner identifies an outsourced-labor partner on the roster. Username is
// the identifier stamped onto orders and payment confirmations.
type Partner struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPartner creates a roster entry with the given identifiers
func NewPartner(username, name string) (*Partner, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if name == "" {
		return nil, ErrEmptyName
	}

	return &Partner{
		ID:        uuid.New(),
		Username:  username,
		Name:      name,
		CreatedAt: time.Now(),
	}, nil
}
