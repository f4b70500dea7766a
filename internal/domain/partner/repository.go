package partner

import (
	"context"
)

// Repository provides read access to the partner roster
type Repository interface {
	List(ctx context.Context) ([]*Partner, error)
	GetByUsername(ctx context.Context, username string) (*Partner, error)
}

// ErrPartnerNotFound indicates a missing roster entry
type ErrPartnerNotFound struct {
	Username string
}

func (e ErrPartnerNotFound) Error() string {
	return "partner not found: " + e.Username
}

// Is implements the errors.Is interface for ErrPartnerNotFound
func (e ErrPartnerNotFound) Is(target error) bool {
	t, ok := target.(ErrPartnerNotFound)
	if !ok {
		return false
	}
	if t.Username == "" {
		return true
	}
	return e.Username == t.Username
}
