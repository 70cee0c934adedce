package offers

import (
	"time"

	"offerfit-backend/internal/offer"
)

// Offer is a stored offer configuration owned by a user. Config may be
// partial; completeness is checked at evaluation time, not at save time.
type Offer struct {
	ID        string
	UserID    string
	Name      string
	Config    offer.Configuration
	CreatedAt time.Time
	UpdatedAt time.Time
}
