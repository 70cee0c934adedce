package offers

import "context"

// Repo defines persistence operations for offers.
type Repo interface {
	Create(ctx context.Context, o Offer) error
	GetByID(ctx context.Context, userID, offerID string) (Offer, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Offer, error)
	Update(ctx context.Context, o Offer) error
	Delete(ctx context.Context, userID, offerID string) error
	DeleteByUser(ctx context.Context, userID string) (int, error)
	ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error)
}
