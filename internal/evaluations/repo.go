package evaluations

import "context"

// Repo defines persistence operations for evaluations.
type Repo interface {
	Create(ctx context.Context, ev Evaluation) error
	GetByID(ctx context.Context, evaluationID string) (Evaluation, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Evaluation, error)
	ListByOffer(ctx context.Context, userID, offerID string, limit, offset int) ([]Evaluation, error)
	UpdatePhrasing(ctx context.Context, update PhrasingUpdate) error
	DeleteByUser(ctx context.Context, userID string) (int, error)
	ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error)
}
