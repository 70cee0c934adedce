package proofdocs

import "context"

// Repo defines persistence operations for proof documents.
type Repo interface {
	Create(ctx context.Context, doc ProofDocument) error
	GetByID(ctx context.Context, userID, proofDocumentID string) (ProofDocument, error)
	ListByOffer(ctx context.Context, userID, offerID string, limit, offset int) ([]ProofDocument, error)
	DeleteByUser(ctx context.Context, userID string) (int, error)
	ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error)
}
