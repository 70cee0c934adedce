package snapshots

import "context"

// Repo defines persistence operations for snapshots.
type Repo interface {
	Create(ctx context.Context, snapshot Snapshot) error
	GetByID(ctx context.Context, userID, snapshotID string) (Snapshot, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Snapshot, error)
	DeleteByUser(ctx context.Context, userID string) (int, error)
	ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error)
}
