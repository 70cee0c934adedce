package snapshots

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Snapshot // userID -> snapshots
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Snapshot),
	}
}

// Create stores a new snapshot for a user.
func (r *MemoryRepo) Create(ctx context.Context, snapshot Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[snapshot.UserID] = append(r.data[snapshot.UserID], snapshot)
	return nil
}

// GetByID returns a snapshot by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, snapshotID string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, snapshot := range r.data[userID] {
		if snapshot.ID == snapshotID {
			return snapshot, nil
		}
	}
	return Snapshot{}, ErrNotFound
}

// ListByUser returns snapshots for a user, newest first, honoring limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	userSnapshots := r.data[userID]
	r.mu.RUnlock()

	if len(userSnapshots) == 0 || offset >= len(userSnapshots) {
		return []Snapshot{}, nil
	}

	out := make([]Snapshot, len(userSnapshots))
	copy(out, userSnapshots)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

// DeleteByUser removes every snapshot the user owns.
func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	deleted := len(r.data[userID])
	delete(r.data, userID)
	return deleted, nil
}

var _ Repo = (*MemoryRepo)(nil)

// ClaimGuest moves every snapshot from the guest identity to the
// authenticated user.
func (r *MemoryRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	moved := 0
	for _, snapshot := range r.data[guestUserID] {
		snapshot.UserID = authedUserID
		r.data[authedUserID] = append(r.data[authedUserID], snapshot)
		moved++
	}
	delete(r.data, guestUserID)
	return moved, nil
}
