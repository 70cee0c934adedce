package offers

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Offer // userID -> offers
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Offer),
	}
}

// Create stores a new offer for a user.
func (r *MemoryRepo) Create(ctx context.Context, o Offer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[o.UserID] = append(r.data[o.UserID], o)
	return nil
}

// GetByID returns an offer by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, offerID string) (Offer, error) {
	if err := ctx.Err(); err != nil {
		return Offer{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.data[userID] {
		if o.ID == offerID {
			return o, nil
		}
	}
	return Offer{}, ErrNotFound
}

// ListByUser returns offers for a user, newest first, honoring limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Offer, error) {
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
	userOffers := r.data[userID]
	r.mu.RUnlock()

	if len(userOffers) == 0 || offset >= len(userOffers) {
		return []Offer{}, nil
	}

	out := make([]Offer, len(userOffers))
	copy(out, userOffers)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

// Update replaces a stored offer.
func (r *MemoryRepo) Update(ctx context.Context, o Offer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	userOffers := r.data[o.UserID]
	for i := range userOffers {
		if userOffers[i].ID == o.ID {
			userOffers[i] = o
			r.data[o.UserID] = userOffers
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes an offer.
func (r *MemoryRepo) Delete(ctx context.Context, userID, offerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	userOffers := r.data[userID]
	for i := range userOffers {
		if userOffers[i].ID == offerID {
			r.data[userID] = append(userOffers[:i], userOffers[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// DeleteByUser removes every offer the user owns.
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

// ClaimGuest moves every offer from the guest identity to the
// authenticated user.
func (r *MemoryRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	moved := 0
	for _, o := range r.data[guestUserID] {
		o.UserID = authedUserID
		r.data[authedUserID] = append(r.data[authedUserID], o)
		moved++
	}
	delete(r.data, guestUserID)
	return moved, nil
}
