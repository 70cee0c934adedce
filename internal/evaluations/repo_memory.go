package evaluations

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores evaluations in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]Evaluation
	byUser map[string][]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]Evaluation),
		byUser: make(map[string][]string),
	}
}

// Create stores the evaluation.
func (r *MemoryRepo) Create(ctx context.Context, ev Evaluation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[ev.ID] = ev
	r.byUser[ev.UserID] = append(r.byUser[ev.UserID], ev.ID)
	return nil
}

// GetByID returns an evaluation by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, evaluationID string) (Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return Evaluation{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ev, ok := r.byID[evaluationID]
	if !ok {
		return Evaluation{}, ErrNotFound
	}
	return ev, nil
}

// ListByUser returns evaluations for a user, newest first, with limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Evaluation, error) {
	return r.listFiltered(ctx, userID, "", limit, offset)
}

// ListByOffer returns evaluations of one offer, newest first, with limit/offset.
func (r *MemoryRepo) ListByOffer(ctx context.Context, userID, offerID string, limit, offset int) ([]Evaluation, error) {
	return r.listFiltered(ctx, userID, offerID, limit, offset)
}

func (r *MemoryRepo) listFiltered(ctx context.Context, userID, offerID string, limit, offset int) ([]Evaluation, error) {
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
	ids := r.byUser[userID]
	evs := make([]Evaluation, 0, len(ids))
	for _, id := range ids {
		ev, ok := r.byID[id]
		if !ok {
			continue
		}
		if offerID != "" && ev.OfferID != offerID {
			continue
		}
		evs = append(evs, ev)
	}
	r.mu.RUnlock()

	sort.Slice(evs, func(i, j int) bool {
		return evs[i].CreatedAt.After(evs[j].CreatedAt)
	})

	if offset >= len(evs) {
		return []Evaluation{}, nil
	}
	end := len(evs)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return evs[offset:end], nil
}

// UpdatePhrasing applies a phrasing-pass update to a stored evaluation.
func (r *MemoryRepo) UpdatePhrasing(ctx context.Context, update PhrasingUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.byID[update.ID]
	if !ok {
		return ErrNotFound
	}
	ev.Status = update.Status
	if update.Phrased != nil {
		ev.Phrased = update.Phrased
	}
	if update.PromptHash != nil {
		ev.PromptHash = *update.PromptHash
	}
	if update.ErrorCode != nil {
		ev.ErrorCode = *update.ErrorCode
	}
	if update.ErrorMessage != nil {
		if *update.ErrorMessage == "" {
			ev.ErrorMessage = nil
		} else {
			msg := *update.ErrorMessage
			ev.ErrorMessage = &msg
		}
	}
	if update.ErrorRetryable != nil {
		ev.ErrorRetryable = *update.ErrorRetryable
	}
	if update.PhrasedAt != nil {
		ev.PhrasedAt = update.PhrasedAt
	}
	ev.UpdatedAt = time.Now().UTC()
	r.byID[update.ID] = ev
	return nil
}

// DeleteByUser removes every evaluation owned by a user.
func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := r.byUser[userID]
	n := 0
	for _, id := range ids {
		if _, ok := r.byID[id]; ok {
			delete(r.byID, id)
			n++
		}
	}
	delete(r.byUser, userID)
	return n, nil
}

var _ Repo = (*MemoryRepo)(nil)

// ClaimGuest moves every evaluation from the guest identity to the
// authenticated user.
func (r *MemoryRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	moved := 0
	for _, id := range r.byUser[guestUserID] {
		ev, ok := r.byID[id]
		if !ok {
			continue
		}
		ev.UserID = authedUserID
		ev.UpdatedAt = time.Now().UTC()
		r.byID[id] = ev
		r.byUser[authedUserID] = append(r.byUser[authedUserID], id)
		moved++
	}
	delete(r.byUser, guestUserID)
	return moved, nil
}
