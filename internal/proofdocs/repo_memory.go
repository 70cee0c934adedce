package proofdocs

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory proof document repository used when no
// database is configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]ProofDocument
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]ProofDocument)}
}

var _ Repo = (*MemoryRepo)(nil)

// Create stores a proof document for the user.
func (r *MemoryRepo) Create(ctx context.Context, doc ProofDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[doc.UserID] = append(r.data[doc.UserID], doc)
	return nil
}

// GetByID fetches a proof document owned by the user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, proofDocumentID string) (ProofDocument, error) {
	if err := ctx.Err(); err != nil {
		return ProofDocument{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, doc := range r.data[userID] {
		if doc.ID == proofDocumentID && doc.DeletedAt == nil {
			return doc, nil
		}
	}
	return ProofDocument{}, ErrNotFound
}

// ListByOffer returns proof documents for one offer, newest first.
func (r *MemoryRepo) ListByOffer(ctx context.Context, userID, offerID string, limit, offset int) ([]ProofDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]ProofDocument, 0)
	for _, doc := range r.data[userID] {
		if doc.OfferID == offerID && doc.DeletedAt == nil {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	if offset >= len(docs) {
		return []ProofDocument{}, nil
	}
	docs = docs[offset:]
	if len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// DeleteByUser removes all proof documents owned by the user and
// reports how many were removed.
func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, doc := range r.data[userID] {
		if doc.DeletedAt == nil {
			count++
		}
	}
	delete(r.data, userID)
	return count, nil
}

// ClaimGuest moves every proof document from the guest identity to the
// authenticated user, counting only live rows.
func (r *MemoryRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	moved := 0
	for _, doc := range r.data[guestUserID] {
		doc.UserID = authedUserID
		r.data[authedUserID] = append(r.data[authedUserID], doc)
		if doc.DeletedAt == nil {
			moved++
		}
	}
	delete(r.data, guestUserID)
	return moved, nil
}
