package snapshots

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"offerfit-backend/internal/engine"
	"offerfit-backend/internal/offer"
	"offerfit-backend/internal/shared/storage/object"
	"offerfit-backend/internal/shared/telemetry"
)

// EvaluationRecord contains the evaluation fields needed to capture a snapshot.
type EvaluationRecord struct {
	ID             string
	UserID         string
	OfferID        string
	RulesetVersion string
	Config         offer.Configuration
	Result         *engine.Result
}

// EvaluationReader loads evaluation records for snapshot capture.
type EvaluationReader interface {
	GetEvaluationByID(ctx context.Context, evaluationID string) (EvaluationRecord, error)
}

// Service contains business logic for snapshots.
type Service struct {
	Repo  Repo
	Evals EvaluationReader
	Store object.ObjectStore // optional JSON archive alongside the DB row
}

// Capture freezes an evaluation into a versioned snapshot document and
// stores it. The document embeds the offer configuration and the full
// deterministic result, so it stays readable after rule-set changes.
func (s *Service) Capture(ctx context.Context, userID, evaluationID string) (Snapshot, error) {
	if userID == "" || evaluationID == "" {
		return Snapshot{}, ErrInvalidInput
	}
	if s.Repo == nil || s.Evals == nil {
		return Snapshot{}, errors.New("missing dependencies")
	}

	record, err := s.Evals.GetEvaluationByID(ctx, evaluationID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, err
	}
	if record.UserID != userID {
		return Snapshot{}, ErrNotFound
	}
	if record.Result == nil {
		return Snapshot{}, ErrInvalidInput
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	payload, err := EncodeDocument(Document{
		SchemaVersion: SchemaVersion,
		SnapshotID:    id,
		UserID:        userID,
		CapturedAt:    now,
		Offer:         record.Config,
		Result:        *record.Result,
	})
	if err != nil {
		return Snapshot{}, err
	}

	var storageKey string
	if s.Store != nil {
		key, _, _, err := s.Store.Save(ctx, userID, "snapshot_"+id+".json", bytes.NewReader(payload))
		if err != nil {
			return Snapshot{}, err
		}
		storageKey = key
	}

	snapshot := Snapshot{
		ID:             id,
		UserID:         userID,
		OfferID:        record.OfferID,
		EvaluationID:   record.ID,
		RulesetVersion: record.Result.RulesetVersion,
		Document:       payload,
		StorageKey:     storageKey,
		SizeBytes:      int64(len(payload)),
		CreatedAt:      now,
	}
	if err := s.Repo.Create(ctx, snapshot); err != nil {
		return Snapshot{}, err
	}

	telemetry.Info("snapshot.captured", map[string]any{
		"snapshot_id":   snapshot.ID,
		"evaluation_id": snapshot.EvaluationID,
		"offer_id":      snapshot.OfferID,
		"user_id":       userID,
		"size_bytes":    snapshot.SizeBytes,
		"archived":      storageKey != "",
	})
	return snapshot, nil
}

// Get returns a snapshot by ID for a user.
func (s *Service) Get(ctx context.Context, userID, snapshotID string) (Snapshot, error) {
	if userID == "" || snapshotID == "" {
		return Snapshot{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, snapshotID)
}

// List returns snapshots for a user ordered newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Snapshot, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}
