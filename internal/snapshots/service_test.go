package snapshots

import (
	"context"
	"errors"
	"io"
	"testing"

	"offerfit-backend/internal/engine"
	localstore "offerfit-backend/internal/shared/storage/object/local"
)

type stubReader struct {
	record EvaluationRecord
	err    error
}

func (s *stubReader) GetEvaluationByID(ctx context.Context, evaluationID string) (EvaluationRecord, error) {
	if s.err != nil {
		return EvaluationRecord{}, s.err
	}
	if s.record.ID != evaluationID {
		return EvaluationRecord{}, ErrNotFound
	}
	return s.record, nil
}

func evaluatedRecord(t *testing.T, userID string) EvaluationRecord {
	t.Helper()
	result, err := engine.Evaluate(completeConfig(), nil)
	if err != nil {
		t.Fatalf("evaluate fixture: %v", err)
	}
	return EvaluationRecord{
		ID:             "eval-1",
		UserID:         userID,
		OfferID:        "offer-1",
		RulesetVersion: result.RulesetVersion,
		Config:         completeConfig(),
		Result:         result,
	}
}

func TestCaptureStoresDocument(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{
		Repo:  repo,
		Evals: &stubReader{record: evaluatedRecord(t, "user-1")},
	}

	snapshot, err := svc.Capture(context.Background(), "user-1", "eval-1")
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if snapshot.ID == "" {
		t.Fatalf("expected snapshot id")
	}
	if snapshot.EvaluationID != "eval-1" || snapshot.OfferID != "offer-1" {
		t.Fatalf("expected lineage fields, got %+v", snapshot)
	}
	if snapshot.StorageKey != "" {
		t.Fatalf("expected no archive without store, got %q", snapshot.StorageKey)
	}
	if snapshot.SizeBytes != int64(len(snapshot.Document)) {
		t.Fatalf("expected size to match document length")
	}

	doc, err := DecodeDocument(snapshot.Document)
	if err != nil {
		t.Fatalf("decode stored document: %v", err)
	}
	if doc.SnapshotID != snapshot.ID {
		t.Fatalf("expected document to carry snapshot id")
	}
	if doc.Result.RulesetVersion != snapshot.RulesetVersion {
		t.Fatalf("expected ruleset version to match, got %q", doc.Result.RulesetVersion)
	}

	stored, err := repo.GetByID(context.Background(), "user-1", snapshot.ID)
	if err != nil {
		t.Fatalf("get stored snapshot: %v", err)
	}
	if stored.EvaluationID != "eval-1" {
		t.Fatalf("expected stored row, got %+v", stored)
	}
}

func TestCaptureArchivesToObjectStore(t *testing.T) {
	store := localstore.New(t.TempDir())
	svc := &Service{
		Repo:  NewMemoryRepo(),
		Evals: &stubReader{record: evaluatedRecord(t, "user-1")},
		Store: store,
	}

	snapshot, err := svc.Capture(context.Background(), "user-1", "eval-1")
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if snapshot.StorageKey == "" {
		t.Fatalf("expected storage key with store configured")
	}

	reader, err := store.Open(context.Background(), snapshot.StorageKey)
	if err != nil {
		t.Fatalf("open archived document: %v", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read archived document: %v", err)
	}
	doc, err := DecodeDocument(raw)
	if err != nil {
		t.Fatalf("decode archived document: %v", err)
	}
	if doc.SnapshotID != snapshot.ID {
		t.Fatalf("expected archived document to match snapshot")
	}
}

func TestCaptureHidesForeignEvaluations(t *testing.T) {
	svc := &Service{
		Repo:  NewMemoryRepo(),
		Evals: &stubReader{record: evaluatedRecord(t, "someone-else")},
	}

	if _, err := svc.Capture(context.Background(), "user-1", "eval-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCaptureRequiresResult(t *testing.T) {
	record := evaluatedRecord(t, "user-1")
	record.Result = nil
	svc := &Service{
		Repo:  NewMemoryRepo(),
		Evals: &stubReader{record: record},
	}

	if _, err := svc.Capture(context.Background(), "user-1", "eval-1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCaptureUnknownEvaluation(t *testing.T) {
	svc := &Service{
		Repo:  NewMemoryRepo(),
		Evals: &stubReader{err: ErrNotFound},
	}

	if _, err := svc.Capture(context.Background(), "user-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
