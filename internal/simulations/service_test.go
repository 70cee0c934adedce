package simulations

import (
	"context"
	"errors"
	"testing"

	"offerfit-backend/internal/engine"
	"offerfit-backend/internal/engine/ruleset"
	"offerfit-backend/internal/offer"
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

func scoredRecord(t *testing.T, userID string, cfg offer.Configuration) EvaluationRecord {
	t.Helper()
	result, err := engine.Evaluate(cfg, nil)
	if err != nil {
		t.Fatalf("evaluate fixture: %v", err)
	}
	return EvaluationRecord{
		ID:             "eval-1",
		UserID:         userID,
		OfferID:        "offer-1",
		RulesetVersion: result.RulesetVersion,
		Config:         cfg,
		Result:         result,
	}
}

func TestServicePlanPartitionsRecommendations(t *testing.T) {
	svc := &Service{Evals: &stubReader{record: scoredRecord(t, "user-1", gatedConfig())}}

	plan, err := svc.Plan(context.Background(), "user-1", "eval-1")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(plan.Simulatable) != 1 || plan.Simulatable[0].Fix != ruleset.FixCollectOutcomeEvidence {
		t.Fatalf("simulatable = %+v, want collect_outcome_evidence", plan.Simulatable)
	}
	if len(plan.Skipped) != 2 {
		t.Fatalf("skipped = %+v, want scale_promise_to_proof and deepen_automation", plan.Skipped)
	}
}

func TestServiceSimulateRunsFix(t *testing.T) {
	svc := &Service{Evals: &stubReader{record: scoredRecord(t, "user-1", gatedConfig())}}

	out, err := svc.Simulate(context.Background(), "user-1", "eval-1", ruleset.FixCollectOutcomeEvidence)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if out.AlignmentDelta != 5 {
		t.Fatalf("alignment delta = %d, want 5", out.AlignmentDelta)
	}
	if len(out.ResolvedGates) != 1 || out.ResolvedGates[0] != ruleset.GateProofGap {
		t.Fatalf("resolved gates = %v, want [proof_gap]", out.ResolvedGates)
	}
}

func TestServiceSimulatePassesFixErrorsThrough(t *testing.T) {
	svc := &Service{Evals: &stubReader{record: scoredRecord(t, "user-1", moderateConfig())}}

	if _, err := svc.Simulate(context.Background(), "user-1", "eval-1", "paint_it_blue"); !errors.Is(err, ErrFixUnknown) {
		t.Errorf("unknown fix error = %v", err)
	}
	if _, err := svc.Simulate(context.Background(), "user-1", "eval-1", ruleset.FixAnchorPriceToOutcome); !errors.Is(err, ErrFixNotSimulatable) {
		t.Errorf("execution fix error = %v", err)
	}
}

func TestServiceHidesForeignEvaluations(t *testing.T) {
	svc := &Service{Evals: &stubReader{record: scoredRecord(t, "user-2", gatedConfig())}}

	if _, err := svc.Plan(context.Background(), "user-1", "eval-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Plan error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Simulate(context.Background(), "user-1", "eval-1", ruleset.FixCollectOutcomeEvidence); !errors.Is(err, ErrNotFound) {
		t.Errorf("Simulate error = %v, want ErrNotFound", err)
	}
}

func TestServiceUnknownEvaluation(t *testing.T) {
	svc := &Service{Evals: &stubReader{record: scoredRecord(t, "user-1", gatedConfig())}}

	if _, err := svc.Plan(context.Background(), "user-1", "eval-9"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Plan error = %v, want ErrNotFound", err)
	}
}

func TestServiceRequiresScoredResult(t *testing.T) {
	record := scoredRecord(t, "user-1", gatedConfig())
	record.Result = nil
	svc := &Service{Evals: &stubReader{record: record}}

	if _, err := svc.Plan(context.Background(), "user-1", "eval-1"); !errors.Is(err, ErrNotScored) {
		t.Errorf("Plan error = %v, want ErrNotScored", err)
	}
	if _, err := svc.Simulate(context.Background(), "user-1", "eval-1", ruleset.FixCollectOutcomeEvidence); !errors.Is(err, ErrNotScored) {
		t.Errorf("Simulate error = %v, want ErrNotScored", err)
	}
}

func TestServiceValidatesInput(t *testing.T) {
	svc := &Service{Evals: &stubReader{record: scoredRecord(t, "user-1", gatedConfig())}}

	if _, err := svc.Plan(context.Background(), "", "eval-1"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty user error = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Plan(context.Background(), "user-1", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty evaluation error = %v, want ErrInvalidInput", err)
	}

	bare := &Service{}
	if _, err := bare.Plan(context.Background(), "user-1", "eval-1"); err == nil {
		t.Error("expected error without reader dependency")
	}
}
