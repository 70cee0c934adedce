package simulations

import (
	"context"
	"errors"

	"offerfit-backend/internal/engine"
	"offerfit-backend/internal/engine/ruleset"
	"offerfit-backend/internal/offer"
	"offerfit-backend/internal/shared/telemetry"
)

// EvaluationRecord contains the evaluation fields needed to simulate a fix.
type EvaluationRecord struct {
	ID             string
	UserID         string
	OfferID        string
	RulesetVersion string
	Config         offer.Configuration
	Result         *engine.Result
}

// EvaluationReader loads evaluation records for simulation.
type EvaluationReader interface {
	GetEvaluationByID(ctx context.Context, evaluationID string) (EvaluationRecord, error)
}

// Service contains business logic for what-if simulations. Simulations
// persist nothing; every call re-derives both sides from the stored
// configuration under the current default rule set.
type Service struct {
	Evals EvaluationReader
}

// Plan lists which of an evaluation's recommendations can be simulated.
func (s *Service) Plan(ctx context.Context, userID, evaluationID string) (Plan, error) {
	record, err := s.load(ctx, userID, evaluationID)
	if err != nil {
		return Plan{}, err
	}
	return BuildPlan(record.Config, record.Result, ruleset.Default()), nil
}

// Simulate runs one fix against the evaluation's configuration and returns
// the before/after comparison.
func (s *Service) Simulate(ctx context.Context, userID, evaluationID string, fixID ruleset.FixID) (Outcome, error) {
	record, err := s.load(ctx, userID, evaluationID)
	if err != nil {
		return Outcome{}, err
	}

	outcome, err := SimulateFix(record.Config, fixID, ruleset.Default())
	if err != nil {
		return Outcome{}, err
	}

	telemetry.Info("simulation.run", map[string]any{
		"evaluation_id":   evaluationID,
		"offer_id":        record.OfferID,
		"user_id":         userID,
		"fix":             string(fixID),
		"alignment_delta": outcome.AlignmentDelta,
	})
	return outcome, nil
}

func (s *Service) load(ctx context.Context, userID, evaluationID string) (EvaluationRecord, error) {
	if userID == "" || evaluationID == "" {
		return EvaluationRecord{}, ErrInvalidInput
	}
	if s.Evals == nil {
		return EvaluationRecord{}, errors.New("missing dependencies")
	}

	record, err := s.Evals.GetEvaluationByID(ctx, evaluationID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return EvaluationRecord{}, ErrNotFound
		}
		return EvaluationRecord{}, err
	}
	if record.UserID != userID {
		return EvaluationRecord{}, ErrNotFound
	}
	if record.Result == nil {
		return EvaluationRecord{}, ErrNotScored
	}
	return record, nil
}
