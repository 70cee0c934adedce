package simulations

import (
	"offerfit-backend/internal/engine"
	"offerfit-backend/internal/engine/ruleset"
	"offerfit-backend/internal/offer"
)

// Candidate is one recommended fix the simulator can express as a
// configuration change, with the exact fields it would rewrite.
type Candidate struct {
	Fix      ruleset.FixID       `json:"fix"`
	Category ruleset.FixCategory `json:"category"`
	Headline string              `json:"headline"`
	Changes  []Change            `json:"changes"`
}

// SkippedFix is a recommended fix the simulator cannot model, with the
// reason it was skipped.
type SkippedFix struct {
	Fix    ruleset.FixID `json:"fix"`
	Reason string        `json:"reason"`
}

// Plan partitions an evaluation's recommendations into fixes that can be
// simulated and fixes whose effect cannot be projected from configuration
// alone.
type Plan struct {
	Simulatable []Candidate  `json:"simulatable"`
	Skipped     []SkippedFix `json:"skipped,omitempty"`
}

// BuildPlan derives a simulation plan from a scored result, preserving the
// recommendation order.
func BuildPlan(cfg offer.Configuration, result *engine.Result, rs *ruleset.RuleSet) Plan {
	if rs == nil {
		rs = ruleset.Default()
	}

	plan := Plan{Simulatable: make([]Candidate, 0, len(result.Recommendations))}
	for _, rec := range result.Recommendations {
		_, changes, err := ApplyFix(cfg, rec.Fix, rs)
		if err != nil {
			plan.Skipped = append(plan.Skipped, SkippedFix{Fix: rec.Fix, Reason: err.Error()})
			continue
		}
		plan.Simulatable = append(plan.Simulatable, Candidate{
			Fix:      rec.Fix,
			Category: rec.Category,
			Headline: rec.Headline,
			Changes:  changes,
		})
	}
	return plan
}
