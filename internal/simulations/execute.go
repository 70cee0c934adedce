package simulations

import (
	"fmt"

	"offerfit-backend/internal/engine"
	"offerfit-backend/internal/engine/ruleset"
	"offerfit-backend/internal/offer"
)

// Summary condenses one evaluation for before/after comparison.
type Summary struct {
	Alignment       int                 `json:"alignment"`
	Readiness       engine.Label        `json:"readiness"`
	Ready           bool                `json:"ready"`
	Cap             int                 `json:"cap"`
	Scores          engine.LatentScores `json:"scores"`
	Bottleneck      ruleset.Dimension   `json:"bottleneck"`
	Recommendations int                 `json:"recommendations"`
}

// DimensionDelta is one dimension's score movement, in raw 0..20 points.
type DimensionDelta struct {
	Dimension ruleset.Dimension `json:"dimension"`
	Before    int               `json:"before"`
	After     int               `json:"after"`
	Delta     int               `json:"delta"`
}

// Outcome is the full before/after comparison for one simulated fix. Both
// sides are evaluated under the same rule-set version so the deltas are
// attributable to the configuration change alone.
type Outcome struct {
	Fix             ruleset.FixID    `json:"fix"`
	RulesetVersion  string           `json:"ruleset_version"`
	Changes         []Change         `json:"changes"`
	Before          Summary          `json:"before"`
	After           Summary          `json:"after"`
	Deltas          []DimensionDelta `json:"deltas"`
	AlignmentDelta  int              `json:"alignment_delta"`
	ReadinessMoved  bool             `json:"readiness_moved"`
	ResolvedGates   []ruleset.GateID `json:"resolved_gates,omitempty"`
	IntroducedGates []ruleset.GateID `json:"introduced_gates,omitempty"`
}

// SimulateFix applies one fix to a copy of the configuration and evaluates
// both versions. A nil rule-set selects the default.
func SimulateFix(cfg offer.Configuration, id ruleset.FixID, rs *ruleset.RuleSet) (Outcome, error) {
	if rs == nil {
		rs = ruleset.Default()
	}

	mutated, changes, err := ApplyFix(cfg, id, rs)
	if err != nil {
		return Outcome{}, err
	}

	before, err := engine.Evaluate(cfg, rs)
	if err != nil {
		return Outcome{}, err
	}
	after, err := engine.Evaluate(mutated, rs)
	if err != nil {
		return Outcome{}, fmt.Errorf("evaluate mutated configuration: %w", err)
	}

	deltas := make([]DimensionDelta, 0, len(ruleset.Dimensions()))
	for _, d := range ruleset.Dimensions() {
		deltas = append(deltas, DimensionDelta{
			Dimension: d,
			Before:    before.Scores[d],
			After:     after.Scores[d],
			Delta:     after.Scores[d] - before.Scores[d],
		})
	}

	return Outcome{
		Fix:             id,
		RulesetVersion:  rs.Version,
		Changes:         changes,
		Before:          summarize(before),
		After:           summarize(after),
		Deltas:          deltas,
		AlignmentDelta:  after.Alignment - before.Alignment,
		ReadinessMoved:  after.Readiness != before.Readiness,
		ResolvedGates:   gateDiff(before.Gates.Hard, after.Gates.Hard),
		IntroducedGates: gateDiff(after.Gates.Hard, before.Gates.Hard),
	}, nil
}

func summarize(res *engine.Result) Summary {
	return Summary{
		Alignment:       res.Alignment,
		Readiness:       res.Readiness,
		Ready:           res.Gates.Ready,
		Cap:             res.Gates.Cap,
		Scores:          res.Scores,
		Bottleneck:      res.Bottleneck.Dimension,
		Recommendations: len(res.Recommendations),
	}
}

// gateDiff returns the gate ids present in a but absent from b.
func gateDiff(a, b []engine.HardGateHit) []ruleset.GateID {
	var out []ruleset.GateID
	for _, ga := range a {
		found := false
		for _, gb := range b {
			if ga.ID == gb.ID {
				found = true
				break
			}
		}
		if !found {
			out = append(out, ga.ID)
		}
	}
	return out
}
