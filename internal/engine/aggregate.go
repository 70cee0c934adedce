package engine

import "offerfit-backend/internal/engine/ruleset"

// aggregate folds the dimension scores, pressure, and cap into the 0..100
// alignment score and its readiness label. A gated configuration is weak
// regardless of its numeric score.
func aggregate(scores LatentScores, gates GateOutcome, rs *ruleset.RuleSet) (int, Label) {
	sum := scores.Sum()
	// Percentage of MaxPoints, rounded half up in integer math.
	alignment := (sum*100*2 + rs.MaxPoints) / (2 * rs.MaxPoints)
	alignment -= gates.Pressure
	if alignment < 0 {
		alignment = 0
	}
	if alignment > 100 {
		alignment = 100
	}
	if alignment > gates.Cap {
		alignment = gates.Cap
	}

	switch {
	case !gates.Ready:
		return alignment, LabelWeak
	case alignment >= rs.StrongAt:
		return alignment, LabelStrong
	case alignment >= rs.ModerateAt:
		return alignment, LabelModerate
	default:
		return alignment, LabelWeak
	}
}
