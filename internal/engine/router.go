package engine

import (
	"fmt"

	"offerfit-backend/internal/engine/ruleset"
)

// candidate is one fix under consideration, tagged with the priority weight
// and explanation fragment of whichever source nominated it first.
type candidate struct {
	fix    ruleset.Fix
	weight float64
	reason string
}

func sourceWeight(bn Bottleneck) float64 {
	switch bn.Source {
	case "gate":
		return 1.0
	case "spread":
		return 0.8
	default:
		return 0.5
	}
}

// routeFixes assembles candidates from the bottleneck dimension and every
// fired cause, first nomination winning, then runs each through the
// stabilization locks. Floor bottlenecks still nominate: the
// refinement-only lock decides what survives there.
func routeFixes(bn Bottleneck, causes []Cause, st *stabilization, rs *ruleset.RuleSet) ([]candidate, []RejectedFix) {
	var ordered []candidate
	seen := map[ruleset.FixID]bool{}
	add := func(id ruleset.FixID, weight float64, reason string) {
		if seen[id] {
			return
		}
		seen[id] = true
		fix, ok := rs.FixByID(id)
		if !ok {
			panic(fmt.Sprintf("engine: fix %q missing from catalog", id))
		}
		ordered = append(ordered, candidate{fix: fix, weight: weight, reason: reason})
	}

	for _, id := range rs.DimensionFixes[bn.Dimension] {
		add(id, sourceWeight(bn), rs.DimensionReasons[bn.Dimension])
	}
	for _, c := range causes {
		for _, id := range c.Fixes {
			add(id, c.Weight, c.Detail)
		}
	}

	var kept []candidate
	var rejected []RejectedFix
	for _, c := range ordered {
		if r := st.reject(c.fix); r != nil {
			rejected = append(rejected, *r)
			continue
		}
		kept = append(kept, c)
	}
	return kept, rejected
}
