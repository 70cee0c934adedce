package engine

import (
	"fmt"
	"sort"

	"offerfit-backend/internal/engine/ruleset"
)

// selectBottleneck names the single most limiting dimension. The first
// tripped hard gate wins outright. Otherwise a dimension qualifies when it
// is both absolutely low and meaningfully below the field median; with no
// qualifier the global minimum is reported as a non-actionable floor.
func selectBottleneck(scores LatentScores, gates GateOutcome, rs *ruleset.RuleSet) Bottleneck {
	if len(gates.Hard) > 0 {
		hit := gates.Hard[0]
		return Bottleneck{
			Dimension:  hit.Dimension,
			Severity:   SeverityBlocking,
			Source:     "gate",
			Percent:    scores.Percent(hit.Dimension),
			Actionable: true,
			Detail:     hit.Detail,
		}
	}

	dims := ruleset.Dimensions()
	pcts := make([]int, len(dims))
	for i, d := range dims {
		pcts[i] = scores.Percent(d)
	}
	sorted := append([]int(nil), pcts...)
	sort.Ints(sorted)
	// Twice the median, so even-count medians stay in integer math.
	median2 := sorted[len(sorted)/2-1] + sorted[len(sorted)/2]

	best := -1
	for i := range dims {
		p := pcts[i]
		if p >= rs.EligibleBelowPct || 2*p > median2-2*rs.MedianGapPct {
			continue
		}
		// Strict less keeps dominance order on ties.
		if best == -1 || p < pcts[best] {
			best = i
		}
	}
	if best >= 0 {
		d := dims[best]
		return Bottleneck{
			Dimension:  d,
			Severity:   SeverityConstraining,
			Source:     "spread",
			Percent:    pcts[best],
			Actionable: true,
			Detail:     fmt.Sprintf("%s sits at %d%%, well under the field median", d, pcts[best]),
		}
	}

	low := 0
	for i := range dims {
		if pcts[i] < pcts[low] {
			low = i
		}
	}
	return Bottleneck{
		Dimension:  dims[low],
		Severity:   SeverityConstraining,
		Source:     "floor",
		Percent:    pcts[low],
		Actionable: false,
		Detail:     fmt.Sprintf("no dimension lags the field; %s is lowest at %d%%", dims[low], pcts[low]),
	}
}
