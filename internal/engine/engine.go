// Package engine turns a complete offer configuration into an outbound
// readiness verdict: dimension scores, gates, the limiting bottleneck,
// detected causes, and a short ranked list of recommendations. Evaluation
// is a pure function of the configuration and the rule set; the same input
// always produces the same result, and nothing here touches storage, the
// network, or the clock.
package engine

import (
	"fmt"

	"offerfit-backend/internal/engine/ruleset"
	"offerfit-backend/internal/offer"
)

// Evaluate scores one configuration under the given rule set, using the
// rule set's default recommendation count. A nil rule set means the
// authoritative default.
func Evaluate(cfg offer.Configuration, rs *ruleset.RuleSet) (*Result, error) {
	return EvaluateTopK(cfg, rs, 0)
}

// EvaluateTopK is Evaluate with an explicit recommendation count. Values
// at or below zero fall back to the rule set default; values above the
// maximum are clamped.
func EvaluateTopK(cfg offer.Configuration, rs *ruleset.RuleSet, topK int) (*Result, error) {
	if rs == nil {
		rs = ruleset.Default()
	}
	if topK <= 0 {
		topK = rs.TopKDefault
	}
	if topK > rs.TopKMax {
		topK = rs.TopKMax
	}

	if missing := cfg.MissingFields(); len(missing) > 0 {
		return nil, &offer.IncompleteError{Missing: missing}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid offer configuration: %w", err)
	}

	trace := []TraceEvent{{Stage: "validate", Fields: map[string]any{
		"ruleset_version": rs.Version,
		"top_k":           topK,
	}}}

	scores := scoreLatent(cfg, rs)
	scoreFields := make(map[string]any, len(scores))
	for _, d := range ruleset.Dimensions() {
		scoreFields[string(d)] = scores[d]
	}
	trace = append(trace, TraceEvent{Stage: "latent_scores", Fields: scoreFields})

	gates := applyGates(cfg, scores, rs)
	trace = append(trace, TraceEvent{Stage: "gates", Fields: map[string]any{
		"ready":    gates.Ready,
		"hard":     gateIDs(gates.Hard),
		"soft":     softGateIDs(gates.Soft),
		"pressure": gates.Pressure,
		"cap":      gates.Cap,
		"cap_rule": gates.CapRule,
	}})

	alignment, label := aggregate(scores, gates, rs)
	trace = append(trace, TraceEvent{Stage: "aggregate", Fields: map[string]any{
		"sum":       scores.Sum(),
		"alignment": alignment,
		"readiness": string(label),
	}})

	bn := selectBottleneck(scores, gates, rs)
	trace = append(trace, TraceEvent{Stage: "bottleneck", Fields: map[string]any{
		"dimension":  string(bn.Dimension),
		"source":     bn.Source,
		"severity":   string(bn.Severity),
		"actionable": bn.Actionable,
	}})

	checks := scoreChecks(cfg, rs)
	violations := detectViolations(checks, rs)
	trace = append(trace, TraceEvent{Stage: "violations", Fields: map[string]any{
		"flagged": violationIDs(violations),
	}})

	causes := detectCauses(cfg, violations, rs)
	trace = append(trace, TraceEvent{Stage: "causes", Fields: map[string]any{
		"fired": causeIDs(causes),
	}})

	st := newStabilization(cfg, scores, gates, bn, rs)
	trace = append(trace, TraceEvent{Stage: "stabilize", Fields: map[string]any{
		"band_relation":   st.bandRelation,
		"structure_lock":  st.structureLocked,
		"advisory":        st.advisory,
		"local_optimum":   st.localOptimum,
		"refinement_only": st.refinementOnly,
	}})

	cands, rejected := routeFixes(bn, causes, st, rs)
	trace = append(trace, TraceEvent{Stage: "route", Fields: map[string]any{
		"candidates": len(cands),
		"rejected":   len(rejected),
	}})

	recs, dups := prioritize(cands, topK, rs)
	rejected = append(rejected, dups...)
	trace = append(trace, TraceEvent{Stage: "prioritize", Fields: map[string]any{
		"selected": recommendationIDs(recs),
	}})

	return &Result{
		RulesetVersion:  rs.Version,
		Scores:          scores,
		Gates:           gates,
		Alignment:       alignment,
		Readiness:       label,
		Bottleneck:      bn,
		Violations:      violations,
		Causes:          causes,
		CashFlow:        cashFlowLevel(cfg),
		Recommendations: recs,
		Rejected:        rejected,
		Trace:           trace,
	}, nil
}

func gateIDs(hits []HardGateHit) []string {
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = string(h.ID)
	}
	return out
}

func softGateIDs(hits []SoftGateHit) []string {
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = string(h.ID)
	}
	return out
}

func violationIDs(vs []Violation) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v.ID)
	}
	return out
}

func causeIDs(cs []Cause) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c.ID)
	}
	return out
}

func recommendationIDs(rs []Recommendation) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r.Fix)
	}
	return out
}
