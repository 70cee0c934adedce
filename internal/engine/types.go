package engine

import "offerfit-backend/internal/engine/ruleset"

// Label is the readiness verdict shown to users.
type Label string

const (
	LabelWeak     Label = "weak"
	LabelModerate Label = "moderate"
	LabelStrong   Label = "strong"
)

// Severity grades a bottleneck.
type Severity string

const (
	SeverityBlocking     Severity = "blocking"
	SeverityConstraining Severity = "constraining"
)

// ViolationSeverity grades a single violated check.
type ViolationSeverity string

const (
	ViolationHigh   ViolationSeverity = "high"
	ViolationMedium ViolationSeverity = "medium"
	ViolationLow    ViolationSeverity = "low"
)

// LatentScores holds the six dimension scores, each in 0..20. Iterate via
// ruleset.Dimensions for a stable order.
type LatentScores map[ruleset.Dimension]int

// Percent converts one dimension score to its 0..100 percentage.
func (s LatentScores) Percent(d ruleset.Dimension) int { return s[d] * 5 }

// Sum totals all dimensions.
func (s LatentScores) Sum() int {
	total := 0
	for _, d := range ruleset.Dimensions() {
		total += s[d]
	}
	return total
}

// HardGateHit records one tripped hard gate.
type HardGateHit struct {
	ID        ruleset.GateID    `json:"id"`
	Dimension ruleset.Dimension `json:"dimension"`
	Score     int               `json:"score"`
	Threshold int               `json:"threshold,omitempty"`
	Detail    string            `json:"detail"`
}

// SoftGateHit records one tripped soft gate and its pressure deduction.
type SoftGateHit struct {
	ID       ruleset.SoftGateID `json:"id"`
	Pressure int                `json:"pressure"`
	Detail   string             `json:"detail"`
}

// GateOutcome is the combined verdict of all viability gates. Cap is 100
// when no cap rule matched.
type GateOutcome struct {
	Ready    bool          `json:"ready"`
	Hard     []HardGateHit `json:"hard,omitempty"`
	Soft     []SoftGateHit `json:"soft,omitempty"`
	Pressure int           `json:"pressure"`
	Cap      int           `json:"cap"`
	CapRule  string        `json:"cap_rule,omitempty"`
}

// Bottleneck names the single dimension most limiting readiness. Source is
// "gate" when a hard gate chose it, "spread" when percentile eligibility
// did, and "floor" when no dimension met eligibility and the global minimum
// was reported instead. Floor bottlenecks are not actionable.
type Bottleneck struct {
	Dimension  ruleset.Dimension `json:"dimension"`
	Severity   Severity          `json:"severity"`
	Source     string            `json:"source"`
	Percent    int               `json:"percent"`
	Actionable bool              `json:"actionable"`
	Detail     string            `json:"detail"`
}

// Violation is one raw-input check that fell below its floor.
type Violation struct {
	ID       ruleset.ViolationID `json:"id"`
	Score    int                 `json:"score"`
	Floor    int                 `json:"floor"`
	Severity ViolationSeverity   `json:"severity"`
	Category ruleset.FixCategory `json:"category"`
	Detail   string              `json:"detail"`
}

// Cause is a diagnosed root cause with the fixes it prescribes. Fixes here
// are pre-stabilization; the router decides what survives.
type Cause struct {
	ID     ruleset.CauseID `json:"id"`
	Weight float64         `json:"weight"`
	Fixes  []ruleset.FixID `json:"fixes"`
	Detail string          `json:"detail"`
}

// RejectReason enumerates why the stabilization layer dropped a candidate.
type RejectReason string

const (
	RejectAlreadySatisfied   RejectReason = "already_satisfied"
	RejectChannelLocked      RejectReason = "channel_locked"
	RejectPricingWithinBand  RejectReason = "pricing_within_band"
	RejectPricingMisdirected RejectReason = "pricing_misdirected"
	RejectFulfillmentLocked  RejectReason = "fulfillment_locked"
	RejectDimensionHealthy   RejectReason = "dimension_healthy"
	RejectLocalOptimum       RejectReason = "local_optimum"
	RejectRefinementOnly     RejectReason = "refinement_only"
	RejectDuplicate          RejectReason = "duplicate"
)

// RejectedFix records one suppressed candidate. Every rejection carries an
// enumerable reason so suppression stays explainable.
type RejectedFix struct {
	Fix    ruleset.FixID `json:"fix"`
	Reason RejectReason  `json:"reason"`
	Detail string        `json:"detail"`
}

// Recommendation is one surviving fix, ranked and phrased for execution.
type Recommendation struct {
	Order       int                 `json:"order"`
	Fix         ruleset.FixID       `json:"fix"`
	Category    ruleset.FixCategory `json:"category"`
	Headline    string              `json:"headline"`
	Explanation string              `json:"explanation"`
	Steps       []string            `json:"steps"`
	EndState    string              `json:"end_state"`
	Priority    int                 `json:"priority"`
}

// TraceEvent is one pipeline stage record.
type TraceEvent struct {
	Stage  string         `json:"stage"`
	Fields map[string]any `json:"fields,omitempty"`
}

// Result is the full deterministic evaluation of one configuration.
type Result struct {
	RulesetVersion  string                `json:"ruleset_version"`
	Scores          LatentScores          `json:"scores"`
	Gates           GateOutcome           `json:"gates"`
	Alignment       int                   `json:"alignment"`
	Readiness       Label                 `json:"readiness"`
	Bottleneck      Bottleneck            `json:"bottleneck"`
	Violations      []Violation           `json:"violations,omitempty"`
	Causes          []Cause               `json:"causes,omitempty"`
	CashFlow        ruleset.CashFlowLevel `json:"cash_flow"`
	Recommendations []Recommendation      `json:"recommendations"`
	Rejected        []RejectedFix         `json:"rejected,omitempty"`
	Trace           []TraceEvent          `json:"trace,omitempty"`
}
