// Package ruleset holds every threshold, table, lexicon, and ordering the
// evaluation engine consults, versioned as one value. The engine contains
// the control flow; this package contains the numbers. Changing a judgment
// means shipping a new rule-set version, not editing engine code.
package ruleset

import "offerfit-backend/internal/offer"

// Dimension names one latent axis of outbound readiness.
type Dimension string

const (
	DimChannelFit             Dimension = "channel_fit"
	DimProofToPromise         Dimension = "proof_to_promise"
	DimEconomicFeasibility    Dimension = "economic_feasibility"
	DimRiskAlignment          Dimension = "risk_alignment"
	DimFulfillmentScalability Dimension = "fulfillment_scalability"
	DimTargetingStrength      Dimension = "targeting_strength"
)

// Dimensions returns every dimension in presentation order, which is also
// the dominance order used for gate precedence and tie breaks.
func Dimensions() []Dimension {
	return []Dimension{
		DimChannelFit, DimProofToPromise, DimEconomicFeasibility,
		DimRiskAlignment, DimFulfillmentScalability, DimTargetingStrength,
	}
}

// GateID names a hard viability gate.
type GateID string

const (
	GateChannelIncompatible GateID = "channel_incompatible"
	GateProofGap            GateID = "proof_gap"
	GateEconomicFriction    GateID = "economic_friction"
	GateRiskMisaligned      GateID = "risk_misaligned"
	GateFulfillmentCeiling  GateID = "fulfillment_ceiling"
	GateStructuralReach     GateID = "structural_reach"
)

// SoftGateID names a non-blocking pressure condition.
type SoftGateID string

const (
	SoftEconMarginal        SoftGateID = "economics_marginal"
	SoftVolumeProofStrain   SoftGateID = "volume_proof_strain"
	SoftHybridMicroBurden   SoftGateID = "hybrid_micro_burden"
	SoftConditionalLowProof SoftGateID = "conditional_low_proof"
)

// ViolationID names a raw-input sub-score check.
type ViolationID string

const (
	ViolationPainUrgency    ViolationID = "pain_urgency"
	ViolationBuyingPower    ViolationID = "buying_power"
	ViolationPricingFit     ViolationID = "pricing_fit"
	ViolationExecution      ViolationID = "execution_feasibility"
	ViolationRiskPosture    ViolationID = "risk_posture"
	ViolationOutboundFit    ViolationID = "outbound_fit"
)

// ViolationIDs returns the checks in evaluation order.
func ViolationIDs() []ViolationID {
	return []ViolationID{
		ViolationPainUrgency, ViolationBuyingPower, ViolationPricingFit,
		ViolationExecution, ViolationRiskPosture, ViolationOutboundFit,
	}
}

// CauseID names a diagnosed root cause.
type CauseID string

const (
	CauseChannelMisfit      CauseID = "channel_misfit"
	CauseProofDeficiency    CauseID = "proof_deficiency"
	CausePricingMismatch    CauseID = "pricing_mismatch"
	CauseRiskImbalance      CauseID = "risk_imbalance"
	CauseScalabilityStrain  CauseID = "scalability_strain"
	CauseTargetingDiffusion CauseID = "targeting_diffusion"
)

// CauseIDs returns causes in severity-weight order, heaviest first.
func CauseIDs() []CauseID {
	return []CauseID{
		CauseChannelMisfit, CauseProofDeficiency, CausePricingMismatch,
		CauseRiskImbalance, CauseTargetingDiffusion, CauseScalabilityStrain,
	}
}

// FixID names one catalog entry.
type FixID string

const (
	FixCollectOutcomeEvidence   FixID = "collect_outcome_evidence"
	FixScalePromiseToProof      FixID = "scale_promise_to_proof"
	FixRunProofPilot            FixID = "run_proof_pilot"
	FixNarrowTargeting          FixID = "narrow_targeting"
	FixBuildNamedAccountList    FixID = "build_named_account_list"
	FixSharpenFirstLine         FixID = "sharpen_first_line"
	FixSwitchConditionalGuarantee FixID = "switch_conditional_guarantee"
	FixTightenGuaranteeTerms    FixID = "tighten_guarantee_terms"
	FixRestructureHybridPricing FixID = "restructure_hybrid_pricing"
	FixRaisePriceFloor          FixID = "raise_price_floor"
	FixLowerEntryTier           FixID = "lower_entry_tier"
	FixAnchorPriceToOutcome     FixID = "anchor_price_to_outcome"
	FixShortenPaybackWindow     FixID = "shorten_payback_window"
	FixProductizeDelivery       FixID = "productize_delivery"
	FixDeepenAutomation         FixID = "deepen_automation"
	FixCodifyPlaybooks          FixID = "codify_playbooks"
	FixPackageAdvisorySprints   FixID = "package_advisory_sprints"
	FixReframeBusinessBuyer     FixID = "reframe_business_buyer"
	FixCarveB2BWedge            FixID = "carve_b2b_wedge"
)

// FixCategory groups fixes for display and for lock scoping.
type FixCategory string

const (
	CategoryProof       FixCategory = "proof"
	CategoryTargeting   FixCategory = "targeting"
	CategoryPricing     FixCategory = "pricing"
	CategoryRisk        FixCategory = "risk"
	CategoryFulfillment FixCategory = "fulfillment"
	CategoryChannel     FixCategory = "channel"
	CategoryMessaging   FixCategory = "messaging"
)

// Fix is one prescribable intervention. FirstOrder fixes change what the
// offer is; the rest refine how it is executed. PriceMove is +1 for fixes
// that move price up, -1 for down, 0 for price-neutral fixes.
type Fix struct {
	ID          FixID
	Dimension   Dimension
	Category    FixCategory
	Headline    string
	Steps       []string
	EndState    string
	Feasibility int
	Strategic   int
	FirstOrder  bool
	PriceMove   int
}

// ChannelClass buckets offer types by outbound compatibility.
type ChannelClass string

const (
	ChannelCompatible   ChannelClass = "compatible"
	ChannelConditional  ChannelClass = "conditional"
	ChannelIncompatible ChannelClass = "incompatible"
	ChannelUnclassified ChannelClass = "unclassified"
)

// ChannelBand is the channel-fit table row for one offer type.
type ChannelBand struct {
	Score int
	Class ChannelClass
}

// Blocking reports whether the band alone makes the offer unworkable for
// cold outbound.
func (b ChannelBand) Blocking() bool { return b.Class == ChannelIncompatible }

// ProofBuckets holds one score per proof bucket: weak is proof level 0-1,
// moderate is 2, strong is 3-4.
type ProofBuckets struct {
	Weak     int
	Moderate int
	Strong   int
}

// Pick returns the bucket value for a raw proof level.
func (p ProofBuckets) Pick(level int) int {
	switch {
	case level <= 1:
		return p.Weak
	case level == 2:
		return p.Moderate
	default:
		return p.Strong
	}
}

// ProofLadder maps the proof-minus-demand delta to a base score.
type ProofLadder struct {
	Exceeded int // delta >= 1
	Met      int // delta == 0
	GapOne   int // delta == -1
	GapWide  int // delta <= -2
}

// Pick returns the base score for a delta.
func (l ProofLadder) Pick(delta int) int {
	switch {
	case delta >= 1:
		return l.Exceeded
	case delta == 0:
		return l.Met
	case delta == -1:
		return l.GapOne
	default:
		return l.GapWide
	}
}

// HardGate is one ordered viability check. Flag gates trip on the channel
// blocking flag, compound gates on a raw-input conjunction, threshold
// gates when the dimension score falls below Threshold.
type HardGate struct {
	ID        GateID
	Dimension Dimension
	Kind      GateKind
	Threshold int
}

type GateKind string

const (
	GateKindFlag      GateKind = "flag"
	GateKindThreshold GateKind = "threshold"
	GateKindCompound  GateKind = "compound"
)

// SoftGate is one pressure condition with its fixed deduction.
type SoftGate struct {
	ID       SoftGateID
	Pressure int
}

// BandRange is an inclusive band-index range in the recurring tier scale.
type BandRange struct {
	Min int
	Max int
}

// Contains reports whether band sits inside the range.
func (r BandRange) Contains(band int) bool { return band >= r.Min && band <= r.Max }

// CashFlowLevel buckets how much cash an offer collects up front.
type CashFlowLevel string

const (
	CashFlowLow    CashFlowLevel = "low"
	CashFlowMedium CashFlowLevel = "medium"
	CashFlowHigh   CashFlowLevel = "high"
)

// RuleSet is the complete decision surface for one engine version.
type RuleSet struct {
	Version string

	// Latent scoring tables.
	ChannelBands    map[offer.OfferType]ChannelBand
	FallbackBand    ChannelBand
	PromiseDemand   map[offer.Promise]int
	ProofLadder     ProofLadder
	BroadWeakProofPenalty int
	FocusedProofBonus     int
	FrictionScores  map[int]int
	EconBaseClass   map[offer.PricingStructure]int
	RiskTable       map[offer.RiskModel]ProofBuckets
	FulfillmentBase map[offer.FulfillmentModel]int
	EnterpriseLoadPenalty int
	AdvisoryNicheBonus    int
	TargetingScores map[offer.TargetingSpecificity]int

	// Gates and caps.
	HardGates        []HardGate
	SoftGates        []SoftGate
	EconMarginalBand BandRange
	HardGateCap      int
	SoftGateCount    int
	SoftGateCap      int
	EconCapScore     int
	EconCap          int

	// Aggregation.
	MaxPoints  int
	ModerateAt int
	StrongAt   int

	// Bottleneck eligibility.
	EligibleBelowPct int
	MedianGapPct     int

	// Violation sub-score tables, all on a 0-10 scale.
	ViolationFloor      int
	ViolationCategories map[ViolationID]FixCategory
	PainBase          map[offer.Vertical]int
	PainPromiseShift  map[offer.Promise]int
	PowerBase         map[offer.CustomerSize]int
	PowerMaturityShift map[offer.CustomerMaturity]int
	ExecutionBase     map[offer.FulfillmentModel]int
	PostureTable      map[offer.RiskModel]ProofBuckets
	OutboundBase      map[ChannelClass]int
	OutboundTargetingShift map[offer.TargetingSpecificity]int

	// Pricing viability bands by customer size, indexed by proof level 0-4.
	ViableBands    map[offer.CustomerSize][5]BandRange
	ProjectMonthly map[offer.ProjectTier]int

	// Stabilization lexicons and thresholds.
	ChannelBanPhrases []string
	StructuralWords   []string
	CoreDims          []Dimension
	LocalOptimumPct   int
	HealthyDimPct     int

	// Fix routing.
	Catalog         []Fix
	DimensionFixes  map[Dimension][]FixID
	CauseFixes      map[CauseID][]FixID
	PricingFixes    map[CashFlowLevel][]FixID
	CertaintyFixes  []FixID
	AdvisoryAllowed []FixID
	CauseWeights    map[CauseID]float64

	// Explanation fragments for instruction templates.
	DimensionReasons map[Dimension]string
	CauseReasons     map[CauseID]string

	// Prioritizer bounds.
	TopKDefault int
	TopKMax     int
}

// FixByID looks a fix up in the catalog.
func (rs *RuleSet) FixByID(id FixID) (Fix, bool) {
	for _, f := range rs.Catalog {
		if f.ID == id {
			return f, true
		}
	}
	return Fix{}, false
}

// CatalogRank returns the fix's position in the catalog, used as the final
// deterministic tie break. Unknown ids sort last.
func (rs *RuleSet) CatalogRank(id FixID) int {
	for i, f := range rs.Catalog {
		if f.ID == id {
			return i
		}
	}
	return len(rs.Catalog)
}

// Band returns the channel row for an offer type, falling back to the
// unclassified band for types absent from the table.
func (rs *RuleSet) Band(t offer.OfferType) ChannelBand {
	if b, ok := rs.ChannelBands[t]; ok {
		return b
	}
	return rs.FallbackBand
}

// Certainty reports whether the fix sits in the always-sensible tier that
// receives fixed top priority.
func (rs *RuleSet) Certainty(id FixID) bool {
	for _, c := range rs.CertaintyFixes {
		if c == id {
			return true
		}
	}
	return false
}

// AdvisoryFirstOrder reports whether a first-order fulfillment fix stays
// available under the advisory delivery model.
func (rs *RuleSet) AdvisoryFirstOrder(id FixID) bool {
	for _, a := range rs.AdvisoryAllowed {
		if a == id {
			return true
		}
	}
	return false
}
