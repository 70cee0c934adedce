package engine

import (
	"fmt"
	"strings"

	"offerfit-backend/internal/engine/ruleset"
	"offerfit-backend/internal/offer"
)

// stabilization is the per-evaluation lock state the router consults before
// letting a fix through. It exists to stop the advice from oscillating:
// without it, fixing one dimension produces a recommendation to undo the
// fix on the next run.
type stabilization struct {
	cfg    offer.Configuration
	rs     *ruleset.RuleSet
	scores LatentScores

	band         int
	viable       ruleset.BandRange
	bandRelation int // -1 below the viable band, 0 inside, +1 above

	structureLocked bool // software or productized delivery
	advisory        bool
	localOptimum    bool
	refinementOnly  bool
}

func newStabilization(cfg offer.Configuration, scores LatentScores, gates GateOutcome, bn Bottleneck, rs *ruleset.RuleSet) *stabilization {
	st := &stabilization{
		cfg:    cfg,
		rs:     rs,
		scores: scores,
		band:   effectiveBand(cfg, rs),
		viable: viableBand(cfg, rs),
	}
	switch {
	case st.band < st.viable.Min:
		st.bandRelation = -1
	case st.band > st.viable.Max:
		st.bandRelation = 1
	}

	st.structureLocked = cfg.Fulfillment == offer.FulfillSoftware ||
		cfg.Fulfillment == offer.FulfillProductized
	st.advisory = cfg.Fulfillment == offer.FulfillAdvisory

	st.localOptimum = true
	for _, d := range rs.CoreDims {
		if scores.Percent(d) < rs.LocalOptimumPct {
			st.localOptimum = false
			break
		}
	}

	// Floor bottlenecks mean no dimension met eligibility; on a ready
	// configuration that leaves refinement as the only honest advice.
	st.refinementOnly = gates.Ready && bn.Source == "floor"
	return st
}

// reject runs every lock in a fixed order and returns the first rejection,
// or nil when the fix survives.
func (st *stabilization) reject(fix ruleset.Fix) *RejectedFix {
	if detail, ok := st.alreadySatisfied(fix.ID); ok {
		return &RejectedFix{Fix: fix.ID, Reason: RejectAlreadySatisfied, Detail: detail}
	}
	if phrase, ok := st.channelBanned(fix); ok {
		return &RejectedFix{
			Fix:    fix.ID,
			Reason: RejectChannelLocked,
			Detail: fmt.Sprintf("channel moves are out of scope here: %q", phrase),
		}
	}
	if st.localOptimum && structurallyWorded(fix, st.rs) {
		return &RejectedFix{
			Fix:    fix.ID,
			Reason: RejectLocalOptimum,
			Detail: "every core dimension is healthy; structural moves are suppressed",
		}
	}
	if r := st.pricingLock(fix); r != nil {
		return r
	}
	if r := st.fulfillmentLock(fix); r != nil {
		return r
	}
	if fix.FirstOrder && st.dimensionHealthy(fix.Dimension) {
		return &RejectedFix{
			Fix:    fix.ID,
			Reason: RejectDimensionHealthy,
			Detail: fmt.Sprintf("%s is already healthy and correctly configured", fix.Dimension),
		}
	}
	if st.refinementOnly && fix.FirstOrder {
		return &RejectedFix{
			Fix:    fix.ID,
			Reason: RejectRefinementOnly,
			Detail: "the configuration is ready; only refinement-level moves apply",
		}
	}
	return nil
}

func (st *stabilization) alreadySatisfied(id ruleset.FixID) (string, bool) {
	cfg := st.cfg
	switch id {
	case ruleset.FixSwitchConditionalGuarantee:
		if cfg.Risk == offer.RiskConditional {
			return "the risk model is already a conditional guarantee", true
		}
	case ruleset.FixNarrowTargeting:
		if cfg.Targeting == offer.TargetingExact {
			return "targeting is already at exact specificity", true
		}
	case ruleset.FixProductizeDelivery:
		if cfg.Fulfillment == offer.FulfillProductized || cfg.Fulfillment == offer.FulfillSoftware {
			return fmt.Sprintf("delivery is already %s", cfg.Fulfillment), true
		}
	case ruleset.FixRestructureHybridPricing:
		if cfg.Pricing.Structure == offer.PricingHybrid {
			return "pricing is already a retainer plus performance hybrid", true
		}
	case ruleset.FixCollectOutcomeEvidence:
		if cfg.Proof.Level() >= 3 {
			return fmt.Sprintf("proof is already %s", cfg.Proof), true
		}
	}
	return "", false
}

func (st *stabilization) channelBanned(fix ruleset.Fix) (string, bool) {
	text := strings.ToLower(fix.Headline + " " + strings.Join(fix.Steps, " "))
	for _, phrase := range st.rs.ChannelBanPhrases {
		if strings.Contains(text, phrase) {
			return phrase, true
		}
	}
	return "", false
}

func (st *stabilization) pricingLock(fix ruleset.Fix) *RejectedFix {
	if fix.Category != ruleset.CategoryPricing || !fix.FirstOrder {
		return nil
	}
	switch {
	case st.bandRelation == 0:
		return &RejectedFix{
			Fix:    fix.ID,
			Reason: RejectPricingWithinBand,
			Detail: fmt.Sprintf("monthly pricing already sits inside the viable band for %s at proof %s", st.cfg.Size, st.cfg.Proof),
		}
	case st.bandRelation < 0 && fix.PriceMove < 0:
		return &RejectedFix{
			Fix:    fix.ID,
			Reason: RejectPricingMisdirected,
			Detail: "the price is under the viable band; moving it further down cannot help",
		}
	case st.bandRelation > 0 && fix.PriceMove > 0:
		return &RejectedFix{
			Fix:    fix.ID,
			Reason: RejectPricingMisdirected,
			Detail: "the price is over the viable band; moving it further up cannot help",
		}
	}
	return nil
}

func (st *stabilization) fulfillmentLock(fix ruleset.Fix) *RejectedFix {
	if fix.Dimension != ruleset.DimFulfillmentScalability || !fix.FirstOrder {
		return nil
	}
	if st.structureLocked {
		return &RejectedFix{
			Fix:    fix.ID,
			Reason: RejectFulfillmentLocked,
			Detail: fmt.Sprintf("delivery is already %s; only execution-depth moves apply", st.cfg.Fulfillment),
		}
	}
	if st.advisory && !st.rs.AdvisoryFirstOrder(fix.ID) {
		return &RejectedFix{
			Fix:    fix.ID,
			Reason: RejectFulfillmentLocked,
			Detail: "advisory delivery narrows the structural moves that make sense",
		}
	}
	return nil
}

// dimensionHealthy reports whether the dimension scores well and its
// driving input already holds a recognized good value, in which case
// first-order fixes against it would churn a working setup.
func (st *stabilization) dimensionHealthy(d ruleset.Dimension) bool {
	if st.scores.Percent(d) < st.rs.HealthyDimPct {
		return false
	}
	cfg := st.cfg
	switch d {
	case ruleset.DimChannelFit:
		return st.rs.Band(cfg.OfferType).Class == ruleset.ChannelCompatible
	case ruleset.DimProofToPromise:
		return cfg.Proof.Level() >= 3
	case ruleset.DimEconomicFeasibility:
		return econFrictionClass(cfg, st.rs) <= 2
	case ruleset.DimRiskAlignment:
		return cfg.Risk == offer.RiskConditional || cfg.Proof.Level() >= 3
	case ruleset.DimFulfillmentScalability:
		return st.structureLocked
	case ruleset.DimTargetingStrength:
		return cfg.Targeting == offer.TargetingExact
	}
	panic(fmt.Sprintf("engine: dimension %q outside declared domain", d))
}

func structurallyWorded(fix ruleset.Fix, rs *ruleset.RuleSet) bool {
	for _, token := range strings.Fields(strings.ToLower(fix.Headline)) {
		token = strings.Trim(token, ".,;:'\"")
		for _, word := range rs.StructuralWords {
			if token == word {
				return true
			}
		}
	}
	return false
}
