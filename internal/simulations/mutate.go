// Package simulations answers "what would change if I took this fix" by
// rewriting a copy of the offer configuration and re-running the evaluation
// engine. Fixes whose effect is pure execution (better messaging, a named
// account list) have no configuration expression and are reported as such
// rather than guessed at.
package simulations

import (
	"fmt"

	"offerfit-backend/internal/engine/ruleset"
	"offerfit-backend/internal/offer"
)

// Change records one configuration field a simulation rewrote. Field uses
// the JSON form so clients can map it straight onto the offer form.
type Change struct {
	Field string `json:"field"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// ApplyFix returns a copy of the configuration with the fix's change
// applied, plus the field-level diff. The input is never modified.
func ApplyFix(cfg offer.Configuration, id ruleset.FixID, rs *ruleset.RuleSet) (offer.Configuration, []Change, error) {
	if rs == nil {
		rs = ruleset.Default()
	}
	if _, ok := rs.FixByID(id); !ok {
		return cfg, nil, fmt.Errorf("%w: %s", ErrFixUnknown, id)
	}

	switch id {
	case ruleset.FixCollectOutcomeEvidence:
		return raiseProofOneLevel(cfg)
	case ruleset.FixRunProofPilot:
		return raiseProofToModerate(cfg)
	case ruleset.FixScalePromiseToProof:
		return scalePromiseToProof(cfg, rs)
	case ruleset.FixNarrowTargeting:
		return narrowTargeting(cfg)
	case ruleset.FixSwitchConditionalGuarantee:
		return switchConditionalGuarantee(cfg)
	case ruleset.FixTightenGuaranteeTerms:
		return tightenGuaranteeTerms(cfg)
	case ruleset.FixRestructureHybridPricing:
		return restructureHybridPricing(cfg)
	case ruleset.FixRaisePriceFloor:
		return raisePriceFloor(cfg, rs)
	case ruleset.FixLowerEntryTier:
		return lowerEntryTier(cfg, rs)
	case ruleset.FixProductizeDelivery:
		return productizeDelivery(cfg)
	case ruleset.FixPackageAdvisorySprints:
		return packageAdvisorySprints(cfg)
	case ruleset.FixReframeBusinessBuyer, ruleset.FixCarveB2BWedge:
		return cfg, nil, fmt.Errorf("%w: requires choosing a new offer shape", ErrFixNotSimulatable)
	default:
		return cfg, nil, fmt.Errorf("%w: execution refinement", ErrFixNotSimulatable)
	}
}

func raiseProofOneLevel(cfg offer.Configuration) (offer.Configuration, []Change, error) {
	levels := offer.ProofStrengths()
	idx := cfg.Proof.Level()
	if idx >= len(levels)-1 {
		return cfg, nil, fmt.Errorf("%w: proof already %s", ErrFixNotApplicable, cfg.Proof)
	}
	out := cfg
	out.Proof = levels[idx+1]
	return out, []Change{{Field: "proof_strength", From: string(cfg.Proof), To: string(out.Proof)}}, nil
}

func raiseProofToModerate(cfg offer.Configuration) (offer.Configuration, []Change, error) {
	if cfg.Proof.Level() >= offer.ProofModerate.Level() {
		return cfg, nil, fmt.Errorf("%w: proof already %s", ErrFixNotApplicable, cfg.Proof)
	}
	out := cfg
	out.Proof = offer.ProofModerate
	return out, []Change{{Field: "proof_strength", From: string(cfg.Proof), To: string(out.Proof)}}, nil
}

func scalePromiseToProof(cfg offer.Configuration, rs *ruleset.RuleSet) (offer.Configuration, []Change, error) {
	level := cfg.Proof.Level()
	if rs.PromiseDemand[cfg.Promise] <= level {
		return cfg, nil, fmt.Errorf("%w: promise already within the evidence", ErrFixNotApplicable)
	}

	// The most ambitious promise the current evidence still covers, by
	// demand; ties break on declaration order.
	var best offer.Promise
	bestDemand := -1
	for _, p := range offer.Promises() {
		if d := rs.PromiseDemand[p]; d <= level && d > bestDemand {
			best, bestDemand = p, d
		}
	}
	if best == "" {
		return cfg, nil, fmt.Errorf("%w: no promise fits proof level %d", ErrFixNotApplicable, level)
	}

	out := cfg
	out.Promise = best
	return out, []Change{{Field: "promise", From: string(cfg.Promise), To: string(best)}}, nil
}

func narrowTargeting(cfg offer.Configuration) (offer.Configuration, []Change, error) {
	steps := offer.TargetingSpecificities()
	idx := cfg.Targeting.Ordinal() - 1
	if idx >= len(steps)-1 {
		return cfg, nil, fmt.Errorf("%w: targeting already %s", ErrFixNotApplicable, cfg.Targeting)
	}
	out := cfg
	out.Targeting = steps[idx+1]
	return out, []Change{{Field: "targeting_specificity", From: string(cfg.Targeting), To: string(out.Targeting)}}, nil
}

func switchConditionalGuarantee(cfg offer.Configuration) (offer.Configuration, []Change, error) {
	if cfg.Risk == offer.RiskConditional {
		return cfg, nil, fmt.Errorf("%w: risk model already conditional", ErrFixNotApplicable)
	}
	out := cfg
	out.Risk = offer.RiskConditional
	return out, []Change{{Field: "risk_model", From: string(cfg.Risk), To: string(out.Risk)}}, nil
}

func tightenGuaranteeTerms(cfg offer.Configuration) (offer.Configuration, []Change, error) {
	switch cfg.Risk {
	case offer.RiskFullRefund, offer.RiskPayAfterResults:
		out := cfg
		out.Risk = offer.RiskConditional
		return out, []Change{{Field: "risk_model", From: string(cfg.Risk), To: string(out.Risk)}}, nil
	case offer.RiskConditional:
		return cfg, nil, fmt.Errorf("%w: guarantee terms are not part of the configuration", ErrFixNotSimulatable)
	default:
		return cfg, nil, fmt.Errorf("%w: no guarantee to tighten", ErrFixNotApplicable)
	}
}

func restructureHybridPricing(cfg offer.Configuration) (offer.Configuration, []Change, error) {
	switch cfg.Pricing.Structure {
	case offer.PricingPerformance:
		out := cfg
		out.Pricing.Structure = offer.PricingHybrid
		out.Pricing.RetainerTier = offer.Tier1KTo3K
		return out, []Change{
			{Field: "pricing.structure", From: string(cfg.Pricing.Structure), To: string(out.Pricing.Structure)},
			{Field: "pricing.retainer_tier", From: "", To: string(out.Pricing.RetainerTier)},
		}, nil
	case offer.PricingHybrid:
		if cfg.Pricing.RetainerTier != offer.TierUnder1K {
			return cfg, nil, fmt.Errorf("%w: retainer already at cost-recovery level", ErrFixNotApplicable)
		}
		out := cfg
		out.Pricing.RetainerTier = offer.Tier1KTo3K
		return out, []Change{
			{Field: "pricing.retainer_tier", From: string(cfg.Pricing.RetainerTier), To: string(out.Pricing.RetainerTier)},
		}, nil
	default:
		return cfg, nil, fmt.Errorf("%w: requires choosing a performance component", ErrFixNotSimulatable)
	}
}

func raisePriceFloor(cfg offer.Configuration, rs *ruleset.RuleSet) (offer.Configuration, []Change, error) {
	viable := viableBand(cfg, rs)

	switch cfg.Pricing.Structure {
	case offer.PricingRecurring:
		if cfg.Pricing.RecurringTier.Index() >= viable.Min {
			return cfg, nil, fmt.Errorf("%w: price already at or above the viable floor", ErrFixNotApplicable)
		}
		out := cfg
		out.Pricing.RecurringTier = offer.RecurringTiers()[viable.Min]
		return out, []Change{
			{Field: "pricing.recurring_tier", From: string(cfg.Pricing.RecurringTier), To: string(out.Pricing.RecurringTier)},
		}, nil
	case offer.PricingHybrid:
		if cfg.Pricing.RetainerTier.Index() >= viable.Min {
			return cfg, nil, fmt.Errorf("%w: retainer already at or above the viable floor", ErrFixNotApplicable)
		}
		out := cfg
		out.Pricing.RetainerTier = offer.RecurringTiers()[viable.Min]
		return out, []Change{
			{Field: "pricing.retainer_tier", From: string(cfg.Pricing.RetainerTier), To: string(out.Pricing.RetainerTier)},
		}, nil
	case offer.PricingOneTime:
		if monthlyBand(rs, cfg.Pricing.ProjectTier) >= viable.Min {
			return cfg, nil, fmt.Errorf("%w: price already at or above the viable floor", ErrFixNotApplicable)
		}
		for _, t := range offer.ProjectTiers() {
			if monthlyBand(rs, t) >= viable.Min {
				out := cfg
				out.Pricing.ProjectTier = t
				return out, []Change{
					{Field: "pricing.project_tier", From: string(cfg.Pricing.ProjectTier), To: string(t)},
				}, nil
			}
		}
		return cfg, nil, fmt.Errorf("%w: no project tier reaches the viable band", ErrFixNotApplicable)
	default:
		return cfg, nil, fmt.Errorf("%w: performance pricing has no committed floor", ErrFixNotApplicable)
	}
}

func lowerEntryTier(cfg offer.Configuration, rs *ruleset.RuleSet) (offer.Configuration, []Change, error) {
	viable := viableBand(cfg, rs)

	switch cfg.Pricing.Structure {
	case offer.PricingRecurring:
		if cfg.Pricing.RecurringTier.Index() <= viable.Max {
			return cfg, nil, fmt.Errorf("%w: price already inside the viable band", ErrFixNotApplicable)
		}
		out := cfg
		out.Pricing.RecurringTier = offer.RecurringTiers()[viable.Max]
		return out, []Change{
			{Field: "pricing.recurring_tier", From: string(cfg.Pricing.RecurringTier), To: string(out.Pricing.RecurringTier)},
		}, nil
	case offer.PricingHybrid:
		if cfg.Pricing.RetainerTier.Index() <= viable.Max {
			return cfg, nil, fmt.Errorf("%w: retainer already inside the viable band", ErrFixNotApplicable)
		}
		out := cfg
		out.Pricing.RetainerTier = offer.RecurringTiers()[viable.Max]
		return out, []Change{
			{Field: "pricing.retainer_tier", From: string(cfg.Pricing.RetainerTier), To: string(out.Pricing.RetainerTier)},
		}, nil
	case offer.PricingOneTime:
		if monthlyBand(rs, cfg.Pricing.ProjectTier) <= viable.Max {
			return cfg, nil, fmt.Errorf("%w: price already inside the viable band", ErrFixNotApplicable)
		}
		tiers := offer.ProjectTiers()
		for i := len(tiers) - 1; i >= 0; i-- {
			if monthlyBand(rs, tiers[i]) <= viable.Max {
				out := cfg
				out.Pricing.ProjectTier = tiers[i]
				return out, []Change{
					{Field: "pricing.project_tier", From: string(cfg.Pricing.ProjectTier), To: string(tiers[i])},
				}, nil
			}
		}
		return cfg, nil, fmt.Errorf("%w: no project tier fits under the viable band", ErrFixNotApplicable)
	default:
		return cfg, nil, fmt.Errorf("%w: performance pricing has no entry tier", ErrFixNotApplicable)
	}
}

func productizeDelivery(cfg offer.Configuration) (offer.Configuration, []Change, error) {
	switch cfg.Fulfillment {
	case offer.FulfillStaffing, offer.FulfillManagedService, offer.FulfillAdvisory:
		out := cfg
		out.Fulfillment = offer.FulfillProductized
		return out, []Change{{Field: "fulfillment_model", From: string(cfg.Fulfillment), To: string(out.Fulfillment)}}, nil
	default:
		return cfg, nil, fmt.Errorf("%w: delivery already leveraged", ErrFixNotApplicable)
	}
}

func packageAdvisorySprints(cfg offer.Configuration) (offer.Configuration, []Change, error) {
	if cfg.Fulfillment != offer.FulfillAdvisory {
		return cfg, nil, fmt.Errorf("%w: only advisory delivery packages into sprints", ErrFixNotApplicable)
	}
	out := cfg
	out.Fulfillment = offer.FulfillProductized
	return out, []Change{{Field: "fulfillment_model", From: string(cfg.Fulfillment), To: string(out.Fulfillment)}}, nil
}

func viableBand(cfg offer.Configuration, rs *ruleset.RuleSet) ruleset.BandRange {
	bands, ok := rs.ViableBands[cfg.Size]
	if !ok {
		panic(fmt.Sprintf("simulations: customer size %q missing from viable_bands", cfg.Size))
	}
	return bands[cfg.Proof.Level()]
}

func monthlyBand(rs *ruleset.RuleSet, t offer.ProjectTier) int {
	band, ok := rs.ProjectMonthly[t]
	if !ok {
		panic(fmt.Sprintf("simulations: project tier %q missing from project_monthly", t))
	}
	return band
}
