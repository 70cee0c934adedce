package engine

import (
	"fmt"

	"offerfit-backend/internal/engine/ruleset"
	"offerfit-backend/internal/offer"
)

func scoreLatent(cfg offer.Configuration, rs *ruleset.RuleSet) LatentScores {
	return LatentScores{
		ruleset.DimChannelFit:             rs.Band(cfg.OfferType).Score,
		ruleset.DimProofToPromise:         scoreProofToPromise(cfg, rs),
		ruleset.DimEconomicFeasibility:    scoreEconomicFeasibility(cfg, rs),
		ruleset.DimRiskAlignment:          scoreRiskAlignment(cfg, rs),
		ruleset.DimFulfillmentScalability: scoreFulfillmentScalability(cfg, rs),
		ruleset.DimTargetingStrength:      lookup(rs.TargetingScores, cfg.Targeting, "targeting_scores"),
	}
}

func scoreProofToPromise(cfg offer.Configuration, rs *ruleset.RuleSet) int {
	demand := lookup(rs.PromiseDemand, cfg.Promise, "promise_demand")
	delta := cfg.Proof.Level() - demand
	score := rs.ProofLadder.Pick(delta)
	// The penalty window overlaps only the deep-gap rung and the bonus only
	// the met-or-exceeded rungs, so targeting alone can never move this
	// dimension across the proof_gap threshold.
	if cfg.Targeting == offer.TargetingBroad && cfg.Proof.Level() <= 1 && delta <= -2 {
		score -= rs.BroadWeakProofPenalty
	}
	if cfg.Targeting != offer.TargetingBroad && delta >= 0 {
		score += rs.FocusedProofBonus
	}
	return clampScore(score)
}

// econFrictionClass folds pricing structure, segment, and risk stance into
// a 1..5 purchase-friction class, 1 being frictionless.
func econFrictionClass(cfg offer.Configuration, rs *ruleset.RuleSet) int {
	class := lookup(rs.EconBaseClass, cfg.Pricing.Structure, "econ_base_class")
	success := cfg.Pricing.Structure.SuccessBased()

	if success {
		// Downstream-paid units need attribution agreement and revenue
		// visibility before signature; activity units close clean.
		if cfg.Pricing.Basis.DownstreamPaid() {
			class++
		} else {
			class--
		}
	}

	switch cfg.Size {
	case offer.SizeMicro:
		if success {
			class--
		} else {
			class++
		}
	case offer.SizeSMB:
		if success {
			class--
		}
	case offer.SizeEnterprise:
		if success {
			class++
		} else {
			class--
		}
	}

	switch cfg.Maturity {
	case offer.MaturityStartup:
		if success {
			class--
		} else {
			class++
		}
	case offer.MaturityMature:
		if success {
			class++
		} else {
			class--
		}
	}

	switch cfg.Risk {
	case offer.RiskPayAfterResults, offer.RiskFullRefund:
		class--
	case offer.RiskNone:
		class++
	case offer.RiskConditional:
	default:
		panic(fmt.Sprintf("engine: risk model %q outside declared domain", cfg.Risk))
	}

	if class < 1 {
		class = 1
	}
	if class > 5 {
		class = 5
	}
	return class
}

func scoreEconomicFeasibility(cfg offer.Configuration, rs *ruleset.RuleSet) int {
	return lookup(rs.FrictionScores, econFrictionClass(cfg, rs), "friction_scores")
}

func scoreRiskAlignment(cfg offer.Configuration, rs *ruleset.RuleSet) int {
	buckets, ok := rs.RiskTable[cfg.Risk]
	if !ok {
		panic(fmt.Sprintf("engine: risk model %q missing from risk_table", cfg.Risk))
	}
	return clampScore(buckets.Pick(cfg.Proof.Level()))
}

func scoreFulfillmentScalability(cfg offer.Configuration, rs *ruleset.RuleSet) int {
	score := lookup(rs.FulfillmentBase, cfg.Fulfillment, "fulfillment_base")
	if cfg.Fulfillment.LaborHeavy() && cfg.Size == offer.SizeEnterprise {
		score -= rs.EnterpriseLoadPenalty
	}
	if cfg.Fulfillment == offer.FulfillAdvisory &&
		(cfg.Size == offer.SizeMicro || cfg.Size == offer.SizeSMB) {
		score += rs.AdvisoryNicheBonus
	}
	return clampScore(score)
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 20 {
		return 20
	}
	return v
}

func clampTen(v int) int {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

// lookup reads a scoring table and panics when the key is absent. A missing
// key past validation is a rule-set defect, never a user error.
func lookup[K comparable](table map[K]int, key K, name string) int {
	v, ok := table[key]
	if !ok {
		panic(fmt.Sprintf("engine: key %v missing from %s", key, name))
	}
	return v
}
