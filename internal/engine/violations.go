package engine

import (
	"fmt"

	"offerfit-backend/internal/engine/ruleset"
	"offerfit-backend/internal/offer"
)

// effectiveBand maps the pricing detail onto the recurring monthly band
// scale, 0 through 4. Performance pricing collects no committed cash and
// sits at band 0; one-time fees use their amortized monthly equivalent.
func effectiveBand(cfg offer.Configuration, rs *ruleset.RuleSet) int {
	switch cfg.Pricing.Structure {
	case offer.PricingPerformance:
		return 0
	case offer.PricingRecurring:
		return cfg.Pricing.RecurringTier.Index()
	case offer.PricingHybrid:
		return cfg.Pricing.RetainerTier.Index()
	case offer.PricingOneTime:
		return lookup(rs.ProjectMonthly, cfg.Pricing.ProjectTier, "project_monthly")
	}
	panic(fmt.Sprintf("engine: pricing structure %q outside declared domain", cfg.Pricing.Structure))
}

// viableBand returns the acceptable band range for the configuration's
// segment and proof level.
func viableBand(cfg offer.Configuration, rs *ruleset.RuleSet) ruleset.BandRange {
	bands, ok := rs.ViableBands[cfg.Size]
	if !ok {
		panic(fmt.Sprintf("engine: customer size %q missing from viable_bands", cfg.Size))
	}
	return bands[cfg.Proof.Level()]
}

// cashFlowLevel buckets how much committed cash the pricing collects.
func cashFlowLevel(cfg offer.Configuration) ruleset.CashFlowLevel {
	switch cfg.Pricing.Structure {
	case offer.PricingPerformance:
		return ruleset.CashFlowLow
	case offer.PricingRecurring:
		return tierCashFlow(cfg.Pricing.RecurringTier.Index(), 3)
	case offer.PricingHybrid:
		return tierCashFlow(cfg.Pricing.RetainerTier.Index(), 3)
	case offer.PricingOneTime:
		return tierCashFlow(cfg.Pricing.ProjectTier.Index(), 2)
	}
	panic(fmt.Sprintf("engine: pricing structure %q outside declared domain", cfg.Pricing.Structure))
}

func tierCashFlow(index, highAt int) ruleset.CashFlowLevel {
	switch {
	case index <= 1:
		return ruleset.CashFlowLow
	case index >= highAt:
		return ruleset.CashFlowHigh
	default:
		return ruleset.CashFlowMedium
	}
}

// scoreChecks computes the six raw-input sub-scores on the 0..10 scale.
// These deliberately reuse nothing from the latent dimensions so every
// violation stays explainable from inputs alone.
func scoreChecks(cfg offer.Configuration, rs *ruleset.RuleSet) map[ruleset.ViolationID]int {
	pain := lookup(rs.PainBase, cfg.Vertical, "pain_base") +
		lookup(rs.PainPromiseShift, cfg.Promise, "pain_promise_shift")
	power := lookup(rs.PowerBase, cfg.Size, "power_base") +
		lookup(rs.PowerMaturityShift, cfg.Maturity, "power_maturity_shift")

	band := effectiveBand(cfg, rs)
	viable := viableBand(cfg, rs)
	pricing := 8
	if dist := bandDistance(band, viable); dist == 1 {
		pricing = 3
	} else if dist >= 2 {
		pricing = 1
	}

	execution := lookup(rs.ExecutionBase, cfg.Fulfillment, "execution_base")
	if cfg.Fulfillment.LaborHeavy() && cfg.Size == offer.SizeEnterprise {
		execution -= 2
	}

	posture, ok := rs.PostureTable[cfg.Risk]
	if !ok {
		panic(fmt.Sprintf("engine: risk model %q missing from posture_table", cfg.Risk))
	}

	outbound := lookup(rs.OutboundBase, rs.Band(cfg.OfferType).Class, "outbound_base") +
		lookup(rs.OutboundTargetingShift, cfg.Targeting, "outbound_targeting_shift")

	return map[ruleset.ViolationID]int{
		ruleset.ViolationPainUrgency: clampTen(pain),
		ruleset.ViolationBuyingPower: clampTen(power),
		ruleset.ViolationPricingFit:  pricing,
		ruleset.ViolationExecution:   clampTen(execution),
		ruleset.ViolationRiskPosture: clampTen(posture.Pick(cfg.Proof.Level())),
		ruleset.ViolationOutboundFit: clampTen(outbound),
	}
}

func bandDistance(band int, r ruleset.BandRange) int {
	if band < r.Min {
		return r.Min - band
	}
	if band > r.Max {
		return band - r.Max
	}
	return 0
}

func detectViolations(checks map[ruleset.ViolationID]int, rs *ruleset.RuleSet) []Violation {
	var out []Violation
	for _, id := range ruleset.ViolationIDs() {
		score := checks[id]
		if score >= rs.ViolationFloor {
			continue
		}
		severity := ViolationLow
		switch {
		case score <= rs.ViolationFloor-3:
			severity = ViolationHigh
		case score == rs.ViolationFloor-2:
			severity = ViolationMedium
		}
		out = append(out, Violation{
			ID:       id,
			Score:    score,
			Floor:    rs.ViolationFloor,
			Severity: severity,
			Category: rs.ViolationCategories[id],
			Detail:   fmt.Sprintf("%s scored %d of 10, floor is %d", id, score, rs.ViolationFloor),
		})
	}
	return out
}

// detectCauses fires each root cause whose conjunction of violation flags
// and raw predicates holds. Fix lists are routed as-is; the stabilization
// layer decides what survives.
func detectCauses(cfg offer.Configuration, violations []Violation, rs *ruleset.RuleSet) []Cause {
	flagged := map[ruleset.ViolationID]bool{}
	for _, v := range violations {
		flagged[v.ID] = true
	}

	demand := lookup(rs.PromiseDemand, cfg.Promise, "promise_demand")
	proof := cfg.Proof.Level()

	var out []Cause
	for _, id := range ruleset.CauseIDs() {
		fired := false
		switch id {
		case ruleset.CauseChannelMisfit:
			fired = rs.Band(cfg.OfferType).Blocking()
		case ruleset.CauseProofDeficiency:
			fired = proof <= 1 && demand >= 2
		case ruleset.CausePricingMismatch:
			fired = flagged[ruleset.ViolationPricingFit] && flagged[ruleset.ViolationBuyingPower]
		case ruleset.CauseRiskImbalance:
			fired = flagged[ruleset.ViolationRiskPosture] && proof <= 1 &&
				(cfg.Risk == offer.RiskNone || cfg.Risk == offer.RiskFullRefund)
		case ruleset.CauseTargetingDiffusion:
			fired = cfg.Targeting == offer.TargetingBroad &&
				(flagged[ruleset.ViolationPainUrgency] || flagged[ruleset.ViolationBuyingPower])
		case ruleset.CauseScalabilityStrain:
			fired = flagged[ruleset.ViolationExecution] && cfg.Fulfillment.LaborHeavy() &&
				cfg.Size == offer.SizeEnterprise
		default:
			panic(fmt.Sprintf("engine: cause %q has no evaluator", id))
		}
		if !fired {
			continue
		}

		fixes := rs.CauseFixes[id]
		if id == ruleset.CausePricingMismatch {
			fixes = rs.PricingFixes[cashFlowLevel(cfg)]
		}
		out = append(out, Cause{
			ID:     id,
			Weight: rs.CauseWeights[id],
			Fixes:  append([]ruleset.FixID(nil), fixes...),
			Detail: rs.CauseReasons[id],
		})
	}
	return out
}
