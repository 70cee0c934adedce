package engine

import (
	"fmt"

	"offerfit-backend/internal/engine/ruleset"
	"offerfit-backend/internal/offer"
)

// applyGates runs every hard and soft gate in declared order. All tripped
// hard gates are collected, not just the first: the cap rules need the full
// set even though bottleneck selection only uses the first.
func applyGates(cfg offer.Configuration, scores LatentScores, rs *ruleset.RuleSet) GateOutcome {
	out := GateOutcome{Ready: true, Cap: 100}

	for _, g := range rs.HardGates {
		tripped, detail := evalHardGate(g, cfg, scores, rs)
		if !tripped {
			continue
		}
		out.Ready = false
		out.Hard = append(out.Hard, HardGateHit{
			ID:        g.ID,
			Dimension: g.Dimension,
			Score:     scores[g.Dimension],
			Threshold: g.Threshold,
			Detail:    detail,
		})
	}

	for _, g := range rs.SoftGates {
		tripped, detail := evalSoftGate(g.ID, cfg, scores, rs)
		if !tripped {
			continue
		}
		out.Soft = append(out.Soft, SoftGateHit{ID: g.ID, Pressure: g.Pressure, Detail: detail})
		out.Pressure += g.Pressure
	}

	switch {
	case len(out.Hard) > 0:
		out.Cap, out.CapRule = rs.HardGateCap, "hard_gate"
	case len(out.Soft) >= rs.SoftGateCount:
		out.Cap, out.CapRule = rs.SoftGateCap, "soft_accumulation"
	case scores[ruleset.DimEconomicFeasibility] <= rs.EconCapScore:
		out.Cap, out.CapRule = rs.EconCap, "economic_ceiling"
	}
	return out
}

func evalHardGate(g ruleset.HardGate, cfg offer.Configuration, scores LatentScores, rs *ruleset.RuleSet) (bool, string) {
	switch g.Kind {
	case ruleset.GateKindFlag:
		band := rs.Band(cfg.OfferType)
		return band.Blocking(),
			fmt.Sprintf("offer type %s is %s with cold outbound", cfg.OfferType, band.Class)
	case ruleset.GateKindThreshold:
		score := scores[g.Dimension]
		return score < g.Threshold,
			fmt.Sprintf("%s scored %d, floor is %d", g.Dimension, score, g.Threshold)
	case ruleset.GateKindCompound:
		return evalCompoundGate(g.ID, cfg)
	}
	panic(fmt.Sprintf("engine: gate kind %q outside declared domain", g.Kind))
}

func evalCompoundGate(id ruleset.GateID, cfg offer.Configuration) (bool, string) {
	switch id {
	case ruleset.GateStructuralReach:
		tripped := cfg.Targeting == offer.TargetingBroad && cfg.Proof.Level() <= 2
		return tripped, "broad targeting with unproven claims cannot produce outreach a buyer recognizes"
	}
	panic(fmt.Sprintf("engine: compound gate %q has no evaluator", id))
}

func evalSoftGate(id ruleset.SoftGateID, cfg offer.Configuration, scores LatentScores, rs *ruleset.RuleSet) (bool, string) {
	switch id {
	case ruleset.SoftEconMarginal:
		score := scores[ruleset.DimEconomicFeasibility]
		return rs.EconMarginalBand.Contains(score),
			fmt.Sprintf("economics scored %d, inside the marginal band", score)
	case ruleset.SoftVolumeProofStrain:
		return cfg.Proof == offer.ProofModerate && cfg.Promise == offer.PromiseMeetingsVolume,
			"a volume promise on moderate proof erodes under delivery scrutiny"
	case ruleset.SoftHybridMicroBurden:
		return cfg.Pricing.Structure == offer.PricingHybrid && cfg.Size == offer.SizeMicro,
			"hybrid pricing doubles the commitment decision for micro buyers"
	case ruleset.SoftConditionalLowProof:
		return cfg.Risk == offer.RiskConditional && cfg.Proof.Level() <= 1,
			"a conditional guarantee without evidence reads as hedging"
	}
	panic(fmt.Sprintf("engine: soft gate %q has no evaluator", id))
}
