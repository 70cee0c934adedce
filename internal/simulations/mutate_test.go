package simulations

import (
	"errors"
	"reflect"
	"testing"

	"offerfit-backend/internal/engine/ruleset"
	"offerfit-backend/internal/offer"
)

func mustApply(t *testing.T, cfg offer.Configuration, id ruleset.FixID) (offer.Configuration, []Change) {
	t.Helper()
	mutated, changes, err := ApplyFix(cfg, id, nil)
	if err != nil {
		t.Fatalf("ApplyFix(%s) error = %v", id, err)
	}
	return mutated, changes
}

func wantApplyErr(t *testing.T, cfg offer.Configuration, id ruleset.FixID, sentinel error) {
	t.Helper()
	if _, _, err := ApplyFix(cfg, id, nil); !errors.Is(err, sentinel) {
		t.Fatalf("ApplyFix(%s) error = %v, want %v", id, err, sentinel)
	}
}

func TestApplyFixUnknownID(t *testing.T) {
	if _, _, err := ApplyFix(gatedConfig(), "paint_it_blue", nil); !errors.Is(err, ErrFixUnknown) {
		t.Fatalf("error = %v, want ErrFixUnknown", err)
	}
}

func TestApplyFixLeavesInputUntouched(t *testing.T) {
	cfg := gatedConfig()
	mutated, _ := mustApply(t, cfg, ruleset.FixCollectOutcomeEvidence)

	if cfg.Proof != offer.ProofNone {
		t.Fatalf("input proof = %s, want untouched none", cfg.Proof)
	}
	if mutated.Proof != offer.ProofAnecdotal {
		t.Fatalf("mutated proof = %s, want anecdotal", mutated.Proof)
	}
}

func TestCollectOutcomeEvidenceRaisesOneLevel(t *testing.T) {
	_, changes := mustApply(t, gatedConfig(), ruleset.FixCollectOutcomeEvidence)

	want := []Change{{Field: "proof_strength", From: "none", To: "anecdotal"}}
	if !reflect.DeepEqual(changes, want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}

	wantApplyErr(t, strongConfig(), ruleset.FixCollectOutcomeEvidence, ErrFixNotApplicable)
}

func TestRunProofPilotJumpsToModerate(t *testing.T) {
	mutated, changes := mustApply(t, gatedConfig(), ruleset.FixRunProofPilot)

	if mutated.Proof != offer.ProofModerate {
		t.Fatalf("proof = %s, want moderate", mutated.Proof)
	}
	want := []Change{{Field: "proof_strength", From: "none", To: "moderate"}}
	if !reflect.DeepEqual(changes, want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}

	wantApplyErr(t, moderateConfig(), ruleset.FixRunProofPilot, ErrFixNotApplicable)
}

func TestScalePromiseToProof(t *testing.T) {
	// No proof at all: even the most modest promise demands more evidence.
	wantApplyErr(t, gatedConfig(), ruleset.FixScalePromiseToProof, ErrFixNotApplicable)

	// One anecdote covers the least demanding promise.
	cfg := gatedConfig()
	cfg.Proof = offer.ProofAnecdotal
	mutated, changes := mustApply(t, cfg, ruleset.FixScalePromiseToProof)

	if mutated.Promise != offer.PromiseDeliverablesCapacity {
		t.Fatalf("promise = %s, want deliverables_capacity", mutated.Promise)
	}
	want := []Change{{Field: "promise", From: "brand_awareness", To: "deliverables_capacity"}}
	if !reflect.DeepEqual(changes, want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}

	// Evidence already covers the promise: nothing to scale down.
	wantApplyErr(t, strongConfig(), ruleset.FixScalePromiseToProof, ErrFixNotApplicable)
}

func TestNarrowTargetingStepsOneLevel(t *testing.T) {
	mutated, changes := mustApply(t, gatedConfig(), ruleset.FixNarrowTargeting)

	if mutated.Targeting != offer.TargetingNarrow {
		t.Fatalf("targeting = %s, want narrow", mutated.Targeting)
	}
	want := []Change{{Field: "targeting_specificity", From: "broad", To: "narrow"}}
	if !reflect.DeepEqual(changes, want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}

	wantApplyErr(t, strongConfig(), ruleset.FixNarrowTargeting, ErrFixNotApplicable)
}

func TestSwitchConditionalGuarantee(t *testing.T) {
	mutated, changes := mustApply(t, gatedConfig(), ruleset.FixSwitchConditionalGuarantee)

	if mutated.Risk != offer.RiskConditional {
		t.Fatalf("risk = %s, want conditional", mutated.Risk)
	}
	want := []Change{{Field: "risk_model", From: "pay_after_results", To: "conditional"}}
	if !reflect.DeepEqual(changes, want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}

	wantApplyErr(t, moderateConfig(), ruleset.FixSwitchConditionalGuarantee, ErrFixNotApplicable)
}

func TestTightenGuaranteeTerms(t *testing.T) {
	mutated, changes := mustApply(t, strongConfig(), ruleset.FixTightenGuaranteeTerms)

	if mutated.Risk != offer.RiskConditional {
		t.Fatalf("risk = %s, want conditional", mutated.Risk)
	}
	want := []Change{{Field: "risk_model", From: "full_refund", To: "conditional"}}
	if !reflect.DeepEqual(changes, want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}

	// Already conditional: the fix rewrites the terms, not the model.
	wantApplyErr(t, moderateConfig(), ruleset.FixTightenGuaranteeTerms, ErrFixNotSimulatable)

	cfg := strongConfig()
	cfg.Risk = offer.RiskNone
	wantApplyErr(t, cfg, ruleset.FixTightenGuaranteeTerms, ErrFixNotApplicable)
}

func TestRestructureHybridPricing(t *testing.T) {
	mutated, changes := mustApply(t, gatedConfig(), ruleset.FixRestructureHybridPricing)

	if mutated.Pricing.Structure != offer.PricingHybrid || mutated.Pricing.RetainerTier != offer.Tier1KTo3K {
		t.Fatalf("pricing = %+v, want hybrid with 1k_3k retainer", mutated.Pricing)
	}
	want := []Change{
		{Field: "pricing.structure", From: "performance", To: "hybrid"},
		{Field: "pricing.retainer_tier", From: "", To: "1k_3k"},
	}
	if !reflect.DeepEqual(changes, want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}

	hybrid := gatedConfig()
	hybrid.Pricing.Structure = offer.PricingHybrid
	hybrid.Pricing.RetainerTier = offer.TierUnder1K
	mutated, _ = mustApply(t, hybrid, ruleset.FixRestructureHybridPricing)
	if mutated.Pricing.RetainerTier != offer.Tier1KTo3K {
		t.Fatalf("retainer = %s, want 1k_3k", mutated.Pricing.RetainerTier)
	}

	hybrid.Pricing.RetainerTier = offer.Tier3KTo8K
	wantApplyErr(t, hybrid, ruleset.FixRestructureHybridPricing, ErrFixNotApplicable)

	wantApplyErr(t, moderateConfig(), ruleset.FixRestructureHybridPricing, ErrFixNotSimulatable)
}

func TestRaisePriceFloor(t *testing.T) {
	// SMB at moderate proof wants band 1..2. Under-1k recurring sits below it.
	cfg := moderateConfig()
	cfg.Pricing.RecurringTier = offer.TierUnder1K
	mutated, changes := mustApply(t, cfg, ruleset.FixRaisePriceFloor)

	if mutated.Pricing.RecurringTier != offer.Tier1KTo3K {
		t.Fatalf("tier = %s, want 1k_3k", mutated.Pricing.RecurringTier)
	}
	want := []Change{{Field: "pricing.recurring_tier", From: "under_1k", To: "1k_3k"}}
	if !reflect.DeepEqual(changes, want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}

	// 3k_8k already clears the floor.
	wantApplyErr(t, moderateConfig(), ruleset.FixRaisePriceFloor, ErrFixNotApplicable)

	// One-time projects step to the cheapest tier whose monthly band clears
	// the floor.
	project := moderateConfig()
	project.Pricing = offer.Pricing{Structure: offer.PricingOneTime, ProjectTier: offer.ProjectUnder5K}
	mutated, _ = mustApply(t, project, ruleset.FixRaisePriceFloor)
	if mutated.Pricing.ProjectTier != offer.Project5KTo15K {
		t.Fatalf("project tier = %s, want 5k_15k", mutated.Pricing.ProjectTier)
	}

	wantApplyErr(t, gatedConfig(), ruleset.FixRaisePriceFloor, ErrFixNotApplicable)
}

func TestLowerEntryTier(t *testing.T) {
	// SMB with no proof is viable at 0..1. Over-20k recurring is far above.
	cfg := moderateConfig()
	cfg.Proof = offer.ProofNone
	cfg.Pricing.RecurringTier = offer.TierOver20K
	mutated, changes := mustApply(t, cfg, ruleset.FixLowerEntryTier)

	if mutated.Pricing.RecurringTier != offer.Tier1KTo3K {
		t.Fatalf("tier = %s, want 1k_3k", mutated.Pricing.RecurringTier)
	}
	want := []Change{{Field: "pricing.recurring_tier", From: "over_20k", To: "1k_3k"}}
	if !reflect.DeepEqual(changes, want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}

	wantApplyErr(t, moderateConfig(), ruleset.FixLowerEntryTier, ErrFixNotApplicable)

	// One-time projects drop to the priciest tier still inside the band.
	project := moderateConfig()
	project.Proof = offer.ProofNone
	project.Pricing = offer.Pricing{Structure: offer.PricingOneTime, ProjectTier: offer.ProjectOver50K}
	mutated, _ = mustApply(t, project, ruleset.FixLowerEntryTier)
	if mutated.Pricing.ProjectTier != offer.Project5KTo15K {
		t.Fatalf("project tier = %s, want 5k_15k", mutated.Pricing.ProjectTier)
	}
}

func TestProductizeDelivery(t *testing.T) {
	mutated, changes := mustApply(t, gatedConfig(), ruleset.FixProductizeDelivery)

	if mutated.Fulfillment != offer.FulfillProductized {
		t.Fatalf("fulfillment = %s, want productized", mutated.Fulfillment)
	}
	want := []Change{{Field: "fulfillment_model", From: "staffing", To: "productized"}}
	if !reflect.DeepEqual(changes, want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}

	wantApplyErr(t, strongConfig(), ruleset.FixProductizeDelivery, ErrFixNotApplicable)
}

func TestPackageAdvisorySprints(t *testing.T) {
	mutated, changes := mustApply(t, moderateConfig(), ruleset.FixPackageAdvisorySprints)

	if mutated.Fulfillment != offer.FulfillProductized {
		t.Fatalf("fulfillment = %s, want productized", mutated.Fulfillment)
	}
	want := []Change{{Field: "fulfillment_model", From: "advisory", To: "productized"}}
	if !reflect.DeepEqual(changes, want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}

	wantApplyErr(t, gatedConfig(), ruleset.FixPackageAdvisorySprints, ErrFixNotApplicable)
}

func TestExecutionFixesAreNotSimulatable(t *testing.T) {
	for _, id := range []ruleset.FixID{
		ruleset.FixBuildNamedAccountList,
		ruleset.FixSharpenFirstLine,
		ruleset.FixAnchorPriceToOutcome,
		ruleset.FixShortenPaybackWindow,
		ruleset.FixDeepenAutomation,
		ruleset.FixCodifyPlaybooks,
		ruleset.FixReframeBusinessBuyer,
		ruleset.FixCarveB2BWedge,
	} {
		if _, _, err := ApplyFix(moderateConfig(), id, nil); !errors.Is(err, ErrFixNotSimulatable) {
			t.Errorf("ApplyFix(%s) error = %v, want ErrFixNotSimulatable", id, err)
		}
	}
}
