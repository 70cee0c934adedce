package engine

import (
	"testing"

	"offerfit-backend/internal/engine/ruleset"
	"offerfit-backend/internal/offer"
)

// gatedConfig is an offer that hard-fails: a huge unproven promise, broad
// targeting, and labor-heavy delivery sold to enterprise, on frictionless
// performance pricing.
func gatedConfig() offer.Configuration {
	return offer.Configuration{
		OfferType: offer.TypeLeadGeneration,
		Promise:   offer.PromiseBrandAwareness,
		Vertical:  offer.VerticalSaaS,
		Size:      offer.SizeEnterprise,
		Maturity:  offer.MaturityGrowing,
		Targeting: offer.TargetingBroad,
		Pricing: offer.Pricing{
			Structure:    offer.PricingPerformance,
			Basis:        offer.BasisPerLead,
			Compensation: offer.CompStandard,
		},
		Risk:        offer.RiskPayAfterResults,
		Fulfillment: offer.FulfillStaffing,
		Proof:       offer.ProofNone,
	}
}

// strongConfig is a polished offer that passes everything.
func strongConfig() offer.Configuration {
	return offer.Configuration{
		OfferType: offer.TypeB2BSaaS,
		Promise:   offer.PromiseRevenueGrowth,
		Vertical:  offer.VerticalSaaS,
		Size:      offer.SizeEnterprise,
		Maturity:  offer.MaturityMature,
		Targeting: offer.TargetingExact,
		Pricing: offer.Pricing{
			Structure:     offer.PricingRecurring,
			RecurringTier: offer.TierOver20K,
		},
		Risk:        offer.RiskFullRefund,
		Fulfillment: offer.FulfillSoftware,
		Proof:       offer.ProofCategoryKiller,
	}
}

// moderateConfig is ready but economically strained: a recurring retainer
// segment where purchase friction stays high.
func moderateConfig() offer.Configuration {
	return offer.Configuration{
		OfferType: offer.TypeConsulting,
		Promise:   offer.PromiseCostReduction,
		Vertical:  offer.VerticalAgencies,
		Size:      offer.SizeSMB,
		Maturity:  offer.MaturityGrowing,
		Targeting: offer.TargetingNarrow,
		Pricing: offer.Pricing{
			Structure:     offer.PricingRecurring,
			RecurringTier: offer.Tier3KTo8K,
		},
		Risk:        offer.RiskConditional,
		Fulfillment: offer.FulfillAdvisory,
		Proof:       offer.ProofModerate,
	}
}

func mustEvaluate(t *testing.T, cfg offer.Configuration) *Result {
	t.Helper()
	res, err := Evaluate(cfg, ruleset.Default())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	return res
}

func hasGate(res *Result, id ruleset.GateID) bool {
	for _, h := range res.Gates.Hard {
		if h.ID == id {
			return true
		}
	}
	return false
}

func hasRecommendation(res *Result, id ruleset.FixID) bool {
	for _, r := range res.Recommendations {
		if r.Fix == id {
			return true
		}
	}
	return false
}

func rejectionReason(res *Result, id ruleset.FixID) (RejectReason, bool) {
	for _, r := range res.Rejected {
		if r.Fix == id {
			return r.Reason, true
		}
	}
	return "", false
}
