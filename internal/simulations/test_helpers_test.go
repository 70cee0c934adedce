package simulations

import (
	"testing"

	"offerfit-backend/internal/engine"
	"offerfit-backend/internal/offer"
)

func mustEvaluate(t *testing.T, cfg offer.Configuration) *engine.Result {
	t.Helper()
	res, err := engine.Evaluate(cfg, nil)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	return res
}

// gatedConfig hard-fails the evaluation: a huge unproven promise, broad
// targeting, and labor-heavy delivery on frictionless performance pricing.
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

// strongConfig passes everything with one advisory recommendation left.
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

// moderateConfig is ready but economically strained, with pricing already
// inside the viable band so pricing fixes have nothing to move.
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
