package engine

import (
	"testing"

	"offerfit-backend/internal/engine/ruleset"
	"offerfit-backend/internal/offer"
)

// pricingMismatchConfig prices a recurring retainer over what micro
// startups can absorb, with no risk relief behind it.
func pricingMismatchConfig() offer.Configuration {
	return offer.Configuration{
		OfferType:   offer.TypeConsulting,
		Promise:     offer.PromiseDeliverablesCapacity,
		Vertical:    offer.VerticalAgencies,
		Size:        offer.SizeMicro,
		Maturity:    offer.MaturityStartup,
		Targeting:   offer.TargetingNarrow,
		Pricing:     offer.Pricing{Structure: offer.PricingRecurring, RecurringTier: offer.Tier3KTo8K},
		Risk:        offer.RiskNone,
		Fulfillment: offer.FulfillAdvisory,
		Proof:       offer.ProofNone,
	}
}

func TestEffectiveBand(t *testing.T) {
	rs := ruleset.Default()
	base := moderateConfig()
	tests := []struct {
		name    string
		pricing offer.Pricing
		want    int
	}{
		{"performance collects nothing committed", offer.Pricing{
			Structure: offer.PricingPerformance, Basis: offer.BasisPerLead, Compensation: offer.CompStandard,
		}, 0},
		{"recurring uses its tier index", offer.Pricing{
			Structure: offer.PricingRecurring, RecurringTier: offer.Tier8KTo20K,
		}, 3},
		{"hybrid uses the retainer component", offer.Pricing{
			Structure: offer.PricingHybrid, RetainerTier: offer.Tier1KTo3K,
			Basis: offer.BasisPerSale, Compensation: offer.CompStandard,
		}, 1},
		{"one-time amortizes to a monthly band", offer.Pricing{
			Structure: offer.PricingOneTime, ProjectTier: offer.Project15KTo50K,
		}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.Pricing = tt.pricing
			if got := effectiveBand(cfg, rs); got != tt.want {
				t.Errorf("effectiveBand() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCashFlowLevel(t *testing.T) {
	base := moderateConfig()
	tests := []struct {
		name    string
		pricing offer.Pricing
		want    ruleset.CashFlowLevel
	}{
		{"performance is always low", offer.Pricing{
			Structure: offer.PricingPerformance, Basis: offer.BasisRevenueShare, Compensation: offer.CompPremium,
		}, ruleset.CashFlowLow},
		{"small recurring is low", offer.Pricing{
			Structure: offer.PricingRecurring, RecurringTier: offer.Tier1KTo3K,
		}, ruleset.CashFlowLow},
		{"mid recurring is medium", offer.Pricing{
			Structure: offer.PricingRecurring, RecurringTier: offer.Tier3KTo8K,
		}, ruleset.CashFlowMedium},
		{"large recurring is high", offer.Pricing{
			Structure: offer.PricingRecurring, RecurringTier: offer.TierOver20K,
		}, ruleset.CashFlowHigh},
		{"hybrid follows the retainer", offer.Pricing{
			Structure: offer.PricingHybrid, RetainerTier: offer.Tier8KTo20K,
			Basis: offer.BasisPerSale, Compensation: offer.CompStandard,
		}, ruleset.CashFlowHigh},
		{"small projects are low", offer.Pricing{
			Structure: offer.PricingOneTime, ProjectTier: offer.Project5KTo15K,
		}, ruleset.CashFlowLow},
		{"large projects are high", offer.Pricing{
			Structure: offer.PricingOneTime, ProjectTier: offer.Project15KTo50K,
		}, ruleset.CashFlowHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.Pricing = tt.pricing
			if got := cashFlowLevel(cfg); got != tt.want {
				t.Errorf("cashFlowLevel() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBandDistance(t *testing.T) {
	r := ruleset.BandRange{Min: 1, Max: 3}
	tests := []struct {
		band int
		want int
	}{
		{0, 1}, {1, 0}, {2, 0}, {3, 0}, {4, 1},
	}
	for _, tt := range tests {
		if got := bandDistance(tt.band, r); got != tt.want {
			t.Errorf("bandDistance(%d) = %d, want %d", tt.band, got, tt.want)
		}
	}
}

func TestScoreChecks(t *testing.T) {
	rs := ruleset.Default()
	tests := []struct {
		name string
		cfg  offer.Configuration
		want map[ruleset.ViolationID]int
	}{
		{
			name: "gated offer fails pricing, execution, and posture",
			cfg:  gatedConfig(),
			want: map[ruleset.ViolationID]int{
				ruleset.ViolationPainUrgency: 5,
				ruleset.ViolationBuyingPower: 9,
				ruleset.ViolationPricingFit:  3,
				ruleset.ViolationExecution:   2,
				ruleset.ViolationRiskPosture: 2,
				ruleset.ViolationOutboundFit: 5,
			},
		},
		{
			name: "strong offer clears every check",
			cfg:  strongConfig(),
			want: map[ruleset.ViolationID]int{
				ruleset.ViolationPainUrgency: 9,
				ruleset.ViolationBuyingPower: 10,
				ruleset.ViolationPricingFit:  8,
				ruleset.ViolationExecution:   8,
				ruleset.ViolationRiskPosture: 8,
				ruleset.ViolationOutboundFit: 9,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreChecks(tt.cfg, rs)
			for _, id := range ruleset.ViolationIDs() {
				if got[id] != tt.want[id] {
					t.Errorf("%s = %d, want %d", id, got[id], tt.want[id])
				}
			}
		})
	}
}

func TestDetectViolationsSeverity(t *testing.T) {
	rs := ruleset.Default()
	checks := map[ruleset.ViolationID]int{
		ruleset.ViolationPainUrgency: 1,
		ruleset.ViolationBuyingPower: 2,
		ruleset.ViolationPricingFit:  3,
		ruleset.ViolationExecution:   4,
		ruleset.ViolationRiskPosture: 0,
		ruleset.ViolationOutboundFit: 10,
	}
	got := detectViolations(checks, rs)
	want := []struct {
		id       ruleset.ViolationID
		severity ViolationSeverity
	}{
		{ruleset.ViolationPainUrgency, ViolationHigh},
		{ruleset.ViolationBuyingPower, ViolationMedium},
		{ruleset.ViolationPricingFit, ViolationLow},
		{ruleset.ViolationRiskPosture, ViolationHigh},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d violations, want %d: %v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].ID != w.id || got[i].Severity != w.severity {
			t.Errorf("violation[%d] = %s/%s, want %s/%s", i, got[i].ID, got[i].Severity, w.id, w.severity)
		}
		if got[i].Floor != rs.ViolationFloor {
			t.Errorf("violation[%d] floor = %d, want %d", i, got[i].Floor, rs.ViolationFloor)
		}
	}
	// Categories come from the rule set so the router can scope locks.
	if got[2].Category != ruleset.CategoryPricing {
		t.Errorf("pricing_fit category = %s, want %s", got[2].Category, ruleset.CategoryPricing)
	}
}

func TestDetectCauses(t *testing.T) {
	rs := ruleset.Default()
	tests := []struct {
		name string
		cfg  offer.Configuration
		want []ruleset.CauseID
	}{
		{
			name: "gated offer shows proof deficiency and scalability strain",
			cfg:  gatedConfig(),
			want: []ruleset.CauseID{ruleset.CauseProofDeficiency, ruleset.CauseScalabilityStrain},
		},
		{
			name: "strong offer shows nothing",
			cfg:  strongConfig(),
			want: nil,
		},
		{
			name: "overpriced micro offer shows pricing and risk causes",
			cfg:  pricingMismatchConfig(),
			want: []ruleset.CauseID{ruleset.CausePricingMismatch, ruleset.CauseRiskImbalance},
		},
		{
			name: "incompatible category shows channel misfit",
			cfg: offer.Configuration{
				OfferType: offer.TypeEcommerceDTC, Promise: offer.PromiseRevenueGrowth,
				Vertical: offer.VerticalEcommerceBrands, Size: offer.SizeSMB, Maturity: offer.MaturityGrowing,
				Targeting: offer.TargetingNarrow,
				Pricing:   offer.Pricing{Structure: offer.PricingRecurring, RecurringTier: offer.Tier1KTo3K},
				Risk:      offer.RiskConditional, Fulfillment: offer.FulfillProductized,
				Proof: offer.ProofModerate,
			},
			want: []ruleset.CauseID{ruleset.CauseChannelMisfit},
		},
		{
			name: "broad targeting over a flagged buyer check diffuses",
			cfg: offer.Configuration{
				OfferType: offer.TypeCreativeProduction, Promise: offer.PromiseBrandAwareness,
				Vertical: offer.VerticalRealEstate, Size: offer.SizeMidmarket, Maturity: offer.MaturityGrowing,
				Targeting: offer.TargetingBroad,
				Pricing:   offer.Pricing{Structure: offer.PricingOneTime, ProjectTier: offer.Project5KTo15K},
				Risk:      offer.RiskConditional, Fulfillment: offer.FulfillProductized,
				Proof: offer.ProofModerate,
			},
			want: []ruleset.CauseID{ruleset.CauseTargetingDiffusion},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checks := scoreChecks(tt.cfg, rs)
			got := detectCauses(tt.cfg, detectViolations(checks, rs), rs)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d causes %v, want %v", len(got), causeIDs(got), tt.want)
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("cause[%d] = %s, want %s", i, got[i].ID, id)
				}
				if got[i].Weight != rs.CauseWeights[id] {
					t.Errorf("cause[%d] weight = %v, want %v", i, got[i].Weight, rs.CauseWeights[id])
				}
			}
		})
	}
}

// pricing_mismatch routes by how much committed cash the pricing collects,
// not by a fixed fix list.
func TestPricingMismatchRoutesByCashFlow(t *testing.T) {
	rs := ruleset.Default()
	cfg := pricingMismatchConfig()
	causes := detectCauses(cfg, detectViolations(scoreChecks(cfg, rs), rs), rs)

	var pricing *Cause
	for i := range causes {
		if causes[i].ID == ruleset.CausePricingMismatch {
			pricing = &causes[i]
		}
	}
	if pricing == nil {
		t.Fatal("pricing_mismatch did not fire")
	}
	want := rs.PricingFixes[ruleset.CashFlowMedium]
	if len(pricing.Fixes) != len(want) {
		t.Fatalf("fixes = %v, want %v", pricing.Fixes, want)
	}
	for i, id := range want {
		if pricing.Fixes[i] != id {
			t.Errorf("fixes[%d] = %s, want %s", i, pricing.Fixes[i], id)
		}
	}
}
