package engine

import (
	"testing"

	"offerfit-backend/internal/engine/ruleset"
	"offerfit-backend/internal/offer"
)

// softCapConfig trips three soft gates at once without any hard gate:
// marginal economics, hybrid pricing to micro buyers, and a conditional
// guarantee on anecdotal proof.
func softCapConfig() offer.Configuration {
	return offer.Configuration{
		OfferType: offer.TypeCoachingTraining,
		Promise:   offer.PromiseDeliverablesCapacity,
		Vertical:  offer.VerticalAgencies,
		Size:      offer.SizeMicro,
		Maturity:  offer.MaturityMature,
		Targeting: offer.TargetingNarrow,
		Pricing: offer.Pricing{
			Structure:    offer.PricingHybrid,
			RetainerTier: offer.TierUnder1K,
			Basis:        offer.BasisPerSale,
			Compensation: offer.CompStandard,
		},
		Risk:        offer.RiskConditional,
		Fulfillment: offer.FulfillProductized,
		Proof:       offer.ProofAnecdotal,
	}
}

// econCapConfig is strong everywhere except purchase friction, which sits
// exactly at the ceiling trigger without tripping the hard gate.
func econCapConfig() offer.Configuration {
	cfg := strongConfig()
	cfg.Size = offer.SizeSMB
	cfg.Maturity = offer.MaturityGrowing
	cfg.Risk = offer.RiskConditional
	cfg.Pricing = offer.Pricing{Structure: offer.PricingRecurring, RecurringTier: offer.Tier3KTo8K}
	return cfg
}

func applyGatesFor(t *testing.T, cfg offer.Configuration) GateOutcome {
	t.Helper()
	rs := ruleset.Default()
	return applyGates(cfg, scoreLatent(cfg, rs), rs)
}

func TestHardGateTrips(t *testing.T) {
	tests := []struct {
		name string
		cfg  offer.Configuration
		want ruleset.GateID
		only bool
	}{
		{
			name: "channel incompatible offer type",
			cfg: offer.Configuration{
				OfferType: offer.TypeLocalConsumer, Promise: offer.PromiseRevenueGrowth,
				Vertical: offer.VerticalRealEstate, Size: offer.SizeMicro, Maturity: offer.MaturityGrowing,
				Targeting: offer.TargetingNarrow,
				Pricing:   offer.Pricing{Structure: offer.PricingRecurring, RecurringTier: offer.Tier1KTo3K},
				Risk:      offer.RiskConditional, Fulfillment: offer.FulfillAdvisory,
				Proof: offer.ProofModerate,
			},
			want: ruleset.GateChannelIncompatible,
		},
		{
			name: "promise outruns proof",
			cfg: offer.Configuration{
				OfferType: offer.TypeConsulting, Promise: offer.PromiseRevenueGrowth,
				Vertical: offer.VerticalSaaS, Size: offer.SizeSMB, Maturity: offer.MaturityGrowing,
				Targeting: offer.TargetingNarrow,
				Pricing:   offer.Pricing{Structure: offer.PricingRecurring, RecurringTier: offer.Tier3KTo8K},
				Risk:      offer.RiskConditional, Fulfillment: offer.FulfillAdvisory,
				Proof: offer.ProofNone,
			},
			want: ruleset.GateProofGap,
			only: true,
		},
		{
			name: "purchase friction past the ceiling",
			cfg: offer.Configuration{
				OfferType: offer.TypeManagedIT, Promise: offer.PromiseHiringOutcomes,
				Vertical: offer.VerticalHealthcare, Size: offer.SizeSMB, Maturity: offer.MaturityGrowing,
				Targeting: offer.TargetingNarrow,
				Pricing:   offer.Pricing{Structure: offer.PricingRecurring, RecurringTier: offer.TierUnder1K},
				Risk:      offer.RiskNone, Fulfillment: offer.FulfillManagedService,
				Proof: offer.ProofModerate,
			},
			want: ruleset.GateEconomicFriction,
			only: true,
		},
		{
			name: "risk stance unbacked by evidence",
			cfg: offer.Configuration{
				OfferType: offer.TypeLeadGeneration, Promise: offer.PromiseMeetingsVolume,
				Vertical: offer.VerticalSaaS, Size: offer.SizeMidmarket, Maturity: offer.MaturityEstablished,
				Targeting: offer.TargetingNarrow,
				Pricing:   offer.Pricing{Structure: offer.PricingOneTime, ProjectTier: offer.Project5KTo15K},
				Risk:      offer.RiskNone, Fulfillment: offer.FulfillProductized,
				Proof: offer.ProofAnecdotal,
			},
			want: ruleset.GateRiskMisaligned,
			only: true,
		},
		{
			name: "labor-heavy delivery to enterprise",
			cfg:  gatedConfig(),
			want: ruleset.GateFulfillmentCeiling,
		},
		{
			name: "broad targeting without proof",
			cfg: offer.Configuration{
				OfferType: offer.TypeCoachingTraining, Promise: offer.PromiseDeliverablesCapacity,
				Vertical: offer.VerticalAgencies, Size: offer.SizeSMB, Maturity: offer.MaturityGrowing,
				Targeting: offer.TargetingBroad,
				Pricing:   offer.Pricing{Structure: offer.PricingRecurring, RecurringTier: offer.Tier1KTo3K},
				Risk:      offer.RiskConditional, Fulfillment: offer.FulfillAdvisory,
				Proof: offer.ProofModerate,
			},
			want: ruleset.GateStructuralReach,
			only: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := applyGatesFor(t, tt.cfg)
			if out.Ready {
				t.Fatal("Ready = true, want gated")
			}
			found := false
			for _, h := range out.Hard {
				if h.ID == tt.want {
					found = true
				}
			}
			if !found {
				t.Fatalf("gate %s not tripped, got %v", tt.want, out.Hard)
			}
			if tt.only && len(out.Hard) != 1 {
				t.Fatalf("want only %s, got %v", tt.want, out.Hard)
			}
		})
	}
}

func TestHardGatesFollowDeclaredOrder(t *testing.T) {
	out := applyGatesFor(t, gatedConfig())
	want := []ruleset.GateID{
		ruleset.GateProofGap, ruleset.GateFulfillmentCeiling, ruleset.GateStructuralReach,
	}
	if len(out.Hard) != len(want) {
		t.Fatalf("got %d hard gates, want %d", len(out.Hard), len(want))
	}
	for i, id := range want {
		if out.Hard[i].ID != id {
			t.Errorf("hard[%d] = %s, want %s", i, out.Hard[i].ID, id)
		}
	}
}

func TestSoftGates(t *testing.T) {
	tests := []struct {
		name         string
		cfg          offer.Configuration
		want         ruleset.SoftGateID
		wantPressure int
	}{
		{"marginal economics", moderateConfig(), ruleset.SoftEconMarginal, 4},
		{
			name: "volume promise on moderate proof",
			cfg: offer.Configuration{
				OfferType: offer.TypeLeadGeneration, Promise: offer.PromiseMeetingsVolume,
				Vertical: offer.VerticalSaaS, Size: offer.SizeMidmarket, Maturity: offer.MaturityGrowing,
				Targeting: offer.TargetingNarrow,
				Pricing: offer.Pricing{
					Structure: offer.PricingPerformance,
					Basis:     offer.BasisPerLead, Compensation: offer.CompStandard,
				},
				Risk: offer.RiskConditional, Fulfillment: offer.FulfillProductized,
				Proof: offer.ProofModerate,
			},
			want:         ruleset.SoftVolumeProofStrain,
			wantPressure: 3,
		},
		{
			name: "hybrid pricing to micro buyers",
			cfg: offer.Configuration{
				OfferType: offer.TypeCoachingTraining, Promise: offer.PromiseDeliverablesCapacity,
				Vertical: offer.VerticalAgencies, Size: offer.SizeMicro, Maturity: offer.MaturityGrowing,
				Targeting: offer.TargetingNarrow,
				Pricing: offer.Pricing{
					Structure: offer.PricingHybrid, RetainerTier: offer.Tier1KTo3K,
					Basis: offer.BasisPerMeeting, Compensation: offer.CompLight,
				},
				Risk: offer.RiskConditional, Fulfillment: offer.FulfillProductized,
				Proof: offer.ProofStrong,
			},
			want:         ruleset.SoftHybridMicroBurden,
			wantPressure: 4,
		},
		{
			name: "conditional guarantee without evidence",
			cfg: offer.Configuration{
				OfferType: offer.TypeSalesDevelopment, Promise: offer.PromiseDeliverablesCapacity,
				Vertical: offer.VerticalSaaS, Size: offer.SizeSMB, Maturity: offer.MaturityGrowing,
				Targeting: offer.TargetingNarrow,
				Pricing: offer.Pricing{
					Structure: offer.PricingPerformance,
					Basis:     offer.BasisPerMeeting, Compensation: offer.CompStandard,
				},
				Risk: offer.RiskConditional, Fulfillment: offer.FulfillProductized,
				Proof: offer.ProofAnecdotal,
			},
			want:         ruleset.SoftConditionalLowProof,
			wantPressure: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := applyGatesFor(t, tt.cfg)
			found := false
			for _, s := range out.Soft {
				if s.ID == tt.want {
					found = true
					if s.Pressure != tt.wantPressure {
						t.Errorf("pressure = %d, want %d", s.Pressure, tt.wantPressure)
					}
				}
			}
			if !found {
				t.Fatalf("soft gate %s not tripped, got %v", tt.want, out.Soft)
			}
		})
	}
}

func TestCapRules(t *testing.T) {
	tests := []struct {
		name     string
		cfg      offer.Configuration
		wantCap  int
		wantRule string
	}{
		{"hard gate caps hardest", gatedConfig(), 49, "hard_gate"},
		{"three soft gates accumulate", softCapConfig(), 64, "soft_accumulation"},
		{"marginal economics alone caps", econCapConfig(), 69, "economic_ceiling"},
		{"clean offer is uncapped", strongConfig(), 100, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := applyGatesFor(t, tt.cfg)
			if out.Cap != tt.wantCap || out.CapRule != tt.wantRule {
				t.Fatalf("cap = %d (%q), want %d (%q)", out.Cap, out.CapRule, tt.wantCap, tt.wantRule)
			}
		})
	}
}

func TestSoftCapCountsGatesNotPressure(t *testing.T) {
	out := applyGatesFor(t, softCapConfig())
	if len(out.Soft) != 3 {
		t.Fatalf("got %d soft gates, want 3", len(out.Soft))
	}
	if out.Pressure != 11 {
		t.Fatalf("pressure = %d, want 11", out.Pressure)
	}
	if out.Ready != true {
		t.Fatal("soft gates must not block readiness")
	}
}
