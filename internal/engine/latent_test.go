package engine

import (
	"testing"

	"offerfit-backend/internal/engine/ruleset"
	"offerfit-backend/internal/offer"
)

func TestScoreLatentScenarios(t *testing.T) {
	rs := ruleset.Default()
	tests := []struct {
		name string
		cfg  offer.Configuration
		want LatentScores
	}{
		{
			name: "gated offer scores low on proof and fulfillment",
			cfg:  gatedConfig(),
			want: LatentScores{
				ruleset.DimChannelFit:             16,
				ruleset.DimProofToPromise:         1,
				ruleset.DimEconomicFeasibility:    19,
				ruleset.DimRiskAlignment:          8,
				ruleset.DimFulfillmentScalability: 2,
				ruleset.DimTargetingStrength:      7,
			},
		},
		{
			name: "strong offer scores high everywhere",
			cfg:  strongConfig(),
			want: LatentScores{
				ruleset.DimChannelFit:             16,
				ruleset.DimProofToPromise:         20,
				ruleset.DimEconomicFeasibility:    19,
				ruleset.DimRiskAlignment:          15,
				ruleset.DimFulfillmentScalability: 18,
				ruleset.DimTargetingStrength:      19,
			},
		},
		{
			name: "moderate offer drags on economics",
			cfg:  moderateConfig(),
			want: LatentScores{
				ruleset.DimChannelFit:             14,
				ruleset.DimProofToPromise:         17,
				ruleset.DimEconomicFeasibility:    7,
				ruleset.DimRiskAlignment:          14,
				ruleset.DimFulfillmentScalability: 14,
				ruleset.DimTargetingStrength:      14,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreLatent(tt.cfg, rs)
			for _, d := range ruleset.Dimensions() {
				if got[d] != tt.want[d] {
					t.Errorf("%s = %d, want %d", d, got[d], tt.want[d])
				}
			}
		})
	}
}

func TestScoreProofToPromise(t *testing.T) {
	rs := ruleset.Default()
	base := moderateConfig()

	tests := []struct {
		name      string
		promise   offer.Promise
		proof     offer.ProofStrength
		targeting offer.TargetingSpecificity
		want      int
	}{
		// cost_reduction demands level 2.
		{"met with focus earns the bonus", offer.PromiseCostReduction, offer.ProofModerate, offer.TargetingNarrow, 17},
		{"met without focus stays base", offer.PromiseCostReduction, offer.ProofModerate, offer.TargetingBroad, 15},
		{"exceeded with focus", offer.PromiseCostReduction, offer.ProofStrong, offer.TargetingExact, 20},
		{"one level short", offer.PromiseCostReduction, offer.ProofAnecdotal, offer.TargetingNarrow, 9},
		{"deep gap", offer.PromiseCostReduction, offer.ProofNone, offer.TargetingNarrow, 4},
		{"deep gap broadens into the penalty", offer.PromiseCostReduction, offer.ProofNone, offer.TargetingBroad, 1},
		// revenue_growth demands level 3; moderate proof is a one-level gap
		// with level 2, so the broad penalty needs both the weak proof and
		// the wide delta.
		{"moderate proof escapes the broad penalty", offer.PromiseRevenueGrowth, offer.ProofModerate, offer.TargetingBroad, 9},
		{"anecdotal proof against a big promise", offer.PromiseRevenueGrowth, offer.ProofAnecdotal, offer.TargetingBroad, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.Promise = tt.promise
			cfg.Proof = tt.proof
			cfg.Targeting = tt.targeting
			if got := scoreProofToPromise(cfg, rs); got != tt.want {
				t.Errorf("scoreProofToPromise() = %d, want %d", got, tt.want)
			}
		})
	}
}

// Targeting alone must never move proof_to_promise across the gate floor:
// the penalty window only touches scores already deep under it and the
// bonus only scores already above it.
func TestTargetingCannotCrossProofFloor(t *testing.T) {
	rs := ruleset.Default()
	floor := 8
	base := moderateConfig()

	for _, promise := range offer.Promises() {
		for _, proof := range offer.ProofStrengths() {
			var gated []bool
			for _, targeting := range offer.TargetingSpecificities() {
				cfg := base
				cfg.Promise = promise
				cfg.Proof = proof
				cfg.Targeting = targeting
				gated = append(gated, scoreProofToPromise(cfg, rs) < floor)
			}
			for i := 1; i < len(gated); i++ {
				if gated[i] != gated[0] {
					t.Fatalf("promise %s proof %s: targeting flips the floor verdict", promise, proof)
				}
			}
		}
	}
}

func TestEconFrictionClass(t *testing.T) {
	rs := ruleset.Default()
	tests := []struct {
		name string
		cfg  offer.Configuration
		want int
	}{
		{"performance on activity units closes clean", gatedConfig(), 1},
		{"recurring to mature enterprise with a refund", strongConfig(), 1},
		{"recurring retainer to growing smb", moderateConfig(), 4},
		{
			name: "downstream hybrid to mature micro",
			cfg: offer.Configuration{
				OfferType: offer.TypeCoachingTraining, Promise: offer.PromiseDeliverablesCapacity,
				Vertical: offer.VerticalAgencies, Size: offer.SizeMicro, Maturity: offer.MaturityMature,
				Targeting: offer.TargetingNarrow,
				Pricing: offer.Pricing{
					Structure: offer.PricingHybrid, RetainerTier: offer.TierUnder1K,
					Basis: offer.BasisPerSale, Compensation: offer.CompStandard,
				},
				Risk: offer.RiskConditional, Fulfillment: offer.FulfillProductized,
				Proof: offer.ProofAnecdotal,
			},
			want: 4,
		},
		{
			name: "recurring with no risk relief to smb maxes out",
			cfg: offer.Configuration{
				OfferType: offer.TypeManagedIT, Promise: offer.PromiseHiringOutcomes,
				Vertical: offer.VerticalHealthcare, Size: offer.SizeSMB, Maturity: offer.MaturityGrowing,
				Targeting: offer.TargetingNarrow,
				Pricing:   offer.Pricing{Structure: offer.PricingRecurring, RecurringTier: offer.TierUnder1K},
				Risk:      offer.RiskNone, Fulfillment: offer.FulfillManagedService,
				Proof: offer.ProofModerate,
			},
			want: 5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := econFrictionClass(tt.cfg, rs); got != tt.want {
				t.Errorf("econFrictionClass() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEconFrictionClassStaysInRange(t *testing.T) {
	rs := ruleset.Default()
	cfg := gatedConfig()
	// Every relief at once: success-based activity pricing to a micro
	// startup with seller-side risk pushes past the lower bound.
	cfg.Size = offer.SizeMicro
	cfg.Maturity = offer.MaturityStartup
	if got := econFrictionClass(cfg, rs); got != 1 {
		t.Fatalf("econFrictionClass() = %d, want clamp at 1", got)
	}
}

func TestScoreRiskAlignment(t *testing.T) {
	rs := ruleset.Default()
	base := moderateConfig()

	t.Run("exact values", func(t *testing.T) {
		cfg := base
		cfg.Risk = offer.RiskPayAfterResults
		cfg.Proof = offer.ProofNone
		if got := scoreRiskAlignment(cfg, rs); got != 8 {
			t.Errorf("pay_after_results on no proof = %d, want 8", got)
		}
		cfg.Risk = offer.RiskConditional
		cfg.Proof = offer.ProofModerate
		if got := scoreRiskAlignment(cfg, rs); got != 14 {
			t.Errorf("conditional on moderate proof = %d, want 14", got)
		}
	})

	t.Run("more proof never lowers the score", func(t *testing.T) {
		for _, risk := range offer.RiskModels() {
			prev := -1
			for _, proof := range offer.ProofStrengths() {
				cfg := base
				cfg.Risk = risk
				cfg.Proof = proof
				got := scoreRiskAlignment(cfg, rs)
				if got < prev {
					t.Fatalf("risk %s: score fell from %d to %d at proof %s", risk, prev, got, proof)
				}
				prev = got
			}
		}
	})
}

func TestScoreFulfillmentScalability(t *testing.T) {
	rs := ruleset.Default()
	base := moderateConfig()
	tests := []struct {
		name        string
		fulfillment offer.FulfillmentModel
		size        offer.CustomerSize
		want        int
	}{
		{"staffing buckles under enterprise load", offer.FulfillStaffing, offer.SizeEnterprise, 2},
		{"managed service under enterprise load", offer.FulfillManagedService, offer.SizeEnterprise, 5},
		{"staffing without the load penalty", offer.FulfillStaffing, offer.SizeSMB, 5},
		{"advisory earns the niche bonus downmarket", offer.FulfillAdvisory, offer.SizeSMB, 14},
		{"advisory flat at midmarket", offer.FulfillAdvisory, offer.SizeMidmarket, 12},
		{"software scales anywhere", offer.FulfillSoftware, offer.SizeEnterprise, 18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.Fulfillment = tt.fulfillment
			cfg.Size = tt.size
			if got := scoreFulfillmentScalability(cfg, rs); got != tt.want {
				t.Errorf("scoreFulfillmentScalability() = %d, want %d", got, tt.want)
			}
		})
	}
}

// Each dimension reads only a slice of the configuration, so its whole
// input space enumerates cheaply.
func TestLatentBoundsExhaustive(t *testing.T) {
	rs := ruleset.Default()
	base := moderateConfig()

	t.Run("proof_to_promise", func(t *testing.T) {
		for _, promise := range offer.Promises() {
			for _, proof := range offer.ProofStrengths() {
				for _, targeting := range offer.TargetingSpecificities() {
					cfg := base
					cfg.Promise = promise
					cfg.Proof = proof
					cfg.Targeting = targeting
					if s := scoreProofToPromise(cfg, rs); s < 0 || s > 20 {
						t.Fatalf("%s %s %s: score %d out of range", promise, proof, targeting, s)
					}
				}
			}
		}
	})

	t.Run("economic_feasibility", func(t *testing.T) {
		for _, pricing := range allPricings() {
			for _, size := range offer.CustomerSizes() {
				for _, maturity := range offer.CustomerMaturities() {
					for _, risk := range offer.RiskModels() {
						cfg := base
						cfg.Pricing = pricing
						cfg.Size = size
						cfg.Maturity = maturity
						cfg.Risk = risk
						if class := econFrictionClass(cfg, rs); class < 1 || class > 5 {
							t.Fatalf("%+v: friction class %d out of range", cfg, class)
						}
						if s := scoreEconomicFeasibility(cfg, rs); s < 0 || s > 20 {
							t.Fatalf("%+v: score %d out of range", cfg, s)
						}
					}
				}
			}
		}
	})

	t.Run("risk_alignment", func(t *testing.T) {
		for _, risk := range offer.RiskModels() {
			for _, proof := range offer.ProofStrengths() {
				cfg := base
				cfg.Risk = risk
				cfg.Proof = proof
				if s := scoreRiskAlignment(cfg, rs); s < 0 || s > 20 {
					t.Fatalf("%s/%s: score %d out of range", risk, proof, s)
				}
			}
		}
	})

	t.Run("fulfillment_scalability", func(t *testing.T) {
		for _, model := range offer.FulfillmentModels() {
			for _, size := range offer.CustomerSizes() {
				cfg := base
				cfg.Fulfillment = model
				cfg.Size = size
				if s := scoreFulfillmentScalability(cfg, rs); s < 0 || s > 20 {
					t.Fatalf("%s/%s: score %d out of range", model, size, s)
				}
			}
		}
	})

	t.Run("channel_fit and targeting_strength", func(t *testing.T) {
		for _, ot := range offer.OfferTypes() {
			if s := rs.Band(ot).Score; s < 0 || s > 20 {
				t.Fatalf("%s: channel score %d out of range", ot, s)
			}
		}
		for _, targeting := range offer.TargetingSpecificities() {
			cfg := base
			cfg.Targeting = targeting
			if s := scoreLatent(cfg, rs)[ruleset.DimTargetingStrength]; s < 0 || s > 20 {
				t.Fatalf("%s: targeting score %d out of range", targeting, s)
			}
		}
	})
}

func TestLookupPanicsOnMissingKey(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("lookup() did not panic on a missing key")
		}
	}()
	lookup(map[string]int{"a": 1}, "b", "test_table")
}
