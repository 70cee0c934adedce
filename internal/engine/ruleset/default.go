package ruleset

import "offerfit-backend/internal/offer"

// Default returns the authoritative rule set. Superseded versions live in
// test fixtures only; stored evaluations carry the version they were scored
// under so old results stay interpretable.
func Default() *RuleSet {
	return &RuleSet{
		Version: "2025.1",

		ChannelBands: map[offer.OfferType]ChannelBand{
			offer.TypeLeadGeneration:     {Score: 16, Class: ChannelCompatible},
			offer.TypeSalesDevelopment:   {Score: 16, Class: ChannelCompatible},
			offer.TypeRecruiting:         {Score: 16, Class: ChannelCompatible},
			offer.TypeManagedIT:          {Score: 16, Class: ChannelCompatible},
			offer.TypeB2BSaaS:            {Score: 16, Class: ChannelCompatible},
			offer.TypeConsulting:         {Score: 14, Class: ChannelConditional},
			offer.TypeMarketingAgency:    {Score: 14, Class: ChannelConditional},
			offer.TypeCreativeProduction: {Score: 14, Class: ChannelConditional},
			offer.TypeCoachingTraining:   {Score: 14, Class: ChannelConditional},
			offer.TypeLocalConsumer:      {Score: 6, Class: ChannelIncompatible},
			offer.TypeEcommerceDTC:       {Score: 6, Class: ChannelIncompatible},
		},
		FallbackBand: ChannelBand{Score: 12, Class: ChannelUnclassified},

		PromiseDemand: map[offer.Promise]int{
			offer.PromiseRevenueGrowth:        3,
			offer.PromiseCostReduction:        2,
			offer.PromiseMeetingsVolume:       2,
			offer.PromiseHiringOutcomes:       2,
			offer.PromiseBrandAwareness:       2,
			offer.PromiseDeliverablesCapacity: 1,
		},
		ProofLadder:           ProofLadder{Exceeded: 18, Met: 15, GapOne: 9, GapWide: 4},
		BroadWeakProofPenalty: 3,
		FocusedProofBonus:     2,

		FrictionScores: map[int]int{1: 19, 2: 15, 3: 11, 4: 7, 5: 3},
		EconBaseClass: map[offer.PricingStructure]int{
			offer.PricingPerformance: 1,
			offer.PricingHybrid:      3,
			offer.PricingOneTime:     3,
			offer.PricingRecurring:   4,
		},

		RiskTable: map[offer.RiskModel]ProofBuckets{
			offer.RiskNone:            {Weak: 4, Moderate: 10, Strong: 16},
			offer.RiskConditional:     {Weak: 11, Moderate: 14, Strong: 16},
			offer.RiskFullRefund:      {Weak: 7, Moderate: 12, Strong: 15},
			offer.RiskPayAfterResults: {Weak: 8, Moderate: 13, Strong: 18},
		},

		FulfillmentBase: map[offer.FulfillmentModel]int{
			offer.FulfillSoftware:       18,
			offer.FulfillProductized:    15,
			offer.FulfillAdvisory:       12,
			offer.FulfillManagedService: 8,
			offer.FulfillStaffing:       5,
		},
		EnterpriseLoadPenalty: 3,
		AdvisoryNicheBonus:    2,

		TargetingScores: map[offer.TargetingSpecificity]int{
			offer.TargetingBroad:  7,
			offer.TargetingNarrow: 14,
			offer.TargetingExact:  19,
		},

		HardGates: []HardGate{
			{ID: GateChannelIncompatible, Dimension: DimChannelFit, Kind: GateKindFlag},
			{ID: GateProofGap, Dimension: DimProofToPromise, Kind: GateKindThreshold, Threshold: 8},
			{ID: GateEconomicFriction, Dimension: DimEconomicFeasibility, Kind: GateKindThreshold, Threshold: 5},
			{ID: GateRiskMisaligned, Dimension: DimRiskAlignment, Kind: GateKindThreshold, Threshold: 6},
			{ID: GateFulfillmentCeiling, Dimension: DimFulfillmentScalability, Kind: GateKindThreshold, Threshold: 5},
			{ID: GateStructuralReach, Dimension: DimTargetingStrength, Kind: GateKindCompound},
		},
		SoftGates: []SoftGate{
			{ID: SoftEconMarginal, Pressure: 4},
			{ID: SoftVolumeProofStrain, Pressure: 3},
			{ID: SoftHybridMicroBurden, Pressure: 4},
			{ID: SoftConditionalLowProof, Pressure: 3},
		},
		EconMarginalBand: BandRange{Min: 6, Max: 9},
		HardGateCap:      49,
		SoftGateCount:    3,
		SoftGateCap:      64,
		EconCapScore:     7,
		EconCap:          69,

		MaxPoints:  120,
		ModerateAt: 50,
		StrongAt:   75,

		EligibleBelowPct: 65,
		MedianGapPct:     10,

		ViolationFloor: 4,
		ViolationCategories: map[ViolationID]FixCategory{
			ViolationPainUrgency: CategoryMessaging,
			ViolationBuyingPower: CategoryTargeting,
			ViolationPricingFit:  CategoryPricing,
			ViolationExecution:   CategoryFulfillment,
			ViolationRiskPosture: CategoryRisk,
			ViolationOutboundFit: CategoryChannel,
		},
		PainBase: map[offer.Vertical]int{
			offer.VerticalSaaS:                 7,
			offer.VerticalAgencies:             6,
			offer.VerticalEcommerceBrands:      5,
			offer.VerticalFinancialServices:    6,
			offer.VerticalHealthcare:           5,
			offer.VerticalManufacturing:        5,
			offer.VerticalProfessionalServices: 6,
			offer.VerticalRealEstate:           4,
		},
		PainPromiseShift: map[offer.Promise]int{
			offer.PromiseRevenueGrowth:        2,
			offer.PromiseCostReduction:        1,
			offer.PromiseMeetingsVolume:       1,
			offer.PromiseHiringOutcomes:       1,
			offer.PromiseBrandAwareness:       -2,
			offer.PromiseDeliverablesCapacity: 0,
		},
		PowerBase: map[offer.CustomerSize]int{
			offer.SizeMicro:      3,
			offer.SizeSMB:        5,
			offer.SizeMidmarket:  7,
			offer.SizeEnterprise: 9,
		},
		PowerMaturityShift: map[offer.CustomerMaturity]int{
			offer.MaturityStartup:     -2,
			offer.MaturityGrowing:     0,
			offer.MaturityEstablished: 1,
			offer.MaturityMature:      1,
		},
		ExecutionBase: map[offer.FulfillmentModel]int{
			offer.FulfillSoftware:       8,
			offer.FulfillProductized:    7,
			offer.FulfillAdvisory:       6,
			offer.FulfillManagedService: 5,
			offer.FulfillStaffing:       4,
		},
		PostureTable: map[offer.RiskModel]ProofBuckets{
			offer.RiskNone:            {Weak: 3, Moderate: 6, Strong: 8},
			offer.RiskConditional:     {Weak: 5, Moderate: 7, Strong: 8},
			offer.RiskFullRefund:      {Weak: 3, Moderate: 6, Strong: 8},
			offer.RiskPayAfterResults: {Weak: 2, Moderate: 6, Strong: 9},
		},
		OutboundBase: map[ChannelClass]int{
			ChannelCompatible:   7,
			ChannelConditional:  5,
			ChannelIncompatible: 2,
			ChannelUnclassified: 4,
		},
		OutboundTargetingShift: map[offer.TargetingSpecificity]int{
			offer.TargetingBroad:  -2,
			offer.TargetingNarrow: 1,
			offer.TargetingExact:  2,
		},

		ViableBands: map[offer.CustomerSize][5]BandRange{
			offer.SizeMicro:      {{0, 1}, {0, 1}, {0, 2}, {0, 2}, {0, 2}},
			offer.SizeSMB:        {{0, 1}, {0, 2}, {1, 2}, {1, 3}, {1, 3}},
			offer.SizeMidmarket:  {{1, 2}, {1, 2}, {1, 3}, {2, 3}, {2, 4}},
			offer.SizeEnterprise: {{1, 2}, {1, 3}, {2, 3}, {2, 4}, {3, 4}},
		},
		ProjectMonthly: map[offer.ProjectTier]int{
			offer.ProjectUnder5K:  0,
			offer.Project5KTo15K:  1,
			offer.Project15KTo50K: 2,
			offer.ProjectOver50K:  3,
		},

		ChannelBanPhrases: []string{
			"drop outbound", "abandon outbound", "abandon cold outreach",
			"stop cold outreach", "switch channel", "switch channels",
			"move to inbound", "rely on inbound", "paid ads instead",
			"replace outbound", "quit outbound",
		},
		StructuralWords: []string{
			"switch", "change", "shift", "restructure", "pivot", "replace",
		},
		CoreDims: []Dimension{
			DimChannelFit, DimProofToPromise, DimEconomicFeasibility, DimRiskAlignment,
		},
		LocalOptimumPct: 70,
		HealthyDimPct:   50,

		Catalog:         defaultCatalog(),
		DimensionFixes:  defaultDimensionFixes(),
		CauseFixes:      defaultCauseFixes(),
		PricingFixes:    defaultPricingFixes(),
		CertaintyFixes:  []FixID{FixCollectOutcomeEvidence, FixNarrowTargeting},
		AdvisoryAllowed: []FixID{FixPackageAdvisorySprints},
		CauseWeights: map[CauseID]float64{
			CauseChannelMisfit:      1.0,
			CauseProofDeficiency:    0.9,
			CausePricingMismatch:    0.8,
			CauseRiskImbalance:      0.7,
			CauseTargetingDiffusion: 0.65,
			CauseScalabilityStrain:  0.6,
		},

		DimensionReasons: map[Dimension]string{
			DimChannelFit:             "this offer category does not match how cold outbound buyers buy",
			DimProofToPromise:         "the promise outruns the proof behind it",
			DimEconomicFeasibility:    "the pricing creates more purchase friction than this segment absorbs",
			DimRiskAlignment:          "the risk stance does not match the evidence on hand",
			DimFulfillmentScalability: "delivery would buckle under the volume outbound generates",
			DimTargetingStrength:      "the targeting is too diffuse for outreach to land as relevant",
		},
		CauseReasons: map[CauseID]string{
			CauseChannelMisfit:      "the offer is built for buyers cold outreach cannot reach",
			CauseProofDeficiency:    "there is no verifiable outcome evidence behind the promise yet",
			CausePricingMismatch:    "the price sits outside what this segment can absorb",
			CauseRiskImbalance:      "the guarantee stance asks for trust the proof does not earn",
			CauseTargetingDiffusion: "the target definition spreads outreach across buyers with unlike pains",
			CauseScalabilityStrain:  "the delivery model cannot absorb won deals at outbound pace",
		},

		TopKDefault: 3,
		TopKMax:     5,
	}
}

func defaultCatalog() []Fix {
	return []Fix{
		{
			ID: FixCollectOutcomeEvidence, Dimension: DimProofToPromise, Category: CategoryProof,
			Headline: "Document three recent client outcomes with verifiable numbers",
			Steps: []string{
				"Pick the three strongest recent engagements",
				"Write each up as metric, timeframe, and customer context",
				"Get written permission to name the customer or an agreed descriptor",
			},
			EndState:    "Three citable outcomes that survive a skeptical first call",
			Feasibility: 4, FirstOrder: true,
		},
		{
			ID: FixScalePromiseToProof, Dimension: DimProofToPromise, Category: CategoryProof,
			Headline: "Scale the promise back to what the evidence supports",
			Steps: []string{
				"Restate the offer around the outcome you can already evidence",
				"Move the bigger claim into an upside note instead of the headline",
			},
			EndState:    "A headline promise no prospect can call a bluff",
			Feasibility: 5, FirstOrder: true,
		},
		{
			ID: FixRunProofPilot, Dimension: DimProofToPromise, Category: CategoryProof,
			Headline: "Run a short paid pilot cohort to manufacture proof",
			Steps: []string{
				"Offer a reduced-scope pilot to five well-fitting accounts",
				"Instrument the outcome metric from day one",
				"Turn the results into written case studies within the quarter",
			},
			EndState:    "Fresh outcome data from named accounts",
			Feasibility: 3, Strategic: 3, FirstOrder: true,
		},
		{
			ID: FixNarrowTargeting, Dimension: DimTargetingStrength, Category: CategoryTargeting,
			Headline: "Narrow the target to one vertical and one size band",
			Steps: []string{
				"Pick the vertical where past outcomes cluster",
				"Constrain list building to that vertical and size band",
				"Rewrite the first-line relevance hook for that segment",
			},
			EndState:    "A list where every account recognizes itself in the pitch",
			Feasibility: 5, FirstOrder: true,
		},
		{
			ID: FixBuildNamedAccountList, Dimension: DimTargetingStrength, Category: CategoryTargeting,
			Headline: "Build a named-account list for the current segment",
			Steps: []string{
				"Pull every account matching the profile into one list",
				"Rank accounts by evidence of the pain the offer removes",
			},
			EndState:    "Outreach runs against named accounts, not a definition",
			Feasibility: 4,
		},
		{
			ID: FixSharpenFirstLine, Dimension: DimTargetingStrength, Category: CategoryMessaging,
			Headline: "Lead outreach with the strongest verified number",
			Steps: []string{
				"Put the best proof metric in the opening line",
				"Cut every claim the evidence does not back",
			},
			EndState:    "Outreach that earns a reply on evidence, not adjectives",
			Feasibility: 5,
		},
		{
			ID: FixSwitchConditionalGuarantee, Dimension: DimRiskAlignment, Category: CategoryRisk,
			Headline: "Switch to a conditional guarantee tied to a scoped outcome",
			Steps: []string{
				"Define the smallest outcome you can guarantee on current proof",
				"Attach qualifying conditions the buyer controls",
				"Replace the current risk stance in the offer language",
			},
			EndState:    "Risk posture that matches the evidence instead of overreaching it",
			Feasibility: 4, Strategic: 2, FirstOrder: true,
		},
		{
			ID: FixTightenGuaranteeTerms, Dimension: DimRiskAlignment, Category: CategoryRisk,
			Headline: "Tighten the qualifying conditions on the existing guarantee",
			Steps: []string{
				"List the failure modes the current terms leave open",
				"Add entry criteria the buyer must meet before the guarantee applies",
			},
			EndState:    "A guarantee that only triggers when delivery had a fair shot",
			Feasibility: 5,
		},
		{
			ID: FixRestructureHybridPricing, Dimension: DimEconomicFeasibility, Category: CategoryPricing,
			Headline: "Restructure pricing into a retainer plus performance hybrid",
			Steps: []string{
				"Set the retainer at cost-recovery level for the segment",
				"Move the upside into a per-outcome component",
			},
			EndState:    "Cash flow that covers delivery while upside stays success-linked",
			Feasibility: 3, Strategic: 4, FirstOrder: true,
		},
		{
			ID: FixRaisePriceFloor, Dimension: DimEconomicFeasibility, Category: CategoryPricing,
			Headline: "Raise the entry price into the viable band for this segment",
			Steps: []string{
				"Reprice new deals at the bottom of the viable band",
				"Grandfather current customers to avoid churn shock",
			},
			EndState:    "Unit economics that survive the cost of outbound acquisition",
			Feasibility: 3, Strategic: 2, FirstOrder: true, PriceMove: 1,
		},
		{
			ID: FixLowerEntryTier, Dimension: DimEconomicFeasibility, Category: CategoryPricing,
			Headline: "Stage the entry price down into the segment's viable band",
			Steps: []string{
				"Split the offer into an entry scope priced inside the band",
				"Path the full scope as an expansion step after the first win",
			},
			EndState:    "A first yes the segment can sign without board approval",
			Feasibility: 4, Strategic: 2, FirstOrder: true, PriceMove: -1,
		},
		{
			ID: FixAnchorPriceToOutcome, Dimension: DimEconomicFeasibility, Category: CategoryPricing,
			Headline: "Anchor the current price to a quantified outcome",
			Steps: []string{
				"Open pricing talks with the cost of the unsolved problem",
				"Show the payback window against the promised metric",
			},
			EndState:    "A price that reads as a fraction of the outcome, not a fee",
			Feasibility: 5,
		},
		{
			ID: FixShortenPaybackWindow, Dimension: DimEconomicFeasibility, Category: CategoryPricing,
			Headline: "Front-load a measurable win inside the first thirty days",
			Steps: []string{
				"Rework onboarding to deliver one provable win fast",
				"Report that win against the eventual payback story",
			},
			EndState:    "Buyers that see value before the second invoice",
			Feasibility: 4,
		},
		{
			ID: FixProductizeDelivery, Dimension: DimFulfillmentScalability, Category: CategoryFulfillment,
			Headline: "Shift delivery toward a productized service",
			Steps: []string{
				"Freeze scope into a fixed deliverable set",
				"Cut the custom work that does not move the promised metric",
				"Template the delivery workflow end to end",
			},
			EndState:    "Each new customer costs a fraction of the first one",
			Feasibility: 2, Strategic: 5, FirstOrder: true,
		},
		{
			ID: FixDeepenAutomation, Dimension: DimFulfillmentScalability, Category: CategoryFulfillment,
			Headline: "Automate the highest-touch step of current delivery",
			Steps: []string{
				"Time-track one delivery cycle to find the touch hotspot",
				"Automate or template that single step first",
			},
			EndState:    "Delivery capacity that grows without headcount",
			Feasibility: 4, Strategic: 3,
		},
		{
			ID: FixCodifyPlaybooks, Dimension: DimFulfillmentScalability, Category: CategoryFulfillment,
			Headline: "Codify delivery into playbooks a new hire can run",
			Steps: []string{
				"Write the runbook for the two most common engagement shapes",
				"Pilot the runbook with someone outside the founding team",
			},
			EndState:    "Delivery quality that stops depending on who delivers",
			Feasibility: 4,
		},
		{
			ID: FixPackageAdvisorySprints, Dimension: DimFulfillmentScalability, Category: CategoryFulfillment,
			Headline: "Package advisory time into fixed-scope sprints",
			Steps: []string{
				"Define a two-week sprint with a named deliverable",
				"Sell sprints in blocks instead of open-ended hours",
			},
			EndState:    "Advisory capacity that becomes a unit you can forecast",
			Feasibility: 4, Strategic: 2, FirstOrder: true,
		},
		{
			ID: FixReframeBusinessBuyer, Dimension: DimChannelFit, Category: CategoryChannel,
			Headline: "Reframe the offer around a business buyer who owns budget",
			Steps: []string{
				"Identify the commercial operator your outcome actually serves",
				"Rebuild the promise in that operator's revenue terms",
				"Validate the reframed offer in ten discovery calls",
			},
			EndState:    "An offer a cold email can put in front of a decision maker",
			Feasibility: 2, Strategic: 5, FirstOrder: true,
		},
		{
			ID: FixCarveB2BWedge, Dimension: DimChannelFit, Category: CategoryChannel,
			Headline: "Carve out the business-facing slice of the current offer",
			Steps: []string{
				"List the parts of delivery already sold to businesses",
				"Stand that slice up as its own offer with its own proof",
			},
			EndState:    "A wedge offer that fits how outbound buyers buy",
			Feasibility: 3, Strategic: 4, FirstOrder: true,
		},
	}
}

func defaultDimensionFixes() map[Dimension][]FixID {
	return map[Dimension][]FixID{
		DimChannelFit:     {FixReframeBusinessBuyer, FixCarveB2BWedge},
		DimProofToPromise: {FixCollectOutcomeEvidence, FixScalePromiseToProof, FixRunProofPilot},
		DimEconomicFeasibility: {
			FixRestructureHybridPricing, FixRaisePriceFloor, FixLowerEntryTier,
			FixAnchorPriceToOutcome, FixShortenPaybackWindow,
		},
		DimRiskAlignment:          {FixSwitchConditionalGuarantee, FixTightenGuaranteeTerms},
		DimFulfillmentScalability: {FixProductizeDelivery, FixPackageAdvisorySprints, FixDeepenAutomation, FixCodifyPlaybooks},
		DimTargetingStrength:      {FixNarrowTargeting, FixBuildNamedAccountList, FixSharpenFirstLine},
	}
}

func defaultCauseFixes() map[CauseID][]FixID {
	return map[CauseID][]FixID{
		CauseChannelMisfit:      {FixReframeBusinessBuyer, FixCarveB2BWedge},
		CauseProofDeficiency:    {FixCollectOutcomeEvidence, FixScalePromiseToProof, FixRunProofPilot},
		CausePricingMismatch:    nil, // routed by cash-flow level, see PricingFixes
		CauseRiskImbalance:      {FixSwitchConditionalGuarantee, FixCollectOutcomeEvidence},
		CauseTargetingDiffusion: {FixNarrowTargeting, FixBuildNamedAccountList},
		CauseScalabilityStrain:  {FixProductizeDelivery, FixDeepenAutomation, FixCodifyPlaybooks},
	}
}

func defaultPricingFixes() map[CashFlowLevel][]FixID {
	return map[CashFlowLevel][]FixID{
		CashFlowLow:    {FixRaisePriceFloor, FixRestructureHybridPricing, FixAnchorPriceToOutcome},
		CashFlowMedium: {FixAnchorPriceToOutcome, FixShortenPaybackWindow},
		CashFlowHigh:   {FixLowerEntryTier, FixShortenPaybackWindow},
	}
}
