package offer

import "fmt"

// OfferType is the service category an offer belongs to. Channel
// compatibility for each type is rule-set data, not a property here.
type OfferType string

const (
	TypeLeadGeneration     OfferType = "lead_generation"
	TypeSalesDevelopment   OfferType = "sales_development"
	TypeRecruiting         OfferType = "recruiting"
	TypeManagedIT          OfferType = "managed_it"
	TypeB2BSaaS            OfferType = "b2b_saas"
	TypeConsulting         OfferType = "consulting"
	TypeMarketingAgency    OfferType = "marketing_agency"
	TypeCreativeProduction OfferType = "creative_production"
	TypeCoachingTraining   OfferType = "coaching_training"
	TypeLocalConsumer      OfferType = "local_consumer"
	TypeEcommerceDTC       OfferType = "ecommerce_dtc"
)

// OfferTypes lists the declared domain in a fixed order.
func OfferTypes() []OfferType {
	return []OfferType{
		TypeLeadGeneration, TypeSalesDevelopment, TypeRecruiting, TypeManagedIT,
		TypeB2BSaaS, TypeConsulting, TypeMarketingAgency, TypeCreativeProduction,
		TypeCoachingTraining, TypeLocalConsumer, TypeEcommerceDTC,
	}
}

func (t OfferType) Valid() bool { return contains(OfferTypes(), t) }

// Promise is the outcome category the offer commits to.
type Promise string

const (
	PromiseRevenueGrowth        Promise = "revenue_growth"
	PromiseCostReduction        Promise = "cost_reduction"
	PromiseMeetingsVolume       Promise = "meetings_volume"
	PromiseHiringOutcomes       Promise = "hiring_outcomes"
	PromiseBrandAwareness       Promise = "brand_awareness"
	PromiseDeliverablesCapacity Promise = "deliverables_capacity"
)

func Promises() []Promise {
	return []Promise{
		PromiseRevenueGrowth, PromiseCostReduction, PromiseMeetingsVolume,
		PromiseHiringOutcomes, PromiseBrandAwareness, PromiseDeliverablesCapacity,
	}
}

func (p Promise) Valid() bool { return contains(Promises(), p) }

// Vertical is the buyer industry the offer targets.
type Vertical string

const (
	VerticalSaaS                 Vertical = "saas"
	VerticalAgencies             Vertical = "agencies"
	VerticalEcommerceBrands      Vertical = "ecommerce_brands"
	VerticalFinancialServices    Vertical = "financial_services"
	VerticalHealthcare           Vertical = "healthcare"
	VerticalManufacturing        Vertical = "manufacturing"
	VerticalProfessionalServices Vertical = "professional_services"
	VerticalRealEstate           Vertical = "real_estate"
)

func Verticals() []Vertical {
	return []Vertical{
		VerticalSaaS, VerticalAgencies, VerticalEcommerceBrands,
		VerticalFinancialServices, VerticalHealthcare, VerticalManufacturing,
		VerticalProfessionalServices, VerticalRealEstate,
	}
}

func (v Vertical) Valid() bool { return contains(Verticals(), v) }

// CustomerSize is the target company size band, ordered micro through enterprise.
type CustomerSize string

const (
	SizeMicro      CustomerSize = "micro"
	SizeSMB        CustomerSize = "smb"
	SizeMidmarket  CustomerSize = "midmarket"
	SizeEnterprise CustomerSize = "enterprise"
)

func CustomerSizes() []CustomerSize {
	return []CustomerSize{SizeMicro, SizeSMB, SizeMidmarket, SizeEnterprise}
}

func (s CustomerSize) Valid() bool { return contains(CustomerSizes(), s) }

// Ordinal returns 1 for micro through 4 for enterprise.
func (s CustomerSize) Ordinal() int {
	switch s {
	case SizeMicro:
		return 1
	case SizeSMB:
		return 2
	case SizeMidmarket:
		return 3
	case SizeEnterprise:
		return 4
	}
	panic(fmt.Sprintf("offer: customer size %q outside declared domain", s))
}

// CustomerMaturity is the target company lifecycle stage.
type CustomerMaturity string

const (
	MaturityStartup     CustomerMaturity = "startup"
	MaturityGrowing     CustomerMaturity = "growing"
	MaturityEstablished CustomerMaturity = "established"
	MaturityMature      CustomerMaturity = "mature"
)

func CustomerMaturities() []CustomerMaturity {
	return []CustomerMaturity{MaturityStartup, MaturityGrowing, MaturityEstablished, MaturityMature}
}

func (m CustomerMaturity) Valid() bool { return contains(CustomerMaturities(), m) }

// Ordinal returns 1 for startup through 4 for mature.
func (m CustomerMaturity) Ordinal() int {
	switch m {
	case MaturityStartup:
		return 1
	case MaturityGrowing:
		return 2
	case MaturityEstablished:
		return 3
	case MaturityMature:
		return 4
	}
	panic(fmt.Sprintf("offer: customer maturity %q outside declared domain", m))
}

// TargetingSpecificity is how narrowly the ideal customer profile is drawn.
type TargetingSpecificity string

const (
	TargetingBroad  TargetingSpecificity = "broad"
	TargetingNarrow TargetingSpecificity = "narrow"
	TargetingExact  TargetingSpecificity = "exact"
)

func TargetingSpecificities() []TargetingSpecificity {
	return []TargetingSpecificity{TargetingBroad, TargetingNarrow, TargetingExact}
}

func (t TargetingSpecificity) Valid() bool { return contains(TargetingSpecificities(), t) }

// Ordinal returns 1 for broad through 3 for exact.
func (t TargetingSpecificity) Ordinal() int {
	switch t {
	case TargetingBroad:
		return 1
	case TargetingNarrow:
		return 2
	case TargetingExact:
		return 3
	}
	panic(fmt.Sprintf("offer: targeting specificity %q outside declared domain", t))
}

// PricingStructure is the commercial shape of the offer. It is the
// discriminant for which pricing detail fields are required.
type PricingStructure string

const (
	PricingOneTime     PricingStructure = "one_time"
	PricingRecurring   PricingStructure = "recurring"
	PricingPerformance PricingStructure = "performance"
	PricingHybrid      PricingStructure = "hybrid"
)

func PricingStructures() []PricingStructure {
	return []PricingStructure{PricingOneTime, PricingRecurring, PricingPerformance, PricingHybrid}
}

func (p PricingStructure) Valid() bool { return contains(PricingStructures(), p) }

// SuccessBased reports whether compensation depends on delivered outcomes.
func (p PricingStructure) SuccessBased() bool {
	return p == PricingPerformance || p == PricingHybrid
}

// RecurringTier is a monthly price band. Bands are ordered; Index returns
// the zero-based band position used by the viability tables.
type RecurringTier string

const (
	TierUnder1K RecurringTier = "under_1k"
	Tier1KTo3K  RecurringTier = "1k_3k"
	Tier3KTo8K  RecurringTier = "3k_8k"
	Tier8KTo20K RecurringTier = "8k_20k"
	TierOver20K RecurringTier = "over_20k"
)

func RecurringTiers() []RecurringTier {
	return []RecurringTier{TierUnder1K, Tier1KTo3K, Tier3KTo8K, Tier8KTo20K, TierOver20K}
}

func (t RecurringTier) Valid() bool { return contains(RecurringTiers(), t) }

func (t RecurringTier) Index() int {
	for i, v := range RecurringTiers() {
		if v == t {
			return i
		}
	}
	panic(fmt.Sprintf("offer: recurring tier %q outside declared domain", t))
}

// ProjectTier is a one-time engagement price band.
type ProjectTier string

const (
	ProjectUnder5K  ProjectTier = "under_5k"
	Project5KTo15K  ProjectTier = "5k_15k"
	Project15KTo50K ProjectTier = "15k_50k"
	ProjectOver50K  ProjectTier = "over_50k"
)

func ProjectTiers() []ProjectTier {
	return []ProjectTier{ProjectUnder5K, Project5KTo15K, Project15KTo50K, ProjectOver50K}
}

func (t ProjectTier) Valid() bool { return contains(ProjectTiers(), t) }

func (t ProjectTier) Index() int {
	for i, v := range ProjectTiers() {
		if v == t {
			return i
		}
	}
	panic(fmt.Sprintf("offer: project tier %q outside declared domain", t))
}

// PerformanceBasis is the unit a performance component is paid on.
type PerformanceBasis string

const (
	BasisPerLead      PerformanceBasis = "per_lead"
	BasisPerMeeting   PerformanceBasis = "per_meeting"
	BasisPerSale      PerformanceBasis = "per_sale"
	BasisRevenueShare PerformanceBasis = "revenue_share"
)

func PerformanceBases() []PerformanceBasis {
	return []PerformanceBasis{BasisPerLead, BasisPerMeeting, BasisPerSale, BasisRevenueShare}
}

func (b PerformanceBasis) Valid() bool { return contains(PerformanceBases(), b) }

// DownstreamPaid reports whether payment lands after the buyer's own
// outcome, rather than per delivered unit of activity.
func (b PerformanceBasis) DownstreamPaid() bool {
	return b == BasisPerSale || b == BasisRevenueShare
}

// CompensationTier sizes the performance component relative to market norms.
type CompensationTier string

const (
	CompLight    CompensationTier = "light"
	CompStandard CompensationTier = "standard"
	CompPremium  CompensationTier = "premium"
)

func CompensationTiers() []CompensationTier {
	return []CompensationTier{CompLight, CompStandard, CompPremium}
}

func (c CompensationTier) Valid() bool { return contains(CompensationTiers(), c) }

// RiskModel is who carries delivery risk.
type RiskModel string

const (
	RiskNone            RiskModel = "none"
	RiskConditional     RiskModel = "conditional"
	RiskFullRefund      RiskModel = "full_refund"
	RiskPayAfterResults RiskModel = "pay_after_results"
)

func RiskModels() []RiskModel {
	return []RiskModel{RiskNone, RiskConditional, RiskFullRefund, RiskPayAfterResults}
}

func (r RiskModel) Valid() bool { return contains(RiskModels(), r) }

// FulfillmentModel is how the promised outcome gets delivered, ordered by
// how much incremental labor each new customer costs.
type FulfillmentModel string

const (
	FulfillStaffing       FulfillmentModel = "staffing"
	FulfillManagedService FulfillmentModel = "managed_service"
	FulfillAdvisory       FulfillmentModel = "advisory"
	FulfillProductized    FulfillmentModel = "productized_service"
	FulfillSoftware       FulfillmentModel = "software_platform"
)

func FulfillmentModels() []FulfillmentModel {
	return []FulfillmentModel{
		FulfillStaffing, FulfillManagedService, FulfillAdvisory,
		FulfillProductized, FulfillSoftware,
	}
}

func (f FulfillmentModel) Valid() bool { return contains(FulfillmentModels(), f) }

// Ordinal returns 1 for staffing through 5 for software_platform.
func (f FulfillmentModel) Ordinal() int {
	for i, v := range FulfillmentModels() {
		if v == f {
			return i + 1
		}
	}
	panic(fmt.Sprintf("offer: fulfillment model %q outside declared domain", f))
}

// LaborHeavy reports whether each new customer costs near-linear labor.
func (f FulfillmentModel) LaborHeavy() bool {
	return f == FulfillStaffing || f == FulfillManagedService
}

// ProofStrength grades the outcome evidence behind the promise.
type ProofStrength string

const (
	ProofNone           ProofStrength = "none"
	ProofAnecdotal      ProofStrength = "anecdotal"
	ProofModerate       ProofStrength = "moderate"
	ProofStrong         ProofStrength = "strong"
	ProofCategoryKiller ProofStrength = "category_killer"
)

func ProofStrengths() []ProofStrength {
	return []ProofStrength{ProofNone, ProofAnecdotal, ProofModerate, ProofStrong, ProofCategoryKiller}
}

func (p ProofStrength) Valid() bool { return contains(ProofStrengths(), p) }

// Level returns 0 for none through 4 for category_killer.
func (p ProofStrength) Level() int {
	for i, v := range ProofStrengths() {
		if v == p {
			return i
		}
	}
	panic(fmt.Sprintf("offer: proof strength %q outside declared domain", p))
}

func contains[T comparable](domain []T, v T) bool {
	for _, d := range domain {
		if d == v {
			return true
		}
	}
	return false
}
