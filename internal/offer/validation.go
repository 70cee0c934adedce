package offer

import (
	"fmt"
	"strings"
)

// Validate checks that every answered field holds a value from its declared
// domain and that pricing details agree with the chosen structure. Unset
// fields are not errors here; completeness is MissingFields' job.
func (c Configuration) Validate() error {
	if c.OfferType != "" && !c.OfferType.Valid() {
		return domainError("offer_type", c.OfferType, OfferTypes())
	}
	if c.Promise != "" && !c.Promise.Valid() {
		return domainError("promise", c.Promise, Promises())
	}
	if c.Vertical != "" && !c.Vertical.Valid() {
		return domainError("vertical", c.Vertical, Verticals())
	}
	if c.Size != "" && !c.Size.Valid() {
		return domainError("customer_size", c.Size, CustomerSizes())
	}
	if c.Maturity != "" && !c.Maturity.Valid() {
		return domainError("customer_maturity", c.Maturity, CustomerMaturities())
	}
	if c.Targeting != "" && !c.Targeting.Valid() {
		return domainError("targeting_specificity", c.Targeting, TargetingSpecificities())
	}
	if err := c.Pricing.validate(); err != nil {
		return err
	}
	if c.Risk != "" && !c.Risk.Valid() {
		return domainError("risk_model", c.Risk, RiskModels())
	}
	if c.Fulfillment != "" && !c.Fulfillment.Valid() {
		return domainError("fulfillment_model", c.Fulfillment, FulfillmentModels())
	}
	if c.Proof != "" && !c.Proof.Valid() {
		return domainError("proof_strength", c.Proof, ProofStrengths())
	}
	return nil
}

func (p Pricing) validate() error {
	if p.Structure != "" && !p.Structure.Valid() {
		return domainError("pricing.structure", p.Structure, PricingStructures())
	}
	if p.RecurringTier != "" && !p.RecurringTier.Valid() {
		return domainError("pricing.recurring_tier", p.RecurringTier, RecurringTiers())
	}
	if p.ProjectTier != "" && !p.ProjectTier.Valid() {
		return domainError("pricing.project_tier", p.ProjectTier, ProjectTiers())
	}
	if p.RetainerTier != "" && !p.RetainerTier.Valid() {
		return domainError("pricing.retainer_tier", p.RetainerTier, RecurringTiers())
	}
	if p.Basis != "" && !p.Basis.Valid() {
		return domainError("pricing.performance_basis", p.Basis, PerformanceBases())
	}
	if p.Compensation != "" && !p.Compensation.Valid() {
		return domainError("pricing.compensation_tier", p.Compensation, CompensationTiers())
	}
	return p.validateShape()
}

// validateShape rejects detail fields that do not belong to the chosen
// structure, so a client bug cannot smuggle in a tier the engine would
// silently ignore.
func (p Pricing) validateShape() error {
	if p.Structure == "" {
		return nil
	}
	type field struct {
		name string
		set  bool
	}
	var stray []field
	switch p.Structure {
	case PricingRecurring:
		stray = []field{
			{"pricing.project_tier", p.ProjectTier != ""},
			{"pricing.retainer_tier", p.RetainerTier != ""},
			{"pricing.performance_basis", p.Basis != ""},
			{"pricing.compensation_tier", p.Compensation != ""},
		}
	case PricingOneTime:
		stray = []field{
			{"pricing.recurring_tier", p.RecurringTier != ""},
			{"pricing.retainer_tier", p.RetainerTier != ""},
			{"pricing.performance_basis", p.Basis != ""},
			{"pricing.compensation_tier", p.Compensation != ""},
		}
	case PricingPerformance:
		stray = []field{
			{"pricing.recurring_tier", p.RecurringTier != ""},
			{"pricing.project_tier", p.ProjectTier != ""},
			{"pricing.retainer_tier", p.RetainerTier != ""},
		}
	case PricingHybrid:
		stray = []field{
			{"pricing.recurring_tier", p.RecurringTier != ""},
			{"pricing.project_tier", p.ProjectTier != ""},
		}
	}
	for _, f := range stray {
		if f.set {
			return fmt.Errorf("%s does not apply to %s pricing", f.name, p.Structure)
		}
	}
	return nil
}

func domainError[T ~string](path string, got T, domain []T) error {
	opts := make([]string, len(domain))
	for i, d := range domain {
		opts[i] = string(d)
	}
	return fmt.Errorf("%s must be one of %s, got %q", path, strings.Join(opts, ", "), string(got))
}
