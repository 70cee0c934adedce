// Package offer defines the structured description of a sales offer that
// the evaluation engine consumes. Every field is a categorical choice from
// a declared domain; free text never reaches scoring.
package offer

// Pricing carries the commercial detail for a configuration. Which fields
// are required depends on Structure.
type Pricing struct {
	Structure     PricingStructure `json:"structure"`
	RecurringTier RecurringTier    `json:"recurring_tier,omitempty"`
	ProjectTier   ProjectTier      `json:"project_tier,omitempty"`
	RetainerTier  RecurringTier    `json:"retainer_tier,omitempty"`
	Basis         PerformanceBasis `json:"performance_basis,omitempty"`
	Compensation  CompensationTier `json:"compensation_tier,omitempty"`
}

// Configuration is a complete description of one offer. Zero values mean
// the field has not been answered yet.
type Configuration struct {
	OfferType   OfferType            `json:"offer_type"`
	Promise     Promise              `json:"promise"`
	Vertical    Vertical             `json:"vertical"`
	Size        CustomerSize         `json:"customer_size"`
	Maturity    CustomerMaturity     `json:"customer_maturity"`
	Targeting   TargetingSpecificity `json:"targeting_specificity"`
	Pricing     Pricing              `json:"pricing"`
	Risk        RiskModel            `json:"risk_model"`
	Fulfillment FulfillmentModel     `json:"fulfillment_model"`
	Proof       ProofStrength        `json:"proof_strength"`
}

// MissingFields lists every required field that is still unset, including
// the pricing details conditionally required by the chosen structure.
// Field names use the JSON form so they can be echoed to clients directly.
func (c Configuration) MissingFields() []string {
	var missing []string
	if c.OfferType == "" {
		missing = append(missing, "offer_type")
	}
	if c.Promise == "" {
		missing = append(missing, "promise")
	}
	if c.Vertical == "" {
		missing = append(missing, "vertical")
	}
	if c.Size == "" {
		missing = append(missing, "customer_size")
	}
	if c.Maturity == "" {
		missing = append(missing, "customer_maturity")
	}
	if c.Targeting == "" {
		missing = append(missing, "targeting_specificity")
	}
	if c.Pricing.Structure == "" {
		missing = append(missing, "pricing.structure")
	} else {
		missing = append(missing, c.missingPricing()...)
	}
	if c.Risk == "" {
		missing = append(missing, "risk_model")
	}
	if c.Fulfillment == "" {
		missing = append(missing, "fulfillment_model")
	}
	if c.Proof == "" {
		missing = append(missing, "proof_strength")
	}
	return missing
}

func (c Configuration) missingPricing() []string {
	var missing []string
	switch c.Pricing.Structure {
	case PricingRecurring:
		if c.Pricing.RecurringTier == "" {
			missing = append(missing, "pricing.recurring_tier")
		}
	case PricingOneTime:
		if c.Pricing.ProjectTier == "" {
			missing = append(missing, "pricing.project_tier")
		}
	case PricingPerformance:
		if c.Pricing.Basis == "" {
			missing = append(missing, "pricing.performance_basis")
		}
		if c.Pricing.Compensation == "" {
			missing = append(missing, "pricing.compensation_tier")
		}
	case PricingHybrid:
		if c.Pricing.RetainerTier == "" {
			missing = append(missing, "pricing.retainer_tier")
		}
		if c.Pricing.Basis == "" {
			missing = append(missing, "pricing.performance_basis")
		}
		if c.Pricing.Compensation == "" {
			missing = append(missing, "pricing.compensation_tier")
		}
	}
	return missing
}

// Complete reports whether every required field has a value. Completeness
// is a prerequisite for evaluation; validity of each value is checked
// separately by Validate.
func (c Configuration) Complete() bool {
	return len(c.MissingFields()) == 0
}
