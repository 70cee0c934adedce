package ruleset

import (
	"fmt"

	"offerfit-backend/internal/offer"
)

// Validate checks the rule set for internal consistency: every table covers
// its declared domain, scores stay on their scales, and every referenced
// fix exists in the catalog. A rule set that fails here must never score.
func (rs *RuleSet) Validate() error {
	if rs.Version == "" {
		return fmt.Errorf("version must be set")
	}
	for _, t := range offer.OfferTypes() {
		b, ok := rs.ChannelBands[t]
		if !ok {
			return fmt.Errorf("channel_bands missing offer type %q", t)
		}
		if b.Score < 0 || b.Score > 20 {
			return fmt.Errorf("channel_bands[%s].score must be 0..20, got %d", t, b.Score)
		}
	}
	for _, p := range offer.Promises() {
		d, ok := rs.PromiseDemand[p]
		if !ok {
			return fmt.Errorf("promise_demand missing promise %q", p)
		}
		if d < 1 || d > 3 {
			return fmt.Errorf("promise_demand[%s] must be 1..3, got %d", p, d)
		}
	}
	for class := 1; class <= 5; class++ {
		s, ok := rs.FrictionScores[class]
		if !ok {
			return fmt.Errorf("friction_scores missing class %d", class)
		}
		if s < 0 || s > 20 {
			return fmt.Errorf("friction_scores[%d] must be 0..20, got %d", class, s)
		}
	}
	for _, ps := range offer.PricingStructures() {
		c, ok := rs.EconBaseClass[ps]
		if !ok {
			return fmt.Errorf("econ_base_class missing structure %q", ps)
		}
		if c < 1 || c > 5 {
			return fmt.Errorf("econ_base_class[%s] must be 1..5, got %d", ps, c)
		}
	}
	for _, r := range offer.RiskModels() {
		if _, ok := rs.RiskTable[r]; !ok {
			return fmt.Errorf("risk_table missing risk model %q", r)
		}
		if _, ok := rs.PostureTable[r]; !ok {
			return fmt.Errorf("posture_table missing risk model %q", r)
		}
	}
	for _, f := range offer.FulfillmentModels() {
		if _, ok := rs.FulfillmentBase[f]; !ok {
			return fmt.Errorf("fulfillment_base missing model %q", f)
		}
		if _, ok := rs.ExecutionBase[f]; !ok {
			return fmt.Errorf("execution_base missing model %q", f)
		}
	}
	for _, t := range offer.TargetingSpecificities() {
		if _, ok := rs.TargetingScores[t]; !ok {
			return fmt.Errorf("targeting_scores missing specificity %q", t)
		}
		if _, ok := rs.OutboundTargetingShift[t]; !ok {
			return fmt.Errorf("outbound_targeting_shift missing specificity %q", t)
		}
	}
	for _, v := range offer.Verticals() {
		if _, ok := rs.PainBase[v]; !ok {
			return fmt.Errorf("pain_base missing vertical %q", v)
		}
	}
	for _, s := range offer.CustomerSizes() {
		if _, ok := rs.PowerBase[s]; !ok {
			return fmt.Errorf("power_base missing size %q", s)
		}
		bands, ok := rs.ViableBands[s]
		if !ok {
			return fmt.Errorf("viable_bands missing size %q", s)
		}
		for level, r := range bands {
			if r.Min < 0 || r.Max > 4 || r.Min > r.Max {
				return fmt.Errorf("viable_bands[%s][%d] range %d..%d out of order", s, level, r.Min, r.Max)
			}
		}
	}
	for _, m := range offer.CustomerMaturities() {
		if _, ok := rs.PowerMaturityShift[m]; !ok {
			return fmt.Errorf("power_maturity_shift missing maturity %q", m)
		}
	}
	for _, t := range offer.ProjectTiers() {
		band, ok := rs.ProjectMonthly[t]
		if !ok {
			return fmt.Errorf("project_monthly missing tier %q", t)
		}
		if band < 0 || band > 4 {
			return fmt.Errorf("project_monthly[%s] must be 0..4, got %d", t, band)
		}
	}

	if err := rs.validateGates(); err != nil {
		return err
	}
	return rs.validateRouting()
}

func (rs *RuleSet) validateGates() error {
	if len(rs.HardGates) == 0 {
		return fmt.Errorf("hard_gates must not be empty")
	}
	seen := map[GateID]bool{}
	for i, g := range rs.HardGates {
		if seen[g.ID] {
			return fmt.Errorf("hard_gates[%d] duplicates id %q", i, g.ID)
		}
		seen[g.ID] = true
		if g.Kind == GateKindThreshold && (g.Threshold < 0 || g.Threshold > 20) {
			return fmt.Errorf("hard_gates[%d] threshold must be 0..20, got %d", i, g.Threshold)
		}
		if !contains(Dimensions(), g.Dimension) {
			return fmt.Errorf("hard_gates[%d] names unknown dimension %q", i, g.Dimension)
		}
	}
	for i, g := range rs.SoftGates {
		if g.Pressure <= 0 {
			return fmt.Errorf("soft_gates[%d] pressure must be positive, got %d", i, g.Pressure)
		}
	}
	if rs.EconMarginalBand.Min < 0 || rs.EconMarginalBand.Max > 20 || rs.EconMarginalBand.Min > rs.EconMarginalBand.Max {
		return fmt.Errorf("econ_marginal_band %d..%d out of order", rs.EconMarginalBand.Min, rs.EconMarginalBand.Max)
	}
	if !(rs.HardGateCap < rs.SoftGateCap && rs.SoftGateCap < rs.EconCap) {
		return fmt.Errorf("caps must be ordered hard < soft < econ, got %d %d %d",
			rs.HardGateCap, rs.SoftGateCap, rs.EconCap)
	}
	if rs.MaxPoints != 20*len(Dimensions()) {
		return fmt.Errorf("max_points must be %d, got %d", 20*len(Dimensions()), rs.MaxPoints)
	}
	if !(0 < rs.ModerateAt && rs.ModerateAt < rs.StrongAt && rs.StrongAt <= 100) {
		return fmt.Errorf("label thresholds out of order: moderate %d strong %d", rs.ModerateAt, rs.StrongAt)
	}
	if rs.EligibleBelowPct <= 0 || rs.EligibleBelowPct > 100 {
		return fmt.Errorf("eligible_below_pct must be 1..100, got %d", rs.EligibleBelowPct)
	}
	return nil
}

func (rs *RuleSet) validateRouting() error {
	ids := map[FixID]bool{}
	for i, f := range rs.Catalog {
		if f.ID == "" {
			return fmt.Errorf("catalog[%d] has empty id", i)
		}
		if ids[f.ID] {
			return fmt.Errorf("catalog duplicates fix %q", f.ID)
		}
		ids[f.ID] = true
		if f.Headline == "" || f.EndState == "" || len(f.Steps) == 0 {
			return fmt.Errorf("catalog[%s] must carry headline, steps, and end state", f.ID)
		}
		if f.Feasibility < 1 || f.Feasibility > 5 {
			return fmt.Errorf("catalog[%s] feasibility must be 1..5, got %d", f.ID, f.Feasibility)
		}
		if f.Strategic < 0 || f.Strategic > 5 {
			return fmt.Errorf("catalog[%s] strategic must be 0..5, got %d", f.ID, f.Strategic)
		}
		if !contains(Dimensions(), f.Dimension) {
			return fmt.Errorf("catalog[%s] names unknown dimension %q", f.ID, f.Dimension)
		}
	}
	checkRefs := func(table string, list []FixID) error {
		for _, id := range list {
			if !ids[id] {
				return fmt.Errorf("%s references unknown fix %q", table, id)
			}
		}
		return nil
	}
	for _, d := range Dimensions() {
		if len(rs.DimensionFixes[d]) == 0 {
			return fmt.Errorf("dimension_fixes missing dimension %q", d)
		}
		if err := checkRefs("dimension_fixes", rs.DimensionFixes[d]); err != nil {
			return err
		}
		if _, ok := rs.DimensionReasons[d]; !ok {
			return fmt.Errorf("dimension_reasons missing dimension %q", d)
		}
	}
	for _, c := range CauseIDs() {
		if err := checkRefs("cause_fixes", rs.CauseFixes[c]); err != nil {
			return err
		}
		if _, ok := rs.CauseWeights[c]; !ok {
			return fmt.Errorf("cause_weights missing cause %q", c)
		}
		if _, ok := rs.CauseReasons[c]; !ok {
			return fmt.Errorf("cause_reasons missing cause %q", c)
		}
	}
	for _, v := range ViolationIDs() {
		if _, ok := rs.ViolationCategories[v]; !ok {
			return fmt.Errorf("violation_categories missing violation %q", v)
		}
	}
	for _, lvl := range []CashFlowLevel{CashFlowLow, CashFlowMedium, CashFlowHigh} {
		if len(rs.PricingFixes[lvl]) == 0 {
			return fmt.Errorf("pricing_fixes missing cash-flow level %q", lvl)
		}
		if err := checkRefs("pricing_fixes", rs.PricingFixes[lvl]); err != nil {
			return err
		}
	}
	if err := checkRefs("certainty_fixes", rs.CertaintyFixes); err != nil {
		return err
	}
	if err := checkRefs("advisory_allowed", rs.AdvisoryAllowed); err != nil {
		return err
	}
	if len(rs.CoreDims) == 0 {
		return fmt.Errorf("core_dims must not be empty")
	}
	for _, d := range rs.CoreDims {
		if !contains(Dimensions(), d) {
			return fmt.Errorf("core_dims names unknown dimension %q", d)
		}
	}
	if rs.TopKDefault < 1 || rs.TopKDefault > rs.TopKMax {
		return fmt.Errorf("top_k bounds out of order: default %d max %d", rs.TopKDefault, rs.TopKMax)
	}
	return nil
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
