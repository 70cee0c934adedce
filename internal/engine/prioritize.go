package engine

import (
	"sort"
	"strings"
	"unicode"

	"offerfit-backend/internal/engine/ruleset"
)

// prioritize scores the surviving candidates, orders them deterministically,
// drops near-duplicate advice, and keeps the top K.
func prioritize(cands []candidate, topK int, rs *ruleset.RuleSet) ([]Recommendation, []RejectedFix) {
	type scored struct {
		candidate
		priority int
	}
	list := make([]scored, 0, len(cands))
	for _, c := range cands {
		list = append(list, scored{candidate: c, priority: priorityOf(c, rs)})
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].priority != list[j].priority {
			return list[i].priority > list[j].priority
		}
		if list[i].fix.Feasibility != list[j].fix.Feasibility {
			return list[i].fix.Feasibility > list[j].fix.Feasibility
		}
		return rs.CatalogRank(list[i].fix.ID) < rs.CatalogRank(list[j].fix.ID)
	})

	var recs []Recommendation
	var rejected []RejectedFix
	seen := map[string]ruleset.FixID{}
	for _, s := range list {
		key := dedupeKey(s.fix.Headline)
		if prior, dup := seen[key]; dup {
			rejected = append(rejected, RejectedFix{
				Fix:    s.fix.ID,
				Reason: RejectDuplicate,
				Detail: "restates " + string(prior),
			})
			continue
		}
		seen[key] = s.fix.ID
		if len(recs) == topK {
			continue
		}
		recs = append(recs, Recommendation{
			Order:       len(recs) + 1,
			Fix:         s.fix.ID,
			Category:    s.fix.Category,
			Headline:    s.fix.Headline,
			Explanation: renderExplanation(s.reason, s.fix.Headline),
			Steps:       append([]string(nil), s.fix.Steps...),
			EndState:    s.fix.EndState,
			Priority:    s.priority,
		})
	}
	return recs, rejected
}

// priorityOf places certainty-tier fixes at a fixed top score, strategic
// fixes on an impact-times-feasibility scale, and the rest on the
// nominating source's severity weight.
func priorityOf(c candidate, rs *ruleset.RuleSet) int {
	if rs.Certainty(c.fix.ID) {
		return 100
	}
	if c.fix.Strategic > 0 {
		return c.fix.Strategic * c.fix.Feasibility * 4
	}
	return int(c.weight*10+0.5) * c.fix.Feasibility
}

func renderExplanation(reason, headline string) string {
	return "Because " + reason + ", " + lowerFirst(headline) + "."
}

func lowerFirst(s string) string {
	for i, r := range s {
		return string(unicode.ToLower(r)) + s[i+len(string(r)):]
	}
	return s
}

// dedupeKey normalizes a headline to lowercase alphanumerics and keeps the
// first forty runes, so two phrasings of the same move collapse.
func dedupeKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	normalized := strings.Join(strings.Fields(b.String()), " ")
	runes := []rune(normalized)
	if len(runes) > 40 {
		runes = runes[:40]
	}
	return string(runes)
}
