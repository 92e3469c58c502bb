package notes

import "strings"

const (
	summaryMaxRunes = 180
	goalMaxRunes    = 120
	goalMinRunes    = 20

	maxObjections  = 3
	maxProofPoints = 3

	fallbackObjection = "Competing priorities and internal bandwidth"
	fallbackGoal      = "Confirm business outcomes, owners, and a dated next step"
	fallbackProof     = "Customer outcome story mapped to their stated goal"
)

var objectionRules = []keywordRule{
	{
		keywords: []string{"budget", "pricing", "price", "cost", "expensive", "discount", "spend"},
		output:   "Budget alignment and commercial terms",
	},
	{
		keywords: []string{"security", "compliance", "legal", "nda", "soc 2", "soc2", "gdpr", "privacy", "dpa", "infosec"},
		output:   "Security and legal review requirements",
	},
	{
		keywords: []string{"integration", "integrate", "migration", "timeline", "implementation", "rollout", "go-live"},
		output:   "Integration effort and rollout timeline",
	},
	{
		keywords: []string{"approval", "approve", "procurement", "sign-off", "signoff", "purchasing", "vendor onboarding"},
		output:   "Approval path and procurement process",
	},
}

var proofPointRules = []keywordRule{
	{
		keywords: []string{"roi", "cost", "savings", "payback", "budget", "price"},
		output:   "ROI model with payback period from comparable customers",
	},
	{
		keywords: []string{"security", "compliance", "soc 2", "soc2", "gdpr", "legal", "privacy"},
		output:   "Security certifications and compliance documentation",
	},
	{
		keywords: []string{"integration", "migration", "sso", "implementation", "migrate", "data sync"},
		output:   "Integration architecture and migration plan from a similar rollout",
	},
}

// SummarizeNotes collapses whitespace and caps the result at 180 runes.
func SummarizeNotes(notes string) string {
	return Truncate(collapseWhitespace(notes), summaryMaxRunes)
}

// ExtractLikelyObjections returns at most one objection per matched
// category, in category order, capped at three. Unmatched notes yield the
// generic competing-priorities objection.
func ExtractLikelyObjections(notes string) []string {
	return matchRules(notes, objectionRules, maxObjections, fallbackObjection)
}

// DeriveProofPoints maps notes to canned proof points, capped at three.
func DeriveProofPoints(notes string) []string {
	return matchRules(notes, proofPointRules, maxProofPoints, fallbackProof)
}

// DerivePrimaryGoal uses the first sentence when it is long enough to
// carry intent, otherwise a generic goal.
func DerivePrimaryGoal(notes string) string {
	first := notes
	if i := strings.IndexAny(notes, ".!?"); i >= 0 {
		first = notes[:i]
	}
	first = collapseWhitespace(first)
	if len([]rune(first)) < goalMinRunes {
		return fallbackGoal
	}
	return Truncate(first, goalMaxRunes)
}

func matchRules(notes string, rules []keywordRule, max int, fallback string) []string {
	lower := strings.ToLower(notes)
	var out []string
	for _, r := range rules {
		if len(out) == max {
			break
		}
		if r.matches(lower) {
			out = append(out, r.output)
		}
	}
	if len(out) == 0 {
		return []string{fallback}
	}
	return out
}
