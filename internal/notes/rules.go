// Package notes turns free-text meeting notes into summaries, likely
// objections, proof points, and follow-up task templates. Every heuristic
// is a declarative keyword table matched case-insensitively by substring.
package notes

import (
	"strings"
	"unicode/utf8"
)

type keywordRule struct {
	keywords []string
	output   string
}

func (r keywordRule) matches(lower string) bool {
	return containsAny(lower, r.keywords)
}

func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// ContainsAny reports whether text contains any keyword, ignoring case.
// Keywords must already be lowercase.
func ContainsAny(text string, keywords ...string) bool {
	return containsAny(strings.ToLower(text), keywords)
}

// collapseWhitespace joins all whitespace runs into single spaces and trims.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

const ellipsis = "..."

// Truncate shortens s to at most max runes, ending with "..." when cut.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	keep := max - len(ellipsis)
	if keep < 0 {
		keep = 0
	}
	return strings.TrimRight(string(runes[:keep]), " ") + ellipsis
}
