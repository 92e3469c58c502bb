package notes

import (
	"strings"
	"time"

	"github.com/alexanderramin/dealdesk/internal/domain"
)

const maxTemplates = 4

// TaskTemplate is a follow-up task before it is bound to a deal and clock.
type TaskTemplate struct {
	Title            string
	DueInHours       int
	Priority         domain.Priority
	SuggestedChannel domain.Channel
}

// DueAt anchors the template to the time the meeting happened.
func (t TaskTemplate) DueAt(happenedAt time.Time) time.Time {
	return happenedAt.Add(time.Duration(t.DueInHours) * time.Hour)
}

var recapTemplate = TaskTemplate{
	Title:            "Send recap with explicit owners and due dates",
	DueInHours:       4,
	Priority:         domain.PriorityHigh,
	SuggestedChannel: domain.ChannelEmail,
}

var (
	securityPacket = TaskTemplate{"Share security and legal packet with reviewers", 12, domain.PriorityHigh, domain.ChannelEmail}
	pricingPrep    = TaskTemplate{"Prepare pricing options and commercial summary", 24, domain.PriorityMedium, domain.ChannelEmail}
	walkthrough    = TaskTemplate{"Schedule product walkthrough with technical evaluators", 24, domain.PriorityMedium, domain.ChannelMeeting}
	decisionMap    = TaskTemplate{"Map decision makers and approval path", 36, domain.PriorityMedium, domain.ChannelMeeting}
	nextMeeting    = TaskTemplate{"Lock next meeting date with stakeholders", 20, domain.PriorityHigh, domain.ChannelMeeting}
)

type templateRule struct {
	keywords []string
	template TaskTemplate
}

// Several rules may share a template; dedupe collapses them.
var templateRules = []templateRule{
	{[]string{"security", "legal", "nda", "compliance", "soc 2", "soc2", "gdpr"}, securityPacket},
	{[]string{"pricing", "price", "quote", "discount", "commercial"}, pricingPrep},
	{[]string{"demo"}, walkthrough},
	{[]string{"trial", "poc", "proof of concept", "pilot"}, walkthrough},
	{[]string{"approver", "decision", "board meeting", "the board", "economic buyer"}, decisionMap},
	{[]string{"follow-up", "follow up", "next meeting", "next week"}, nextMeeting},
	{[]string{"timeline", "deadline"}, nextMeeting},
}

// BuildTaskTemplates returns the recap template followed by every matched
// rule's template, deduplicated by case-insensitive title and capped at four.
func BuildTaskTemplates(notes string) []TaskTemplate {
	lower := strings.ToLower(notes)
	candidates := []TaskTemplate{recapTemplate}
	for _, r := range templateRules {
		if containsAny(lower, r.keywords) {
			candidates = append(candidates, r.template)
		}
	}

	seen := make(map[string]bool, len(candidates))
	out := make([]TaskTemplate, 0, maxTemplates)
	for _, c := range candidates {
		key := strings.ToLower(c.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	if len(out) > maxTemplates {
		out = out[:maxTemplates]
	}
	return out
}
