package notes

import (
	"fmt"
	"strings"
)

// Analysis is everything derived from one set of notes.
type Analysis struct {
	Summary     string
	PrimaryGoal string
	Objections  []string
	ProofPoints []string
	Templates   []TaskTemplate
}

// Analyze runs every classifier over notes.
func Analyze(notes string) Analysis {
	return Analysis{
		Summary:     SummarizeNotes(notes),
		PrimaryGoal: DerivePrimaryGoal(notes),
		Objections:  ExtractLikelyObjections(notes),
		ProofPoints: DeriveProofPoints(notes),
		Templates:   BuildTaskTemplates(notes),
	}
}

// FollowUp is a composed recap message.
type FollowUp struct {
	Subject string
	Body    string
}

// ComposeFollowUp drafts the recap email sent after the meeting.
func ComposeFollowUp(dealName string, a Analysis) FollowUp {
	var b strings.Builder
	b.WriteString("Hi team,\n\n")
	b.WriteString("Thanks for the time today. Here is where we landed.\n\n")
	fmt.Fprintf(&b, "Goal: %s\n\n", a.PrimaryGoal)

	b.WriteString("Next steps:\n")
	for _, t := range a.Templates {
		fmt.Fprintf(&b, "- %s (within %dh)\n", t.Title, t.DueInHours)
	}

	b.WriteString("\nOpen questions we will address:\n")
	for i, o := range a.Objections {
		proof := a.ProofPoints[min(i, len(a.ProofPoints)-1)]
		fmt.Fprintf(&b, "- %s: %s\n", o, proof)
	}

	b.WriteString("\nPlease reply with any corrections to owners or dates.\n")

	return FollowUp{
		Subject: fmt.Sprintf("Recap and next steps: %s", dealName),
		Body:    b.String(),
	}
}
