package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/dealdesk/internal/cli/formatter"
	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func dealdeskHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateNotesLength mirrors the service-side bounds so the form can
// reject input before submitting.
func validateNotesLength(s string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	if n < contract.MinNotesRunes || n > contract.MaxNotesRunes {
		return fmt.Errorf("notes must be %d-%d characters (currently %d)", contract.MinNotesRunes, contract.MaxNotesRunes, n)
	}
	return nil
}

func notesForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Meeting notes").
				Description("Who was there, what they asked for, objections, next steps").
				CharLimit(contract.MaxNotesRunes).
				Lines(10).
				Value(value).
				Validate(validateNotesLength),
		),
	).WithTheme(dealdeskHuhTheme()).WithShowHelp(true)
}

// rejectionReasonForm asks for the reason when a reviewer rejects without one.
func rejectionReasonForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Rejection reason").
				Value(value).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("a reason is required")
					}
					return nil
				}),
		),
	).WithTheme(dealdeskHuhTheme()).WithShowHelp(false)
}
