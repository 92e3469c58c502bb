package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PriorityColor returns the style for a signal or task priority.
func PriorityColor(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return StyleRed
	case domain.PriorityMedium:
		return StyleYellow
	case domain.PriorityLow:
		return StyleGreen
	default:
		return StyleDim
	}
}

// PriorityIndicator renders a colored indicator such as "● HIGH".
func PriorityIndicator(p domain.Priority) string {
	if p == "" {
		return StyleDim.Render("● ?")
	}
	return PriorityColor(p).Render("● " + strings.ToUpper(string(p)))
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
