package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dealdesk/internal/strategy"
)

// RenderConfidence renders a play or deal confidence as [████░░░░]  62%.
// Green at 0.75 and above, yellow from 0.5, red below.
func RenderConfidence(c float64, width int) string {
	c = strategy.Clamp(c, 0, 1)
	width = max(width, 2)

	filled := min(int(c*float64(width)), width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := StyleGreen
	switch {
	case c < 0.5:
		style = StyleRed
	case c < 0.75:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), c*100)
}
