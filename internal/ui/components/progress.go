package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/checkform/internal/ui/theme"
)

// StepProgress shows the position in the wizard as a segmented bar.
type StepProgress struct {
	Label   string
	Current int // zero-based
	Total   int
	Width   int
}

// View renders one segment per step; segments up to Current are filled.
func (p StepProgress) View() string {
	var result string
	if p.Label != "" {
		result = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	if p.Total <= 0 {
		return result
	}

	barWidth := max(p.Width-lipgloss.Width(result), p.Total*2)
	seg := max(barWidth/p.Total-1, 1)

	parts := make([]string, p.Total)
	for i := range parts {
		style := theme.ProgressEmpty
		if i <= p.Current {
			style = theme.ProgressFilled
		}
		parts[i] = style.Render(strings.Repeat(" ", seg))
	}
	return result + strings.Join(parts, " ")
}
