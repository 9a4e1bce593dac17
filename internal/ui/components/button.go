package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/checkform/internal/ui/theme"
)

// Button is a labelled action with the key that triggers it.
type Button struct {
	Label    string
	Key      string
	Primary  bool
	Disabled bool
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label += " [" + b.Key + "]"
	}
	switch {
	case b.Disabled:
		return theme.ButtonDisabled.Render(label)
	case b.Primary:
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}

// ButtonRow renders buttons left to right, vertically centered.
func ButtonRow(buttons ...Button) string {
	views := make([]string, 0, len(buttons)*2)
	for i, b := range buttons {
		if i > 0 {
			views = append(views, "  ")
		}
		views = append(views, b.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, views...)
}
