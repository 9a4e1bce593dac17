package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, after the Material defaults of the web form
var (
	Primary   = lipgloss.Color("#1976D2") // Blue
	Secondary = lipgloss.Color("#9C27B0") // Purple
	Warning   = lipgloss.Color("#ED6C02") // Orange
	Success   = lipgloss.Color("#2E7D32") // Green
	Error     = lipgloss.Color("#D32F2F") // Red
	Text      = lipgloss.Color("#F5F5F5")
	TextDim   = lipgloss.Color("#9E9E9E")
	BgDark    = lipgloss.Color("#121212")
	BgCard    = lipgloss.Color("#1E1E1E")
	Border    = lipgloss.Color("#424242")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	FieldError = lipgloss.NewStyle().
			Foreground(Error)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	// ErrorBox frames the field errors of a rejected submission.
	ErrorBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Error).
			Padding(0, 2)

	// SuccessBox frames the confirmation of an accepted submission.
	SuccessBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Success).
			Padding(0, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Valid = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Invalid = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Pending = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Primary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	ButtonDisabled = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	ToastSuccess = lipgloss.NewStyle().
			Background(Success).
			Foreground(Text).
			Padding(0, 1)

	ToastError = lipgloss.NewStyle().
			Background(Error).
			Foreground(Text).
			Padding(0, 1)
)
