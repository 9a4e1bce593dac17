package notfound

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/checkform/internal/labels"
	"github.com/abhisek/checkform/internal/router"
	"github.com/abhisek/checkform/internal/screen"
	"github.com/abhisek/checkform/internal/ui/theme"
)

const art = `╌╌ 404 ╌╌`

// NotFoundScreen is shown for pages the router does not know.
type NotFoundScreen struct {
	labels *labels.Labels
}

var _ screen.Screen = (*NotFoundScreen)(nil)

// New creates a new NotFoundScreen.
func New(l *labels.Labels) *NotFoundScreen {
	return &NotFoundScreen{labels: l}
}

func (p *NotFoundScreen) Init() tea.Cmd {
	return nil
}

func (p *NotFoundScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc", "enter":
			return p, func() tea.Msg { return router.HomeMsg{} }
		}
	}
	return p, nil
}

func (p *NotFoundScreen) View(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(theme.Invalid.Render(art) + "\n\n" + p.labels.NotFound)
}

func (p *NotFoundScreen) Title() string {
	return p.labels.NotFound
}
