package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/checkform/internal/labels"
	"github.com/abhisek/checkform/internal/router"
	"github.com/abhisek/checkform/internal/screen"
	"github.com/abhisek/checkform/internal/store"
	"github.com/abhisek/checkform/internal/ui/components"
	"github.com/abhisek/checkform/internal/ui/layout"
	"github.com/abhisek/checkform/internal/ui/theme"
)

const banner = `┌─┐┬ ┬┌─┐┌─┐┬┌─┌─┐┌─┐┬─┐┌┬┐
│  ├─┤├┤ │  ├┴┐├┤ │ │├┬┘│││
└─┘┴ ┴└─┘└─┘┴ ┴└  └─┘┴└─┴ ┴`

// recentWindow is how many journal entries the stats line covers.
const recentWindow = 100

type statsLoadedMsg struct {
	Stats Stats
	Err   error
}

// Stats counts recent journal entries by outcome.
type Stats struct {
	Total, Succeeded, Rejected, Failed int
}

// HomeScreen is the main menu.
type HomeScreen struct {
	menu     components.Menu
	labels   *labels.Labels
	repo     store.SubmissionRepo
	endpoint string
	stats    *Stats
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen. repo may be nil when the journal is
// unavailable; the history entry is then disabled.
func New(l *labels.Labels, repo store.SubmissionRepo, endpoint string) *HomeScreen {
	items := []components.MenuItem{
		{Label: l.Menu.CheckForm, Action: func() tea.Cmd { return router.Navigate(screen.PageCheckForm) }},
		{Label: l.Menu.CheckName, Action: func() tea.Cmd { return router.Navigate(screen.PageCheckName) }},
		{Label: l.Menu.History, Disabled: repo == nil, Action: func() tea.Cmd { return router.Navigate(screen.PageHistory) }},
		{Label: l.Menu.Quit, Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		menu:     components.NewMenu(items),
		labels:   l,
		repo:     repo,
		endpoint: endpoint,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.repo == nil {
		return nil
	}
	repo := h.repo
	return func() tea.Msg {
		recs, err := repo.QuerySubmissions(context.Background(), store.QueryOpts{Limit: recentWindow})
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		return statsLoadedMsg{Stats: countOutcomes(recs)}
	}
}

func countOutcomes(recs []store.SubmissionEventRecord) Stats {
	var s Stats
	for _, r := range recs {
		s.Total++
		switch r.Outcome {
		case store.OutcomeSucceeded:
			s.Succeeded++
		case store.OutcomeRejected:
			s.Rejected++
		case store.OutcomeFailed:
			s.Failed++
		}
	}
	return s
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err == nil {
			h.stats = &msg.Stats
		}
		return h, nil
	case tea.KeyMsg:
		if msg.String() == "q" {
			return h, tea.Quit
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Q", Description: h.labels.Menu.Quit},
	}
}

func (h *HomeScreen) View(width, height int) string {
	sections := []string{
		theme.Title.Render(banner),
		theme.Subtitle.Render(h.endpoint),
	}
	if h.stats != nil && h.stats.Total > 0 {
		sections = append(sections, renderStats(*h.stats))
	}
	sections = append(sections, h.menu.View())

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderStats(s Stats) string {
	parts := []string{
		theme.Body.Render(fmt.Sprintf("%d sent", s.Total)),
		theme.Valid.Render(fmt.Sprintf("✓ %d", s.Succeeded)),
		theme.Invalid.Render(fmt.Sprintf("✗ %d", s.Rejected)),
		theme.Pending.Render(fmt.Sprintf("! %d", s.Failed)),
	}
	return strings.Join(parts, "   ")
}

func (h *HomeScreen) Title() string {
	return h.labels.Home
}
