package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/checkform/internal/labels"
	"github.com/abhisek/checkform/internal/router"
	"github.com/abhisek/checkform/internal/screen"
	"github.com/abhisek/checkform/internal/store"
	"github.com/abhisek/checkform/internal/ui/layout"
	"github.com/abhisek/checkform/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Records []store.SubmissionEventRecord
	Err     error
}

// HistoryScreen lists journaled submission attempts, newest first.
type HistoryScreen struct {
	repo     store.SubmissionRepo
	labels   *labels.Labels
	records  []store.SubmissionEventRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.SubmissionRepo, l *labels.Labels) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		labels:   l,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		recs, err := repo.QuerySubmissions(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Records: recs, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return s.labels.HistoryTitle
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "R", Description: "Reload"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
			s.errMsg = ""
		}
		s.loaded = true
		s.selected = min(s.selected, max(len(s.records)-1, 0))
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Back
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		case "r":
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading...")
	}
	if len(s.records) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\n  " + s.labels.HistoryEmpty)
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, r := range s.records {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := prefix + Summary(r)

		style := lipgloss.NewStyle().Foreground(outcomeColor(r.Outcome))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, d := range Details(r) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					theme.Hint.Render("    "+d)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

// Summary renders one journal entry as a single line.
func Summary(r store.SubmissionEventRecord) string {
	return fmt.Sprintf("#%-4d %s  %-4s  %-9s  %4dms",
		r.ID, r.Timestamp.Local().Format("Jan 02 15:04:05"), r.Kind, r.Outcome, r.LatencyMs)
}

// Details renders the payload and failure information of an entry.
func Details(r store.SubmissionEventRecord) []string {
	lines := []string{"payload: " + r.Payload}
	for _, fe := range r.FieldErrors {
		field := fe.Field
		if field == "" {
			field = "record"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", field, strings.Join(fe.Messages, "; ")))
	}
	if r.ErrorMessage != "" {
		lines = append(lines, "error: "+r.ErrorMessage)
	}
	if r.SessionID != "" {
		lines = append(lines, fmt.Sprintf("session %s attempt %d", r.SessionID, r.Attempt))
	}
	return lines
}

func outcomeColor(outcome string) color.Color {
	switch outcome {
	case store.OutcomeSucceeded:
		return theme.Success
	case store.OutcomeRejected:
		return theme.Error
	case store.OutcomeFailed:
		return theme.Warning
	default:
		return theme.Text
	}
}
