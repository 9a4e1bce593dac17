// Package checkname is a one-field form that asks the server whether a
// name is acceptable.
package checkname

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/checkform/internal/form"
	"github.com/abhisek/checkform/internal/labels"
	"github.com/abhisek/checkform/internal/router"
	"github.com/abhisek/checkform/internal/screen"
	"github.com/abhisek/checkform/internal/submit"
	"github.com/abhisek/checkform/internal/ui/components"
	"github.com/abhisek/checkform/internal/ui/layout"
	"github.com/abhisek/checkform/internal/ui/theme"
)

// NameChecker is the part of the submission client this screen uses.
type NameChecker interface {
	CheckName(ctx context.Context, name string) (*submit.Result, error)
}

type checkedMsg struct {
	Token  uint64
	Result *submit.Result
	Err    error
}

type phase int

const (
	phaseInput phase = iota
	phaseChecking
	phaseDone
)

// CheckNameScreen sends a lone name to the server.
type CheckNameScreen struct {
	client NameChecker
	labels *labels.Labels
	log    *zap.Logger
	input  components.TextInput

	phase    phase
	seq      uint64
	inflight uint64
	result   *submit.Result
	err      error
}

var _ screen.Screen = (*CheckNameScreen)(nil)
var _ screen.KeyHintProvider = (*CheckNameScreen)(nil)

// New creates a CheckNameScreen.
func New(client NameChecker, l *labels.Labels, log *zap.Logger) *CheckNameScreen {
	if log == nil {
		log = zap.NewNop()
	}
	return &CheckNameScreen{
		client: client,
		labels: l,
		log:    log.Named("checkname"),
		input:  components.NewTextInput(l.Placeholder(form.FieldName), components.KindText, 64),
	}
}

func (s *CheckNameScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *CheckNameScreen) Title() string {
	return s.labels.CheckNameTitle
}

func (s *CheckNameScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseChecking:
		return []layout.KeyHint{{Key: "Esc", Description: s.labels.Buttons.Cancel}}
	case phaseDone:
		return []layout.KeyHint{
			{Key: "Enter", Description: s.labels.Buttons.Edit},
			{Key: "Esc", Description: s.labels.Home},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: s.labels.Buttons.Check},
		{Key: "Esc", Description: s.labels.Home},
	}
}

func (s *CheckNameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case checkedMsg:
		if s.phase != phaseChecking || msg.Token != s.inflight {
			return s, nil
		}
		s.inflight = 0
		s.phase = phaseDone
		s.result, s.err = msg.Result, msg.Err
		if msg.Err != nil {
			s.log.Warn("name check failed", zap.Error(msg.Err))
		}
		return s, nil

	case tea.KeyMsg:
		switch s.phase {
		case phaseChecking:
			if msg.String() == "esc" {
				s.phase = phaseInput
				s.inflight = 0
				return s, s.input.Focus()
			}
			return s, nil
		case phaseDone:
			switch msg.String() {
			case "enter":
				s.phase = phaseInput
				return s, s.input.Focus()
			case "esc":
				return s, router.Back
			}
			return s, nil
		}

		switch msg.String() {
		case "enter":
			return s, s.check()
		case "esc":
			return s, router.Back
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.input.Error = ""
	return s, cmd
}

func (s *CheckNameScreen) check() tea.Cmd {
	name := s.input.Value()
	if msgs := form.ValidateField(form.AnswerRecord{Name: name}, form.FieldName); len(msgs) > 0 {
		s.input.Error = msgs[0]
		return nil
	}

	s.seq++
	s.inflight = s.seq
	s.phase = phaseChecking
	s.result, s.err = nil, nil
	s.input.Blur()

	token, client := s.seq, s.client
	return func() tea.Msg {
		ctx := submit.WithAttempt(context.Background(), submit.AttemptInfo{Token: token})
		res, err := client.CheckName(ctx, name)
		return checkedMsg{Token: token, Result: res, Err: err}
	}
}

func (s *CheckNameScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(s.labels.Question(form.FieldName)))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	switch s.phase {
	case phaseChecking:
		b.WriteString(theme.Pending.Render(s.labels.Status.Submitting))
	case phaseDone:
		b.WriteString(s.renderOutcome())
	default:
		b.WriteString(components.ButtonRow(components.Button{Label: s.labels.Buttons.Check, Key: "enter", Primary: true}))
	}

	card := theme.Card.Width(72).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *CheckNameScreen) renderOutcome() string {
	switch {
	case s.err != nil:
		return theme.Invalid.Render(s.labels.Status.Failed) + "\n" + theme.Hint.Render(s.err.Error())
	case s.result != nil && s.result.Success:
		return theme.SuccessBox.Render(theme.Valid.Render(s.labels.Status.Valid))
	}
	lines := []string{theme.Invalid.Render(s.labels.Status.Invalid)}
	for _, m := range s.result.Messages() {
		lines = append(lines, theme.FieldError.Render("• "+m))
	}
	return theme.ErrorBox.Render(strings.Join(lines, "\n"))
}
