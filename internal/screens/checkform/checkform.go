package checkform

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/checkform/internal/form"
	"github.com/abhisek/checkform/internal/labels"
	"github.com/abhisek/checkform/internal/router"
	"github.com/abhisek/checkform/internal/screen"
	"github.com/abhisek/checkform/internal/ui/components"
	"github.com/abhisek/checkform/internal/ui/layout"
	"github.com/abhisek/checkform/internal/wizard"
)

const toastDuration = 4 * time.Second

// CheckFormScreen renders the wizard and drives its controller from key
// presses.
type CheckFormScreen struct {
	ctrl   *wizard.Controller
	client wizard.Submitter
	labels *labels.Labels
	log    *zap.Logger

	field  form.Field
	input  components.TextInput
	choice components.Choice

	// attempted is set when forward navigation was refused on this step.
	attempted bool

	toast      string
	toastErr   bool
	toastSeq   int
	showToasts bool
}

var _ screen.Screen = (*CheckFormScreen)(nil)
var _ screen.KeyHintProvider = (*CheckFormScreen)(nil)
var _ screen.Toaster = (*CheckFormScreen)(nil)

// New creates a CheckFormScreen submitting through client.
func New(client wizard.Submitter, l *labels.Labels, log *zap.Logger) *CheckFormScreen {
	if log == nil {
		log = zap.NewNop()
	}
	s := &CheckFormScreen{
		ctrl:       wizard.New(),
		client:     client,
		labels:     l,
		log:        log.Named("checkform"),
		showToasts: true,
	}
	s.syncInput()
	return s
}

func (s *CheckFormScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *CheckFormScreen) Title() string {
	return s.labels.Menu.CheckForm
}

// Controller exposes the wizard state for rendering and tests.
func (s *CheckFormScreen) Controller() *wizard.Controller {
	return s.ctrl
}

// Toast returns the current status line text.
func (s *CheckFormScreen) Toast() (string, bool) {
	return s.toast, s.toastErr
}

func (s *CheckFormScreen) KeyHints() []layout.KeyHint {
	b := s.labels.Buttons
	switch s.ctrl.Status() {
	case wizard.StatusSubmitting:
		return []layout.KeyHint{{Key: "Esc", Description: b.Cancel}}
	case wizard.StatusSucceeded:
		return []layout.KeyHint{
			{Key: "Enter", Description: b.NewForm},
			{Key: "Esc", Description: s.labels.Home},
		}
	case wizard.StatusFailed:
		hints := []layout.KeyHint{{Key: "E", Description: b.Edit}}
		if s.ctrl.FailureKind() == wizard.FailureTransport {
			hints = append(hints, layout.KeyHint{Key: "R", Description: b.Retry})
		}
		return append(hints, layout.KeyHint{Key: "N", Description: b.NewForm})
	}

	next := b.Next
	if s.ctrl.IsLastStep() {
		next = b.Submit
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: next}}
	if s.ctrl.Step() > 0 {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: b.Back})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: s.labels.Home})
	}
	return hints
}

func (s *CheckFormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		return s, s.handleOutcome(msg.Outcome)

	case toastExpiredMsg:
		if msg.Seq == s.toastSeq {
			s.toast = ""
		}
		return s, nil

	case tea.KeyMsg:
		switch s.ctrl.Status() {
		case wizard.StatusIdle:
			return s.handleIdleKey(msg)
		case wizard.StatusSubmitting:
			return s.handleSubmittingKey(msg)
		case wizard.StatusSucceeded:
			return s.handleSucceededKey(msg)
		case wizard.StatusFailed:
			return s.handleFailedKey(msg)
		}
	}
	return s, nil
}

func (s *CheckFormScreen) handleIdleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		s.commitInput()
		if s.ctrl.IsLastStep() {
			return s, s.submit()
		}
		from := s.ctrl.Step()
		if s.ctrl.Advance() {
			s.log.Debug("step advanced", zap.Int("from", from), zap.Int("to", s.ctrl.Step()))
			return s, s.syncInput()
		}
		s.attempted = true
		return s, nil

	case "esc":
		if s.ctrl.Retreat() {
			s.log.Debug("step retreated", zap.Int("to", s.ctrl.Step()))
			return s, s.syncInput()
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	var cmd tea.Cmd
	if s.field == form.FieldIsMarried {
		s.choice, cmd = s.choice.Update(msg)
	} else {
		s.input, cmd = s.input.Update(msg)
	}
	s.commitInput()
	return s, cmd
}

func (s *CheckFormScreen) handleSubmittingKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc", "c":
		if s.ctrl.Cancel() {
			s.log.Info("submission cancelled", zap.String("session_id", s.ctrl.SessionID()))
			return s, s.syncInput()
		}
	}
	return s, nil
}

func (s *CheckFormScreen) handleSucceededKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter", "n":
		return s, s.reset()
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *CheckFormScreen) handleFailedKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "r", "enter":
		if a, ok := s.ctrl.Retry(); ok {
			s.log.Debug("submission retried", zap.Uint64("attempt", a.Token))
			return s, s.run(a)
		}
		if msg.String() == "enter" {
			return s, s.edit()
		}
	case "e", "esc":
		return s, s.edit()
	case "n":
		return s, s.reset()
	}
	return s, nil
}

func (s *CheckFormScreen) edit() tea.Cmd {
	if !s.ctrl.Edit() {
		return nil
	}
	return s.syncInput()
}

func (s *CheckFormScreen) reset() tea.Cmd {
	s.ctrl.Reset()
	s.log.Debug("session started", zap.String("session_id", s.ctrl.SessionID()))
	return s.syncInput()
}

func (s *CheckFormScreen) submit() tea.Cmd {
	a, ok := s.ctrl.Submit()
	if !ok {
		s.attempted = true
		s.syncError()
		return nil
	}
	s.log.Debug("submission issued",
		zap.String("session_id", a.SessionID),
		zap.Uint64("attempt", a.Token))
	s.input.Blur()
	return s.run(a)
}

// run performs the attempt off the control loop.
func (s *CheckFormScreen) run(a *wizard.Attempt) tea.Cmd {
	client := s.client
	return func() tea.Msg {
		return submittedMsg{Outcome: a.Run(context.Background(), client)}
	}
}

func (s *CheckFormScreen) handleOutcome(o wizard.Outcome) tea.Cmd {
	if !s.ctrl.Apply(o) {
		s.log.Debug("stale submission outcome discarded", zap.Uint64("attempt", o.Token))
		return nil
	}

	switch s.ctrl.Status() {
	case wizard.StatusSucceeded:
		s.syncInput()
		return s.showToast(s.labels.Status.SubmittedToast, false)
	case wizard.StatusFailed:
		msg := s.labels.Status.Invalid
		if s.ctrl.FailureKind() == wizard.FailureTransport {
			msg = s.ctrl.FailureMessage()
		}
		return s.showToast(msg, true)
	}
	return nil
}

func (s *CheckFormScreen) showToast(text string, isErr bool) tea.Cmd {
	if !s.showToasts {
		return nil
	}
	s.toastSeq++
	s.toast = text
	s.toastErr = isErr
	seq := s.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{Seq: seq}
	})
}

// commitInput pushes the widget value of the current field into the
// controller.
func (s *CheckFormScreen) commitInput() {
	switch s.field {
	case form.FieldIsMarried:
		_ = s.ctrl.SetMarried(s.choice.Value())
	case "":
	default:
		_ = s.ctrl.UpdateField(s.field, s.input.Value())
	}
	s.syncError()
}

func (s *CheckFormScreen) syncError() {
	s.input.Error = s.ctrl.FieldError(s.field)
}

// syncInput rebuilds the widget for the current step from the
// controller's state.
func (s *CheckFormScreen) syncInput() tea.Cmd {
	s.attempted = false
	f, ok := s.ctrl.CurrentField()
	if !ok {
		s.field = ""
		return nil
	}
	s.field = f

	if f == form.FieldIsMarried {
		s.choice = components.NewChoice(s.labels.Choice.Yes, s.labels.Choice.No, s.ctrl.Record().IsMarried)
		return nil
	}

	kind, limit := components.KindText, 64
	switch f {
	case form.FieldAge:
		kind, limit = components.KindDecimal, 6
	case form.FieldBirthDate:
		kind, limit = components.KindDate, 10
	}
	s.input = components.NewTextInput(s.labels.Placeholder(f), kind, limit)
	s.input.SetValue(s.ctrl.Value(f))
	s.syncError()
	return s.input.Init()
}
