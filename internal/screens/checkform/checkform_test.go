package checkform

import (
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/checkform/internal/form"
	"github.com/abhisek/checkform/internal/labels"
	"github.com/abhisek/checkform/internal/router"
	"github.com/abhisek/checkform/internal/submit"
	"github.com/abhisek/checkform/internal/wizard"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(s *CheckFormScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func press(s *CheckFormScreen, code rune) tea.Cmd {
	_, cmd := s.Update(specialKey(code))
	return cmd
}

// deliver runs a submission command and feeds its message back.
func deliver(t *testing.T, s *CheckFormScreen, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(submittedMsg)
	require.True(t, ok, "expected submittedMsg")
	s.Update(msg)
}

func newScreen(responses ...submit.MockResponse) (*CheckFormScreen, *submit.MockClient) {
	mock := submit.NewMockClient(responses...)
	return New(mock, labels.MustFor("it"), nil), mock
}

func TestMarioSubmitsThreeSteps(t *testing.T) {
	s, mock := newScreen(submit.MockResponse{Result: &submit.Result{Success: true}})

	typeText(s, "Mario")
	press(s, tea.KeyEnter)
	typeText(s, "16")
	press(s, tea.KeyEnter)

	f, _ := s.Controller().CurrentField()
	assert.Equal(t, form.FieldBirthDate, f)
	assert.Contains(t, s.View(80, 24), "Quando sei nato?")
	assert.NotContains(t, s.View(80, 24), "Sei sposato?")

	typeText(s, "01-05-2010")
	assert.True(t, s.Controller().IsLastStep())

	deliver(t, s, press(s, tea.KeyEnter))

	assert.Equal(t, wizard.StatusSucceeded, s.Controller().Status())
	assert.True(t, s.Controller().Record().IsZero())
	require.Len(t, mock.Records, 1)
	assert.Equal(t, form.Date(2010, time.May, 1), mock.Records[0].BirthDate)
	assert.Contains(t, s.View(80, 24), "DATI INVIATI VALIDI")

	toast, isErr := s.Toast()
	assert.Equal(t, "Form inviato con successo!", toast)
	assert.False(t, isErr)

	press(s, tea.KeyEnter)
	assert.Equal(t, wizard.StatusIdle, s.Controller().Status())
	assert.Equal(t, 0, s.Controller().Step())
}

func TestAnnaRejectionListsMessages(t *testing.T) {
	s, _ := newScreen(submit.MockResponse{Result: &submit.Result{
		Success: false,
		Errors:  []submit.FieldError{{Field: "age", Messages: []string{"must be an integer"}}},
	}})

	typeText(s, "Anna")
	press(s, tea.KeyEnter)
	typeText(s, "30")
	press(s, tea.KeyEnter)

	press(s, tea.KeyEnter)
	assert.Equal(t, 2, s.Controller().Step(), "marital status is required")
	assert.Contains(t, s.View(80, 24), form.MsgMarriedRequired)

	s.Update(keyPress('n'))
	press(s, tea.KeyEnter)
	assert.Equal(t, 3, s.Controller().Step())

	typeText(s, "02-03-1994")
	deliver(t, s, press(s, tea.KeyEnter))

	assert.Equal(t, wizard.StatusFailed, s.Controller().Status())
	assert.Equal(t, wizard.FailureRejected, s.Controller().FailureKind())
	view := s.View(80, 30)
	assert.Contains(t, view, "DATI INVIATI NON VALIDI")
	assert.Contains(t, view, "must be an integer")

	s.Update(keyPress('e'))
	assert.Equal(t, wizard.StatusIdle, s.Controller().Status())
	assert.Equal(t, "Anna", s.Controller().Record().Name)
}

func TestEnterOnEmptyNameShowsError(t *testing.T) {
	s, _ := newScreen()
	press(s, tea.KeyEnter)
	assert.Equal(t, 0, s.Controller().Step())
	assert.Contains(t, s.View(80, 24), form.MsgNameTooShort)
}

func TestEscOnFirstStepLeaves(t *testing.T) {
	s, _ := newScreen()
	cmd := press(s, tea.KeyEscape)
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}

func TestEscGoesBackKeepingAnswer(t *testing.T) {
	s, _ := newScreen()
	typeText(s, "Ada")
	press(s, tea.KeyEnter)
	press(s, tea.KeyEscape)
	assert.Equal(t, 0, s.Controller().Step())
	assert.Equal(t, "Ada", s.input.Value())
}

func TestAgeInputRejectsLetters(t *testing.T) {
	s, _ := newScreen()
	typeText(s, "Ada")
	press(s, tea.KeyEnter)
	typeText(s, "1x2")
	assert.Equal(t, 12.0, *s.Controller().Record().Age)
}

func fillMinor(s *CheckFormScreen) {
	typeText(s, "Mario")
	press(s, tea.KeyEnter)
	typeText(s, "16")
	press(s, tea.KeyEnter)
	typeText(s, "01-05-2010")
}

func TestCancelIgnoresLateOutcome(t *testing.T) {
	s, _ := newScreen(submit.MockResponse{Result: &submit.Result{Success: true}})
	fillMinor(s)

	cmd := press(s, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, wizard.StatusSubmitting, s.Controller().Status())
	assert.Contains(t, s.View(80, 24), "INVIO IN CORSO")

	press(s, tea.KeyEscape)
	assert.Equal(t, wizard.StatusIdle, s.Controller().Status())

	deliver(t, s, cmd)
	assert.Equal(t, wizard.StatusIdle, s.Controller().Status())
	assert.Nil(t, s.Controller().LastResult())
	assert.Equal(t, "Mario", s.Controller().Record().Name)
	toast, _ := s.Toast()
	assert.Empty(t, toast)
}

func TestDoubleEnterSubmitsOnce(t *testing.T) {
	s, _ := newScreen()
	fillMinor(s)

	first := press(s, tea.KeyEnter)
	second := press(s, tea.KeyEnter)
	assert.NotNil(t, first)
	assert.Nil(t, second)
}

func TestTransportFailureRetry(t *testing.T) {
	s, mock := newScreen(
		submit.MockResponse{Err: &submit.ErrTransport{Err: errors.New("connection refused")}},
		submit.MockResponse{Result: &submit.Result{Success: true}},
	)
	fillMinor(s)

	deliver(t, s, press(s, tea.KeyEnter))
	assert.Equal(t, wizard.FailureTransport, s.Controller().FailureKind())
	view := s.View(80, 24)
	assert.Contains(t, view, "ERRORE INVIO DATI")
	assert.Contains(t, view, "RIPROVA")
	_, isErr := s.Toast()
	assert.True(t, isErr)

	_, cmd := s.Update(keyPress('r'))
	deliver(t, s, cmd)
	assert.Equal(t, wizard.StatusSucceeded, s.Controller().Status())
	assert.Equal(t, 2, mock.CallCount())
}

func TestToastExpires(t *testing.T) {
	s, _ := newScreen(submit.MockResponse{Result: &submit.Result{Success: true}})
	fillMinor(s)
	deliver(t, s, press(s, tea.KeyEnter))

	s.Update(toastExpiredMsg{Seq: s.toastSeq - 1})
	toast, _ := s.Toast()
	assert.NotEmpty(t, toast, "older toast timers do not clear a newer toast")

	s.Update(toastExpiredMsg{Seq: s.toastSeq})
	toast, _ = s.Toast()
	assert.Empty(t, toast)
}

func TestKeyHintsFollowStatus(t *testing.T) {
	s, _ := newScreen()
	hints := s.KeyHints()
	require.NotEmpty(t, hints)
	assert.Equal(t, "Avanti", hints[0].Description)

	fillMinor(s)
	assert.Equal(t, "Invia", s.KeyHints()[0].Description)

	press(s, tea.KeyEnter)
	assert.Equal(t, "ANNULLA", s.KeyHints()[0].Description)
}
