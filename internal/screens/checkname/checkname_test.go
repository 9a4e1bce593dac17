package checkname

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/checkform/internal/form"
	"github.com/abhisek/checkform/internal/labels"
	"github.com/abhisek/checkform/internal/router"
	"github.com/abhisek/checkform/internal/submit"
)

func typeText(s *CheckNameScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func enter(s *CheckNameScreen) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

func TestCheckNameAccepted(t *testing.T) {
	mock := submit.NewMockClient(submit.MockResponse{Result: &submit.Result{Success: true}})
	s := New(mock, labels.MustFor("it"), nil)

	typeText(s, "Ada")
	cmd := enter(s)
	require.NotNil(t, cmd)
	assert.Contains(t, s.View(80, 24), "INVIO IN CORSO")

	s.Update(cmd())
	assert.Equal(t, []string{"Ada"}, mock.Names)
	assert.Contains(t, s.View(80, 24), "DATI INVIATI VALIDI")
}

func TestCheckNameRejected(t *testing.T) {
	mock := submit.NewMockClient(submit.MockResponse{Result: &submit.Result{
		Errors: []submit.FieldError{{Field: "name", Messages: []string{"name is taken"}}},
	}})
	s := New(mock, labels.MustFor("it"), nil)

	typeText(s, "Ada")
	s.Update(enter(s)())
	view := s.View(80, 24)
	assert.Contains(t, view, "DATI INVIATI NON VALIDI")
	assert.Contains(t, view, "name is taken")
}

func TestCheckNameTransportError(t *testing.T) {
	mock := submit.NewMockClient(submit.MockResponse{Err: &submit.ErrTransport{Err: errors.New("refused")}})
	s := New(mock, labels.MustFor("it"), nil)

	typeText(s, "Ada")
	s.Update(enter(s)())
	assert.Contains(t, s.View(80, 24), "ERRORE INVIO DATI")

	enter(s)
	assert.Equal(t, phaseInput, s.phase)
	assert.Equal(t, "Ada", s.input.Value())
}

func TestEmptyNameNotSent(t *testing.T) {
	mock := submit.NewMockClient()
	s := New(mock, labels.MustFor("it"), nil)

	assert.Nil(t, enter(s))
	assert.Equal(t, 0, mock.CallCount())
	assert.Contains(t, s.View(80, 24), form.MsgNameTooShort)
}

func TestCancelDropsLateResult(t *testing.T) {
	mock := submit.NewMockClient(submit.MockResponse{Result: &submit.Result{Success: true}})
	s := New(mock, labels.MustFor("it"), nil)

	typeText(s, "Ada")
	cmd := enter(s)
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, phaseInput, s.phase)

	s.Update(cmd())
	assert.Equal(t, phaseInput, s.phase)
	assert.Nil(t, s.result)
}

func TestEscLeaves(t *testing.T) {
	s := New(submit.NewMockClient(), labels.MustFor("it"), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}
