package home

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/checkform/internal/labels"
	"github.com/abhisek/checkform/internal/router"
	"github.com/abhisek/checkform/internal/screen"
	"github.com/abhisek/checkform/internal/store"
)

type fakeRepo struct {
	recs []store.SubmissionEventRecord
	err  error
}

func (f *fakeRepo) AppendSubmission(context.Context, store.SubmissionEventData) error { return nil }
func (f *fakeRepo) QuerySubmissions(context.Context, store.QueryOpts) ([]store.SubmissionEventRecord, error) {
	return f.recs, f.err
}
func (f *fakeRepo) GetSubmission(context.Context, int) (*store.SubmissionEventRecord, error) {
	return nil, nil
}

func rec(outcome string) store.SubmissionEventRecord {
	return store.SubmissionEventRecord{SubmissionEventData: store.SubmissionEventData{Outcome: outcome}}
}

func TestMenuNavigates(t *testing.T) {
	h := New(labels.MustFor("it"), &fakeRepo{}, "http://localhost:3001")

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, router.NavigateMsg{Page: screen.PageCheckForm}, cmd())

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, router.NavigateMsg{Page: screen.PageCheckName}, cmd())
}

func TestHistoryDisabledWithoutJournal(t *testing.T) {
	h := New(labels.MustFor("en"), nil, "")
	assert.Nil(t, h.Init())

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 3, h.menu.Selected, "history is skipped")
}

func TestStatsLoaded(t *testing.T) {
	repo := &fakeRepo{recs: []store.SubmissionEventRecord{
		rec(store.OutcomeSucceeded), rec(store.OutcomeSucceeded),
		rec(store.OutcomeRejected), rec(store.OutcomeFailed),
	}}
	h := New(labels.MustFor("it"), repo, "")

	h.Update(h.Init()())
	require.NotNil(t, h.stats)
	assert.Equal(t, Stats{Total: 4, Succeeded: 2, Rejected: 1, Failed: 1}, *h.stats)
	assert.Contains(t, h.View(80, 24), "4 sent")
}

func TestStatsErrorIgnored(t *testing.T) {
	h := New(labels.MustFor("it"), &fakeRepo{err: errors.New("locked")}, "")
	h.Update(h.Init()())
	assert.Nil(t, h.stats)
}

func TestQuit(t *testing.T) {
	h := New(labels.MustFor("it"), nil, "")
	_, cmd := h.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
