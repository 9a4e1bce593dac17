package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/checkform/internal/form"
	"github.com/abhisek/checkform/internal/submit"
)

func TestMarioRoundTrip(t *testing.T) {
	c := New()
	require.NoError(t, c.SetName("Mario"))
	require.True(t, c.Advance())
	require.NoError(t, c.SetAge(form.Float(16)))
	require.True(t, c.Advance())

	f, _ := c.CurrentField()
	assert.Equal(t, form.FieldBirthDate, f)
	require.NoError(t, c.SetBirthDate(form.Date(2010, time.May, 1)))
	assert.True(t, c.IsLastStep())

	mock := submit.NewMockClient(submit.MockResponse{Result: &submit.Result{Success: true}})
	a, ok := c.Submit()
	require.True(t, ok)
	assert.Equal(t, StatusSubmitting, c.Status())

	assert.True(t, c.Apply(a.Run(context.Background(), mock)))
	assert.Equal(t, StatusSucceeded, c.Status())
	assert.True(t, c.Record().IsZero())
	assert.Equal(t, 0, c.Step())

	require.Len(t, mock.Records, 1)
	assert.Equal(t, "Mario", mock.Records[0].Name)
	assert.Nil(t, mock.Records[0].IsMarried)
}

func TestAnnaRejected(t *testing.T) {
	c := New()
	fillAdult(t, c)

	rejection := &submit.Result{
		Success: false,
		Errors:  []submit.FieldError{{Field: "age", Messages: []string{"must be an integer"}}},
	}
	mock := submit.NewMockClient(submit.MockResponse{Result: rejection})

	a, ok := c.Submit()
	require.True(t, ok)
	assert.True(t, c.Apply(a.Run(context.Background(), mock)))

	assert.Equal(t, StatusFailed, c.Status())
	assert.Equal(t, FailureRejected, c.FailureKind())
	assert.Equal(t, []string{"must be an integer"}, c.LastResult().Messages())
	assert.Equal(t, "Anna", c.Record().Name)

	assert.True(t, c.Edit())
	assert.Equal(t, StatusIdle, c.Status())
	assert.Equal(t, 3, c.Step())
	assert.Nil(t, c.LastResult())
}

func TestDoubleSubmitIsNoop(t *testing.T) {
	c := New()
	fillAdult(t, c)

	first, ok := c.Submit()
	require.True(t, ok)
	second, ok := c.Submit()
	assert.False(t, ok)
	assert.Nil(t, second)
	assert.True(t, c.InFlight())
	assert.Equal(t, uint64(1), first.Token)
}

func TestSubmitRequiresLastStepAndValidRecord(t *testing.T) {
	c := New()
	require.NoError(t, c.SetName("Anna"))
	_, ok := c.Submit()
	assert.False(t, ok, "not on last step")

	d := New()
	fillAdult(t, d)
	require.NoError(t, d.SetName(""))
	_, ok = d.Submit()
	assert.False(t, ok, "empty name fails the schema")
	assert.Equal(t, StatusIdle, d.Status())
	assert.Equal(t, form.MsgNameTooShort, d.FieldError(form.FieldName))
}

func TestCancelDiscardsLateOutcome(t *testing.T) {
	c := New()
	fillAdult(t, c)

	a, ok := c.Submit()
	require.True(t, ok)
	assert.True(t, c.Cancel())
	assert.Equal(t, StatusIdle, c.Status())
	assert.False(t, c.InFlight())

	late := Outcome{Token: a.Token, Result: &submit.Result{Success: true}}
	assert.False(t, c.Apply(late))
	assert.Equal(t, StatusIdle, c.Status())
	assert.Nil(t, c.LastResult())
	assert.Equal(t, "Anna", c.Record().Name)
}

func TestStaleOutcomeAfterResubmit(t *testing.T) {
	c := New()
	fillAdult(t, c)

	old, _ := c.Submit()
	require.True(t, c.Cancel())
	current, ok := c.Submit()
	require.True(t, ok)
	assert.NotEqual(t, old.Token, current.Token)

	assert.False(t, c.Apply(Outcome{Token: old.Token, Err: errors.New("boom")}))
	assert.Equal(t, StatusSubmitting, c.Status())

	assert.True(t, c.Apply(Outcome{Token: current.Token, Result: &submit.Result{Success: true}}))
	assert.Equal(t, StatusSucceeded, c.Status())
}

func TestStaleOutcomeAfterReset(t *testing.T) {
	c := New()
	fillAdult(t, c)
	session := c.SessionID()

	a, _ := c.Submit()
	c.Reset()
	assert.NotEqual(t, session, c.SessionID())
	assert.False(t, c.Apply(Outcome{Token: a.Token, Result: &submit.Result{Success: true}}))
	assert.Equal(t, StatusIdle, c.Status())
	assert.True(t, c.Record().IsZero())
}

func TestTransportFailureAndRetry(t *testing.T) {
	c := New()
	fillAdult(t, c)
	mock := submit.NewMockClient(
		submit.MockResponse{Err: &submit.ErrTransport{Err: errors.New("connection refused")}},
		submit.MockResponse{Result: &submit.Result{Success: true}},
	)

	a, _ := c.Submit()
	assert.True(t, c.Apply(a.Run(context.Background(), mock)))
	assert.Equal(t, StatusFailed, c.Status())
	assert.Equal(t, FailureTransport, c.FailureKind())
	assert.Contains(t, c.FailureMessage(), "connection refused")

	assert.ErrorIs(t, c.SetName("Other"), ErrLocked)

	retry, ok := c.Retry()
	require.True(t, ok)
	assert.Greater(t, retry.Token, a.Token)
	assert.Equal(t, a.Record, retry.Record)

	assert.True(t, c.Apply(retry.Run(context.Background(), mock)))
	assert.Equal(t, StatusSucceeded, c.Status())
	require.Len(t, mock.Records, 2)
	assert.Equal(t, mock.Records[0], mock.Records[1])
}

func TestRetryOnlyAfterTransportFailure(t *testing.T) {
	c := New()
	_, ok := c.Retry()
	assert.False(t, ok)

	fillAdult(t, c)
	a, _ := c.Submit()
	c.Apply(Outcome{Token: a.Token, Result: &submit.Result{Success: false}})
	_, ok = c.Retry()
	assert.False(t, ok, "rejections are fixed by editing")
}

func TestNilResultIsTransportFailure(t *testing.T) {
	c := New()
	fillAdult(t, c)
	a, _ := c.Submit()
	assert.True(t, c.Apply(Outcome{Token: a.Token}))
	assert.Equal(t, FailureTransport, c.FailureKind())
}

func TestEditsLockedWhileSubmitting(t *testing.T) {
	c := New()
	fillAdult(t, c)
	c.Submit()

	assert.ErrorIs(t, c.SetAge(form.Float(5)), ErrLocked)
	assert.ErrorIs(t, c.UpdateField(form.FieldName, "x"), ErrLocked)
	assert.False(t, c.Retreat())
	assert.False(t, c.Advance())
	assert.False(t, c.Edit())
}

func TestRetreatNeedsIdle(t *testing.T) {
	c := New()
	fillAdult(t, c)
	last := c.Step()

	a, _ := c.Submit()
	c.Apply(Outcome{Token: a.Token, Err: errors.New("refused")})
	require.Equal(t, StatusFailed, c.Status())
	assert.False(t, c.Retreat())
	assert.Equal(t, last, c.Step())

	require.True(t, c.Edit())
	assert.True(t, c.Retreat())
	assert.Equal(t, last-1, c.Step())

	require.True(t, c.Advance())
	c.Submit()
	require.True(t, c.Cancel())
	assert.True(t, c.Retreat())
}

func TestAttemptCarriesIdentity(t *testing.T) {
	c := New()
	fillAdult(t, c)
	a, _ := c.Submit()

	var got submit.AttemptInfo
	s := submitterFunc(func(ctx context.Context, _ form.AnswerRecord) (*submit.Result, error) {
		got = submit.AttemptFrom(ctx)
		return &submit.Result{Success: true}, nil
	})
	a.Run(context.Background(), s)

	assert.Equal(t, c.SessionID(), got.SessionID)
	assert.Equal(t, a.Token, got.Token)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "submitting", StatusSubmitting.String())
	assert.Equal(t, "succeeded", StatusSucceeded.String())
	assert.Equal(t, "failed", StatusFailed.String())
}

type submitterFunc func(context.Context, form.AnswerRecord) (*submit.Result, error)

func (f submitterFunc) Submit(ctx context.Context, r form.AnswerRecord) (*submit.Result, error) {
	return f(ctx, r)
}
