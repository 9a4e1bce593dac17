package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/checkform/internal/form"
)

// fillAdult walks a fresh controller to the last adult step.
func fillAdult(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.SetName("Anna"))
	require.True(t, c.Advance())
	require.NoError(t, c.SetAge(form.Float(30)))
	require.True(t, c.Advance())
	require.NoError(t, c.SetMarried(form.Bool(false)))
	require.True(t, c.Advance())
	require.NoError(t, c.SetBirthDate(form.Date(1994, time.March, 2)))
	require.Equal(t, 3, c.Step())
}

func TestNewController(t *testing.T) {
	c := New()
	assert.Equal(t, 0, c.Step())
	assert.Equal(t, StatusIdle, c.Status())
	assert.True(t, c.Record().IsZero())
	assert.NotEmpty(t, c.SessionID())
	assert.False(t, c.IsValidStep())
	assert.False(t, c.IsLastStep())
}

func TestAdvanceRequiresGate(t *testing.T) {
	c := New()
	assert.False(t, c.Advance())
	assert.Equal(t, 0, c.Step())

	require.NoError(t, c.SetName("Ada"))
	assert.True(t, c.IsValidStep())
	assert.True(t, c.Advance())
	assert.Equal(t, 1, c.Step())
}

func TestAdvanceStopsOnLastStep(t *testing.T) {
	c := New()
	fillAdult(t, c)
	assert.True(t, c.IsLastStep())
	assert.False(t, c.Advance())
	assert.Equal(t, 3, c.Step())
}

func TestRetreatKeepsAnswers(t *testing.T) {
	c := New()
	fillAdult(t, c)
	before := c.Record()

	for c.Retreat() {
	}
	assert.Equal(t, 0, c.Step())
	assert.Equal(t, before, c.Record())
	assert.False(t, c.Retreat())

	for c.Advance() {
	}
	assert.Equal(t, 3, c.Step())
	assert.Equal(t, before, c.Record())
}

func TestAdultTraversalOrder(t *testing.T) {
	c := New()
	var visited []form.Field
	record := func() {
		f, ok := c.CurrentField()
		require.True(t, ok)
		visited = append(visited, f)
	}

	record()
	require.NoError(t, c.UpdateField(form.FieldName, "Anna"))
	require.True(t, c.Advance())
	record()
	require.NoError(t, c.UpdateField(form.FieldAge, "30"))
	require.True(t, c.Advance())
	record()
	require.False(t, c.Advance(), "is_married is required for adults")
	require.NoError(t, c.UpdateField(form.FieldIsMarried, "no"))
	require.True(t, c.Advance())
	record()
	require.NoError(t, c.UpdateField(form.FieldBirthDate, "02-03-1994"))

	assert.Equal(t, []form.Field{form.FieldName, form.FieldAge, form.FieldIsMarried, form.FieldBirthDate}, visited)
	assert.Equal(t, 4, c.StepCount())
	assert.True(t, c.IsLastStep())
	assert.True(t, c.IsValidStep())
}

func TestAgeChangeClampsStep(t *testing.T) {
	c := New()
	fillAdult(t, c)

	require.NoError(t, c.SetAge(form.Float(12)))
	assert.Equal(t, 2, c.Step())
	assert.Equal(t, 3, c.StepCount())
	f, _ := c.CurrentField()
	assert.Equal(t, form.FieldBirthDate, f)
	assert.True(t, c.IsLastStep())

	require.NoError(t, c.SetAge(nil))
	assert.Equal(t, 1, c.Step())
	assert.Equal(t, 2, c.StepCount())
}

func TestUpdateFieldParseError(t *testing.T) {
	c := New()
	require.NoError(t, c.SetName("Ada"))
	require.True(t, c.Advance())

	err := c.UpdateField(form.FieldAge, "twelve")
	assert.ErrorIs(t, err, form.ErrNotANumber)
	assert.Equal(t, "twelve", c.Value(form.FieldAge))
	assert.Equal(t, form.MsgAgeNotNumber, c.FieldError(form.FieldAge))
	assert.False(t, c.IsValidStep())

	require.NoError(t, c.UpdateField(form.FieldAge, "12"))
	assert.Empty(t, c.FieldErrors(form.FieldAge))
	assert.True(t, c.IsValidStep())
}

func TestFieldErrorsOnlyForTouchedFields(t *testing.T) {
	c := New()
	assert.Empty(t, c.FieldErrors(form.FieldName))

	require.NoError(t, c.UpdateField(form.FieldName, ""))
	assert.Equal(t, []string{form.MsgNameTooShort}, c.FieldErrors(form.FieldName))

	require.NoError(t, c.UpdateField(form.FieldName, "Ada"))
	assert.Empty(t, c.FieldErrors(form.FieldName))
	assert.Empty(t, c.FieldErrors(form.FieldAge))
}

func TestUpdateFieldUnknown(t *testing.T) {
	c := New()
	assert.Error(t, c.UpdateField(form.Field("nickname"), "x"))
}

func TestValueFormatsStoredAnswers(t *testing.T) {
	c := New()
	require.NoError(t, c.SetAge(form.Float(30)))
	require.NoError(t, c.SetMarried(form.Bool(true)))
	require.NoError(t, c.SetBirthDate(form.Date(1994, time.March, 2)))

	assert.Equal(t, "30", c.Value(form.FieldAge))
	assert.Equal(t, "yes", c.Value(form.FieldIsMarried))
	assert.Equal(t, "02-03-1994", c.Value(form.FieldBirthDate))
}

func TestRecordIsACopy(t *testing.T) {
	c := New()
	require.NoError(t, c.SetAge(form.Float(30)))
	r := c.Record()
	*r.Age = 5
	assert.Equal(t, 30.0, *c.Record().Age)
}

func TestRecordErrorsOnLastStep(t *testing.T) {
	c := New()
	fillAdult(t, c)
	assert.Empty(t, c.RecordErrors())
	require.NoError(t, c.SetMarried(nil))
	assert.Equal(t, []string{form.MsgMarriedRequired}, c.RecordErrors())
}
