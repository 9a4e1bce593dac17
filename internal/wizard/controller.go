package wizard

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/checkform/internal/form"
	"github.com/abhisek/checkform/internal/submit"
)

// ErrLocked is returned by field edits outside the Idle status.
var ErrLocked = errors.New("answers cannot change while a submission is in progress or finished")

// Controller owns the wizard: the record under construction, the current
// step and the submission lifecycle. It is not safe for concurrent use;
// all calls must come from one control loop.
type Controller struct {
	record    form.AnswerRecord
	step      int
	touched   map[form.Field]bool
	parseErrs map[form.Field]string
	raw       map[form.Field]string

	status     Status
	seq        uint64 // last issued attempt token
	inflight   uint64 // token of the attempt in flight; 0 when none
	pending    *form.AnswerRecord
	lastResult *submit.Result
	failure    Failure
	sessionID  string
}

// New creates a Controller with an empty record at step 0.
func New() *Controller {
	c := &Controller{}
	c.Reset()
	return c
}

// Reset starts a new session: the record, step and submission state
// return to their initial values. Outcomes of earlier attempts become
// stale.
func (c *Controller) Reset() {
	c.record = form.AnswerRecord{}
	c.step = 0
	c.touched = make(map[form.Field]bool)
	c.parseErrs = make(map[form.Field]string)
	c.raw = make(map[form.Field]string)
	c.status = StatusIdle
	c.inflight = 0
	c.pending = nil
	c.lastResult = nil
	c.failure = Failure{}
	c.sessionID = uuid.NewString()
}

// Step returns the current step index.
func (c *Controller) Step() int { return c.step }

// SessionID identifies the current session.
func (c *Controller) SessionID() string { return c.sessionID }

// Bracket returns the branch selected by the current age.
func (c *Controller) Bracket() AgeBracket { return BracketOf(c.record) }

// Steps returns the effective step sequence for the current age.
func (c *Controller) Steps() []StepSpec { return Sequence(c.Bracket()) }

// StepCount returns the length of the effective step sequence.
func (c *Controller) StepCount() int { return len(c.Steps()) }

// CurrentField returns the field collected on the current step.
func (c *Controller) CurrentField() (form.Field, bool) {
	s, ok := Lookup(c.step, c.Bracket())
	if !ok {
		return "", false
	}
	return s.Field, true
}

// Record returns a copy of the record under construction.
func (c *Controller) Record() form.AnswerRecord { return c.record.Clone() }

// IsLastStep reports whether forward navigation submits.
func (c *Controller) IsLastStep() bool { return IsLastStep(c.step, c.record) }

// IsValidStep reports whether the current step's gate passes.
func (c *Controller) IsValidStep() bool { return Gate(c.step, c.record) }

// Retreat moves to the previous step. Answers are kept. It is refused
// outside StatusIdle; Cancel and Edit return there first.
func (c *Controller) Retreat() bool {
	if c.status != StatusIdle || c.step == 0 {
		return false
	}
	c.step--
	return true
}

// Advance moves to the next step when the gate passes. On the last step
// it does nothing; use Submit.
func (c *Controller) Advance() bool {
	if c.status != StatusIdle || !c.IsValidStep() {
		return false
	}
	s, ok := Lookup(c.step, c.Bracket())
	if !ok || s.Next < 0 {
		return false
	}
	c.step = s.Next
	return true
}

// SetName sets the name answer.
func (c *Controller) SetName(name string) error {
	return c.set(form.FieldName, func(r *form.AnswerRecord) { r.Name = name })
}

// SetAge sets the age answer; nil un-answers it.
func (c *Controller) SetAge(age *float64) error {
	return c.set(form.FieldAge, func(r *form.AnswerRecord) { r.Age = age })
}

// SetMarried sets the marital status answer; nil un-answers it.
func (c *Controller) SetMarried(married *bool) error {
	return c.set(form.FieldIsMarried, func(r *form.AnswerRecord) { r.IsMarried = married })
}

// SetBirthDate sets the birth date answer; nil un-answers it.
func (c *Controller) SetBirthDate(d *time.Time) error {
	return c.set(form.FieldBirthDate, func(r *form.AnswerRecord) { r.BirthDate = d })
}

func (c *Controller) set(f form.Field, apply func(*form.AnswerRecord)) error {
	if c.status != StatusIdle {
		return ErrLocked
	}
	apply(&c.record)
	c.touched[f] = true
	delete(c.parseErrs, f)
	delete(c.raw, f)
	c.clamp()
	return nil
}

// UpdateField parses raw text input for f and stores it. Unparsable input
// un-answers the field and is reported by FieldErrors until corrected.
func (c *Controller) UpdateField(f form.Field, raw string) error {
	if c.status != StatusIdle {
		return ErrLocked
	}

	var err error
	switch f {
	case form.FieldName:
		c.record.Name = raw
	case form.FieldAge:
		c.record.Age, err = form.ParseAge(raw)
	case form.FieldIsMarried:
		c.record.IsMarried, err = form.ParseMarried(raw)
	case form.FieldBirthDate:
		c.record.BirthDate, err = form.ParseBirthDate(raw)
	default:
		return fmt.Errorf("unknown field %q", f)
	}

	c.touched[f] = true
	c.raw[f] = raw
	if err != nil {
		c.parseErrs[f] = err.Error()
	} else {
		delete(c.parseErrs, f)
	}
	c.clamp()
	return err
}

// Value returns the text to redisplay for f: the last raw input if any,
// else the stored answer formatted.
func (c *Controller) Value(f form.Field) string {
	if raw, ok := c.raw[f]; ok {
		return raw
	}
	switch f {
	case form.FieldName:
		return c.record.Name
	case form.FieldAge:
		return form.FormatAge(c.record.Age)
	case form.FieldIsMarried:
		if c.record.IsMarried == nil {
			return ""
		}
		if *c.record.IsMarried {
			return "yes"
		}
		return "no"
	case form.FieldBirthDate:
		return form.FormatBirthDate(c.record.BirthDate)
	}
	return ""
}

// FieldErrors returns the live violations for f. Untouched fields report
// nothing.
func (c *Controller) FieldErrors(f form.Field) []string {
	if !c.touched[f] {
		return nil
	}
	if msg, ok := c.parseErrs[f]; ok {
		return []string{msg}
	}
	return form.ValidateField(c.record, f)
}

// FieldError returns the first live violation for f, or "".
func (c *Controller) FieldError(f form.Field) string {
	if msgs := c.FieldErrors(f); len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// RecordErrors returns cross-field violations once the last step is reached.
func (c *Controller) RecordErrors() []string {
	if !c.IsLastStep() {
		return nil
	}
	return form.CrossFieldValidate(c.record)
}

// clamp keeps the step index inside the effective sequence after an
// edit changed the branch.
func (c *Controller) clamp() {
	if n := c.StepCount(); c.step > n-1 {
		c.step = n - 1
	}
}
