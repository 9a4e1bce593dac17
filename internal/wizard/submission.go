package wizard

import (
	"context"

	"github.com/abhisek/checkform/internal/form"
	"github.com/abhisek/checkform/internal/submit"
)

// Status is the submission lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// FailureKind tells the two failure shapes apart.
type FailureKind int

const (
	FailureNone      FailureKind = iota
	FailureRejected              // remote party rejected fields; see LastResult
	FailureTransport             // no usable result; see FailureMessage
)

// Failure describes why the last attempt failed.
type Failure struct {
	Kind    FailureKind
	Message string
}

// Submitter is the part of the submission client the wizard needs.
type Submitter interface {
	Submit(ctx context.Context, r form.AnswerRecord) (*submit.Result, error)
}

// Attempt is an issued submission. Run it off the control loop and feed
// the Outcome back through Controller.Apply.
type Attempt struct {
	Token     uint64
	SessionID string
	Record    form.AnswerRecord
}

// Outcome is the single resolution of an Attempt.
type Outcome struct {
	Token  uint64
	Result *submit.Result
	Err    error
}

// Run performs the attempt with s. It always returns exactly one Outcome.
func (a *Attempt) Run(ctx context.Context, s Submitter) Outcome {
	ctx = submit.WithAttempt(ctx, submit.AttemptInfo{SessionID: a.SessionID, Token: a.Token})
	res, err := s.Submit(ctx, a.Record)
	return Outcome{Token: a.Token, Result: res, Err: err}
}

// Status returns the submission status.
func (c *Controller) Status() Status { return c.status }

// InFlight reports whether an attempt is awaiting its outcome.
func (c *Controller) InFlight() bool { return c.inflight != 0 }

// LastResult returns the result of the last applied attempt, if any.
func (c *Controller) LastResult() *submit.Result { return c.lastResult }

// FailureKind returns which failure shape the Failed status carries.
func (c *Controller) FailureKind() FailureKind { return c.failure.Kind }

// FailureMessage returns the generic message of a transport failure.
func (c *Controller) FailureMessage() string { return c.failure.Message }

// Submit issues an attempt for the current record. It is a no-op unless
// the wizard is idle on the last step, the step's gate passes and the
// record satisfies the schema.
func (c *Controller) Submit() (*Attempt, bool) {
	if c.status != StatusIdle || !c.IsLastStep() || !c.IsValidStep() {
		return nil, false
	}
	if form.ValidateRecord(c.record) != nil {
		for _, f := range form.Fields {
			c.touched[f] = true
		}
		return nil, false
	}
	rec := c.record.Clone()
	c.pending = &rec
	return c.issue(), true
}

// Retry re-issues the record of a transport failure under a new token.
func (c *Controller) Retry() (*Attempt, bool) {
	if c.status != StatusFailed || c.failure.Kind != FailureTransport || c.pending == nil {
		return nil, false
	}
	return c.issue(), true
}

func (c *Controller) issue() *Attempt {
	c.seq++
	c.inflight = c.seq
	c.status = StatusSubmitting
	c.lastResult = nil
	c.failure = Failure{}
	return &Attempt{
		Token:     c.seq,
		SessionID: c.sessionID,
		Record:    c.pending.Clone(),
	}
}

// Apply records the outcome of the in-flight attempt. Outcomes of
// cancelled or superseded attempts are discarded and Apply returns false.
func (c *Controller) Apply(o Outcome) bool {
	if c.status != StatusSubmitting || o.Token == 0 || o.Token != c.inflight {
		return false
	}
	c.inflight = 0

	switch {
	case o.Err != nil || o.Result == nil:
		c.status = StatusFailed
		msg := "empty response"
		if o.Err != nil {
			msg = o.Err.Error()
		}
		c.failure = Failure{Kind: FailureTransport, Message: msg}

	case o.Result.Success:
		c.status = StatusSucceeded
		c.lastResult = o.Result
		c.record = form.AnswerRecord{}
		c.step = 0
		c.touched = make(map[form.Field]bool)
		c.parseErrs = make(map[form.Field]string)
		c.raw = make(map[form.Field]string)
		c.pending = nil

	default:
		c.status = StatusFailed
		c.lastResult = o.Result
		c.failure = Failure{Kind: FailureRejected}
	}
	return true
}

// Cancel abandons the in-flight attempt and returns to Idle with the
// answers intact. The attempt's outcome will be discarded on arrival.
func (c *Controller) Cancel() bool {
	if c.status != StatusSubmitting {
		return false
	}
	c.status = StatusIdle
	c.inflight = 0
	return true
}

// Edit leaves a Failed status for Idle so answers can be corrected.
func (c *Controller) Edit() bool {
	if c.status != StatusFailed {
		return false
	}
	c.status = StatusIdle
	c.failure = Failure{}
	c.lastResult = nil
	return true
}
