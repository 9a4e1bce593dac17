package store

import (
	"context"
	"time"
)

// QueryOpts configures journal queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // exact match when set
}

// Submission kinds.
const (
	KindForm = "form"
	KindName = "name"
)

// Submission outcomes as seen by the transport.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// FieldErrorData is the persisted form of a remote field rejection.
type FieldErrorData struct {
	Field    string   `json:"field"`
	Messages []string `json:"messages"`
}

// SubmissionEventData captures one submission attempt.
type SubmissionEventData struct {
	SessionID    string
	Attempt      uint64
	Kind         string
	Outcome      string
	Payload      string
	FieldErrors  []FieldErrorData
	ErrorMessage string
	LatencyMs    int64
}

// SubmissionEventRecord is a journal entry read back from the store.
type SubmissionEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SubmissionEventData
}

// SubmissionRepo provides append and query access to the submission journal.
type SubmissionRepo interface {
	// AppendSubmission records a submission attempt.
	AppendSubmission(ctx context.Context, data SubmissionEventData) error

	// QuerySubmissions returns journal entries, newest first.
	QuerySubmissions(ctx context.Context, opts QueryOpts) ([]SubmissionEventRecord, error)

	// GetSubmission returns the entry with the given ID, or nil if none exists.
	GetSubmission(ctx context.Context, id int) (*SubmissionEventRecord, error)
}
