package submit

import (
	"context"
	"errors"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/abhisek/checkform/internal/form"
	"github.com/abhisek/checkform/internal/store"
)

// JournalClient is a decorator that records every attempt in the
// submission journal and logs its outcome.
type JournalClient struct {
	inner Client
	repo  store.SubmissionRepo
	log   *zap.Logger
}

var _ Client = (*JournalClient)(nil)

// WithJournal wraps a Client with journaling. A nil logger disables logging.
func WithJournal(c Client, repo store.SubmissionRepo, log *zap.Logger) Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &JournalClient{inner: c, repo: repo, log: log}
}

func (j *JournalClient) Submit(ctx context.Context, r form.AnswerRecord) (*Result, error) {
	payload, encErr := encodeRecord(r)
	if encErr != nil {
		j.log.Warn("encode journal payload", zap.String("kind", store.KindForm), zap.Error(encErr))
	}
	start := time.Now()
	res, err := j.inner.Submit(ctx, r)
	j.record(ctx, store.KindForm, string(payload), time.Since(start), res, err)
	return res, err
}

func (j *JournalClient) CheckName(ctx context.Context, name string) (*Result, error) {
	payload, encErr := json.Marshal(namePayload{Name: name})
	if encErr != nil {
		j.log.Warn("encode journal payload", zap.String("kind", store.KindName), zap.Error(encErr))
	}
	start := time.Now()
	res, err := j.inner.CheckName(ctx, name)
	j.record(ctx, store.KindName, string(payload), time.Since(start), res, err)
	return res, err
}

func (j *JournalClient) record(ctx context.Context, kind, payload string, latency time.Duration, res *Result, err error) {
	info := AttemptFrom(ctx)
	data := store.SubmissionEventData{
		SessionID: info.SessionID,
		Attempt:   info.Token,
		Kind:      kind,
		Outcome:   Classify(res, err),
		Payload:   payload,
		LatencyMs: latency.Milliseconds(),
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}
	if res != nil {
		for _, fe := range res.Errors {
			data.FieldErrors = append(data.FieldErrors, store.FieldErrorData{
				Field:    fe.Field,
				Messages: fe.Messages,
			})
		}
	}

	fields := []zap.Field{
		zap.String("kind", kind),
		zap.String("session_id", info.SessionID),
		zap.Uint64("attempt", info.Token),
		zap.String("outcome", data.Outcome),
		zap.Int64("latency_ms", data.LatencyMs),
	}
	if err != nil {
		var se *ErrStatus
		if errors.As(err, &se) {
			fields = append(fields, zap.Int("status", se.Code))
		}
		j.log.Warn("submission failed", append(fields, zap.Error(err))...)
	} else {
		j.log.Info("submission completed", append(fields, zap.Int("field_errors", len(data.FieldErrors)))...)
	}

	// Cancelled attempts are journaled too.
	if logErr := j.repo.AppendSubmission(context.WithoutCancel(ctx), data); logErr != nil {
		j.log.Error("journal submission", zap.Error(logErr))
	}
}

// Classify maps a client return pair to a journal outcome.
func Classify(res *Result, err error) string {
	switch {
	case err != nil || res == nil:
		return store.OutcomeFailed
	case res.Success:
		return store.OutcomeSucceeded
	default:
		return store.OutcomeRejected
	}
}
