package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	json "github.com/goccy/go-json"
)

const submissionTable = "submission_events"

var submissionColumns = []string{
	"id", "sequence", "timestamp", "session_id", "attempt", "kind",
	"outcome", "payload", "field_errors", "error_message", "latency_ms",
}

type submissionRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *submissionRepo) AppendSubmission(ctx context.Context, data SubmissionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	var fieldErrors string
	if len(data.FieldErrors) > 0 {
		b, err := json.Marshal(data.FieldErrors)
		if err != nil {
			return fmt.Errorf("encode field errors: %w", err)
		}
		fieldErrors = string(b)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(submissionTable).
		Columns(submissionColumns[1:]...).
		Values(
			seqNum,
			time.Now().UTC().UnixMilli(),
			data.SessionID,
			int64(data.Attempt),
			data.Kind,
			data.Outcome,
			data.Payload,
			fieldErrors,
			data.ErrorMessage,
			data.LatencyMs,
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save submission event: %w", err)
	}
	return nil
}

func (r *submissionRepo) QuerySubmissions(ctx context.Context, opts QueryOpts) ([]SubmissionEventRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(submissionColumns...).
		From(entsql.Table(submissionTable)).
		OrderBy(entsql.Desc("sequence"))

	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UTC().UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UTC().UnixMilli()))
	}
	if opts.SessionID != "" {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	return r.query(ctx, query, args)
}

func (r *submissionRepo) GetSubmission(ctx context.Context, id int) (*SubmissionEventRecord, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(submissionColumns...).
		From(entsql.Table(submissionTable)).
		Where(entsql.EQ("id", id)).
		Limit(1).
		Query()

	records, err := r.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func (r *submissionRepo) query(ctx context.Context, query string, args []any) ([]SubmissionEventRecord, error) {
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query submission events: %w", err)
	}
	defer rows.Close()

	var out []SubmissionEventRecord
	for rows.Next() {
		var (
			rec         SubmissionEventRecord
			tsMillis    int64
			attempt     int64
			fieldErrors string
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.Sequence,
			&tsMillis,
			&rec.SessionID,
			&attempt,
			&rec.Kind,
			&rec.Outcome,
			&rec.Payload,
			&fieldErrors,
			&rec.ErrorMessage,
			&rec.LatencyMs,
		); err != nil {
			return nil, fmt.Errorf("scan submission event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(tsMillis).UTC()
		rec.Attempt = uint64(attempt)
		if fieldErrors != "" {
			if err := json.Unmarshal([]byte(fieldErrors), &rec.FieldErrors); err != nil {
				return nil, fmt.Errorf("decode field errors: %w", err)
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submission events: %w", err)
	}
	return out, nil
}
