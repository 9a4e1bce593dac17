package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS submission_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		attempt INTEGER NOT NULL DEFAULT 0,
		kind TEXT NOT NULL,
		outcome TEXT NOT NULL,
		payload TEXT NOT NULL DEFAULT '',
		field_errors TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT '',
		latency_ms INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS submission_events_session_id ON submission_events (session_id)`,
	`CREATE INDEX IF NOT EXISTS submission_events_timestamp ON submission_events (timestamp)`,
}

// migrate creates the journal tables. The journal is append-only and has
// a single version, so idempotent DDL is all the migration it needs.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range schemaDDL {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("exec ddl: %w", err)
		}
	}
	return nil
}
