package telemetry

import (
	"context"
	"database/sql"
)

// schema contains the DDL for the telemetry tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id           TEXT PRIMARY KEY,
		started_at   TEXT NOT NULL,
		finished_at  TEXT,
		budget_us    INTEGER NOT NULL,
		total_frames INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS frames (
		run_id      TEXT NOT NULL,
		frame       INTEGER NOT NULL,
		executed    INTEGER NOT NULL,
		deferred    INTEGER NOT NULL,
		elapsed_us  INTEGER NOT NULL,
		utilization REAL NOT NULL,
		peak_depth  INTEGER NOT NULL,
		transform   INTEGER NOT NULL,
		visibility  INTEGER NOT NULL,
		physics     INTEGER NOT NULL,
		lod         INTEGER NOT NULL,
		ai          INTEGER NOT NULL,
		created_at  TEXT NOT NULL,
		PRIMARY KEY (run_id, frame)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_frames_run_id ON frames(run_id)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
