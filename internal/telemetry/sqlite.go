package telemetry

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"framepacer/internal/sched"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// WAL keeps frame inserts from blocking concurrent readers.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "telemetry"),
	}, nil
}

// Migrate creates the runs and frames tables.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateRun inserts a run row.
func (s *SQLiteStore) CreateRun(ctx context.Context, run Run) error {
	s.logger.Debug("sql", "op", "insert", "table", "runs", "id", run.ID)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, budget_us, total_frames) VALUES (?, ?, ?, ?)`,
		run.ID, run.StartedAt.Format(time.RFC3339Nano), run.Budget.Microseconds(), run.TotalFrames,
	)
	return err
}

// RecordFrame inserts one frame row for the run.
func (s *SQLiteStore) RecordFrame(ctx context.Context, runID string, report sched.FrameReport) error {
	per := report.Stats.FramePerCategory
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO frames (run_id, frame, executed, deferred, elapsed_us, utilization, peak_depth,
		                     transform, visibility, physics, lod, ai, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, report.Frame,
		report.Stats.FrameJobsExecuted, report.Stats.FrameJobsDeferred,
		report.Stats.FrameElapsed.Microseconds(), report.Stats.BudgetUtilization,
		report.Stats.PeakQueueDepth,
		per[sched.Transform], per[sched.Visibility], per[sched.Physics],
		per[sched.LevelOfDetail], per[sched.AI],
		time.Now().Format(time.RFC3339Nano),
	)
	return err
}

// FinishRun stamps the run's end time and frame count.
func (s *SQLiteStore) FinishRun(ctx context.Context, runID string, finishedAt time.Time, totalFrames uint64) error {
	s.logger.Debug("sql", "op", "update", "table", "runs", "id", runID)
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, total_frames = ? WHERE id = ?`,
		finishedAt.Format(time.RFC3339Nano), totalFrames, runID,
	)
	return err
}

// Summary aggregates the recorded frames of a run.
func (s *SQLiteStore) Summary(ctx context.Context, runID string) (RunSummary, error) {
	var sum RunSummary
	var avg sql.NullFloat64
	var maxDeferred, totalExecuted sql.NullInt64

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), AVG(utilization), MAX(deferred), SUM(executed)
		 FROM frames WHERE run_id = ?`, runID,
	).Scan(&sum.Frames, &avg, &maxDeferred, &totalExecuted)
	if err != nil {
		return RunSummary{}, err
	}

	sum.AvgUtilization = avg.Float64
	sum.MaxDeferred = uint64(maxDeferred.Int64)
	sum.TotalExecuted = uint64(totalExecuted.Int64)
	return sum, nil
}
