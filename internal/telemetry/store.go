package telemetry

import (
	"context"
	"time"

	"framepacer/internal/sched"
)

// Run identifies one recorded simulation run.
type Run struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	Budget      time.Duration
	TotalFrames uint64
}

// RunSummary aggregates the recorded frames of a run.
type RunSummary struct {
	Frames         int
	AvgUtilization float64
	MaxDeferred    uint64
	TotalExecuted  uint64
}

// Store persists per-frame scheduler telemetry for later analysis.
type Store interface {
	CreateRun(ctx context.Context, run Run) error
	RecordFrame(ctx context.Context, runID string, report sched.FrameReport) error
	FinishRun(ctx context.Context, runID string, finishedAt time.Time, totalFrames uint64) error
	Summary(ctx context.Context, runID string) (RunSummary, error)

	Migrate(ctx context.Context) error
	Close() error
}
