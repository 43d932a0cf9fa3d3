package sched

import (
	"context"
	"time"
)

// JobID uniquely identifies a job for logging and diagnostics.
type JobID uint64

// Job is one schedulable unit of per-frame work. A Job is immutable once
// constructed; it moves between a category queue and the drain loop but is
// never modified in flight.
type Job struct {
	ID         JobID
	Category   Category
	CostWeight float64   // relative cost estimate in [0, 1], clamped at construction
	CreatedAt  time.Time // enqueue time, diagnostics only; FIFO order is enqueue order
	Run        func(ctx context.Context) error
}

// newJob builds a Job with the cost weight clamped into the legal range.
// Out-of-range weights are a caller estimate error, not a fault, so they are
// clamped rather than rejected.
func newJob(id JobID, category Category, cost float64, createdAt time.Time, run func(ctx context.Context) error) *Job {
	if cost < 0.0 {
		cost = 0.0
	} else if cost > 1.0 {
		cost = 1.0
	}

	return &Job{
		ID:         id,
		Category:   category,
		CostWeight: cost,
		CreatedAt:  createdAt,
		Run:        run,
	}
}
