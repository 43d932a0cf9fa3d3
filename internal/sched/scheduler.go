// internal/sched/scheduler.go

package sched

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"
)

// ErrFrameActive is returned by StartFrame when a frame is already open.
// It indicates a host integration bug (mismatched StartFrame/FinishFrame),
// not a runtime condition.
var ErrFrameActive = errors.New("sched: frame already active")

// Scheduler arbitrates frame time between job categories. Each frame it is
// drained in strict category priority order until the wall-clock budget runs
// out; whatever is left stays queued for the next frame. Jobs are never
// dropped or rejected; overload shows up only in the statistics.
//
// Enqueue is safe to call from producer goroutines. The frame lifecycle
// (StartFrame, HasBudget, DequeueJob, FinishFrame) must be driven from a
// single thread; FIFO order and budget accounting are sequential by design.
type Scheduler struct {
	budget atomic.Int64 // per-frame budget in nanoseconds, runtime adjustable
	queues [NumCategories]*categoryQueue
	stats  *Stats

	frameStart  time.Time
	frameActive bool

	nextID atomic.Uint64
	now    func() time.Time
	logger *slog.Logger
}

// New creates a Scheduler with the given per-frame budget and empty queues.
func New(budget time.Duration, logger *slog.Logger) *Scheduler {
	s := &Scheduler{
		stats:  NewStats(),
		now:    time.Now,
		logger: logger.With("component", "sched"),
	}
	s.budget.Store(int64(budget))
	for i := range s.queues {
		s.queues[i] = newCategoryQueue()
	}
	return s
}

// Enqueue constructs a job and appends it to the back of its category queue.
// The cost weight is clamped into [0, 1]; enqueueing always succeeds.
// Unbounded queue growth under overload is the host's problem to notice,
// via the statistics, not this layer's to reject.
func (s *Scheduler) Enqueue(category Category, cost float64, run func(ctx context.Context) error) *Job {
	j := newJob(JobID(s.nextID.Add(1)), category, cost, s.now(), run)
	depth := s.queues[category].push(j)
	s.stats.noteDepth(depth)
	return j
}

// StartFrame opens a draining frame and resets the per-frame statistics.
// Calling it again before FinishFrame returns ErrFrameActive and leaves the
// open frame untouched.
func (s *Scheduler) StartFrame() error {
	if s.frameActive {
		return ErrFrameActive
	}
	s.frameStart = s.now()
	s.frameActive = true
	s.stats.beginFrame()
	return nil
}

// HasBudget reports whether wall-clock time remains in the current frame.
// The gate is deliberately coarse: it is checked before a dequeue, so a job
// may start near the edge of the budget and push the frame slightly over.
// Outside an active frame it reports true.
func (s *Scheduler) HasBudget() bool {
	if !s.frameActive {
		return true
	}
	return s.now().Sub(s.frameStart) < s.Budget()
}

// DequeueJob pops the front job of the highest-priority non-empty queue.
// Priority picks the queue; within a queue strict submission order holds.
// It returns false only when every queue is empty.
func (s *Scheduler) DequeueJob() (Category, *Job, bool) {
	for _, category := range priorityOrder {
		if j, ok := s.queues[category].pop(); ok {
			return category, j, true
		}
	}
	return 0, nil, false
}

// RecordExecution charges one executed job against the statistics.
func (s *Scheduler) RecordExecution(category Category, elapsed time.Duration) {
	s.stats.RecordExecution(category, elapsed)
}

// FinishFrame closes the frame and finalizes its statistics. The deferred
// count is the sum of all queue depths at this instant. Calling it with no
// open frame is a logged no-op.
func (s *Scheduler) FinishFrame() {
	if !s.frameActive {
		s.logger.Warn("finish frame without active frame")
		return
	}
	elapsed := s.now().Sub(s.frameStart)
	s.stats.endFrame(elapsed, s.Budget(), s.TotalQueued())
	s.frameActive = false
}

// Budget returns the current per-frame budget.
func (s *Scheduler) Budget() time.Duration {
	return time.Duration(s.budget.Load())
}

// SetBudget adjusts the per-frame budget at runtime. Takes effect on the
// next HasBudget check.
func (s *Scheduler) SetBudget(budget time.Duration) {
	s.budget.Store(int64(budget))
	s.logger.Info("budget adjusted", "budget", budget)
}

// QueueDepth returns the pending job count for one category.
func (s *Scheduler) QueueDepth(category Category) int {
	return s.queues[category].depth()
}

// TotalQueued returns the pending job count across all categories.
func (s *Scheduler) TotalQueued() int {
	total := 0
	for i := range s.queues {
		total += s.queues[i].depth()
	}
	return total
}

// Depths returns the pending job count per category.
func (s *Scheduler) Depths() [NumCategories]int {
	var depths [NumCategories]int
	for i := range s.queues {
		depths[i] = s.queues[i].depth()
	}
	return depths
}

// Snapshot returns a read-only copy of the current statistics.
func (s *Scheduler) Snapshot() Snapshot {
	return s.stats.Snapshot()
}

// ResetStats clears all statistics, cumulative counters included.
func (s *Scheduler) ResetStats() {
	s.stats.Reset()
}
