package telemetry

import (
	"context"
	"log/slog"
	"sync"

	"framepacer/internal/sched"
)

// Recorder decouples the frame loop from store writes: OnFrameEnd enqueues
// the report without blocking, a background goroutine does the inserts.
// Reports are dropped rather than queued when the buffer is full; the frame
// budget is worth more than a complete history.
// Implements sched.FrameObserver.
type Recorder struct {
	store     Store
	runID     string
	reports   chan sched.FrameReport
	done      chan struct{}
	closeOnce sync.Once
	logger    *slog.Logger

	mu      sync.Mutex
	dropped uint64
}

// NewRecorder starts the background writer for the given run.
func NewRecorder(store Store, runID string, logger *slog.Logger) *Recorder {
	r := &Recorder{
		store:   store,
		runID:   runID,
		reports: make(chan sched.FrameReport, 256),
		done:    make(chan struct{}),
		logger:  logger.With("component", "recorder"),
	}
	go r.loop()
	return r
}

// OnFrameEnd enqueues the report without blocking the frame thread.
func (r *Recorder) OnFrameEnd(report sched.FrameReport) {
	select {
	case r.reports <- report:
	default:
		r.mu.Lock()
		r.dropped++
		r.mu.Unlock()
	}
}

// Close flushes pending reports and stops the writer.
func (r *Recorder) Close() {
	r.closeOnce.Do(func() { close(r.reports) })
	<-r.done

	r.mu.Lock()
	dropped := r.dropped
	r.mu.Unlock()
	if dropped > 0 {
		r.logger.Warn("frame reports dropped", "count", dropped)
	}
}

func (r *Recorder) loop() {
	defer close(r.done)
	ctx := context.Background()
	for report := range r.reports {
		if err := r.store.RecordFrame(ctx, r.runID, report); err != nil {
			r.logger.Error("record frame", "frame", report.Frame, "error", err)
		}
	}
}
