// internal/sched/driver.go

package sched

import (
	"context"
	"log/slog"
	"time"
)

// Producer submits jobs for the upcoming frame. The world's subsystems
// (transform sync, culling, physics, LOD, AI) sit behind this interface.
type Producer interface {
	Produce(frame uint64)
}

// Driver owns the per-frame drain loop. Once per clock pulse it asks the
// producer for work, drains the scheduler while budget remains, executes
// each dequeued job, and fans a FrameReport out to the observers.
type Driver struct {
	sched     *Scheduler
	interval  time.Duration
	producer  Producer
	observers []FrameObserver
	frame     uint64
	now       func() time.Time
	logger    *slog.Logger
}

// NewDriver creates a Driver ticking at the given frame interval.
func NewDriver(s *Scheduler, interval time.Duration, logger *slog.Logger) *Driver {
	return &Driver{
		sched:    s,
		interval: interval,
		now:      time.Now,
		logger:   logger.With("component", "driver"),
	}
}

// SetProducer registers the job producer invoked at the start of each frame.
// Must be called before Run.
func (d *Driver) SetProducer(p Producer) {
	d.producer = p
}

// AddObserver registers a telemetry consumer. Must be called before Run.
func (d *Driver) AddObserver(o FrameObserver) {
	d.observers = append(d.observers, o)
}

// Run drives frames until ctx is cancelled or maxFrames frames have run
// (0 means no limit).
func (d *Driver) Run(ctx context.Context, maxFrames uint64) error {
	clock := NewFrameClock(1)
	clock.Start(d.interval)
	defer clock.Stop()

	d.logger.Info("frame loop started",
		"interval", d.interval, "budget", d.sched.Budget(), "max_frames", maxFrames)

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("frame loop stopping", "frames", d.frame)
			return ctx.Err()
		case <-clock.Ch:
			d.Frame(ctx)
			if maxFrames > 0 && d.frame >= maxFrames {
				d.logger.Info("frame loop finished", "frames", d.frame)
				return nil
			}
		}
	}
}

// Frame runs a single frame synchronously: produce, drain, report.
// Exposed so tests and callers with their own tick source can drive frames
// one at a time.
func (d *Driver) Frame(ctx context.Context) {
	if d.producer != nil {
		d.producer.Produce(d.frame)
	}

	if err := d.sched.StartFrame(); err != nil {
		// Mismatched start/finish is a host bug. Loud in tests, recovered
		// here so a scheduling glitch does not take the game down.
		d.logger.Error("start frame failed", "error", err)
		return
	}

	for d.sched.HasBudget() {
		category, job, ok := d.sched.DequeueJob()
		if !ok {
			break // all queues empty, idle frame
		}
		start := d.now()
		if err := job.Run(ctx); err != nil {
			d.logger.Warn("job failed", "category", category, "job", job.ID, "error", err)
		}
		d.sched.RecordExecution(category, d.now().Sub(start))
	}

	d.sched.FinishFrame()
	d.frame++

	report := FrameReport{
		Frame:  d.frame,
		Budget: d.sched.Budget(),
		Depths: d.sched.Depths(),
		Stats:  d.sched.Snapshot(),
	}
	for _, o := range d.observers {
		o.OnFrameEnd(report)
	}
}

// Frames returns the number of completed frames.
func (d *Driver) Frames() uint64 {
	return d.frame
}
