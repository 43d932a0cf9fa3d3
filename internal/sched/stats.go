// internal/sched/stats.go

package sched

import (
	"sync/atomic"
	"time"
)

// emaAlpha is the smoothing factor for the rolling average frame time.
const emaAlpha = 0.1

// Stats accumulates per-frame and cumulative scheduler counters. Per-frame
// fields are reset by StartFrame; cumulative fields grow until Reset. Apart
// from the peak queue depth (which producers bump from enqueue), all fields
// are touched only by the frame thread.
type Stats struct {
	// per-frame
	frameExecuted    uint64
	frameDeferred    uint64
	framePerCategory [NumCategories]uint64
	frameElapsed     time.Duration
	frameUtilization float64

	// cumulative
	peakDepth    atomic.Int64
	totalFrames  uint64
	totalJobs    uint64
	totalJobTime time.Duration
	avgFrameMS   float64
	overruns     uint64
}

// Snapshot is a read-only copy of all current counters, safe to hand to
// telemetry and UI consumers.
type Snapshot struct {
	// Per-frame figures for the most recently finished frame.
	FrameJobsExecuted uint64
	FrameJobsDeferred uint64
	FramePerCategory  [NumCategories]uint64
	FrameElapsed      time.Duration
	BudgetUtilization float64 // elapsed / budget, may exceed 1.0 on overrun

	// Cumulative figures since construction or the last Reset.
	PeakQueueDepth    int
	TotalFrames       uint64
	TotalJobsExecuted uint64
	AvgJobTime        time.Duration
	AvgFrameMS        float64 // exponential moving average
	BudgetOverruns    uint64  // frames whose elapsed time exceeded the budget
}

// NewStats returns a zeroed accumulator.
func NewStats() *Stats {
	return &Stats{}
}

// RecordExecution counts one executed job and folds its elapsed time into the
// running averages.
func (st *Stats) RecordExecution(category Category, elapsed time.Duration) {
	st.frameExecuted++
	if category.Valid() {
		st.framePerCategory[category]++
	}
	st.totalJobs++
	st.totalJobTime += elapsed
}

// noteDepth raises the peak observed queue depth if depth exceeds it.
// Safe to call from producer goroutines.
func (st *Stats) noteDepth(depth int) {
	d := int64(depth)
	for {
		cur := st.peakDepth.Load()
		if d <= cur || st.peakDepth.CompareAndSwap(cur, d) {
			return
		}
	}
}

// beginFrame resets the per-frame counters. Cumulative counters are untouched.
func (st *Stats) beginFrame() {
	st.frameExecuted = 0
	st.frameDeferred = 0
	st.framePerCategory = [NumCategories]uint64{}
	st.frameElapsed = 0
	st.frameUtilization = 0
}

// endFrame finalizes the per-frame figures and rolls them into the
// cumulative counters.
func (st *Stats) endFrame(elapsed, budget time.Duration, deferred int) {
	st.frameElapsed = elapsed
	st.frameDeferred = uint64(deferred)
	if budget > 0 {
		st.frameUtilization = float64(elapsed) / float64(budget)
	}

	st.totalFrames++
	if elapsed > budget {
		st.overruns++
	}

	ms := float64(elapsed) / float64(time.Millisecond)
	if st.totalFrames == 1 {
		st.avgFrameMS = ms
	} else {
		st.avgFrameMS = emaAlpha*ms + (1-emaAlpha)*st.avgFrameMS
	}
}

// Snapshot copies the current counters.
func (st *Stats) Snapshot() Snapshot {
	snap := Snapshot{
		FrameJobsExecuted: st.frameExecuted,
		FrameJobsDeferred: st.frameDeferred,
		FramePerCategory:  st.framePerCategory,
		FrameElapsed:      st.frameElapsed,
		BudgetUtilization: st.frameUtilization,
		PeakQueueDepth:    int(st.peakDepth.Load()),
		TotalFrames:       st.totalFrames,
		TotalJobsExecuted: st.totalJobs,
		AvgFrameMS:        st.avgFrameMS,
		BudgetOverruns:    st.overruns,
	}
	if st.totalJobs > 0 {
		snap.AvgJobTime = st.totalJobTime / time.Duration(st.totalJobs)
	}
	return snap
}

// Reset zeroes every counter, cumulative ones included.
func (st *Stats) Reset() {
	st.beginFrame()
	st.peakDepth.Store(0)
	st.totalFrames = 0
	st.totalJobs = 0
	st.totalJobTime = 0
	st.avgFrameMS = 0
	st.overruns = 0
}
