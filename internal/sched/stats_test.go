package sched

import (
	"math"
	"testing"
	"time"
)

func TestStatsRecordExecution(t *testing.T) {
	st := NewStats()
	st.beginFrame()

	st.RecordExecution(Transform, 100*time.Microsecond)
	st.RecordExecution(Transform, 200*time.Microsecond)
	st.RecordExecution(Physics, 300*time.Microsecond)

	snap := st.Snapshot()
	if snap.FrameJobsExecuted != 3 {
		t.Errorf("expected 3 executed, got %d", snap.FrameJobsExecuted)
	}
	if snap.FramePerCategory[Transform] != 2 {
		t.Errorf("expected 2 transform jobs, got %d", snap.FramePerCategory[Transform])
	}
	if snap.FramePerCategory[Physics] != 1 {
		t.Errorf("expected 1 physics job, got %d", snap.FramePerCategory[Physics])
	}
	if snap.AvgJobTime != 200*time.Microsecond {
		t.Errorf("expected avg job time 200us, got %s", snap.AvgJobTime)
	}
}

func TestStatsEndFrameUtilization(t *testing.T) {
	st := NewStats()

	st.beginFrame()
	st.endFrame(time.Millisecond, 2*time.Millisecond, 7)

	snap := st.Snapshot()
	if snap.BudgetUtilization != 0.5 {
		t.Errorf("expected utilization 0.5, got %v", snap.BudgetUtilization)
	}
	if snap.FrameJobsDeferred != 7 {
		t.Errorf("expected 7 deferred, got %d", snap.FrameJobsDeferred)
	}
	if snap.BudgetOverruns != 0 {
		t.Errorf("expected no overruns, got %d", snap.BudgetOverruns)
	}
}

func TestStatsOverrunCounting(t *testing.T) {
	st := NewStats()

	st.beginFrame()
	st.endFrame(3*time.Millisecond, 2*time.Millisecond, 0)
	st.beginFrame()
	st.endFrame(time.Millisecond, 2*time.Millisecond, 0)
	st.beginFrame()
	st.endFrame(2500*time.Microsecond, 2*time.Millisecond, 0)

	snap := st.Snapshot()
	if snap.BudgetOverruns != 2 {
		t.Errorf("expected 2 overruns, got %d", snap.BudgetOverruns)
	}
	if snap.TotalFrames != 3 {
		t.Errorf("expected 3 frames, got %d", snap.TotalFrames)
	}
	if snap.BudgetUtilization != 1.25 {
		t.Errorf("expected last-frame utilization 1.25, got %v", snap.BudgetUtilization)
	}
}

func TestStatsFrameTimeEMA(t *testing.T) {
	st := NewStats()

	// First frame seeds the average directly.
	st.beginFrame()
	st.endFrame(2*time.Millisecond, 2*time.Millisecond, 0)
	if got := st.Snapshot().AvgFrameMS; got != 2.0 {
		t.Fatalf("expected first frame to seed EMA at 2.0, got %v", got)
	}

	// Second frame blends: 0.1*4 + 0.9*2 = 2.2.
	st.beginFrame()
	st.endFrame(4*time.Millisecond, 2*time.Millisecond, 0)
	if got := st.Snapshot().AvgFrameMS; math.Abs(got-2.2) > 1e-9 {
		t.Errorf("expected EMA 2.2, got %v", got)
	}
}

func TestStatsPeakDepthMonotonic(t *testing.T) {
	st := NewStats()

	st.noteDepth(5)
	st.noteDepth(12)
	st.noteDepth(3) // lower readings never shrink the peak

	if got := st.Snapshot().PeakQueueDepth; got != 12 {
		t.Errorf("expected peak depth 12, got %d", got)
	}
}

func TestStatsSnapshotIsCopy(t *testing.T) {
	st := NewStats()
	st.beginFrame()
	st.RecordExecution(AI, time.Microsecond)

	snap := st.Snapshot()
	st.RecordExecution(AI, time.Microsecond)

	if snap.FrameJobsExecuted != 1 {
		t.Errorf("snapshot mutated after the fact: got %d", snap.FrameJobsExecuted)
	}
}

func TestStatsReset(t *testing.T) {
	st := NewStats()
	st.beginFrame()
	st.RecordExecution(Transform, time.Millisecond)
	st.noteDepth(40)
	st.endFrame(3*time.Millisecond, time.Millisecond, 10)

	st.Reset()

	snap := st.Snapshot()
	if snap != (Snapshot{}) {
		t.Errorf("expected zeroed snapshot after reset, got %+v", snap)
	}
}
