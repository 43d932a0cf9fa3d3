package world

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"framepacer/internal/config"
	"framepacer/internal/sched"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testWorldConfig() config.WorldConfig {
	return config.WorldConfig{
		Vehicles:   200,
		Buildings:  600,
		NPCs:       300,
		Props:      900,
		BatchSize:  64,
		WorkUnitUS: 0,
	}
}

func TestProduceBatchCounts(t *testing.T) {
	s := sched.New(time.Millisecond, discardLogger())
	w := New(testWorldConfig(), s, discardLogger())

	w.Produce(0)

	// 200 vehicles + 300 npcs move; everything (2000) gets culled;
	// 600 buildings + 900 props hold LOD state. Batches of 64, rounded up.
	cases := []struct {
		category sched.Category
		want     int
	}{
		{sched.Transform, 8},      // ceil(500/64)
		{sched.Visibility, 32},    // ceil(2000/64)
		{sched.Physics, 4},        // ceil(200/64)
		{sched.LevelOfDetail, 24}, // ceil(1500/64)
		{sched.AI, 5},             // ceil(300/64)
	}
	for _, tc := range cases {
		if got := s.QueueDepth(tc.category); got != tc.want {
			t.Errorf("%s: expected %d batches, got %d", tc.category, tc.want, got)
		}
	}
}

func TestProduceSkipsEmptyPopulations(t *testing.T) {
	cfg := testWorldConfig()
	cfg.Vehicles = 0
	cfg.NPCs = 0

	s := sched.New(time.Millisecond, discardLogger())
	w := New(cfg, s, discardLogger())

	w.Produce(0)

	if got := s.QueueDepth(sched.Transform); got != 0 {
		t.Errorf("expected no transform batches with nothing moving, got %d", got)
	}
	if got := s.QueueDepth(sched.Physics); got != 0 {
		t.Errorf("expected no physics batches, got %d", got)
	}
	if got := s.QueueDepth(sched.AI); got != 0 {
		t.Errorf("expected no ai batches, got %d", got)
	}
	if got := s.QueueDepth(sched.Visibility); got == 0 {
		t.Error("expected visibility batches for the static world")
	}
}

func TestProduceSpawnDrift(t *testing.T) {
	cfg := testWorldConfig()
	cfg.SpawnPerFrame = 5

	s := sched.New(time.Millisecond, discardLogger())
	w := New(cfg, s, discardLogger())

	before := w.Total()
	w.Produce(0)
	w.Produce(1)

	if got := w.Total(); got != before+10 {
		t.Errorf("expected total to grow by 10, got %d -> %d", before, got)
	}

	vehicles, buildings, npcs, props := w.Entities()
	if vehicles != 202 || npcs != 302 || props != 906 {
		t.Errorf("unexpected drift split: vehicles=%d npcs=%d props=%d", vehicles, npcs, props)
	}
	if buildings != 600 {
		t.Errorf("buildings must not drift, got %d", buildings)
	}
}

func TestBatchWorkNoopWhenDisabled(t *testing.T) {
	s := sched.New(time.Millisecond, discardLogger())
	w := New(testWorldConfig(), s, discardLogger())

	run := w.batchWork(1.0)
	start := time.Now()
	if err := run(context.Background()); err != nil {
		t.Fatalf("noop work: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Millisecond {
		t.Errorf("expected instant noop, took %s", elapsed)
	}
}

func TestSpinWorkHonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run := SpinWork(time.Second)
	start := time.Now()
	err := run(ctx)
	if err == nil {
		t.Fatal("expected context error from cancelled spin")
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("cancelled spin should bail early, took %s", elapsed)
	}
}
