package world

import (
	"context"
	"log/slog"
	"time"

	"framepacer/internal/config"
	"framepacer/internal/sched"
)

// Per-category cost weights for the simulated subsystems. Relative shares
// follow the engine's measured profile: physics batches are the heaviest,
// AI ticks the cheapest.
const (
	transformCost  = 0.30
	visibilityCost = 0.20
	physicsCost    = 0.50
	lodCost        = 0.40
	aiCost         = 0.15
)

// World holds simulated entity populations and acts as the job producer for
// the scheduler: each frame it submits one batch job per BatchSize entities
// for every subsystem that touches them.
type World struct {
	cfg    config.WorldConfig
	sched  *sched.Scheduler
	logger *slog.Logger

	vehicles  int
	buildings int
	npcs      int
	props     int
}

// New creates a World with the configured starting populations.
func New(cfg config.WorldConfig, s *sched.Scheduler, logger *slog.Logger) *World {
	return &World{
		cfg:       cfg,
		sched:     s,
		logger:    logger.With("component", "world"),
		vehicles:  cfg.Vehicles,
		buildings: cfg.Buildings,
		npcs:      cfg.NPCs,
		props:     cfg.Props,
	}
}

// Produce submits this frame's jobs, then applies population drift.
// Implements sched.Producer.
func (w *World) Produce(frame uint64) {
	moving := w.vehicles + w.npcs
	everything := moving + w.buildings + w.props
	static := w.buildings + w.props

	w.produceBatches(sched.Transform, moving, transformCost)
	w.produceBatches(sched.Visibility, everything, visibilityCost)
	w.produceBatches(sched.Physics, w.vehicles, physicsCost)
	w.produceBatches(sched.LevelOfDetail, static, lodCost)
	w.produceBatches(sched.AI, w.npcs, aiCost)

	if w.cfg.SpawnPerFrame > 0 {
		third := w.cfg.SpawnPerFrame / 3
		w.vehicles += third
		w.npcs += third
		w.props += w.cfg.SpawnPerFrame - 2*third
	}

	if frame%300 == 0 {
		w.logger.Debug("population",
			"frame", frame, "vehicles", w.vehicles, "buildings", w.buildings,
			"npcs", w.npcs, "props", w.props)
	}
}

// produceBatches enqueues ceil(entities / BatchSize) jobs of the given
// category and cost.
func (w *World) produceBatches(category sched.Category, entities int, cost float64) {
	if entities <= 0 {
		return
	}
	batches := (entities + w.cfg.BatchSize - 1) / w.cfg.BatchSize
	run := w.batchWork(cost)
	for i := 0; i < batches; i++ {
		w.sched.Enqueue(category, cost, run)
	}
}

// batchWork builds the simulated work function for one batch job.
func (w *World) batchWork(cost float64) func(context.Context) error {
	if w.cfg.WorkUnitUS <= 0 {
		return func(context.Context) error { return nil }
	}
	d := time.Duration(cost * float64(w.cfg.WorkUnitUS) * float64(time.Microsecond))
	return SpinWork(d)
}

// Entities returns the current populations (vehicles, buildings, npcs, props).
func (w *World) Entities() (int, int, int, int) {
	return w.vehicles, w.buildings, w.npcs, w.props
}

// Total returns the total live entity count.
func (w *World) Total() int {
	return w.vehicles + w.buildings + w.npcs + w.props
}
