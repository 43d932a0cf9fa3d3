package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"framepacer/internal/config"
	"framepacer/internal/sched"
	"framepacer/internal/telemetry"
	"framepacer/internal/ui/live"
	"framepacer/internal/world"
)

func newRunCmd() *cobra.Command {
	var frames uint64
	var budgetUS int
	var tickMS int
	var spawnPerFrame int
	var liveUI bool
	var csvPath string
	var dbPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulated world against the frame scheduler",
		Long: `Drives frames at the configured tick rate: each frame the world's
producers (transform sync, visibility culling, physics, LOD, AI) enqueue
batch jobs, the scheduler drains them in priority order until the budget
runs out, and per-frame statistics go to the selected telemetry sinks.

Raise --spawn-per-frame to watch graceful degradation under overload:
low-priority queues (AI, LOD) back up while transform stays responsive.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(flagConfig)
			if cmd.Flags().Changed("budget-us") {
				cfg.Scheduler.BudgetUS = budgetUS
			}
			if cmd.Flags().Changed("tick-ms") {
				cfg.Scheduler.TickMS = tickMS
			}
			if cmd.Flags().Changed("spawn-per-frame") {
				cfg.World.SpawnPerFrame = spawnPerFrame
			}
			if cmd.Flags().Changed("csv") {
				cfg.Telemetry.CSVPath = csvPath
			}
			if cmd.Flags().Changed("db") {
				cfg.Telemetry.DBPath = dbPath
			}

			return runSimulation(cmd.Context(), cfg, frames, liveUI)
		},
	}

	cmd.Flags().Uint64Var(&frames, "frames", 0, "Number of frames to run (0 = until interrupted)")
	cmd.Flags().IntVar(&budgetUS, "budget-us", 0, "Per-frame drain budget in microseconds")
	cmd.Flags().IntVar(&tickMS, "tick-ms", 0, "Frame interval in milliseconds")
	cmd.Flags().IntVar(&spawnPerFrame, "spawn-per-frame", 0, "Entities spawned per frame (overload knob)")
	cmd.Flags().BoolVar(&liveUI, "live", false, "Show the live statistics view")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write per-frame CSV telemetry to this path")
	cmd.Flags().StringVar(&dbPath, "db", "", "Record frame history into this SQLite database")

	return cmd
}

func runSimulation(parent context.Context, cfg config.Config, frames uint64, liveUI bool) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	runID := uuid.NewString()
	startedAt := time.Now()

	s := sched.New(cfg.Scheduler.Budget(), logger)
	driver := sched.NewDriver(s, cfg.Scheduler.Tick(), logger)
	driver.SetProducer(world.New(cfg.World, s, logger))

	if cfg.Telemetry.CSVPath != "" {
		csvLog, err := telemetry.NewCSVLogger(cfg.Telemetry.CSVPath)
		if err != nil {
			return err
		}
		defer csvLog.Close()
		driver.AddObserver(csvLog)
	}

	var store telemetry.Store
	if cfg.Telemetry.DBPath != "" {
		st, err := telemetry.NewSQLiteStore(cfg.Telemetry.DBPath, logger)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate telemetry db: %w", err)
		}
		if err := st.CreateRun(ctx, telemetry.Run{
			ID:        runID,
			StartedAt: startedAt,
			Budget:    cfg.Scheduler.Budget(),
		}); err != nil {
			return fmt.Errorf("create run: %w", err)
		}
		store = st

		recorder := telemetry.NewRecorder(st, runID, logger)
		defer recorder.Close()
		driver.AddObserver(recorder)
	}

	var ui *live.Controller
	if liveUI {
		ui = live.Start(os.Stdout)
		driver.AddObserver(ui)
	}

	logger.Info("simulation starting", "run_id", runID,
		"budget", cfg.Scheduler.Budget(), "tick", cfg.Scheduler.Tick(), "frames", frames)

	err := driver.Run(ctx, frames)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if ui != nil {
		ui.Close()
		ui.Wait()
	}

	if store != nil {
		if err := store.FinishRun(context.Background(), runID, time.Now(), driver.Frames()); err != nil {
			logger.Error("finish run", "error", err)
		}
	}

	printSummary(s.Snapshot(), driver.Frames())
	return nil
}

// printSummary writes the final cumulative statistics to stdout.
func printSummary(snap sched.Snapshot, frames uint64) {
	fmt.Printf("frames:          %d\n", frames)
	fmt.Printf("jobs executed:   %d\n", snap.TotalJobsExecuted)
	fmt.Printf("avg frame time:  %.3fms\n", snap.AvgFrameMS)
	fmt.Printf("avg job time:    %s\n", snap.AvgJobTime)
	fmt.Printf("budget overruns: %d\n", snap.BudgetOverruns)
	fmt.Printf("peak depth:      %d\n", snap.PeakQueueDepth)
	fmt.Printf("still queued:    %d\n", snap.FrameJobsDeferred)
}
