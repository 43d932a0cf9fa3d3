package config

import (
	"os"
	"time"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors config.yml.
type Config struct {
	Scheduler SchedulerConfig `yaml:"scheduler"`
	World     WorldConfig     `yaml:"world"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	LogLevel  string          `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string          `yaml:"log_format"` // text or json
}

// SchedulerConfig holds the frame loop tunables.
type SchedulerConfig struct {
	BudgetUS int `yaml:"budget_us"` // per-frame drain budget in microseconds
	TickMS   int `yaml:"tick_ms"`   // frame interval
}

// Budget returns the drain budget as a duration.
func (c SchedulerConfig) Budget() time.Duration {
	return time.Duration(c.BudgetUS) * time.Microsecond
}

// Tick returns the frame interval as a duration.
func (c SchedulerConfig) Tick() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// WorldConfig shapes the simulated producer load.
type WorldConfig struct {
	Vehicles      int `yaml:"vehicles"`
	Buildings     int `yaml:"buildings"`
	NPCs          int `yaml:"npcs"`
	Props         int `yaml:"props"`
	SpawnPerFrame int `yaml:"spawn_per_frame"` // entities added each frame, 0 = steady state
	BatchSize     int `yaml:"batch_size"`      // entities per job
	WorkUnitUS    int `yaml:"work_unit_us"`    // simulated cost of a weight-1.0 job
}

// TelemetryConfig selects the frame report sinks.
type TelemetryConfig struct {
	CSVPath string `yaml:"csv_path"` // empty = no CSV log
	DBPath  string `yaml:"db_path"`  // empty = no SQLite history
}

func defaultConfig() Config {
	return Config{
		Scheduler: SchedulerConfig{
			BudgetUS: 2500, // 2.5ms, the reference drain budget
			TickMS:   16,
		},
		World: WorldConfig{
			Vehicles:      200,
			Buildings:     600,
			NPCs:          300,
			Props:         900,
			SpawnPerFrame: 0,
			BatchSize:     64,
			WorkUnitUS:    50,
		},
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads YAML and overrides defaults; empty or missing path = defaults only.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	// sanity clamps
	if cfg.Scheduler.BudgetUS <= 0 {
		cfg.Scheduler.BudgetUS = 2500
	}
	if cfg.Scheduler.TickMS <= 0 {
		cfg.Scheduler.TickMS = 16
	}
	if cfg.World.BatchSize <= 0 {
		cfg.World.BatchSize = 64
	}
	if cfg.World.WorkUnitUS < 0 {
		cfg.World.WorkUnitUS = 0
	}

	return cfg
}
