// Package game owns a running ecosystem: the organism list, the field and
// the step counter, plus the telemetry that observes them.
package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/systems"
	"github.com/pthm-cable/warren/telemetry"
)

// Options configures a Simulator.
type Options struct {
	Seed        int64          // RNG seed (0 = time-based)
	Config      *config.Config // nil = embedded defaults
	LogStats    bool           // log window and perf stats via slog
	OutputDir   string         // CSV and config output (empty = disabled)
	SnapshotDir string         // snapshots on bookmarks (empty = disabled)

	// StatsCallback is called with each flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Simulator advances a fox, rabbit and plant population one step at a time.
// It is not safe for concurrent use.
type Simulator struct {
	cfg   *config.Config
	rng   *systems.RandomSource
	field *systems.Field
	eco   *systems.Ecosystem

	// Master organism list in acting order.
	organisms []ecs.Entity
	newborns  []ecs.Entity // reused across steps

	step int

	// Telemetry
	collector        *telemetry.Collector
	lifetimeTracker  *telemetry.LifetimeTracker
	bookmarkDetector *telemetry.BookmarkDetector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	logStats         bool
	snapshotDir      string
	statsCallback    func(telemetry.WindowStats)
}

// New creates a simulator over a depth x width field and populates it.
// Non-positive dimensions are reported as a wrapped
// systems.ErrInvalidDimensions.
func New(depth, width int, opts Options) (*Simulator, error) {
	field, err := systems.NewField(depth, width)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: invalid config: %w", err)
	}

	outputManager, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if err := outputManager.WriteConfig(cfg); err != nil {
		outputManager.Close()
		return nil, fmt.Errorf("game: %w", err)
	}

	rng := systems.NewRandomSource(opts.Seed)

	s := &Simulator{
		cfg:   cfg,
		rng:   rng,
		field: field,
		eco:   systems.NewEcosystem(field, rng, cfg),

		collector:        telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		lifetimeTracker:  telemetry.NewLifetimeTracker(),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Bookmarks),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		outputManager:    outputManager,
		logStats:         opts.LogStats,
		snapshotDir:      opts.SnapshotDir,
		statsCallback:    opts.StatsCallback,
	}
	s.eco.SetObserver(s)

	s.Reset()

	return s, nil
}

// Field returns the shared field. Callers must treat it as read-only.
func (s *Simulator) Field() *systems.Field { return s.field }

// Step returns the number of steps taken since the last reset.
func (s *Simulator) Step() int { return s.step }

// Seed returns the seed of the simulator's random source.
func (s *Simulator) Seed() int64 { return s.rng.Seed() }

// Config returns the configuration the simulator runs with.
func (s *Simulator) Config() *config.Config { return s.cfg }

// Organisms returns a copy of the master list in acting order.
func (s *Simulator) Organisms() []ecs.Entity {
	out := make([]ecs.Entity, len(s.organisms))
	copy(out, s.organisms)
	return out
}

// Census counts the living organisms per kind.
func (s *Simulator) Census() systems.Census {
	return s.eco.Census()
}

// Organism describes one organism for presentation.
func (s *Simulator) Organism(e ecs.Entity) (systems.View, bool) {
	return s.eco.View(e)
}

// PerfStats returns the rolling step timings.
func (s *Simulator) PerfStats() telemetry.PerfStats {
	return s.perfCollector.Stats()
}

// RecordFrame records frame timing in graphical mode.
func (s *Simulator) RecordFrame() {
	s.perfCollector.RecordFrame()
}

// Close flushes run output and releases its files.
func (s *Simulator) Close() error {
	if err := s.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
		return err
	}
	return nil
}
