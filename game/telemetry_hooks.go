package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/telemetry"
)

// Born implements systems.Observer.
func (s *Simulator) Born(child components.Organism, parentID uint32) {
	s.collector.Record(telemetry.NewBirthEvent(s.step, child.ID, parentID, child.Kind))
	s.lifetimeTracker.Register(child.ID, child.Kind, s.step, parentID)
}

// Died implements systems.Observer.
func (s *Simulator) Died(org components.Organism, cause components.DeathCause, killerID uint32) {
	s.collector.Record(telemetry.NewDeathEvent(s.step, org.ID, org.Kind, cause, killerID))
	if cause == components.DeathEaten {
		s.lifetimeTracker.RecordMeal(killerID, org.Kind)
	}
	s.lifetimeTracker.Remove(org.ID, s.step)
}

// Regrown implements systems.Observer.
func (s *Simulator) Regrown(plant components.Organism, rooted bool) {
	s.collector.Record(telemetry.NewRegrowthEvent(s.step, plant.ID, rooted))
}

// Rooted implements systems.Observer.
func (s *Simulator) Rooted(plant components.Organism) {
	s.collector.Record(telemetry.NewRootedEvent(s.step, plant.ID))
}

func newBookmarkDetector(s *Simulator) *telemetry.BookmarkDetector {
	return telemetry.NewBookmarkDetector(s.cfg.Telemetry.BookmarkHistorySize, s.cfg.Bookmarks)
}

// flushTelemetry closes the stats window when it is due and handles
// bookmarks. Output failures are logged and never stop the run.
func (s *Simulator) flushTelemetry() {
	if !s.collector.ShouldFlush(s.step) {
		return
	}

	stats := s.collector.Flush(s.step, s.eco.Census(), s.eco.Sample(), s.lifetimeTracker.Drain())
	perfStats := s.perfCollector.Stats()

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := s.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := s.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range s.bookmarkDetector.Check(stats) {
		if s.logStats || isExtinction(bm) {
			slog.Info("bookmark", "bookmark", bm)
		}

		if err := s.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}

		if s.snapshotDir != "" {
			if _, err := s.SaveSnapshot(s.snapshotDir, &bm); err != nil {
				slog.Error("failed to save snapshot", "error", err)
			}
		}
	}
}

func isExtinction(bm telemetry.Bookmark) bool {
	return bm.Type == telemetry.BookmarkFoxExtinction || bm.Type == telemetry.BookmarkRabbitExtinction
}

// SaveSnapshot writes the current grid occupancy to dir, tagged with the
// bookmark that triggered it if any.
func (s *Simulator) SaveSnapshot(dir string, bookmark *telemetry.Bookmark) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("game: no snapshot directory")
	}

	path, err := telemetry.SaveSnapshot(s.Snapshot(bookmark), dir)
	if err != nil {
		return "", err
	}

	slog.Info("snapshot saved", "path", path, "tick", s.step)
	return path, nil
}

// Snapshot builds a snapshot of the current state.
func (s *Simulator) Snapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	snapshot := &telemetry.Snapshot{
		Version:   telemetry.SnapshotVersion,
		RNGSeed:   s.rng.Seed(),
		Depth:     s.field.Depth(),
		Width:     s.field.Width(),
		Tick:      s.step,
		Organisms: make([]telemetry.OrganismState, 0, len(s.organisms)),
		Bookmark:  bookmark,
	}

	for _, e := range s.organisms {
		v, ok := s.eco.View(e)
		if !ok || !v.Alive {
			continue
		}

		state := telemetry.OrganismState{
			ID:        v.ID,
			Kind:      v.Kind,
			Row:       v.Location.Row,
			Col:       v.Location.Col,
			Age:       v.Age,
			FoodLevel: v.FoodLevel,
			Rooted:    v.Rooted,
		}
		if ls := s.lifetimeTracker.Get(v.ID); ls != nil {
			lineage := *ls
			state.Lifetime = &lineage
		}

		snapshot.Organisms = append(snapshot.Organisms, state)
	}

	return snapshot
}
