package game

import (
	"log/slog"
)

// LogWorldState logs the current population and step timings.
func (s *Simulator) LogWorldState() {
	census := s.eco.Census()
	sample := s.eco.Sample()

	var foxFood float64
	for _, f := range sample.FoxFood {
		foxFood += f
	}
	if n := len(sample.FoxFood); n > 0 {
		foxFood /= float64(n)
	}

	slog.Info("world",
		"step", s.step,
		"organisms", len(s.organisms),
		"foxes", census.Foxes(),
		"rabbits", census.Rabbits(),
		"plants", census.Plants(),
		"dormant_plants", census.Dormant,
		"occupied_cells", s.field.Count(),
		"fox_food_mean", foxFood,
		"tracked_animals", s.lifetimeTracker.Count(),
		"perf", s.perfCollector.Stats(),
	)
}
