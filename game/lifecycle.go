package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
)

// Reset discards every organism, rewinds the step counter and seeds a new
// population. The random source carries on, so a reset run differs from
// the first one.
func (s *Simulator) Reset() {
	s.clear()
	s.populate()

	census := s.eco.Census()
	slog.Info("simulation reset",
		"seed", s.rng.Seed(),
		"depth", s.field.Depth(),
		"width", s.field.Width(),
		"foxes", census.Foxes(),
		"rabbits", census.Rabbits(),
		"plants", census.Plants(),
	)
}

// clear empties the list, the field and the world, and restarts telemetry.
func (s *Simulator) clear() {
	s.step = 0
	for _, e := range s.organisms {
		s.eco.Despawn(e)
	}
	clear(s.organisms)
	s.organisms = s.organisms[:0]
	s.field.Clear()

	s.collector.Reset(0)
	s.lifetimeTracker.Clear()
	s.bookmarkDetector = newBookmarkDetector(s)
}

// populate fills every cell row-major. Each cell draws once against the fox
// probability and, failing that, once more against the rabbit probability;
// cells that get neither hold a plant.
func (s *Simulator) populate() {
	pop := s.cfg.Population
	s.field.Locations(func(loc components.Location) {
		kind := components.KindPlant
		if s.rng.Chance(pop.FoxProbability) {
			kind = components.KindFox
		} else if s.rng.Chance(pop.RabbitProbability) {
			kind = components.KindRabbit
		}
		s.addOrganism(kind, loc, true)
	})
}

// addOrganism spawns an organism at the end of the list. Seeded animals are
// tracked as if born age steps ago.
func (s *Simulator) addOrganism(kind components.Kind, loc components.Location, randomAge bool) ecs.Entity {
	e := s.eco.Spawn(kind, loc, randomAge)
	s.organisms = append(s.organisms, e)

	org := s.eco.Organism(e)
	s.lifetimeTracker.Register(org.ID, kind, s.step-org.Age, 0)
	return e
}
