package game

import (
	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/telemetry"
)

// SimulateOneStep advances every organism by one step.
//
// Organisms act in list order against the field as left by earlier actors.
// An organism eaten earlier in the step does not act. Deaths, plant
// regrowth and births are applied after the pass, so the list is never
// modified while it is being walked.
func (s *Simulator) SimulateOneStep() {
	s.perfCollector.StartTick()
	s.step++

	s.perfCollector.StartPhase(telemetry.PhaseAct)
	newborns := s.newborns[:0]
	for _, e := range s.organisms {
		if s.eco.IsAlive(e) {
			newborns = s.eco.Act(e, newborns)
		}
	}

	s.perfCollector.StartPhase(telemetry.PhaseReconcile)
	s.reconcile()

	s.perfCollector.StartPhase(telemetry.PhaseBirths)
	for _, e := range newborns {
		// A newborn can be eaten later in the step it was born.
		if !s.eco.IsAlive(e) {
			s.eco.Despawn(e)
			continue
		}
		s.organisms = append(s.organisms, e)
	}
	clear(newborns)
	s.newborns = newborns[:0]

	s.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	s.flushTelemetry()

	s.perfCollector.EndTick()
}

// reconcile replaces dead plants in place and drops dead animals, keeping
// list order.
func (s *Simulator) reconcile() {
	kept := s.organisms[:0]
	for _, e := range s.organisms {
		switch {
		case s.eco.IsAlive(e):
			kept = append(kept, e)
		case s.eco.Kind(e) == components.KindPlant:
			kept = append(kept, s.eco.Regrow(e))
		default:
			s.eco.Despawn(e)
		}
	}
	clear(s.organisms[len(kept):])
	s.organisms = kept
}

// Run takes n steps.
func (s *Simulator) Run(n int) {
	for i := 0; i < n; i++ {
		s.SimulateOneStep()
	}
}
