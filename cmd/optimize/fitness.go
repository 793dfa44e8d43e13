package main

import (
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/game"
	"github.com/pthm-cable/warren/telemetry"
)

// Score is the outcome of one parameter vector averaged over all seeds.
type Score struct {
	Fitness float64 // minimised
	Coexist float64 // steps with both animal species alive
	Quality float64 // ecosystem quality in [0, 1]
}

// evaluator runs headless simulations for a parameter vector.
type evaluator struct {
	params   *ParamVector
	base     *config.Config
	maxSteps int
	depth    int
	width    int
	seeds    []int64
}

// fitness rewards long coexistence, scaled up by at most a fifth for a
// healthy ecosystem.
func fitness(coexist, quality float64) float64 {
	return -coexist * (1 + 0.2*quality)
}

// Evaluate scores raw parameter values. Vectors the config rejects score
// zero, which is worse than any run that coexists for a step.
func (ev *evaluator) Evaluate(x []float64) Score {
	cfg := ev.base.Clone()
	if err := ev.params.ApplyToConfig(cfg, x); err != nil {
		slog.Warn("rejected parameters", "error", err)
		return Score{}
	}

	// cfg is shared read-only across seeds
	scores := make([]Score, len(ev.seeds))
	var wg sync.WaitGroup
	for i, seed := range ev.seeds {
		wg.Go(func() {
			steps, windows, err := ev.run(cfg, seed)
			if err != nil {
				slog.Error("simulation failed", "seed", seed, "error", err)
				return
			}
			q := computeQuality(windows)
			scores[i] = Score{Fitness: fitness(float64(steps), q), Coexist: float64(steps), Quality: q}
		})
	}
	wg.Wait()

	var avg Score
	for _, s := range scores {
		avg.Fitness += s.Fitness
		avg.Coexist += s.Coexist
		avg.Quality += s.Quality
	}
	n := float64(len(scores))
	avg.Fitness /= n
	avg.Coexist /= n
	avg.Quality /= n
	return avg
}

// run steps one simulation until foxes or rabbits die out or maxSteps is
// reached, returning the steps survived and every closed stats window.
func (ev *evaluator) run(cfg *config.Config, seed int64) (int, []telemetry.WindowStats, error) {
	var windows []telemetry.WindowStats
	sim, err := game.New(ev.depth, ev.width, game.Options{
		Seed:   seed,
		Config: cfg,
		StatsCallback: func(w telemetry.WindowStats) {
			windows = append(windows, w)
		},
	})
	if err != nil {
		return 0, nil, err
	}
	defer sim.Close()

	for sim.Step() < ev.maxSteps {
		sim.SimulateOneStep()
		if c := sim.Census(); c.Foxes() == 0 || c.Rabbits() == 0 {
			return sim.Step(), windows, nil
		}
	}
	return ev.maxSteps, windows, nil
}

const (
	weightRatio     = 0.4
	weightStability = 0.3
	weightFood      = 0.3

	warmupWindows       = 3
	minWindowPop        = 3
	targetRabbitsPerFox = 8.0
)

// computeQuality grades the windows after warmup in which both species
// had at least minWindowPop members. It blends three terms: how close the
// rabbit to fox ratio stays to the target, how steady both populations
// are, and whether median fox food sits near half of the 90th percentile.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= warmupWindows {
		return 0
	}

	var ratio, food float64
	var rabbits, foxes []float64
	for _, w := range windows[warmupWindows:] {
		if w.Rabbits < minWindowPop || w.Foxes < minWindowPop {
			continue
		}
		rabbits = append(rabbits, float64(w.Rabbits))
		foxes = append(foxes, float64(w.Foxes))

		e := math.Log(float64(w.Rabbits) / float64(w.Foxes) / targetRabbitsPerFox)
		ratio += math.Exp(-e * e)

		if w.FoxFoodP90 > 0 {
			d := (w.FoxFoodP50/w.FoxFoodP90 - 0.5) / 0.25
			food += math.Exp(-d * d)
		}
	}

	n := float64(len(rabbits))
	if n == 0 {
		return 0
	}

	var stability float64
	if n >= 2 {
		cr := telemetry.CoefficientOfVariation(rabbits)
		cf := telemetry.CoefficientOfVariation(foxes)
		stability = math.Exp(-(cr*cr + cf*cf))
	}

	q := weightRatio*ratio/n + weightStability*stability + weightFood*food/n
	return min(max(q, 0), 1)
}
