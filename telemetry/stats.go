package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of steps.
type WindowStats struct {
	WindowStartTick int `csv:"-"`
	WindowEndTick   int `csv:"window_end"`

	// Population counts at window end
	Foxes   int `csv:"foxes"`
	Rabbits int `csv:"rabbits"`
	Plants  int `csv:"plants"`
	Dormant int `csv:"dormant_plants"`

	// Events during window
	FoxBirths       int `csv:"fox_births"`
	RabbitBirths    int `csv:"rabbit_births"`
	FoxOldAge       int `csv:"fox_old_age"`
	FoxStarved      int `csv:"fox_starved"`
	RabbitOldAge    int `csv:"rabbit_old_age"`
	RabbitsEaten    int `csv:"rabbits_eaten"`
	PlantsEaten     int `csv:"plants_eaten"`
	Regrowths       int `csv:"regrowths"`
	RegrownRooted   int `csv:"regrown_rooted"`
	SeedlingsRooted int `csv:"seedlings_rooted"`

	// Fox food distribution (sampled at window end)
	FoxFoodMean float64 `csv:"fox_food_mean"`
	FoxFoodStd  float64 `csv:"fox_food_std"`
	FoxFoodP10  float64 `csv:"fox_food_p10"`
	FoxFoodP50  float64 `csv:"fox_food_p50"`
	FoxFoodP90  float64 `csv:"fox_food_p90"`

	// Ages
	FoxAgeMean    float64 `csv:"fox_age_mean"`
	RabbitAgeMean float64 `csv:"rabbit_age_mean"`

	// Lifespans of animals that died during the window
	FoxLifespanMean    float64 `csv:"fox_lifespan_mean"`
	RabbitLifespanMean float64 `csv:"rabbit_lifespan_mean"`
}

// Percentile returns the p-th empirical quantile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = math.Max(0, math.Min(1, p))
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeDistribution calculates mean, standard deviation and percentiles.
// The standard deviation is zero for fewer than two values.
func ComputeDistribution(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	if n == 1 {
		mean = values[0]
	} else {
		mean, std = stat.MeanStdDev(values, nil)
	}

	// Sort for percentiles
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// CoefficientOfVariation returns std/mean of the values, or +Inf when the
// mean is zero.
func CoefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean, std := stat.MeanStdDev(values, nil)
	if mean == 0 {
		return math.Inf(1)
	}
	return std / mean
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Int("foxes", s.Foxes),
		slog.Int("rabbits", s.Rabbits),
		slog.Int("plants", s.Plants),
		slog.Int("dormant_plants", s.Dormant),
		slog.Int("fox_births", s.FoxBirths),
		slog.Int("rabbit_births", s.RabbitBirths),
		slog.Int("fox_old_age", s.FoxOldAge),
		slog.Int("fox_starved", s.FoxStarved),
		slog.Int("rabbit_old_age", s.RabbitOldAge),
		slog.Int("rabbits_eaten", s.RabbitsEaten),
		slog.Int("plants_eaten", s.PlantsEaten),
		slog.Int("regrowths", s.Regrowths),
		slog.Int("seedlings_rooted", s.SeedlingsRooted),
		slog.Float64("fox_food_mean", s.FoxFoodMean),
		slog.Float64("fox_food_p50", s.FoxFoodP50),
		slog.Float64("fox_age_mean", s.FoxAgeMean),
		slog.Float64("rabbit_age_mean", s.RabbitAgeMean),
		slog.Float64("fox_lifespan_mean", s.FoxLifespanMean),
		slog.Float64("rabbit_lifespan_mean", s.RabbitLifespanMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"foxes", s.Foxes,
		"rabbits", s.Rabbits,
		"plants", s.Plants,
		"dormant_plants", s.Dormant,
		"fox_births", s.FoxBirths,
		"rabbit_births", s.RabbitBirths,
		"fox_starved", s.FoxStarved,
		"rabbits_eaten", s.RabbitsEaten,
		"plants_eaten", s.PlantsEaten,
		"regrowths", s.Regrowths,
		"fox_food_mean", s.FoxFoodMean,
		"fox_lifespan_mean", s.FoxLifespanMean,
		"rabbit_lifespan_mean", s.RabbitLifespanMean,
	)
}
