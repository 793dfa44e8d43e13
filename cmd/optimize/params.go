package main

import (
	"github.com/pthm-cable/warren/config"
)

// ParamSpec is one tunable config value and its search bounds.
type ParamSpec struct {
	Name     string
	Min, Max float64
	Integer  bool // rounded before use

	get func(*config.Config) float64
	set func(*config.Config, float64)
}

func intParam(name string, lo, hi float64, field func(*config.Config) *int) ParamSpec {
	return ParamSpec{
		Name: name, Min: lo, Max: hi, Integer: true,
		get: func(c *config.Config) float64 { return float64(*field(c)) },
		set: func(c *config.Config, v float64) { *field(c) = int(v) },
	}
}

func floatParam(name string, lo, hi float64, field func(*config.Config) *float64) ParamSpec {
	return ParamSpec{
		Name: name, Min: lo, Max: hi,
		get: func(c *config.Config) float64 { return *field(c) },
		set: func(c *config.Config, v float64) { *field(c) = v },
	}
}

// ParamVector is the ordered set of parameters the optimizer searches.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector returns the breeding, lifespan and seeding parameters of
// both animal species.
func NewParamVector() *ParamVector {
	return &ParamVector{Specs: []ParamSpec{
		intParam("fox_breeding_age", 2, 40, func(c *config.Config) *int { return &c.Fox.BreedingAge }),
		intParam("fox_max_age", 50, 300, func(c *config.Config) *int { return &c.Fox.MaxAge }),
		floatParam("fox_breeding_probability", 0.01, 0.30, func(c *config.Config) *float64 { return &c.Fox.BreedingProbability }),
		intParam("fox_litter_max", 1, 4, func(c *config.Config) *int { return &c.Fox.LitterMax }),
		intParam("fox_rabbit_food_value", 3, 20, func(c *config.Config) *int { return &c.Fox.RabbitFoodValue }),

		intParam("rabbit_breeding_age", 1, 15, func(c *config.Config) *int { return &c.Rabbit.BreedingAge }),
		intParam("rabbit_max_age", 10, 100, func(c *config.Config) *int { return &c.Rabbit.MaxAge }),
		floatParam("rabbit_breeding_probability", 0.02, 0.40, func(c *config.Config) *float64 { return &c.Rabbit.BreedingProbability }),
		intParam("rabbit_litter_max", 1, 6, func(c *config.Config) *int { return &c.Rabbit.LitterMax }),

		floatParam("fox_probability", 0.005, 0.10, func(c *config.Config) *float64 { return &c.Population.FoxProbability }),
		floatParam("rabbit_probability", 0.02, 0.30, func(c *config.Config) *float64 { return &c.Population.RabbitProbability }),
	}}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int { return len(pv.Specs) }

// Normalize maps raw values onto [0, 1] per parameter bounds.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, p := range pv.Specs {
		out[i] = (raw[i] - p.Min) / (p.Max - p.Min)
	}
	return out
}

// Denormalize is the inverse of Normalize.
func (pv *ParamVector) Denormalize(unit []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, p := range pv.Specs {
		out[i] = p.Min + unit[i]*(p.Max-p.Min)
	}
	return out
}

// Clamp bounds every value and rounds the integer parameters.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, p := range pv.Specs {
		x := min(max(v[i], p.Min), p.Max)
		if p.Integer {
			x = float64(int(x + 0.5))
		}
		out[i] = x
	}
	return out
}

// ApplyToConfig writes clamped values into cfg and refreshes its derived
// values. Litters always start at one so the maximum alone sets the range.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	for i, x := range pv.Clamp(values) {
		pv.Specs[i].set(cfg, x)
	}
	cfg.Fox.LitterMin = 1
	cfg.Rabbit.LitterMin = 1
	return cfg.Refresh()
}

// ExtractFromConfig reads the current value of every parameter from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, p := range pv.Specs {
		out[i] = p.get(cfg)
	}
	return out
}
