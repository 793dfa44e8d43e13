// Package config provides configuration loading and access for the simulation.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/warren/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Population PopulationConfig `yaml:"population"`
	Fox        FoxConfig        `yaml:"fox"`
	Rabbit     SpeciesConfig    `yaml:"rabbit"`
	Colors     ColorsConfig     `yaml:"colors"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Bookmarks  BookmarksConfig  `yaml:"bookmarks"`
	Screen     ScreenConfig     `yaml:"screen"`
	Viewer     ViewerConfig     `yaml:"viewer"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// GridConfig holds the default field dimensions.
type GridConfig struct {
	Depth int `yaml:"depth"` // rows
	Width int `yaml:"width"` // columns
}

// PopulationConfig holds initial seeding probabilities.
// Each cell draws against FoxProbability; only a cell that fails it draws
// again, against RabbitProbability. Cells that get neither hold a plant.
type PopulationConfig struct {
	FoxProbability    float64 `yaml:"fox_probability"`
	RabbitProbability float64 `yaml:"rabbit_probability"`
}

// SpeciesConfig holds the life-history parameters shared by animals.
type SpeciesConfig struct {
	BreedingAge         int     `yaml:"breeding_age"`
	MaxAge              int     `yaml:"max_age"`
	BreedingProbability float64 `yaml:"breeding_probability"`
	LitterMin           int     `yaml:"litter_min"`
	LitterMax           int     `yaml:"litter_max"`
}

// FoxConfig adds feeding parameters to the shared species parameters.
type FoxConfig struct {
	SpeciesConfig   `yaml:",inline"`
	RabbitFoodValue int `yaml:"rabbit_food_value"` // steps of food gained from a rabbit
	PlantFoodValue  int `yaml:"plant_food_value"`  // steps of food gained from a plant
}

// ColorsConfig holds display colours per species.
type ColorsConfig struct {
	Fox    components.RGB `yaml:"fox"`
	Rabbit components.RGB `yaml:"rabbit"`
	Plant  components.RGB `yaml:"plant"`
	Empty  components.RGB `yaml:"empty"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // steps per stats window
	BookmarkHistorySize int `yaml:"bookmark_history_size"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	RabbitCrash     RabbitCrashConfig     `yaml:"rabbit_crash"`
	FoxRecovery     FoxRecoveryConfig     `yaml:"fox_recovery"`
	StableEcosystem StableEcosystemConfig `yaml:"stable_ecosystem"`
}

// RabbitCrashConfig holds rabbit crash detection parameters.
type RabbitCrashConfig struct {
	DropPercent float64 `yaml:"drop_percent"`
	MinDrop     int     `yaml:"min_drop"`
}

// FoxRecoveryConfig holds fox recovery detection parameters.
type FoxRecoveryConfig struct {
	MinPopulation      int `yaml:"min_population"`
	RecoveryMultiplier int `yaml:"recovery_multiplier"`
	MinFinal           int `yaml:"min_final"`
}

// StableEcosystemConfig holds stable ecosystem detection parameters.
type StableEcosystemConfig struct {
	MinRabbits    int     `yaml:"min_rabbits"`
	MinFoxes      int     `yaml:"min_foxes"`
	CVThreshold   float64 `yaml:"cv_threshold"`
	StableWindows int     `yaml:"stable_windows"`
}

// ScreenConfig holds display settings for the viewer.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ViewerConfig holds viewer pacing and layout.
type ViewerConfig struct {
	DelayMS     int `yaml:"delay_ms"`     // pause between steps when running
	MaxDelayMS  int `yaml:"max_delay_ms"` // upper bound of the delay slider
	PanelHeight int `yaml:"panel_height"` // control panel height in pixels
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Cells      int                               // Grid.Depth * Grid.Width
	KindColors [3]components.RGB                 // colour lookup indexed by Kind
	Species    map[components.Kind]SpeciesConfig // animal parameters by kind
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load reads the embedded defaults and then overlays the YAML file at path,
// if any. Keys absent from the file keep their default; unknown keys are
// an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := decodeStrict(bytes.NewReader(defaultsYAML), cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		err = decodeStrict(f, cfg)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.Refresh(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeStrict(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the loaded values for ranges the engine relies on.
func (c *Config) Validate() error {
	var errs []error

	if c.Grid.Depth <= 0 || c.Grid.Width <= 0 {
		errs = append(errs, fmt.Errorf("grid: depth and width must be positive, got %dx%d", c.Grid.Depth, c.Grid.Width))
	}
	errs = append(errs, checkProbability("population.fox_probability", c.Population.FoxProbability))
	errs = append(errs, checkProbability("population.rabbit_probability", c.Population.RabbitProbability))
	errs = append(errs, c.Fox.SpeciesConfig.validate("fox"))
	errs = append(errs, c.Rabbit.validate("rabbit"))
	if c.Fox.RabbitFoodValue <= 0 || c.Fox.PlantFoodValue <= 0 {
		errs = append(errs, fmt.Errorf("fox: food values must be positive"))
	}
	if c.Telemetry.StatsWindow <= 0 {
		errs = append(errs, fmt.Errorf("telemetry.stats_window must be positive, got %d", c.Telemetry.StatsWindow))
	}

	return errors.Join(errs...)
}

func (s SpeciesConfig) validate(name string) error {
	var errs []error
	errs = append(errs, checkProbability(name+".breeding_probability", s.BreedingProbability))
	if s.MaxAge <= 0 {
		errs = append(errs, fmt.Errorf("%s.max_age must be positive, got %d", name, s.MaxAge))
	}
	if s.BreedingAge < 0 {
		errs = append(errs, fmt.Errorf("%s.breeding_age must not be negative, got %d", name, s.BreedingAge))
	}
	if s.LitterMin < 1 || s.LitterMax < s.LitterMin {
		errs = append(errs, fmt.Errorf("%s: litter bounds [%d,%d] are invalid", name, s.LitterMin, s.LitterMax))
	}
	return errors.Join(errs...)
}

func checkProbability(name string, p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%s must be in [0,1], got %v", name, p)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.computeDerived()
	return &out
}

// Refresh validates the configuration after it was modified in code and
// recomputes derived values.
func (c *Config) Refresh() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Cells = c.Grid.Depth * c.Grid.Width

	c.Derived.KindColors[components.KindPlant] = c.Colors.Plant
	c.Derived.KindColors[components.KindRabbit] = c.Colors.Rabbit
	c.Derived.KindColors[components.KindFox] = c.Colors.Fox

	c.Derived.Species = map[components.Kind]SpeciesConfig{
		components.KindRabbit: c.Rabbit,
		components.KindFox:    c.Fox.SpeciesConfig,
	}

	if c.Viewer.MaxDelayMS < c.Viewer.DelayMS {
		c.Viewer.MaxDelayMS = c.Viewer.DelayMS
	}
}

// ColorOf returns the display colour for a kind.
func (c *Config) ColorOf(k components.Kind) components.RGB {
	if int(k) < len(c.Derived.KindColors) {
		return c.Derived.KindColors[k]
	}
	return c.Colors.Empty
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
