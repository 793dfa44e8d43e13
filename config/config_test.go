package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/warren/components"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Population.FoxProbability != 0.02 {
		t.Errorf("fox_probability = %v, want 0.02", cfg.Population.FoxProbability)
	}
	if cfg.Population.RabbitProbability != 0.08 {
		t.Errorf("rabbit_probability = %v, want 0.08", cfg.Population.RabbitProbability)
	}
	if cfg.Fox.MaxAge != 150 || cfg.Fox.RabbitFoodValue != 9 {
		t.Errorf("fox defaults = %+v, want max_age 150 and rabbit_food_value 9", cfg.Fox)
	}
	if cfg.Rabbit.LitterMax != 4 {
		t.Errorf("rabbit litter_max = %d, want 4", cfg.Rabbit.LitterMax)
	}
	if cfg.Derived.Cells != cfg.Grid.Depth*cfg.Grid.Width {
		t.Errorf("derived cells = %d, want %d", cfg.Derived.Cells, cfg.Grid.Depth*cfg.Grid.Width)
	}
	if got := cfg.Derived.Species[components.KindFox]; got != cfg.Fox.SpeciesConfig {
		t.Errorf("derived fox species = %+v, want %+v", got, cfg.Fox.SpeciesConfig)
	}
	if got := cfg.ColorOf(components.KindPlant); got != cfg.Colors.Plant {
		t.Errorf("ColorOf(plant) = %+v, want %+v", got, cfg.Colors.Plant)
	}
}

func TestLoadOverridesOnlyPresentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "fox:\n  max_age: 20\ngrid:\n  depth: 5\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Fox.MaxAge != 20 {
		t.Errorf("fox max_age = %d, want 20", cfg.Fox.MaxAge)
	}
	if cfg.Fox.BreedingAge != 15 {
		t.Errorf("fox breeding_age = %d, want default 15", cfg.Fox.BreedingAge)
	}
	if cfg.Grid.Depth != 5 || cfg.Grid.Width != 120 {
		t.Errorf("grid = %dx%d, want 5x120", cfg.Grid.Depth, cfg.Grid.Width)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero depth", func(c *Config) { c.Grid.Depth = 0 }, "grid"},
		{"fox probability above one", func(c *Config) { c.Population.FoxProbability = 1.5 }, "fox_probability"},
		{"negative rabbit probability", func(c *Config) { c.Population.RabbitProbability = -0.1 }, "rabbit_probability"},
		{"inverted litter", func(c *Config) { c.Rabbit.LitterMin, c.Rabbit.LitterMax = 3, 2 }, "litter bounds"},
		{"zero max age", func(c *Config) { c.Fox.MaxAge = 0 }, "fox.max_age"},
		{"zero stats window", func(c *Config) { c.Telemetry.StatsWindow = 0 }, "stats_window"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Fox.LitterMax = 3

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Fox.LitterMax != 3 {
		t.Errorf("litter_max = %d, want 3", loaded.Fox.LitterMax)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() { global = saved }()

	defer func() {
		if recover() == nil {
			t.Error("expected panic from Cfg() before Init()")
		}
	}()
	Cfg()
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.yaml")
	if err := os.WriteFile(path, []byte("fox:\n  breding_age: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "breding_age") {
		t.Errorf("Load error = %v, want unknown field breding_age", err)
	}
}

func TestLoadEmptyFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := Default(); cfg.Grid != want.Grid {
		t.Errorf("grid = %+v, want %+v", cfg.Grid, want.Grid)
	}
}
