package main

import (
	"testing"

	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/telemetry"
)

func TestParamVector_DefaultsSurviveApply(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()
	want := pv.ExtractFromConfig(cfg)

	if len(want) != pv.Dim() {
		t.Fatalf("ExtractFromConfig returned %d values, want %d", len(want), pv.Dim())
	}

	out := config.Default()
	if err := pv.ApplyToConfig(out, want); err != nil {
		t.Fatalf("ApplyToConfig: %v", err)
	}
	got := pv.ExtractFromConfig(out)
	for i, spec := range pv.Specs {
		if got[i] != want[i] {
			t.Errorf("%s = %v after apply, want %v", spec.Name, got[i], want[i])
		}
	}
}

func TestParamVector_ClampRoundsIntegers(t *testing.T) {
	pv := NewParamVector()
	raw := make([]float64, pv.Dim())
	for i := range raw {
		raw[i] = 1e6
	}
	raw[0] = 7.4

	clamped := pv.Clamp(raw)
	if clamped[0] != 7 {
		t.Errorf("fox_breeding_age = %v, want 7", clamped[0])
	}
	for i, spec := range pv.Specs[1:] {
		if clamped[i+1] != spec.Max {
			t.Errorf("%s = %v, want max %v", spec.Name, clamped[i+1], spec.Max)
		}
	}
}

func TestParamVector_NormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.ExtractFromConfig(config.Default())
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if d := back[i] - raw[i]; d > 1e-9 || d < -1e-9 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestComputeQuality(t *testing.T) {
	if q := computeQuality(nil); q != 0 {
		t.Errorf("quality of no windows = %v, want 0", q)
	}

	var windows []telemetry.WindowStats
	for i := 0; i < 10; i++ {
		windows = append(windows, telemetry.WindowStats{
			Rabbits:    80,
			Foxes:      10,
			FoxFoodP50: 4,
			FoxFoodP90: 8,
		})
	}
	if q := computeQuality(windows); q < 0.99 {
		t.Errorf("quality of a steady 8:1 ecosystem = %v, want ~1", q)
	}

	for i := range windows {
		windows[i].Foxes = 1
	}
	if q := computeQuality(windows); q != 0 {
		t.Errorf("quality without viable foxes = %v, want 0", q)
	}
}
