package systems

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
)

func mustField(t *testing.T, depth, width int) *Field {
	t.Helper()
	f, err := NewField(depth, width)
	if err != nil {
		t.Fatalf("NewField(%d, %d): %v", depth, width, err)
	}
	return f
}

func TestNewField_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name         string
		depth, width int
	}{
		{"zero depth", 0, 5},
		{"zero width", 5, 0},
		{"negative", -1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewField(tt.depth, tt.width)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("NewField(%d, %d) error = %v, want ErrInvalidDimensions", tt.depth, tt.width, err)
			}
		})
	}
}

func TestField_AdjacentLocationCounts(t *testing.T) {
	f := mustField(t, 4, 5)

	tests := []struct {
		name string
		loc  components.Location
		want int
	}{
		{"top-left corner", components.NewLocation(0, 0), 3},
		{"bottom-right corner", components.NewLocation(3, 4), 3},
		{"top edge", components.NewLocation(0, 2), 5},
		{"left edge", components.NewLocation(2, 0), 5},
		{"interior", components.NewLocation(1, 1), 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj := f.AdjacentLocations(tt.loc)
			if len(adj) != tt.want {
				t.Errorf("AdjacentLocations(%v) = %d cells, want %d", tt.loc, len(adj), tt.want)
			}
			for _, n := range adj {
				if !f.Contains(n) || n == tt.loc {
					t.Errorf("AdjacentLocations(%v) returned %v", tt.loc, n)
				}
			}
		})
	}
}

func TestField_AdjacentOrderIsRowMajor(t *testing.T) {
	f := mustField(t, 3, 3)

	got := f.AdjacentLocations(components.NewLocation(1, 1))
	want := []components.Location{
		{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2},
		{Row: 1, Col: 0}, {Row: 1, Col: 2},
		{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("neighbour %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestField_SingleCellHasNoNeighbours(t *testing.T) {
	f := mustField(t, 1, 1)
	if adj := f.AdjacentLocations(components.NewLocation(0, 0)); len(adj) != 0 {
		t.Errorf("1x1 field has neighbours %v", adj)
	}
}

func TestField_PlaceRemoveAndFree(t *testing.T) {
	world := ecs.NewWorld()
	m := ecs.NewMap1[components.Organism](world)
	a := m.NewEntity(&components.Organism{ID: 1})
	b := m.NewEntity(&components.Organism{ID: 2})

	f := mustField(t, 3, 3)
	center := components.NewLocation(1, 1)

	f.Place(a, components.NewLocation(0, 0))
	f.Place(b, components.NewLocation(0, 1))

	if got, ok := f.OrganismAt(components.NewLocation(0, 0)); !ok || got != a {
		t.Errorf("OrganismAt(0,0) = %v,%v, want a", got, ok)
	}
	if f.Count() != 2 {
		t.Errorf("Count = %d, want 2", f.Count())
	}

	free := f.FreeAdjacentLocations(center)
	if len(free) != 6 {
		t.Errorf("free neighbours = %d, want 6", len(free))
	}
	for _, loc := range free {
		if !f.IsFree(loc) {
			t.Errorf("%v reported free but occupied", loc)
		}
	}

	f.Remove(components.NewLocation(0, 0))
	if !f.IsFree(components.NewLocation(0, 0)) {
		t.Error("cell still occupied after Remove")
	}
	if f.IsFree(components.NewLocation(-1, 0)) {
		t.Error("out-of-grid cell reported free")
	}

	f.Clear()
	if f.Count() != 0 {
		t.Errorf("Count after Clear = %d", f.Count())
	}
}

func TestField_PlaceOutsidePanics(t *testing.T) {
	world := ecs.NewWorld()
	e := ecs.NewMap1[components.Organism](world).NewEntity(&components.Organism{})
	f := mustField(t, 2, 2)

	defer func() {
		if recover() == nil {
			t.Error("expected panic placing outside the grid")
		}
	}()
	f.Place(e, components.NewLocation(2, 0))
}

func TestField_RandomFreeAdjacentLocation(t *testing.T) {
	world := ecs.NewWorld()
	m := ecs.NewMap1[components.Organism](world)
	f := mustField(t, 3, 3)
	rng := rand.New(rand.NewSource(42))
	center := components.NewLocation(1, 1)

	// Fill every neighbour except (2,2)
	for _, loc := range f.AdjacentLocations(center) {
		if loc != components.NewLocation(2, 2) {
			f.Place(m.NewEntity(&components.Organism{}), loc)
		}
	}

	for i := 0; i < 20; i++ {
		loc, ok := f.RandomFreeAdjacentLocation(center, rng)
		if !ok || loc != components.NewLocation(2, 2) {
			t.Fatalf("RandomFreeAdjacentLocation = %v,%v, want (2,2)", loc, ok)
		}
	}

	f.Place(m.NewEntity(&components.Organism{}), components.NewLocation(2, 2))
	if _, ok := f.RandomFreeAdjacentLocation(center, rng); ok {
		t.Error("expected no free neighbour")
	}
}

func TestField_LocationsRowMajor(t *testing.T) {
	f := mustField(t, 2, 3)
	var got []components.Location
	f.Locations(func(loc components.Location) { got = append(got, loc) })

	if len(got) != 6 {
		t.Fatalf("visited %d cells, want 6", len(got))
	}
	if got[1] != components.NewLocation(0, 1) || got[3] != components.NewLocation(1, 0) {
		t.Errorf("order = %v", got)
	}
}
