// Package systems provides the spatial index and per-species rules that
// drive organisms through one simulation step.
package systems

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
)

// ErrInvalidDimensions is returned when a field is created with a
// non-positive depth or width.
var ErrInvalidDimensions = errors.New("field dimensions must be positive")

// neighborOffsets enumerates the 8-neighbourhood row-major, skipping the
// centre. Prey scans follow this order.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Field is a bounded rectangular grid holding at most one organism per
// location. There is no wraparound at the edges.
type Field struct {
	depth int
	width int
	cells map[components.Location]ecs.Entity
}

// NewField creates an empty field with the given number of rows and columns.
func NewField(depth, width int) (*Field, error) {
	if depth <= 0 || width <= 0 {
		return nil, fmt.Errorf("new field %dx%d: %w", depth, width, ErrInvalidDimensions)
	}
	return &Field{
		depth: depth,
		width: width,
		cells: make(map[components.Location]ecs.Entity, depth*width),
	}, nil
}

// Depth returns the number of rows.
func (f *Field) Depth() int { return f.depth }

// Width returns the number of columns.
func (f *Field) Width() int { return f.width }

// Count returns the number of occupied locations.
func (f *Field) Count() int { return len(f.cells) }

// Contains reports whether loc lies inside the grid.
func (f *Field) Contains(loc components.Location) bool {
	return loc.Row >= 0 && loc.Row < f.depth && loc.Col >= 0 && loc.Col < f.width
}

// Clear removes every organism from the field.
func (f *Field) Clear() {
	clear(f.cells)
}

// Place registers e at loc, displacing any previous occupant.
// Callers must only displace on intentional replacement.
func (f *Field) Place(e ecs.Entity, loc components.Location) {
	if !f.Contains(loc) {
		panic(fmt.Sprintf("field: place at %v outside %dx%d grid", loc, f.depth, f.width))
	}
	f.cells[loc] = e
}

// Remove vacates loc.
func (f *Field) Remove(loc components.Location) {
	delete(f.cells, loc)
}

// OrganismAt returns the organism at loc, if any.
func (f *Field) OrganismAt(loc components.Location) (ecs.Entity, bool) {
	e, ok := f.cells[loc]
	return e, ok
}

// IsFree reports whether loc is inside the grid and unoccupied.
func (f *Field) IsFree(loc components.Location) bool {
	if !f.Contains(loc) {
		return false
	}
	_, taken := f.cells[loc]
	return !taken
}

// AdjacentLocations returns every in-grid neighbour of loc regardless of
// occupancy, in a fixed row-major order.
func (f *Field) AdjacentLocations(loc components.Location) []components.Location {
	return f.AdjacentLocationsInto(nil, loc)
}

// AdjacentLocationsInto appends the neighbours of loc to dst.
// Reuse dst across calls to avoid allocations.
func (f *Field) AdjacentLocationsInto(dst []components.Location, loc components.Location) []components.Location {
	for _, off := range neighborOffsets {
		n := loc.Offset(off[0], off[1])
		if f.Contains(n) {
			dst = append(dst, n)
		}
	}
	return dst
}

// FreeAdjacentLocations returns the unoccupied neighbours of loc in the same
// order as AdjacentLocations.
func (f *Field) FreeAdjacentLocations(loc components.Location) []components.Location {
	return f.FreeAdjacentLocationsInto(nil, loc)
}

// FreeAdjacentLocationsInto appends the unoccupied neighbours of loc to dst.
func (f *Field) FreeAdjacentLocationsInto(dst []components.Location, loc components.Location) []components.Location {
	for _, off := range neighborOffsets {
		n := loc.Offset(off[0], off[1])
		if f.IsFree(n) {
			dst = append(dst, n)
		}
	}
	return dst
}

// RandomFreeAdjacentLocation draws one free neighbour of loc uniformly.
// Returns false when every neighbour is taken.
func (f *Field) RandomFreeAdjacentLocation(loc components.Location, rng *rand.Rand) (components.Location, bool) {
	var buf [len(neighborOffsets)]components.Location
	free := f.FreeAdjacentLocationsInto(buf[:0], loc)
	if len(free) == 0 {
		return components.Location{}, false
	}
	return free[rng.Intn(len(free))], true
}

// Locations calls fn for every grid location in row-major order.
func (f *Field) Locations(fn func(loc components.Location)) {
	for row := 0; row < f.depth; row++ {
		for col := 0; col < f.width; col++ {
			fn(components.Location{Row: row, Col: col})
		}
	}
}
