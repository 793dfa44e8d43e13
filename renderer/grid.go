// Package renderer draws the field with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/systems"
)

// Source is what the grid renderer reads each frame.
type Source interface {
	Field() *systems.Field
	Organism(e ecs.Entity) (systems.View, bool)
}

// GridRenderer draws one filled rectangle per occupied cell.
type GridRenderer struct {
	bounds rl.Rectangle
	empty  rl.Color
}

// NewGridRenderer creates a renderer that fits the field into bounds.
func NewGridRenderer(bounds rl.Rectangle, empty components.RGB) *GridRenderer {
	return &GridRenderer{
		bounds: bounds,
		empty:  ToColor(empty),
	}
}

// Draw renders the field. Empty cells show the background colour.
func (g *GridRenderer) Draw(src Source) {
	field := src.Field()
	depth, width := field.Depth(), field.Width()

	rl.DrawRectangleRec(g.bounds, g.empty)

	field.Locations(func(loc components.Location) {
		e, ok := field.OrganismAt(loc)
		if !ok {
			return
		}
		v, ok := src.Organism(e)
		if !ok {
			return
		}
		rl.DrawRectangleRec(g.CellRect(loc, depth, width), ToColor(v.Color))
	})
}

// CellRect returns the screen rectangle of a cell on a depth x width field.
func (g *GridRenderer) CellRect(loc components.Location, depth, width int) rl.Rectangle {
	cellW := g.bounds.Width / float32(width)
	cellH := g.bounds.Height / float32(depth)
	return rl.Rectangle{
		X:      g.bounds.X + float32(loc.Col)*cellW,
		Y:      g.bounds.Y + float32(loc.Row)*cellH,
		Width:  cellW,
		Height: cellH,
	}
}

// CellAt maps a screen point to the cell under it.
func (g *GridRenderer) CellAt(x, y float32, depth, width int) (components.Location, bool) {
	if x < g.bounds.X || y < g.bounds.Y || x >= g.bounds.X+g.bounds.Width || y >= g.bounds.Y+g.bounds.Height {
		return components.Location{}, false
	}
	col := int((x - g.bounds.X) / (g.bounds.Width / float32(width)))
	row := int((y - g.bounds.Y) / (g.bounds.Height / float32(depth)))
	if row >= depth || col >= width {
		return components.Location{}, false
	}
	return components.NewLocation(row, col), true
}

// ToColor converts a configured colour to an opaque raylib colour.
func ToColor(c components.RGB) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
}
