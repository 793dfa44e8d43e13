// Package inspector shows the organism under a clicked cell.
package inspector

import (
	"fmt"
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/renderer"
	"github.com/pthm-cable/warren/systems"
	"github.com/pthm-cable/warren/ui"
)

const (
	panelWidth   = 240
	headerHeight = 28
	closeSize    = 18
)

var (
	colorHeader   = rl.Color{R: 45, G: 45, B: 55, A: 255}
	colorCloseBtn = rl.Color{R: 180, G: 80, B: 80, A: 255}
	colorSelected = rl.Yellow
)

// Inspector tracks one selected organism and draws its panel in the top
// right corner of the grid. The selection is dropped once the organism
// dies, so a regrown plant on the same cell is never shown in its place.
type Inspector struct {
	ui     *ui.Renderer
	bounds rl.Rectangle // panel, height fixed on first draw

	selected    ecs.Entity
	hasSelected bool

	// Extra tag options by field, for limits known only from config.
	options map[string]map[string]string
}

// NewInspector creates an inspector for a screen of the given width.
// maxFood is the top of the fox food bar.
func NewInspector(screenWidth int32, maxFood int) *Inspector {
	r := ui.NewRenderer()
	pad := float32(r.Theme.Padding)
	return &Inspector{
		ui:     r,
		bounds: rl.Rectangle{X: float32(screenWidth) - panelWidth - pad, Y: pad, Width: panelWidth},
		options: map[string]map[string]string{
			"FoodLevel": {"max": strconv.Itoa(maxFood)},
		},
	}
}

// HandleInput updates the selection from this frame's mouse and keyboard.
// A left click on an occupied cell selects its holder; right click, Escape
// or the close button clear the selection. Clicks on the panel are ignored.
func (ins *Inspector) HandleInput(mouse rl.Vector2, grid *renderer.GridRenderer, src renderer.Source) {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	if ins.hasSelected {
		if rl.CheckCollisionPointRec(mouse, ins.closeButton()) {
			ins.Deselect()
			return
		}
		if rl.CheckCollisionPointRec(mouse, ins.bounds) {
			return
		}
	}

	field := src.Field()
	loc, ok := grid.CellAt(mouse.X, mouse.Y, field.Depth(), field.Width())
	if !ok {
		return
	}
	if e, ok := field.OrganismAt(loc); ok {
		ins.selected, ins.hasSelected = e, true
	}
}

// Deselect clears the selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// view returns the selected organism, dropping the selection if it died.
func (ins *Inspector) view(src renderer.Source) (systems.View, bool) {
	if !ins.hasSelected {
		return systems.View{}, false
	}
	org, ok := src.Organism(ins.selected)
	if !ok || !org.Alive {
		ins.Deselect()
		return systems.View{}, false
	}
	return org, true
}

// rows returns the panel rows for org with config options applied.
func (ins *Inspector) rows(org systems.View) []Field {
	all := ExtractFields(org)
	rows := all[:0]
	for _, f := range all {
		key := fieldKey(f)
		// Only foxes get hungry
		if key == "FoodLevel" && org.Kind != components.KindFox {
			continue
		}
		for k, val := range ins.options[key] {
			f.Options[k] = val
		}
		rows = append(rows, f)
	}
	return rows
}

// Draw outlines the selected cell and renders the panel.
func (ins *Inspector) Draw(grid *renderer.GridRenderer, src renderer.Source) {
	org, ok := ins.view(src)
	if !ok {
		return
	}
	fields := ins.rows(org)

	field := src.Field()
	rl.DrawRectangleLinesEx(grid.CellRect(org.Location, field.Depth(), field.Width()), 2, colorSelected)

	theme := ins.ui.Theme
	pad := theme.Padding
	ins.bounds.Height = float32(headerHeight + 2*pad + rowHeight*int32(len(fields)))
	ins.ui.DrawPanel(ins.bounds)

	x, y := int32(ins.bounds.X), int32(ins.bounds.Y)
	rl.DrawRectangle(x, y, panelWidth, headerHeight, colorHeader)
	rl.DrawText(fmt.Sprintf("%s #%d", org.Kind, org.ID), x+pad, y+6, theme.FontSize, theme.ValueColor)

	cb := ins.closeButton()
	rl.DrawRectangleRec(cb, colorCloseBtn)
	rl.DrawText("x", int32(cb.X)+5, int32(cb.Y)+1, theme.FontSize, rl.White)

	y += headerHeight + pad
	for _, f := range fields {
		y += drawField(theme, x+pad, y, f)
	}
}

func (ins *Inspector) closeButton() rl.Rectangle {
	return rl.Rectangle{
		X:      ins.bounds.X + panelWidth - closeSize - 5,
		Y:      ins.bounds.Y + 5,
		Width:  closeSize,
		Height: closeSize,
	}
}

// fieldKey maps a display label back to its Go field name for the option
// table.
func fieldKey(f Field) string {
	if f.Name == Humanize("FoodLevel") {
		return "FoodLevel"
	}
	return f.Name
}
