package inspector

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/warren/ui"
)

// Widget colours not covered by the shared theme.
var (
	colorBarBg   = rl.Color{R: 40, G: 40, B: 40, A: 255}
	colorBarFull = rl.Color{R: 100, G: 180, B: 100, A: 255}
	colorBarLow  = rl.Color{R: 180, G: 80, B: 80, A: 255}
	colorBoolOff = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

const (
	rowHeight   = 20
	valueOffset = 90 // x offset of the value column
	barWidth    = 100
)

// drawField draws one row and returns its height.
func drawField(theme ui.Theme, x, y int32, f Field) int32 {
	small := theme.FontSize - 2
	rl.DrawText(f.Name, x, y, small, theme.LabelColor)
	vx := x + valueOffset

	switch f.Widget {
	case WidgetBar:
		if v, ok := numeric(f.Value); ok {
			drawBar(theme, vx, y, v, f.Option("max", 1))
			return rowHeight
		}
	case WidgetBool:
		if v, ok := f.Value.(bool); ok {
			color, text := colorBoolOff, "no"
			if v {
				color, text = colorBarFull, "yes"
			}
			rl.DrawRectangle(vx, y+2, 12, 12, color)
			rl.DrawText(text, vx+18, y, small, theme.ValueColor)
			return rowHeight
		}
	}

	rl.DrawText(FormatValue(f.Value, f.Options["fmt"]), vx, y, small, theme.ValueColor)
	return rowHeight
}

// drawBar draws value against limit, shading from red when empty to green
// when full.
func drawBar(theme ui.Theme, x, y int32, value, limit float64) {
	ratio := float32(0)
	if limit > 0 {
		ratio = float32(value / limit)
	}
	ratio = min(max(ratio, 0), 1)

	rl.DrawRectangle(x, y+2, barWidth, 12, colorBarBg)
	rl.DrawRectangle(x, y+2, int32(barWidth*ratio), 12, lerpColor(colorBarLow, colorBarFull, ratio))
	rl.DrawText(FormatValue(value, "%.0f"), x+barWidth+6, y, theme.FontSize-2, theme.ValueColor)
}

func lerpColor(a, b rl.Color, t float32) rl.Color {
	mix := func(x, y uint8) uint8 { return uint8(float32(x) + (float32(y)-float32(x))*t) }
	return rl.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
