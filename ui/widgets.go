// Package ui provides the viewer's control panel.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	LabelColor  rl.Color
	ValueColor  rl.Color
	StatusColor rl.Color
	Padding     int32
	FontSize    int32
	ButtonWidth float32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder: rl.Color{R: 60, G: 70, B: 80, A: 255},
		LabelColor:  rl.LightGray,
		ValueColor:  rl.White,
		StatusColor: rl.Yellow,
		Padding:     10,
		FontSize:    16,
		ButtonWidth: 90,
	}
}

// Renderer handles UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(bounds rl.Rectangle) {
	rl.DrawRectangleRec(bounds, r.Theme.PanelBg)
	rl.DrawRectangleLinesEx(bounds, 1, r.Theme.PanelBorder)
}

// DrawLabelValue draws "label: value" and returns the x after it.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	text := label + ": "
	rl.DrawText(text, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	x += rl.MeasureText(text, r.Theme.FontSize)
	rl.DrawText(value, x, y, r.Theme.FontSize, r.Theme.ValueColor)
	return x + rl.MeasureText(value, r.Theme.FontSize) + r.Theme.Padding*2
}
