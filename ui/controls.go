package ui

import (
	"fmt"
	"strconv"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/warren/systems"
)

// Action is a one-shot request from the control panel.
type Action int

const (
	ActionNone Action = iota
	ActionStep
	ActionReset
)

// Controls is the panel under the grid: Run/Pause, Step and Reset buttons,
// a step delay slider and a status line.
type Controls struct {
	renderer *Renderer
	bounds   rl.Rectangle

	running    bool
	delayMS    float32
	maxDelayMS float32
}

// NewControls creates a paused control panel.
func NewControls(bounds rl.Rectangle, delay, maxDelay time.Duration) *Controls {
	return &Controls{
		renderer:   NewRenderer(),
		bounds:     bounds,
		delayMS:    float32(delay.Milliseconds()),
		maxDelayMS: float32(maxDelay.Milliseconds()),
	}
}

// Running reports whether continuous stepping is on.
func (c *Controls) Running() bool { return c.running }

// Delay returns the pause between steps while running.
func (c *Controls) Delay() time.Duration {
	return time.Duration(c.delayMS) * time.Millisecond
}

// Draw renders the panel and returns the action the user requested this
// frame.
func (c *Controls) Draw(step int, census systems.Census) Action {
	r := c.renderer
	pad := float32(r.Theme.Padding)
	bw := r.Theme.ButtonWidth
	bh := float32(24)

	r.DrawPanel(c.bounds)

	x := c.bounds.X + pad
	y := c.bounds.Y + pad
	action := ActionNone

	label := "Run"
	if c.running {
		label = "Pause"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: bw, Height: bh}, label) {
		c.running = !c.running
	}
	x += bw + pad

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: bw, Height: bh}, "Step") {
		c.running = false
		action = ActionStep
	}
	x += bw + pad

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: bw, Height: bh}, "Reset") {
		c.running = false
		action = ActionReset
	}
	x += bw + pad*5

	c.delayMS = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: 200, Height: bh},
		"Delay",
		strconv.Itoa(int(c.delayMS))+" ms",
		c.delayMS, 0, c.maxDelayMS,
	)

	// Status line
	ty := int32(y + bh + pad/2)
	tx := int32(c.bounds.X + pad)
	tx = r.DrawLabelValue(tx, ty, "Step", strconv.Itoa(step))
	tx = r.DrawLabelValue(tx, ty, "Foxes", strconv.Itoa(census.Foxes()))
	tx = r.DrawLabelValue(tx, ty, "Rabbits", strconv.Itoa(census.Rabbits()))
	tx = r.DrawLabelValue(tx, ty, "Plants", fmt.Sprintf("%d (%d dormant)", census.Plants(), census.Dormant))

	status := "PAUSED"
	if c.running {
		status = "Running"
	}
	rl.DrawText(status, tx, ty, r.Theme.FontSize, r.Theme.StatusColor)

	return action
}
