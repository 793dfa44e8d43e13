package telemetry

import (
	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/systems"
)

// Collector accumulates events within step windows and produces WindowStats.
type Collector struct {
	windowSteps int

	// Current window tracking
	windowStartTick int

	// Event counters for current window
	births        [3]int
	deathsByCause [3][3]int // [kind][cause]
	regrowths     int
	regrownRooted int
	rooted        int
}

// NewCollector creates a new stats collector.
// windowSteps: how many simulation steps each stats window spans.
func NewCollector(windowSteps int) *Collector {
	if windowSteps < 1 {
		windowSteps = 1
	}
	return &Collector{windowSteps: windowSteps}
}

// Record counts a lifecycle event in the current window.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventBirth:
		c.births[ev.Kind]++
	case EventDeath:
		c.deathsByCause[ev.Kind][ev.Cause]++
	case EventRegrowth:
		c.regrowths++
		if ev.Rooted {
			c.regrownRooted++
		}
	case EventRooted:
		c.rooted++
	}
}

// Births returns births of the given kind in the current window.
func (c *Collector) Births(kind components.Kind) int {
	return c.births[kind]
}

// Deaths returns deaths of the given kind in the current window, all causes.
func (c *Collector) Deaths(kind components.Kind) int {
	total := 0
	for _, n := range c.deathsByCause[kind] {
		total += n
	}
	return total
}

// ShouldFlush returns true if enough steps have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowSteps
}

// Flush produces a WindowStats and resets counters for the next window.
// The caller provides the census and per-organism sample at window end and
// the mean lifespans of organisms that died during the window.
func (c *Collector) Flush(currentTick int, census systems.Census, sample systems.Sample, lifespans LifespanSummary) WindowStats {
	foxFoodMean, foxFoodStd, foxFoodP10, foxFoodP50, foxFoodP90 := ComputeDistribution(sample.FoxFood)
	foxAgeMean, _, _, _, _ := ComputeDistribution(sample.FoxAges)
	rabbitAgeMean, _, _, _, _ := ComputeDistribution(sample.RabbitAges)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Foxes:   census.Foxes(),
		Rabbits: census.Rabbits(),
		Plants:  census.Plants(),
		Dormant: census.Dormant,

		FoxBirths:    c.births[components.KindFox],
		RabbitBirths: c.births[components.KindRabbit],

		FoxOldAge:       c.deathsByCause[components.KindFox][components.DeathOldAge],
		FoxStarved:      c.deathsByCause[components.KindFox][components.DeathStarvation],
		RabbitOldAge:    c.deathsByCause[components.KindRabbit][components.DeathOldAge],
		RabbitsEaten:    c.deathsByCause[components.KindRabbit][components.DeathEaten],
		PlantsEaten:     c.deathsByCause[components.KindPlant][components.DeathEaten],
		Regrowths:       c.regrowths,
		RegrownRooted:   c.regrownRooted,
		SeedlingsRooted: c.rooted,

		FoxFoodMean: foxFoodMean,
		FoxFoodStd:  foxFoodStd,
		FoxFoodP10:  foxFoodP10,
		FoxFoodP50:  foxFoodP50,
		FoxFoodP90:  foxFoodP90,

		FoxAgeMean:    foxAgeMean,
		RabbitAgeMean: rabbitAgeMean,

		FoxLifespanMean:    lifespans.FoxMean,
		RabbitLifespanMean: lifespans.RabbitMean,
	}

	c.Reset(currentTick)

	return stats
}

// Reset discards the current window and starts a new one at tick.
func (c *Collector) Reset(tick int) {
	c.windowStartTick = tick
	c.births = [3]int{}
	c.deathsByCause = [3][3]int{}
	c.regrowths = 0
	c.regrownRooted = 0
	c.rooted = 0
}
