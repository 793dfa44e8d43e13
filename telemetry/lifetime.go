package telemetry

import "github.com/pthm-cable/warren/components"

// LifetimeStats tracks per-organism statistics over its lifetime.
type LifetimeStats struct {
	Kind      components.Kind `json:"-"`
	BirthTick int             `json:"birth_tick"`
	ParentID  uint32          `json:"parent_id,omitempty"` // zero for the initial population

	Children int `json:"children"`
	Kills    int `json:"kills,omitempty"`  // rabbits eaten (foxes only)
	Grazed   int `json:"grazed,omitempty"` // plants eaten (foxes only)
}

// LifetimeTracker manages per-animal lifetime statistics. Plants are not
// tracked.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats

	// Lifespans of animals that died since the last Drain, per kind.
	lifespans [3][]float64
}

// LifespanSummary holds mean lifespans per species for a window.
type LifespanSummary struct {
	FoxMean    float64
	RabbitMean float64
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new animal.
func (lt *LifetimeTracker) Register(id uint32, kind components.Kind, birthTick int, parentID uint32) {
	if !kind.IsAnimal() {
		return
	}
	lt.stats[id] = &LifetimeStats{
		Kind:      kind,
		BirthTick: birthTick,
		ParentID:  parentID,
	}
	if parent := lt.stats[parentID]; parent != nil {
		parent.Children++
	}
}

// Get returns the lifetime stats for an organism, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// RecordMeal credits a fox with eating prey of the given kind.
func (lt *LifetimeTracker) RecordMeal(foxID uint32, prey components.Kind) {
	s := lt.stats[foxID]
	if s == nil {
		return
	}
	switch prey {
	case components.KindRabbit:
		s.Kills++
	case components.KindPlant:
		s.Grazed++
	}
}

// Remove drops an organism's stats, records its lifespan and returns the
// stats for logging.
func (lt *LifetimeTracker) Remove(id uint32, deathTick int) *LifetimeStats {
	s := lt.stats[id]
	if s == nil {
		return nil
	}
	delete(lt.stats, id)
	lt.lifespans[s.Kind] = append(lt.lifespans[s.Kind], float64(deathTick-s.BirthTick))
	return s
}

// Drain returns the mean lifespans recorded since the previous call and
// clears them.
func (lt *LifetimeTracker) Drain() LifespanSummary {
	summary := LifespanSummary{
		FoxMean:    mean(lt.lifespans[components.KindFox]),
		RabbitMean: mean(lt.lifespans[components.KindRabbit]),
	}
	for i := range lt.lifespans {
		lt.lifespans[i] = lt.lifespans[i][:0]
	}
	return summary
}

// Clear forgets every tracked organism.
func (lt *LifetimeTracker) Clear() {
	clear(lt.stats)
	for i := range lt.lifespans {
		lt.lifespans[i] = lt.lifespans[i][:0]
	}
}

// Count returns the number of tracked organisms.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

func mean(values []float64) float64 {
	m, _, _, _, _ := ComputeDistribution(values)
	return m
}
