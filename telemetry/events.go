// Package telemetry provides ecosystem health tracking, bookmarking, and snapshots.
package telemetry

import "github.com/pthm-cable/warren/components"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventBirth EventType = iota
	EventDeath
	EventRegrowth
	EventRooted
)

// Event represents a single lifecycle event.
type Event struct {
	Type     EventType
	Tick     int
	EntityID uint32
	Kind     components.Kind

	// Optional fields depending on event type
	OtherID uint32                // parent for births, killer for deaths
	Cause   components.DeathCause // deaths only
	Rooted  bool                  // regrowth only: whether the seedling took its cell at once
}

// NewBirthEvent creates a birth event.
func NewBirthEvent(tick int, childID, parentID uint32, kind components.Kind) Event {
	return Event{
		Type:     EventBirth,
		Tick:     tick,
		EntityID: childID,
		Kind:     kind,
		OtherID:  parentID,
	}
}

// NewDeathEvent creates a death event. killerID is zero unless the
// organism was eaten.
func NewDeathEvent(tick int, entityID uint32, kind components.Kind, cause components.DeathCause, killerID uint32) Event {
	return Event{
		Type:     EventDeath,
		Tick:     tick,
		EntityID: entityID,
		Kind:     kind,
		Cause:    cause,
		OtherID:  killerID,
	}
}

// NewRegrowthEvent creates a regrowth event for a plant replacing an eaten one.
func NewRegrowthEvent(tick int, plantID uint32, rooted bool) Event {
	return Event{
		Type:     EventRegrowth,
		Tick:     tick,
		EntityID: plantID,
		Kind:     components.KindPlant,
		Rooted:   rooted,
	}
}

// NewRootedEvent creates an event for a waiting seedling taking its cell.
func NewRootedEvent(tick int, plantID uint32) Event {
	return Event{
		Type:     EventRooted,
		Tick:     tick,
		EntityID: plantID,
		Kind:     components.KindPlant,
	}
}
