package systems

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
)

// Act runs one step of the organism's species rule. Offspring are appended
// to newborns and returned; they are fully placed on the field but must not
// act until the next step.
//
// Acting on a dead organism means the stepping discipline is broken and
// panics.
func (e *Ecosystem) Act(entity ecs.Entity, newborns []ecs.Entity) []ecs.Entity {
	org := e.orgMap.Get(entity)
	if !org.Alive {
		panic(fmt.Sprintf("ecosystem: %s %d at %v acted after dying", org.Kind, org.ID, org.Location))
	}

	switch org.Kind {
	case components.KindFox:
		return e.actFox(entity, newborns)
	case components.KindRabbit:
		return e.actRabbit(entity, newborns)
	case components.KindPlant:
		e.actPlant(entity)
		return newborns
	}
	panic(fmt.Sprintf("ecosystem: act for unknown kind %d", org.Kind))
}

// actFox ages and starves the fox, then hunts, moves and breeds.
func (e *Ecosystem) actFox(entity ecs.Entity, newborns []ecs.Entity) []ecs.Entity {
	org := e.orgMap.Get(entity)
	hunger := e.hungerMap.Get(entity)

	org.Age++
	hunger.FoodLevel--
	if org.Age > e.cfg.Fox.MaxAge {
		e.kill(entity, components.DeathOldAge, 0)
		return newborns
	}
	if hunger.FoodLevel <= 0 {
		e.kill(entity, components.DeathStarvation, 0)
		return newborns
	}

	if loc, food, ok := e.eatAdjacentPrey(entity); ok {
		e.moveTo(entity, loc)
		// A meal tops food up to its value, never down
		hunger.FoodLevel = max(hunger.FoodLevel, food)
	} else if loc, ok := e.field.RandomFreeAdjacentLocation(org.Location, e.rng.Rand); ok {
		e.moveTo(entity, loc)
	}

	return e.breed(entity, newborns)
}

// actRabbit ages the rabbit, then moves and breeds. Rabbits never hunt.
func (e *Ecosystem) actRabbit(entity ecs.Entity, newborns []ecs.Entity) []ecs.Entity {
	org := e.orgMap.Get(entity)

	org.Age++
	if org.Age > e.cfg.Rabbit.MaxAge {
		e.kill(entity, components.DeathOldAge, 0)
		return newborns
	}

	if loc, ok := e.field.RandomFreeAdjacentLocation(org.Location, e.rng.Rand); ok {
		e.moveTo(entity, loc)
	}

	return e.breed(entity, newborns)
}

// moveTo vacates the organism's cell and occupies loc.
func (e *Ecosystem) moveTo(entity ecs.Entity, loc components.Location) {
	org := e.orgMap.Get(entity)
	if cur, ok := e.field.OrganismAt(org.Location); ok && cur == entity {
		e.field.Remove(org.Location)
	}
	org.Location = loc
	e.placeChecked(entity, loc)
}

// kill marks the organism dead and frees its cell at once, so later actors
// in the same step see the cell as free. The entity itself stays in the
// world until the simulator reconciles the step.
func (e *Ecosystem) kill(entity ecs.Entity, cause components.DeathCause, killerID uint32) {
	org := e.orgMap.Get(entity)
	org.Alive = false
	if cur, ok := e.field.OrganismAt(org.Location); ok && cur == entity {
		e.field.Remove(org.Location)
	}
	e.obs.Died(*org, cause, killerID)
}
