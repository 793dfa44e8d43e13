package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
)

// eatAdjacentPrey scans the fox's neighbours in field order and eats the
// first rabbit or rooted plant found. The prey dies and its cell is freed;
// the caller moves the fox onto it. Returns the prey's cell and the food
// level the meal restores.
func (e *Ecosystem) eatAdjacentPrey(fox ecs.Entity) (components.Location, int, bool) {
	predator := e.orgMap.Get(fox)

	e.adjacent = e.field.AdjacentLocationsInto(e.adjacent[:0], predator.Location)
	for _, loc := range e.adjacent {
		occupant, ok := e.field.OrganismAt(loc)
		if !ok {
			continue
		}
		prey := e.orgMap.Get(occupant)
		if !prey.Alive {
			continue
		}

		var food int
		switch prey.Kind {
		case components.KindRabbit:
			food = e.cfg.Fox.RabbitFoodValue
		case components.KindPlant:
			food = e.cfg.Fox.PlantFoodValue
		default:
			continue
		}

		e.kill(occupant, components.DeathEaten, predator.ID)
		return loc, food, true
	}

	return components.Location{}, 0, false
}
