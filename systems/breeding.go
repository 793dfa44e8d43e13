package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
)

// breed gives the animal a chance to produce a litter on its free
// neighbouring cells. Offspring are appended to newborns.
func (e *Ecosystem) breed(parent ecs.Entity, newborns []ecs.Entity) []ecs.Entity {
	// Copy out of the component: spawning offspring may move storage.
	org := *e.orgMap.Get(parent)
	if !e.CanBreed(org.Kind, org.Age) {
		return newborns
	}
	params := e.cfg.Derived.Species[org.Kind]
	if !e.rng.Chance(params.BreedingProbability) {
		return newborns
	}

	litter := e.rng.IntBetween(params.LitterMin, params.LitterMax)
	free := e.field.FreeAdjacentLocations(org.Location)

	for i := 0; i < litter && len(free) > 0; i++ {
		j := e.rng.Intn(len(free))
		loc := free[j]
		free = append(free[:j], free[j+1:]...)

		child := e.Spawn(org.Kind, loc, false)
		newborns = append(newborns, child)
		e.obs.Born(*e.orgMap.Get(child), org.ID)
	}

	return newborns
}

// CanBreed reports whether an animal of the given kind and age is old
// enough to breed.
func (e *Ecosystem) CanBreed(kind components.Kind, age int) bool {
	params, ok := e.cfg.Derived.Species[kind]
	return ok && age >= params.BreedingAge
}
