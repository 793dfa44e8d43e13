package systems

import (
	"github.com/mlange-42/ark/ecs"
)

// actPlant roots a waiting seedling once its cell is free. Rooted plants do
// nothing: they neither age nor starve and only die when eaten.
func (e *Ecosystem) actPlant(entity ecs.Entity) {
	rooting := e.rootingMap.Get(entity)
	if rooting.Rooted {
		return
	}

	org := e.orgMap.Get(entity)
	if !e.field.IsFree(org.Location) {
		return
	}
	rooting.Rooted = true
	e.field.Place(entity, org.Location)
	e.obs.Rooted(*org)
}
