package systems

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/config"
)

// Observer receives lifecycle events as the rules apply them.
type Observer interface {
	Born(child components.Organism, parentID uint32)
	Died(org components.Organism, cause components.DeathCause, killerID uint32)
	Regrown(plant components.Organism, rooted bool)
	Rooted(plant components.Organism)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) Born(components.Organism, uint32)                        {}
func (NopObserver) Died(components.Organism, components.DeathCause, uint32) {}
func (NopObserver) Regrown(components.Organism, bool)                       {}
func (NopObserver) Rooted(components.Organism)                              {}

// Ecosystem stores every organism as an entity in an ECS world and applies
// the per-species rules against a shared Field.
//
// Component pointers returned by the mappers stay valid only until the next
// structural change (spawn or despawn), so rules copy what they need before
// spawning offspring.
type Ecosystem struct {
	world *ecs.World
	field *Field
	rng   *RandomSource
	cfg   *config.Config
	obs   Observer

	plantMapper  *ecs.Map3[components.Organism, components.Appearance, components.Rooting]
	rabbitMapper *ecs.Map2[components.Organism, components.Appearance]
	foxMapper    *ecs.Map3[components.Organism, components.Appearance, components.Hunger]

	orgMap        *ecs.Map1[components.Organism]
	appearanceMap *ecs.Map1[components.Appearance]
	hungerMap     *ecs.Map[components.Hunger]
	rootingMap    *ecs.Map[components.Rooting]

	orgFilter     *ecs.Filter1[components.Organism]
	hungerFilter  *ecs.Filter2[components.Organism, components.Hunger]
	rootingFilter *ecs.Filter2[components.Organism, components.Rooting]

	nextID uint32

	// scratch buffer for neighbour scans
	adjacent []components.Location
}

// NewEcosystem creates an empty ecosystem over field.
func NewEcosystem(field *Field, rng *RandomSource, cfg *config.Config) *Ecosystem {
	world := ecs.NewWorld()

	return &Ecosystem{
		world: world,
		field: field,
		rng:   rng,
		cfg:   cfg,
		obs:   NopObserver{},

		plantMapper:  ecs.NewMap3[components.Organism, components.Appearance, components.Rooting](world),
		rabbitMapper: ecs.NewMap2[components.Organism, components.Appearance](world),
		foxMapper:    ecs.NewMap3[components.Organism, components.Appearance, components.Hunger](world),

		orgMap:        ecs.NewMap1[components.Organism](world),
		appearanceMap: ecs.NewMap1[components.Appearance](world),
		hungerMap:     ecs.NewMap[components.Hunger](world),
		rootingMap:    ecs.NewMap[components.Rooting](world),

		orgFilter:     ecs.NewFilter1[components.Organism](world),
		hungerFilter:  ecs.NewFilter2[components.Organism, components.Hunger](world),
		rootingFilter: ecs.NewFilter2[components.Organism, components.Rooting](world),

		nextID: 1,
	}
}

// SetObserver installs the receiver of lifecycle events. nil restores the
// no-op observer.
func (e *Ecosystem) SetObserver(obs Observer) {
	if obs == nil {
		obs = NopObserver{}
	}
	e.obs = obs
}

// Field returns the shared field.
func (e *Ecosystem) Field() *Field { return e.field }

// Spawn creates an organism of the given kind at loc.
// Animals must be spawned on a free cell. A plant whose cell is taken is
// created unrooted and roots once the cell frees up.
// With randomAge set, animals start at a random age (and foxes with a
// random food level), as in the initial population.
func (e *Ecosystem) Spawn(kind components.Kind, loc components.Location, randomAge bool) ecs.Entity {
	org := components.Organism{
		ID:       e.nextID,
		Kind:     kind,
		Alive:    true,
		Location: loc,
	}
	e.nextID++
	look := components.Appearance{Color: e.cfg.ColorOf(kind)}

	var entity ecs.Entity
	switch kind {
	case components.KindPlant:
		rooting := components.Rooting{Rooted: e.field.IsFree(loc)}
		entity = e.plantMapper.NewEntity(&org, &look, &rooting)
		if rooting.Rooted {
			e.field.Place(entity, loc)
		}

	case components.KindRabbit:
		if randomAge {
			org.Age = e.rng.Intn(e.cfg.Rabbit.MaxAge)
		}
		entity = e.rabbitMapper.NewEntity(&org, &look)
		e.placeChecked(entity, loc)

	case components.KindFox:
		hunger := components.Hunger{FoodLevel: e.cfg.Fox.RabbitFoodValue}
		if randomAge {
			org.Age = e.rng.Intn(e.cfg.Fox.MaxAge)
			hunger.FoodLevel = e.rng.IntBetween(1, e.cfg.Fox.RabbitFoodValue)
		}
		entity = e.foxMapper.NewEntity(&org, &look, &hunger)
		e.placeChecked(entity, loc)

	default:
		panic(fmt.Sprintf("ecosystem: spawn of unknown kind %d", kind))
	}

	return entity
}

// Despawn removes an organism from the world. Its field entry, if it still
// holds one, is vacated.
func (e *Ecosystem) Despawn(entity ecs.Entity) {
	org := e.orgMap.Get(entity)
	if cur, ok := e.field.OrganismAt(org.Location); ok && cur == entity {
		e.field.Remove(org.Location)
	}
	e.world.RemoveEntity(entity)
}

// Regrow replaces a dead plant with a fresh one at the same location and
// returns the new entity.
func (e *Ecosystem) Regrow(dead ecs.Entity) ecs.Entity {
	org := e.orgMap.Get(dead)
	if org.Kind != components.KindPlant || org.Alive {
		panic(fmt.Sprintf("ecosystem: regrow of %s %d that is not a dead plant", org.Kind, org.ID))
	}
	loc := org.Location
	e.Despawn(dead)

	seedling := e.Spawn(components.KindPlant, loc, false)
	rooted := e.rootingMap.Get(seedling).Rooted
	e.obs.Regrown(*e.orgMap.Get(seedling), rooted)
	return seedling
}

// Exists reports whether entity is still stored in the world.
func (e *Ecosystem) Exists(entity ecs.Entity) bool {
	return e.world.Alive(entity)
}

// IsAlive reports whether the organism has not died.
func (e *Ecosystem) IsAlive(entity ecs.Entity) bool {
	return e.orgMap.Get(entity).Alive
}

// Kind returns the species tag of the organism.
func (e *Ecosystem) Kind(entity ecs.Entity) components.Kind {
	return e.orgMap.Get(entity).Kind
}

// Location returns the organism's current location.
func (e *Ecosystem) Location(entity ecs.Entity) components.Location {
	return e.orgMap.Get(entity).Location
}

// Organism returns a copy of the organism's core component.
func (e *Ecosystem) Organism(entity ecs.Entity) components.Organism {
	return *e.orgMap.Get(entity)
}

// FoodLevel returns a fox's food level. ok is false for other kinds.
func (e *Ecosystem) FoodLevel(entity ecs.Entity) (level int, ok bool) {
	if !e.hungerMap.Has(entity) {
		return 0, false
	}
	return e.hungerMap.Get(entity).FoodLevel, true
}

// SetFoodLevel overrides a fox's food level.
func (e *Ecosystem) SetFoodLevel(entity ecs.Entity, level int) {
	e.hungerMap.Get(entity).FoodLevel = level
}

// SetAge overrides an organism's age.
func (e *Ecosystem) SetAge(entity ecs.Entity, age int) {
	e.orgMap.Get(entity).Age = age
}

// IsRooted reports whether a plant holds its cell. Animals always do.
func (e *Ecosystem) IsRooted(entity ecs.Entity) bool {
	if !e.rootingMap.Has(entity) {
		return true
	}
	return e.rootingMap.Get(entity).Rooted
}

// View is the read-only picture of an organism handed to renderers.
type View struct {
	ID        uint32              `inspect:"skip"`
	Kind      components.Kind     `inspect:"skip"`
	Location  components.Location `inspect:"label"`
	Alive     bool                `inspect:"skip"`
	Rooted    bool                `inspect:"bool"`
	Age       int                 `inspect:"label,fmt:%d steps"`
	FoodLevel int                 `inspect:"bar"` // foxes only
	Color     components.RGB      `inspect:"skip"`
}

// View describes an organism for presentation.
func (e *Ecosystem) View(entity ecs.Entity) (View, bool) {
	if !e.world.Alive(entity) {
		return View{}, false
	}
	org := e.orgMap.Get(entity)
	v := View{
		ID:       org.ID,
		Kind:     org.Kind,
		Location: org.Location,
		Alive:    org.Alive,
		Rooted:   e.IsRooted(entity),
		Age:      org.Age,
		Color:    e.appearanceMap.Get(entity).Color,
	}
	if level, ok := e.FoodLevel(entity); ok {
		v.FoodLevel = level
	}
	return v, true
}

// placeChecked places an animal and panics if another live organism already
// holds the cell.
func (e *Ecosystem) placeChecked(entity ecs.Entity, loc components.Location) {
	if cur, ok := e.field.OrganismAt(loc); ok && cur != entity {
		other := e.orgMap.Get(cur)
		panic(fmt.Sprintf("ecosystem: %s %d placed on %v held by %s %d",
			e.orgMap.Get(entity).Kind, e.orgMap.Get(entity).ID, loc, other.Kind, other.ID))
	}
	e.field.Place(entity, loc)
}
