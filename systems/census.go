package systems

import (
	"github.com/pthm-cable/warren/components"
)

// Census counts the living organisms of each kind.
type Census struct {
	ByKind  [3]int
	Dormant int // plants waiting for their cell
}

// Foxes returns the number of living foxes.
func (c Census) Foxes() int { return c.ByKind[components.KindFox] }

// Rabbits returns the number of living rabbits.
func (c Census) Rabbits() int { return c.ByKind[components.KindRabbit] }

// Plants returns the number of living plants, rooted or not.
func (c Census) Plants() int { return c.ByKind[components.KindPlant] }

// Total returns the number of living organisms.
func (c Census) Total() int {
	total := 0
	for _, n := range c.ByKind {
		total += n
	}
	return total
}

// Census counts living organisms in the world.
func (e *Ecosystem) Census() Census {
	var c Census

	query := e.orgFilter.Query()
	for query.Next() {
		org := query.Get()
		if org.Alive {
			c.ByKind[org.Kind]++
		}
	}

	plants := e.rootingFilter.Query()
	for plants.Next() {
		org, rooting := plants.Get()
		if org.Alive && !rooting.Rooted {
			c.Dormant++
		}
	}

	return c
}

// Sample holds per-organism values gathered for statistics.
type Sample struct {
	FoxFood    []float64
	FoxAges    []float64
	RabbitAges []float64
}

// Sample gathers fox food levels and animal ages from living organisms.
func (e *Ecosystem) Sample() Sample {
	var s Sample

	foxes := e.hungerFilter.Query()
	for foxes.Next() {
		org, hunger := foxes.Get()
		if !org.Alive {
			continue
		}
		s.FoxFood = append(s.FoxFood, float64(hunger.FoodLevel))
		s.FoxAges = append(s.FoxAges, float64(org.Age))
	}

	query := e.orgFilter.Query()
	for query.Next() {
		org := query.Get()
		if org.Alive && org.Kind == components.KindRabbit {
			s.RabbitAges = append(s.RabbitAges, float64(org.Age))
		}
	}

	return s
}
