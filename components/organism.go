package components

// Organism holds identity, life state and position shared by every kind.
// Location mirrors the Field entry for rooted organisms.
type Organism struct {
	ID       uint32
	Kind     Kind
	Alive    bool
	Age      int
	Location Location
}

// Hunger tracks a fox's food reserve in steps.
// The fox starves on the step FoodLevel reaches zero.
type Hunger struct {
	FoodLevel int
}

// Rooting marks whether a plant currently holds its cell.
// A regrown plant whose cell is still taken waits unrooted.
type Rooting struct {
	Rooted bool
}

// DeathCause records why an organism died.
type DeathCause uint8

const (
	DeathOldAge DeathCause = iota
	DeathStarvation
	DeathEaten
)

// String returns the display name for a DeathCause.
func (c DeathCause) String() string {
	switch c {
	case DeathOldAge:
		return "old_age"
	case DeathStarvation:
		return "starvation"
	case DeathEaten:
		return "eaten"
	}
	return "unknown"
}
