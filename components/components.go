// Package components defines ECS components for the simulation.
package components

// Kind tags the species of an organism. Every rule that needs to tell
// species apart switches on this tag.
type Kind uint8

const (
	KindPlant Kind = iota
	KindRabbit
	KindFox
)

// IsAnimal reports whether the kind moves, ages and breeds.
func (k Kind) IsAnimal() bool {
	return k == KindRabbit || k == KindFox
}

// String returns the display name for a Kind.
func (k Kind) String() string {
	names := KindNames()
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// MarshalText implements encoding.TextMarshaler so kinds read well in
// snapshots and CSV output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, ok := ParseKind(string(text))
	if !ok {
		return &UnknownKindError{Name: string(text)}
	}
	*k = parsed
	return nil
}

// UnknownKindError is returned when a kind name cannot be parsed.
type UnknownKindError struct {
	Name string
}

func (e *UnknownKindError) Error() string {
	return "components: unknown kind " + e.Name
}
