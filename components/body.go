package components

// RGB is a display colour. The engine carries it but never reads it.
type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// Appearance holds the presentation attributes of an organism.
type Appearance struct {
	Color RGB
}
