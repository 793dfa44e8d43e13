package components

import "fmt"

// Location is a grid coordinate. Locations are compared and hashed by
// value, so they can be used directly as map keys.
type Location struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NewLocation returns the location at (row, col).
func NewLocation(row, col int) Location {
	return Location{Row: row, Col: col}
}

// String renders the location as (row,col).
func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.Row, l.Col)
}

// Offset returns the location shifted by the given deltas.
func (l Location) Offset(dRow, dCol int) Location {
	return Location{Row: l.Row + dRow, Col: l.Col + dCol}
}
