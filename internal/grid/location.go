// Package grid provides the tile coordinate model shared by the map, the
// interactives layer and the game state.
package grid

import "fmt"

// TileLocation identifies one cell of a tile grid.
// X increases to the right, Y increases downward (screen coordinates).
type TileLocation struct {
	X int
	Y int
}

// NoLocation marks an absent optional tile reference.
var NoLocation = TileLocation{X: -1, Y: -1}

// L is a convenience constructor for TileLocation.
func L(x, y int) TileLocation {
	return TileLocation{X: x, Y: y}
}

// String returns a string representation of the location.
func (l TileLocation) String() string {
	return fmt.Sprintf("(%d,%d)", l.X, l.Y)
}

// Valid reports whether l is a real reference rather than NoLocation.
func (l TileLocation) Valid() bool {
	return l != NoLocation
}

// Add returns a new location offset by (dx, dy).
func (l TileLocation) Add(dx, dy int) TileLocation {
	return TileLocation{X: l.X + dx, Y: l.Y + dy}
}

// Step returns the location one tile away in the given direction.
// Stepping in DirNone returns l unchanged.
func (l TileLocation) Step(d Direction) TileLocation {
	dx, dy := d.Delta()
	return l.Add(dx, dy)
}

// Chebyshev returns the king-move distance to another location.
func (l TileLocation) Chebyshev(other TileLocation) int {
	dx := l.X - other.X
	dy := l.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
