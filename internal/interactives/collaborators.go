package interactives

import (
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/element"
	"github.com/vovakirdan/tilequest/internal/grid"
)

// Map is the tile and light grid the interactives sit on.
type Map interface {
	// TileSolid reports whether the map tile itself is a wall.
	TileSolid(loc grid.TileLocation) bool
	// Illuminate adds a light source of the given strength at loc.
	Illuminate(loc grid.TileLocation, value uint8)
	// Light returns the current light level at loc.
	Light(loc grid.TileLocation) uint8
	// LocationToVector returns the world position of the center of loc.
	LocationToVector(loc grid.TileLocation) core.Vec
}

// Character is a walking actor the grid reacts to.
type Character interface {
	SetOnIce(onIce bool)
	SetMovingWalkway(dir grid.Direction)
	Facing() grid.Direction
	// CenterOn moves the character so its center is at pos.
	CenterOn(pos core.Vec)
}

// Projectile is a flying actor the grid reacts to.
type Projectile interface {
	Facing() grid.Direction
	Element() element.Element
	SetElement(e element.Element)
	SetPosition(pos core.Vec)
}
