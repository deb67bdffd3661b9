package game

import (
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/element"
	"github.com/vovakirdan/tilequest/internal/grid"
)

// Player is the character the user controls. It implements
// interactives.Character.
type Player struct {
	Pos     core.Vec // Center of the hitbox in world units
	Size    float64
	Element element.Element // Element of the next arrow
	Health  int
	Bombs   int

	facing  grid.Direction
	onIce   bool
	slide   grid.Direction // Direction the player keeps sliding in on ice
	walkway grid.Direction

	hurt     core.Timer // Invulnerability after a hit
	reload   core.Timer
	teleport bool // Set by CenterOn until the game picks it up
}

// NewPlayer creates a player centered on pos, facing down.
func NewPlayer(pos core.Vec, size float64, health, bombs int) *Player {
	return &Player{
		Pos:     pos,
		Size:    size,
		Health:  health,
		Bombs:   bombs,
		facing:  grid.DirDown,
		slide:   grid.DirNone,
		walkway: grid.DirNone,
	}
}

// SetOnIce marks whether the player stands on ice.
func (p *Player) SetOnIce(onIce bool) {
	p.onIce = onIce
}

// SetMovingWalkway sets the direction the floor carries the player in, or
// DirNone.
func (p *Player) SetMovingWalkway(dir grid.Direction) {
	p.walkway = dir
}

// Facing returns the direction the player looks in.
func (p *Player) Facing() grid.Direction {
	return p.facing
}

// CenterOn moves the player's center to pos.
func (p *Player) CenterOn(pos core.Vec) {
	p.Pos = pos
	p.teleport = true
}

// OnIce reports whether the player stands on ice.
func (p *Player) OnIce() bool {
	return p.onIce
}

// Walkway returns the direction the floor carries the player in.
func (p *Player) Walkway() grid.Direction {
	return p.walkway
}

// Rect returns the player's hitbox.
func (p *Player) Rect() core.Rect {
	return core.RectAround(p.Pos, p.Size, p.Size)
}

// Hurt reports whether the player is still invulnerable from a hit.
func (p *Player) Hurt() bool {
	return p.hurt.Running()
}

// CycleElement switches the arrow element: none, fire, ice, none.
func (p *Player) CycleElement() {
	switch p.Element {
	case element.None:
		p.Element = element.Fire
	case element.Fire:
		p.Element = element.Ice
	default:
		p.Element = element.None
	}
}

func (p *Player) face(dir grid.Direction) {
	if dir.Valid() {
		p.facing = dir
	}
}

func (p *Player) resetFloor() {
	p.onIce = false
	p.slide = grid.DirNone
	p.walkway = grid.DirNone
}
