package game

import (
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/element"
	"github.com/vovakirdan/tilequest/internal/grid"
)

// Kind is what a projectile does when it lands.
type Kind uint8

const (
	KindArrow Kind = iota // Carries an element; fire thaws and ice freezes where it lands
	KindBomb              // Explodes where it lands or when its lifetime runs out
	KindBolt              // Turret shot; hurts the player
)

func (k Kind) String() string {
	switch k {
	case KindArrow:
		return "arrow"
	case KindBomb:
		return "bomb"
	case KindBolt:
		return "bolt"
	default:
		return "unknown"
	}
}

// Projectile is a flying object. It implements interactives.Projectile.
type Projectile struct {
	Kind Kind
	Pos  core.Vec
	Size float64
	Life core.Timer

	facing  grid.Direction
	element element.Element
	tile    grid.TileLocation // Tile the projectile was last seen over
	moved   bool              // Set by SetPosition until the game picks it up
	dead    bool
}

// Facing returns the direction of flight.
func (p *Projectile) Facing() grid.Direction {
	return p.facing
}

// Element returns the element the projectile carries.
func (p *Projectile) Element() element.Element {
	return p.element
}

// SetElement changes the carried element.
func (p *Projectile) SetElement(e element.Element) {
	p.element = e
}

// SetPosition moves the projectile to pos.
func (p *Projectile) SetPosition(pos core.Vec) {
	p.Pos = pos
	p.moved = true
}

// Rect returns the projectile's hitbox.
func (p *Projectile) Rect() core.Rect {
	return core.RectAround(p.Pos, p.Size, p.Size)
}

// Tile returns the tile the projectile is flying over.
func (p *Projectile) Tile() grid.TileLocation {
	return p.tile
}

// Dead reports whether the projectile has landed.
func (p *Projectile) Dead() bool {
	return p.dead
}
