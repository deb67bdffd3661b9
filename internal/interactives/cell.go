package interactives

import "github.com/vovakirdan/tilequest/internal/grid"

// Cell is one tile of the interactives grid: a foreground mechanism standing
// on a background one.
//
// The methods below react within the tile only. Any remote tile the reaction
// should activate is returned for the grid to notify, or grid.NoLocation.
type Cell struct {
	Interactive Interactive
	Underneath  Underneath
}

// Walkable reports whether the tile's own layers let a character through.
func (c *Cell) Walkable() bool {
	return !c.Interactive.BlocksWalking() && !c.Underneath.BlocksWalking()
}

// Flyable reports whether the tile's own layers let a projectile through.
func (c *Cell) Flyable() bool {
	return !c.Interactive.BlocksFlying() && !c.Underneath.BlocksFlying()
}

// Activate routes an activation to the occupant, or through an empty
// interactive layer to the underneath.
func (c *Cell) Activate(t Tuning) bool {
	if c.Interactive.Type == InteractiveNone {
		return c.Underneath.activate()
	}
	return c.Interactive.activate(t)
}

// Push leans on the occupant in dir.
func (c *Cell) Push(dir grid.Direction, t Tuning) (grid.Direction, grid.TileLocation) {
	return c.Interactive.push(dir, t)
}

// CharacterEnter applies the underneath reactions to a character stepping on.
func (c *Cell) CharacterEnter(ch Character) grid.TileLocation {
	u := &c.Underneath
	switch u.Type {
	case UnderneathPressurePlate:
		return u.PressurePlate.enter()
	case UnderneathIce:
		ch.SetOnIce(true)
	case UnderneathIceDetector:
		if u.IceDetector.Detected {
			ch.SetOnIce(true)
		}
	case UnderneathMovingWalkway:
		ch.SetMovingWalkway(u.MovingWalkway.Facing)
	}
	return grid.NoLocation
}

// CharacterLeave undoes the underneath reactions for a character stepping off.
func (c *Cell) CharacterLeave(ch Character) grid.TileLocation {
	u := &c.Underneath
	switch u.Type {
	case UnderneathPressurePlate:
		return u.PressurePlate.leave()
	case UnderneathIce, UnderneathIceDetector:
		ch.SetOnIce(false)
	case UnderneathMovingWalkway:
		ch.SetMovingWalkway(grid.DirNone)
	}
	return grid.NoLocation
}

// InteractiveEnter reacts to a pushed object arriving from direction dir.
func (c *Cell) InteractiveEnter(dir grid.Direction) grid.TileLocation {
	u := &c.Underneath
	switch u.Type {
	case UnderneathPressurePlate:
		return u.PressurePlate.enter()
	case UnderneathIce, UnderneathIceDetector:
		u.setForce(dir)
	case UnderneathHole:
		if !u.Hole.Filled {
			u.Hole.Filled = true
			c.Interactive.Set(InteractiveNone)
		}
	}
	return grid.NoLocation
}

// InteractiveLeave reacts to a pushed object moving off the tile.
func (c *Cell) InteractiveLeave() grid.TileLocation {
	u := &c.Underneath
	switch u.Type {
	case UnderneathPressurePlate:
		return u.PressurePlate.leave()
	case UnderneathIce, UnderneathIceDetector:
		u.clearForce()
	}
	return grid.NoLocation
}

// Light feeds a light sample to a light detector underneath.
func (c *Cell) Light(value uint8, t Tuning) grid.TileLocation {
	if c.Underneath.Type != UnderneathLightDetector {
		return grid.NoLocation
	}
	if c.Underneath.LightDetector.Sample(value, t) {
		return c.Underneath.LightDetector.ActivateTarget
	}
	return grid.NoLocation
}

// Attack breaks an intact destructible underneath. It reports whether
// anything was destroyed.
func (c *Cell) Attack() bool {
	u := &c.Underneath
	if u.Type == UnderneathDestructible && !u.Destructible.Destroyed {
		u.Destructible.Destroyed = true
		return true
	}
	return false
}

// Explode removes a bombable block and breaks a destructible underneath.
// It reports whether anything was destroyed.
func (c *Cell) Explode() bool {
	destroyed := false
	if c.Interactive.Type == InteractiveBombableBlock {
		c.Interactive.Set(InteractiveNone)
		destroyed = true
	}
	if c.Attack() {
		destroyed = true
	}
	return destroyed
}
