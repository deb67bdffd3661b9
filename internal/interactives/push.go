package interactives

import "github.com/vovakirdan/tilequest/internal/grid"

// Push leans on the occupant of loc in direction dir. Pushing a portal pushes
// whatever stands past its destination. It reports whether an object moved
// to another tile.
func (g *Grid) Push(loc grid.TileLocation, dir grid.Direction) bool {
	if !dir.Valid() {
		return false
	}
	if g.at(loc).Interactive.Type == InteractivePortal {
		dest, ok := g.PortalDestination(loc, dir)
		if !ok || g.at(dest).Interactive.Type == InteractivePortal {
			return false
		}
		loc = dest
	}

	moved, target := g.at(loc).Push(dir, g.tuning)
	g.notify(target)
	if moved == grid.DirNone {
		return false
	}
	return g.relocate(loc, moved)
}

// blocksObject reports whether a pushed object may not enter loc. An empty
// hole takes the object even though nobody can walk there.
func (g *Grid) blocksObject(loc grid.TileLocation, dir grid.Direction) bool {
	if g.mapSolid(loc) {
		return true
	}
	c := g.at(loc)
	if c.Interactive.Type == InteractiveNone && c.Underneath.EmptyHole() {
		return false
	}
	return !g.IsWalkable(loc, dir)
}

// relocate moves the foreground of src one tile in dir, following a portal
// on the way. The destination keeps its own underneath. When the move is
// blocked, ice under src stops forcing.
func (g *Grid) relocate(src grid.TileLocation, dir grid.Direction) bool {
	dst := src.Step(dir)
	if !g.InBounds(dst) || g.blocksObject(dst, dir) {
		g.at(src).Underneath.clearForce()
		return false
	}
	if g.at(dst).Interactive.Type == InteractivePortal {
		exit, ok := g.PortalDestination(dst, dir)
		if !ok || g.at(exit).Interactive.Type == InteractivePortal || g.blocksObject(exit, dir) {
			g.at(src).Underneath.clearForce()
			return false
		}
		dst = exit
	}

	from := g.at(src)
	to := g.at(dst)
	to.Interactive = from.Interactive
	from.Interactive.Set(InteractiveNone)

	g.notify(from.InteractiveLeave())
	g.notify(to.InteractiveEnter(dir))
	return true
}
