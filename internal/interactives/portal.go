package interactives

import "github.com/vovakirdan/tilequest/internal/grid"

// MaxPortalHops caps how many chained portals one resolution follows.
const MaxPortalHops = 64

// PortalDestination resolves where something entering loc while moving in
// dir comes out. Each portal sends it to the tile one step past the
// portal's destination; resolution continues while that tile is itself a
// portal.
//
// When the chain would visit a tile a second time, resolution stops and the
// last tile reached before the repeat is returned, which is still a portal.
// ok is false when a portal has no destination or leads off the grid.
func (g *Grid) PortalDestination(loc grid.TileLocation, dir grid.Direction) (dest grid.TileLocation, ok bool) {
	visited := []grid.TileLocation{loc}
	cur := loc
	for hop := 0; hop < MaxPortalHops; hop++ {
		c := g.at(cur)
		if c.Interactive.Type != InteractivePortal {
			return cur, true
		}
		target := c.Interactive.Portal.Destination
		if !target.Valid() || !g.InBounds(target) {
			return cur, false
		}
		next := target.Step(dir)
		if !g.InBounds(next) {
			return cur, false
		}
		for _, v := range visited {
			if v == next {
				if g.logger != nil {
					g.logger.Debug("portal cycle", "start", loc, "stopped", cur, "direction", dir)
				}
				return cur, true
			}
		}
		visited = append(visited, next)
		cur = next
	}
	return cur, true
}
