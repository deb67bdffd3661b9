package interactives

import "github.com/vovakirdan/tilequest/internal/grid"

// DefaultIceRadius is the neighborhood an elemental hit freezes or thaws.
const DefaultIceRadius = 1

// SpreadIce freezes (thaw=false) or thaws (thaw=true) every non-solid tile
// within radius of center. Freezing turns bare floor into ice and trips ice
// detectors; thawing turns ice back into floor and resets the detectors.
// Each detector that changes notifies its target.
func (g *Grid) SpreadIce(center grid.TileLocation, radius int, thaw bool) {
	g.square(center, radius, func(loc grid.TileLocation, c *Cell) {
		if g.mapSolid(loc) {
			return
		}
		u := &c.Underneath
		switch {
		case !thaw && u.Type == UnderneathNone:
			u.Set(UnderneathIce)
		case !thaw && u.Type == UnderneathIceDetector && !u.IceDetector.Detected:
			u.IceDetector.Detected = true
			g.notify(u.IceDetector.ActivateTarget)
		case thaw && u.Type == UnderneathIce:
			u.Set(UnderneathNone)
		case thaw && u.Type == UnderneathIceDetector && u.IceDetector.Detected:
			u.IceDetector.Detected = false
			u.IceDetector.ForceDir = grid.DirNone
			g.notify(u.IceDetector.ActivateTarget)
		}
	})
}
