package interactives

import (
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/element"
	"github.com/vovakirdan/tilequest/internal/grid"
)

const testTileSize = 16

type fakeMap struct {
	solid       map[grid.TileLocation]bool
	light       map[grid.TileLocation]uint8
	illuminated map[grid.TileLocation]uint8
}

func newFakeMap() *fakeMap {
	return &fakeMap{
		solid:       make(map[grid.TileLocation]bool),
		light:       make(map[grid.TileLocation]uint8),
		illuminated: make(map[grid.TileLocation]uint8),
	}
}

func (m *fakeMap) TileSolid(loc grid.TileLocation) bool { return m.solid[loc] }

func (m *fakeMap) Illuminate(loc grid.TileLocation, value uint8) { m.illuminated[loc] = value }

func (m *fakeMap) Light(loc grid.TileLocation) uint8 { return m.light[loc] }

func (m *fakeMap) LocationToVector(loc grid.TileLocation) core.Vec {
	return core.V(float64(loc.X*testTileSize+testTileSize/2), float64(loc.Y*testTileSize+testTileSize/2))
}

type fakeCharacter struct {
	onIce    bool
	walkway  grid.Direction
	facing   grid.Direction
	centered *core.Vec
}

func newFakeCharacter(facing grid.Direction) *fakeCharacter {
	return &fakeCharacter{walkway: grid.DirNone, facing: facing}
}

func (c *fakeCharacter) SetOnIce(onIce bool) { c.onIce = onIce }
func (c *fakeCharacter) SetMovingWalkway(d grid.Direction) { c.walkway = d }
func (c *fakeCharacter) Facing() grid.Direction { return c.facing }
func (c *fakeCharacter) CenterOn(pos core.Vec) { c.centered = &pos }

type fakeProjectile struct {
	facing   grid.Direction
	element  element.Element
	position *core.Vec
}

func (p *fakeProjectile) Facing() grid.Direction { return p.facing }
func (p *fakeProjectile) Element() element.Element { return p.element }
func (p *fakeProjectile) SetElement(e element.Element) { p.element = e }
func (p *fakeProjectile) SetPosition(pos core.Vec) { p.position = &pos }

// newTestGrid returns a w×h grid bound to an empty fake map.
func newTestGrid(w, h int) (*Grid, *fakeMap) {
	g := New(DefaultTuning())
	g.Reset(w, h)
	m := newFakeMap()
	g.SetMap(m)
	return g, m
}
