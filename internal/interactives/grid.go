// Package interactives implements the tile mechanisms of a map: levers,
// pushable blocks, torches, doors, turrets and portals in the foreground
// layer, and plates, ice, walkways, detectors, holes and breakables in the
// background layer, plus the grid that runs the protocols between tiles.
//
// The grid is driven from a single goroutine, one Update per frame. All
// cross-tile effects run synchronously inside the call that caused them.
package interactives

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilequest/internal/grid"
)

// MaxTiles bounds width×height of a grid.
const MaxTiles = 256 * 256

// Grid owns the cells of one loaded map. Cells are stored in row-major
// order: index = y*width + x.
type Grid struct {
	width  int
	height int
	cells  []Cell
	tuning Tuning
	level  Map
	logger *log.Logger

	slideClock float64
}

// New creates an empty grid with the given tuning.
func New(t Tuning) *Grid {
	return &Grid{tuning: t}
}

// SetLogger attaches a logger for debug diagnostics. A nil logger disables them.
func (g *Grid) SetLogger(l *log.Logger) {
	g.logger = l
}

// SetMap binds the tile map used for solidity and light. Without a map no
// tile is solid.
func (g *Grid) SetMap(m Map) {
	g.level = m
}

// Map returns the bound tile map, or nil.
func (g *Grid) Map() Map {
	return g.level
}

// Tuning returns the mechanism timings in use.
func (g *Grid) Tuning() Tuning {
	return g.tuning
}

// Reset reinitializes every cell to an empty foreground and background.
// It is called whenever a new map is loaded.
func (g *Grid) Reset(width, height int) {
	if width < 0 || height < 0 || width*height > MaxTiles {
		panic(fmt.Sprintf("interactives: invalid grid size %dx%d", width, height))
	}
	n := width * height
	if cap(g.cells) < n {
		g.cells = make([]Cell, n)
	} else {
		g.cells = g.cells[:n]
		clear(g.cells)
	}
	g.width = width
	g.height = height
	g.slideClock = 0
}

// Width returns the grid width in tiles.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the grid height in tiles.
func (g *Grid) Height() int {
	return g.height
}

// InBounds returns true if the location is within the grid.
func (g *Grid) InBounds(loc grid.TileLocation) bool {
	return loc.X >= 0 && loc.X < g.width && loc.Y >= 0 && loc.Y < g.height
}

// index converts a location to a cell index. Out-of-bounds locations are a
// caller bug and panic.
func (g *Grid) index(loc grid.TileLocation) int {
	if !g.InBounds(loc) {
		panic(fmt.Sprintf("interactives: location %v outside %dx%d grid", loc, g.width, g.height))
	}
	return loc.Y*g.width + loc.X
}

func (g *Grid) location(i int) grid.TileLocation {
	return grid.L(i%g.width, i/g.width)
}

func (g *Grid) at(loc grid.TileLocation) *Cell {
	return &g.cells[g.index(loc)]
}

// Cell returns a copy of the cell at loc.
func (g *Grid) Cell(loc grid.TileLocation) Cell {
	return *g.at(loc)
}

// SetInteractive retags the foreground of loc and returns it so an editor or
// loader can fill in the payload.
func (g *Grid) SetInteractive(loc grid.TileLocation, t InteractiveType) *Interactive {
	i := &g.at(loc).Interactive
	i.Set(t)
	return i
}

// SetUnderneath retags the background of loc and returns it so an editor or
// loader can fill in the payload.
func (g *Grid) SetUnderneath(loc grid.TileLocation, t UnderneathType) *Underneath {
	u := &g.at(loc).Underneath
	u.Set(t)
	return u
}

// RemoveInteractive clears the foreground of loc.
func (g *Grid) RemoveInteractive(loc grid.TileLocation) {
	g.at(loc).Interactive.Set(InteractiveNone)
}

// RemoveUnderneath clears the background of loc.
func (g *Grid) RemoveUnderneath(loc grid.TileLocation) {
	g.at(loc).Underneath.Set(UnderneathNone)
}

func (g *Grid) mapSolid(loc grid.TileLocation) bool {
	return g.level != nil && g.level.TileSolid(loc)
}

// notify activates a remote target named by a mechanism. Invalid targets
// are ignored; whatever occupies a valid target receives the activation.
func (g *Grid) notify(target grid.TileLocation) {
	if !target.Valid() {
		return
	}
	g.Activate(target)
}

// Activate activates the occupant of loc. On an empty foreground the
// activation reaches popup blocks and moving walkways underneath. It reports
// whether anything consumed the activation.
func (g *Grid) Activate(loc grid.TileLocation) bool {
	return g.at(loc).Activate(g.tuning)
}

// LockExit starts locking the door at loc.
func (g *Grid) LockExit(loc grid.TileLocation) bool {
	c := g.at(loc)
	if c.Interactive.Type != InteractiveExit {
		return false
	}
	return c.Interactive.Exit.Lock(g.tuning.ExitTransition)
}

// IsWalkable reports whether a character moving in dir may enter loc.
// Portals are judged by the tile they lead to.
func (g *Grid) IsWalkable(loc grid.TileLocation, dir grid.Direction) bool {
	c := g.at(loc)
	if c.Interactive.Type == InteractivePortal {
		dest, ok := g.portalExit(loc, dir)
		if !ok || g.mapSolid(dest) {
			return false
		}
		return g.IsWalkable(dest, dir)
	}
	return c.Walkable()
}

// IsFlyable reports whether a projectile may pass over loc.
func (g *Grid) IsFlyable(loc grid.TileLocation) bool {
	return g.at(loc).Flyable()
}

// CharacterEnter applies the reactions of loc to a character stepping on it
// while moving in dir. A portal teleports the character to the center of the
// tile one step past its destination in dir, provided that tile can be walked
// onto. DirNone falls back to the character's facing.
func (g *Grid) CharacterEnter(loc grid.TileLocation, ch Character, dir grid.Direction) {
	c := g.at(loc)
	g.notify(c.CharacterEnter(ch))
	if c.Interactive.Type != InteractivePortal || g.level == nil {
		return
	}
	if !dir.Valid() {
		dir = ch.Facing()
	}
	dest, ok := g.portalExit(loc, dir)
	if !ok || g.mapSolid(dest) || !g.at(dest).Walkable() {
		return
	}
	ch.CenterOn(g.level.LocationToVector(dest))
}

// portalExit resolves the portal at loc to the tile something comes out on.
// ok is false when the chain ends on a portal or leads nowhere.
func (g *Grid) portalExit(loc grid.TileLocation, dir grid.Direction) (grid.TileLocation, bool) {
	dest, ok := g.PortalDestination(loc, dir)
	if !ok || g.at(dest).Interactive.Type == InteractivePortal {
		return dest, false
	}
	return dest, true
}

// CharacterLeave undoes the reactions of loc for a character stepping off.
func (g *Grid) CharacterLeave(loc grid.TileLocation, ch Character) {
	g.notify(g.at(loc).CharacterLeave(ch))
}

// ProjectileEnter reacts to a projectile flying over loc: levers flip,
// torches trade elements with the projectile, portals carry it through.
// A portal whose exit is solid or unflyable lets the projectile pass over.
func (g *Grid) ProjectileEnter(loc grid.TileLocation, p Projectile) {
	c := g.at(loc)
	switch c.Interactive.Type {
	case InteractiveLever:
		g.Activate(loc)
	case InteractiveTorch, InteractivePushableTorch:
		carried := p.Element()
		c.Interactive.TorchPart().Strike(&carried)
		p.SetElement(carried)
	case InteractivePortal:
		if g.level == nil {
			return
		}
		dest, ok := g.portalExit(loc, p.Facing())
		if !ok || g.mapSolid(dest) || !g.IsFlyable(dest) {
			return
		}
		p.SetPosition(g.level.LocationToVector(dest))
	}
}

// Attack strikes loc in melee: a lever is pulled and a destructible breaks.
func (g *Grid) Attack(loc grid.TileLocation) bool {
	c := g.at(loc)
	hit := false
	if c.Interactive.Type == InteractiveLever {
		hit = g.Activate(loc)
	}
	if c.Attack() {
		hit = true
	}
	return hit
}

// Explode blasts every tile within radius (Chebyshev) of center. It returns
// the number of tiles where something was destroyed.
func (g *Grid) Explode(center grid.TileLocation, radius int) int {
	destroyed := 0
	g.square(center, radius, func(loc grid.TileLocation, c *Cell) {
		if c.Explode() {
			destroyed++
		}
	})
	return destroyed
}

// square calls fn for every in-bounds tile within radius of center.
func (g *Grid) square(center grid.TileLocation, radius int, fn func(grid.TileLocation, *Cell)) {
	for y := center.Y - radius; y <= center.Y+radius; y++ {
		for x := center.X - radius; x <= center.X+radius; x++ {
			loc := grid.L(x, y)
			if !g.InBounds(loc) {
				continue
			}
			fn(loc, g.at(loc))
		}
	}
}

// TurretShot is a turret that fired this tick.
type TurretShot struct {
	Location grid.TileLocation
	Facing   grid.Direction
}

// TakeTurretShots returns every turret that wants to shoot and clears their
// signal for the next tick.
func (g *Grid) TakeTurretShots() []TurretShot {
	var shots []TurretShot
	for i := range g.cells {
		c := &g.cells[i]
		if c.Interactive.Type != InteractiveTurret {
			continue
		}
		if c.Interactive.Turret.TakeShot() {
			shots = append(shots, TurretShot{Location: g.location(i), Facing: c.Interactive.Turret.Facing})
		}
	}
	return shots
}

type slide struct {
	from grid.TileLocation
	dir  grid.Direction
}

// Update advances every mechanism by dt seconds: lever flips complete and
// notify their targets, lean timers run out, doors finish moving, automatic
// turrets arm, and objects on ice slide one tile every IceSlideDelay.
//
// Targets fired this tick are activated after every mechanism has advanced,
// so a mechanism started by another one first runs on the next tick whatever
// the tile order.
func (g *Grid) Update(dt float64) {
	var fired []grid.TileLocation
	for i := range g.cells {
		if target := g.cells[i].Interactive.update(dt, g.tuning); target.Valid() {
			fired = append(fired, target)
		}
	}
	for _, target := range fired {
		g.notify(target)
	}

	g.slideClock += dt
	if g.slideClock < g.tuning.IceSlideDelay {
		return
	}
	g.slideClock = 0

	// Collect first so an object never slides twice in one pass.
	var slides []slide
	for i := range g.cells {
		c := &g.cells[i]
		if d := c.Underneath.Force(); d != grid.DirNone && c.Interactive.Slidable() {
			slides = append(slides, slide{from: g.location(i), dir: d})
		}
	}
	for _, s := range slides {
		c := g.at(s.from)
		if c.Underneath.Force() == s.dir && c.Interactive.Slidable() {
			g.relocate(s.from, s.dir)
		}
	}
}
