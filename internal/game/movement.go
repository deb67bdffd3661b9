package game

import (
	"math"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/grid"
	"github.com/vovakirdan/tilequest/internal/interactives"
)

// movePlayer applies one tick of walking, sliding and walkway drift.
//
// On ice the player slides in the direction it stepped on with and cannot
// steer until the slide is stopped by something in the way. Walking into an
// object leans on it.
func (s *State) movePlayer(dir grid.Direction, dt float64) {
	p := s.player
	if !p.onIce {
		p.slide = grid.DirNone
	}
	switch {
	case p.slide.Valid():
		if s.move(p.slide, s.cfg.Player.IceSpeed*dt) {
			p.slide = grid.DirNone
		}
	case dir.Valid():
		p.face(dir)
		if s.move(dir, s.cfg.Player.Speed*dt) {
			s.lean(dir)
		} else if p.onIce {
			p.slide = dir
		}
	}

	if p.walkway.Valid() {
		s.move(p.walkway, s.cfg.Player.WalkwaySpeed*dt)
	}
}

// lean pushes the occupant of the tile in front of the player.
func (s *State) lean(dir grid.Direction) {
	cells := s.level.Cells
	front := s.tile.Step(dir)
	if !cells.InBounds(front) {
		return
	}
	if cells.Cell(front).Interactive.Type == interactives.InteractiveNone {
		return
	}
	cells.Push(front, dir)
}

// move sweeps the player's hitbox dist world units in dir. The hitbox stops
// flush against the first tile it may not enter; tiles it already overlaps
// never block it. It reports whether the move was cut short.
func (s *State) move(dir grid.Direction, dist float64) bool {
	p := s.player
	from := p.Rect()
	dx, dy := dir.Delta()
	to := from.Translate(core.V(float64(dx)*dist, float64(dy)*dist))

	blocked := false
	s.eachTile(to, func(loc grid.TileLocation) {
		r := s.level.Tiles.TileRect(loc)
		if from.Intersects(r) || s.passable(loc, dir) {
			return
		}
		blocked = true
		switch dir {
		case grid.DirLeft:
			to.X = math.Max(to.X, r.Right())
		case grid.DirRight:
			to.X = math.Min(to.X, r.X-to.W)
		case grid.DirUp:
			to.Y = math.Max(to.Y, r.Bottom())
		case grid.DirDown:
			to.Y = math.Min(to.Y, r.Y-to.H)
		}
	})

	p.Pos = to.Center()
	s.retile(dir)
	return blocked
}

// passable reports whether the player may walk into loc moving in dir.
func (s *State) passable(loc grid.TileLocation, dir grid.Direction) bool {
	cells := s.level.Cells
	if !cells.InBounds(loc) || s.level.Tiles.TileSolid(loc) {
		return false
	}
	return cells.IsWalkable(loc, dir)
}

// eachTile calls fn for every tile r overlaps.
func (s *State) eachTile(r core.Rect, fn func(grid.TileLocation)) {
	const eps = 1e-9
	tiles := s.level.Tiles
	lo := tiles.VectorToLocation(core.V(r.X, r.Y))
	hi := tiles.VectorToLocation(core.V(r.Right()-eps, r.Bottom()-eps))
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			fn(grid.L(x, y))
		}
	}
}

// retile tracks the tile under the player's center, running the leave and
// enter reactions when it changes. dir is the direction the player moved in.
func (s *State) retile(dir grid.Direction) {
	loc := s.level.Tiles.VectorToLocation(s.player.Pos)
	if loc == s.tile {
		return
	}
	s.leaveTile()
	s.enterTile(loc, dir)
}

func (s *State) leaveTile() {
	if s.level.Cells.InBounds(s.tile) {
		s.level.Cells.CharacterLeave(s.tile, s.player)
	}
}

// enterTile runs the enter reactions of loc for a player moving in dir. A
// portal carries the player on to the tile past its destination, which is
// entered in turn.
func (s *State) enterTile(loc grid.TileLocation, dir grid.Direction) {
	p := s.player
	cells := s.level.Cells
	s.tile = loc
	if !cells.InBounds(loc) {
		return
	}
	p.teleport = false
	cells.CharacterEnter(loc, p, dir)
	if !p.teleport {
		return
	}
	p.teleport = false
	cells.CharacterLeave(loc, p)
	s.tile = s.level.Tiles.VectorToLocation(p.Pos)
	if cells.InBounds(s.tile) {
		cells.CharacterEnter(s.tile, p, dir)
		p.teleport = false
	}
}
