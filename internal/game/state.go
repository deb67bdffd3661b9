// Package game runs a play session on top of the interactives grid: the
// player, projectiles, turret fire, lighting and travel between maps.
package game

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/element"
	"github.com/vovakirdan/tilequest/internal/grid"
	"github.com/vovakirdan/tilequest/internal/interactives"
	"github.com/vovakirdan/tilequest/internal/mapfile"
)

const (
	hurtSeconds   = 1.0 // Invulnerability after a turret hit
	statusSeconds = 2.0 // How long a status message stays on the HUD
)

// ErrNoLevels is returned when a session is started without maps.
var ErrNoLevels = errors.New("game: no levels")

// State is one play session over a campaign of maps.
type State struct {
	cfg    config.EngineConfig
	logger *log.Logger

	levels []*mapfile.Level
	index  int
	level  *mapfile.Level

	player  *Player
	tile    grid.TileLocation // Tile under the player's center
	arrived grid.TileLocation // Exit the player arrived on; ignored until left
	shots   []*Projectile

	paused bool
	ticks  uint64
	status string
	shown  core.Timer
}

// New starts a session on levels[start]. A nil logger discards output.
func New(levels []*mapfile.Level, start int, cfg config.EngineConfig, logger *log.Logger) (*State, error) {
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	if start < 0 || start >= len(levels) {
		return nil, fmt.Errorf("game: start map %d out of range [0,%d)", start, len(levels))
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &State{
		cfg:     cfg,
		logger:  logger,
		levels:  levels,
		tile:    grid.NoLocation,
		arrived: grid.NoLocation,
	}
	for _, lv := range levels {
		s.adopt(lv)
	}
	s.player = NewPlayer(core.Vec{}, cfg.Player.Size, cfg.Player.Health, cfg.Player.Bombs)
	s.enterLevel(start, grid.NoLocation)
	return s, nil
}

// adopt applies the session's lighting and logging to a level.
func (s *State) adopt(lv *mapfile.Level) {
	lv.Tiles.Falloff = uint8(s.cfg.World.LightFalloff)
	lv.Cells.SetLogger(s.logger)
}

// Level returns the map the player is on.
func (s *State) Level() *mapfile.Level { return s.level }

// LevelIndex returns the campaign index of the current map.
func (s *State) LevelIndex() int { return s.index }

// LevelCount returns the number of maps in the session.
func (s *State) LevelCount() int { return len(s.levels) }

// Player returns the player.
func (s *State) Player() *Player { return s.player }

// PlayerTile returns the tile under the player's center.
func (s *State) PlayerTile() grid.TileLocation { return s.tile }

// Projectiles returns the projectiles in flight.
func (s *State) Projectiles() []*Projectile { return s.shots }

// Paused reports whether the simulation is paused.
func (s *State) Paused() bool { return s.paused }

// Ticks returns the number of simulated ticks.
func (s *State) Ticks() uint64 { return s.ticks }

// Status returns the current HUD message, if any.
func (s *State) Status() string { return s.status }

// SetStatus shows msg on the HUD for a few seconds.
func (s *State) SetStatus(msg string) {
	s.status = msg
	s.shown.Start(statusSeconds)
}

// Update advances the session by dt seconds. Each tick runs in a fixed order:
// movement and pushing, the player's actions, projectiles, the mechanisms,
// turret fire, the lighting pass and finally travel through an open exit.
func (s *State) Update(in core.InputFrame, dt float64) {
	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if s.shown.Tick(dt) {
		s.status = ""
	}
	if s.paused {
		return
	}
	s.ticks++

	s.player.hurt.Tick(dt)
	s.player.reload.Tick(dt)

	s.movePlayer(in.Move(), dt)
	s.handleActions(in)
	s.updateProjectiles(dt)
	s.level.Cells.Update(dt)
	s.fireTurrets()
	s.light()
	s.checkExit()
}

func (s *State) handleActions(in core.InputFrame) {
	p := s.player
	cells := s.level.Cells
	front := s.tile.Step(p.facing)

	if in.Has(core.ActionActivate) && cells.InBounds(front) {
		cells.Activate(front)
	}
	if in.Has(core.ActionAttack) && cells.InBounds(front) {
		cells.Attack(front)
	}
	if in.Has(core.ActionCycleElement) {
		p.CycleElement()
		s.SetStatus("Element: " + p.Element.String())
	}
	if p.reload.Running() {
		return
	}
	switch {
	case in.Has(core.ActionFire):
		s.launch(KindArrow, p.Pos, p.facing, p.Element, s.tile)
		p.reload.Start(s.cfg.Projectiles.Cooldown)
	case in.Has(core.ActionBomb) && p.Bombs > 0:
		p.Bombs--
		s.launch(KindBomb, p.Pos, p.facing, element.None, s.tile)
		p.reload.Start(s.cfg.Projectiles.Cooldown)
	}
}

func (s *State) launch(kind Kind, pos core.Vec, dir grid.Direction, e element.Element, from grid.TileLocation) {
	pr := &Projectile{
		Kind:    kind,
		Pos:     pos,
		Size:    s.cfg.Projectiles.Size,
		facing:  dir,
		element: e,
		tile:    from,
	}
	pr.Life.Start(s.cfg.Projectiles.Lifetime)
	s.shots = append(s.shots, pr)
}

func (s *State) updateProjectiles(dt float64) {
	live := s.shots[:0]
	for _, pr := range s.shots {
		s.fly(pr, dt)
		if !pr.dead {
			live = append(live, pr)
		}
	}
	for i := len(live); i < len(s.shots); i++ {
		s.shots[i] = nil
	}
	s.shots = live

	if s.player.Health <= 0 {
		s.respawn()
	}
}

// fly moves a projectile and reacts to every new tile it reaches. A
// projectile lands on the last tile it flew over; a bomb also goes off over
// a bombable block.
func (s *State) fly(pr *Projectile, dt float64) {
	if pr.Life.Tick(dt) {
		s.land(pr)
		return
	}

	tiles := s.level.Tiles
	dx, dy := pr.facing.Delta()
	pr.Pos = pr.Pos.Add(core.V(float64(dx), float64(dy)).Scale(s.cfg.Projectiles.Speed * dt))

	if loc := tiles.VectorToLocation(pr.Pos); loc != pr.tile {
		if !s.enterProjectile(pr, loc) {
			return
		}
		// A portal put it on a new tile, which it enters in turn.
		if pr.moved && !s.enterProjectile(pr, tiles.VectorToLocation(pr.Pos)) {
			return
		}
	}

	if pr.Kind == KindBolt && !s.player.Hurt() && pr.Rect().Intersects(s.player.Rect()) {
		pr.dead = true
		s.hurtPlayer()
	}
}

// enterProjectile moves pr onto loc and runs the tile's reactions. It lands
// pr and reports false when loc stops it.
func (s *State) enterProjectile(pr *Projectile, loc grid.TileLocation) bool {
	tiles, cells := s.level.Tiles, s.level.Cells
	if !cells.InBounds(loc) || tiles.TileSolid(loc) || !cells.IsFlyable(loc) {
		s.land(pr)
		return false
	}
	pr.tile = loc
	if pr.Kind == KindBomb && cells.Cell(loc).Interactive.Type == interactives.InteractiveBombableBlock {
		s.land(pr)
		return false
	}
	pr.moved = false
	cells.ProjectileEnter(loc, pr)
	return true
}

func (s *State) land(pr *Projectile) {
	pr.dead = true
	cells := s.level.Cells
	switch pr.Kind {
	case KindArrow:
		switch pr.element {
		case element.Fire:
			cells.SpreadIce(pr.tile, s.cfg.World.IceRadius, true)
		case element.Ice:
			cells.SpreadIce(pr.tile, s.cfg.World.IceRadius, false)
		}
	case KindBomb:
		n := cells.Explode(pr.tile, s.cfg.World.BombRadius)
		s.logger.Debug("bomb exploded", "at", pr.tile, "destroyed", n)
	}
}

func (s *State) hurtPlayer() {
	p := s.player
	p.Health--
	p.hurt.Start(hurtSeconds)
	s.logger.Debug("player hit", "health", p.Health)
}

// respawn restores the player on the current map's spawn tile.
func (s *State) respawn() {
	p := s.player
	p.Health = s.cfg.Player.Health
	p.Bombs = s.cfg.Player.Bombs
	p.hurt.Stop()
	s.logger.Info("player died", "map", s.index)
	s.enterLevel(s.index, grid.NoLocation)
	s.SetStatus("You died")
}

func (s *State) fireTurrets() {
	for _, shot := range s.level.Cells.TakeTurretShots() {
		pos := s.level.Tiles.LocationToVector(shot.Location)
		s.launch(KindBolt, pos, shot.Facing, element.None, shot.Location)
	}
}

// light runs the lighting pass: base light, torches, then the detectors.
func (s *State) light() {
	s.level.Tiles.BeginLighting()
	s.level.Cells.ContributeLight()
	s.level.Cells.SampleLight()
}

func (s *State) checkExit() {
	if s.tile != s.arrived {
		s.arrived = grid.NoLocation
	}
	cells := s.level.Cells
	if !cells.InBounds(s.tile) || s.tile == s.arrived {
		return
	}
	c := cells.Cell(s.tile)
	if c.Interactive.Type != interactives.InteractiveExit || !c.Interactive.Exit.Open() {
		return
	}
	exit := c.Interactive.Exit
	if exit.MapIndex < 0 || exit.MapIndex >= len(s.levels) {
		s.logger.Warn("exit leads nowhere", "at", s.tile, "map", exit.MapIndex)
		s.arrived = s.tile
		return
	}
	s.enterLevel(exit.MapIndex, exit.Destination)
}

// enterLevel moves the player to map index at tile at, or to the map's spawn
// when at is not a tile of that map.
func (s *State) enterLevel(index int, at grid.TileLocation) {
	if s.level != nil {
		s.leaveTile()
	}
	s.index = index
	s.level = s.levels[index]
	for i := range s.shots {
		s.shots[i] = nil
	}
	s.shots = s.shots[:0]

	if !s.level.Cells.InBounds(at) {
		at = s.level.Spawn
	}
	s.player.resetFloor()
	s.player.Pos = s.level.Tiles.LocationToVector(at)
	s.enterTile(at, grid.DirNone)
	s.arrived = s.tile

	// Light the map for the first frame; detectors sample on the next tick.
	s.level.Tiles.BeginLighting()
	s.level.Cells.ContributeLight()

	s.logger.Info("entered map", "index", index, "name", s.level.Name, "at", s.tile)
	s.SetStatus(s.level.Name)
}
