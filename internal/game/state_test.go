package game

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/element"
	"github.com/vovakirdan/tilequest/internal/grid"
	"github.com/vovakirdan/tilequest/internal/interactives"
	"github.com/vovakirdan/tilequest/internal/mapfile"
	"github.com/vovakirdan/tilequest/internal/tilemap"
)

const dt = 1.0 / 60

// buildLevel makes a fully lit level from rows of '#' walls and '.' floor,
// with its spawn at (0,0).
func buildLevel(tuning interactives.Tuning, index int, rows ...string) *mapfile.Level {
	h, w := len(rows), len(rows[0])
	tiles := tilemap.New(w, h, tilemap.DefaultTileSize)
	tiles.SetBaseLight(255)
	for y, row := range rows {
		for x, ch := range row {
			if ch == '#' {
				tiles.SetTile(grid.L(x, y), tilemap.Tile{ID: 1, Solid: true})
			}
		}
	}
	cells := interactives.New(tuning)
	cells.Reset(w, h)
	cells.SetMap(tiles)
	return &mapfile.Level{
		Index: index,
		Name:  fmt.Sprintf("map%d", index),
		Spawn: grid.L(0, 0),
		Tiles: tiles,
		Cells: cells,
	}
}

func newLevel(index int, rows ...string) *mapfile.Level {
	return buildLevel(interactives.DefaultTuning(), index, rows...)
}

func newState(t *testing.T, cfg config.EngineConfig, levels ...*mapfile.Level) *State {
	t.Helper()
	st, err := New(levels, 0, cfg, nil)
	require.NoError(t, err)
	return st
}

// run advances st n ticks with the given actions held.
func run(st *State, n int, actions ...core.Action) {
	for i := 0; i < n; i++ {
		in := core.NewInputFrame()
		for _, a := range actions {
			in.Set(a)
		}
		st.Update(in, dt)
	}
}

func TestNewErrors(t *testing.T) {
	cfg := config.DefaultEngineConfig()
	_, err := New(nil, 0, cfg, nil)
	assert.ErrorIs(t, err, ErrNoLevels)

	_, err = New([]*mapfile.Level{newLevel(0, "..")}, 1, cfg, nil)
	assert.Error(t, err)
}

func TestNewPlacesPlayerOnSpawn(t *testing.T) {
	lv := newLevel(0, "...", "...")
	lv.Spawn = grid.L(2, 1)
	st := newState(t, config.DefaultEngineConfig(), lv)

	assert.Equal(t, grid.L(2, 1), st.PlayerTile())
	assert.Equal(t, lv.Tiles.LocationToVector(grid.L(2, 1)), st.Player().Pos)
	assert.Equal(t, uint8(config.DefaultEngineConfig().World.LightFalloff), lv.Tiles.Falloff)
	assert.Equal(t, "map0", st.Status())
}

func TestWallStopsPlayerFlush(t *testing.T) {
	st := newState(t, config.DefaultEngineConfig(), newLevel(0, "..#"))

	run(st, 60, core.ActionMoveRight)
	assert.Equal(t, grid.L(1, 0), st.PlayerTile())
	assert.InDelta(t, 26.0, st.Player().Pos.X, 1e-9)
	assert.Equal(t, grid.DirRight, st.Player().Facing())
}

func TestPlayerStaysOnMap(t *testing.T) {
	st := newState(t, config.DefaultEngineConfig(), newLevel(0, ".."))

	run(st, 30, core.ActionMoveLeft)
	assert.InDelta(t, 6.0, st.Player().Pos.X, 1e-9)
	assert.Equal(t, grid.L(0, 0), st.PlayerTile())
}

func TestActivateLeverInFront(t *testing.T) {
	lv := newLevel(0, "...")
	lever := lv.Cells.SetInteractive(grid.L(1, 0), interactives.InteractiveLever)
	lever.Lever.ActivateTarget = grid.L(2, 0)
	lv.Cells.SetUnderneath(grid.L(2, 0), interactives.UnderneathPopupBlock)
	st := newState(t, config.DefaultEngineConfig(), lv)

	run(st, 1, core.ActionMoveRight)
	run(st, 1, core.ActionActivate)
	run(st, 60)

	c := lv.Cells.Cell(grid.L(1, 0))
	assert.Equal(t, interactives.LeverOn, c.Interactive.Lever.State)
	assert.True(t, lv.Cells.Cell(grid.L(2, 0)).Underneath.PopupBlock.Up)
}

func TestWalkingIntoBlockPushesIt(t *testing.T) {
	lv := newLevel(0, "....")
	lv.Cells.SetInteractive(grid.L(1, 0), interactives.InteractivePushableBlock)
	st := newState(t, config.DefaultEngineConfig(), lv)

	run(st, 30, core.ActionMoveRight)
	assert.Equal(t, interactives.InteractiveNone, lv.Cells.Cell(grid.L(1, 0)).Interactive.Type)
	assert.Equal(t, interactives.InteractivePushableBlock, lv.Cells.Cell(grid.L(2, 0)).Interactive.Type)
}

func TestIceKeepsPlayerSliding(t *testing.T) {
	lv := newLevel(0, ".....")
	for x := 1; x <= 3; x++ {
		lv.Cells.SetUnderneath(grid.L(x, 0), interactives.UnderneathIce)
	}
	st := newState(t, config.DefaultEngineConfig(), lv)

	run(st, 10, core.ActionMoveRight)
	require.True(t, st.Player().OnIce())

	run(st, 120)
	assert.Equal(t, grid.L(4, 0), st.PlayerTile())
	assert.False(t, st.Player().OnIce())
}

func TestWalkwayCarriesPlayer(t *testing.T) {
	lv := newLevel(0, "...")
	w := lv.Cells.SetUnderneath(grid.L(1, 0), interactives.UnderneathMovingWalkway)
	w.MovingWalkway.Facing = grid.DirRight
	st := newState(t, config.DefaultEngineConfig(), lv)

	for i := 0; i < 30 && st.PlayerTile() != grid.L(1, 0); i++ {
		run(st, 1, core.ActionMoveRight)
	}
	require.Equal(t, grid.DirRight, st.Player().Walkway())

	run(st, 60)
	assert.Equal(t, grid.L(2, 0), st.PlayerTile())
	assert.Equal(t, grid.DirNone, st.Player().Walkway())
}

func TestPortalTeleportsPlayer(t *testing.T) {
	lv := newLevel(0, "......")
	portal := lv.Cells.SetInteractive(grid.L(1, 0), interactives.InteractivePortal)
	portal.Portal.Destination = grid.L(3, 0)
	st := newState(t, config.DefaultEngineConfig(), lv)

	for i := 0; i < 20 && st.PlayerTile() == grid.L(0, 0); i++ {
		run(st, 1, core.ActionMoveRight)
	}
	assert.Equal(t, grid.L(4, 0), st.PlayerTile())
	assert.Equal(t, lv.Tiles.LocationToVector(grid.L(4, 0)), st.Player().Pos)
}

func TestPortalUsesDirectionOfTravel(t *testing.T) {
	lv := newLevel(0, "......", "......", "...#..")
	lv.Spawn = grid.L(0, 1)
	w := lv.Cells.SetUnderneath(grid.L(0, 1), interactives.UnderneathMovingWalkway)
	w.MovingWalkway.Facing = grid.DirRight
	portal := lv.Cells.SetInteractive(grid.L(1, 1), interactives.InteractivePortal)
	portal.Portal.Destination = grid.L(3, 1)
	st := newState(t, config.DefaultEngineConfig(), lv)

	// Carried right while looking down.
	st.Player().face(grid.DirDown)
	for i := 0; i < 30; i++ {
		run(st, 1)
		at := st.PlayerTile()
		require.NotEqual(t, grid.L(3, 2), at, "tick %d", i)
		require.False(t, lv.Tiles.TileSolid(at), "tick %d: player on solid %v", i, at)
	}
	assert.Equal(t, 1, st.PlayerTile().Y)
}

func TestProjectileLeavingPortalStopsAtWall(t *testing.T) {
	lv := newLevel(0, "....#...")
	portal := lv.Cells.SetInteractive(grid.L(1, 0), interactives.InteractivePortal)
	portal.Portal.Destination = grid.L(3, 0)
	st := newState(t, config.DefaultEngineConfig(), lv)

	st.Player().face(grid.DirRight)
	run(st, 1, core.ActionFire)
	require.Len(t, st.Projectiles(), 1)

	for i := 0; i < 60; i++ {
		run(st, 1)
		for _, pr := range st.Projectiles() {
			if pr.Dead() {
				continue
			}
			require.False(t, lv.Tiles.TileSolid(pr.Tile()), "tick %d: projectile inside wall at %v", i, pr.Tile())
			require.Less(t, pr.Tile().X, 4, "tick %d", i)
		}
	}
	assert.Empty(t, st.Projectiles())
}

func TestOpenExitTravels(t *testing.T) {
	first := newLevel(0, "..")
	out := first.Cells.SetInteractive(grid.L(1, 0), interactives.InteractiveExit)
	out.Exit.State = interactives.ExitOpen
	out.Exit.MapIndex = 1
	out.Exit.Destination = grid.L(0, 0)

	second := newLevel(1, "..")
	back := second.Cells.SetInteractive(grid.L(0, 0), interactives.InteractiveExit)
	back.Exit.State = interactives.ExitOpen
	back.Exit.MapIndex = 0
	back.Exit.Destination = grid.L(0, 0)

	st := newState(t, config.DefaultEngineConfig(), first, second)

	run(st, 10, core.ActionMoveRight)
	require.Equal(t, 1, st.LevelIndex())
	assert.Same(t, second, st.Level())

	// Arriving on an exit does not take it.
	run(st, 20)
	assert.Equal(t, 1, st.LevelIndex())
	assert.Equal(t, grid.L(0, 0), st.PlayerTile())

	run(st, 12, core.ActionMoveRight)
	require.Equal(t, grid.L(1, 0), st.PlayerTile())
	for i := 0; i < 30 && st.LevelIndex() == 1; i++ {
		run(st, 1, core.ActionMoveLeft)
	}
	assert.Equal(t, 0, st.LevelIndex())
}

func TestClosedExitBlocks(t *testing.T) {
	lv := newLevel(0, "..")
	exit := lv.Cells.SetInteractive(grid.L(1, 0), interactives.InteractiveExit)
	exit.Exit.MapIndex = 1
	st := newState(t, config.DefaultEngineConfig(), lv)

	run(st, 30, core.ActionMoveRight)
	assert.Equal(t, grid.L(0, 0), st.PlayerTile())
	assert.Equal(t, 0, st.LevelIndex())
}

func TestExitToMissingMapIsIgnored(t *testing.T) {
	lv := newLevel(0, "...")
	exit := lv.Cells.SetInteractive(grid.L(1, 0), interactives.InteractiveExit)
	exit.Exit.State = interactives.ExitOpen
	exit.Exit.MapIndex = 7
	st := newState(t, config.DefaultEngineConfig(), lv)

	run(st, 12, core.ActionMoveRight)
	assert.Equal(t, 0, st.LevelIndex())
	assert.Equal(t, grid.L(1, 0), st.PlayerTile())
}

func turretLevel(health int) (*mapfile.Level, config.EngineConfig) {
	tuning := interactives.DefaultTuning()
	tuning.TurretPeriod = 0.1
	lv := buildLevel(tuning, 0, ".....")
	turret := lv.Cells.SetInteractive(grid.L(0, 0), interactives.InteractiveTurret)
	turret.Turret.Automatic = true
	turret.Turret.Facing = grid.DirRight
	lv.Spawn = grid.L(3, 0)

	cfg := config.DefaultEngineConfig()
	cfg.Player.Health = health
	return lv, cfg
}

func TestTurretBoltHurtsPlayer(t *testing.T) {
	lv, cfg := turretLevel(2)
	st := newState(t, cfg, lv)

	run(st, 40)
	assert.Equal(t, 1, st.Player().Health)
	assert.True(t, st.Player().Hurt())
}

func TestPlayerRespawnsWhenKilled(t *testing.T) {
	lv, cfg := turretLevel(1)
	st := newState(t, cfg, lv)

	run(st, 40)
	assert.Equal(t, "You died", st.Status())
	assert.Equal(t, 1, st.Player().Health)
	assert.Equal(t, grid.L(3, 0), st.PlayerTile())
}

func TestIceArrowFreezesWhereItLands(t *testing.T) {
	st := newState(t, config.DefaultEngineConfig(), newLevel(0, "....#"))
	lv := st.Level()

	run(st, 1, core.ActionMoveRight)
	st.Player().Element = element.Ice
	run(st, 1, core.ActionFire)
	require.Len(t, st.Projectiles(), 1)

	run(st, 30)
	assert.Empty(t, st.Projectiles())
	assert.Equal(t, interactives.UnderneathNone, lv.Cells.Cell(grid.L(1, 0)).Underneath.Type)
	assert.Equal(t, interactives.UnderneathIce, lv.Cells.Cell(grid.L(2, 0)).Underneath.Type)
	assert.Equal(t, interactives.UnderneathIce, lv.Cells.Cell(grid.L(3, 0)).Underneath.Type)
}

func TestFireArrowLightsTorchAndThaws(t *testing.T) {
	lv := newLevel(0, "....#")
	for x := 2; x <= 3; x++ {
		lv.Cells.SetUnderneath(grid.L(x, 0), interactives.UnderneathIce)
	}
	torch := lv.Cells.SetInteractive(grid.L(1, 0), interactives.InteractiveTorch)
	torch.Torch.Element = element.Fire
	st := newState(t, config.DefaultEngineConfig(), lv)

	// A plain arrow picks up fire from the torch.
	st.Player().face(grid.DirRight)
	run(st, 1, core.ActionFire)
	run(st, 30)

	assert.Equal(t, interactives.UnderneathNone, lv.Cells.Cell(grid.L(2, 0)).Underneath.Type)
	assert.Equal(t, interactives.UnderneathNone, lv.Cells.Cell(grid.L(3, 0)).Underneath.Type)
}

func TestBombBreaksBombableBlock(t *testing.T) {
	lv := newLevel(0, "......")
	lv.Cells.SetInteractive(grid.L(5, 0), interactives.InteractiveBombableBlock)
	lv.Cells.SetInteractive(grid.L(3, 0), interactives.InteractiveBombableBlock)
	st := newState(t, config.DefaultEngineConfig(), lv)

	run(st, 1, core.ActionMoveRight)
	run(st, 1, core.ActionBomb)
	assert.Equal(t, 2, st.Player().Bombs)

	// The bomb goes off over the first block it reaches.
	run(st, 30)
	assert.Empty(t, st.Projectiles())
	assert.Equal(t, interactives.InteractiveNone, lv.Cells.Cell(grid.L(3, 0)).Interactive.Type)
	assert.Equal(t, interactives.InteractiveBombableBlock, lv.Cells.Cell(grid.L(5, 0)).Interactive.Type)
}

func TestNoBombsLeft(t *testing.T) {
	cfg := config.DefaultEngineConfig()
	cfg.Player.Bombs = 0
	st := newState(t, cfg, newLevel(0, "...."))

	run(st, 1, core.ActionBomb)
	assert.Empty(t, st.Projectiles())
}

func TestFireCooldown(t *testing.T) {
	st := newState(t, config.DefaultEngineConfig(), newLevel(0, "................"))

	run(st, 1, core.ActionMoveRight)
	run(st, 5, core.ActionFire)
	assert.Len(t, st.Projectiles(), 1)

	run(st, 15, core.ActionFire)
	assert.Len(t, st.Projectiles(), 2)
}

func TestTorchLightsDetector(t *testing.T) {
	lv := newLevel(0, "....")
	lv.Tiles.SetBaseLight(0)
	torch := lv.Cells.SetInteractive(grid.L(0, 0), interactives.InteractiveTorch)
	torch.Torch.Element = element.Fire
	det := lv.Cells.SetUnderneath(grid.L(1, 0), interactives.UnderneathLightDetector)
	det.LightDetector.ActivateTarget = grid.L(3, 0)
	lv.Cells.SetUnderneath(grid.L(3, 0), interactives.UnderneathPopupBlock)
	lv.Spawn = grid.L(2, 0)
	st := newState(t, config.DefaultEngineConfig(), lv)

	assert.False(t, lv.Cells.Cell(grid.L(3, 0)).Underneath.PopupBlock.Up)
	run(st, 1)
	assert.Equal(t, uint8(223), lv.Tiles.Light(grid.L(1, 0)))
	assert.True(t, lv.Cells.Cell(grid.L(3, 0)).Underneath.PopupBlock.Up)
}

func TestCycleElement(t *testing.T) {
	st := newState(t, config.DefaultEngineConfig(), newLevel(0, ".."))

	want := []element.Element{element.Fire, element.Ice, element.None}
	for _, e := range want {
		run(st, 1, core.ActionCycleElement)
		assert.Equal(t, e, st.Player().Element)
	}
	assert.Equal(t, "Element: none", st.Status())
}

func TestPauseFreezesSimulation(t *testing.T) {
	st := newState(t, config.DefaultEngineConfig(), newLevel(0, "...."))
	start := st.Player().Pos

	run(st, 1, core.ActionPause)
	require.True(t, st.Paused())
	run(st, 30, core.ActionMoveRight)
	assert.Equal(t, start, st.Player().Pos)
	assert.Zero(t, st.Ticks())

	run(st, 1, core.ActionPause)
	assert.False(t, st.Paused())
	assert.Equal(t, uint64(1), st.Ticks())
}

func TestRender(t *testing.T) {
	lv := newLevel(0, "..#")
	lv.Cells.SetInteractive(grid.L(1, 0), interactives.InteractiveLever)
	st := newState(t, config.DefaultEngineConfig(), lv)

	screen := core.NewScreen(40, 3)
	st.Render(screen)

	assert.Equal(t, '@', screen.GetCell(0, 0).Rune)
	assert.Equal(t, '/', screen.GetCell(2, 0).Rune)
	assert.Equal(t, '█', screen.GetCell(4, 0).Rune)
	assert.Equal(t, '█', screen.GetCell(5, 0).Rune)

	lines := strings.Split(screen.String(), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[2], "map0  HP 3  Bombs 3  none"), lines[2])
}

func TestRenderDimsDarkTiles(t *testing.T) {
	lv := newLevel(0, "...")
	lv.Cells.SetInteractive(grid.L(2, 0), interactives.InteractiveLever)
	st := newState(t, config.DefaultEngineConfig(), lv)

	screen := core.NewScreen(6, 2)
	st.Render(screen)
	assert.Equal(t, core.ColorYellow, screen.GetCell(4, 0).Color)

	lv.Tiles.SetBaseLight(0)
	lv.Tiles.BeginLighting()
	st.Render(screen)
	assert.Equal(t, core.ColorDarkGray, screen.GetCell(4, 0).Color)
}

func TestViewOrigin(t *testing.T) {
	tests := []struct {
		focus, view, total, want int
	}{
		{focus: 0, view: 10, total: 5, want: 0},
		{focus: 2, view: 4, total: 20, want: 0},
		{focus: 10, view: 4, total: 20, want: 8},
		{focus: 19, view: 4, total: 20, want: 16},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, viewOrigin(tt.focus, tt.view, tt.total), "%+v", tt)
	}
}
