package game

import (
	"fmt"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/element"
	"github.com/vovakirdan/tilequest/internal/grid"
	"github.com/vovakirdan/tilequest/internal/interactives"
)

// CellWidth is the number of screen columns one tile takes.
const CellWidth = 2

// ShadowLevel is the light level below which tiles are drawn dimmed.
const ShadowLevel uint8 = 64

// Glyph is the two-column picture of a tile.
type Glyph struct {
	Left, Right rune
	Color       core.Color
}

func g2(r rune, c core.Color) Glyph { return Glyph{Left: r, Right: r, Color: c} }
func g1(r rune, c core.Color) Glyph { return Glyph{Left: r, Right: ' ', Color: c} }

func dirRune(d grid.Direction) rune {
	switch d {
	case grid.DirLeft:
		return '◄'
	case grid.DirUp:
		return '▲'
	case grid.DirRight:
		return '►'
	case grid.DirDown:
		return '▼'
	default:
		return '·'
	}
}

func elementColor(e element.Element) core.Color {
	switch e {
	case element.Fire:
		return core.ColorOrange
	case element.Ice:
		return core.ColorBrightCyan
	default:
		return core.ColorWhite
	}
}

var (
	glyphFloor = g1('·', core.ColorDarkGray)
	glyphWall  = g2('█', core.ColorGray)
)

// TileGlyph returns the picture of a tile: the foreground mechanism if there
// is one, else the underneath, else the bare tile.
func TileGlyph(c interactives.Cell, solid bool) Glyph {
	in := &c.Interactive
	switch in.Type {
	case interactives.InteractiveLever:
		switch in.Lever.State {
		case interactives.LeverOn:
			return g1('\\', core.ColorYellow)
		case interactives.LeverOff:
			return g1('/', core.ColorYellow)
		default:
			return g1('|', core.ColorYellow)
		}
	case interactives.InteractivePushableBlock:
		if in.PushableBlock.State == interactives.BlockSolid {
			return g2('▓', core.ColorGray)
		}
		return Glyph{Left: '[', Right: ']', Color: core.ColorYellow}
	case interactives.InteractiveTorch:
		return g1('¥', elementColor(in.Torch.Element))
	case interactives.InteractivePushableTorch:
		return Glyph{Left: '[', Right: '¥', Color: elementColor(in.PushableTorch.Torch.Element)}
	case interactives.InteractiveExit:
		switch {
		case in.Exit.Open():
			return g2('▯', core.ColorGreen)
		case in.Exit.State == interactives.ExitLocked:
			return g2('▮', core.ColorRed)
		default:
			return g2('▮', core.ColorYellow)
		}
	case interactives.InteractiveBombableBlock:
		return g2('▒', core.ColorOrange)
	case interactives.InteractiveTurret:
		return g1(dirRune(in.Turret.Facing), core.ColorRed)
	case interactives.InteractivePortal:
		return g1('◎', core.ColorMagenta)
	}

	u := &c.Underneath
	switch u.Type {
	case interactives.UnderneathPressurePlate:
		if u.PressurePlate.Entered {
			return g1('▁', core.ColorGreen)
		}
		return g1('▁', core.ColorWhite)
	case interactives.UnderneathPopupBlock:
		if u.PopupBlock.Up {
			return g2('▀', core.ColorBlue)
		}
		return g1('▫', core.ColorBlue)
	case interactives.UnderneathIce:
		return g2('░', core.ColorCyan)
	case interactives.UnderneathMovingWalkway:
		r := dirRune(u.MovingWalkway.Facing)
		return Glyph{Left: r, Right: r, Color: core.ColorBlue}
	case interactives.UnderneathLightDetector:
		if u.LightDetector.Kind == interactives.LightDark {
			return g1('◍', core.ColorMagenta)
		}
		return g1('◌', core.ColorBrightYellow)
	case interactives.UnderneathIceDetector:
		if u.IceDetector.Detected {
			return g2('◆', core.ColorCyan)
		}
		return g1('◇', core.ColorCyan)
	case interactives.UnderneathHole:
		if u.Hole.Filled {
			return g1('▪', core.ColorDarkGray)
		}
		return g2(' ', core.ColorDefault)
	case interactives.UnderneathDestructible:
		if !u.Destructible.Destroyed {
			return g2('%', core.ColorOrange)
		}
	}

	if solid {
		return glyphWall
	}
	return glyphFloor
}

// Render draws the visible part of the map centered on the player, then the
// projectiles, the player and a one-line HUD at the bottom.
func (s *State) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Height() < 2 || dst.Width() < CellWidth {
		return
	}

	tiles, cells := s.level.Tiles, s.level.Cells
	viewW, viewH := dst.Width()/CellWidth, dst.Height()-1
	camX := viewOrigin(s.tile.X, viewW, tiles.W)
	camY := viewOrigin(s.tile.Y, viewH, tiles.H)

	for y := 0; y < viewH && camY+y < tiles.H; y++ {
		for x := 0; x < viewW && camX+x < tiles.W; x++ {
			loc := grid.L(camX+x, camY+y)
			gl := TileGlyph(cells.Cell(loc), tiles.TileSolid(loc))
			if tiles.Light(loc) < ShadowLevel {
				gl.Color = core.ColorDarkGray
			}
			dst.Set(x*CellWidth, y, gl.Left, gl.Color)
			dst.Set(x*CellWidth+1, y, gl.Right, gl.Color)
		}
	}

	for _, pr := range s.shots {
		loc := tiles.VectorToLocation(pr.Pos)
		r, c := projectileRune(pr)
		dst.Set((loc.X-camX)*CellWidth+1, loc.Y-camY, r, c)
	}

	p := s.player
	color := core.ColorBrightYellow
	if p.Hurt() {
		color = core.ColorRed
	}
	dst.Set((s.tile.X-camX)*CellWidth, s.tile.Y-camY, '@', color)

	s.renderHUD(dst)
}

func (s *State) renderHUD(dst *core.Screen) {
	p := s.player
	hud := fmt.Sprintf("%s  HP %d  Bombs %d  %s", s.level.Name, p.Health, p.Bombs, p.Element)
	if s.paused {
		hud += "  [paused]"
	} else if s.status != "" {
		hud += "  " + s.status
	}
	dst.DrawText(0, dst.Height()-1, hud, elementColor(p.Element))
}

func projectileRune(pr *Projectile) (rune, core.Color) {
	switch pr.Kind {
	case KindBomb:
		return '*', core.ColorOrange
	case KindBolt:
		return '•', core.ColorRed
	}
	if pr.facing == grid.DirUp || pr.facing == grid.DirDown {
		return '|', elementColor(pr.element)
	}
	return '-', elementColor(pr.element)
}

// viewOrigin returns the first tile of a view of size view centered on focus
// and clamped to a map of size total.
func viewOrigin(focus, view, total int) int {
	if total <= view {
		return 0
	}
	return core.Clamp(focus-view/2, 0, total-view)
}
