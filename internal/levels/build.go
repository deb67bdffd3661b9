package levels

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tilequest/internal/element"
	"github.com/vovakirdan/tilequest/internal/grid"
	"github.com/vovakirdan/tilequest/internal/interactives"
	"github.com/vovakirdan/tilequest/internal/levels/formats"
	"github.com/vovakirdan/tilequest/internal/mapfile"
	"github.com/vovakirdan/tilequest/internal/tilemap"
)

var (
	// ErrUnknownType is returned for a mechanism type no layer knows.
	ErrUnknownType = errors.New("levels: unknown mechanism type")
	// ErrUnknownMap is returned when an exit names a level that does not exist.
	ErrUnknownMap = errors.New("levels: unknown map")
)

// Tile glyphs of the rows section.
const (
	GlyphWall  = '#'
	GlyphFloor = '.'
)

// Tile IDs the builder assigns.
const (
	TileFloor uint8 = 0
	TileWall  uint8 = 1
)

// Resolver maps a level ID to its map index.
type Resolver func(id string) (int, bool)

// Build creates the tile map and interactives grid of the level. index is
// the level's own map index; resolve turns exit map IDs into map indices and
// may be nil when the level has no cross-map exits.
func (l *Level) Build(index int, tuning interactives.Tuning, resolve Resolver) (*mapfile.Level, error) {
	if l.Width*l.Height > interactives.MaxTiles {
		return nil, fmt.Errorf("levels: %s: %dx%d exceeds %d tiles", l.ID, l.Width, l.Height, interactives.MaxTiles)
	}

	tiles := tilemap.New(l.Width, l.Height, l.TileSize)
	tiles.SetBaseLight(uint8(l.BaseLight))
	if err := l.buildTiles(tiles); err != nil {
		return nil, err
	}

	cells := interactives.New(tuning)
	cells.Reset(l.Width, l.Height)
	cells.SetMap(tiles)

	b := builder{level: l, cells: cells, index: index, resolve: resolve}
	for i := range l.Interactives {
		if err := b.interactive(&l.Interactives[i]); err != nil {
			return nil, fmt.Errorf("levels: %s: interactive %d: %w", l.ID, i, err)
		}
	}
	for i := range l.Underneath {
		if err := b.underneath(&l.Underneath[i]); err != nil {
			return nil, fmt.Errorf("levels: %s: underneath %d: %w", l.ID, i, err)
		}
	}

	if !cells.InBounds(l.Spawn) || tiles.TileSolid(l.Spawn) {
		return nil, fmt.Errorf("levels: %s: spawn %v is not on a floor tile", l.ID, l.Spawn)
	}

	return &mapfile.Level{
		Index: index,
		Name:  l.Name,
		Spawn: l.Spawn,
		Tiles: tiles,
		Cells: cells,
	}, nil
}

func (l *Level) buildTiles(tiles *tilemap.Map) error {
	if len(l.Rows) == 0 {
		return nil
	}
	if len(l.Rows) != l.Height {
		return fmt.Errorf("levels: %s: %d rows for height %d", l.ID, len(l.Rows), l.Height)
	}
	for y, row := range l.Rows {
		if len(row) != l.Width {
			return fmt.Errorf("levels: %s: row %d is %d wide, want %d", l.ID, y, len(row), l.Width)
		}
		for x := 0; x < len(row); x++ {
			switch row[x] {
			case GlyphWall:
				tiles.SetTile(grid.L(x, y), tilemap.Tile{ID: TileWall, Solid: true})
			case GlyphFloor:
				tiles.SetTile(grid.L(x, y), tilemap.Tile{ID: TileFloor})
			default:
				return fmt.Errorf("levels: %s: row %d col %d: unexpected %q", l.ID, y, x, row[x])
			}
		}
	}
	return nil
}

type builder struct {
	level   *Level
	cells   *interactives.Grid
	index   int
	resolve Resolver
}

func point(p *formats.YAMLPoint) grid.TileLocation {
	if p == nil {
		return grid.NoLocation
	}
	return grid.L(p.X, p.Y)
}

// target reads an optional location on this map.
func (b *builder) target(p *formats.YAMLPoint, what string) (grid.TileLocation, error) {
	loc := point(p)
	if loc.Valid() && !b.cells.InBounds(loc) {
		return loc, fmt.Errorf("%s %v is outside the map", what, loc)
	}
	return loc, nil
}

func (b *builder) at(m *formats.YAMLMechanism) (grid.TileLocation, error) {
	loc := grid.L(m.At.X, m.At.Y)
	if !b.cells.InBounds(loc) {
		return loc, fmt.Errorf("%s at %v is outside the map", m.Type, loc)
	}
	return loc, nil
}

func facing(s string, fallback grid.Direction) (grid.Direction, error) {
	if s == "" {
		return fallback, nil
	}
	d, err := grid.ParseDirection(s)
	if err != nil {
		return fallback, err
	}
	if !d.Valid() {
		return fallback, fmt.Errorf("facing %q is not a direction", s)
	}
	return d, nil
}

func torch(t *interactives.Torch, m *formats.YAMLMechanism) error {
	e, err := element.Parse(m.Element)
	if err != nil {
		return err
	}
	t.Element = e
	if m.Light != nil {
		if *m.Light < 0 || *m.Light > 255 {
			return fmt.Errorf("light %d out of range", *m.Light)
		}
		t.LightValue = uint8(*m.Light)
	}
	return nil
}

func (b *builder) interactive(m *formats.YAMLMechanism) error {
	typ, err := interactives.ParseInteractiveType(m.Type)
	if err != nil || typ == interactives.InteractiveNone {
		return fmt.Errorf("%w: %q", ErrUnknownType, m.Type)
	}
	loc, err := b.at(m)
	if err != nil {
		return err
	}
	if b.cells.Cell(loc).Interactive.Type != interactives.InteractiveNone {
		return fmt.Errorf("%v already holds an interactive", loc)
	}

	i := b.cells.SetInteractive(loc, typ)
	switch typ {
	case interactives.InteractiveLever:
		i.Lever.ActivateTarget, err = b.target(m.Target, "target")
		return err
	case interactives.InteractivePushableBlock:
		i.PushableBlock.OneTime = m.OneTime
		i.PushableBlock.ActivateTarget, err = b.target(m.Target, "target")
		return err
	case interactives.InteractiveTorch:
		return torch(&i.Torch, m)
	case interactives.InteractivePushableTorch:
		i.PushableTorch.Block.OneTime = m.OneTime
		if i.PushableTorch.Block.ActivateTarget, err = b.target(m.Target, "target"); err != nil {
			return err
		}
		return torch(&i.PushableTorch.Torch, m)
	case interactives.InteractiveExit:
		return b.exit(&i.Exit, m)
	case interactives.InteractiveTurret:
		i.Turret.Automatic = m.Automatic
		i.Turret.Facing, err = facing(m.Facing, i.Turret.Facing)
		return err
	case interactives.InteractivePortal:
		i.Portal.Destination, err = b.target(m.Destination, "destination")
		return err
	}
	return nil
}

func (b *builder) exit(e *interactives.Exit, m *formats.YAMLMechanism) error {
	state, err := interactives.ParseExitState(m.State)
	if err != nil {
		return err
	}
	e.State = state
	if e.Facing, err = facing(m.Facing, e.Facing); err != nil {
		return err
	}
	e.Destination = point(m.Destination)
	e.MapIndex = b.index
	if m.Map == "" {
		e.Destination, err = b.target(m.Destination, "destination")
		return err
	}
	if b.resolve == nil {
		return fmt.Errorf("%w: %q", ErrUnknownMap, m.Map)
	}
	idx, ok := b.resolve(m.Map)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMap, m.Map)
	}
	e.MapIndex = idx
	if idx == b.index {
		e.Destination, err = b.target(m.Destination, "destination")
	}
	return err
}

func (b *builder) underneath(m *formats.YAMLMechanism) error {
	typ, err := interactives.ParseUnderneathType(m.Type)
	if err != nil || typ == interactives.UnderneathNone {
		return fmt.Errorf("%w: %q", ErrUnknownType, m.Type)
	}
	loc, err := b.at(m)
	if err != nil {
		return err
	}
	if b.cells.Cell(loc).Underneath.Type != interactives.UnderneathNone {
		return fmt.Errorf("%v already holds an underneath", loc)
	}

	u := b.cells.SetUnderneath(loc, typ)
	switch typ {
	case interactives.UnderneathPressurePlate:
		u.PressurePlate.ActivateTarget, err = b.target(m.Target, "target")
		return err
	case interactives.UnderneathPopupBlock:
		u.PopupBlock.Up = m.Up
	case interactives.UnderneathMovingWalkway:
		u.MovingWalkway.Facing, err = facing(m.Facing, u.MovingWalkway.Facing)
		return err
	case interactives.UnderneathLightDetector:
		switch m.Kind {
		case "", "bright":
			u.LightDetector.SetKind(interactives.LightBright)
		case "dark":
			u.LightDetector.SetKind(interactives.LightDark)
		default:
			return fmt.Errorf("unknown light detector kind %q", m.Kind)
		}
		u.LightDetector.ActivateTarget, err = b.target(m.Target, "target")
		return err
	case interactives.UnderneathIceDetector:
		u.IceDetector.ActivateTarget, err = b.target(m.Target, "target")
		return err
	}
	return nil
}
