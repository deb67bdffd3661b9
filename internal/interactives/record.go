package interactives

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/vovakirdan/tilequest/internal/element"
	"github.com/vovakirdan/tilequest/internal/grid"
)

// ErrCorruptCell is returned when a cell record holds an unknown tag.
var ErrCorruptCell = errors.New("interactives: corrupt cell record")

// cellRecord is the fixed-size on-disk layout of one cell. Field order and
// widths are part of the map file format.
type cellRecord struct {
	Interactive uint8
	Underneath  uint8
	State       uint8 // lever, block or exit state
	Flags       uint8 // see flag* constants
	Element     uint8
	LightValue  uint8
	Facing      uint8
	_           uint8
	Timer       float32
	TargetX     int32 // activate target, exit destination or portal destination
	TargetY     int32
	MapIndex    int32

	UnderFlags   uint8 // the payload's boolean
	UnderDir     uint8 // force or walkway direction
	UnderKind    uint8
	_            uint8
	UnderTargetX int32
	UnderTargetY int32
}

const (
	flagOneTime uint8 = 1 << iota
	flagAutomatic
	flagWantsToShoot
)

// CellRecordSize is the encoded size of one cell in bytes.
var CellRecordSize = binary.Size(cellRecord{})

func putLocation(x, y *int32, loc grid.TileLocation) {
	*x = int32(loc.X)
	*y = int32(loc.Y)
}

func toRecord(c *Cell) cellRecord {
	r := cellRecord{
		Interactive: uint8(c.Interactive.Type),
		Underneath:  uint8(c.Underneath.Type),
	}
	putLocation(&r.TargetX, &r.TargetY, grid.NoLocation)
	putLocation(&r.UnderTargetX, &r.UnderTargetY, grid.NoLocation)

	putBlock := func(b *PushableBlock) {
		r.State = uint8(b.State)
		r.Timer = float32(b.Cooldown.Remaining)
		if b.OneTime {
			r.Flags |= flagOneTime
		}
		putLocation(&r.TargetX, &r.TargetY, b.ActivateTarget)
	}

	i := &c.Interactive
	switch i.Type {
	case InteractiveLever:
		r.State = uint8(i.Lever.State)
		r.Timer = float32(i.Lever.Cooldown.Remaining)
		putLocation(&r.TargetX, &r.TargetY, i.Lever.ActivateTarget)
	case InteractivePushableBlock:
		putBlock(&i.PushableBlock)
	case InteractiveTorch:
		r.Element = uint8(i.Torch.Element)
		r.LightValue = i.Torch.LightValue
	case InteractivePushableTorch:
		putBlock(&i.PushableTorch.Block)
		r.Element = uint8(i.PushableTorch.Torch.Element)
		r.LightValue = i.PushableTorch.Torch.LightValue
	case InteractiveExit:
		r.State = uint8(i.Exit.State)
		r.Timer = float32(i.Exit.Cooldown.Remaining)
		r.Facing = uint8(i.Exit.Facing)
		r.MapIndex = int32(i.Exit.MapIndex)
		putLocation(&r.TargetX, &r.TargetY, i.Exit.Destination)
	case InteractiveTurret:
		r.Facing = uint8(i.Turret.Facing)
		r.Timer = float32(i.Turret.Cooldown.Remaining)
		if i.Turret.Automatic {
			r.Flags |= flagAutomatic
		}
		if i.Turret.WantsToShoot {
			r.Flags |= flagWantsToShoot
		}
	case InteractivePortal:
		putLocation(&r.TargetX, &r.TargetY, i.Portal.Destination)
	}

	u := &c.Underneath
	r.UnderDir = uint8(grid.DirNone)
	switch u.Type {
	case UnderneathPressurePlate:
		r.UnderFlags = boolByte(u.PressurePlate.Entered)
		putLocation(&r.UnderTargetX, &r.UnderTargetY, u.PressurePlate.ActivateTarget)
	case UnderneathPopupBlock:
		r.UnderFlags = boolByte(u.PopupBlock.Up)
	case UnderneathIce:
		r.UnderDir = uint8(u.Ice.ForceDir)
	case UnderneathMovingWalkway:
		r.UnderDir = uint8(u.MovingWalkway.Facing)
	case UnderneathLightDetector:
		r.UnderKind = uint8(u.LightDetector.Kind)
		r.UnderFlags = boolByte(u.LightDetector.BelowThreshold)
		putLocation(&r.UnderTargetX, &r.UnderTargetY, u.LightDetector.ActivateTarget)
	case UnderneathIceDetector:
		r.UnderFlags = boolByte(u.IceDetector.Detected)
		r.UnderDir = uint8(u.IceDetector.ForceDir)
		putLocation(&r.UnderTargetX, &r.UnderTargetY, u.IceDetector.ActivateTarget)
	case UnderneathHole:
		r.UnderFlags = boolByte(u.Hole.Filled)
	case UnderneathDestructible:
		r.UnderFlags = boolByte(u.Destructible.Destroyed)
	}
	return r
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func (r *cellRecord) target() grid.TileLocation {
	return grid.L(int(r.TargetX), int(r.TargetY))
}

func (r *cellRecord) underTarget() grid.TileLocation {
	return grid.L(int(r.UnderTargetX), int(r.UnderTargetY))
}

func fromRecord(r *cellRecord, c *Cell) error {
	if r.Interactive >= uint8(interactiveTypeCount) || r.Underneath >= uint8(underneathTypeCount) {
		return fmt.Errorf("%w: tags %d/%d", ErrCorruptCell, r.Interactive, r.Underneath)
	}
	if r.Facing > uint8(grid.DirNone) || r.UnderDir > uint8(grid.DirNone) {
		return fmt.Errorf("%w: direction %d/%d", ErrCorruptCell, r.Facing, r.UnderDir)
	}

	if err := r.checkRanges(); err != nil {
		return err
	}

	getBlock := func(b *PushableBlock) {
		b.State = BlockState(r.State)
		b.Cooldown.Remaining = float64(r.Timer)
		b.OneTime = r.Flags&flagOneTime != 0
		b.ActivateTarget = r.target()
	}

	i := &c.Interactive
	i.Set(InteractiveType(r.Interactive))
	switch i.Type {
	case InteractiveLever:
		i.Lever.State = LeverState(r.State)
		i.Lever.Cooldown.Remaining = float64(r.Timer)
		i.Lever.ActivateTarget = r.target()
	case InteractivePushableBlock:
		getBlock(&i.PushableBlock)
	case InteractiveTorch:
		i.Torch.Element = element.Element(r.Element)
		i.Torch.LightValue = r.LightValue
	case InteractivePushableTorch:
		getBlock(&i.PushableTorch.Block)
		i.PushableTorch.Torch.Element = element.Element(r.Element)
		i.PushableTorch.Torch.LightValue = r.LightValue
	case InteractiveExit:
		i.Exit.State = ExitState(r.State)
		i.Exit.Cooldown.Remaining = float64(r.Timer)
		i.Exit.Facing = grid.Direction(r.Facing)
		i.Exit.MapIndex = int(r.MapIndex)
		i.Exit.Destination = r.target()
	case InteractiveTurret:
		i.Turret.Facing = grid.Direction(r.Facing)
		i.Turret.Cooldown.Remaining = float64(r.Timer)
		i.Turret.Automatic = r.Flags&flagAutomatic != 0
		i.Turret.WantsToShoot = r.Flags&flagWantsToShoot != 0
	case InteractivePortal:
		i.Portal.Destination = r.target()
	}

	u := &c.Underneath
	u.Set(UnderneathType(r.Underneath))
	on := r.UnderFlags != 0
	switch u.Type {
	case UnderneathPressurePlate:
		u.PressurePlate.Entered = on
		u.PressurePlate.ActivateTarget = r.underTarget()
	case UnderneathPopupBlock:
		u.PopupBlock.Up = on
	case UnderneathIce:
		u.Ice.ForceDir = grid.Direction(r.UnderDir)
	case UnderneathMovingWalkway:
		u.MovingWalkway.Facing = grid.Direction(r.UnderDir)
	case UnderneathLightDetector:
		u.LightDetector.Kind = LightKind(r.UnderKind)
		u.LightDetector.BelowThreshold = on
		u.LightDetector.ActivateTarget = r.underTarget()
	case UnderneathIceDetector:
		u.IceDetector.Detected = on
		u.IceDetector.ForceDir = grid.Direction(r.UnderDir)
		u.IceDetector.ActivateTarget = r.underTarget()
	case UnderneathHole:
		u.Hole.Filled = on
	case UnderneathDestructible:
		u.Destructible.Destroyed = on
	}
	return nil
}

// checkRanges rejects state, element and kind bytes the tagged payloads
// cannot hold.
func (r *cellRecord) checkRanges() error {
	switch InteractiveType(r.Interactive) {
	case InteractiveLever:
		if r.State > uint8(LeverChangingOff) {
			return fmt.Errorf("%w: lever state %d", ErrCorruptCell, r.State)
		}
	case InteractivePushableBlock, InteractivePushableTorch:
		if r.State > uint8(BlockSolid) {
			return fmt.Errorf("%w: block state %d", ErrCorruptCell, r.State)
		}
	case InteractiveExit:
		if r.State > uint8(ExitChangingToLocked) {
			return fmt.Errorf("%w: exit state %d", ErrCorruptCell, r.State)
		}
	}
	switch InteractiveType(r.Interactive) {
	case InteractiveTorch, InteractivePushableTorch:
		if r.Element > uint8(element.Ice) {
			return fmt.Errorf("%w: element %d", ErrCorruptCell, r.Element)
		}
	}
	if UnderneathType(r.Underneath) == UnderneathLightDetector && r.UnderKind > uint8(LightDark) {
		return fmt.Errorf("%w: light kind %d", ErrCorruptCell, r.UnderKind)
	}
	return nil
}

// targets lists the same-map locations the cell's mechanisms activate or
// lead to. Exit destinations are left out; they may lie on another map.
func (c *Cell) targets() []grid.TileLocation {
	var out []grid.TileLocation
	i := &c.Interactive
	switch i.Type {
	case InteractiveLever:
		out = append(out, i.Lever.ActivateTarget)
	case InteractivePushableBlock:
		out = append(out, i.PushableBlock.ActivateTarget)
	case InteractivePushableTorch:
		out = append(out, i.PushableTorch.Block.ActivateTarget)
	case InteractivePortal:
		out = append(out, i.Portal.Destination)
	}
	u := &c.Underneath
	switch u.Type {
	case UnderneathPressurePlate:
		out = append(out, u.PressurePlate.ActivateTarget)
	case UnderneathLightDetector:
		out = append(out, u.LightDetector.ActivateTarget)
	case UnderneathIceDetector:
		out = append(out, u.IceDetector.ActivateTarget)
	}
	return out
}

// WriteCells writes every cell as a fixed-size little-endian record in
// row-major order.
func (g *Grid) WriteCells(w io.Writer) error {
	records := make([]cellRecord, len(g.cells))
	for i := range g.cells {
		records[i] = toRecord(&g.cells[i])
	}
	if err := binary.Write(w, binary.LittleEndian, records); err != nil {
		return fmt.Errorf("interactives: write cells: %w", err)
	}
	return nil
}

// ReadCells reads width×height cell records written by WriteCells. The grid
// must already be Reset to the dimensions the records were written with.
func (g *Grid) ReadCells(r io.Reader) error {
	records := make([]cellRecord, len(g.cells))
	if err := binary.Read(r, binary.LittleEndian, records); err != nil {
		return fmt.Errorf("interactives: read cells: %w", err)
	}
	for i := range records {
		if err := fromRecord(&records[i], &g.cells[i]); err != nil {
			return fmt.Errorf("cell %v: %w", g.location(i), err)
		}
	}
	for i := range g.cells {
		for _, t := range g.cells[i].targets() {
			if t.Valid() && !g.InBounds(t) {
				return fmt.Errorf("cell %v: %w: target %v outside %dx%d", g.location(i), ErrCorruptCell, t, g.width, g.height)
			}
		}
	}
	return nil
}
