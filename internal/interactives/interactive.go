package interactives

import (
	"fmt"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/element"
	"github.com/vovakirdan/tilequest/internal/grid"
)

// InteractiveType tags the foreground mechanism of a tile.
// The numeric values are part of the map file format.
type InteractiveType uint8

const (
	InteractiveNone InteractiveType = iota
	InteractiveLever
	InteractivePushableBlock
	InteractiveTorch
	InteractivePushableTorch
	InteractiveExit
	InteractiveBombableBlock
	InteractiveTurret
	InteractivePortal

	interactiveTypeCount
)

var interactiveNames = [...]string{
	InteractiveNone:          "none",
	InteractiveLever:         "lever",
	InteractivePushableBlock: "pushable_block",
	InteractiveTorch:         "torch",
	InteractivePushableTorch: "pushable_torch",
	InteractiveExit:          "exit",
	InteractiveBombableBlock: "bombable_block",
	InteractiveTurret:        "turret",
	InteractivePortal:        "portal",
}

func (t InteractiveType) String() string {
	if t < interactiveTypeCount {
		return interactiveNames[t]
	}
	return "unknown"
}

// ParseInteractiveType parses a type name as written in map files.
func ParseInteractiveType(s string) (InteractiveType, error) {
	for i, name := range interactiveNames {
		if name == s {
			return InteractiveType(i), nil
		}
	}
	return InteractiveNone, fmt.Errorf("interactives: unknown interactive type %q", s)
}

// LeverState is the position of a lever.
type LeverState uint8

const (
	LeverOff LeverState = iota
	LeverOn
	LeverChangingOn
	LeverChangingOff
)

func (s LeverState) String() string {
	switch s {
	case LeverOff:
		return "off"
	case LeverOn:
		return "on"
	case LeverChangingOn:
		return "changing_on"
	case LeverChangingOff:
		return "changing_off"
	default:
		return "unknown"
	}
}

// Lever flips between off and on. The flip takes a cooldown to complete and
// the target is activated when it completes, not when the lever is pulled.
type Lever struct {
	State          LeverState
	Cooldown       core.Timer
	ActivateTarget grid.TileLocation
}

// Reset turns the lever off with no flip in flight and no target.
func (l *Lever) Reset() {
	l.State = LeverOff
	l.Cooldown.Stop()
	l.ActivateTarget = grid.NoLocation
}

// Changing reports whether a flip is in flight.
func (l *Lever) Changing() bool {
	return l.State == LeverChangingOn || l.State == LeverChangingOff
}

// Activate starts a flip. Pulling a lever that is already moving does nothing.
func (l *Lever) Activate(cooldown float64) bool {
	switch l.State {
	case LeverOff:
		l.State = LeverChangingOn
	case LeverOn:
		l.State = LeverChangingOff
	default:
		return false
	}
	l.Cooldown.Start(cooldown)
	return true
}

// Update advances the flip and reports whether it completed this tick.
func (l *Lever) Update(dt float64) bool {
	if !l.Changing() {
		return false
	}
	l.Cooldown.Tick(dt)
	if l.Cooldown.Running() {
		return false
	}
	if l.State == LeverChangingOn {
		l.State = LeverOn
	} else {
		l.State = LeverOff
	}
	return true
}

// BlockState is the pushing state of a pushable block.
type BlockState uint8

const (
	BlockIdle BlockState = iota
	BlockLeanedOn
	BlockMoving
	BlockSolid
)

func (s BlockState) String() string {
	switch s {
	case BlockIdle:
		return "idle"
	case BlockLeanedOn:
		return "leaned_on"
	case BlockMoving:
		return "moving"
	case BlockSolid:
		return "solid"
	default:
		return "unknown"
	}
}

// PushableBlock moves one tile after being leaned on for the lean delay.
// A one-time block turns solid after its first move.
type PushableBlock struct {
	State          BlockState
	Cooldown       core.Timer
	OneTime        bool
	ActivateTarget grid.TileLocation

	// pushed records that Push was called since the last Update.
	pushed bool
}

// Reset makes the block idle and clears its one-time flag and target.
func (b *PushableBlock) Reset() {
	b.State = BlockIdle
	b.Cooldown.Stop()
	b.OneTime = false
	b.ActivateTarget = grid.NoLocation
	b.pushed = false
}

// Push leans on the block. It returns the direction the block should move
// in, or DirNone while it is not moving yet. finished reports that a previous
// move completed with this call.
func (b *PushableBlock) Push(dir grid.Direction, leanDelay float64) (moved grid.Direction, finished bool) {
	b.pushed = true
	switch b.State {
	case BlockIdle:
		b.State = BlockLeanedOn
		b.Cooldown.Start(leanDelay)
		return grid.DirNone, false
	case BlockLeanedOn:
		if b.Cooldown.Running() {
			return grid.DirNone, false
		}
		b.State = BlockMoving
		return dir, false
	case BlockMoving:
		if b.OneTime {
			b.State = BlockSolid
		} else {
			b.State = BlockIdle
		}
		return grid.DirNone, true
	default:
		return grid.DirNone, false
	}
}

// Update advances the lean timer. A block nobody pushed this tick stops
// being leaned on.
func (b *PushableBlock) Update(dt float64) {
	if b.State == BlockLeanedOn && !b.pushed {
		b.State = BlockIdle
		b.Cooldown.Stop()
	}
	b.Cooldown.Tick(dt)
	b.pushed = false
}

// Torch burns with fire or holds ice. Only a burning torch gives off light.
type Torch struct {
	Element    element.Element
	LightValue uint8
}

// Reset unlights the torch at full light value.
func (t *Torch) Reset() {
	t.Element = element.None
	t.LightValue = DefaultTorchLight
}

// Lit reports whether the torch is burning.
func (t *Torch) Lit() bool {
	return t.Element == element.Fire
}

// Activate lights an unlit torch and puts out a lit one.
func (t *Torch) Activate() {
	if t.Element == element.None {
		t.Element = element.Fire
	} else {
		t.Element = element.None
	}
}

// Strike resolves a projectile's element against the torch. Both end up with
// the combined element.
func (t *Torch) Strike(carried *element.Element) {
	combined := element.Combine(t.Element, *carried)
	t.Element = combined
	*carried = combined
}

// PushableTorch is a torch standing on a pushable base.
type PushableTorch struct {
	Torch Torch
	Block PushableBlock
}

// Reset resets both the torch and its block.
func (p *PushableTorch) Reset() {
	p.Torch.Reset()
	p.Block.Reset()
}

// ExitState is the state of a door.
type ExitState uint8

const (
	ExitClosed ExitState = iota
	ExitOpen
	ExitLocked
	ExitChangingToOpen
	ExitChangingToClosed
	ExitChangingToUnlocked
	ExitChangingToLocked
)

func (s ExitState) String() string {
	switch s {
	case ExitClosed:
		return "closed"
	case ExitOpen:
		return "open"
	case ExitLocked:
		return "locked"
	case ExitChangingToOpen:
		return "changing_to_open"
	case ExitChangingToClosed:
		return "changing_to_closed"
	case ExitChangingToUnlocked:
		return "changing_to_unlocked"
	case ExitChangingToLocked:
		return "changing_to_locked"
	default:
		return "unknown"
	}
}

// ParseExitState parses a steady door state as written in map files.
func ParseExitState(s string) (ExitState, error) {
	switch s {
	case "", "closed":
		return ExitClosed, nil
	case "open":
		return ExitOpen, nil
	case "locked":
		return ExitLocked, nil
	default:
		return ExitClosed, fmt.Errorf("interactives: unknown exit state %q", s)
	}
}

// Exit is a door leading to a tile on another map.
type Exit struct {
	State       ExitState
	Cooldown    core.Timer
	Facing      grid.Direction
	MapIndex    int
	Destination grid.TileLocation
}

// Reset closes the door facing down, with no destination.
func (e *Exit) Reset() {
	e.State = ExitClosed
	e.Cooldown.Stop()
	e.Facing = grid.DirDown
	e.MapIndex = 0
	e.Destination = grid.NoLocation
}

// Open reports whether the door can be walked through.
func (e *Exit) Open() bool {
	return e.State == ExitOpen
}

// Changing reports whether the door is in a transition.
func (e *Exit) Changing() bool {
	return e.State >= ExitChangingToOpen
}

// Activate opens a closed door, closes an open one and unlocks a locked one.
func (e *Exit) Activate(transition float64) bool {
	switch e.State {
	case ExitClosed:
		e.State = ExitChangingToOpen
	case ExitOpen:
		e.State = ExitChangingToClosed
	case ExitLocked:
		e.State = ExitChangingToUnlocked
	default:
		return false
	}
	e.Cooldown.Start(transition)
	return true
}

// Lock shuts and locks a closed or open door.
func (e *Exit) Lock(transition float64) bool {
	if e.State != ExitClosed && e.State != ExitOpen {
		return false
	}
	e.State = ExitChangingToLocked
	e.Cooldown.Start(transition)
	return true
}

// Update advances a transition and reports whether it resolved this tick.
// An unlocked door ends up closed.
func (e *Exit) Update(dt float64) bool {
	if !e.Changing() {
		return false
	}
	e.Cooldown.Tick(dt)
	if e.Cooldown.Running() {
		return false
	}
	switch e.State {
	case ExitChangingToOpen:
		e.State = ExitOpen
	case ExitChangingToClosed, ExitChangingToUnlocked:
		e.State = ExitClosed
	case ExitChangingToLocked:
		e.State = ExitLocked
	}
	return true
}

// BombableBlock is a wall that only an explosion removes.
type BombableBlock struct{}

// Reset is a no-op; a bombable block carries no state.
func (b *BombableBlock) Reset() {}

// Turret shoots in Facing when activated, or on its own every period when
// automatic. WantsToShoot is a single-tick signal the game reads with
// Grid.TakeTurretShots.
type Turret struct {
	Automatic    bool
	WantsToShoot bool
	Facing       grid.Direction
	Cooldown     core.Timer
}

// Reset disarms the turret and points it down.
func (t *Turret) Reset() {
	t.Automatic = false
	t.WantsToShoot = false
	t.Facing = grid.DirDown
	t.Cooldown.Stop()
}

// Activate asks the turret to shoot this tick.
func (t *Turret) Activate() {
	t.WantsToShoot = true
}

// Update runs the automatic firing clock. The first call only arms it.
func (t *Turret) Update(dt, period float64) {
	if !t.Automatic {
		return
	}
	if t.Cooldown.Tick(dt) {
		t.WantsToShoot = true
	}
	if !t.Cooldown.Running() {
		t.Cooldown.Start(period)
	}
}

// TakeShot reports and clears the shoot signal.
func (t *Turret) TakeShot() bool {
	shoot := t.WantsToShoot
	t.WantsToShoot = false
	return shoot
}

// Portal sends whatever enters it to the tile past Destination.
type Portal struct {
	Destination grid.TileLocation
}

// Reset clears the destination.
func (p *Portal) Reset() {
	p.Destination = grid.NoLocation
}

// Interactive is the foreground layer of a tile. Only the payload selected by
// Type is meaningful.
type Interactive struct {
	Type InteractiveType

	Lever         Lever
	PushableBlock PushableBlock
	Torch         Torch
	PushableTorch PushableTorch
	Exit          Exit
	BombableBlock BombableBlock
	Turret        Turret
	Portal        Portal
}

// Set retags the layer. Every payload is cleared and the new one is reset to
// its defaults.
func (i *Interactive) Set(t InteractiveType) {
	*i = Interactive{Type: t}
	i.Reset()
}

// Reset returns the active payload to its defaults.
func (i *Interactive) Reset() {
	switch i.Type {
	case InteractiveLever:
		i.Lever.Reset()
	case InteractivePushableBlock:
		i.PushableBlock.Reset()
	case InteractiveTorch:
		i.Torch.Reset()
	case InteractivePushableTorch:
		i.PushableTorch.Reset()
	case InteractiveExit:
		i.Exit.Reset()
	case InteractiveBombableBlock:
		i.BombableBlock.Reset()
	case InteractiveTurret:
		i.Turret.Reset()
	case InteractivePortal:
		i.Portal.Reset()
	}
}

// BlocksWalking reports whether the layer itself stops ground movement.
// Portals never block here; the grid looks through them. Turrets block like
// every other occupant.
func (i *Interactive) BlocksWalking() bool {
	switch i.Type {
	case InteractiveNone, InteractivePortal:
		return false
	case InteractiveExit:
		return !i.Exit.Open()
	default:
		return true
	}
}

// BlocksFlying reports whether the layer stops projectiles.
func (i *Interactive) BlocksFlying() bool {
	return i.Type == InteractiveExit
}

// Block returns the pushable base of the occupant, or nil if it has none.
func (i *Interactive) Block() *PushableBlock {
	switch i.Type {
	case InteractivePushableBlock:
		return &i.PushableBlock
	case InteractivePushableTorch:
		return &i.PushableTorch.Block
	default:
		return nil
	}
}

// TorchPart returns the torch of the occupant, or nil if it has none.
func (i *Interactive) TorchPart() *Torch {
	switch i.Type {
	case InteractiveTorch:
		return &i.Torch
	case InteractivePushableTorch:
		return &i.PushableTorch.Torch
	default:
		return nil
	}
}

// Slidable reports whether ice can carry the occupant.
func (i *Interactive) Slidable() bool {
	b := i.Block()
	return b != nil && b.State != BlockSolid
}

// push leans on the occupant. It returns the direction to move in, and the
// target to activate when a move finished.
func (i *Interactive) push(dir grid.Direction, t Tuning) (grid.Direction, grid.TileLocation) {
	b := i.Block()
	if b == nil {
		return grid.DirNone, grid.NoLocation
	}
	moved, finished := b.Push(dir, t.LeanDelay)
	if finished {
		return moved, b.ActivateTarget
	}
	return moved, grid.NoLocation
}

// activate reports whether the occupant consumed the activation.
func (i *Interactive) activate(t Tuning) bool {
	switch i.Type {
	case InteractiveLever:
		return i.Lever.Activate(t.LeverCooldown)
	case InteractiveTorch:
		i.Torch.Activate()
		return true
	case InteractivePushableTorch:
		i.PushableTorch.Torch.Activate()
		return false
	case InteractiveExit:
		return i.Exit.Activate(t.ExitTransition)
	case InteractiveTurret:
		i.Turret.Activate()
		return true
	case InteractivePortal:
		return true
	default:
		return false
	}
}

// update advances timers and returns a target to activate, if any.
func (i *Interactive) update(dt float64, t Tuning) grid.TileLocation {
	switch i.Type {
	case InteractiveLever:
		if i.Lever.Update(dt) {
			return i.Lever.ActivateTarget
		}
	case InteractivePushableBlock:
		i.PushableBlock.Update(dt)
	case InteractivePushableTorch:
		i.PushableTorch.Block.Update(dt)
	case InteractiveExit:
		i.Exit.Update(dt)
	case InteractiveTurret:
		i.Turret.Update(dt, t.TurretPeriod)
	}
	return grid.NoLocation
}
