package interactives

import (
	"fmt"

	"github.com/vovakirdan/tilequest/internal/grid"
)

// UnderneathType tags the background mechanism of a tile.
// The numeric values are part of the map file format.
type UnderneathType uint8

const (
	UnderneathNone UnderneathType = iota
	UnderneathPressurePlate
	UnderneathPopupBlock
	UnderneathIce
	UnderneathMovingWalkway
	UnderneathLightDetector
	UnderneathIceDetector
	UnderneathHole
	UnderneathDestructible

	underneathTypeCount
)

var underneathNames = [...]string{
	UnderneathNone:          "none",
	UnderneathPressurePlate: "pressure_plate",
	UnderneathPopupBlock:    "popup_block",
	UnderneathIce:           "ice",
	UnderneathMovingWalkway: "moving_walkway",
	UnderneathLightDetector: "light_detector",
	UnderneathIceDetector:   "ice_detector",
	UnderneathHole:          "hole",
	UnderneathDestructible:  "destructible",
}

func (t UnderneathType) String() string {
	if t < underneathTypeCount {
		return underneathNames[t]
	}
	return "unknown"
}

// ParseUnderneathType parses a type name as written in map files.
func ParseUnderneathType(s string) (UnderneathType, error) {
	for i, name := range underneathNames {
		if name == s {
			return UnderneathType(i), nil
		}
	}
	return UnderneathNone, fmt.Errorf("interactives: unknown underneath type %q", s)
}

// PressurePlate fires its target when something steps on and again when it
// steps off.
type PressurePlate struct {
	Entered        bool
	ActivateTarget grid.TileLocation
}

// Reset releases the plate and clears its target.
func (p *PressurePlate) Reset() {
	p.Entered = false
	p.ActivateTarget = grid.NoLocation
}

func (p *PressurePlate) enter() grid.TileLocation {
	if p.Entered {
		return grid.NoLocation
	}
	p.Entered = true
	return p.ActivateTarget
}

func (p *PressurePlate) leave() grid.TileLocation {
	if !p.Entered {
		return grid.NoLocation
	}
	p.Entered = false
	return p.ActivateTarget
}

// PopupBlock rises out of the floor when activated. A raised block is not
// walkable.
type PopupBlock struct {
	Up bool
}

// Reset lowers the block.
func (p *PopupBlock) Reset() {
	p.Up = false
}

// Ice keeps objects pushed onto it moving in ForceDir.
type Ice struct {
	ForceDir grid.Direction
}

// Reset clears the force on the ice.
func (i *Ice) Reset() {
	i.ForceDir = grid.DirNone
}

// MovingWalkway carries characters standing on it toward Facing.
type MovingWalkway struct {
	Facing grid.Direction
}

// Reset points the walkway right.
func (w *MovingWalkway) Reset() {
	w.Facing = grid.DirRight
}

// LightKind selects which threshold a light detector watches.
type LightKind uint8

const (
	LightBright LightKind = iota
	LightDark
)

func (k LightKind) String() string {
	if k == LightDark {
		return "dark"
	}
	return "bright"
}

// LightDetector fires its target every time the sampled light level crosses
// the threshold of its kind, in either direction.
type LightDetector struct {
	Kind           LightKind
	BelowThreshold bool
	ActivateTarget grid.TileLocation
}

// Reset puts the detector in its resting state: a bright detector rests in
// the dark, a dark detector rests in the light.
func (d *LightDetector) Reset() {
	d.BelowThreshold = d.Kind == LightBright
	d.ActivateTarget = grid.NoLocation
}

// SetKind changes the detector kind and moves it to that kind's resting state.
func (d *LightDetector) SetKind(k LightKind) {
	d.Kind = k
	d.BelowThreshold = k == LightBright
}

func (d *LightDetector) threshold(t Tuning) uint8 {
	if d.Kind == LightDark {
		return t.DarkThreshold
	}
	return t.BrightThreshold
}

// Sample feeds a light level to the detector and reports whether it crossed
// the threshold.
func (d *LightDetector) Sample(light uint8, t Tuning) bool {
	below := light < d.threshold(t)
	if below == d.BelowThreshold {
		return false
	}
	d.BelowThreshold = below
	return true
}

// IceDetector is frozen over by spreading ice and thawed by retracting ice.
// While detected it behaves like ice.
type IceDetector struct {
	Detected       bool
	ForceDir       grid.Direction
	ActivateTarget grid.TileLocation
}

// Reset clears detection, force and target.
func (d *IceDetector) Reset() {
	d.Detected = false
	d.ForceDir = grid.DirNone
	d.ActivateTarget = grid.NoLocation
}

// Hole swallows the first pushed object that enters it.
type Hole struct {
	Filled bool
}

// Reset empties the hole.
func (h *Hole) Reset() {
	h.Filled = false
}

// Destructible is a breakable floor obstacle.
type Destructible struct {
	Destroyed bool
}

// Reset restores the destructible.
func (d *Destructible) Reset() {
	d.Destroyed = false
}

// Underneath is the background layer of a tile. Only the payload selected by
// Type is meaningful.
type Underneath struct {
	Type UnderneathType

	PressurePlate PressurePlate
	PopupBlock    PopupBlock
	Ice           Ice
	MovingWalkway MovingWalkway
	LightDetector LightDetector
	IceDetector   IceDetector
	Hole          Hole
	Destructible  Destructible
}

// Set retags the layer. Every payload is cleared and the new one is reset to
// its defaults.
func (u *Underneath) Set(t UnderneathType) {
	*u = Underneath{Type: t}
	u.Reset()
}

// Reset returns the active payload to its defaults.
func (u *Underneath) Reset() {
	switch u.Type {
	case UnderneathPressurePlate:
		u.PressurePlate.Reset()
	case UnderneathPopupBlock:
		u.PopupBlock.Reset()
	case UnderneathIce:
		u.Ice.Reset()
	case UnderneathMovingWalkway:
		u.MovingWalkway.Reset()
	case UnderneathLightDetector:
		u.LightDetector.Reset()
	case UnderneathIceDetector:
		u.IceDetector.Reset()
	case UnderneathHole:
		u.Hole.Reset()
	case UnderneathDestructible:
		u.Destructible.Reset()
	}
}

// BlocksWalking reports whether the layer stops ground movement.
func (u *Underneath) BlocksWalking() bool {
	switch u.Type {
	case UnderneathPopupBlock:
		return u.PopupBlock.Up
	case UnderneathHole:
		return !u.Hole.Filled
	case UnderneathDestructible:
		return !u.Destructible.Destroyed
	default:
		return false
	}
}

// BlocksFlying reports whether the layer stops projectiles.
func (u *Underneath) BlocksFlying() bool {
	return u.Type == UnderneathDestructible && !u.Destructible.Destroyed
}

// EmptyHole reports whether the layer is a hole that can still swallow an
// object.
func (u *Underneath) EmptyHole() bool {
	return u.Type == UnderneathHole && !u.Hole.Filled
}

// Icy reports whether the layer makes things slide.
func (u *Underneath) Icy() bool {
	switch u.Type {
	case UnderneathIce:
		return true
	case UnderneathIceDetector:
		return u.IceDetector.Detected
	default:
		return false
	}
}

// Force returns the direction the layer is pushing its occupant, or DirNone.
func (u *Underneath) Force() grid.Direction {
	switch u.Type {
	case UnderneathIce:
		return u.Ice.ForceDir
	case UnderneathIceDetector:
		if u.IceDetector.Detected {
			return u.IceDetector.ForceDir
		}
	}
	return grid.DirNone
}

func (u *Underneath) setForce(d grid.Direction) {
	switch u.Type {
	case UnderneathIce:
		u.Ice.ForceDir = d
	case UnderneathIceDetector:
		if u.IceDetector.Detected {
			u.IceDetector.ForceDir = d
		}
	}
}

func (u *Underneath) clearForce() {
	switch u.Type {
	case UnderneathIce:
		u.Ice.ForceDir = grid.DirNone
	case UnderneathIceDetector:
		u.IceDetector.ForceDir = grid.DirNone
	}
}

// activate handles an activation that passed through an empty interactive
// layer. Only popup blocks and moving walkways respond.
func (u *Underneath) activate() bool {
	switch u.Type {
	case UnderneathPopupBlock:
		u.PopupBlock.Up = !u.PopupBlock.Up
		return true
	case UnderneathMovingWalkway:
		u.MovingWalkway.Facing = u.MovingWalkway.Facing.Opposite()
		return true
	default:
		return false
	}
}
