package grid

import (
	"fmt"
	"strings"
)

// Direction is one of the four cardinal directions, or DirNone.
type Direction uint8

const (
	DirLeft Direction = iota
	DirUp
	DirRight
	DirDown

	// DirNone means "no direction": a push that failed, or no force applied.
	DirNone
)

// Directions lists the four real directions in declaration order.
var Directions = [...]Direction{DirLeft, DirUp, DirRight, DirDown}

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	default:
		return "none"
	}
}

// Valid reports whether d is one of the four real directions.
func (d Direction) Valid() bool {
	return d < DirNone
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	default:
		return 0, 0
	}
}

// Opposite returns the opposite direction. DirNone has no opposite and
// maps to itself.
func (d Direction) Opposite() Direction {
	switch d {
	case DirLeft:
		return DirRight
	case DirUp:
		return DirDown
	case DirRight:
		return DirLeft
	case DirDown:
		return DirUp
	default:
		return DirNone
	}
}

// ParseDirection parses a direction name as written in map files.
// The empty string parses as DirNone.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return DirLeft, nil
	case "up", "u":
		return DirUp, nil
	case "right", "r":
		return DirRight, nil
	case "down", "d":
		return DirDown, nil
	case "", "none":
		return DirNone, nil
	default:
		return DirNone, fmt.Errorf("grid: unknown direction %q", s)
	}
}
