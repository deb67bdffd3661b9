// Package element implements the elemental states carried by torches and
// projectiles and the rule for combining them.
package element

import (
	"fmt"
	"strings"
)

// Element is the elemental charge of a torch or projectile.
type Element uint8

const (
	None Element = iota
	Fire
	Ice
)

// String returns the string representation of an element.
func (e Element) String() string {
	switch e {
	case None:
		return "none"
	case Fire:
		return "fire"
	case Ice:
		return "ice"
	default:
		return "unknown"
	}
}

// Combine resolves an incoming element against the current one.
// None takes on the other element, equal elements stay, and opposite
// elements cancel out to None. The rule is symmetric.
func Combine(current, incoming Element) Element {
	switch {
	case current == None:
		return incoming
	case incoming == None:
		return current
	case current == incoming:
		return current
	default:
		return None
	}
}

// Parse parses an element name as written in map files.
func Parse(s string) (Element, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "fire":
		return Fire, nil
	case "ice":
		return Ice, nil
	default:
		return None, fmt.Errorf("element: unknown element %q", s)
	}
}
