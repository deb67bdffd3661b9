// Package formats provides the level file parsers. Parsers only decode the
// file shape; resolving names and building grids is up to the levels package.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID           string          `yaml:"id"`
	Name         string          `yaml:"name"`
	Size         YAMLSize        `yaml:"size,omitempty"`
	TileSize     int             `yaml:"tile_size,omitempty"`
	BaseLight    *int            `yaml:"base_light,omitempty"`
	Rows         []string        `yaml:"rows"`
	Spawn        YAMLPoint       `yaml:"spawn"`
	Interactives []YAMLMechanism `yaml:"interactives,omitempty"`
	Underneath   []YAMLMechanism `yaml:"underneath,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLPoint is a tile coordinate.
type YAMLPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// YAMLMechanism is one interactive or underneath entry. Which fields apply
// depends on Type.
type YAMLMechanism struct {
	Type string    `yaml:"type"`
	At   YAMLPoint `yaml:"at"`

	Target      *YAMLPoint `yaml:"target,omitempty"`      // activate target
	Destination *YAMLPoint `yaml:"destination,omitempty"` // portal or exit arrival tile
	Map         string     `yaml:"map,omitempty"`         // exit: id of the destination map
	Facing      string     `yaml:"facing,omitempty"`
	State       string     `yaml:"state,omitempty"`   // exit: closed, open, locked
	Element     string     `yaml:"element,omitempty"` // torch
	Light       *int       `yaml:"light,omitempty"`   // torch light value
	Kind        string     `yaml:"kind,omitempty"`    // light detector: bright, dark
	OneTime     bool       `yaml:"one_time,omitempty"`
	Automatic   bool       `yaml:"automatic,omitempty"`
	Up          bool       `yaml:"up,omitempty"` // popup block starts raised
}

// DefaultBaseLight is the ambient light of a level that does not set one.
const DefaultBaseLight = 255

// Level represents a parsed level ready for building.
type Level struct {
	ID           string
	Name         string
	Width        int
	Height       int
	TileSize     int
	BaseLight    int
	Rows         []string
	Spawn        YAMLPoint
	Interactives []YAMLMechanism
	Underneath   []YAMLMechanism
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}

	level := Level{
		ID:           yl.ID,
		Name:         yl.Name,
		Width:        yl.Size.W,
		Height:       yl.Size.H,
		TileSize:     yl.TileSize,
		BaseLight:    DefaultBaseLight,
		Rows:         yl.Rows,
		Spawn:        yl.Spawn,
		Interactives: yl.Interactives,
		Underneath:   yl.Underneath,
	}
	if yl.BaseLight != nil {
		level.BaseLight = *yl.BaseLight
	}
	if level.Name == "" {
		level.Name = level.ID
	}

	// Rows define the size unless it is given explicitly.
	if len(yl.Rows) > 0 {
		h := len(yl.Rows)
		w := len(yl.Rows[0])
		if level.Width == 0 && level.Height == 0 {
			level.Width, level.Height = w, h
		} else if level.Width != w || level.Height != h {
			return Level{}, fmt.Errorf("size %dx%d does not match rows %dx%d", level.Width, level.Height, w, h)
		}
	}
	if level.Width <= 0 || level.Height <= 0 {
		return Level{}, fmt.Errorf("level %s has no size", level.ID)
	}
	if level.BaseLight < 0 || level.BaseLight > 255 {
		return Level{}, fmt.Errorf("base_light %d out of range", level.BaseLight)
	}

	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
