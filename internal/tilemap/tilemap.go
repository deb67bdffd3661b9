// Package tilemap implements the static tile layer of a map: which tiles are
// walls, the map's base light, and the per-frame lighting pass that torches
// feed into.
package tilemap

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/grid"
)

// DefaultTileSize is the side of one tile in world units.
const DefaultTileSize = 16

// DefaultFalloff is how much light drops per tile away from a source.
const DefaultFalloff uint8 = 32

// Tile is one static map tile.
type Tile struct {
	ID    uint8 // Glyph/material index, free for the renderer to interpret
	Solid bool  // Walls stop characters, pushed objects and light
}

// Map is a rectangular tile map with lighting.
// Tiles are stored in row-major order: index = y*W + x.
type Map struct {
	W        int
	H        int
	TileSize int
	Falloff  uint8

	tiles []Tile
	base  []uint8 // Ambient light per tile
	light []uint8 // Light after the current lighting pass

	// Scratch state of one Illuminate flood.
	reach   []uint8
	touched []int
	queue   []lightStep
}

type lightStep struct {
	loc   grid.TileLocation
	level uint8
}

// New creates a w×h map of floor tiles in total darkness.
func New(w, h, tileSize int) *Map {
	if w < 0 || h < 0 {
		panic(fmt.Sprintf("tilemap: invalid size %dx%d", w, h))
	}
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	n := w * h
	return &Map{
		W:        w,
		H:        h,
		TileSize: tileSize,
		Falloff:  DefaultFalloff,
		tiles:    make([]Tile, n),
		base:     make([]uint8, n),
		light:    make([]uint8, n),
	}
}

func (m *Map) index(loc grid.TileLocation) int {
	return loc.Y*m.W + loc.X
}

// InBounds returns true if the location is within the map.
func (m *Map) InBounds(loc grid.TileLocation) bool {
	return loc.X >= 0 && loc.X < m.W && loc.Y >= 0 && loc.Y < m.H
}

// Tile returns the tile at loc. Out-of-bounds locations read as walls.
func (m *Map) Tile(loc grid.TileLocation) Tile {
	if !m.InBounds(loc) {
		return Tile{Solid: true}
	}
	return m.tiles[m.index(loc)]
}

// SetTile sets the tile at loc. Out-of-bounds writes are ignored.
func (m *Map) SetTile(loc grid.TileLocation, t Tile) {
	if m.InBounds(loc) {
		m.tiles[m.index(loc)] = t
	}
}

// TileSolid reports whether loc is a wall. Everything outside the map is.
func (m *Map) TileSolid(loc grid.TileLocation) bool {
	return m.Tile(loc).Solid
}

// SetBaseLight sets the ambient light of every tile.
func (m *Map) SetBaseLight(v uint8) {
	for i := range m.base {
		m.base[i] = v
	}
}

// SetTileBaseLight sets the ambient light of one tile.
func (m *Map) SetTileBaseLight(loc grid.TileLocation, v uint8) {
	if m.InBounds(loc) {
		m.base[m.index(loc)] = v
	}
}

// BaseLight returns the ambient light of loc.
func (m *Map) BaseLight(loc grid.TileLocation) uint8 {
	if !m.InBounds(loc) {
		return 0
	}
	return m.base[m.index(loc)]
}

// BeginLighting starts a lighting pass: every tile falls back to its base
// light before sources are added with Illuminate.
func (m *Map) BeginLighting() {
	copy(m.light, m.base)
}

// Illuminate floods light of the given strength out from loc. Each step away
// loses Falloff; walls are lit but pass nothing on. Overlapping light keeps
// the brightest value.
func (m *Map) Illuminate(loc grid.TileLocation, value uint8) {
	if !m.InBounds(loc) || value == 0 {
		return
	}
	if m.reach == nil {
		m.reach = make([]uint8, len(m.tiles))
	}
	defer m.clearReach()

	m.visit(loc, value)
	for len(m.queue) > 0 {
		step := m.queue[0]
		m.queue = m.queue[1:]
		if m.tiles[m.index(step.loc)].Solid || step.level <= m.Falloff {
			continue
		}
		next := step.level - m.Falloff
		for _, d := range grid.Directions {
			if n := step.loc.Step(d); m.InBounds(n) {
				m.visit(n, next)
			}
		}
	}
}

// visit records that this pass reaches loc with level and queues it when
// that beats what the pass already brought there.
func (m *Map) visit(loc grid.TileLocation, level uint8) {
	i := m.index(loc)
	if m.reach[i] >= level {
		return
	}
	if m.reach[i] == 0 {
		m.touched = append(m.touched, i)
	}
	m.reach[i] = level
	m.light[i] = max(m.light[i], level)
	m.queue = append(m.queue, lightStep{loc: loc, level: level})
}

func (m *Map) clearReach() {
	for _, i := range m.touched {
		m.reach[i] = 0
	}
	m.touched = m.touched[:0]
	m.queue = m.queue[:0]
}

// Light returns the light level of loc after the current lighting pass.
func (m *Map) Light(loc grid.TileLocation) uint8 {
	if !m.InBounds(loc) {
		return 0
	}
	return m.light[m.index(loc)]
}

// LocationToVector returns the world position of the center of loc.
func (m *Map) LocationToVector(loc grid.TileLocation) core.Vec {
	half := float64(m.TileSize) / 2
	return core.V(float64(loc.X*m.TileSize)+half, float64(loc.Y*m.TileSize)+half)
}

// VectorToLocation returns the tile containing the world position v.
func (m *Map) VectorToLocation(v core.Vec) grid.TileLocation {
	return grid.L(floorDiv(v.X, m.TileSize), floorDiv(v.Y, m.TileSize))
}

// TileRect returns the world-space bounds of loc.
func (m *Map) TileRect(loc grid.TileLocation) core.Rect {
	s := float64(m.TileSize)
	return core.NewRect(float64(loc.X)*s, float64(loc.Y)*s, s, s)
}

func floorDiv(v float64, size int) int {
	return int(math.Floor(v / float64(size)))
}
