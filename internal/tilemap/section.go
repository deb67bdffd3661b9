package tilemap

import (
	"encoding/binary"
	"fmt"
	"io"
)

const tileSolid uint8 = 1 << 0

type tileRecord struct {
	ID    uint8
	Flags uint8
}

// WriteSections writes the tile section followed by the light section, both
// in row-major order.
func (m *Map) WriteSections(w io.Writer) error {
	records := make([]tileRecord, len(m.tiles))
	for i, t := range m.tiles {
		records[i].ID = t.ID
		if t.Solid {
			records[i].Flags |= tileSolid
		}
	}
	if err := binary.Write(w, binary.LittleEndian, records); err != nil {
		return fmt.Errorf("tilemap: write tiles: %w", err)
	}
	if _, err := w.Write(m.base); err != nil {
		return fmt.Errorf("tilemap: write light: %w", err)
	}
	return nil
}

// ReadSections reads the sections written by WriteSections into a map of
// the same size. The lighting pass is reset to the loaded base light.
func (m *Map) ReadSections(r io.Reader) error {
	records := make([]tileRecord, len(m.tiles))
	if err := binary.Read(r, binary.LittleEndian, records); err != nil {
		return fmt.Errorf("tilemap: read tiles: %w", err)
	}
	if _, err := io.ReadFull(r, m.base); err != nil {
		return fmt.Errorf("tilemap: read light: %w", err)
	}
	for i, rec := range records {
		m.tiles[i] = Tile{ID: rec.ID, Solid: rec.Flags&tileSolid != 0}
	}
	m.BeginLighting()
	return nil
}
