// Package mapfile reads and writes the binary map format: a fixed header,
// the tile and light sections of the tile map, and one fixed-size record per
// interactives cell, optionally wrapped in a zstd frame.
package mapfile

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/tilequest/internal/grid"
	"github.com/vovakirdan/tilequest/internal/interactives"
	"github.com/vovakirdan/tilequest/internal/tilemap"
)

// FormatVersion is bumped whenever a cell tag is added or reordered or a
// record layout changes.
const FormatVersion uint16 = 1

// Extension is the file extension of binary maps.
const Extension = ".tqm"

// Magic opens every uncompressed map file.
var Magic = [4]byte{'T', 'Q', 'M', 'P'}

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

var (
	// ErrBadMagic is returned when the data is not a map file.
	ErrBadMagic = errors.New("mapfile: bad magic")
	// ErrVersion is returned for a map file written by another format version.
	ErrVersion = errors.New("mapfile: unsupported version")
)

// maxNameLen bounds the stored map name.
const maxNameLen = 255

type header struct {
	Magic    [4]byte
	Version  uint16
	Width    uint16
	Height   uint16
	TileSize uint16
	MapIndex int32
	SpawnX   int32
	SpawnY   int32
	NameLen  uint8
	_        [3]uint8
}

// Level is one decoded map: its static tiles and its mechanisms.
type Level struct {
	Index int
	Name  string
	Spawn grid.TileLocation
	Tiles *tilemap.Map
	Cells *interactives.Grid
}

// Encode writes lv uncompressed.
func Encode(w io.Writer, lv *Level) error {
	if lv.Tiles.W != lv.Cells.Width() || lv.Tiles.H != lv.Cells.Height() {
		return fmt.Errorf("mapfile: tiles %dx%d do not match cells %dx%d",
			lv.Tiles.W, lv.Tiles.H, lv.Cells.Width(), lv.Cells.Height())
	}
	name := lv.Name
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	h := header{
		Magic:    Magic,
		Version:  FormatVersion,
		Width:    uint16(lv.Tiles.W),
		Height:   uint16(lv.Tiles.H),
		TileSize: uint16(lv.Tiles.TileSize),
		MapIndex: int32(lv.Index),
		SpawnX:   int32(lv.Spawn.X),
		SpawnY:   int32(lv.Spawn.Y),
		NameLen:  uint8(len(name)),
	}
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("mapfile: write header: %w", err)
	}
	if _, err := io.WriteString(w, name); err != nil {
		return fmt.Errorf("mapfile: write name: %w", err)
	}
	if err := lv.Tiles.WriteSections(w); err != nil {
		return err
	}
	return lv.Cells.WriteCells(w)
}

// Decode reads an uncompressed map. The cells are loaded into g, which is
// reset to the stored size; a nil g gets a grid with default tuning.
func Decode(r io.Reader, g *interactives.Grid) (*Level, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("mapfile: read header: %w", err)
	}
	if h.Magic != Magic {
		return nil, ErrBadMagic
	}
	if h.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}
	w, ht := int(h.Width), int(h.Height)
	if w*ht > interactives.MaxTiles {
		return nil, fmt.Errorf("mapfile: map %dx%d exceeds %d tiles", w, ht, interactives.MaxTiles)
	}

	name := make([]byte, h.NameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, fmt.Errorf("mapfile: read name: %w", err)
	}

	tiles := tilemap.New(w, ht, int(h.TileSize))
	if err := tiles.ReadSections(r); err != nil {
		return nil, err
	}

	if g == nil {
		g = interactives.New(interactives.DefaultTuning())
	}
	g.Reset(w, ht)
	if err := g.ReadCells(r); err != nil {
		return nil, err
	}
	g.SetMap(tiles)

	return &Level{
		Index: int(h.MapIndex),
		Name:  string(name),
		Spawn: grid.L(int(h.SpawnX), int(h.SpawnY)),
		Tiles: tiles,
		Cells: g,
	}, nil
}

// Marshal encodes lv, compressing it with zstd when compress is set.
func Marshal(lv *Level, compress bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, lv); err != nil {
		return nil, err
	}
	if !compress {
		return buf.Bytes(), nil
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("mapfile: create compressor: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(buf.Bytes(), nil), nil
}

// Unmarshal decodes data produced by Marshal, compressed or not.
func Unmarshal(data []byte, g *interactives.Grid) (*Level, error) {
	if bytes.HasPrefix(data, zstdMagic) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("mapfile: create decompressor: %w", err)
		}
		defer dec.Close()
		data, err = dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("mapfile: decompress: %w", err)
		}
	}
	return Decode(bytes.NewReader(data), g)
}

// Read decodes a map from a stream, compressed or not.
func Read(r io.Reader, g *interactives.Grid) (*Level, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(zstdMagic))
	if err != nil {
		return nil, fmt.Errorf("mapfile: read header: %w", err)
	}
	if !bytes.Equal(head, zstdMagic) {
		return Decode(br, g)
	}
	dec, err := zstd.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("mapfile: create decompressor: %w", err)
	}
	defer dec.Close()
	return Decode(dec, g)
}

// Save writes lv to path, creating parent directories as needed.
func Save(path string, lv *Level, compress bool) error {
	data, err := Marshal(lv, compress)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mapfile: create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("mapfile: write %s: %w", path, err)
	}
	return nil
}

// Load reads the map stored at path.
func Load(path string, g *interactives.Grid) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapfile: open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, g)
}
