// Package levels loads the YAML level files a game is made of and builds
// them into tile maps and interactives grids.
package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tilequest/internal/grid"
	"github.com/vovakirdan/tilequest/internal/levels/formats"
)

// Level represents a complete level definition.
type Level struct {
	ID           string
	Name         string
	Width        int
	Height       int
	TileSize     int
	BaseLight    int
	Rows         []string
	Spawn        grid.TileLocation
	Interactives []formats.YAMLMechanism
	Underneath   []formats.YAMLMechanism
	FilePath     string
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string

	// Skipped holds the error of every file LoadAll could not parse.
	Skipped []error
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering; the position in
// the result is the map index exits refer to.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level
	l.Skipped = nil

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			l.Skipped = append(l.Skipped, err)
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	return Level{
		ID:           parsed.ID,
		Name:         parsed.Name,
		Width:        parsed.Width,
		Height:       parsed.Height,
		TileSize:     parsed.TileSize,
		BaseLight:    parsed.BaseLight,
		Rows:         parsed.Rows,
		Spawn:        grid.L(parsed.Spawn.X, parsed.Spawn.Y),
		Interactives: parsed.Interactives,
		Underneath:   parsed.Underneath,
		FilePath:     path,
	}, nil
}

// LoadCampaign loads every level under Root as one campaign.
func (l *Loader) LoadCampaign() (*Campaign, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("no levels found in %s", l.Root)
	}
	return NewCampaign(levels)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
