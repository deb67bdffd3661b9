package levels

import (
	"fmt"

	"github.com/vovakirdan/tilequest/internal/interactives"
	"github.com/vovakirdan/tilequest/internal/mapfile"
)

// Campaign is an ordered set of levels. A level's position is its map index.
type Campaign struct {
	Levels []Level
	index  map[string]int
}

// NewCampaign indexes levels in the given order. IDs must be unique.
func NewCampaign(levels []Level) (*Campaign, error) {
	c := &Campaign{Levels: levels, index: make(map[string]int, len(levels))}
	for i, lvl := range levels {
		if _, dup := c.index[lvl.ID]; dup {
			return nil, fmt.Errorf("levels: duplicate level id %q", lvl.ID)
		}
		c.index[lvl.ID] = i
	}
	return c, nil
}

// Len returns the number of levels.
func (c *Campaign) Len() int {
	return len(c.Levels)
}

// IDs returns the level IDs in map index order.
func (c *Campaign) IDs() []string {
	ids := make([]string, len(c.Levels))
	for i, lvl := range c.Levels {
		ids[i] = lvl.ID
	}
	return ids
}

// Index returns the map index of the level with the given ID.
func (c *Campaign) Index(id string) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

// Build builds the level at map index i.
func (c *Campaign) Build(i int, tuning interactives.Tuning) (*mapfile.Level, error) {
	if i < 0 || i >= len(c.Levels) {
		return nil, fmt.Errorf("levels: map index %d out of range [0,%d)", i, len(c.Levels))
	}
	return c.Levels[i].Build(i, tuning, c.Index)
}

// BuildAll builds every level in order.
func (c *Campaign) BuildAll(tuning interactives.Tuning) ([]*mapfile.Level, error) {
	out := make([]*mapfile.Level, len(c.Levels))
	for i := range c.Levels {
		lv, err := c.Build(i, tuning)
		if err != nil {
			return nil, err
		}
		out[i] = lv
	}
	return out, nil
}
