package game

import (
	"fmt"

	"github.com/vovakirdan/tilequest/internal/interactives"
	"github.com/vovakirdan/tilequest/internal/mapfile"
)

// Snapshot is a saved session: the current map in map file form, with the
// player's tile stored as its spawn. Player stats are not part of it.
type Snapshot struct {
	MapIndex int
	Data     []byte
}

// Snapshot encodes the current map and the player's position.
func (s *State) Snapshot() (Snapshot, error) {
	lv := *s.level
	if s.level.Cells.InBounds(s.tile) {
		lv.Spawn = s.tile
	}
	data, err := mapfile.Marshal(&lv, true)
	if err != nil {
		return Snapshot{}, fmt.Errorf("game: snapshot: %w", err)
	}
	return Snapshot{MapIndex: s.index, Data: data}, nil
}

// Restore replaces the snapshot's map with the saved one and puts the player
// back where it stood. The map keeps its original spawn for respawning.
func (s *State) Restore(snap Snapshot) error {
	if snap.MapIndex < 0 || snap.MapIndex >= len(s.levels) {
		return fmt.Errorf("game: restore: map %d out of range [0,%d)", snap.MapIndex, len(s.levels))
	}
	g := interactives.New(s.cfg.Tuning())
	lv, err := mapfile.Unmarshal(snap.Data, g)
	if err != nil {
		return fmt.Errorf("game: restore: %w", err)
	}
	if lv.Index != snap.MapIndex {
		return fmt.Errorf("game: restore: snapshot holds map %d, want %d", lv.Index, snap.MapIndex)
	}

	at := lv.Spawn
	lv.Spawn = s.levels[snap.MapIndex].Spawn
	s.adopt(lv)

	s.leaveTile()
	s.levels[snap.MapIndex] = lv
	s.level = nil
	s.enterLevel(snap.MapIndex, at)
	return nil
}
