package tui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/game"
	"github.com/vovakirdan/tilequest/internal/grid"
	"github.com/vovakirdan/tilequest/internal/interactives"
	"github.com/vovakirdan/tilequest/internal/mapfile"
	"github.com/vovakirdan/tilequest/internal/storage"
	"github.com/vovakirdan/tilequest/internal/tilemap"
)

// memStore keeps snapshots in memory, oldest first.
type memStore struct {
	entries []storage.SnapshotEntry
}

func (s *memStore) SaveSnapshot(name string, mapIndex int, blob []byte) (string, error) {
	id := fmt.Sprintf("snapshot-%d", len(s.entries)+1)
	s.entries = append(s.entries, storage.SnapshotEntry{
		ID: id, Name: name, MapIndex: mapIndex, Size: len(blob), Data: blob,
	})
	return id, nil
}

func (s *memStore) LatestSnapshot(name string) (*storage.SnapshotEntry, error) {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Name == name {
			e := s.entries[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (s *memStore) ListSnapshots() ([]storage.SnapshotEntry, error) {
	var out []storage.SnapshotEntry
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		e.Data = nil
		out = append(out, e)
	}
	return out, nil
}

func (s *memStore) DeleteSnapshots(name string) (int64, error) {
	kept := s.entries[:0]
	var n int64
	for _, e := range s.entries {
		if e.Name == name {
			n++
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return n, nil
}

func newTestState(t *testing.T) *game.State {
	t.Helper()
	tiles := tilemap.New(8, 1, tilemap.DefaultTileSize)
	tiles.SetBaseLight(255)
	cells := interactives.New(interactives.DefaultTuning())
	cells.Reset(8, 1)
	cells.SetMap(tiles)
	cells.SetUnderneath(grid.L(6, 0), interactives.UnderneathPopupBlock)
	lv := &mapfile.Level{Name: "map0", Spawn: grid.L(0, 0), Tiles: tiles, Cells: cells}

	st, err := game.New([]*mapfile.Level{lv}, 0, config.DefaultEngineConfig(), nil)
	require.NoError(t, err)
	return st
}

func newTestModel(t *testing.T, store Saver) Model {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60}
	return NewModel(newTestState(t), store, Options{Runtime: cfg})
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func ticks(n int) []tea.Msg {
	msgs := make([]tea.Msg, n)
	for i := range msgs {
		msgs[i] = TickMsg{}
	}
	return msgs
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{name: "arrow left", msg: tea.KeyMsg{Type: tea.KeyLeft}, want: core.ActionMoveLeft},
		{name: "a", msg: runeKey('a'), want: core.ActionMoveLeft},
		{name: "w", msg: runeKey('w'), want: core.ActionMoveUp},
		{name: "arrow right", msg: tea.KeyMsg{Type: tea.KeyRight}, want: core.ActionMoveRight},
		{name: "s", msg: runeKey('s'), want: core.ActionMoveDown},
		{name: "e", msg: runeKey('e'), want: core.ActionActivate},
		{name: "enter", msg: tea.KeyMsg{Type: tea.KeyEnter}, want: core.ActionActivate},
		{name: "space", msg: runeKey(' '), want: core.ActionAttack},
		{name: "f", msg: runeKey('f'), want: core.ActionFire},
		{name: "tab", msg: tea.KeyMsg{Type: tea.KeyTab}, want: core.ActionCycleElement},
		{name: "b", msg: runeKey('b'), want: core.ActionBomb},
		{name: "ctrl+s", msg: tea.KeyMsg{Type: tea.KeyCtrlS}, want: core.ActionSave},
		{name: "ctrl+l", msg: tea.KeyMsg{Type: tea.KeyCtrlL}, want: core.ActionLoad},
		{name: "esc", msg: tea.KeyMsg{Type: tea.KeyEsc}, want: core.ActionPause},
		{name: "q", msg: runeKey('q'), want: core.ActionQuit},
		{name: "ctrl+c", msg: tea.KeyMsg{Type: tea.KeyCtrlC}, want: core.ActionQuit},
		{name: "unbound", msg: runeKey('z'), want: core.ActionNone},
		{name: "help", msg: runeKey('?'), want: core.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keys.Action(tt.msg))
		})
	}
}

func TestKeyPressHoldsMovementBriefly(t *testing.T) {
	m := newTestModel(t, nil)
	start := m.state.Player().Pos.X

	m = send(m, tea.KeyMsg{Type: tea.KeyRight})
	m = send(m, ticks(3)...)
	moved := m.state.Player().Pos.X
	assert.Greater(t, moved, start)
	assert.Equal(t, grid.DirRight, m.state.Player().Facing())

	// The hold runs out and the player stops.
	m = send(m, ticks(30)...)
	stopped := m.state.Player().Pos.X
	m = send(m, ticks(10)...)
	assert.Equal(t, stopped, m.state.Player().Pos.X)
}

func TestActionKeysReachTheGame(t *testing.T) {
	m := newTestModel(t, nil)

	m = send(m, runeKey('p'), TickMsg{})
	assert.True(t, m.state.Paused())

	m = send(m, runeKey('p'), TickMsg{})
	assert.False(t, m.state.Paused())

	m = send(m, tea.KeyMsg{Type: tea.KeyTab}, TickMsg{})
	assert.Equal(t, "Element: fire", m.state.Status())
}

func TestSaveAndLoad(t *testing.T) {
	store := &memStore{}
	m := newTestModel(t, store)
	popup := grid.L(6, 0)

	m.state.Level().Cells.Activate(popup)
	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Len(t, store.entries, 1)
	assert.Equal(t, DefaultSlot, store.entries[0].Name)
	assert.Equal(t, "Saved to quicksave", m.state.Status())

	m.state.Level().Cells.Activate(popup)
	require.False(t, m.state.Level().Cells.Cell(popup).Underneath.PopupBlock.Up)

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, "Loaded quicksave", m.state.Status())
	assert.True(t, m.state.Level().Cells.Cell(popup).Underneath.PopupBlock.Up)
}

func TestLoadEmptySlot(t *testing.T) {
	m := newTestModel(t, &memStore{})

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, "No save in quicksave", m.state.Status())
}

func TestSaveWithoutStore(t *testing.T) {
	m := newTestModel(t, nil)

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, "Saving is disabled", m.state.Status())
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, nil)

	next, cmd := m.Update(runeKey('q'))
	m = next.(Model)
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestViewAndResize(t *testing.T) {
	m := newTestModel(t, nil)

	m = send(m, tea.WindowSizeMsg{Width: 80, Height: 10})
	assert.Equal(t, 80, m.screen.Width())
	assert.Equal(t, 10, m.screen.Height())
	assert.Contains(t, m.View(), "map0")

	m = send(m, runeKey('?'))
	assert.True(t, m.showHelp)
	assert.Equal(t, 10-m.helpHeight(), m.screen.Height())
	assert.Contains(t, m.View(), "screenshot")

	m = send(m, runeKey('?'))
	assert.Equal(t, 10, m.screen.Height())
}
