package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/game"
	"github.com/vovakirdan/tilequest/internal/grid"
	"github.com/vovakirdan/tilequest/internal/storage"
)

// holdSeconds is how long one key press keeps the player walking. Terminals
// only report presses, so a held key shows up as a stream of repeats.
const holdSeconds = 0.15

// DefaultSlot is the save slot used when none is given.
const DefaultSlot = "quicksave"

// Saver is the part of the save store the model uses.
type Saver interface {
	SaveSnapshot(name string, mapIndex int, blob []byte) (string, error)
	LatestSnapshot(name string) (*storage.SnapshotEntry, error)
}

// Options configures a play session.
type Options struct {
	Runtime core.RuntimeConfig
	Slot    string // Save slot for ctrl+s and ctrl+l
	Logger  *log.Logger
}

// Model is the Bubble Tea model for a play session.
type Model struct {
	state  *game.State
	screen *core.Screen
	store  Saver
	config core.RuntimeConfig
	slot   string
	logger *log.Logger

	keys       KeyMap
	help       help.Model
	showHelp   bool
	inputFrame core.InputFrame
	held       grid.Direction
	holdLeft   float64
	quitting   bool
}

// NewModel creates a Bubble Tea model for the given session. A nil store
// disables saving and loading; pass an untyped nil, not a nil *storage.Store.
func NewModel(state *game.State, store Saver, opts Options) Model {
	if opts.Slot == "" {
		opts.Slot = DefaultSlot
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	cfg := opts.Runtime
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		state:      state,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		slot:       opts.Slot,
		logger:     opts.Logger,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		held:       grid.DirNone,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.resizeScreen(m.config.ScreenW, m.config.ScreenH)
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionSave:
		m.save()
	case core.ActionLoad:
		m.load()
	case core.ActionNone:
	default:
		if dir := action.MoveDirection(); dir.Valid() {
			m.held = dir
			m.holdLeft = holdSeconds
		} else {
			m.inputFrame.Set(action)
		}
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.resizeScreen(msg.Width, msg.Height)
	return m, nil
}

func (m *Model) resizeScreen(w, h int) {
	if m.showHelp {
		h -= m.helpHeight()
	}
	m.screen.Resize(w, max(h, 0))
}

// helpHeight is the number of lines the full help view takes.
func (m *Model) helpHeight() int {
	lines := 0
	for _, group := range m.keys.FullHelp() {
		lines = max(lines, len(group))
	}
	return lines
}

// handleTick runs one simulation tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	dt := m.config.TickSeconds()
	if m.holdLeft > 0 {
		m.inputFrame.Set(moveAction(m.held))
		m.holdLeft -= dt
	}

	m.state.Update(m.inputFrame, dt)

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

func moveAction(d grid.Direction) core.Action {
	switch d {
	case grid.DirLeft:
		return core.ActionMoveLeft
	case grid.DirUp:
		return core.ActionMoveUp
	case grid.DirRight:
		return core.ActionMoveRight
	case grid.DirDown:
		return core.ActionMoveDown
	default:
		return core.ActionNone
	}
}

// save writes the session to the save slot.
func (m *Model) save() {
	if m.store == nil {
		m.state.SetStatus("Saving is disabled")
		return
	}
	snap, err := m.state.Snapshot()
	if err == nil {
		_, err = m.store.SaveSnapshot(m.slot, snap.MapIndex, snap.Data)
	}
	if err != nil {
		m.logger.Error("save failed", "slot", m.slot, "err", err)
		m.state.SetStatus("Save failed")
		return
	}
	m.logger.Info("saved", "slot", m.slot, "map", snap.MapIndex, "bytes", len(snap.Data))
	m.state.SetStatus("Saved to " + m.slot)
}

// load restores the newest snapshot of the save slot.
func (m *Model) load() {
	if m.store == nil {
		m.state.SetStatus("Saving is disabled")
		return
	}
	entry, err := m.store.LatestSnapshot(m.slot)
	if err == nil && entry == nil {
		m.state.SetStatus("No save in " + m.slot)
		return
	}
	if err == nil {
		err = m.state.Restore(game.Snapshot{MapIndex: entry.MapIndex, Data: entry.Data})
	}
	if err != nil {
		m.logger.Error("load failed", "slot", m.slot, "err", err)
		m.state.SetStatus("Load failed")
		return
	}
	m.logger.Info("loaded", "slot", m.slot, "id", entry.ID)
	m.state.SetStatus("Loaded " + m.slot)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.state.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".tilequest", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("map%d_%s.txt", m.state.LevelIndex(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.state.SetStatus("Screenshot saved")
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.state.Render(m.screen)
	view := RenderScreen(m.screen)
	if m.showHelp {
		view += "\n" + m.help.FullHelpView(m.keys.FullHelp())
	}
	return view
}

// Run starts the Bubble Tea program for the session.
func Run(state *game.State, store Saver, opts Options) error {
	model := NewModel(state, store, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
