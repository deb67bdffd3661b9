package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilequest/internal/core"
)

// KeyMap defines the key bindings for play. It implements help.KeyMap.
type KeyMap struct {
	Left       key.Binding
	Up         key.Binding
	Right      key.Binding
	Down       key.Binding
	Activate   key.Binding
	Attack     key.Binding
	Fire       key.Binding
	Cycle      key.Binding
	Bomb       key.Binding
	Save       key.Binding
	Load       key.Binding
	Pause      key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default play bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Activate: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "use"),
		),
		Attack: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "attack"),
		),
		Fire: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fire"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "element"),
		),
		Bomb: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bomb"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("^s", "save"),
		),
		Load: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("^l", "load"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("f12"),
			key.WithHelp("f12", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.Attack, k.Fire, k.Cycle, k.Bomb, k.Help, k.Quit}
}

// FullHelp returns bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Up, k.Right, k.Down},
		{k.Activate, k.Attack, k.Fire, k.Cycle, k.Bomb},
		{k.Save, k.Load, k.Pause, k.Screenshot, k.Help, k.Quit},
	}
}

// Action translates a key message to a game action, or ActionNone.
// Help and screenshot keys are handled by the model and map to ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Left):
		return core.ActionMoveLeft
	case key.Matches(msg, k.Up):
		return core.ActionMoveUp
	case key.Matches(msg, k.Right):
		return core.ActionMoveRight
	case key.Matches(msg, k.Down):
		return core.ActionMoveDown
	case key.Matches(msg, k.Activate):
		return core.ActionActivate
	case key.Matches(msg, k.Attack):
		return core.ActionAttack
	case key.Matches(msg, k.Fire):
		return core.ActionFire
	case key.Matches(msg, k.Cycle):
		return core.ActionCycleElement
	case key.Matches(msg, k.Bomb):
		return core.ActionBomb
	case key.Matches(msg, k.Save):
		return core.ActionSave
	case key.Matches(msg, k.Load):
		return core.ActionLoad
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	}
	return core.ActionNone
}
