package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilequest/internal/storage"
)

// SaveLister is the part of the save store the browser uses.
type SaveLister interface {
	ListSnapshots() ([]storage.SnapshotEntry, error)
	DeleteSnapshots(name string) (int64, error)
}

// SavesKeyMap defines the key bindings for the save browser.
type SavesKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns bindings for the short help view.
func (k SavesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Delete, k.Quit}
}

// FullHelp returns bindings for the full help view.
func (k SavesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultSavesKeyMap returns the default save browser bindings.
func DefaultSavesKeyMap() SavesKeyMap {
	return SavesKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete slot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SavesModel is the Bubble Tea model for browsing save slots.
type SavesModel struct {
	store    SaveLister
	entries  []storage.SnapshotEntry
	table    table.Model
	help     help.Model
	keys     SavesKeyMap
	width    int
	height   int
	err      error
	quitting bool
}

// NewSavesModel creates a save browser over store.
func NewSavesModel(store SaveLister, width, height int) SavesModel {
	m := SavesModel{
		store:  store,
		keys:   DefaultSavesKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

// createTable creates a new table sized to the window.
func (m *SavesModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Slot", Width: 16},
		{Title: "Map", Width: 5},
		{Title: "Size", Width: 8},
		{Title: "Saved", Width: 14},
		{Title: "ID", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-6, 3)), // Leave room for title and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// reload reads the snapshots from the store and refreshes the table.
func (m *SavesModel) reload() {
	m.entries, m.err = m.store.ListSnapshots()

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			e.Name,
			fmt.Sprintf("%d", e.MapIndex),
			fmt.Sprintf("%d B", e.Size),
			e.CreatedAt.Format("Jan 02 15:04"),
			shortID(e.ID),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Init initializes the save browser.
func (m SavesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the save browser.
func (m SavesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Delete):
			if i := m.table.Cursor(); i >= 0 && i < len(m.entries) {
				if _, err := m.store.DeleteSnapshots(m.entries[i].Name); err != nil {
					m.err = err
					return m, nil
				}
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.reload()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the save browser.
func (m SavesModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render("SAVE SLOTS"))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case m.err != nil:
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error()))
	case len(m.entries) == 0:
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(emptyStyle.Render("No saves yet.\nPress ctrl+s while playing to save."))
	default:
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Entries returns the snapshots currently listed.
func (m SavesModel) Entries() []storage.SnapshotEntry {
	return m.entries
}

// RunSaves runs the save browser.
func RunSaves(store SaveLister, width, height int) error {
	p := tea.NewProgram(
		NewSavesModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
