package monitor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap holds every binding the dashboard reacts to.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Kill    key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "move up")),
		Down:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "move down")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select process")),
		Kill:    key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "terminate selected")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh now")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Kill, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Kill, k.Refresh},
		{k.Help, k.Quit},
	}
}

// HandleKeyMsg processes keyboard input against the current snapshot.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Help toggle takes priority
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return true, nil
	}

	// If help is showing, Esc closes it
	if m.showHelp && msg.String() == "esc" {
		m.showHelp = false
		return true, nil
	}

	count := m.snapshot.Len()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.cancel()
		return true, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		return true, m.collectCmd()

	case key.Matches(msg, m.keys.Up):
		m.cursor.MoveUp()
		return true, nil

	case key.Matches(msg, m.keys.Down):
		m.cursor.MoveDown(count)
		return true, nil

	case key.Matches(msg, m.keys.Select):
		m.cursor.Confirm(count)
		return true, nil

	case key.Matches(msg, m.keys.Kill):
		m.terminateSelected()
		return true, nil
	}

	return false, nil
}
