package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"seeker/internal/tui/common"
)

// keyMap defines key bindings for each user action.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Select    key.Binding
	OpenProj  key.Binding
	Browse    key.Binding
	Commit    key.Binding
	NewFolder key.Binding
	Cancel    key.Binding
	Create    key.Binding
	ToggleIME key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous column")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "enter")),
		Select:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		OpenProj:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit project")),
		Browse:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open folder")),
		Commit:    key.NewBinding(key.WithKeys("o", "ctrl+o"), key.WithHelp("o", "open")),
		NewFolder: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new folder")),
		Cancel:    key.NewBinding(key.WithKeys("esc", "c"), key.WithHelp("esc", "cancel")),
		Create:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "create")),
		ToggleIME: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "toggle IME")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "home")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// bindings lists the keys that work on a screen, for the help line.
func (k keyMap) bindings(s common.Screen) []key.Binding {
	switch s {
	case common.Dialog:
		return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Select, k.NewFolder, k.Commit, k.Cancel}
	case common.NewFolder:
		return []key.Binding{k.Create, k.Cancel, k.ToggleIME}
	case common.Edit:
		return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
	}
	return []key.Binding{k.Up, k.Down, k.OpenProj, k.Browse, k.Help, k.Quit}
}
