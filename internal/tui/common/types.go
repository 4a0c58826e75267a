package common

import (
	"seeker/internal/dialog"
	"seeker/internal/store"
	"seeker/internal/tui/styles"
)

// Screen is what the terminal currently shows. It follows the visibility
// the dialog coordinator assigns to the three windows.
type Screen int

const (
	Home Screen = iota
	Edit
	Dialog
	NewFolder
)

func (s Screen) String() string {
	switch s {
	case Edit:
		return "edit"
	case Dialog:
		return "dialog"
	case NewFolder:
		return "new-folder"
	}
	return "home"
}

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Screen() Screen
	Theme() styles.Theme
	Version() string
	Size() (width, height int)
	ShowHelp() bool
	HelpView() string
	StatusView() string

	Projects() []store.Project
	ProjectCursor() int
	EditPath() string
	EditView() string

	Columns() []dialog.Column
	Focus() (level dialog.Level, row int)
	Hover() (level dialog.Level, row int, ok bool)
	HoverButton() int
	Offset(level dialog.Level) int
	Pressed(e dialog.Entry) bool
	RootDir() string
	NameWidth() int
	ColumnWidth() int

	NewFolder() *dialog.NewFolder
}
