package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"seeker/internal/dialog"
	"seeker/internal/tui/styles"
)

// Button is a clickable label that dispatches an action.
type Button struct {
	Label  string
	Action dialog.Action
}

var DialogButtons = []Button{
	{Label: "New Folder", Action: dialog.ActionNewFolder},
	{Label: "Cancel", Action: dialog.ActionCancel},
	{Label: "Open", Action: dialog.ActionOpen},
}

var NewFolderButtons = []Button{
	{Label: "Cancel", Action: dialog.ActionNewFolderCancel},
	{Label: "Create", Action: dialog.ActionNewFolderCreate},
}

const buttonGap = "  "

func (b Button) text() string {
	return "[ " + b.Label + " ]"
}

// ButtonBar renders buttons on one line; hovered is the index under the
// pointer or -1.
func ButtonBar(theme styles.Theme, buttons []Button, hovered int) string {
	parts := make([]string, len(buttons))
	for i, b := range buttons {
		parts[i] = theme.Row(b.text(), i == hovered, false)
	}
	return strings.Join(parts, buttonGap)
}

// HitButton returns the index of the button drawn at column x of a bar
// starting at column 0.
func HitButton(buttons []Button, x int) (int, bool) {
	start := 0
	for i, b := range buttons {
		end := start + lipgloss.Width(b.text())
		if x >= start && x < end {
			return i, true
		}
		start = end + len(buttonGap)
	}
	return -1, false
}
