package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"seeker/internal/dialog"
	"seeker/internal/tui/styles"
)

// Geometry of the New-Folder modal: a bordered box with one column of
// padding drawn at the top left of the screen.
const (
	ModalInset     = 2
	ModalButtonRow = 4
	modalHeight    = 6
)

const inputPrompt = "> "

// ModalWidth is the inner width of the New-Folder modal.
func ModalWidth() int {
	return max(lipgloss.Width(inputPrompt)+dialog.MaxFolderNameLen+1, 24)
}

// InModal reports whether the screen cell lies inside the modal box.
func InModal(x, y int) bool {
	return x >= 0 && y >= 0 && y < modalHeight && x < ModalWidth()+2
}

// folderInput mirrors the sub-dialog's text buffer in a textinput so the
// terminal shows the cursor. The buffer stays authoritative.
func folderInput(nf *dialog.NewFolder) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "folder name"
	ti.CharLimit = dialog.MaxFolderNameLen
	ti.Width = dialog.MaxFolderNameLen
	ti.Prompt = inputPrompt
	ti.Focus()
	if nf != nil {
		ti.SetValue(nf.Buffer.String())
		ti.CursorEnd()
	}
	return ti
}

// NewFolderView renders the modal and the toasts below it. hovered is the
// button under the pointer or -1.
func NewFolderView(theme styles.Theme, nf *dialog.NewFolder, hovered int) string {
	input := folderInput(nf)

	var b strings.Builder
	b.WriteString(theme.Title.Render("New Folder"))
	b.WriteString("\n")
	b.WriteString(input.View())
	b.WriteString("\n")
	b.WriteString(theme.Muted.Render(imeLine(nf)))
	b.WriteString("\n")
	b.WriteString(ButtonBar(theme, NewFolderButtons, hovered))

	out := theme.Modal.Width(ModalWidth()).Render(b.String())
	if nf == nil {
		return out
	}
	for _, t := range nf.Toasts() {
		out += "\n" + theme.Toast.Render(t.Text)
	}
	return out
}

func imeLine(nf *dialog.NewFolder) string {
	if nf == nil || !nf.IME.Enabled {
		return "IME off"
	}
	return fmt.Sprintf("IME on at %.0f,%.0f", nf.IME.X, nf.IME.Y)
}
