package views

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"seeker/internal/render"
	"seeker/internal/tui/common"
	"seeker/internal/tui/components"
)

// RenderMainView draws whichever screen the model is on.
func RenderMainView(m common.ModelReader) string {
	var body string
	switch m.Screen() {
	case common.Dialog:
		body = renderDialog(m)
	case common.NewFolder:
		body = components.NewFolderView(m.Theme(), m.NewFolder(), m.HoverButton())
	case common.Edit:
		body = renderEdit(m)
	default:
		body = renderHome(m)
	}

	var sb strings.Builder
	sb.WriteString(body)
	if status := m.StatusView(); status != "" {
		sb.WriteString("\n" + status)
	}
	if m.ShowHelp() {
		sb.WriteString("\n" + m.HelpView())
	}
	return m.Theme().App.Render(sb.String())
}

func renderHome(m common.ModelReader) string {
	theme := m.Theme()
	_, height := m.Size()

	menu := theme.Menu.Render("Seeker\n" + theme.Muted.Render(m.Version()) + "\n\nProjects\n\n" +
		components.ButtonBar(theme, []components.Button{{Label: "Open"}}, -1))

	list := components.ProjectList{
		Projects: m.Projects(),
		Cursor:   m.ProjectCursor(),
		Rows:     max(height-4, 5),
		Now:      time.Now(),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, menu, theme.ProjectList.Render(list.View(theme)))
}

func renderDialog(m common.ModelReader) string {
	theme := m.Theme()
	_, height := m.Size()
	layout := components.Layout(height, m.NameWidth(), m.ColumnWidth())

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Open") + " " + theme.Muted.Render(m.RootDir()))
	sb.WriteString("\n\n")
	sb.WriteString(layout.View(m))
	sb.WriteString("\n")
	sb.WriteString(components.ButtonBar(theme, components.DialogButtons, m.HoverButton()))
	return sb.String()
}

func renderEdit(m common.ModelReader) string {
	theme := m.Theme()
	name := ""
	if p := m.EditPath(); p != "" {
		name = render.ProjectInitials(filepath.Base(p))
	}
	header := theme.Avatar.Render(" "+name+" ") + " " + theme.Title.Render(m.EditPath())
	return header + "\n\n" + m.EditView()
}
