//go:build !nogui

package gui

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"seeker/internal/config"
	"seeker/internal/fsys"
	"seeker/internal/render"
)

// homeView builds the host window: the menu on the left and the project
// list, or the opened project in Edit mode.
type homeView struct {
	app      *App
	openBtn  *widget.Button
	projects *widget.List
	themes   *widget.Select
}

func newHomeView(a *App) *homeView {
	h := &homeView{app: a}
	h.openBtn = widget.NewButton("Open", a.OpenDialog)
	h.themes = widget.NewSelect(config.ListThemes(), nil)
	h.themes.SetSelected(a.cfg.Palette().Name)
	h.themes.OnChanged = a.setTheme

	h.projects = widget.NewList(
		func() int { return len(a.projects) },
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewLabelWithStyle("AA", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
				widget.NewLabel("name"),
				widget.NewLabel("path"),
				widget.NewLabel("when"),
			)
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			p := a.projects[i]
			row := o.(*fyne.Container)
			row.Objects[0].(*widget.Label).SetText(render.ProjectInitials(p.Name))
			row.Objects[1].(*widget.Label).SetText(p.Name)
			row.Objects[2].(*widget.Label).SetText(p.Path)
			row.Objects[3].(*widget.Label).SetText("opened " + humanize.Time(p.CreatedAt))
		},
	)
	h.projects.OnSelected = func(id widget.ListItemID) {
		h.projects.Unselect(id)
		if id < len(a.projects) {
			a.editProject(a.projects[id].Path)
		}
	}
	return h
}

func (h *homeView) content() fyne.CanvasObject {
	a := h.app
	p := a.cfg.Palette()

	title := canvas.NewText("Seeker", p.Font.NRGBA())
	title.TextStyle.Bold = true
	title.TextSize = a.cfg.FontSize * 1.5
	version := canvas.NewText(a.version, p.FontGrey.NRGBA())

	menu := container.NewStack(
		canvas.NewRectangle(p.HomeMenu.NRGBA()),
		container.NewPadded(container.NewVBox(
			title,
			version,
			widget.NewLabel("Projects"),
			h.openBtn,
			widget.NewSeparator(),
			widget.NewLabel("Theme"),
			h.themes,
		)),
	)

	var list fyne.CanvasObject = h.projects
	if len(a.projects) == 0 {
		list = widget.NewLabel("No projects yet. Open a folder to add one.")
	}
	h.projects.Refresh()
	return container.NewBorder(nil, nil, menu, nil,
		container.NewStack(canvas.NewRectangle(p.ProjectList.NRGBA()), list))
}

// editContent shows the opened project with its top level contents.
func (h *homeView) editContent(path string) fyne.CanvasObject {
	header := widget.NewLabelWithStyle(path, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	back := widget.NewButton("Back", h.app.backHome)

	lines := container.NewVBox()
	entries, err := fsys.ReadDir(path, h.app.filter)
	if err != nil {
		lines.Add(widget.NewLabel(err.Error()))
	}
	for _, e := range entries {
		text := e.Name
		if e.IsDir {
			text += string(os.PathSeparator)
		} else if md := fsys.Stat(e.Path); md.HasSize {
			text += "  " + humanize.Bytes(uint64(md.Size)) + "  " + humanize.Time(md.Modified)
		}
		lines.Add(widget.NewLabel(text))
	}
	return container.NewBorder(
		container.NewHBox(back, widget.NewLabel(render.ProjectInitials(filepath.Base(path))), header),
		nil, nil, nil,
		container.NewVScroll(lines),
	)
}
