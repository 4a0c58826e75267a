//go:build !nogui

package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"seeker/internal/dialog"
	"seeker/internal/render"
)

// cellWidth approximates one terminal cell at the configured font size, so
// column_width means roughly the same in both frontends.
const cellWidth = 0.6

// fileDialogView is the content of the file dialog window: the Miller
// columns and the button row.
type fileDialogView struct {
	app     *App
	root    *widget.Label
	columns *fyne.Container
	buttons map[dialog.Action]*widget.Button
	content fyne.CanvasObject
}

func newFileDialogView(a *App) *fileDialogView {
	v := &fileDialogView{
		app:     a,
		root:    widget.NewLabel(""),
		columns: container.NewHBox(),
		buttons: make(map[dialog.Action]*widget.Button),
	}
	bar := container.NewHBox(layout.NewSpacer())
	for _, b := range []struct {
		label string
		act   dialog.Action
	}{
		{"New Folder", dialog.ActionNewFolder},
		{"Cancel", dialog.ActionCancel},
		{"Open", dialog.ActionOpen},
	} {
		act := b.act
		btn := widget.NewButton(b.label, func() { a.Dispatch(act) })
		v.buttons[act] = btn
		bar.Add(btn)
	}
	v.buttons[dialog.ActionOpen].Importance = widget.HighImportance

	v.content = container.NewBorder(v.root, bar, nil, nil, container.NewHScroll(v.columns))
	return v
}

// refresh rebuilds the columns from the session. The caller holds the app
// lock.
func (v *fileDialogView) refresh() {
	s := v.app.coord.Session()
	v.root.SetText(s.RootDir())

	var objects []fyne.CanvasObject
	if v.app.coord.DialogState() == dialog.DialogOpen {
		for _, col := range s.Columns() {
			objects = append(objects, v.column(col))
		}
	}
	v.columns.Objects = objects
	v.columns.Refresh()
}

func (v *fileDialogView) width() float32 {
	return float32(v.app.cfg.Dialog.ColumnWidth) * v.app.cfg.FontSize * cellWidth
}

func (v *fileDialogView) column(col dialog.Column) fyne.CanvasObject {
	p := v.app.cfg.Palette()
	bg := canvas.NewRectangle(p.ProjectList.NRGBA())
	bg.StrokeColor = p.ButtonBorder.NRGBA()
	bg.StrokeWidth = 1
	bg.SetMinSize(fyne.NewSize(v.width(), 0))

	items := container.NewVBox()
	if col.Kind == dialog.KindDetail {
		if col.Detail != nil {
			for _, line := range render.DetailLines(*col.Detail) {
				items.Add(widget.NewLabel(line))
			}
		}
		return container.NewStack(bg, items)
	}

	for _, row := range render.Rows(col, v.app.cfg.Dialog.NameWidth, v.app.coord.Session().Pressed) {
		items.Add(v.row(row))
	}
	return container.NewStack(bg, container.NewVScroll(items))
}

func (v *fileDialogView) row(r render.Row) *widget.Button {
	e := r.Entry
	btn := widget.NewButton(r.Text(), func() { v.app.press(e) })
	btn.Alignment = widget.ButtonAlignLeading
	btn.Importance = widget.LowImportance
	if r.Pressed {
		btn.Importance = widget.HighImportance
	}
	return btn
}
