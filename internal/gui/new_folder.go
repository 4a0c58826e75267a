//go:build !nogui

package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"seeker/internal/dialog"
)

// clickArea reports taps on the New-Folder window's background.
type clickArea struct {
	widget.BaseWidget
	onTap func(pos fyne.Position)
}

func newClickArea(onTap func(fyne.Position)) *clickArea {
	c := &clickArea{onTap: onTap}
	c.ExtendBaseWidget(c)
	return c
}

func (c *clickArea) Tapped(ev *fyne.PointEvent) {
	c.onTap(ev.Position)
}

func (c *clickArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(layout.NewSpacer())
}

// newFolderView is the content of the New-Folder window. Typing goes to
// the sub-dialog's buffer through the window canvas rather than an entry
// widget, so the buffer rules apply to every key.
type newFolderView struct {
	app     *App
	name    *widget.Label
	ime     *widget.Label
	toasts  *fyne.Container
	cancel  *widget.Button
	create  *widget.Button
	area    *clickArea
	content fyne.CanvasObject
}

func newNewFolderView(a *App) *newFolderView {
	v := &newFolderView{
		app:    a,
		name:   widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Monospace: true}),
		ime:    widget.NewLabel(""),
		toasts: container.NewVBox(),
	}
	v.cancel = widget.NewButton("Cancel", func() { a.Dispatch(dialog.ActionNewFolderCancel) })
	v.create = widget.NewButton("Create", func() { a.Dispatch(dialog.ActionNewFolderCreate) })
	v.create.Importance = widget.HighImportance
	v.area = newClickArea(v.click)

	form := container.NewVBox(
		widget.NewLabelWithStyle("New Folder", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		v.name,
		v.ime,
		v.toasts,
		container.NewHBox(layout.NewSpacer(), v.cancel, v.create),
	)
	v.content = container.NewStack(v.area, form)
	return v
}

func (v *newFolderView) bindCanvas(c fyne.Canvas) {
	c.SetOnTypedRune(v.typedRune)
	c.SetOnTypedKey(v.typedKey)
	c.AddShortcut(&fyne.ShortcutPaste{}, func(fyne.Shortcut) { v.paste() })
}

func (v *newFolderView) typedRune(r rune) {
	v.withFolder(func(nf *dialog.NewFolder) {
		nf.HandleKey(dialog.KeyEvent{Key: dialog.KeyText, Text: string(r)})
	})
}

func (v *newFolderView) typedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyReturn, fyne.KeyEnter:
		v.withFolder(func(nf *dialog.NewFolder) {
			nf.HandleKey(dialog.KeyEvent{Key: dialog.KeyEnter})
			v.app.scheduleToastSweep()
		})
	case fyne.KeyBackspace:
		v.withFolder(func(nf *dialog.NewFolder) {
			nf.HandleKey(dialog.KeyEvent{Key: dialog.KeyBackspace})
		})
	case fyne.KeyEscape:
		v.app.Dispatch(dialog.ActionNewFolderCancel)
	}
}

// paste commits clipboard text the way an input method commits a
// composition.
func (v *newFolderView) paste() {
	text := v.app.folderWin.Clipboard().Content()
	v.withFolder(func(nf *dialog.NewFolder) {
		nf.HandleIME(dialog.IMEEvent{Kind: dialog.IMECommit, Text: text})
	})
}

func (v *newFolderView) click(pos fyne.Position) {
	v.withFolder(func(nf *dialog.NewFolder) {
		nf.Click(pos.X, pos.Y)
	})
}

func (v *newFolderView) withFolder(f func(nf *dialog.NewFolder)) {
	a := v.app
	a.mu.Lock()
	defer a.mu.Unlock()
	nf := a.coord.NewFolder()
	if nf == nil {
		return
	}
	f(nf)
	v.refresh()
}

// refresh redraws the buffer, the input method state and the toasts. The
// caller holds the app lock.
func (v *newFolderView) refresh() {
	nf := v.app.coord.NewFolder()
	if nf == nil {
		v.name.SetText("")
		v.ime.SetText("")
		v.toasts.Objects = nil
		v.toasts.Refresh()
		return
	}
	v.name.SetText(fmt.Sprintf("%s_  (%d/%d)", nf.Buffer.String(), nf.Buffer.Len(), dialog.MaxFolderNameLen))

	ime := "IME off"
	if nf.IME.Enabled {
		ime = fmt.Sprintf("IME on at %.0f,%.0f", nf.IME.X, nf.IME.Y)
	}
	v.ime.SetText(ime)

	var objects []fyne.CanvasObject
	for _, t := range nf.Toasts() {
		objects = append(objects, widget.NewLabel(t.Text))
	}
	v.toasts.Objects = objects
	v.toasts.Refresh()
}
