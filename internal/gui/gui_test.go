//go:build !nogui

package gui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seeker/internal/config"
	"seeker/internal/dialog"
	"seeker/internal/store"
	"seeker/pkg/testutils"
)

func newTestApp(t *testing.T, ignore ...string) (*App, string) {
	t.Helper()
	root := testutils.DialogFixture(t)
	repo, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	cfg := config.New()
	cfg.Dialog.StartDir = root
	cfg.Dialog.ShowDetailsType = false
	cfg.Dialog.Ignore = ignore

	a, err := NewApp(test.NewApp(), Options{Config: cfg, Store: repo, Version: "test"})
	require.NoError(t, err)
	a.spawn = func(f func()) { f() }
	t.Cleanup(func() {
		a.mu.Lock()
		a.stopToastTimer()
		a.mu.Unlock()
	})
	return a, root
}

// rowButtons returns the row buttons of the listing column at index i.
func rowButtons(t *testing.T, a *App, i int) []*widget.Button {
	t.Helper()
	require.Greater(t, len(a.files.columns.Objects), i)
	stack := a.files.columns.Objects[i].(*fyne.Container)
	scroll, ok := stack.Objects[1].(*container.Scroll)
	require.True(t, ok, "column %d is not a listing", i)
	var out []*widget.Button
	for _, o := range scroll.Content.(*fyne.Container).Objects {
		out = append(out, o.(*widget.Button))
	}
	return out
}

func findRow(t *testing.T, a *App, i int, name string) *widget.Button {
	t.Helper()
	for _, b := range rowButtons(t, a, i) {
		if b.Text == name || strings.HasPrefix(b.Text, name+"  ") {
			return b
		}
	}
	t.Fatalf("no row %q in column %d", name, i)
	return nil
}

func TestOpenDialogSwapsWindows(t *testing.T) {
	a, root := newTestApp(t)
	assert.True(t, a.hostShown)
	assert.False(t, a.dialogShown)

	test.Tap(a.home.openBtn)
	assert.False(t, a.hostShown)
	assert.True(t, a.dialogShown)
	assert.Equal(t, root, a.files.root.Text)
	assert.Len(t, a.files.columns.Objects, 1)
	assert.Len(t, rowButtons(t, a, 0), 3)

	test.Tap(a.files.buttons[dialog.ActionCancel])
	assert.True(t, a.hostShown)
	assert.False(t, a.dialogShown)
	assert.Empty(t, a.files.columns.Objects)
	assert.Equal(t, 0, a.coord.Tree().Len())
}

func TestNavigateColumns(t *testing.T) {
	a, _ := newTestApp(t)
	test.Tap(a.home.openBtn)

	docs := findRow(t, a, 0, "docs")
	assert.Equal(t, "docs  >", docs.Text)
	test.Tap(docs)
	require.Len(t, a.files.columns.Objects, 2)
	assert.Equal(t, widget.HighImportance, findRow(t, a, 0, "docs").Importance, "row feeding the next column is pressed")
	findRow(t, a, 1, "guide.md")

	test.Tap(findRow(t, a, 1, "guide.md"))
	require.Len(t, a.files.columns.Objects, 3)

	test.Tap(findRow(t, a, 0, "notes.txt"))
	assert.Len(t, a.files.columns.Objects, 2)
}

func TestStaleLoadDropped(t *testing.T) {
	a, _ := newTestApp(t)
	var queued []func()
	a.spawn = func(f func()) { queued = append(queued, f) }
	test.Tap(a.home.openBtn)

	test.Tap(findRow(t, a, 0, "docs"))
	test.Tap(findRow(t, a, 0, "src"))
	require.Len(t, queued, 2)
	queued[1]()
	queued[0]()

	cols := a.coord.Session().Columns()
	require.Len(t, cols, 2)
	assert.Equal(t, "src", filepath.Base(cols[1].Source))
}

func TestNewFolderWindow(t *testing.T) {
	a, root := newTestApp(t)
	test.Tap(a.home.openBtn)
	test.Tap(findRow(t, a, 0, "docs"))

	test.Tap(a.files.buttons[dialog.ActionNewFolder])
	assert.True(t, a.folderShown)
	assert.False(t, a.dialogShown)

	c := a.folderWin.Canvas()
	test.TypeOnCanvas(c, "assetz")
	c.OnTypedKey()(&fyne.KeyEvent{Name: fyne.KeyBackspace})
	test.TypeOnCanvas(c, "s")
	assert.Equal(t, "assets", a.coord.NewFolder().Buffer.String())
	assert.Contains(t, a.folder.name.Text, "assets")

	test.TapAt(a.folder.area, fyne.NewPos(12, 34))
	ime := a.coord.NewFolder().IME
	assert.True(t, ime.Enabled)
	assert.Equal(t, float32(12), ime.X)
	assert.Equal(t, float32(34), ime.Y)
	assert.Equal(t, "IME on at 12,34", a.folder.ime.Text)

	test.Tap(a.folder.create)
	assert.False(t, a.folderShown)
	assert.True(t, a.dialogShown)
	assert.DirExists(t, filepath.Join(root, "docs", "assets"))
	findRow(t, a, 1, "assets")
}

func TestNewFolderCancel(t *testing.T) {
	a, root := newTestApp(t)
	test.Tap(a.home.openBtn)
	test.Tap(findRow(t, a, 0, "docs"))
	test.Tap(a.files.buttons[dialog.ActionNewFolder])
	test.TypeOnCanvas(a.folderWin.Canvas(), "x")

	a.folderWin.Canvas().OnTypedKey()(&fyne.KeyEvent{Name: fyne.KeyEscape})
	assert.False(t, a.folderShown)
	assert.True(t, a.dialogShown)
	assert.NoDirExists(t, filepath.Join(root, "docs", "x"))
}

func TestToastsExpire(t *testing.T) {
	a, _ := newTestApp(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return now }
	test.Tap(a.home.openBtn)
	test.Tap(a.files.buttons[dialog.ActionNewFolder])

	c := a.folderWin.Canvas()
	test.TypeOnCanvas(c, "draft")
	c.OnTypedKey()(&fyne.KeyEvent{Name: fyne.KeyReturn})
	require.Len(t, a.folder.toasts.Objects, 1)
	assert.Equal(t, 0, a.coord.NewFolder().Buffer.Len())

	now = now.Add(dialog.ToastLifetime)
	a.mu.Lock()
	a.stopToastTimer()
	a.sweepToasts()
	a.mu.Unlock()
	assert.Empty(t, a.folder.toasts.Objects)
	assert.Empty(t, a.coord.NewFolder().Toasts())
}

func TestOpenRecordsProject(t *testing.T) {
	a, root := newTestApp(t)
	test.Tap(a.home.openBtn)
	test.Tap(findRow(t, a, 0, "src"))
	test.Tap(a.files.buttons[dialog.ActionOpen])

	assert.True(t, a.hostShown)
	assert.False(t, a.dialogShown)
	assert.Equal(t, dialog.ModeEdit, a.coord.Mode())
	assert.Equal(t, filepath.Join(root, "src"), a.editPath)
	require.Len(t, a.projects, 1)
	assert.Equal(t, "src", a.projects[0].Name)

	a.backHome()
	assert.Equal(t, dialog.ModeHome, a.coord.Mode())

	a.home.projects.Select(0)
	assert.Equal(t, dialog.ModeEdit, a.coord.Mode())
}

// labels collects the text of every label under o.
func labels(o fyne.CanvasObject) []string {
	switch v := o.(type) {
	case *widget.Label:
		return []string{v.Text}
	case *container.Scroll:
		return labels(v.Content)
	case *fyne.Container:
		var out []string
		for _, child := range v.Objects {
			out = append(out, labels(child)...)
		}
		return out
	}
	return nil
}

func TestEditViewUsesIgnorePatterns(t *testing.T) {
	a, root := newTestApp(t, "*.txt")

	text := strings.Join(labels(a.home.editContent(root)), "\n")
	assert.Contains(t, text, "docs")
	assert.Contains(t, text, "src")
	assert.NotContains(t, text, "notes.txt")
	assert.NotContains(t, text, ".hidden")
}

func TestThemeSelection(t *testing.T) {
	a, _ := newTestApp(t)
	a.cfgPath = filepath.Join(t.TempDir(), "config.toml")

	a.home.themes.SetSelected("light")
	assert.Equal(t, "light", a.cfg.WindowTheme)

	saved, err := config.LoadConfigFile(a.cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "light", saved.WindowTheme)
}

func TestThemeColors(t *testing.T) {
	p := config.GetTheme("dark")
	th := newTheme(p, 16)

	assert.Equal(t, p.Hovered.NRGBA(), th.Color(theme.ColorNameHover, theme.VariantDark))
	assert.Equal(t, p.Pressed.NRGBA(), th.Color(theme.ColorNamePrimary, theme.VariantDark))
	assert.Equal(t, p.Background.NRGBA(), th.Color(theme.ColorNameBackground, theme.VariantDark))
	assert.Equal(t, float32(16), th.Size(theme.SizeNameText))
	assert.Equal(t, theme.DefaultTheme().Size(theme.SizeNamePadding), th.Size(theme.SizeNamePadding))
}
