package dialog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"seeker/internal/errors"
	"seeker/internal/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWindows struct {
	host, dialog, newFolder bool
	calls                   []string
}

func (w *recordingWindows) SetHostVisible(v bool) {
	w.host = v
	w.calls = append(w.calls, visibility("host", v))
}

func (w *recordingWindows) SetDialogVisible(v bool) {
	w.dialog = v
	w.calls = append(w.calls, visibility("dialog", v))
}

func (w *recordingWindows) SetNewFolderVisible(v bool) {
	w.newFolder = v
	w.calls = append(w.calls, visibility("new-folder", v))
}

func visibility(name string, v bool) string {
	if v {
		return "show " + name
	}
	return "hide " + name
}

type harness struct {
	c         *Coordinator
	win       *recordingWindows
	clock     *fakeClock
	committed []string
	root      string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		win:   &recordingWindows{host: true},
		clock: &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		root:  makeFixture(t),
	}
	h.c = NewCoordinator(Options{
		StartDir: func() (string, error) { return h.root, nil },
		Windows:  h.win,
		Now:      h.clock.Now,
		OnCommit: func(p string) { h.committed = append(h.committed, p) },
	})
	return h
}

func (h *harness) column(t *testing.T, level Level) Column {
	t.Helper()
	for _, c := range h.c.Session().Columns() {
		if c.Level == level {
			return c
		}
	}
	t.Fatalf("no column at level %d", level)
	return Column{}
}

func (h *harness) typeName(name string) {
	for _, r := range name {
		h.c.NewFolder().HandleKey(KeyEvent{Key: KeyText, Text: string(r)})
	}
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.Configure(log.WithOutput(&buf))
	t.Cleanup(func() { log.Configure() })
	return &buf
}

func TestOpenDialog(t *testing.T) {
	h := newHarness(t)

	require.True(t, h.c.OpenDialog())
	assert.Equal(t, DialogOpen, h.c.DialogState())
	assert.Equal(t, NewFolderNone, h.c.NewFolderState())
	assert.Equal(t, ModeHome, h.c.Mode())
	assert.False(t, h.win.host)
	assert.True(t, h.win.dialog)
	assert.Equal(t, []string{"hide host", "show dialog"}, h.win.calls)

	cols := h.c.Session().Columns()
	require.Len(t, cols, 1)
	assert.Equal(t, RootLevel, cols[0].Level)
	assert.Equal(t, h.root, cols[0].Source)

	assert.False(t, h.c.OpenDialog(), "already open")
}

func TestOpenDialogResetsSelection(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.c.OpenDialog())
	h.c.Session().Select(entryNamed(t, h.column(t, 1), "docs"))
	h.c.Dispatch(ActionCancel)

	require.True(t, h.c.OpenDialog())
	_, ok := h.c.Session().Selection()
	assert.False(t, ok)
	assert.Len(t, h.c.Session().Columns(), 1)
}

func TestOpenDialogWithoutStartDirAborts(t *testing.T) {
	win := &recordingWindows{host: true}
	c := NewCoordinator(Options{
		StartDir: func() (string, error) { return "", errors.New("no home") },
		Windows:  win,
	})

	assert.False(t, c.OpenDialog())
	assert.Equal(t, DialogNone, c.DialogState())
	assert.Empty(t, win.calls)
	assert.Equal(t, 0, c.Tree().Len())
}

func TestCancelTearsEverythingDown(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.c.OpenDialog())
	h.c.Session().Select(entryNamed(t, h.column(t, 1), "docs"))
	h.c.Session().Select(entryNamed(t, h.column(t, 2), "guide.md"))
	require.Greater(t, h.c.Tree().Len(), 0)

	h.c.Dispatch(ActionCancel)

	assert.Equal(t, DialogNone, h.c.DialogState())
	assert.Equal(t, ModeHome, h.c.Mode())
	assert.Equal(t, 0, h.c.Tree().Len(), "no dialog node survives")
	assert.Empty(t, h.c.Session().Columns())
	assert.True(t, h.win.host)
	assert.False(t, h.win.dialog)
	assert.Empty(t, h.committed)
}

func TestOpenCommitsSelection(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.c.OpenDialog())
	docs := entryNamed(t, h.column(t, 1), "docs")
	h.c.Session().Select(docs)

	h.c.Dispatch(ActionOpen)

	assert.Equal(t, ModeEdit, h.c.Mode())
	assert.Equal(t, DialogNone, h.c.DialogState())
	assert.Equal(t, []string{docs.Path}, h.committed)
	assert.Equal(t, 0, h.c.Tree().Len())
	assert.True(t, h.win.host)

	h.c.SetMode(ModeHome)
	assert.Equal(t, ModeHome, h.c.Mode())
}

func TestOpenWithoutSelectionCommitsRoot(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.c.OpenDialog())
	h.c.Dispatch(ActionOpen)
	assert.Equal(t, []string{h.root}, h.committed)
}

func TestActionsIgnoredWhenClosed(t *testing.T) {
	h := newHarness(t)
	for _, a := range []Action{ActionNewFolder, ActionCancel, ActionOpen, ActionNewFolderCancel, ActionNewFolderCreate} {
		h.c.Dispatch(a)
	}
	assert.Equal(t, DialogNone, h.c.DialogState())
	assert.Equal(t, ModeHome, h.c.Mode())
	assert.Empty(t, h.win.calls)
	assert.Empty(t, h.committed)
}

func TestNewFolderVisibility(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.c.OpenDialog())

	h.c.Dispatch(ActionNewFolder)
	assert.Equal(t, NewFolderOpen, h.c.NewFolderState())
	require.NotNil(t, h.c.NewFolder())
	assert.False(t, h.win.dialog)
	assert.True(t, h.win.newFolder)

	h.c.Dispatch(ActionNewFolder)
	assert.Equal(t, []string{"hide host", "show dialog", "hide dialog", "show new-folder"}, h.win.calls)

	h.typeName("discard")
	h.c.Dispatch(ActionNewFolderCancel)
	assert.Equal(t, NewFolderNone, h.c.NewFolderState())
	assert.Nil(t, h.c.NewFolder())
	assert.True(t, h.win.dialog)
	assert.False(t, h.win.newFolder)

	entries, err := os.ReadDir(h.root)
	require.NoError(t, err)
	assert.Len(t, entries, 6, "cancel creates nothing")

	h.c.Dispatch(ActionNewFolder)
	assert.Equal(t, "", h.c.NewFolder().Buffer.String(), "fresh buffer each time")
}

func TestCreateFolder(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.c.OpenDialog())
	docs := entryNamed(t, h.column(t, 1), "docs")
	h.c.Session().Select(docs)

	h.c.Dispatch(ActionNewFolder)
	h.typeName("  test ")
	h.c.Dispatch(ActionNewFolderCreate)

	fi, err := os.Stat(filepath.Join(docs.Path, "test"))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	assert.Equal(t, NewFolderNone, h.c.NewFolderState())
	assert.Equal(t, DialogOpen, h.c.DialogState())
	assert.True(t, h.win.dialog)

	sel, ok := h.c.Session().Selection()
	require.True(t, ok)
	assert.Equal(t, docs, sel, "selection unchanged")

	assert.Equal(t, []string{"drafts", "guide.md", "test"}, entryNames(h.column(t, 2).Entries))
}

func TestCreateFolderFailureIsSwallowed(t *testing.T) {
	buf := captureLog(t)
	h := newHarness(t)
	require.True(t, h.c.OpenDialog())
	docs := entryNamed(t, h.column(t, 1), "docs")
	h.c.Session().Select(docs)

	h.c.Dispatch(ActionNewFolder)
	h.typeName("drafts")
	assert.NotPanics(t, func() { h.c.Dispatch(ActionNewFolderCreate) })

	assert.Equal(t, NewFolderNone, h.c.NewFolderState())
	assert.Equal(t, DialogOpen, h.c.DialogState())
	assert.Contains(t, buf.String(), "folder not created")
	assert.Contains(t, buf.String(), "level=error")
	assert.Contains(t, buf.String(), "error_kind=file_already_exists")
}

func TestCreateFolderNeedsDirectorySelection(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.c.OpenDialog())

	// nothing selected
	h.c.Dispatch(ActionNewFolder)
	h.typeName("orphan")
	h.c.Dispatch(ActionNewFolderCreate)
	_, err := os.Stat(filepath.Join(h.root, "orphan"))
	assert.True(t, os.IsNotExist(err))

	// a file selected
	notes := entryNamed(t, h.column(t, 1), "notes.txt")
	h.c.Session().Select(notes)
	h.c.Dispatch(ActionNewFolder)
	h.typeName("child")
	h.c.Dispatch(ActionNewFolderCreate)
	assert.Equal(t, NewFolderNone, h.c.NewFolderState())

	// blank name
	h.c.Session().Select(entryNamed(t, h.column(t, 1), "src"))
	h.c.Dispatch(ActionNewFolder)
	h.typeName("   ")
	h.c.Dispatch(ActionNewFolderCreate)
	entries, err := os.ReadDir(filepath.Join(h.root, "src"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCreateFolderRejectsPathNames(t *testing.T) {
	buf := captureLog(t)
	h := newHarness(t)
	require.True(t, h.c.OpenDialog())
	h.c.Session().Select(entryNamed(t, h.column(t, 1), "src"))

	h.c.Dispatch(ActionNewFolder)
	h.typeName("../escape")
	h.c.Dispatch(ActionNewFolderCreate)

	_, err := os.Stat(filepath.Join(h.root, "escape"))
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, buf.String(), "invalid folder name")
}

func TestCancelWhileNewFolderOpenDiscardsInput(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.c.OpenDialog())
	h.c.Session().Select(entryNamed(t, h.column(t, 1), "docs"))
	h.c.Dispatch(ActionNewFolder)
	h.typeName("pending")
	h.c.NewFolder().HandleKey(KeyEvent{Key: KeyEnter})

	h.c.Dispatch(ActionCancel)

	assert.Equal(t, DialogNone, h.c.DialogState())
	assert.Equal(t, NewFolderNone, h.c.NewFolderState())
	assert.Nil(t, h.c.NewFolder())
	assert.Equal(t, 0, h.c.Tree().Len())
	assert.False(t, h.win.newFolder)
	assert.True(t, h.win.host)
	_, err := os.Stat(filepath.Join(h.root, "docs", "pending"))
	assert.True(t, os.IsNotExist(err))
}

func TestTickExpiresToasts(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 0, h.c.Tick())

	require.True(t, h.c.OpenDialog())
	h.c.Dispatch(ActionNewFolder)
	h.typeName("hello")
	h.c.NewFolder().HandleKey(KeyEvent{Key: KeyEnter})
	require.Len(t, h.c.NewFolder().Toasts(), 1)

	h.clock.Advance(ToastLifetime)
	assert.Equal(t, 1, h.c.Tick())
	assert.Empty(t, h.c.NewFolder().Toasts())
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "new-folder-create", ActionNewFolderCreate.String())
	assert.Equal(t, "unknown", Action(99).String())
	assert.Equal(t, "edit", ModeEdit.String())
}
