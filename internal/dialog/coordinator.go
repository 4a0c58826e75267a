package dialog

import (
	"path/filepath"
	"strings"
	"time"

	"seeker/internal/errors"
	"seeker/internal/fsys"
	"seeker/internal/log"
)

// Windows is implemented by a frontend to show and hide its three windows.
type Windows interface {
	SetHostVisible(visible bool)
	SetDialogVisible(visible bool)
	SetNewFolderVisible(visible bool)
}

// Options configures a Coordinator.
type Options struct {
	// StartDir resolves the directory the dialog opens in. An error aborts
	// the open without any visible effect.
	StartDir func() (string, error)
	Filter   *fsys.Filter
	// DetectType fills the MIME type of files shown in detail columns.
	DetectType bool
	// OnCommit receives the path chosen with Open.
	OnCommit func(path string)
	Windows  Windows
	// Now is the clock used for toast expiry.
	Now func() time.Time
}

// Coordinator owns the dialog lifecycle: the host mode, the dialog and
// sub-dialog states, and the node tree of everything they spawn.
type Coordinator struct {
	opts Options
	tree *Tree

	mode      Mode
	dialog    DialogState
	newFolder NewFolderState

	session   *Session
	folder    *NewFolder
	dialogWin NodeID
}

func NewCoordinator(opts Options) *Coordinator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Windows == nil {
		opts.Windows = nopWindows{}
	}
	tree := NewTree()
	return &Coordinator{
		opts:    opts,
		tree:    tree,
		session: NewSession(tree, Enumerator{Filter: opts.Filter}, opts.DetectType),
	}
}

func (c *Coordinator) Mode() Mode                     { return c.mode }
func (c *Coordinator) DialogState() DialogState       { return c.dialog }
func (c *Coordinator) NewFolderState() NewFolderState { return c.newFolder }
func (c *Coordinator) Session() *Session              { return c.session }
func (c *Coordinator) Tree() *Tree                    { return c.tree }

// NewFolder is the open sub-dialog, or nil.
func (c *Coordinator) NewFolder() *NewFolder { return c.folder }

// SetMode switches the host screen, e.g. back to Home from Edit.
func (c *Coordinator) SetMode(m Mode) { c.mode = m }

// OpenDialog hides the host and opens the file dialog on the start
// directory. It reports false when the dialog was already open or the start
// directory could not be resolved.
func (c *Coordinator) OpenDialog() bool {
	if c.dialog == DialogOpen {
		return false
	}
	dir, err := c.opts.StartDir()
	if err != nil {
		log.LogWithError(err).Debug("no start directory, dialog not opened")
		return false
	}

	c.dialog = DialogOpen
	c.opts.Windows.SetHostVisible(false)
	c.dialogWin = c.tree.Spawn(0, Node{Kind: KindWindow, Scope: ScopeDialog, Label: "file-dialog"})
	c.session.Open(c.dialogWin, dir)
	c.opts.Windows.SetDialogVisible(true)

	log.LogWithFields(log.F("path", dir)).Info("file dialog opened")
	return true
}

// Dispatch applies a button action. Actions that make no sense in the
// current state are ignored.
func (c *Coordinator) Dispatch(a Action) {
	if c.dialog != DialogOpen {
		log.LogWithFields(log.F("action", a.String())).Debug("no dialog open, action ignored")
		return
	}
	switch a {
	case ActionNewFolder:
		c.openNewFolder()
	case ActionCancel:
		c.closeDialog()
	case ActionOpen:
		c.commit()
	case ActionNewFolderCancel:
		if c.newFolder == NewFolderOpen {
			c.closeNewFolder()
		}
	case ActionNewFolderCreate:
		if c.newFolder == NewFolderOpen {
			c.createFolder()
		}
	}
}

// Tick expires toasts of the open sub-dialog.
func (c *Coordinator) Tick() int {
	if c.folder == nil {
		return 0
	}
	return c.folder.Sweep()
}

func (c *Coordinator) openNewFolder() {
	if c.newFolder == NewFolderOpen {
		return
	}
	win := c.tree.Spawn(c.dialogWin, Node{Kind: KindWindow, Scope: ScopeNewFolder, Label: "new-folder"})
	c.folder = newNewFolder(c.tree, win, c.opts.Now)
	c.newFolder = NewFolderOpen
	c.opts.Windows.SetDialogVisible(false)
	c.opts.Windows.SetNewFolderVisible(true)
}

func (c *Coordinator) closeNewFolder() {
	c.tree.DespawnScope(ScopeNewFolder)
	c.folder = nil
	c.newFolder = NewFolderNone
	c.opts.Windows.SetNewFolderVisible(false)
	c.opts.Windows.SetDialogVisible(true)
}

// createFolder closes the sub-dialog and creates the typed folder inside
// the selected directory. Failures are logged and otherwise dropped.
func (c *Coordinator) createFolder() {
	name := c.folder.Name()
	c.closeNewFolder()

	sel, ok := c.session.Selection()
	if !ok || !sel.IsDir || name == "" {
		log.LogWithFields(log.F("name", name)).Debug("nothing to create")
		return
	}
	if err := validateFolderName(name); err != nil {
		log.LogWithError(err).With(log.F("parent", sel.Path)).Error("folder not created")
		return
	}

	path := filepath.Join(sel.Path, name)
	if err := fsys.Mkdir(path); err != nil {
		log.LogWithError(err).Error("folder not created")
		return
	}
	log.LogWithFields(log.F("path", path)).Info("folder created")
	c.session.RefreshPath(sel.Path)
}

func validateFolderName(name string) error {
	if name == "." || name == ".." || strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return errors.NewInvalidInputError("invalid folder name", nil).WithContext("name", name)
	}
	return nil
}

func (c *Coordinator) commit() {
	path := c.session.RootDir()
	if sel, ok := c.session.Selection(); ok {
		path = sel.Path
	}
	c.mode = ModeEdit
	log.LogWithFields(log.F("path", path)).Info("path committed")
	if c.opts.OnCommit != nil {
		c.opts.OnCommit(path)
	}
	c.closeDialog()
}

// closeDialog tears the dialog down whichever way it is left: pending
// sub-dialog input is discarded and every dialog-scoped node is despawned.
func (c *Coordinator) closeDialog() {
	if c.newFolder == NewFolderOpen {
		c.folder = nil
		c.newFolder = NewFolderNone
		c.opts.Windows.SetNewFolderVisible(false)
	}
	n := c.tree.DespawnScope(ScopeDialog)
	c.session.Close()
	c.dialog = DialogNone
	c.dialogWin = 0
	c.opts.Windows.SetDialogVisible(false)
	c.opts.Windows.SetHostVisible(true)
	log.LogWithFields(log.F("nodes", n)).Debug("file dialog closed")
}

type nopWindows struct{}

func (nopWindows) SetHostVisible(bool)      {}
func (nopWindows) SetDialogVisible(bool)    {}
func (nopWindows) SetNewFolderVisible(bool) {}
