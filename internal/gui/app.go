//go:build !nogui

// Package gui is the desktop frontend of Seeker on fyne. The host window,
// the file dialog and the New-Folder sub-dialog are separate windows shown
// and hidden by the dialog coordinator.
package gui

import (
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynedialog "fyne.io/fyne/v2/dialog"

	"seeker/internal/config"
	"seeker/internal/dialog"
	"seeker/internal/fsys"
	"seeker/internal/log"
	"seeker/internal/store"
	"seeker/internal/watch"
)

const appID = "io.github.seeker"

// App is the GUI application
type App struct {
	fyneApp fyne.App
	cfg     *config.Config
	cfgPath string
	version string
	filter  *fsys.Filter

	host      fyne.Window
	dialogWin fyne.Window
	folderWin fyne.Window

	// mu guards the coordinator and everything below. fyne callbacks,
	// column loads and watcher events all take it.
	mu      sync.Mutex
	coord   *dialog.Coordinator
	repo    store.Repository
	watcher *watch.Watcher
	now     func() time.Time
	// spawn runs filesystem work for a navigation step.
	spawn func(func())

	hostShown   bool
	dialogShown bool
	folderShown bool

	projects   []store.Project
	editPath   string
	home       *homeView
	files      *fileDialogView
	folder     *newFolderView
	toastTimer *time.Timer
}

// Start creates the application and runs it until the host window closes.
func Start(opts Options) error {
	a, err := NewApp(app.NewWithID(appID), opts)
	if err != nil {
		return err
	}
	a.Run()
	return nil
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return true
}

// NewApp creates a new GUI application on fyneApp.
func NewApp(fyneApp fyne.App, opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.New()
	}
	filter, err := fsys.NewFilter(cfg.Dialog.Ignore)
	if err != nil {
		return nil, err
	}

	a := &App{
		fyneApp: fyneApp,
		cfg:     cfg,
		cfgPath: opts.ConfigPath,
		version: opts.Version,
		filter:  filter,
		repo:    opts.Store,
		watcher: opts.Watcher,
		now:     time.Now,
		spawn:   func(f func()) { go f() },
	}
	a.coord = dialog.NewCoordinator(dialog.Options{
		StartDir:   cfg.StartDir,
		Filter:     filter,
		DetectType: cfg.Dialog.ShowDetailsType,
		OnCommit:   a.committed,
		Windows:    a,
		Now:        func() time.Time { return a.now() },
	})

	fyneApp.Settings().SetTheme(newTheme(cfg.Palette(), cfg.FontSize))

	a.host = fyneApp.NewWindow("Seeker")
	a.host.Resize(fyne.NewSize(900, 600))
	a.host.SetMaster()

	a.dialogWin = fyneApp.NewWindow("Open")
	a.dialogWin.Resize(fyne.NewSize(800, 500))
	a.dialogWin.SetCloseIntercept(func() { a.Dispatch(dialog.ActionCancel) })

	a.folderWin = fyneApp.NewWindow("New Folder")
	a.folderWin.Resize(fyne.NewSize(320, 160))
	a.folderWin.SetFixedSize(true)
	a.folderWin.SetCloseIntercept(func() { a.Dispatch(dialog.ActionNewFolderCancel) })

	a.home = newHomeView(a)
	a.files = newFileDialogView(a)
	a.folder = newNewFolderView(a)
	a.dialogWin.SetContent(a.files.content)
	a.folderWin.SetContent(a.folder.content)
	a.folder.bindCanvas(a.folderWin.Canvas())

	a.reloadProjects()
	a.refreshHost()
	a.hostShown = true
	return a, nil
}

// Run starts the GUI application
func (a *App) Run() {
	if a.watcher != nil {
		if err := a.watcher.Start(); err != nil {
			log.LogWithError(err).Warn("directory watcher not started")
		} else {
			go a.watchLoop()
			defer a.watcher.Stop()
		}
	}
	a.host.Show()
	a.fyneApp.Run()
}

// ShowError reports err in a dialog over the host window.
func (a *App) ShowError(title string, err error) {
	log.LogWithError(err).Error(title)
	fynedialog.ShowError(fmt.Errorf("%s: %w", title, err), a.host)
}

// OpenDialog opens the file dialog from the host window.
func (a *App) OpenDialog() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.coord.OpenDialog() {
		a.files.refresh()
		a.syncWatch()
	}
}

// Dispatch applies a dialog button action.
func (a *App) Dispatch(act dialog.Action) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.coord.Dispatch(act)
	switch act {
	case dialog.ActionNewFolderCreate:
		a.files.refresh()
		a.syncWatch()
	case dialog.ActionCancel, dialog.ActionOpen:
		a.syncWatch()
	}
}

// press starts a navigation step for e; the column appears once its load
// has run.
func (a *App) press(e dialog.Entry) {
	a.mu.Lock()
	req := a.coord.Session().Begin(e)
	a.files.refresh()
	a.mu.Unlock()

	a.spawn(func() {
		res := req.Load()
		a.mu.Lock()
		defer a.mu.Unlock()
		if !a.coord.Session().Complete(res) {
			log.LogWithFields(log.F("path", e.Path)).Debug("stale column load dropped")
			return
		}
		a.files.refresh()
		a.syncWatch()
	})
}

func (a *App) committed(path string) {
	if a.repo != nil {
		if _, err := a.repo.Record(path); err != nil {
			log.LogWithError(err).Error("project not recorded")
		}
	}
	a.editPath = path
	a.reloadProjects()
}

// backHome leaves Edit mode.
func (a *App) backHome() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.coord.SetMode(dialog.ModeHome)
	a.refreshHost()
}

func (a *App) editProject(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editPath = path
	a.coord.SetMode(dialog.ModeEdit)
	a.refreshHost()
}

func (a *App) reloadProjects() {
	if a.repo == nil {
		return
	}
	projects, err := a.repo.SelectAll()
	if err != nil {
		log.LogWithError(err).Error("projects not loaded")
		return
	}
	a.projects = projects
}

func (a *App) refreshHost() {
	if a.coord.Mode() == dialog.ModeEdit {
		a.host.SetContent(a.home.editContent(a.editPath))
		return
	}
	a.host.SetContent(a.home.content())
}

// setTheme switches the palette and saves the choice when a config file
// is in use.
func (a *App) setTheme(name string) {
	a.cfg.WindowTheme = name
	a.fyneApp.Settings().SetTheme(newTheme(a.cfg.Palette(), a.cfg.FontSize))
	if a.cfgPath == "" {
		return
	}
	if err := config.SaveConfig(a.cfg, a.cfgPath); err != nil {
		log.LogWithError(err).Error("theme not saved")
	}
}

func (a *App) syncWatch() {
	if a.watcher == nil {
		return
	}
	var dirs []string
	if a.coord.DialogState() == dialog.DialogOpen {
		dirs = a.coord.Session().Dirs()
	}
	if err := a.watcher.Watch(dirs); err != nil {
		log.LogWithError(err).Debug("some listings are not watched")
	}
}

func (a *App) watchLoop() {
	for c := range a.watcher.Changes() {
		a.mu.Lock()
		if a.coord.Session().RefreshPath(c.Dir) {
			a.files.refresh()
			a.syncWatch()
		}
		a.mu.Unlock()
	}
}

// SetHostVisible implements dialog.Windows.
func (a *App) SetHostVisible(visible bool) {
	a.hostShown = visible
	if visible {
		a.refreshHost()
		a.host.Show()
		return
	}
	a.host.Hide()
}

// SetDialogVisible implements dialog.Windows.
func (a *App) SetDialogVisible(visible bool) {
	a.dialogShown = visible
	if visible {
		a.files.refresh()
		a.dialogWin.Show()
		return
	}
	a.dialogWin.Hide()
}

// SetNewFolderVisible implements dialog.Windows.
func (a *App) SetNewFolderVisible(visible bool) {
	a.folderShown = visible
	if visible {
		a.folder.refresh()
		a.folderWin.Show()
		a.folderWin.RequestFocus()
		return
	}
	a.stopToastTimer()
	a.folderWin.Hide()
}

var (
	_ dialog.Windows = (*App)(nil)
	_ Interface      = (*App)(nil)
)

// scheduleToastSweep arms a timer for the oldest toast. The caller holds
// the app lock.
func (a *App) scheduleToastSweep() {
	nf := a.coord.NewFolder()
	if nf == nil || a.toastTimer != nil {
		return
	}
	at, ok := nf.NextExpiry()
	if !ok {
		return
	}
	a.toastTimer = time.AfterFunc(max(at.Sub(a.now()), 0), func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.toastTimer = nil
		a.sweepToasts()
	})
}

func (a *App) sweepToasts() {
	if a.coord.Tick() > 0 {
		a.folder.refresh()
	}
	a.scheduleToastSweep()
}

func (a *App) stopToastTimer() {
	if a.toastTimer != nil {
		a.toastTimer.Stop()
		a.toastTimer = nil
	}
}
