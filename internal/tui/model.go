// Package tui is the terminal frontend of Seeker. The home screen, the file
// dialog and the New-Folder sub-dialog are the three windows of the dialog
// coordinator, shown one at a time.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"seeker/internal/config"
	"seeker/internal/dialog"
	"seeker/internal/fsys"
	"seeker/internal/log"
	"seeker/internal/store"
	"seeker/internal/tui/common"
	"seeker/internal/tui/components"
	"seeker/internal/tui/messages"
	"seeker/internal/tui/styles"
	"seeker/internal/tui/views"
	"seeker/internal/watch"
)

// Options wires the model to its collaborators.
type Options struct {
	Config *config.Config
	// Store keeps the project list; nil shows an empty list.
	Store store.Repository
	// Watcher refreshes open listings; nil disables live refresh.
	Watcher *watch.Watcher
	Version string
	Now     func() time.Time
}

type hoverState struct {
	level dialog.Level
	row   int
	ok    bool
}

type Model struct {
	cfg     *config.Config
	theme   styles.Theme
	version string
	now     func() time.Time
	filter  *fsys.Filter

	coord   *dialog.Coordinator
	repo    store.Repository
	watcher *watch.Watcher

	// window visibility as set by the coordinator
	hostVisible      bool
	dialogVisible    bool
	newFolderVisible bool

	projects      []store.Project
	projectCursor int
	editPath      string
	editView      viewport.Model

	focus       dialog.Level
	cursors     map[dialog.Level]int
	offsets     map[dialog.Level]int
	hover       hoverState
	hoverButton int
	pending     int
	toastTick   bool

	statusBar *components.StatusBar
	keys      keyMap
	help      help.Model
	showHelp  bool

	width  int
	height int
}

// New builds the model. The config must have been validated.
func New(opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.New()
	}
	filter, err := fsys.NewFilter(cfg.Dialog.Ignore)
	if err != nil {
		return nil, err
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	theme := styles.NewTheme(cfg.Palette())
	m := &Model{
		cfg:         cfg,
		theme:       theme,
		version:     opts.Version,
		now:         now,
		filter:      filter,
		repo:        opts.Store,
		watcher:     opts.Watcher,
		hostVisible: true,
		cursors:     make(map[dialog.Level]int),
		offsets:     make(map[dialog.Level]int),
		hoverButton: -1,
		editView:    viewport.New(80, components.DefaultRows),
		statusBar:   components.NewStatusBar(theme.Help, theme.Error),
		keys:        newKeyMap(),
		help:        help.New(),
		showHelp:    true,
	}
	m.coord = dialog.NewCoordinator(dialog.Options{
		StartDir:   cfg.StartDir,
		Filter:     filter,
		DetectType: cfg.Dialog.ShowDetailsType,
		OnCommit:   m.committed,
		Windows:    m,
		Now:        now,
	})
	return m, nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadProjects(), m.waitForChange())
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.editView.Width = msg.Width
		m.editView.Height = max(msg.Height-5, 3)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case messages.ColumnLoadedMsg:
		m.columnLoaded(msg)
		return m, nil

	case messages.DirectoryChangeMsg:
		if m.coord.Session().RefreshPath(msg.Path) {
			log.LogWithFields(log.F("path", msg.Path)).Debug("listing refreshed")
			m.afterColumnsChanged()
		}
		return m, m.waitForChange()

	case messages.WatchClosedMsg:
		return m, nil

	case messages.ToastTickMsg:
		m.toastTick = false
		m.coord.Tick()
		return m, m.scheduleToastTick()

	case messages.ProjectsLoadedMsg:
		if msg.Error != nil {
			m.statusBar.SetError(msg.Error)
			return m, nil
		}
		m.projects = msg.Projects
		m.projectCursor = clamp(m.projectCursor, len(m.projects))
		return m, nil

	case messages.ErrorMsg:
		m.statusBar.SetError(msg.Err)
		return m, nil

	case spinner.TickMsg:
		return m, m.statusBar.Update(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	switch m.Screen() {
	case common.NewFolder:
		return m.handleNewFolderKeys(msg)
	case common.Dialog:
		return m.handleDialogKeys(msg)
	case common.Edit:
		return m.handleEditKeys(msg)
	default:
		return m.handleHomeKeys(msg)
	}
}

func (m *Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Up):
		if m.projectCursor > 0 {
			m.projectCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.projectCursor < len(m.projects)-1 {
			m.projectCursor++
		}
	case key.Matches(msg, m.keys.OpenProj):
		if len(m.projects) > 0 {
			m.edit(m.projects[m.projectCursor].Path)
		}
	case key.Matches(msg, m.keys.Browse):
		m.openDialog()
	}
	return m, nil
}

func (m *Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.coord.SetMode(dialog.ModeHome)
		return m, m.loadProjects()
	}
	var cmd tea.Cmd
	m.editView, cmd = m.editView.Update(msg)
	return m, cmd
}

func (m *Model) handleDialogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	col, ok := m.focusedColumn()

	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m, m.dispatch(dialog.ActionCancel)
	case key.Matches(msg, m.keys.Commit):
		return m, m.dispatch(dialog.ActionOpen)
	case key.Matches(msg, m.keys.NewFolder):
		return m, m.dispatch(dialog.ActionNewFolder)
	case key.Matches(msg, m.keys.Up):
		if ok {
			m.moveCursor(col, -1)
		}
	case key.Matches(msg, m.keys.Down):
		if ok {
			m.moveCursor(col, 1)
		}
	case key.Matches(msg, m.keys.Left):
		if m.focus > dialog.RootLevel {
			m.focus--
		}
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Select):
		if ok && len(col.Entries) > 0 {
			e := col.Entries[m.cursors[col.Level]]
			return m, m.press(e, key.Matches(msg, m.keys.Right) || e.IsDir)
		}
	}
	return m, nil
}

// handleNewFolderKeys feeds the sub-dialog. Single key presses go through
// the buffer's key rules; pasted or multi-rune input arrives the way an
// input method commits text.
func (m *Model) handleNewFolderKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	nf := m.coord.NewFolder()
	if nf == nil {
		return m, nil
	}

	switch {
	case msg.Type == tea.KeyEsc:
		return m, m.dispatch(dialog.ActionNewFolderCancel)
	case key.Matches(msg, m.keys.Create):
		return m, m.dispatch(dialog.ActionNewFolderCreate)
	case key.Matches(msg, m.keys.ToggleIME):
		if nf.IME.Enabled {
			nf.HandleIME(dialog.IMEEvent{Kind: dialog.IMEDisabled})
		} else {
			nf.HandleIME(dialog.IMEEvent{Kind: dialog.IMEEnabled})
		}
	case msg.Type == tea.KeyEnter:
		nf.HandleKey(dialog.KeyEvent{Key: dialog.KeyEnter})
		return m, m.scheduleToastTick()
	case msg.Type == tea.KeyBackspace:
		nf.HandleKey(dialog.KeyEvent{Key: dialog.KeyBackspace})
	case msg.Type == tea.KeySpace:
		nf.HandleKey(dialog.KeyEvent{Key: dialog.KeyText, Text: " "})
	case msg.Type == tea.KeyRunes:
		text := string(msg.Runes)
		if msg.Paste || len(msg.Runes) > 1 {
			nf.HandleIME(dialog.IMEEvent{Kind: dialog.IMECommit, Text: text})
		} else {
			nf.HandleKey(dialog.KeyEvent{Key: dialog.KeyText, Text: text})
		}
	}
	return m, nil
}

func (m *Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch m.Screen() {
	case common.Dialog:
		return m, m.dialogMouse(msg)
	case common.NewFolder:
		return m, m.newFolderMouse(msg)
	}
	return m, nil
}

func (m *Model) dialogMouse(msg tea.MouseMsg) tea.Cmd {
	layout := m.layout()
	cols := m.visibleColumns()
	level, row, onRow := layout.Hit(cols, msg.X, msg.Y, m.Offset)

	m.hover = hoverState{level: level, row: row, ok: onRow}
	m.hoverButton = -1
	if msg.Y == layout.ButtonRow() {
		if i, ok := components.HitButton(components.DialogButtons, msg.X); ok {
			m.hoverButton = i
		}
	}

	if msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		m.scroll(cols, msg)
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	if m.hoverButton >= 0 {
		return m.dispatch(components.DialogButtons[m.hoverButton].Action)
	}
	if !onRow {
		return nil
	}
	col, _ := m.column(level)
	m.focus = level
	m.cursors[level] = row
	return m.press(col.Entries[row], false)
}

func (m *Model) scroll(cols []dialog.Column, msg tea.MouseMsg) {
	layout := m.layout()
	i := msg.X / layout.OuterWidth()
	if i < 0 || i >= len(cols) || cols[i].Kind != dialog.KindListing {
		return
	}
	col := cols[i]
	off := m.offsets[col.Level]
	if msg.Button == tea.MouseButtonWheelUp {
		off--
	} else {
		off++
	}
	m.offsets[col.Level] = max(0, min(off, len(col.Entries)-layout.Rows))
}

func (m *Model) newFolderMouse(msg tea.MouseMsg) tea.Cmd {
	nf := m.coord.NewFolder()
	if nf == nil {
		return nil
	}
	m.hoverButton = -1
	if msg.Y == components.ModalButtonRow {
		if i, ok := components.HitButton(components.NewFolderButtons, msg.X-components.ModalInset); ok {
			m.hoverButton = i
		}
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	if m.hoverButton >= 0 {
		return m.dispatch(components.NewFolderButtons[m.hoverButton].Action)
	}
	if components.InModal(msg.X, msg.Y) {
		nf.Click(float32(msg.X), float32(msg.Y))
	}
	return nil
}

// press starts a navigation step for e. The column appears when the load
// command reports back; focus moves into it when follow is set.
func (m *Model) press(e dialog.Entry, follow bool) tea.Cmd {
	req := m.coord.Session().Begin(e)
	m.forget(req.Level())
	if m.focus > e.Level {
		m.focus = e.Level
	}
	m.pending++
	m.statusBar.SetText("loading " + e.Name)

	load := func() tea.Msg {
		return messages.ColumnLoadedMsg{Result: req.Load(), Level: req.Level(), Focus: follow && e.IsDir}
	}
	return tea.Batch(m.statusBar.SetLoading(true), load)
}

func (m *Model) columnLoaded(msg messages.ColumnLoadedMsg) {
	if m.pending > 0 {
		m.pending--
	}
	if m.pending == 0 {
		m.statusBar.SetLoading(false)
		m.statusBar.SetText("")
	}
	if !m.coord.Session().Complete(msg.Result) {
		log.LogWithFields(log.F("level", int(msg.Level))).Debug("stale column load dropped")
		return
	}
	if msg.Focus {
		m.focus = msg.Level
		m.cursors[msg.Level] = 0
		m.offsets[msg.Level] = 0
	}
	m.afterColumnsChanged()
}

// dispatch forwards a button action and resets the view state the
// resulting transition invalidates.
func (m *Model) dispatch(a dialog.Action) tea.Cmd {
	wasOpen := m.coord.DialogState() == dialog.DialogOpen
	m.coord.Dispatch(a)
	m.hoverButton = -1

	if wasOpen && m.coord.DialogState() == dialog.DialogNone {
		m.resetDialog()
		m.syncWatch()
		if m.coord.Mode() == dialog.ModeEdit {
			return m.loadProjects()
		}
		return nil
	}
	if a == dialog.ActionNewFolderCreate {
		m.afterColumnsChanged()
	}
	return nil
}

func (m *Model) openDialog() {
	if !m.coord.OpenDialog() {
		return
	}
	m.resetDialog()
	m.focus = dialog.RootLevel
	m.syncWatch()
}

func (m *Model) resetDialog() {
	m.focus = dialog.RootLevel
	m.cursors = make(map[dialog.Level]int)
	m.offsets = make(map[dialog.Level]int)
	m.hover = hoverState{}
	m.pending = 0
	m.statusBar.SetLoading(false)
	m.statusBar.SetText("")
}

// forget drops cursor state of every column at or beyond level.
func (m *Model) forget(level dialog.Level) {
	for l := range m.cursors {
		if l >= level {
			delete(m.cursors, l)
		}
	}
	for l := range m.offsets {
		if l >= level {
			delete(m.offsets, l)
		}
	}
	if m.hover.level >= level {
		m.hover = hoverState{}
	}
}

// afterColumnsChanged keeps cursors inside their columns and the watcher
// on the directories now listed.
func (m *Model) afterColumnsChanged() {
	cols := m.Columns()
	last := dialog.RootLevel
	for _, col := range cols {
		last = col.Level
		m.cursors[col.Level] = clamp(m.cursors[col.Level], len(col.Entries))
		m.offsets[col.Level] = m.layout().ScrollTo(m.offsets[col.Level], m.cursors[col.Level])
	}
	if c, ok := m.column(m.focus); !ok || c.Kind != dialog.KindListing {
		m.focus = last
		if c, ok := m.column(last); ok && c.Kind != dialog.KindListing && last > dialog.RootLevel {
			m.focus = last - 1
		}
	}
	m.forget(last.Next())
	m.syncWatch()
}

func (m *Model) moveCursor(col dialog.Column, delta int) {
	if len(col.Entries) == 0 {
		return
	}
	cur := clamp(m.cursors[col.Level]+delta, len(col.Entries))
	m.cursors[col.Level] = cur
	m.offsets[col.Level] = m.layout().ScrollTo(m.offsets[col.Level], cur)
}

func (m *Model) committed(path string) {
	if m.repo != nil {
		if _, err := m.repo.Record(path); err != nil {
			log.LogWithError(err).Error("project not recorded")
			m.statusBar.SetError(err)
		}
	}
	m.edit(path)
}

// edit switches to the Edit screen for path and lists its contents.
func (m *Model) edit(path string) {
	m.editPath = path
	m.coord.SetMode(dialog.ModeEdit)

	entries, err := fsys.ReadDir(path, m.filter)
	if err != nil {
		m.editView.SetContent(m.theme.Error.Render(err.Error()))
		return
	}
	var b strings.Builder
	for _, e := range entries {
		if e.IsDir {
			fmt.Fprintf(&b, "%s/\n", e.Name)
			continue
		}
		md := fsys.Stat(e.Path)
		size := ""
		if md.HasSize {
			size = humanize.Bytes(uint64(md.Size))
		}
		fmt.Fprintf(&b, "%-40s %10s\n", e.Name, size)
	}
	m.editView.SetContent(b.String())
	m.editView.GotoTop()
}

func (m *Model) syncWatch() {
	if m.watcher == nil {
		return
	}
	var dirs []string
	if m.coord.DialogState() == dialog.DialogOpen {
		dirs = m.coord.Session().Dirs()
	}
	if err := m.watcher.Watch(dirs); err != nil {
		log.LogWithError(err).Debug("some listings are not watched")
	}
}

func (m *Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	return func() tea.Msg {
		c, ok := <-changes
		if !ok {
			return messages.WatchClosedMsg{}
		}
		return messages.DirectoryChangeMsg{Path: c.Dir}
	}
}

// scheduleToastTick arranges one tick for when the oldest toast expires.
func (m *Model) scheduleToastTick() tea.Cmd {
	nf := m.coord.NewFolder()
	if nf == nil || m.toastTick {
		return nil
	}
	at, ok := nf.NextExpiry()
	if !ok {
		return nil
	}
	m.toastTick = true
	return tea.Tick(max(at.Sub(m.now()), 0), func(time.Time) tea.Msg {
		return messages.ToastTickMsg{}
	})
}

func (m *Model) loadProjects() tea.Cmd {
	repo := m.repo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		projects, err := repo.SelectAll()
		return messages.ProjectsLoadedMsg{Projects: projects, Error: err}
	}
}

func (m *Model) layout() components.Columns {
	return components.Layout(m.height, m.cfg.Dialog.NameWidth, m.cfg.Dialog.ColumnWidth)
}

// visibleColumns are the columns drawn in the current terminal width.
func (m *Model) visibleColumns() []dialog.Column {
	return m.layout().Window(m.Columns(), m.width, m.focus)
}

func (m *Model) column(level dialog.Level) (dialog.Column, bool) {
	for _, col := range m.Columns() {
		if col.Level == level {
			return col, true
		}
	}
	return dialog.Column{}, false
}

func (m *Model) focusedColumn() (dialog.Column, bool) {
	col, ok := m.column(m.focus)
	if !ok || col.Kind != dialog.KindListing {
		return dialog.Column{}, false
	}
	return col, true
}

// SetHostVisible implements dialog.Windows.
func (m *Model) SetHostVisible(visible bool) { m.hostVisible = visible }

// SetDialogVisible implements dialog.Windows.
func (m *Model) SetDialogVisible(visible bool) { m.dialogVisible = visible }

// SetNewFolderVisible implements dialog.Windows.
func (m *Model) SetNewFolderVisible(visible bool) { m.newFolderVisible = visible }

// Screen reports which window is showing.
func (m *Model) Screen() common.Screen {
	switch {
	case m.newFolderVisible:
		return common.NewFolder
	case m.dialogVisible:
		return common.Dialog
	case m.coord.Mode() == dialog.ModeEdit:
		return common.Edit
	}
	return common.Home
}

// Getters
func (m *Model) Coordinator() *dialog.Coordinator { return m.coord }
func (m *Model) Theme() styles.Theme              { return m.theme }
func (m *Model) Version() string                  { return m.version }
func (m *Model) Size() (int, int)                 { return m.width, m.height }
func (m *Model) ShowHelp() bool                   { return m.showHelp }
func (m *Model) Projects() []store.Project        { return m.projects }
func (m *Model) ProjectCursor() int               { return m.projectCursor }
func (m *Model) EditPath() string                 { return m.editPath }
func (m *Model) EditView() string                 { return m.editView.View() }
func (m *Model) HoverButton() int                 { return m.hoverButton }
func (m *Model) Offset(level dialog.Level) int    { return m.offsets[level] }
func (m *Model) Pressed(e dialog.Entry) bool      { return m.coord.Session().Pressed(e) }
func (m *Model) RootDir() string                  { return m.coord.Session().RootDir() }
func (m *Model) NameWidth() int                   { return m.cfg.Dialog.NameWidth }
func (m *Model) ColumnWidth() int                 { return m.cfg.Dialog.ColumnWidth }
func (m *Model) NewFolder() *dialog.NewFolder     { return m.coord.NewFolder() }
func (m *Model) Loading() bool                    { return m.statusBar.Loading() }
func (m *Model) StatusView() string               { return m.statusBar.View() }
func (m *Model) Err() error                       { return m.statusBar.Err() }

func (m *Model) HelpView() string {
	return m.help.ShortHelpView(m.keys.bindings(m.Screen()))
}

func (m *Model) Columns() []dialog.Column {
	if m.coord.DialogState() != dialog.DialogOpen {
		return nil
	}
	return m.coord.Session().Columns()
}

func (m *Model) Focus() (dialog.Level, int) {
	return m.focus, m.cursors[m.focus]
}

func (m *Model) Hover() (dialog.Level, int, bool) {
	return m.hover.level, m.hover.row, m.hover.ok
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

var (
	_ common.ModelReader = (*Model)(nil)
	_ dialog.Windows     = (*Model)(nil)
)
