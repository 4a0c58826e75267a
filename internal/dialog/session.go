package dialog

import (
	"seeker/internal/fsys"
	"seeker/internal/log"
)

// Column is a read-only view of one open column for frontends.
type Column struct {
	ID      NodeID
	Kind    NodeKind // KindListing or KindDetail
	Level   Level
	Source  string // directory listed, or file described
	Entries []Entry
	Detail  *fsys.Metadata
}

// Session is the navigation state of one open dialog: the column tree, the
// current selection and the generation used to discard stale loads. It is
// driven from a single goroutine; only Request.Load may run elsewhere.
type Session struct {
	tree       *Tree
	enum       Enumerator
	detectType bool

	root      NodeID
	rootDir   string
	selection *Entry
	gen       uint64
	open      bool
}

// NewSession builds a session spawning into tree.
func NewSession(tree *Tree, enum Enumerator, detectType bool) *Session {
	return &Session{tree: tree, enum: enum, detectType: detectType}
}

// Open spawns the column container under parent and the first listing of
// dir at RootLevel. Any previous selection is forgotten.
func (s *Session) Open(parent NodeID, dir string) {
	s.gen++
	s.selection = nil
	s.rootDir = dir
	s.open = true
	s.root = s.tree.Spawn(parent, Node{Kind: KindRoot, Scope: ScopeDialog})
	s.spawnListing(RootLevel, dir, s.enum.Enumerate(dir, s.root, RootLevel))
}

// Close forgets the selection and invalidates in-flight loads. The nodes are
// owned by the dialog scope and are despawned by the caller.
func (s *Session) Close() {
	s.gen++
	s.selection = nil
	s.open = false
	s.root = 0
}

// IsOpen reports whether Open was called without a matching Close.
func (s *Session) IsOpen() bool { return s.open }

// Root is the node all columns hang off.
func (s *Session) Root() NodeID { return s.root }

// RootDir is the directory listed at RootLevel.
func (s *Session) RootDir() string { return s.rootDir }

// Selection returns the most recently selected entry.
func (s *Session) Selection() (Entry, bool) {
	if s.selection == nil {
		return Entry{}, false
	}
	return *s.selection, true
}

// Request is a navigation step whose filesystem work has not run yet.
type Request struct {
	gen        uint64
	entry      Entry
	next       Level
	enum       Enumerator
	detectType bool
}

// Entry is the row the request was made for.
func (r Request) Entry() Entry { return r.entry }

// Level is where the resulting column will be spawned.
func (r Request) Level() Level { return r.next }

// Result carries what Load read from disk.
type Result struct {
	req     Request
	entries []Entry
	detail  *fsys.Metadata
}

// Load reads the directory or file metadata for the request. It touches no
// session state and is safe to run off the UI goroutine.
func (r Request) Load() Result {
	res := Result{req: r}
	if r.entry.IsDir {
		res.entries = r.enum.Enumerate(r.entry.Path, r.entry.Root, r.next)
		return res
	}
	md := fsys.Stat(r.entry.Path)
	if r.detectType && md.HasSize {
		if mt, err := fsys.DetectType(r.entry.Path); err == nil {
			md.MIME = mt
		}
	}
	res.detail = &md
	return res
}

// Begin records e as the selection and prunes every column at or beyond
// the level the new column will take. The returned request must be loaded
// and handed back to Complete.
func (s *Session) Begin(e Entry) Request {
	sel := e
	s.selection = &sel
	s.gen++
	next := e.Level.Next()
	if n := s.tree.Prune(next); n > 0 {
		log.LogWithFields(log.F("from", int(next)), log.F("columns", n)).Debug("pruned columns")
	}
	return Request{
		gen:        s.gen,
		entry:      e,
		next:       next,
		enum:       s.enum,
		detectType: s.detectType,
	}
}

// Complete spawns the column produced by res. It reports false and drops
// the result when a later Begin, a Close, or a prune of the originating
// column has superseded the request.
func (s *Session) Complete(res Result) bool {
	req := res.req
	if !s.open || req.gen != s.gen {
		return false
	}
	if _, ok := s.tree.Get(req.entry.Root); !ok {
		return false
	}
	parent, ok := s.tree.Column(req.entry.Level)
	if !ok || parent.Kind != KindListing {
		return false
	}
	if req.entry.IsDir {
		s.spawnListing(req.next, req.entry.Path, res.entries)
	} else {
		s.spawnDetail(req.next, req.entry.Path, res.detail)
	}
	return true
}

// Select performs a whole navigation step synchronously.
func (s *Session) Select(e Entry) bool {
	return s.Complete(s.Begin(e).Load())
}

// SelectAll handles several rows pressed within one input cycle. Each one
// is recorded in turn; the last one decides the resulting columns.
func (s *Session) SelectAll(entries ...Entry) bool {
	if len(entries) == 0 {
		return false
	}
	for i := range entries[:len(entries)-1] {
		sel := entries[i]
		s.selection = &sel
	}
	return s.Select(entries[len(entries)-1])
}

func (s *Session) spawnListing(level Level, dir string, entries []Entry) NodeID {
	col := s.tree.Spawn(s.root, Node{Kind: KindListing, Scope: ScopeDialog, Level: level, Source: dir})
	s.spawnRows(col, entries)
	return col
}

func (s *Session) spawnRows(col NodeID, entries []Entry) {
	for i := range entries {
		e := entries[i]
		s.tree.Spawn(col, Node{Kind: KindRow, Label: e.Name, Entry: &e})
	}
}

func (s *Session) spawnDetail(level Level, path string, md *fsys.Metadata) NodeID {
	if md == nil {
		stat := fsys.Stat(path)
		md = &stat
	}
	return s.tree.Spawn(s.root, Node{Kind: KindDetail, Scope: ScopeDialog, Level: level, Source: path, Detail: md})
}

// Refresh re-reads the listing at level in place. When the directory that
// fed the next column has disappeared, that column and everything after it
// are pruned. It reports whether a listing existed at level.
func (s *Session) Refresh(level Level) bool {
	col, ok := s.tree.Column(level)
	if !ok || col.Kind != KindListing {
		return false
	}
	entries := s.enum.Enumerate(col.Source, s.root, level)
	s.tree.DespawnChildren(col.ID)
	s.spawnRows(col.ID, entries)

	if next, ok := s.tree.Column(level.Next()); ok && !containsPath(entries, next.Source) {
		s.gen++
		s.tree.Prune(level.Next())
	}
	return true
}

// RefreshPath refreshes the listing showing dir, if one is open.
func (s *Session) RefreshPath(dir string) bool {
	for _, level := range s.tree.ColumnLevels() {
		if col, _ := s.tree.Column(level); col.Kind == KindListing && col.Source == dir {
			return s.Refresh(level)
		}
	}
	return false
}

func containsPath(entries []Entry, path string) bool {
	for _, e := range entries {
		if e.Path == path {
			return true
		}
	}
	return false
}

// Columns returns the open columns ordered by level.
func (s *Session) Columns() []Column {
	levels := s.tree.ColumnLevels()
	cols := make([]Column, 0, len(levels))
	for _, level := range levels {
		n, _ := s.tree.Column(level)
		col := Column{ID: n.ID, Kind: n.Kind, Level: n.Level, Source: n.Source, Detail: n.Detail}
		for _, id := range n.Children {
			if row, ok := s.tree.Get(id); ok && row.Entry != nil {
				col.Entries = append(col.Entries, *row.Entry)
			}
		}
		cols = append(cols, col)
	}
	return cols
}

// Pressed reports whether e is the row the next column was opened from.
func (s *Session) Pressed(e Entry) bool {
	next, ok := s.tree.Column(e.Level.Next())
	return ok && next.Source == e.Path
}

// Dirs lists the directories shown by open listing columns, shallowest
// first. Frontends watch these for changes.
func (s *Session) Dirs() []string {
	var dirs []string
	for _, level := range s.tree.ColumnLevels() {
		if col, _ := s.tree.Column(level); col.Kind == KindListing {
			dirs = append(dirs, col.Source)
		}
	}
	return dirs
}
