package dialog

import (
	"sort"

	"seeker/internal/fsys"
)

// Level is the nesting depth of a column. The dialog's first column is at
// RootLevel and every step into a subdirectory adds one.
type Level int

const RootLevel Level = 1

// Next is the level of the column opened from a row at l.
func (l Level) Next() Level {
	return l + 1
}

// NodeID is a stable handle into a Tree. The zero value is never issued.
type NodeID uint64

// NodeKind tags what a node stands for.
type NodeKind int

const (
	KindWindow NodeKind = iota
	KindRoot
	KindListing
	KindDetail
	KindRow
	KindToast
)

func (k NodeKind) String() string {
	switch k {
	case KindWindow:
		return "window"
	case KindRoot:
		return "root"
	case KindListing:
		return "listing"
	case KindDetail:
		return "detail"
	case KindRow:
		return "row"
	case KindToast:
		return "toast"
	}
	return "unknown"
}

// Scope marks the lifetime a node is bound to. DespawnScope removes every
// node carrying the scope together with its descendants.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeDialog
	ScopeNewFolder
)

// Node is one element of the dialog UI tree.
type Node struct {
	ID       NodeID
	Kind     NodeKind
	Parent   NodeID
	Children []NodeID
	Scope    Scope
	Label    string

	// columns
	Level  Level
	Source string

	// rows
	Entry *Entry

	// detail columns
	Detail *fsys.Metadata
}

// Tree is an arena of nodes with a side index from level to the column
// node holding it, so pruning never scans the whole arena.
type Tree struct {
	nodes   map[NodeID]*Node
	columns map[Level]NodeID
	next    NodeID
}

func NewTree() *Tree {
	return &Tree{
		nodes:   make(map[NodeID]*Node),
		columns: make(map[Level]NodeID),
	}
}

// Spawn inserts n under parent (0 for a top-level node) and returns its id.
// Listing and detail nodes are indexed by their level; spawning a second
// column at an occupied level panics since that would break the one column
// per level rule.
func (t *Tree) Spawn(parent NodeID, n Node) NodeID {
	t.next++
	n.ID = t.next
	n.Parent = parent
	n.Children = nil
	if isColumn(n.Kind) {
		if _, taken := t.columns[n.Level]; taken {
			panic("dialog: column already open at this level")
		}
		t.columns[n.Level] = n.ID
	}
	t.nodes[n.ID] = &n
	if p, ok := t.nodes[parent]; ok {
		p.Children = append(p.Children, n.ID)
	}
	return n.ID
}

func isColumn(k NodeKind) bool {
	return k == KindListing || k == KindDetail
}

// Get returns the node with id.
func (t *Tree) Get(id NodeID) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Len is the number of live nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Despawn removes id and all its descendants.
func (t *Tree) Despawn(id NodeID) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	if p, ok := t.nodes[n.Parent]; ok {
		p.Children = removeID(p.Children, id)
	}
	t.despawnRec(n)
}

func (t *Tree) despawnRec(n *Node) {
	for _, c := range n.Children {
		if child, ok := t.nodes[c]; ok {
			t.despawnRec(child)
		}
	}
	if isColumn(n.Kind) && t.columns[n.Level] == n.ID {
		delete(t.columns, n.Level)
	}
	delete(t.nodes, n.ID)
}

// DespawnChildren removes every descendant of id but keeps id itself.
func (t *Tree) DespawnChildren(id NodeID) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	children := n.Children
	n.Children = nil
	for _, c := range children {
		if child, ok := t.nodes[c]; ok {
			t.despawnRec(child)
		}
	}
}

// DespawnScope removes every node tagged with scope, and their subtrees.
func (t *Tree) DespawnScope(scope Scope) int {
	var tagged []NodeID
	for id, n := range t.nodes {
		if n.Scope == scope {
			tagged = append(tagged, id)
		}
	}
	before := len(t.nodes)
	for _, id := range tagged {
		t.Despawn(id)
	}
	return before - len(t.nodes)
}

// Prune removes every column whose level is at or beyond from.
func (t *Tree) Prune(from Level) int {
	removed := 0
	for level, id := range t.columns {
		if level >= from {
			t.Despawn(id)
			removed++
		}
	}
	return removed
}

// Column returns the column node at level.
func (t *Tree) Column(level Level) (*Node, bool) {
	id, ok := t.columns[level]
	if !ok {
		return nil, false
	}
	return t.Get(id)
}

// ColumnLevels lists the occupied levels in ascending order.
func (t *Tree) ColumnLevels() []Level {
	levels := make([]Level, 0, len(t.columns))
	for l := range t.columns {
		levels = append(levels, l)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })
	return levels
}

func removeID(ids []NodeID, id NodeID) []NodeID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
