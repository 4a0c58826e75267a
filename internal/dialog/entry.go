package dialog

import (
	"seeker/internal/fsys"
	"seeker/internal/log"
)

// Entry is one directory child shown as a row. Entries are rebuilt on every
// enumeration and never cached.
type Entry struct {
	Path  string
	Name  string
	IsDir bool
	Root  NodeID // container holding every column of the dialog
	Level Level  // level of the column the row sits in
}

// Enumerator lists directories for the dialog.
type Enumerator struct {
	Filter *fsys.Filter
}

// Enumerate returns the visible immediate children of path tagged with root
// and level. A directory that cannot be read yields no entries.
func (e Enumerator) Enumerate(path string, root NodeID, level Level) []Entry {
	children, err := fsys.ReadDir(path, e.Filter)
	if err != nil {
		log.LogWithError(err).With(log.F("level", int(level))).Debug("directory not readable, listing empty")
		return nil
	}
	entries := make([]Entry, 0, len(children))
	for _, c := range children {
		entries = append(entries, Entry{
			Path:  c.Path,
			Name:  c.Name,
			IsDir: c.IsDir,
			Root:  root,
			Level: level,
		})
	}
	return entries
}
