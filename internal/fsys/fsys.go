// Package fsys holds the filesystem primitives the file dialog is built on:
// a filtered single-level directory read, per-file metadata and folder
// creation.
package fsys

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gobwas/glob"

	"seeker/internal/errors"
)

// Filter decides which directory entries are hidden from listings. Names
// starting with "." are always hidden.
type Filter struct {
	patterns []glob.Glob
}

// NewFilter compiles the extra ignore patterns.
func NewFilter(patterns []string) (*Filter, error) {
	f := &Filter{}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.NewInvalidInputError("bad ignore pattern", err).WithContext("pattern", p)
		}
		f.patterns = append(f.patterns, g)
	}
	return f, nil
}

// Hidden reports whether name is excluded. A nil Filter hides dot files only.
func (f *Filter) Hidden(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	if f == nil {
		return false
	}
	for _, g := range f.patterns {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// DirEntry is one visible child of a directory.
type DirEntry struct {
	Name  string
	Path  string
	IsDir bool
}

// ReadDir lists the visible children of dir in the order the operating
// system returns them. Entries are not sorted. A symlink counts as a
// directory when its target is one.
func ReadDir(dir string, filter *Filter) ([]DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, errors.FromOS("cannot open directory", dir, err)
	}
	defer f.Close()

	// (*os.File).ReadDir keeps directory order; os.ReadDir would sort.
	raw, err := f.ReadDir(-1)
	if err != nil && len(raw) == 0 {
		return nil, errors.FromOS("cannot read directory", dir, err)
	}

	entries := make([]DirEntry, 0, len(raw))
	for _, de := range raw {
		name := de.Name()
		if filter.Hidden(name) {
			continue
		}
		path := filepath.Join(dir, name)
		isDir := de.IsDir()
		if de.Type()&os.ModeSymlink != 0 {
			if fi, err := os.Stat(path); err == nil {
				isDir = fi.IsDir()
			}
		}
		entries = append(entries, DirEntry{Name: name, Path: path, IsDir: isDir})
	}
	return entries, nil
}

// Metadata is what the detail column shows about a file. Zero-valued
// fields whose Has* flag is false could not be read.
type Metadata struct {
	Name        string
	Size        int64
	HasSize     bool
	Created     time.Time
	HasCreated  bool
	Modified    time.Time
	HasModified bool
	MIME        string
}

// Stat gathers the metadata of path. It never fails: fields that cannot be
// read are left unset.
func Stat(path string) Metadata {
	md := Metadata{Name: filepath.Base(path)}
	fi, err := os.Stat(path)
	if err != nil {
		return md
	}
	md.Size, md.HasSize = fi.Size(), true
	md.Modified, md.HasModified = fi.ModTime(), true
	md.Created, md.HasCreated = birthTime(path, fi)
	return md
}

// DetectType sniffs the MIME type of a regular file.
func DetectType(path string) (string, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", errors.FromOS("cannot detect file type", path, err)
	}
	return mt.String(), nil
}

// Mkdir creates a single directory. It fails if path exists or its parent
// does not.
func Mkdir(path string) error {
	if err := os.Mkdir(path, 0o755); err != nil {
		return errors.FromOS("cannot create folder", path, err)
	}
	return nil
}
