// Package testutils holds fixtures shared by package tests.
package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

// CreateTree creates entries under root. Keys ending in "/" are
// directories; other keys are files holding the mapped content. Parent
// directories are created as needed.
func CreateTree(t *testing.T, root string, entries map[string]string) {
	t.Helper()
	for name, content := range entries {
		path := filepath.Join(root, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			require.NoError(t, os.MkdirAll(path, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// NewTree creates entries in a fresh temporary directory and returns it.
func NewTree(t *testing.T, entries map[string]string) string {
	t.Helper()
	root := t.TempDir()
	CreateTree(t, root, entries)
	return root
}

// DialogFixture is the small project tree the frontend tests browse:
// two directories, a nested empty one, a file and a hidden directory.
func DialogFixture(t *testing.T) string {
	t.Helper()
	return NewTree(t, map[string]string{
		"docs/drafts/":  "",
		"docs/guide.md": "# guide",
		"src/":          "",
		"notes.txt":     "notes",
		".hidden/":      "",
	})
}

// StripANSI removes terminal escape sequences from rendered output.
func StripANSI(s string) string {
	return ansi.Strip(s)
}
