package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTree(t *testing.T) {
	root := NewTree(t, map[string]string{
		"a/b/":      "",
		"a/c/d.txt": "hello",
		"top.md":    "# top",
	})

	info, err := os.Stat(filepath.Join(root, "a", "b"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	data, err := os.ReadFile(filepath.Join(root, "a", "c", "d.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = os.Stat(filepath.Join(root, "top.md"))
	assert.NoError(t, err)
}

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "plain", StripANSI("plain"))
	assert.Equal(t, "red text", StripANSI("\x1b[31mred\x1b[0m text"))
	assert.Equal(t, "bold", StripANSI("\x1b[1;38;5;200mbold\x1b[m"))
}
