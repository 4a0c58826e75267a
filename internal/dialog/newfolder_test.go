package dialog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestFolder() (*NewFolder, *Tree, *fakeClock) {
	tree := NewTree()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	win := tree.Spawn(0, Node{Kind: KindWindow, Scope: ScopeNewFolder})
	return newNewFolder(tree, win, clock.Now), tree, clock
}

func TestTextBufferCap(t *testing.T) {
	var b TextBuffer
	for i := 0; i < 40; i++ {
		b.Append("a")
	}
	assert.Equal(t, MaxFolderNameLen, b.Len())
	assert.Equal(t, strings.Repeat("a", 32), b.String())

	assert.False(t, b.Append("b"))
	assert.Equal(t, strings.Repeat("a", 32), b.String())
}

func TestTextBufferCountsCharactersNotBytes(t *testing.T) {
	var b TextBuffer
	require.True(t, b.Append(strings.Repeat("文", 31)))
	assert.True(t, b.Append("件"))
	assert.Equal(t, 32, b.Len())
	assert.False(t, b.Append("x"))
}

func TestTextBufferAppendIsAllOrNothing(t *testing.T) {
	var b TextBuffer
	require.True(t, b.Append(strings.Repeat("x", 30)))
	assert.False(t, b.Append("abc"))
	assert.Equal(t, 30, b.Len())
	assert.True(t, b.Append("ab"))
	assert.Equal(t, 32, b.Len())
}

func TestTextBufferRejectsControl(t *testing.T) {
	var b TextBuffer
	assert.False(t, b.Append("\t"))
	assert.False(t, b.Append("a\x1b"))
	assert.False(t, b.Append(""))
	assert.True(t, b.Append("my project"))
	assert.Equal(t, "my project", b.String())
}

func TestTextBufferBackspace(t *testing.T) {
	var b TextBuffer
	assert.False(t, b.Backspace())
	assert.Equal(t, 0, b.Len())

	b.Append("日本")
	assert.True(t, b.Backspace())
	assert.Equal(t, "日", b.String())
	assert.True(t, b.Backspace())
	assert.False(t, b.Backspace())
	assert.Equal(t, "", b.String())
}

func TestTextBufferInsertTruncates(t *testing.T) {
	var b TextBuffer
	b.Append(strings.Repeat("a", 30))
	assert.Equal(t, 2, b.Insert("xyz"))
	assert.Equal(t, strings.Repeat("a", 30)+"xy", b.String())
	assert.Equal(t, 0, b.Insert("z"))

	var c TextBuffer
	assert.Equal(t, 2, c.Insert("a\nb"))
	assert.Equal(t, "ab", c.String())
}

func TestNewFolderKeys(t *testing.T) {
	nf, tree, clock := newTestFolder()

	nf.HandleKey(KeyEvent{Key: KeyEnter})
	assert.Empty(t, nf.Toasts(), "enter on empty buffer does nothing")

	for _, r := range "test" {
		nf.HandleKey(KeyEvent{Key: KeyText, Text: string(r)})
	}
	nf.HandleKey(KeyEvent{Key: KeyText, Text: "\r"})
	assert.Equal(t, "test", nf.Buffer.String())

	nf.HandleKey(KeyEvent{Key: KeyBackspace})
	assert.Equal(t, "tes", nf.Buffer.String())

	nf.HandleKey(KeyEvent{Key: KeyEnter})
	assert.Equal(t, "", nf.Buffer.String())
	toasts := nf.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "tes", toasts[0].Text)
	assert.Equal(t, clock.now.Add(ToastLifetime), toasts[0].Expires)

	node, ok := tree.Get(toasts[0].ID)
	require.True(t, ok)
	assert.Equal(t, KindToast, node.Kind)
}

func TestNewFolderToastExpiry(t *testing.T) {
	nf, tree, clock := newTestFolder()

	nf.Buffer.Append("one")
	nf.HandleKey(KeyEvent{Key: KeyEnter})
	clock.Advance(2 * time.Second)
	nf.Buffer.Append("two")
	nf.HandleKey(KeyEvent{Key: KeyEnter})
	assert.Equal(t, 3, tree.Len())

	exp, ok := nf.NextExpiry()
	require.True(t, ok)
	assert.Equal(t, clock.now.Add(3*time.Second), exp)

	clock.Advance(3*time.Second - time.Millisecond)
	assert.Equal(t, 0, nf.Sweep())

	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, nf.Sweep())
	require.Len(t, nf.Toasts(), 1)
	assert.Equal(t, "two", nf.Toasts()[0].Text)
	assert.Equal(t, 2, tree.Len())

	clock.Advance(ToastLifetime)
	assert.Equal(t, 1, nf.Sweep())
	assert.Empty(t, nf.Toasts())
	_, ok = nf.NextExpiry()
	assert.False(t, ok)
}

func TestNewFolderIME(t *testing.T) {
	nf, _, _ := newTestFolder()

	nf.HandleIME(IMEEvent{Kind: IMEEnabled})
	assert.True(t, nf.IME.Enabled)

	nf.HandleIME(IMEEvent{Kind: IMEPreedit, Text: "にほん"})
	assert.Equal(t, "にほん", nf.IME.Preedit)
	assert.Equal(t, "", nf.Buffer.String(), "preedit never reaches the buffer")

	nf.HandleIME(IMEEvent{Kind: IMECommit, Text: "日本"})
	assert.Equal(t, "日本", nf.Buffer.String())
	assert.Equal(t, "", nf.IME.Preedit)

	nf.Buffer.Append(strings.Repeat("x", 29))
	nf.HandleIME(IMEEvent{Kind: IMECommit, Text: "語です"})
	assert.Equal(t, 32, nf.Buffer.Len())
	assert.True(t, strings.HasSuffix(nf.Buffer.String(), "x語"))

	nf.HandleIME(IMEEvent{Kind: IMEDisabled})
	assert.False(t, nf.IME.Enabled)
}

func TestNewFolderClickTogglesIME(t *testing.T) {
	nf, _, _ := newTestFolder()

	nf.Click(12, 40)
	assert.True(t, nf.IME.Enabled)
	assert.Equal(t, float32(12), nf.IME.X)
	assert.Equal(t, float32(40), nf.IME.Y)

	nf.IME.Preedit = "ka"
	nf.Click(3, 4)
	assert.False(t, nf.IME.Enabled)
	assert.Equal(t, float32(3), nf.IME.X)
	assert.Equal(t, "", nf.IME.Preedit)
}

func TestNewFolderName(t *testing.T) {
	nf, _, _ := newTestFolder()
	nf.Buffer.Append("  reports  ")
	assert.Equal(t, "reports", nf.Name())
}
