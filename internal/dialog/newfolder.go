package dialog

import (
	"strings"
	"time"
)

// ToastLifetime is how long an archived buffer stays on screen.
const ToastLifetime = 5 * time.Second

// Key identifies the keys the New-Folder dialog reacts to.
type Key int

const (
	KeyText Key = iota
	KeyEnter
	KeyBackspace
)

// KeyEvent is a key press; Text is the text it produces, if any.
type KeyEvent struct {
	Key  Key
	Text string
}

// IMEKind enumerates input method events.
type IMEKind int

const (
	IMEEnabled IMEKind = iota
	IMEPreedit
	IMECommit
	IMEDisabled
)

// IMEEvent is a composition event from the platform input method.
type IMEEvent struct {
	Kind IMEKind
	Text string
}

// IME is the input method state of the New-Folder window.
type IME struct {
	Enabled bool
	Preedit string
	X, Y    float32 // candidate window position
}

// Toast is a transient label showing an archived buffer.
type Toast struct {
	ID      NodeID
	Text    string
	Expires time.Time
}

// NewFolder is the state of an open New-Folder sub-dialog. It is created
// when the sub-dialog opens and dropped when it closes.
type NewFolder struct {
	Buffer TextBuffer
	IME    IME

	tree   *Tree
	window NodeID
	now    func() time.Time
	toasts []Toast
}

func newNewFolder(tree *Tree, window NodeID, now func() time.Time) *NewFolder {
	return &NewFolder{tree: tree, window: window, now: now}
}

// Name is the trimmed folder name to create.
func (n *NewFolder) Name() string {
	return strings.TrimSpace(n.Buffer.String())
}

// HandleKey applies one key press to the buffer.
func (n *NewFolder) HandleKey(ev KeyEvent) {
	switch ev.Key {
	case KeyEnter:
		if n.Buffer.Len() == 0 {
			return
		}
		n.addToast(n.Buffer.String())
		n.Buffer.Clear()
	case KeyBackspace:
		n.Buffer.Backspace()
	case KeyText:
		n.Buffer.Append(ev.Text)
	}
}

// HandleIME applies a composition event. Only commits change the buffer.
func (n *NewFolder) HandleIME(ev IMEEvent) {
	switch ev.Kind {
	case IMECommit:
		n.Buffer.Insert(ev.Text)
		n.IME.Preedit = ""
	case IMEPreedit:
		n.IME.Preedit = ev.Text
	case IMEEnabled:
		n.IME.Enabled = true
	case IMEDisabled:
		n.IME.Enabled = false
		n.IME.Preedit = ""
	}
}

// Click handles a left click at (x, y): it toggles the input method and
// moves its candidate window there.
func (n *NewFolder) Click(x, y float32) {
	n.IME.Enabled = !n.IME.Enabled
	n.IME.X, n.IME.Y = x, y
	if !n.IME.Enabled {
		n.IME.Preedit = ""
	}
}

func (n *NewFolder) addToast(text string) {
	id := n.tree.Spawn(n.window, Node{Kind: KindToast, Label: text})
	n.toasts = append(n.toasts, Toast{ID: id, Text: text, Expires: n.now().Add(ToastLifetime)})
}

// Toasts returns the toasts still alive, oldest first.
func (n *NewFolder) Toasts() []Toast {
	return append([]Toast(nil), n.toasts...)
}

// Sweep despawns expired toasts and reports how many went.
func (n *NewFolder) Sweep() int {
	now := n.now()
	kept := n.toasts[:0]
	removed := 0
	for _, t := range n.toasts {
		if now.Before(t.Expires) {
			kept = append(kept, t)
			continue
		}
		n.tree.Despawn(t.ID)
		removed++
	}
	n.toasts = kept
	return removed
}

// NextExpiry is when the oldest toast expires, if any.
func (n *NewFolder) NextExpiry() (time.Time, bool) {
	if len(n.toasts) == 0 {
		return time.Time{}, false
	}
	return n.toasts[0].Expires, true
}
