package dialog

import (
	"unicode"
	"unicode/utf8"
)

// MaxFolderNameLen bounds the New-Folder text buffer, in characters.
const MaxFolderNameLen = 32

// TextBuffer accumulates the folder name typed into the New-Folder dialog.
// It never holds more than MaxFolderNameLen characters and never holds
// control characters.
type TextBuffer struct {
	runes []rune
}

func (b *TextBuffer) String() string { return string(b.runes) }

// Len is the number of characters held.
func (b *TextBuffer) Len() int { return len(b.runes) }

func (b *TextBuffer) Clear() { b.runes = b.runes[:0] }

// Append adds text when every character is printable and the result still
// fits. Otherwise the buffer is left as it was.
func (b *TextBuffer) Append(text string) bool {
	if text == "" || !printable(text) {
		return false
	}
	if len(b.runes)+utf8.RuneCountInString(text) > MaxFolderNameLen {
		return false
	}
	b.runes = append(b.runes, []rune(text)...)
	return true
}

// Insert adds the printable characters of text one at a time until the
// buffer is full, and returns how many were taken.
func (b *TextBuffer) Insert(text string) int {
	n := 0
	for _, r := range text {
		if len(b.runes) >= MaxFolderNameLen {
			break
		}
		if !printableRune(r) {
			continue
		}
		b.runes = append(b.runes, r)
		n++
	}
	return n
}

// Backspace drops the last character. It is a no-op on an empty buffer.
func (b *TextBuffer) Backspace() bool {
	if len(b.runes) == 0 {
		return false
	}
	b.runes = b.runes[:len(b.runes)-1]
	return true
}

func printable(s string) bool {
	for _, r := range s {
		if !printableRune(r) {
			return false
		}
	}
	return true
}

func printableRune(r rune) bool {
	return r != utf8.RuneError && !unicode.IsControl(r) && unicode.IsPrint(r)
}
