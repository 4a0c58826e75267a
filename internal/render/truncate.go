// Package render turns dialog columns into what frontends draw: truncated
// row labels, detail lines and interaction styles. It knows nothing about a
// particular toolkit.
package render

import (
	"strings"
	"unicode/utf8"
)

// DisplayWidth counts an ASCII character as one cell and any other
// character as two.
func DisplayWidth(s string) int {
	w := 0
	for _, r := range s {
		w += runeWidth(r)
	}
	return w
}

func runeWidth(r rune) int {
	if r < utf8.RuneSelf {
		return 1
	}
	return 2
}

// Truncate shortens name to at most max display cells, keeping both ends
// and the extension visible:
//
//	a_very_long_filename_example.txt, 20 -> a_very...example.txt
//	no_extension_but_a_very_long_name, 10 -> no_...name
//
// When the extension leaves no room for the "..." split the result is
// "{prefix}..{ext}", or just ".{ext}".
func Truncate(name string, max int) string {
	if DisplayWidth(name) <= max {
		return name
	}

	stem, ext, ok := splitExt(name)
	if !ok {
		if max <= 3 {
			return strings.Repeat(".", maxInt(max, 0))
		}
		budget := max - 3
		head := takeHead(name, budget/2)
		tail := takeTail(name[len(head):], budget-budget/2)
		return head + "..." + tail
	}

	extWidth := DisplayWidth(ext)
	budget := max - 3 - 1 - extWidth
	if budget <= 0 {
		prefixBudget := max - 2 - extWidth
		if prefixBudget > 0 {
			return takeHead(stem, prefixBudget) + ".." + ext
		}
		return "." + ext
	}

	head := takeHead(stem, budget/2)
	tail := takeTail(stem[len(head):], budget-DisplayWidth(head))
	return head + "..." + tail + "." + ext
}

// splitExt splits at the last dot. Names without a dot, with only a leading
// dot, or ending in a dot have no extension.
func splitExt(name string) (stem, ext string, ok bool) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return name, "", false
	}
	return name[:i], name[i+1:], true
}

// takeHead returns the longest prefix of s that fits in budget cells.
func takeHead(s string, budget int) string {
	w := 0
	for i, r := range s {
		rw := runeWidth(r)
		if w+rw > budget {
			return s[:i]
		}
		w += rw
	}
	return s
}

// takeTail returns the longest suffix of s that fits in budget cells.
func takeTail(s string, budget int) string {
	w := 0
	end := len(s)
	for end > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:end])
		rw := runeWidth(r)
		if w+rw > budget {
			break
		}
		w += rw
		end -= size
	}
	return s[end:]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
