package render

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"seeker/internal/config"
	"seeker/internal/dialog"
	"seeker/internal/fsys"
)

// TimeFormat renders detail timestamps, always in UTC.
const TimeFormat = "2006-01-02 15:04:05"

// DirMarker trails directory rows.
const DirMarker = ">"

// fileRowInset is how much narrower file names are than directory names,
// matching the room directory rows keep for the marker.
const fileRowInset = 3

// Row is one line of a listing column.
type Row struct {
	Entry   dialog.Entry
	Label   string
	Marker  string
	Pressed bool
}

// Text is the label and marker joined for single-string renderers.
func (r Row) Text() string {
	if r.Marker == "" {
		return r.Label
	}
	return r.Label + "  " + r.Marker
}

// Rows builds the rows of a listing column. nameWidth is the directory name
// budget; pressed reports which row feeds the next column and may be nil.
func Rows(col dialog.Column, nameWidth int, pressed func(dialog.Entry) bool) []Row {
	rows := make([]Row, 0, len(col.Entries))
	for _, e := range col.Entries {
		row := Row{Entry: e}
		if e.IsDir {
			row.Label = Truncate(e.Name, nameWidth)
			row.Marker = DirMarker
		} else {
			row.Label = Truncate(e.Name, nameWidth-fileRowInset)
		}
		if pressed != nil {
			row.Pressed = pressed(e)
		}
		rows = append(rows, row)
	}
	return rows
}

// DetailLines formats file metadata as "label: value" lines. Fields that
// could not be read are left out.
func DetailLines(md fsys.Metadata) []string {
	lines := []string{"Name: " + md.Name}
	if md.HasSize {
		lines = append(lines, fmt.Sprintf("Size: %d", md.Size))
	}
	if md.HasCreated {
		lines = append(lines, "Created: "+FormatTime(md.Created))
	}
	if md.HasModified {
		lines = append(lines, "Modified: "+FormatTime(md.Modified))
	}
	if md.MIME != "" {
		lines = append(lines, "Type: "+md.MIME)
	}
	return lines
}

// FormatTime renders t in UTC as YYYY-MM-DD HH:MM:SS.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// Style is the look of an interactive element.
type Style struct {
	Background config.RGB
	Foreground config.RGB
	Border     config.RGB
	Bold       bool
}

// StyleFor maps an element's interaction state to its style. Pressed wins
// over hovered.
func StyleFor(p config.Palette, hovered, pressed bool) Style {
	switch {
	case pressed:
		return Style{Background: p.Pressed, Foreground: p.Font, Border: p.Pressed, Bold: true}
	case hovered:
		return Style{Background: p.Hovered, Foreground: p.Font, Border: p.ButtonBorder}
	default:
		return Style{Background: p.ProjectList, Foreground: p.Font, Border: p.ButtonBorder}
	}
}

// ProjectInitials is the two letter avatar shown next to a project.
func ProjectInitials(name string) string {
	var b strings.Builder
	n := 0
	for _, r := range strings.TrimSpace(name) {
		if n == 2 {
			break
		}
		b.WriteRune(unicode.ToUpper(r))
		n++
	}
	return b.String()
}
