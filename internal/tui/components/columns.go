package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"seeker/internal/dialog"
	"seeker/internal/render"
	"seeker/internal/tui/common"
)

// ColumnTop is the screen line holding the top border of the columns. The
// dialog header and a blank line sit above it.
const ColumnTop = 2

// dialogChrome is every line of the dialog screen that is not a column row:
// header, blank line, two borders, buttons, status and help.
const dialogChrome = 7

// DefaultRows is used until the terminal reports its size.
const DefaultRows = 20

// Columns is the geometry of the Miller columns on screen.
type Columns struct {
	Width     int // inner width of every column
	Rows      int // visible rows per column
	NameWidth int
}

// Layout sizes the columns for a terminal of height lines.
func Layout(height, nameWidth, columnWidth int) Columns {
	rows := DefaultRows
	if height > 0 {
		rows = max(3, height-dialogChrome)
	}
	return Columns{Width: columnWidth, Rows: rows, NameWidth: nameWidth}
}

// OuterWidth is the width one column takes on screen, borders included.
func (c Columns) OuterWidth() int {
	return c.Width + 2
}

// ButtonRow is the screen line of the dialog buttons.
func (c Columns) ButtonRow() int {
	return ColumnTop + c.Rows + 2
}

// Window returns the columns that fit on a screen width cells wide. It ends
// at the deepest column unless that would push the focused column off the
// left edge. A width of zero or less shows every column.
func (c Columns) Window(cols []dialog.Column, width int, focus dialog.Level) []dialog.Column {
	if width <= 0 || len(cols) == 0 {
		return cols
	}
	fit := max(1, width/c.OuterWidth())
	first := max(0, len(cols)-fit)
	for i, col := range cols {
		if col.Level == focus && i < first {
			first = i
			break
		}
	}
	return cols[first:min(len(cols), first+fit)]
}

// Hit maps a screen cell to a listing row. cols are the columns on screen,
// as returned by Window. offset returns the scroll offset of the column at
// a level.
func (c Columns) Hit(cols []dialog.Column, x, y int, offset func(dialog.Level) int) (dialog.Level, int, bool) {
	first := ColumnTop + 1
	if x < 0 || y < first || y >= first+c.Rows {
		return 0, 0, false
	}
	i, inner := x/c.OuterWidth(), x%c.OuterWidth()
	if i >= len(cols) || inner == 0 || inner == c.OuterWidth()-1 {
		return 0, 0, false
	}
	col := cols[i]
	if col.Kind != dialog.KindListing {
		return 0, 0, false
	}
	row := y - first + offset(col.Level)
	if row >= len(col.Entries) {
		return 0, 0, false
	}
	return col.Level, row, true
}

// ScrollTo returns the offset that keeps cursor visible.
func (c Columns) ScrollTo(offset, cursor int) int {
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+c.Rows {
		return cursor - c.Rows + 1
	}
	return offset
}

// View renders the open columns that fit the screen side by side.
func (c Columns) View(m common.ModelReader) string {
	width, _ := m.Size()
	focus, _ := m.Focus()
	cols := c.Window(m.Columns(), width, focus)
	if len(cols) == 0 {
		return ""
	}
	views := make([]string, 0, len(cols))
	for _, col := range cols {
		if col.Kind == dialog.KindDetail {
			views = append(views, c.detail(m, col))
			continue
		}
		views = append(views, c.listing(m, col))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

func (c Columns) listing(m common.ModelReader, col dialog.Column) string {
	theme := m.Theme()
	focusLevel, focusRow := m.Focus()
	hoverLevel, hoverRow, hovering := m.Hover()
	offset := m.Offset(col.Level)

	rows := render.Rows(col, c.NameWidth, m.Pressed)
	lines := make([]string, 0, c.Rows)
	for i := offset; i < len(rows) && len(lines) < c.Rows; i++ {
		hovered := (col.Level == focusLevel && i == focusRow) ||
			(hovering && col.Level == hoverLevel && i == hoverRow)
		lines = append(lines, theme.Row(c.rowText(rows[i]), hovered, rows[i].Pressed))
	}
	if len(rows) == 0 {
		lines = append(lines, theme.Muted.Render(pad("(empty)", c.Width)))
	}
	return c.box(theme.Column, lines)
}

// rowText lays a row out across the column: label on the left, directory
// marker against the right border.
func (c Columns) rowText(r render.Row) string {
	if r.Marker == "" {
		return pad(r.Label, c.Width)
	}
	return pad(r.Label, c.Width-lipgloss.Width(r.Marker)) + r.Marker
}

func (c Columns) detail(m common.ModelReader, col dialog.Column) string {
	theme := m.Theme()
	var lines []string
	if col.Detail != nil {
		for _, l := range render.DetailLines(*col.Detail) {
			lines = append(lines, pad(render.Truncate(l, c.Width), c.Width))
		}
	}
	return c.box(theme.Detail, lines)
}

func (c Columns) box(style lipgloss.Style, lines []string) string {
	for len(lines) < c.Rows {
		lines = append(lines, strings.Repeat(" ", c.Width))
	}
	return style.Width(c.Width).Height(c.Rows).Render(strings.Join(lines, "\n"))
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
