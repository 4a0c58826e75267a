package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"seeker/internal/render"
	"seeker/internal/store"
	"seeker/internal/tui/styles"
)

// ProjectList renders the home screen's project list.
type ProjectList struct {
	Projects []store.Project
	Cursor   int
	Rows     int
	Now      time.Time
}

func (pl ProjectList) View(theme styles.Theme) string {
	if len(pl.Projects) == 0 {
		return theme.Muted.Render("No projects yet. Press o to open a folder.")
	}
	rows := max(pl.Rows, 1)
	start := 0
	if pl.Cursor >= rows {
		start = pl.Cursor - rows + 1
	}

	var lines []string
	for i := start; i < len(pl.Projects) && i < start+rows; i++ {
		p := pl.Projects[i]
		avatar := theme.Avatar.Render(" " + render.ProjectInitials(p.Name) + " ")
		name := theme.Row(" "+p.Name+" ", false, i == pl.Cursor)
		when := theme.Muted.Render("opened " + humanize.RelTime(p.CreatedAt, pl.Now, "ago", "from now"))
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			avatar, " ", name, "  ", theme.Muted.Render(p.Path), "  ", when))
	}
	return strings.Join(lines, "\n")
}
