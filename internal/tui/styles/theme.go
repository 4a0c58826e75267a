package styles

import (
	"github.com/charmbracelet/lipgloss"

	"seeker/internal/config"
)

// Theme holds the lipgloss styles of every screen, derived from a palette.
type Theme struct {
	Palette config.Palette

	App         lipgloss.Style
	Title       lipgloss.Style
	Menu        lipgloss.Style
	ProjectList lipgloss.Style
	Avatar      lipgloss.Style
	Column      lipgloss.Style
	Detail      lipgloss.Style
	Button      lipgloss.Style
	Modal       lipgloss.Style
	Toast       lipgloss.Style
	Help        lipgloss.Style
	Muted       lipgloss.Style
	Error       lipgloss.Style
}

// NewTheme builds the styles for palette p.
func NewTheme(p config.Palette) Theme {
	fg := color(p.Font)
	grey := color(p.FontGrey)
	border := color(p.ButtonBorder)

	return Theme{
		Palette: p,
		App:     lipgloss.NewStyle().Foreground(fg),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			Background(color(p.HomeMenu)).
			Padding(0, 1),
		Menu: lipgloss.NewStyle().
			Foreground(fg).
			Background(color(p.HomeMenu)).
			Padding(1, 2),
		ProjectList: lipgloss.NewStyle().
			Foreground(fg).
			Background(color(p.ProjectList)).
			Padding(1, 2),
		Avatar: lipgloss.NewStyle().
			Bold(true).
			Foreground(color(p.Background)).
			Background(color(p.Pressed)),
		Column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border),
		Detail: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Foreground(grey),
		Button: lipgloss.NewStyle().
			Foreground(fg),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color(p.Pressed)).
			Padding(0, 1),
		Toast: lipgloss.NewStyle().
			Foreground(color(p.Background)).
			Background(color(p.FontGrey)).
			Padding(0, 1),
		Help:  lipgloss.NewStyle().Foreground(grey),
		Muted: lipgloss.NewStyle().Foreground(grey),
		Error: lipgloss.NewStyle().Foreground(color(p.Error)),
	}
}

func color(c config.RGB) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}
