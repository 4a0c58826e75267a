package styles

import (
	"github.com/charmbracelet/lipgloss"

	"seeker/internal/render"
)

// Interactive turns the style of a row or button into a lipgloss style.
func Interactive(s render.Style) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(color(s.Background)).
		Foreground(color(s.Foreground)).
		Bold(s.Bold)
}

// Row renders one listing row or button label in its interaction state.
func (t Theme) Row(text string, hovered, pressed bool) string {
	return Interactive(render.StyleFor(t.Palette, hovered, pressed)).Render(text)
}
