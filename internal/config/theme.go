package config

import (
	"fmt"
	"image/color"
	"sort"
)

// RGB is an opaque sRGB colour.
type RGB struct {
	R, G, B uint8
}

// Hex formats the colour as #rrggbb, the form lipgloss accepts.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// NRGBA converts the colour for image/color consumers such as fyne.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Palette holds the colours the frontends style the home screen and the
// file dialog with.
type Palette struct {
	Name         string
	Dark         bool
	Background   RGB
	HomeMenu     RGB
	ProjectList  RGB
	Hovered      RGB
	Pressed      RGB
	ButtonBorder RGB
	Font         RGB
	FontGrey     RGB
	Error        RGB
}

var themes = map[string]Palette{
	"dark": {
		Name:         "dark",
		Dark:         true,
		Background:   RGB{0, 0, 0},
		HomeMenu:     RGB{43, 45, 48},
		ProjectList:  RGB{30, 31, 34},
		Hovered:      RGB{50, 66, 107},
		Pressed:      RGB{53, 116, 240},
		ButtonBorder: RGB{79, 81, 86},
		Font:         RGB{218, 220, 224},
		FontGrey:     RGB{134, 138, 145},
		Error:        RGB{219, 92, 92},
	},
	"light": {
		Name:         "light",
		Background:   RGB{255, 255, 255},
		HomeMenu:     RGB{235, 236, 240},
		ProjectList:  RGB{247, 248, 250},
		Hovered:      RGB{211, 223, 250},
		Pressed:      RGB{53, 116, 240},
		ButtonBorder: RGB{196, 198, 204},
		Font:         RGB{30, 31, 34},
		FontGrey:     RGB{108, 112, 126},
		Error:        RGB{198, 40, 40},
	},
}

// GetTheme returns the palette called name, or the dark palette when name is
// unknown.
func GetTheme(name string) Palette {
	if p, ok := themes[name]; ok {
		return p
	}
	return themes["dark"]
}

// Palette returns the palette selected by window_theme.
func (c *Config) Palette() Palette {
	return GetTheme(c.WindowTheme)
}

// ListThemes returns the available theme names, sorted.
func ListThemes() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
