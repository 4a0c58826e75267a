//go:build !nogui

package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"seeker/internal/config"
	"seeker/internal/render"
)

// seekerTheme colours fyne's widgets from a Seeker palette. Fonts and icons
// come from the default theme.
type seekerTheme struct {
	palette  config.Palette
	fontSize float32
}

func newTheme(p config.Palette, fontSize float32) fyne.Theme {
	return &seekerTheme{palette: p, fontSize: fontSize}
}

func (t *seekerTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	p := t.palette
	idle := render.StyleFor(p, false, false)
	switch name {
	case theme.ColorNameBackground:
		return p.Background.NRGBA()
	case theme.ColorNameForeground:
		return idle.Foreground.NRGBA()
	case theme.ColorNameButton, theme.ColorNameInputBackground:
		return idle.Background.NRGBA()
	case theme.ColorNameInputBorder, theme.ColorNameSeparator:
		return idle.Border.NRGBA()
	case theme.ColorNameHover:
		return render.StyleFor(p, true, false).Background.NRGBA()
	case theme.ColorNamePrimary, theme.ColorNamePressed, theme.ColorNameFocus:
		return render.StyleFor(p, false, true).Background.NRGBA()
	case theme.ColorNameMenuBackground, theme.ColorNameHeaderBackground, theme.ColorNameOverlayBackground:
		return p.HomeMenu.NRGBA()
	case theme.ColorNamePlaceHolder, theme.ColorNameDisabled:
		return p.FontGrey.NRGBA()
	case theme.ColorNameError:
		return p.Error.NRGBA()
	}
	variant := theme.VariantLight
	if p.Dark {
		variant = theme.VariantDark
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (t *seekerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *seekerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *seekerTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameText && t.fontSize > 0 {
		return t.fontSize
	}
	return theme.DefaultTheme().Size(name)
}
