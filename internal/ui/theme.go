package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// RuneTheme is a dark, compact theme with the rune glow colors as accents
type RuneTheme struct{}

// NewRuneTheme creates the application theme
func NewRuneTheme() fyne.Theme {
	return &RuneTheme{}
}

// Color returns theme colors. The palette is dark regardless of variant.
func (t *RuneTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x7f, G: 0xff, B: 0xd4, A: 0xff} // aquamarine
	case theme.ColorNameFocus:
		return color.NRGBA{R: 0x8b, G: 0xe9, B: 0xff, A: 0x66}
	case theme.ColorNameHover:
		return color.NRGBA{R: 0xa7, G: 0x8b, B: 0xfa, A: 0x33}
	case theme.ColorNameError:
		return color.NRGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNameBackground:
		return color.NRGBA{R: 14, G: 12, B: 20, A: 255}
	case theme.ColorNameButton:
		return color.NRGBA{R: 30, G: 26, B: 42, A: 255}
	case theme.ColorNameForeground:
		return color.NRGBA{R: 232, G: 226, B: 210, A: 255} // parchment
	}

	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *RuneTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *RuneTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *RuneTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 3
	case theme.SizeNameText:
		return 14
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameCaptionText:
		return 11
	case theme.SizeNameInputRadius:
		return 3
	}

	return theme.DefaultTheme().Size(name)
}
