package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/ytget/audio-converter/internal/config"
)

// Dark palette
var (
	paletteBackground = color.NRGBA{R: 0x2E, G: 0x2E, B: 0x2E, A: 0xFF}
	paletteButton     = color.NRGBA{R: 0x4A, G: 0x4A, B: 0x4A, A: 0xFF}
	paletteInput      = color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xFF}
	paletteForeground = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	paletteSuccess    = color.NRGBA{R: 0x00, G: 0xB3, B: 0x00, A: 0xFF}
)

// AppTheme is a compact theme. In dark mode it uses the converter palette;
// a non-nil variant pins light or dark regardless of the OS setting.
type AppTheme struct {
	variant *fyne.ThemeVariant
}

// NewAppTheme creates the theme for a config theme name
func NewAppTheme(name string) fyne.Theme {
	switch name {
	case config.ThemeDark:
		v := theme.VariantDark
		return &AppTheme{variant: &v}
	case config.ThemeLight:
		v := theme.VariantLight
		return &AppTheme{variant: &v}
	default:
		return &AppTheme{}
	}
}

// Color returns theme colors
func (t *AppTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.variant != nil {
		variant = *t.variant
	}

	if variant == theme.VariantDark {
		switch name {
		case theme.ColorNameBackground, theme.ColorNameMenuBackground, theme.ColorNameOverlayBackground:
			return paletteBackground
		case theme.ColorNameButton:
			return paletteButton
		case theme.ColorNameInputBackground:
			return paletteInput
		case theme.ColorNameForeground:
			return paletteForeground
		}
	}

	switch name {
	case theme.ColorNameSuccess:
		return paletteSuccess
	case theme.ColorNameError:
		return color.NRGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNameWarning:
		return color.NRGBA{R: 255, G: 193, B: 7, A: 255}
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *AppTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *AppTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *AppTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 16
	case theme.SizeNameSubHeadingText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 3
	case theme.SizeNameSelectionRadius:
		return 2
	}

	return theme.DefaultTheme().Size(name)
}
