//go:build !nogui

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

type WizardTheme struct{}

var _ fyne.Theme = (*WizardTheme)(nil)

func (m *WizardTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameButton:
		return BrandColor
	case theme.ColorNameBackground:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	case theme.ColorNameForeground:
		return color.RGBA{R: 55, G: 65, B: 81, A: 255} // #374151
	case theme.ColorNameDisabled:
		return color.RGBA{R: 156, G: 163, B: 175, A: 255} // #9ca3af
	case theme.ColorNameDisabledButton:
		return color.RGBA{R: 209, G: 213, B: 219, A: 255}
	case theme.ColorNamePlaceHolder:
		return color.RGBA{R: 107, G: 114, B: 128, A: 255} // #6b7280
	case theme.ColorNamePressed:
		return color.RGBA{R: 29, G: 78, B: 216, A: 255} // #1d4ed8
	case theme.ColorNameHover:
		return color.RGBA{R: 219, G: 234, B: 254, A: 255} // #dbeafe
	case theme.ColorNameInputBackground:
		return color.RGBA{R: 243, G: 244, B: 246, A: 255} // #f3f4f6
	case theme.ColorNameSeparator:
		return color.RGBA{R: 229, G: 231, B: 235, A: 255}
	case theme.ColorNameError:
		return ErrorColor
	case theme.ColorNameSuccess:
		return SuccessColor
	case theme.ColorNameWarning:
		return WarningColor
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (m *WizardTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (m *WizardTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (m *WizardTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 8
	case theme.SizeNameText:
		return 14
	}
	return theme.DefaultTheme().Size(name)
}

var (
	DefaultWindowSize = fyne.NewSize(700, 640)
	BrandColor        = color.RGBA{R: 37, G: 99, B: 235, A: 255} // #2563eb
	SuccessColor      = color.RGBA{R: 34, G: 197, B: 94, A: 255}
	ErrorColor        = color.RGBA{R: 239, G: 68, B: 68, A: 255}
	WarningColor      = color.RGBA{R: 245, G: 158, B: 11, A: 255}
)
