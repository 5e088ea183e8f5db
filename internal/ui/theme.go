package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ToolCribTheme wraps the default Fyne theme with compact sizes so a full
// magazine fits on screen, and pins the light/dark variant from settings.
type ToolCribTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	pinned  bool
}

// NewToolCribTheme follows the system variant.
func NewToolCribTheme() *ToolCribTheme {
	return &ToolCribTheme{base: theme.DefaultTheme()}
}

// SetMode applies a settings value: "light", "dark" or "system".
func (t *ToolCribTheme) SetMode(mode string) {
	switch mode {
	case "light":
		t.variant, t.pinned = theme.VariantLight, true
	case "dark":
		t.variant, t.pinned = theme.VariantDark, true
	default:
		t.pinned = false
	}
}

func (t *ToolCribTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.pinned {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

func (t *ToolCribTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *ToolCribTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for the dense slot table.
func (t *ToolCribTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}

// applyTheme pushes the configured variant to the running app.
func (a *App) applyTheme() {
	a.theme.SetMode(a.config.Theme)
	if app := fyne.CurrentApp(); app != nil {
		app.Settings().SetTheme(a.theme)
	}
}
