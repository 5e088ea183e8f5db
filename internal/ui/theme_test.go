package ui

import (
	"testing"

	"fyne.io/fyne/v2/theme"
)

func TestToolCribTheme_SetMode(t *testing.T) {
	th := NewToolCribTheme()
	base := theme.DefaultTheme()

	th.SetMode("dark")
	if th.Color(theme.ColorNameBackground, theme.VariantLight) != base.Color(theme.ColorNameBackground, theme.VariantDark) {
		t.Error("dark mode should ignore the requested variant")
	}

	th.SetMode("system")
	if th.Color(theme.ColorNameBackground, theme.VariantLight) != base.Color(theme.ColorNameBackground, theme.VariantLight) {
		t.Error("system mode should follow the requested variant")
	}
}

func TestToolCribTheme_CompactSizes(t *testing.T) {
	th := NewToolCribTheme()
	if th.Size(theme.SizeNamePadding) != 3 {
		t.Errorf("expected compact padding, got %v", th.Size(theme.SizeNamePadding))
	}
	if th.Size(theme.SizeNameScrollBar) != theme.DefaultTheme().Size(theme.SizeNameScrollBar) {
		t.Error("unlisted sizes should fall through to the default theme")
	}
}
