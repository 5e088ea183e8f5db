package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/ToolCrib/internal/model"
)

// ─── Library Panel ─────────────────────────────────────────

func (a *App) buildLibraryPanel() fyne.CanvasObject {
	a.libraryContainer = container.NewVBox()

	kinds := make([]string, 0, len(model.EntityKinds()))
	for _, k := range model.EntityKinds() {
		kinds = append(kinds, k.String())
	}
	a.librarySelect = widget.NewRadioGroup(kinds, func(selected string) {
		if a.refreshing || selected == "" {
			return
		}
		kind, err := model.ParseEntityKind(selected)
		if err != nil {
			return
		}
		a.session.SetLibraryCategory(kind)
		a.persist()
		a.refresh()
	})
	a.librarySelect.Horizontal = true
	a.librarySelect.Required = true

	addBtn := widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), func() {
		switch a.session.State().Library.Category {
		case model.KindHolder:
			a.showAddHolderDialog()
		case model.KindAdapter:
			a.showAddAdapterDialog()
		default:
			a.showAddToolDialog()
		}
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Library", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			a.librarySelect,
			layout.NewSpacer(),
			addBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.libraryContainer),
	)
}

func (a *App) refreshLibrary() {
	a.libraryContainer.RemoveAll()
	lib := &a.session.State().Library
	kind := lib.Category
	a.librarySelect.SetSelected(kind.String())

	entries := lib.List(kind)
	if len(entries) == 0 {
		a.libraryContainer.Add(widget.NewLabel(
			fmt.Sprintf("No %ss in the library. Click 'Add' or import a file to begin.", kind)))
		return
	}

	header := container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Type", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Category", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Measure", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.libraryContainer.Add(header)
	a.libraryContainer.Add(widget.NewSeparator())

	for i, e := range entries {
		idx := i
		name := e.DisplayName()
		row := container.NewGridWithColumns(5,
			container.NewBorder(nil, nil, colorSwatch(e.DisplayColor()), nil, widget.NewLabel(name)),
			widget.NewLabel(e.TypeName()),
			widget.NewLabel(e.CategoryName()),
			widget.NewLabel(measureText(e)),
			container.NewHBox(
				layout.NewSpacer(),
				newIconButtonWithTooltip(theme.DeleteIcon(), "Delete "+name, func() {
					a.confirmRemoveFromLibrary(kind, idx, name)
				}),
			),
		)
		a.libraryContainer.Add(row)
	}
}

func (a *App) confirmRemoveFromLibrary(kind model.EntityKind, i int, name string) {
	dialog.ShowConfirm("Delete "+kind.String(),
		fmt.Sprintf("Delete %q from the library?", name),
		func(ok bool) {
			if !ok {
				return
			}
			a.apply("Delete "+kind.String(), func() error {
				return a.session.RemoveFromLibrary(kind, i)
			})
		}, a.window)
}

// measureText formats the diameter or angle of a tool; other entities have none.
func measureText(e model.Entity) string {
	t, ok := e.(*model.Tool)
	if !ok {
		return ""
	}
	if t.Category() == model.CategoryLatheInsert {
		return fmt.Sprintf("%g°", t.Degree)
	}
	return fmt.Sprintf("Ø%g mm", t.Diameter)
}
