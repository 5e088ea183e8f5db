package ui

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/ToolCrib/internal/engine"
	"github.com/piwi3910/ToolCrib/internal/gcode"
	"github.com/piwi3910/ToolCrib/internal/model"
	"github.com/piwi3910/ToolCrib/internal/ui/widgets"
)

// ─── Magazine Panel ────────────────────────────────────────

func (a *App) buildMagazinePanel() fyne.CanvasObject {
	a.machineSelect = widget.NewSelect(nil, func(string) {
		if a.refreshing {
			return
		}
		if err := a.session.SelectMachine(a.machineSelect.SelectedIndex()); err != nil {
			dialog.ShowError(err, a.window)
		}
		a.persist()
		a.refresh()
	})
	a.machineSelect.PlaceHolder = "(no machine)"

	a.magazineSelect = widget.NewSelect(nil, func(string) {
		if a.refreshing {
			return
		}
		if err := a.session.SelectMagazine(a.magazineSelect.SelectedIndex()); err != nil {
			dialog.ShowError(err, a.window)
		}
		a.persist()
		a.refresh()
	})

	addMachineBtn := newButtonWithTooltip("Add", theme.ContentAddIcon(), "Add a machine", func() {
		a.showAddMachineDialog()
	})
	removeMachineBtn := newButtonWithTooltip("Remove", theme.DeleteIcon(), "Remove the machine and return its contents to the library", func() {
		a.confirmRemoveMachine()
	})

	a.carousel = widgets.NewCarousel(model.Magazine{}, carouselSize)
	a.carousel.OnTapped = func(slot int) {
		a.carousel.SetHighlight(slot)
		a.showSlotDetails(slot)
	}

	sidebar := container.NewVBox(
		widget.NewLabelWithStyle("Machine", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		a.machineSelect,
		container.NewGridWithColumns(2, addMachineBtn, removeMachineBtn),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Magazine", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		a.magazineSelect,
		widget.NewSeparator(),
		container.NewCenter(a.carousel),
	)

	filterNames := make([]string, 0, len(model.ToolCategories()))
	for _, c := range model.ToolCategories() {
		filterNames = append(filterNames, c.String())
	}
	a.filterSelect = widget.NewSelect(filterNames, func(selected string) {
		if a.refreshing {
			return
		}
		c, err := model.ParseToolCategory(selected)
		if err != nil {
			return
		}
		a.session.SelectFilter(c)
		a.persist()
		a.refresh()
	})

	sortNames := make([]string, 0, len(model.SortKeys()))
	for _, k := range model.SortKeys() {
		sortNames = append(sortNames, k.String())
	}
	a.sortSelect = widget.NewSelect(sortNames, func(selected string) {
		if a.refreshing {
			return
		}
		k, ok := model.ParseSortKey(selected)
		if !ok {
			return
		}
		a.session.SelectSort(k)
		a.persist()
		a.refresh()
	})

	toolbar := container.NewHBox(
		widget.NewLabel("Filter:"), a.filterSelect,
		widget.NewLabel("Sort:"), a.sortSelect,
		layout.NewSpacer(),
		newIconButtonWithTooltip(theme.ContentUndoIcon(), "Undo", a.undo),
		newIconButtonWithTooltip(theme.ContentRedoIcon(), "Redo", a.redo),
	)

	a.slotContainer = container.NewVBox()
	a.statusLabel = widget.NewLabel("")
	a.statusLabel.Wrapping = fyne.TextWrapWord

	table := container.NewBorder(toolbar, a.statusLabel, nil, nil,
		container.NewVScroll(a.slotContainer))

	split := container.NewHSplit(container.NewVScroll(sidebar), table)
	split.SetOffset(0.3)
	return split
}

// refreshSelectors syncs the dropdowns with the session state.
func (a *App) refreshSelectors() {
	st := a.session.State()

	a.machineSelect.Options = st.MachineNames()
	if sel := st.Selections.Machine; sel != nil {
		a.machineSelect.SetSelectedIndex(*sel)
	} else {
		a.machineSelect.ClearSelected()
	}
	a.machineSelect.Refresh()

	if m := st.CurrentMachine(); m != nil {
		a.magazineSelect.Options = m.MagazineNames()
		if m.CurrentMagazine != nil {
			a.magazineSelect.SetSelectedIndex(*m.CurrentMagazine)
		}
		a.magazineSelect.Enable()
	} else {
		a.magazineSelect.Options = nil
		a.magazineSelect.ClearSelected()
		a.magazineSelect.Disable()
	}
	a.magazineSelect.Refresh()

	a.filterSelect.SetSelected(st.View.Filter.String())
	a.sortSelect.SetSelected(st.View.Sort.String())
}

// refreshMagazine rebuilds the slot table and the carousel.
func (a *App) refreshMagazine() {
	a.slotContainer.RemoveAll()
	st := a.session.State()

	mag := st.CurrentMagazine()
	if mag == nil {
		a.carousel.SetMagazine(model.Magazine{})
		a.slotContainer.Add(widget.NewLabel("No machine yet. Click 'Add' next to Machine to begin."))
		a.setStatus("")
		return
	}
	a.carousel.SetMagazine(*mag)

	header := container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Slot", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Tool", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Holder", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Adapter", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Comment", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	a.slotContainer.Add(header)
	a.slotContainer.Add(widget.NewSeparator())

	rows := a.session.Display()
	if len(rows) == 0 {
		a.slotContainer.Add(widget.NewLabel("No slots match the current filter."))
	}
	for _, slot := range rows {
		a.slotContainer.Add(a.buildSlotRow(slot))
	}

	a.setStatus(a.magazineStatus(mag))
}

// buildSlotRow renders one projected slot. Every action refers back to the
// magazine through slot.Index, never the row position.
func (a *App) buildSlotRow(slot model.Slot) fyne.CanvasObject {
	tnum := gcode.ToolForSlot(slot.Index, a.config.ToolNumberOffset)
	slotLabel := widget.NewLabel(fmt.Sprintf("%d (T%d)", slot.Index, tnum))

	comment := widget.NewLabel(slot.Comment)
	comment.Truncation = fyne.TextTruncateEllipsis
	index := slot.Index
	editBtn := newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit comment", func() {
		a.showCommentDialog(index)
	})

	return container.NewGridWithColumns(5,
		slotLabel,
		a.occupantCell(slot, model.KindTool),
		a.occupantCell(slot, model.KindHolder),
		a.occupantCell(slot, model.KindAdapter),
		container.NewBorder(nil, nil, nil, editBtn, comment),
	)
}

func (a *App) occupantCell(slot model.Slot, kind model.EntityKind) fyne.CanvasObject {
	index := slot.Index
	occ := slot.Occupant(kind)
	if occ == nil {
		addBtn := newIconButtonWithTooltip(theme.ContentAddIcon(),
			fmt.Sprintf("Load a %s from the library", strings.ToLower(kind.String())),
			func() { a.startLoad(kind, index) })
		return container.NewBorder(nil, nil, nil, addBtn, widget.NewLabel("-"))
	}

	label := widget.NewLabel(entityLabel(occ))
	label.Truncation = fyne.TextTruncateEllipsis
	removeBtn := newIconButtonWithTooltip(theme.ContentRemoveIcon(),
		fmt.Sprintf("Return %s to the library", occ.DisplayName()),
		func() {
			a.apply("Return "+kind.String(), func() error {
				return a.session.BeginMove(engine.ModeFor(kind, engine.ToLibrary), index)
			})
		})
	return container.NewBorder(nil, nil, colorSwatch(occ.DisplayColor()), removeBtn, label)
}

// startLoad begins a library-to-slot move and asks which entity to load.
func (a *App) startLoad(kind model.EntityKind, slotIndex int) {
	lib := &a.session.State().Library
	if lib.Len(kind) == 0 {
		dialog.ShowInformation("Library empty",
			fmt.Sprintf("There are no %ss in the library. Add one first.", strings.ToLower(kind.String())),
			a.window)
		return
	}
	before, ok := a.beginLoad(kind, slotIndex)
	if !ok {
		return
	}

	options := make([]string, 0, lib.Len(kind))
	for i, e := range lib.List(kind) {
		options = append(options, fmt.Sprintf("%d. %s", i+1, entityLabel(e)))
	}
	choice := widget.NewSelect(options, nil)
	choice.SetSelectedIndex(0)

	title := fmt.Sprintf("Load %s into slot %d", kind, slotIndex)
	dialog.ShowForm(title, "Load", "Cancel",
		[]*widget.FormItem{widget.NewFormItem(kind.String(), choice)},
		func(ok bool) {
			if !ok || choice.SelectedIndex() < 0 {
				a.cancelLoad(before)
				return
			}
			a.finishLoad(before, choice.SelectedIndex())
		}, a.window)
}

// beginLoad starts the move and returns the state from before it. Tool
// moves reset the view, so undo and cancel go back to that state.
func (a *App) beginLoad(kind model.EntityKind, slotIndex int) (Snapshot, bool) {
	before := Snapshot{State: a.session.Snapshot(), Label: "Load " + kind.String()}
	if err := a.session.BeginMove(engine.ModeFor(kind, engine.ToMagazine), slotIndex); err != nil {
		dialog.ShowError(err, a.window)
		return Snapshot{}, false
	}
	a.refresh()
	return before, true
}

func (a *App) finishLoad(before Snapshot, libraryIndex int) bool {
	return a.applyFrom(before, func() error {
		if err := a.session.ChooseLibraryItem(libraryIndex); err != nil {
			a.session.Cancel()
			return err
		}
		return a.session.Commit()
	})
}

func (a *App) cancelLoad(before Snapshot) {
	a.session.Restore(before.State)
	a.refresh()
}

func (a *App) showCommentDialog(slotIndex int) {
	mag := a.session.State().CurrentMagazine()
	if mag == nil {
		return
	}
	slot := mag.SlotByIndex(slotIndex)
	if slot == nil {
		return
	}
	if err := a.session.BeginMove(engine.MoveEditComment, slotIndex); err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	entry := widget.NewMultiLineEntry()
	entry.SetText(slot.Comment)
	entry.SetMinRowsVisible(3)

	d := dialog.NewForm(fmt.Sprintf("Comment for slot %d", slotIndex), "Save", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Comment", entry)},
		func(ok bool) {
			if !ok {
				a.session.Cancel()
				return
			}
			a.apply("Edit Comment", func() error {
				return a.session.CommitComment(entry.Text)
			})
		}, a.window)
	d.Resize(fyne.NewSize(420, 220))
	d.Show()
}

func (a *App) showSlotDetails(slotIndex int) {
	mag := a.session.State().CurrentMagazine()
	if mag == nil {
		return
	}
	slot := mag.SlotByIndex(slotIndex)
	if slot == nil {
		return
	}
	msg := fmt.Sprintf("T%d\n\n", gcode.ToolForSlot(slotIndex, a.config.ToolNumberOffset))
	for _, kind := range model.EntityKinds() {
		text := "-"
		if e := slot.Occupant(kind); e != nil {
			text = entityLabel(e)
		}
		msg += fmt.Sprintf("%s: %s\n", kind, text)
	}
	if slot.Comment != "" {
		msg += "\n" + slot.Comment
	}
	dialog.ShowInformation(fmt.Sprintf("%s, slot %d", mag.Name, slotIndex), msg, a.window)
}

func (a *App) confirmRemoveMachine() {
	sel := a.session.State().Selections.Machine
	m := a.session.State().CurrentMachine()
	if sel == nil || m == nil {
		return
	}
	i := *sel
	dialog.ShowConfirm("Remove Machine",
		fmt.Sprintf("Remove %q? Everything loaded in its magazines goes back to the library.", m.Name),
		func(ok bool) {
			if !ok {
				return
			}
			a.apply("Remove Machine", func() error {
				return a.session.RemoveMachine(i)
			})
		}, a.window)
}

// magazineStatus summarizes occupancy and clearance warnings.
func (a *App) magazineStatus(mag *model.Magazine) string {
	lines := []string{fmt.Sprintf("%d of %d slots occupied", mag.Occupied(), mag.Size())}
	for _, issue := range engine.CheckClearance(mag, a.config.MaxPocketDiameter) {
		lines = append(lines, "Warning: "+issue.String())
	}
	return strings.Join(lines, "\n")
}

// entityLabel is the one-line text shown for an entity.
func entityLabel(e model.Entity) string {
	if t, ok := e.(*model.Tool); ok {
		return t.Summary()
	}
	return e.DisplayName()
}

func colorSwatch(c model.Color) fyne.CanvasObject {
	rect := canvas.NewRectangle(c.NRGBA())
	rect.StrokeColor = color.NRGBA{R: 90, G: 90, B: 90, A: 255}
	rect.StrokeWidth = 1
	rect.SetMinSize(fyne.NewSize(14, 14))
	return container.NewCenter(rect)
}
