package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/ToolCrib/internal/model"
)

// templateChoice is one entry of an add-form's type dropdown.
type templateChoice struct {
	pool  model.TemplatePool
	index int
	label string
}

func (a *App) templateChoices(pools ...model.TemplatePool) []templateChoice {
	var out []templateChoice
	for _, p := range pools {
		for i, e := range a.session.State().Templates.Pool(p) {
			out = append(out, templateChoice{pool: p, index: i, label: e.TypeName()})
		}
	}
	return out
}

func choiceLabels(choices []templateChoice) []string {
	labels := make([]string, len(choices))
	for i, c := range choices {
		labels[i] = c.label
	}
	return labels
}

// parseMeasure accepts a decimal point or comma.
func parseMeasure(text string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(text), ",", "."), 64)
}

// ─── Tool ──────────────────────────────────────────────────

func (a *App) showAddToolDialog() {
	a.session.SetScreen(model.ScreenAddTool)
	choices := a.templateChoices(model.PoolRotating, model.PoolInsert)

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Tool name")

	measureEntry := widget.NewEntry()
	measureItem := widget.NewFormItem("Diameter (mm)", measureEntry)

	var current *model.Tool
	typeSelect := widget.NewSelect(choiceLabels(choices), nil)
	typeSelect.OnChanged = func(string) {
		i := typeSelect.SelectedIndex()
		if i < 0 {
			return
		}
		c := choices[i]
		if err := a.session.SelectTemplate(c.pool, c.index); err != nil {
			return
		}
		tmpl, ok := a.session.SelectedTemplate(c.pool).(*model.Tool)
		if !ok {
			return
		}
		current = tmpl
		nameEntry.SetText(tmpl.Name)
		if tmpl.Category() == model.CategoryLatheInsert {
			measureItem.Text = "Angle (°)"
			measureEntry.SetText(strconv.FormatFloat(tmpl.Degree, 'g', -1, 64))
		} else {
			measureItem.Text = "Diameter (mm)"
			measureEntry.SetText(strconv.FormatFloat(tmpl.Diameter, 'g', -1, 64))
		}
	}

	form := dialog.NewForm("Add Tool", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Type", typeSelect),
			widget.NewFormItem("Name", nameEntry),
			measureItem,
		},
		func(ok bool) {
			if !ok || current == nil {
				a.session.ResetStates()
				return
			}
			v, err := parseMeasure(measureEntry.Text)
			if err != nil || v <= 0 {
				a.session.ResetStates()
				dialog.ShowError(fmt.Errorf("%s must be a number > 0", strings.ToLower(current.MeasureLabel())), a.window)
				return
			}
			tool := *current
			tool.Name = strings.TrimSpace(nameEntry.Text)
			if tool.Category() == model.CategoryLatheInsert {
				tool.Degree = v
			} else {
				tool.Diameter = v
			}
			a.apply("Add Tool", func() error {
				return a.session.AddTool(tool)
			})
		},
		a.window,
	)
	if len(choices) > 0 {
		typeSelect.SetSelectedIndex(0)
	}
	form.Resize(fyne.NewSize(400, 250))
	form.Show()
}

// ─── Holder / Adapter ──────────────────────────────────────

func (a *App) showAddHolderDialog() {
	a.session.SetScreen(model.ScreenAddHolder)
	a.showNamedEntityDialog("Add Holder", model.PoolHolder, func(e model.Entity, name string) error {
		h, ok := e.(*model.Holder)
		if !ok {
			return fmt.Errorf("template is not a holder")
		}
		h.Name = name
		return a.session.AddHolder(*h)
	})
}

func (a *App) showAddAdapterDialog() {
	a.session.SetScreen(model.ScreenAddAdapter)
	a.showNamedEntityDialog("Add Adapter", model.PoolAdapter, func(e model.Entity, name string) error {
		ad, ok := e.(*model.Adapter)
		if !ok {
			return fmt.Errorf("template is not an adapter")
		}
		ad.Name = name
		return a.session.AddAdapter(*ad)
	})
}

// showNamedEntityDialog asks for a type and a name, then hands a copy of
// the chosen template to add.
func (a *App) showNamedEntityDialog(title string, pool model.TemplatePool, add func(model.Entity, string) error) {
	choices := a.templateChoices(pool)

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Name")

	typeSelect := widget.NewSelect(choiceLabels(choices), nil)
	typeSelect.OnChanged = func(string) {
		i := typeSelect.SelectedIndex()
		if i < 0 {
			return
		}
		if err := a.session.SelectTemplate(pool, choices[i].index); err != nil {
			return
		}
		if tmpl := a.session.SelectedTemplate(pool); tmpl != nil {
			nameEntry.SetText(tmpl.DisplayName())
		}
	}

	form := dialog.NewForm(title, "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Type", typeSelect),
			widget.NewFormItem("Name", nameEntry),
		},
		func(ok bool) {
			tmpl := a.session.SelectedTemplate(pool)
			if !ok || tmpl == nil {
				a.session.ResetStates()
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			a.apply(title, func() error {
				return add(tmpl, name)
			})
		},
		a.window,
	)
	if len(choices) > 0 {
		typeSelect.SetSelectedIndex(0)
	}
	form.Resize(fyne.NewSize(400, 200))
	form.Show()
}

// ─── Machine ───────────────────────────────────────────────

func (a *App) showAddMachineDialog() {
	a.session.SetScreen(model.ScreenAddMachine)

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Machine name")
	nameEntry.SetText(fmt.Sprintf("Machine %d", len(a.session.State().Machines)+1))

	magOptions := make([]string, 0, model.MaxMagazines)
	for n := model.MinMagazines; n <= model.MaxMagazines; n++ {
		magOptions = append(magOptions, strconv.Itoa(n))
	}
	magSelect := widget.NewSelect(magOptions, nil)
	magSelect.SetSelected("1")

	sizeEntry := widget.NewEntry()
	sizeEntry.SetText("24")

	form := dialog.NewForm("Add Machine", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Magazines", magSelect),
			widget.NewFormItem(fmt.Sprintf("Slots per magazine (%d-%d)", model.MinMagazineSize, model.MaxMagazineSize), sizeEntry),
		},
		func(ok bool) {
			if !ok {
				a.session.ResetStates()
				return
			}
			mags, _ := strconv.Atoi(magSelect.Selected)
			size, err := strconv.Atoi(strings.TrimSpace(sizeEntry.Text))
			if err != nil {
				a.session.ResetStates()
				dialog.ShowError(fmt.Errorf("slots per magazine must be a whole number"), a.window)
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			a.apply("Add Machine", func() error {
				_, err := a.session.AddMachine(name, mags, size)
				return err
			})
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 250))
	form.Show()
}
