package ui

import (
	"errors"
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/ToolCrib/internal/calc"
)

// buildCalculationsPanel is the unit converter screen.
func (a *App) buildCalculationsPanel() fyne.CanvasObject {
	quantities := calc.Quantities()
	names := make([]string, len(quantities))
	for i, q := range quantities {
		names[i] = q.String()
	}

	valueEntry := widget.NewEntry()
	valueEntry.SetText("1")
	fromSelect := widget.NewSelect(nil, nil)
	toSelect := widget.NewSelect(nil, nil)
	result := widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	quantity := calc.Length
	update := func() {
		v, err := parseMeasure(valueEntry.Text)
		if err != nil {
			result.SetText("Enter a number")
			return
		}
		out, err := convertForDisplay(quantity, v, fromSelect.Selected, toSelect.Selected)
		if err != nil {
			result.SetText(err.Error())
			return
		}
		result.SetText(out)
	}

	quantitySelect := widget.NewSelect(names, func(selected string) {
		for _, q := range quantities {
			if q.String() == selected {
				quantity = q
			}
		}
		units := calc.Units(quantity)
		fromSelect.Options = units
		toSelect.Options = units
		fromSelect.SetSelectedIndex(0)
		toSelect.SetSelectedIndex(min(1, len(units)-1))
		update()
	})

	valueEntry.OnChanged = func(string) { update() }
	fromSelect.OnChanged = func(string) { update() }
	toSelect.OnChanged = func(string) { update() }
	quantitySelect.SetSelected(quantity.String())

	form := container.NewGridWithColumns(2,
		widget.NewLabel("Quantity"), quantitySelect,
		widget.NewLabel("Value"), valueEntry,
		widget.NewLabel("From"), fromSelect,
		widget.NewLabel("To"), toSelect,
		widget.NewLabel("Result"), result,
	)

	return container.NewBorder(
		widget.NewLabelWithStyle("Unit Conversion", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		container.NewVBox(widget.NewCard("", "Length, area, weight, temperature and angle", form)),
	)
}

// convertForDisplay converts v and formats "v from = r to".
func convertForDisplay(q calc.Quantity, v float64, from, to string) (string, error) {
	if from == "" || to == "" {
		return "", errors.New("choose both units")
	}
	r, err := calc.Convert(q, v, from, to)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s = %s %s",
		strconv.FormatFloat(v, 'g', -1, 64), from,
		strconv.FormatFloat(r, 'g', 6, 64), to), nil
}
