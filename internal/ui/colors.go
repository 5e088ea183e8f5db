package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/ToolCrib/internal/model"
	"github.com/piwi3910/ToolCrib/internal/project"
)

// palette is the quick-pick list of the colors dialog.
var palette = []struct {
	name  string
	color model.Color
}{
	{"White", model.ColorWhite},
	{"Gray", model.ColorGray},
	{"Red", model.ColorRed},
	{"Orange", model.ColorOrange},
	{"Green", model.ColorGreen},
	{"Blue", model.ColorBlue},
}

const customColor = "Custom..."

// showColorsDialog edits the color of every entity type. A change repaints
// all instances of the type in every magazine and the library.
func (a *App) showColorsDialog() {
	poolsBox := container.NewVBox()

	var rebuild func()
	setColor := func(p model.TemplatePool, i int, c model.Color) {
		a.apply(fmt.Sprintf("Change %s Color", p), func() error {
			return a.session.ApplyTemplateColor(p, i, c)
		})
		rebuild()
	}

	rebuild = func() {
		poolsBox.RemoveAll()
		for _, p := range model.TemplatePools() {
			pool := p
			grid := container.NewGridWithColumns(3)
			for i, tmpl := range a.session.State().Templates.Pool(pool) {
				idx := i
				current := tmpl.DisplayColor()

				names := make([]string, 0, len(palette)+1)
				selected := customColor
				for _, pc := range palette {
					names = append(names, pc.name)
					if pc.color == current {
						selected = pc.name
					}
				}
				names = append(names, customColor)

				pick := widget.NewSelect(names, nil)
				pick.SetSelected(selected)
				pick.OnChanged = func(name string) {
					if name == customColor {
						picker := dialog.NewColorPicker("Pick a Color", tmpl.TypeName(), func(c color.Color) {
							setColor(pool, idx, model.ColorFrom(c))
						}, a.window)
						picker.Advanced = true
						picker.SetColor(current.NRGBA())
						picker.Show()
						return
					}
					for _, pc := range palette {
						if pc.name == name && pc.color != current {
							setColor(pool, idx, pc.color)
						}
					}
				}

				grid.Add(widget.NewLabel(tmpl.TypeName()))
				grid.Add(container.NewHBox(colorSwatch(current), widget.NewLabel(current.Hex())))
				grid.Add(pick)
			}
			poolsBox.Add(widget.NewCard(pool.String(), "", grid))
		}
		poolsBox.Refresh()
	}
	rebuild()

	exportBtn := widget.NewButtonWithIcon("Export Palette...", theme.DocumentSaveIcon(), func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			if err := project.SaveTemplates(path, a.session.State().Templates); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save palette: %w", err), a.window)
				return
			}
			a.logger.Info("palette exported", zap.String("path", path))
		}, a.window)
		d.SetFileName("templates.yaml")
		d.Show()
	})

	importBtn := widget.NewButtonWithIcon("Import Palette...", theme.FolderOpenIcon(), func() {
		dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			defer reader.Close()
			set, err := project.LoadTemplates(reader.URI().Path())
			if err != nil {
				dialog.ShowError(fmt.Errorf("failed to load palette: %w", err), a.window)
				return
			}
			st := a.session.Snapshot()
			st.Templates = set
			st.ApplyColors()
			a.restore("Import Palette", st)
			rebuild()
		}, a.window)
	})

	content := container.NewBorder(nil,
		container.NewHBox(layout.NewSpacer(), importBtn, exportBtn),
		nil, nil,
		container.NewVScroll(poolsBox))

	d := dialog.NewCustom("Type Colors", "Close", content, a.window)
	d.Resize(fyne.NewSize(520, 560))
	d.Show()
}
