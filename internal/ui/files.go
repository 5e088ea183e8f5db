package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/ToolCrib/internal/export"
	"github.com/piwi3910/ToolCrib/internal/gcode"
	"github.com/piwi3910/ToolCrib/internal/importer"
	"github.com/piwi3910/ToolCrib/internal/model"
	"github.com/piwi3910/ToolCrib/internal/project"
)

// carouselPocket is the pocket diameter used for DXF carousel drawings, in mm.
const carouselPocket = 80.0

// ─── Export Functions ──────────────────────────────────────

// currentMachine returns the selected machine or tells the user to pick one.
func (a *App) currentMachine() *model.Machine {
	m := a.session.State().CurrentMachine()
	if m == nil {
		dialog.ShowInformation("No machine", "Add or select a machine first.", a.window)
	}
	return m
}

// currentMagazine returns the magazine shown in the table, or nil after
// telling the user to pick a machine.
func (a *App) currentMagazine() *model.Magazine {
	if a.currentMachine() == nil {
		return nil
	}
	return a.session.State().CurrentMagazine()
}

// saveAs asks for a target path and runs write against it.
func (a *App) saveAs(title, defaultName string, exts []string, write func(path string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		// The writers below create the file themselves.
		writer.Close()

		if err := write(path); err != nil {
			a.logger.Error("export failed", zap.String("export", title), zap.String("path", path), zap.Error(err))
			dialog.ShowError(err, a.window)
			return
		}
		a.config.AddRecentExport(path)
		if err := a.saveConfig(); err != nil {
			a.logger.Warn("failed to record recent export", zap.Error(err))
		}
		a.logger.Info("exported", zap.String("export", title), zap.String("path", path))
		dialog.ShowInformation("Export Complete", fmt.Sprintf("%s saved to:\n%s", title, path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	if len(exts) > 0 {
		d.SetFilter(storage.NewExtensionFileFilter(exts))
	}
	d.Show()
}

func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
}

func (a *App) exportLoadSheet() {
	m := a.currentMachine()
	if m == nil {
		return
	}
	machine := m.Clone()
	a.saveAs("Load sheet", fileSafe(machine.Name)+"-load-sheet.pdf", []string{".pdf"}, func(path string) error {
		return export.ExportLoadSheet(path, machine)
	})
}

func (a *App) exportLabels() {
	m := a.currentMachine()
	if m == nil {
		return
	}
	machine := m.Clone()
	a.saveAs("Slot labels", fileSafe(machine.Name)+"-labels.pdf", []string{".pdf"}, func(path string) error {
		return export.ExportLabels(path, machine)
	})
}

func (a *App) exportWorkbook() {
	m := a.currentMachine()
	if m == nil {
		return
	}
	machine := m.Clone()
	a.saveAs("Workbook", fileSafe(machine.Name)+".xlsx", []string{".xlsx"}, func(path string) error {
		return export.ExportWorkbook(path, machine)
	})
}

func (a *App) exportCarouselDXF() {
	current := a.currentMagazine()
	if current == nil {
		return
	}
	mag := current.Clone()
	a.saveAs("Carousel drawing", fileSafe(mag.Name)+".dxf", []string{".dxf"}, func(path string) error {
		return export.ExportCarouselDXF(path, mag, carouselPocket)
	})
}

func (a *App) exportToolTable() {
	current := a.currentMagazine()
	if current == nil {
		return
	}
	mag := current.Clone()
	table, err := gcode.ToolTable(&mag, a.config.ToolTableDialect, a.config.ToolNumberOffset)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	name := fileSafe(mag.Name) + ".tbl"
	a.saveAs("Tool table", name, []string{".tbl", ".txt"}, func(path string) error {
		if err := os.WriteFile(path, []byte(table), 0644); err != nil {
			return fmt.Errorf("failed to write tool table: %w", err)
		}
		return nil
	})
}

func (a *App) exportLibraryJSON() {
	lib := a.session.State().Library.Clone()
	a.saveAs("Library", "toolcrib-library.json", []string{".json"}, func(path string) error {
		return project.ExportLibrary(path, lib)
	})
}

// ─── Import Functions ──────────────────────────────────────

func (a *App) importLibraryFile() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := importer.ImportFile(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".xlsx", ".xlsm"}))
	d.Show()
}

func (a *App) importLibraryJSON() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		st, added, err := project.ImportLibrary(path, a.session.Snapshot())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if added == 0 {
			dialog.ShowInformation("Import Complete", "No new entries found; everything in the file is already known.", a.window)
			return
		}
		st.ApplyColors()
		a.restore("Import Library", st)
		a.logger.Info("library imported", zap.String("path", path), zap.Int("added", added))
		dialog.ShowInformation("Import Complete", fmt.Sprintf("Successfully imported %d library entries.", added), a.window)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

func (a *App) handleImportResult(result importer.ImportResult) {
	// Show errors if any
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	// Warnings are logged, not shown
	for _, w := range result.Warnings {
		a.logger.Warn("import warning", zap.String("warning", w))
	}

	if result.Count() == 0 {
		return
	}

	var failed []string
	a.apply("Import Library", func() error {
		for _, t := range result.Tools {
			if err := a.session.ImportTool(t); err != nil {
				failed = append(failed, fmt.Sprintf("%s: %v", t.Name, err))
			}
		}
		for _, h := range result.Holders {
			if err := a.session.ImportHolder(h); err != nil {
				failed = append(failed, fmt.Sprintf("%s: %v", h.Name, err))
			}
		}
		for _, ad := range result.Adapters {
			if err := a.session.ImportAdapter(ad); err != nil {
				failed = append(failed, fmt.Sprintf("%s: %v", ad.Name, err))
			}
		}
		return nil
	})

	msg := fmt.Sprintf("Successfully imported %d library entries.", result.Count()-len(failed))
	if len(result.Errors)+len(failed) > 0 {
		msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors)+len(failed))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}

// ─── Program Check ─────────────────────────────────────────

// checkProgram reads a G-code file and reports tool calls the current
// magazine cannot serve.
func (a *App) checkProgram() {
	if a.currentMagazine() == nil {
		return
	}
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to read program: %w", err), a.window)
			return
		}
		mag := a.session.State().CurrentMagazine()
		if mag == nil {
			return
		}
		calls := gcode.ParseToolCalls(string(data))
		issues := gcode.CheckProgram(calls, mag, a.config.ToolNumberOffset)

		summary := fmt.Sprintf("%s uses %d tools: %v", reader.URI().Name(), len(gcode.ToolNumbers(calls)), gcode.ToolNumbers(calls))
		if len(issues) == 0 {
			dialog.ShowInformation("Program Check", summary+"\n\nEvery tool is loaded in "+mag.Name+".", a.window)
			return
		}

		report := widget.NewLabel(strings.Join(gcode.FormatIssues(issues), "\n"))
		report.Wrapping = fyne.TextWrapWord
		content := container.NewBorder(widget.NewLabel(summary), nil, nil, nil, container.NewVScroll(report))
		d := dialog.NewCustom("Program Check", "Close", content, a.window)
		d.Resize(fyne.NewSize(560, 400))
		d.Show()
	}, a.window)
}
