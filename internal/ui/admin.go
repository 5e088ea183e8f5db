package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/ToolCrib/internal/model"
	"github.com/piwi3910/ToolCrib/internal/project"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	a.session.SetScreen(model.ScreenSettings)
	cfg := a.config

	// Helper to create a float entry bound to a pointer
	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%.1f", *val))
		e.OnChanged = func(text string) {
			if v, err := parseMeasure(text); err == nil {
				*val = v
			}
		}
		return e
	}

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%d", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	logSelect := widget.NewSelect([]string{"debug", "info", "warn", "error"}, func(selected string) {
		cfg.LogLevel = selected
	})
	logSelect.SetSelected(cfg.LogLevel)

	backendSelect := widget.NewSelect([]string{model.BackendJSON, model.BackendSQLite}, func(selected string) {
		cfg.StateBackend = selected
	})
	backendSelect.SetSelected(cfg.StateBackend)

	dataDirEntry := widget.NewEntry()
	dataDirEntry.SetPlaceHolder(project.DefaultConfigDir())
	dataDirEntry.SetText(cfg.DataDir)
	dataDirEntry.OnChanged = func(text string) { cfg.DataDir = text }

	dialectSelect := widget.NewSelect([]string{model.DialectLinuxCNC, model.DialectGeneric}, func(selected string) {
		cfg.ToolTableDialect = selected
	})
	dialectSelect.SetSelected(cfg.ToolTableDialect)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Log Level", logSelect),
		widget.NewFormItem("Auto-Save Interval (min, 0=off)", intEntry(&cfg.AutoSaveInterval)),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Storage Backend", backendSelect),
		widget.NewFormItem("Data Directory", dataDirEntry),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Max Pocket Diameter (mm, 0=off)", floatEntry(&cfg.MaxPocketDiameter)),
		widget.NewFormItem("T-Number of Slot 0", intEntry(&cfg.ToolNumberOffset)),
		widget.NewFormItem("Tool Table Dialect", dialectSelect),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			a.session.ResetStates()
			if !ok {
				return
			}
			if err := cfg.Validate(); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			storageChanged := cfg.StateBackend != a.config.StateBackend || cfg.DataDir != a.config.DataDir
			a.config = cfg
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
				return
			}
			a.applyTheme()
			a.restartAutoSave()
			a.refresh()
			msg := "Application settings have been saved."
			if storageChanged {
				msg += "\n\nThe new storage location is used after a restart."
			}
			dialog.ShowInformation("Settings Saved", msg, a.window)
		},
		a.window,
	)
	d.Resize(fyne.NewSize(520, 480))
	d.Show()
}

// showBackupDialog displays the backup and restore dialog.
func (a *App) showBackupDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			if err := project.ExportAllData(path, a.config, a.session.Snapshot()); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				a.logger.Info("backup exported", zap.String("path", path))
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("toolcrib-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your machines, library and settings.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					path := reader.URI().Path()
					backup, err := project.ImportAllData(path)
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.config = backup.Config
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					a.applyTheme()
					a.restore("Import Backup", backup.State)
					a.logger.Info("backup imported", zap.String("path", path), zap.String("created_at", backup.CreatedAt))
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export machines, library, colors and settings to a backup file,\nor restore from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Backup / Restore", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	path := a.configPath
	if path == "" {
		path = project.DefaultConfigPath()
	}
	return project.SaveAppConfig(path, a.config)
}
