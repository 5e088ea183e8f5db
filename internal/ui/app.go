// Package ui provides the ToolCrib desktop interface.
package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	"go.uber.org/zap"

	"github.com/piwi3910/ToolCrib/internal/engine"
	"github.com/piwi3910/ToolCrib/internal/model"
	"github.com/piwi3910/ToolCrib/internal/project"
	"github.com/piwi3910/ToolCrib/internal/ui/widgets"
)

const carouselSize = 320

// App holds all application state and UI references.
type App struct {
	window     fyne.Window
	session    *engine.Session
	store      project.StateStore
	config     model.AppConfig
	configPath string
	logger     *zap.Logger
	history    *History
	theme      *ToolCribTheme

	tabs *container.AppTabs

	// UI references for dynamic updates
	machineSelect    *widget.Select
	magazineSelect   *widget.Select
	filterSelect     *widget.Select
	sortSelect       *widget.Select
	slotContainer    *fyne.Container
	libraryContainer *fyne.Container
	librarySelect    *widget.RadioGroup
	carousel         *widgets.Carousel
	statusLabel      *widget.Label
	refreshing       bool

	stopAutoSave chan struct{}
}

// NewApp wires the window to a session whose state is persisted in store.
// configPath is where settings changes are written back.
func NewApp(window fyne.Window, session *engine.Session, store project.StateStore,
	cfg model.AppConfig, configPath string, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		window:     window,
		session:    session,
		store:      store,
		config:     cfg,
		configPath: configPath,
		logger:     logger,
		history:    NewHistory(),
		theme:      NewToolCribTheme(),
	}
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Import Library (CSV/Excel)...", func() {
			a.importLibraryFile()
		}),
		fyne.NewMenuItem("Import Library (JSON)...", func() {
			a.importLibraryJSON()
		}),
		fyne.NewMenuItem("Export Library (JSON)...", func() {
			a.exportLibraryJSON()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Load Sheet (PDF)...", func() {
			a.exportLoadSheet()
		}),
		fyne.NewMenuItem("Export Slot Labels (PDF)...", func() {
			a.exportLabels()
		}),
		fyne.NewMenuItem("Export Workbook (Excel)...", func() {
			a.exportWorkbook()
		}),
		fyne.NewMenuItem("Export Carousel (DXF)...", func() {
			a.exportCarouselDXF()
		}),
		fyne.NewMenuItem("Export Tool Table...", func() {
			a.exportToolTable()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Backup / Restore...", func() {
			a.showBackupDialog()
		}),
		fyne.NewMenuItem("Settings...", func() {
			a.showSettingsDialog()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() {
			a.undo()
		}),
		fyne.NewMenuItem("Redo", func() {
			a.redo()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Add Machine...", func() {
			a.showAddMachineDialog()
		}),
		fyne.NewMenuItem("Add Tool...", func() {
			a.showAddToolDialog()
		}),
		fyne.NewMenuItem("Add Holder...", func() {
			a.showAddHolderDialog()
		}),
		fyne.NewMenuItem("Add Adapter...", func() {
			a.showAddAdapterDialog()
		}),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Check G-code Program...", func() {
			a.checkProgram()
		}),
		fyne.NewMenuItem("Type Colors...", func() {
			a.showColorsDialog()
		}),
		fyne.NewMenuItem("Calculations", func() {
			a.tabs.SelectIndex(2)
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About ToolCrib",
		"ToolCrib - Machine Shop Tool Inventory\n\n"+
			"Tracks tools, holders and adapters across\n"+
			"machine magazines and the tool library.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.applyTheme()

	magazineTab := container.NewTabItem("Magazine", a.buildMagazinePanel())
	libraryTab := container.NewTabItem("Library", a.buildLibraryPanel())
	calcTab := container.NewTabItem("Calculations", a.buildCalculationsPanel())

	a.tabs = container.NewAppTabs(magazineTab, libraryTab, calcTab)
	a.tabs.SetTabLocation(container.TabLocationTop)
	a.tabs.OnSelected = func(tab *container.TabItem) {
		switch tab {
		case libraryTab:
			a.session.SetScreen(model.ScreenLibrary)
		case calcTab:
			a.session.SetScreen(model.ScreenCalculations)
		default:
			a.session.SetScreen(model.ScreenMagazine)
		}
	}
	switch a.session.State().Screen {
	case model.ScreenLibrary:
		a.tabs.Select(libraryTab)
	case model.ScreenCalculations:
		a.tabs.Select(calcTab)
	}

	a.refresh()
	a.startAutoSave()
	return fynetooltip.AddWindowToolTipLayer(a.tabs, a.window.Canvas())
}

// Close stops background work and writes the final state.
func (a *App) Close() {
	if a.stopAutoSave != nil {
		close(a.stopAutoSave)
		a.stopAutoSave = nil
	}
	a.persist()
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close state store", zap.Error(err))
	}
}

// ─── State changes ─────────────────────────────────────────

// apply runs a session mutation. On success the prior state goes on the
// undo stack and the new state is saved; on error nothing is recorded.
func (a *App) apply(label string, fn func() error) bool {
	return a.applyFrom(Snapshot{State: a.session.Snapshot(), Label: label}, fn)
}

// applyFrom is apply for actions that touched the session before fn ran,
// such as a tool move that reset the view. before is what undo returns to.
func (a *App) applyFrom(before Snapshot, fn func() error) bool {
	label := before.Label
	if err := fn(); err != nil {
		a.logger.Warn("action failed", zap.String("action", label), zap.Error(err))
		dialog.ShowError(fmt.Errorf("%s: %w", label, err), a.window)
		a.refresh()
		return false
	}
	a.history.Push(before)
	a.persist()
	a.refresh()
	return true
}

// restore replaces the whole state, recording the old one for undo.
func (a *App) restore(label string, state model.AppState) {
	a.history.Push(Snapshot{State: a.session.Snapshot(), Label: label})
	a.session.Restore(state)
	a.persist()
	a.refresh()
}

func (a *App) persist() {
	if err := a.store.Save(a.session.Snapshot()); err != nil {
		a.logger.Error("failed to save state", zap.Error(err))
		dialog.ShowError(fmt.Errorf("failed to save state: %w", err), a.window)
	}
}

func (a *App) undo() {
	snap, ok := a.history.Undo(Snapshot{State: a.session.Snapshot(), Label: a.history.UndoLabel()})
	if !ok {
		return
	}
	a.session.Restore(snap.State)
	a.persist()
	a.refresh()
	a.setStatus(fmt.Sprintf("Undid %s", snap.Label))
}

func (a *App) redo() {
	snap, ok := a.history.Redo(Snapshot{State: a.session.Snapshot(), Label: a.history.RedoLabel()})
	if !ok {
		return
	}
	a.session.Restore(snap.State)
	a.persist()
	a.refresh()
	a.setStatus(fmt.Sprintf("Redid %s", snap.Label))
}

func (a *App) startAutoSave() {
	if a.config.AutoSaveInterval <= 0 || a.stopAutoSave != nil {
		return
	}
	stop := make(chan struct{})
	a.stopAutoSave = stop
	interval := time.Duration(a.config.AutoSaveInterval) * time.Minute
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fyne.Do(func() {
					a.persist()
					a.logger.Debug("auto-saved state")
				})
			case <-stop:
				return
			}
		}
	}()
}

func (a *App) restartAutoSave() {
	if a.stopAutoSave != nil {
		close(a.stopAutoSave)
		a.stopAutoSave = nil
	}
	a.startAutoSave()
}

// ─── Refresh ───────────────────────────────────────────────

// refresh rebuilds every view from the session state.
func (a *App) refresh() {
	if a.tabs == nil {
		return
	}
	a.refreshing = true
	defer func() { a.refreshing = false }()

	a.refreshSelectors()
	a.refreshMagazine()
	a.refreshLibrary()
}

func (a *App) setStatus(msg string) {
	if a.statusLabel != nil {
		a.statusLabel.SetText(msg)
	}
}
