package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/piwi3910/ToolCrib/internal/ui"
)

func runGUI(cmd *cobra.Command, args []string) error {
	session, store, err := openSession()
	if err != nil {
		return err
	}

	application := app.NewWithID("com.piwi3910.toolcrib")
	window := application.NewWindow("ToolCrib - Machine Shop Tool Inventory")

	appUI := ui.NewApp(window, session, store, appConfig, configPath, logger)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.SetOnClosed(appUI.Close)
	window.Resize(fyne.NewSize(1400, 800))
	window.CenterOnScreen()

	window.ShowAndRun()
	return nil
}
