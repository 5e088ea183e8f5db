package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/ToolCrib/internal/export"
	"github.com/piwi3910/ToolCrib/internal/gcode"
	"github.com/piwi3910/ToolCrib/internal/project"
)

var (
	exportMachine  int
	exportMagazine int
	exportOut      string
	exportPocket   float64
)

// exportFormats lists the accepted format arguments.
var exportFormats = []string{"pdf", "labels", "xlsx", "dxf", "tooltable", "library"}

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Write a machine, magazine or the library to a file",
	Long: `Export writes the chosen machine (or magazine) to a file.

Formats:
  pdf        load sheet, one page per magazine
  labels     Avery 5160 slot labels with QR codes
  xlsx       workbook, one sheet per magazine
  dxf        carousel drawing of one magazine
  tooltable  controller tool table of one magazine
  library    library pools as JSON

Example:
  toolcrib export pdf --machine 0 --out dmu50.pdf
  toolcrib export tooltable --machine 0 --magazine 1 --out tool.tbl`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: exportFormats,
	RunE:      runExport,
}

func init() {
	exportCmd.Flags().IntVar(&exportMachine, "machine", -1, "machine index (default: selected machine)")
	exportCmd.Flags().IntVar(&exportMagazine, "magazine", -1, "magazine index for dxf/tooltable (default: current)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file")
	exportCmd.Flags().Float64Var(&exportPocket, "pocket", 80, "pocket diameter in mm for dxf")
	_ = exportCmd.MarkFlagRequired("out")
}

func runExport(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(args[0])
	session, store, err := openSession()
	if err != nil {
		return err
	}
	defer store.Close()
	state := session.State()

	if format == "library" {
		return finishExport(cmd, format, project.ExportLibrary(exportOut, state.Library))
	}

	m, err := resolveMachine(state, exportMachine)
	if err != nil {
		return err
	}

	switch format {
	case "pdf":
		err = export.ExportLoadSheet(exportOut, *m)
	case "labels":
		err = export.ExportLabels(exportOut, *m)
	case "xlsx":
		err = export.ExportWorkbook(exportOut, *m)
	case "dxf", "tooltable":
		mag, merr := resolveMagazine(m, exportMagazine)
		if merr != nil {
			return merr
		}
		if format == "dxf" {
			err = export.ExportCarouselDXF(exportOut, *mag, exportPocket)
			break
		}
		var table string
		table, err = gcode.ToolTable(mag, appConfig.ToolTableDialect, appConfig.ToolNumberOffset)
		if err == nil {
			err = os.WriteFile(exportOut, []byte(table), 0644)
		}
	default:
		return fmt.Errorf("unknown format %q (valid: %s)", format, strings.Join(exportFormats, ", "))
	}
	return finishExport(cmd, format, err)
}

func finishExport(cmd *cobra.Command, format string, err error) error {
	if err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}
	logger.Info("exported", zap.String("format", format), zap.String("path", exportOut))
	appConfig.AddRecentExport(exportOut)
	if err := project.SaveAppConfig(configPath, appConfig); err != nil {
		logger.Warn("failed to record recent export", zap.Error(err))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", exportOut)
	return nil
}
