package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/ToolCrib/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Add library entries from a CSV or Excel file",
	Long: `Import reads rows with the columns Type, Name, Diameter, Degree and
Color and appends them to the library. Rows with errors are skipped and
reported.

Example:
  toolcrib import tools.csv
  toolcrib import inventory.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	session, store, err := openSession()
	if err != nil {
		return err
	}
	defer store.Close()
	out := cmd.OutOrStdout()

	result := importer.ImportFile(args[0])
	for _, w := range result.Warnings {
		logger.Warn("import warning", zap.String("warning", w))
	}

	added := 0
	for _, t := range result.Tools {
		if err := session.ImportTool(t); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", t.Name, err))
			continue
		}
		added++
	}
	for _, h := range result.Holders {
		if err := session.ImportHolder(h); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", h.Name, err))
			continue
		}
		added++
	}
	for _, a := range result.Adapters {
		if err := session.ImportAdapter(a); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", a.Name, err))
			continue
		}
		added++
	}

	if added > 0 {
		if err := store.Save(session.Snapshot()); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
	}
	fmt.Fprintf(out, "Imported %d library entries.\n", added)
	if len(result.Errors) > 0 {
		fmt.Fprintf(out, "Skipped %d rows:\n  %s\n", len(result.Errors), strings.Join(result.Errors, "\n  "))
	}
	if added == 0 && len(result.Errors) > 0 {
		return fmt.Errorf("nothing imported from %s", args[0])
	}
	return nil
}
