package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ToolCrib/internal/engine"
	"github.com/piwi3910/ToolCrib/internal/gcode"
)

var (
	checkMachine  int
	checkMagazine int
)

var checkCmd = &cobra.Command{
	Use:   "check <program>",
	Short: "Verify a G-code program against a magazine",
	Long: `Check reads the T words of a G-code program and reports tool numbers
whose pocket is missing or empty, or holds a rotating tool without a holder.
Oversize tools with occupied neighbor pockets are reported when
max_pocket_diameter is configured. Exits non-zero when problems are found.

Example:
  toolcrib check part.nc --machine 0 --magazine 0`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().IntVar(&checkMachine, "machine", -1, "machine index (default: selected machine)")
	checkCmd.Flags().IntVar(&checkMagazine, "magazine", -1, "magazine index (default: current)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read program: %w", err)
	}

	session, store, err := openSession()
	if err != nil {
		return err
	}
	defer store.Close()

	m, err := resolveMachine(session.State(), checkMachine)
	if err != nil {
		return err
	}
	mag, err := resolveMagazine(m, checkMagazine)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	calls := gcode.ParseToolCalls(string(data))
	fmt.Fprintf(out, "%s: %d tool calls, tools %v\n", args[0], len(calls), gcode.ToolNumbers(calls))

	problems := 0
	for _, msg := range gcode.FormatIssues(gcode.CheckProgram(calls, mag, appConfig.ToolNumberOffset)) {
		fmt.Fprintln(out, "  "+msg)
		problems++
	}
	for _, issue := range engine.CheckClearance(mag, appConfig.MaxPocketDiameter) {
		fmt.Fprintln(out, "  "+issue.String())
		problems++
	}
	if problems > 0 {
		return fmt.Errorf("%d problems in %s on %s/%s", problems, args[0], m.Name, mag.Name)
	}
	fmt.Fprintf(out, "All tools are loaded in %s/%s.\n", m.Name, mag.Name)
	return nil
}
