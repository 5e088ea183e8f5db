package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ToolCrib/internal/model"
)

var (
	listMachine int
	listFilter  string
	listSort    string
	listLibrary bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print machines, magazines and slot contents",
	Long: `List prints every magazine of every machine, or of one machine with
--machine. --filter and --sort apply the same projection as the magazine
table in the desktop application.

Example:
  toolcrib list
  toolcrib list --machine 0 --sort Diameter
  toolcrib list --library`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVar(&listMachine, "machine", -1, "machine index (default: all)")
	listCmd.Flags().StringVar(&listFilter, "filter", "All", "tool category: All, Rotating, LatheInsert, Empty")
	listCmd.Flags().StringVar(&listSort, "sort", "Slot", "sort key: Slot, Diameter, Degree")
	listCmd.Flags().BoolVar(&listLibrary, "library", false, "list the library instead of the machines")
}

func runList(cmd *cobra.Command, args []string) error {
	session, store, err := openSession()
	if err != nil {
		return err
	}
	defer store.Close()
	state := session.State()
	out := cmd.OutOrStdout()

	if listLibrary {
		return writeLibrary(cmd, &state.Library)
	}

	view, err := parseView(listFilter, listSort)
	if err != nil {
		return err
	}

	machines := state.Machines
	if listMachine >= 0 {
		m, err := resolveMachine(state, listMachine)
		if err != nil {
			return err
		}
		machines = []model.Machine{*m}
	}
	if len(machines) == 0 {
		fmt.Fprintln(out, "No machines defined.")
		return nil
	}

	for _, m := range machines {
		fmt.Fprintf(out, "%s\n", m.Name)
		for i := range m.Magazines {
			mag := &m.Magazines[i]
			if err := writeSlotTable(out, mag, view.Project(mag), appConfig.ToolNumberOffset); err != nil {
				return err
			}
		}
		fmt.Fprintln(out)
	}
	return nil
}

// parseView builds the projection settings from flag values.
func parseView(filter, sort string) (model.ViewSettings, error) {
	var v model.ViewSettings
	c, err := model.ParseToolCategory(filter)
	if err != nil {
		return v, err
	}
	k, ok := model.ParseSortKey(sort)
	if !ok {
		return v, fmt.Errorf("unknown sort key %q", sort)
	}
	v.SelectFilter(c)
	v.SelectSort(k)
	return v, nil
}

func writeLibrary(cmd *cobra.Command, lib *model.Library) error {
	out := cmd.OutOrStdout()
	for _, kind := range model.EntityKinds() {
		entries := lib.List(kind)
		fmt.Fprintf(out, "%ss (%d)\n", kind, len(entries))
		for i, e := range entries {
			text := e.DisplayName()
			if t, ok := e.(*model.Tool); ok {
				text = t.Summary()
			}
			fmt.Fprintf(out, "  %d. %s [%s, %s]\n", i+1, text, e.TypeName(), e.DisplayColor().Hex())
		}
	}
	return nil
}
