package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/piwi3910/ToolCrib/internal/gcode"
	"github.com/piwi3910/ToolCrib/internal/model"
)

// resolveMachine picks machine i, or the selected machine when i < 0.
func resolveMachine(state *model.AppState, i int) (*model.Machine, error) {
	if len(state.Machines) == 0 {
		return nil, fmt.Errorf("no machines defined")
	}
	if i < 0 {
		if m := state.CurrentMachine(); m != nil {
			return m, nil
		}
		return nil, fmt.Errorf("no machine selected; pass --machine")
	}
	if i >= len(state.Machines) {
		return nil, fmt.Errorf("machine %d does not exist (have %d)", i, len(state.Machines))
	}
	return &state.Machines[i], nil
}

// resolveMagazine picks magazine i of m, or its current magazine when i < 0.
func resolveMagazine(m *model.Machine, i int) (*model.Magazine, error) {
	if i < 0 {
		if mag := m.Current(); mag != nil {
			return mag, nil
		}
		i = 0
	}
	mag := m.Magazine(i)
	if mag == nil {
		return nil, fmt.Errorf("%s has no magazine %d", m.Name, i)
	}
	return mag, nil
}

func occupantText(s *model.Slot, kind model.EntityKind) string {
	e := s.Occupant(kind)
	if e == nil {
		return "-"
	}
	if t, ok := e.(*model.Tool); ok {
		return t.Summary()
	}
	return e.DisplayName()
}

// writeSlotTable prints the slots of mag as aligned columns.
func writeSlotTable(w io.Writer, mag *model.Magazine, slots []model.Slot, offset int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s (%d/%d occupied)\n", mag.Name, mag.Occupied(), mag.Size())
	fmt.Fprintln(tw, "  SLOT\tT\tTOOL\tHOLDER\tADAPTER\tCOMMENT")
	for i := range slots {
		s := &slots[i]
		fmt.Fprintf(tw, "  %d\tT%d\t%s\t%s\t%s\t%s\n",
			s.Index, gcode.ToolForSlot(s.Index, offset),
			occupantText(s, model.KindTool),
			occupantText(s, model.KindHolder),
			occupantText(s, model.KindAdapter),
			s.Comment)
	}
	return tw.Flush()
}
