package gcode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/piwi3910/ToolCrib/internal/model"
)

// ErrUnknownDialect is returned for a tool table dialect that has no writer.
var ErrUnknownDialect = errors.New("unknown tool table dialect")

// tableWriter renders one dialect of tool table.
type tableWriter struct {
	header func(b *strings.Builder, name string)
	entry  func(b *strings.Builder, number, pocket int, slot model.Slot)
}

var tableWriters = map[string]tableWriter{
	model.DialectLinuxCNC: {
		header: func(b *strings.Builder, name string) {
			fmt.Fprintf(b, ";%s\n", name)
		},
		entry: writeLinuxCNCEntry,
	},
	model.DialectGeneric: {
		header: func(b *strings.Builder, name string) {
			fmt.Fprintf(b, "(TOOL TABLE %s)\n", strings.ToUpper(name))
		},
		entry: writeGenericEntry,
	},
}

// ToolTable writes the tools of mag as a controller tool table. Slot i
// becomes tool number i+offset in pocket i+1; empty slots are skipped.
func ToolTable(mag *model.Magazine, dialect string, offset int) (string, error) {
	w, ok := tableWriters[dialect]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDialect, dialect)
	}

	var b strings.Builder
	w.header(&b, mag.Name)
	for _, slot := range model.SortBySlot(mag.Slots, nil) {
		if slot.Tool == nil {
			continue
		}
		w.entry(&b, ToolForSlot(slot.Index, offset), slot.Index+1, slot)
	}
	return b.String(), nil
}

// writeLinuxCNCEntry writes a tool.tbl line. Rotating tools carry their
// diameter; inserts carry the front angle as I.
func writeLinuxCNCEntry(b *strings.Builder, number, pocket int, slot model.Slot) {
	t := slot.Tool
	fmt.Fprintf(b, "T%d P%d", number, pocket)
	if t.Category() == model.CategoryLatheInsert {
		fmt.Fprintf(b, " D0.000 I%.3f", t.Degree)
	} else {
		fmt.Fprintf(b, " D%.3f", t.Diameter)
	}
	fmt.Fprintf(b, " ;%s\n", entryRemark(slot))
}

// writeGenericEntry writes a parenthetical comment line usable in any
// program header.
func writeGenericEntry(b *strings.Builder, number, pocket int, slot model.Slot) {
	fmt.Fprintf(b, "(T%d POCKET %d %s)\n", number, pocket, strings.ToUpper(entryRemark(slot)))
}

// entryRemark describes the slot's tool, holder, adapter and comment.
// Parentheses are replaced so the text is safe inside G-code comments.
func entryRemark(slot model.Slot) string {
	parts := []string{slot.Tool.Summary()}
	if slot.Holder != nil {
		parts = append(parts, slot.Holder.Name)
	}
	if slot.Adapter != nil {
		parts = append(parts, slot.Adapter.Name)
	}
	if slot.Comment != "" {
		parts = append(parts, slot.Comment)
	}
	r := strings.NewReplacer("(", "[", ")", "]", "\n", " ")
	return r.Replace(strings.Join(parts, " / "))
}
