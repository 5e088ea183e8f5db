package gcode

import (
	"fmt"

	"github.com/piwi3910/ToolCrib/internal/model"
)

// IssueKind classifies a problem between a program and a magazine.
type IssueKind int

const (
	// IssueNoSlot means the T number maps outside the magazine.
	IssueNoSlot IssueKind = iota
	// IssueEmptySlot means the mapped slot holds no tool.
	IssueEmptySlot
	// IssueNoHolder means a rotating tool is loaded without a holder.
	IssueNoHolder
)

func (k IssueKind) String() string {
	switch k {
	case IssueNoSlot:
		return "no slot"
	case IssueEmptySlot:
		return "empty slot"
	case IssueNoHolder:
		return "no holder"
	default:
		return "unknown"
	}
}

// ProgramIssue is one problem found for a tool call. Slot is -1 for
// IssueNoSlot.
type ProgramIssue struct {
	Kind IssueKind
	Call ToolCall
	Slot int
}

func (i ProgramIssue) String() string {
	switch i.Kind {
	case IssueNoSlot:
		return fmt.Sprintf("line %d: T%d has no slot in the magazine", i.Call.Line, i.Call.Number)
	case IssueEmptySlot:
		return fmt.Sprintf("line %d: T%d maps to slot %d, which has no tool", i.Call.Line, i.Call.Number, i.Slot)
	default:
		return fmt.Sprintf("line %d: T%d in slot %d has no holder", i.Call.Line, i.Call.Number, i.Slot)
	}
}

// SlotForTool maps a T number to a slot index. With offset 1, T1 is slot 0.
func SlotForTool(number, offset int) int {
	return number - offset
}

// ToolForSlot is the inverse of SlotForTool.
func ToolForSlot(index, offset int) int {
	return index + offset
}

// CheckProgram maps each tool call to a slot of mag and reports calls whose
// slot is missing or empty, and rotating tools loaded without a holder.
// Each T number is reported at most once, at its first call.
func CheckProgram(calls []ToolCall, mag *model.Magazine, offset int) []ProgramIssue {
	var issues []ProgramIssue
	seen := make(map[int]bool)

	for _, call := range calls {
		if seen[call.Number] {
			continue
		}
		seen[call.Number] = true

		idx := SlotForTool(call.Number, offset)
		slot := mag.SlotByIndex(idx)
		switch {
		case slot == nil:
			issues = append(issues, ProgramIssue{Kind: IssueNoSlot, Call: call, Slot: -1})
		case slot.Tool == nil:
			issues = append(issues, ProgramIssue{Kind: IssueEmptySlot, Call: call, Slot: idx})
		case slot.Tool.Category() == model.CategoryRotating && slot.Holder == nil:
			issues = append(issues, ProgramIssue{Kind: IssueNoHolder, Call: call, Slot: idx})
		}
	}
	return issues
}

// FormatIssues produces human-readable messages from program issues.
func FormatIssues(issues []ProgramIssue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.String())
	}
	return out
}
