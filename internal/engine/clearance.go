package engine

import (
	"fmt"

	"github.com/piwi3910/ToolCrib/internal/model"
)

// ClearanceIssue is an oversize tool whose neighboring pocket is occupied.
type ClearanceIssue struct {
	Slot     int     // Slot.Index of the oversize tool
	Neighbor int     // Slot.Index of the blocking neighbor
	Diameter float64 // diameter of the oversize tool
	Tool     string
}

func (c ClearanceIssue) String() string {
	return fmt.Sprintf("slot %d: %s (Ø%g) needs slot %d empty", c.Slot, c.Tool, c.Diameter, c.Neighbor)
}

// CheckClearance reports rotating tools larger than maxPocket whose
// neighbors on the chain are not empty. The magazine is treated as a closed
// ring, so the first and last slots are neighbors. A maxPocket of zero or
// less disables the check.
func CheckClearance(mag *model.Magazine, maxPocket float64) []ClearanceIssue {
	if mag == nil || maxPocket <= 0 || mag.Size() < 2 {
		return nil
	}
	n := mag.Size()
	var issues []ClearanceIssue
	for i, slot := range mag.Slots {
		if slot.Tool == nil || slot.Tool.Category() != model.CategoryRotating {
			continue
		}
		if slot.Tool.Diameter <= maxPocket {
			continue
		}
		for _, j := range neighbors(i, n) {
			if mag.Slots[j].IsEmpty() {
				continue
			}
			issues = append(issues, ClearanceIssue{
				Slot:     slot.Index,
				Neighbor: mag.Slots[j].Index,
				Diameter: slot.Tool.Diameter,
				Tool:     slot.Tool.Name,
			})
		}
	}
	return issues
}

// neighbors returns the distinct ring neighbors of position i.
func neighbors(i, n int) []int {
	prev := (i - 1 + n) % n
	next := (i + 1) % n
	if prev == next {
		return []int{prev}
	}
	return []int{prev, next}
}
