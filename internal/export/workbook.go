package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/ToolCrib/internal/model"
)

var workbookHeaders = []string{"Slot", "Tool Type", "Tool", "Diameter", "Degree", "Holder", "Adapter", "Comment"}

// maxSheetName is the Excel limit on worksheet name length.
const maxSheetName = 31

// ExportWorkbook writes an Excel workbook with one worksheet per magazine.
// Each row is a slot in index order; occupied tool cells are filled with the
// tool's display color.
func ExportWorkbook(path string, machine model.Machine) (retErr error) {
	if len(machine.Magazines) == 0 {
		return fmt.Errorf("machine %q has no magazines", machine.Name)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	fills := make(map[model.Color]int)

	used := make(map[string]bool)
	for i := range machine.Magazines {
		mag := &machine.Magazines[i]
		name := sheetName(mag.Name, i, used)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", name, err)
		}

		if err := writeMagazineSheet(f, name, mag, headerStyle, fills); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeMagazineSheet(f *excelize.File, sheet string, mag *model.Magazine, headerStyle int, fills map[model.Color]int) error {
	for col, h := range workbookHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(workbookHeaders), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	_ = f.SetColWidth(sheet, "B", "C", 18)
	_ = f.SetColWidth(sheet, "F", "G", 16)
	_ = f.SetColWidth(sheet, "H", "H", 30)

	for r, slot := range model.SortBySlot(mag.Slots, nil) {
		row := r + 2
		values := slotRow(slot)
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write slot %d: %w", slot.Index, err)
			}
		}
		if slot.Tool == nil {
			continue
		}
		style, err := fillStyle(f, slot.Tool.Color, fills)
		if err != nil {
			return err
		}
		cell, _ := excelize.CoordinatesToCellName(3, row)
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("failed to color slot %d: %w", slot.Index, err)
		}
	}
	return nil
}

// slotRow returns the cell values for a slot. Missing attributes are left as
// empty strings so the cells stay blank.
func slotRow(slot model.Slot) []any {
	row := []any{slot.Index, "", "", "", "", "", "", slot.Comment}
	if t := slot.Tool; t != nil {
		row[1] = string(t.Type)
		row[2] = t.Name
		if t.Category() == model.CategoryRotating {
			row[3] = t.Diameter
		} else {
			row[4] = t.Degree
		}
	}
	if slot.Holder != nil {
		row[5] = slot.Holder.Name
	}
	if slot.Adapter != nil {
		row[6] = slot.Adapter.Name
	}
	return row
}

// fillStyle returns a cached solid fill style for c.
func fillStyle(f *excelize.File, c model.Color, cache map[model.Color]int) (int, error) {
	if id, ok := cache[c]; ok {
		return id, nil
	}
	hex := strings.TrimPrefix(model.RGB(c.R, c.G, c.B).Hex(), "#")
	id, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{hex}, Pattern: 1},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create fill style: %w", err)
	}
	cache[c] = id
	return id, nil
}

// sheetName makes name usable as a worksheet name: forbidden characters are
// replaced, the length is capped and duplicates get the magazine index.
func sheetName(name string, index int, used map[string]bool) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = fmt.Sprintf("Magazine %d", index)
	}
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	if used[strings.ToLower(name)] {
		suffix := fmt.Sprintf(" (%d)", index)
		if len(name)+len(suffix) > maxSheetName {
			name = name[:maxSheetName-len(suffix)]
		}
		name += suffix
	}
	used[strings.ToLower(name)] = true
	return name
}
