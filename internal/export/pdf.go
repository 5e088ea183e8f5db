package export

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/ToolCrib/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	rowHeight    = 6.0
	swatchSize   = 3.5
	tableTop     = marginTop + headerHeight + 10.0
)

// loadSheetColumns are the load sheet table columns and their widths in mm.
var loadSheetColumns = []struct {
	title string
	width float64
}{
	{"Slot", 15},
	{"Tool", 70},
	{"Holder", 45},
	{"Adapter", 45},
	{"Comment", 92},
}

// ExportLoadSheet generates a PDF load sheet for the machine. Each magazine
// gets its own page listing every slot with its tool, holder, adapter and
// comment, followed by a summary page.
func ExportLoadSheet(path string, machine model.Machine) error {
	if len(machine.Magazines) == 0 {
		return fmt.Errorf("machine %q has no magazines", machine.Name)
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i := range machine.Magazines {
		pdf.AddPage()
		renderMagazinePage(pdf, tr, machine, &machine.Magazines[i])
	}

	pdf.AddPage()
	renderSummaryPage(pdf, tr, machine)

	return pdf.OutputFileAndClose(path)
}

// renderMagazinePage draws the slot table of a single magazine. Tables that
// overflow the page continue on a new page with a repeated header row.
func renderMagazinePage(pdf *fpdf.Fpdf, tr func(string) string, machine model.Machine, mag *model.Magazine) {
	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s: %s", machine.Name, mag.Name)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, tr(title), "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Slots: %d | Occupied: %d | Free: %d", mag.Size(), mag.Occupied(), mag.Size()-mag.Occupied())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	y := drawTableHeader(pdf, tableTop)

	for i, slot := range model.SortBySlot(mag.Slots, nil) {
		if y+rowHeight > pageHeight-marginBottom {
			pdf.AddPage()
			y = drawTableHeader(pdf, marginTop)
		}
		drawSlotRow(pdf, tr, slot, y, i%2 == 0)
		y += rowHeight
	}
}

func drawTableHeader(pdf *fpdf.Fpdf, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	x := marginLeft
	for _, col := range loadSheetColumns {
		pdf.SetXY(x, y)
		pdf.CellFormat(col.width, rowHeight, col.title, "1", 0, "C", true, 0, "")
		x += col.width
	}
	return y + rowHeight
}

// drawSlotRow renders one slot. Occupied cells get a swatch in the
// occupant's display color before the name.
func drawSlotRow(pdf *fpdf.Fpdf, tr func(string) string, slot model.Slot, y float64, shaded bool) {
	// Alternate row background
	if shaded {
		pdf.SetFillColor(245, 245, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)

	x := marginLeft
	pdf.SetXY(x, y)
	pdf.CellFormat(loadSheetColumns[0].width, rowHeight, fmt.Sprintf("%d", slot.Index), "1", 0, "C", true, 0, "")
	x += loadSheetColumns[0].width

	cells := []model.Entity{nil, nil, nil}
	if slot.Tool != nil {
		cells[0] = slot.Tool
	}
	if slot.Holder != nil {
		cells[1] = slot.Holder
	}
	if slot.Adapter != nil {
		cells[2] = slot.Adapter
	}

	for i, e := range cells {
		w := loadSheetColumns[i+1].width
		pdf.SetXY(x, y)
		pdf.CellFormat(w, rowHeight, "", "1", 0, "L", true, 0, "")
		if e != nil {
			c := e.DisplayColor()
			pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
			pdf.SetDrawColor(80, 80, 80)
			pdf.Rect(x+1, y+(rowHeight-swatchSize)/2, swatchSize, swatchSize, "FD")
			pdf.SetDrawColor(0, 0, 0)

			pdf.SetXY(x+swatchSize+2, y)
			text := tr(entityText(e))
			pdf.CellFormat(w-swatchSize-3, rowHeight, fitText(pdf, text, w-swatchSize-3), "", 0, "L", false, 0, "")

			if shaded {
				pdf.SetFillColor(245, 245, 245)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}
		}
		x += w
	}

	commentW := loadSheetColumns[4].width
	pdf.SetXY(x, y)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(commentW, rowHeight, fitText(pdf, tr(slot.Comment), commentW-2), "1", 0, "L", true, 0, "")
}

// entityText is the table text for a slot occupant.
func entityText(e model.Entity) string {
	if t, ok := e.(*model.Tool); ok {
		return t.Summary()
	}
	return fmt.Sprintf("%s (%s)", e.DisplayName(), e.TypeName())
}

// renderSummaryPage lists per-magazine occupancy and the tool count by type.
func renderSummaryPage(pdf *fpdf.Fpdf, tr func(string) string, machine model.Machine) {
	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, tr(machine.Name+" Summary"), "", 0, "L", false, 0, "")

	// Separator line
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Magazines", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{60, 30, 30, 30, 30, 30}
	headers := []string{"Magazine", "Slots", "Occupied", "Drills", "Mills", "Inserts"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetLineWidth(0.2)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i := range machine.Magazines {
		mag := &machine.Magazines[i]
		counts := countToolTypes(mag)
		rowData := []string{
			mag.Name,
			fmt.Sprintf("%d", mag.Size()),
			fmt.Sprintf("%d", mag.Occupied()),
			fmt.Sprintf("%d", counts[model.ToolDrill]),
			fmt.Sprintf("%d", counts[model.ToolMill]),
			fmt.Sprintf("%d", counts[model.ToolTrigonInsert]),
		}

		// Alternate row background
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, tr(cell), "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	footer := fmt.Sprintf("Generated by ToolCrib on %s", time.Now().Format("2006-01-02 15:04"))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, footer, "", 0, "C", false, 0, "")
}

// countToolTypes returns the number of tools of each type in the magazine.
func countToolTypes(mag *model.Magazine) map[model.ToolType]int {
	counts := make(map[model.ToolType]int)
	for _, slot := range mag.Slots {
		if slot.Tool != nil {
			counts[slot.Tool.Type]++
		}
	}
	return counts
}
