// Package export writes machine and magazine contents to printable and
// exchange formats.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/ToolCrib/internal/model"
)

// LabelInfo holds the data encoded into each slot label's QR code.
type LabelInfo struct {
	Machine  string `json:"machine"`
	Magazine string `json:"magazine"`
	Slot     int    `json:"slot"`
	Tool     string `json:"tool,omitempty"`
	ToolType string `json:"tool_type,omitempty"`
	Measure  string `json:"measure,omitempty"`
	Holder   string `json:"holder,omitempty"`
	Adapter  string `json:"adapter,omitempty"`
	Comment  string `json:"comment,omitempty"`
	ToolID   string `json:"tool_id,omitempty"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per occupied slot of
// every magazine of the machine, laid out on Avery 5160 sheets.
func ExportLabels(path string, machine model.Machine) error {
	labels := CollectLabelInfos(machine)
	if len(labels) == 0 {
		return fmt.Errorf("machine %q has no occupied slots to label", machine.Name)
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for slot %d: %w", label.Slot, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, seq int, info LabelInfo) error {
	// Light border as cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", seq)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Slot heading
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, fitText(pdf, fmt.Sprintf("%s / Slot %d", info.Magazine, info.Slot), textW), "", 1, "L", false, 0, "")

	// Tool line
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	tool := "(no tool)"
	if info.Tool != "" {
		tool = info.Tool
		if info.Measure != "" {
			tool += " " + info.Measure
		}
	}
	pdf.CellFormat(textW, 3.5, fitText(pdf, tool, textW), "", 1, "L", false, 0, "")

	// Holder and adapter
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fitText(pdf, joinNonEmpty(info.Holder, info.Adapter), textW), "", 1, "L", false, 0, "")

	if info.Comment != "" {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, fitText(pdf, info.Comment, textW), "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// fitText truncates s with an ellipsis so it fits into width w.
func fitText(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " | "
		}
		out += p
	}
	return out
}

// CollectLabelInfos lists label data for every occupied slot of the machine,
// magazine by magazine in slot order.
func CollectLabelInfos(machine model.Machine) []LabelInfo {
	var labels []LabelInfo
	for _, mag := range machine.Magazines {
		for _, slot := range model.SortBySlot(mag.Slots, nil) {
			if slot.IsEmpty() {
				continue
			}
			info := LabelInfo{
				Machine:  machine.Name,
				Magazine: mag.Name,
				Slot:     slot.Index,
				Comment:  slot.Comment,
			}
			if slot.Tool != nil {
				info.Tool = slot.Tool.Name
				info.ToolType = string(slot.Tool.Type)
				info.Measure = measureText(*slot.Tool)
				info.ToolID = slot.Tool.ID
			}
			if slot.Holder != nil {
				info.Holder = slot.Holder.Name
			}
			if slot.Adapter != nil {
				info.Adapter = slot.Adapter.Name
			}
			labels = append(labels, info)
		}
	}
	return labels
}

// measureText formats the tool's diameter or angle for print. fpdf core fonts
// are cp1252, so the degree sign is written as \xb0.
func measureText(t model.Tool) string {
	if t.Type == model.ToolTrigonInsert {
		return fmt.Sprintf("%g\xb0", t.Degree)
	}
	return fmt.Sprintf("D%g mm", t.Diameter)
}
