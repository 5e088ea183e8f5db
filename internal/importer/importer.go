// Package importer provides CSV and Excel import of library entities.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/ToolCrib/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Tools    []model.Tool
	Holders  []model.Holder
	Adapters []model.Adapter
	Errors   []string
	Warnings []string
}

// Count returns the number of imported entities.
func (r ImportResult) Count() int {
	return len(r.Tools) + len(r.Holders) + len(r.Adapters)
}

// Entities returns every imported entity in tool, holder, adapter order.
func (r *ImportResult) Entities() []model.Entity {
	out := make([]model.Entity, 0, r.Count())
	for i := range r.Tools {
		out = append(out, &r.Tools[i])
	}
	for i := range r.Holders {
		out = append(out, &r.Holders[i])
	}
	for i := range r.Adapters {
		out = append(out, &r.Adapters[i])
	}
	return out
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Type     int
	Name     int
	Diameter int
	Degree   int
	Color    int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"type":     {"type", "kind", "variant", "tool type", "category"},
	"name":     {"name", "label", "description", "desc", "item", "tool"},
	"diameter": {"diameter", "dia", "d", "ø", "size"},
	"degree":   {"degree", "degrees", "deg", "angle", "°"},
	"color":    {"color", "colour", "rgb", "hex"},
}

// namedColors are the color words accepted besides hex codes.
var namedColors = map[string]model.Color{
	"white":  model.ColorWhite,
	"gray":   model.ColorGray,
	"grey":   model.ColorGray,
	"red":    model.ColorRed,
	"orange": model.ColorOrange,
	"green":  model.ColorGreen,
	"blue":   model.ColorBlue,
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping Type, Name, Diameter, Degree, Color and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Type: -1, Name: -1, Diameter: -1, Degree: -1, Color: -1}
	roles := map[string]*int{
		"type":     &mapping.Type,
		"name":     &mapping.Name,
		"diameter": &mapping.Diameter,
		"degree":   &mapping.Degree,
		"color":    &mapping.Color,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if idx := roles[role]; *idx == -1 {
					*idx = i
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Type: 0, Name: 1, Diameter: 2, Degree: 3, Color: 4}, false
	}
	return mapping, true
}

// ParseColor accepts a hex code or one of the named colors.
func ParseColor(s string) (model.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	c, err := model.ParseHexColor(s)
	if err != nil {
		return model.Color{}, false
	}
	return c, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseMeasure reads a required numeric column. Decimal commas are accepted.
func parseMeasure(row []string, idx int, what, rowLabel string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, what)
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, what, s)
	}
	return v, ""
}

// parseRow extracts one entity from a row using the given column mapping.
// Returns the entity, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.Entity, string, string) {
	typeStr := getCell(row, mapping.Type)
	name := getCell(row, mapping.Name)

	var e model.Entity
	switch strings.ToLower(strings.ReplaceAll(typeStr, " ", "")) {
	case "drill", "mill":
		d, errMsg := parseMeasure(row, mapping.Diameter, "diameter", rowLabel)
		if errMsg != "" {
			return nil, errMsg, ""
		}
		t := model.NewDrill(name, d)
		if strings.EqualFold(typeStr, "mill") {
			t = model.NewMill(name, d)
		}
		if t.Name == "" {
			t.Name = string(t.Type)
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Sprintf("%s: %v", rowLabel, err), ""
		}
		e = &t
	case "trigoninsert", "trigon", "insert":
		deg, errMsg := parseMeasure(row, mapping.Degree, "degree", rowLabel)
		if errMsg != "" {
			return nil, errMsg, ""
		}
		t := model.NewTrigonInsert(name, deg)
		if t.Name == "" {
			t.Name = string(t.Type)
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Sprintf("%s: %v", rowLabel, err), ""
		}
		e = &t
	case "collet":
		h := model.NewCollet(name)
		if h.Name == "" {
			h.Name = string(h.Type)
		}
		e = &h
	case "hydraulic":
		a := model.NewHydraulic(name)
		if a.Name == "" {
			a.Name = string(a.Type)
		}
		e = &a
	case "":
		return nil, fmt.Sprintf("%s: Missing type value", rowLabel), ""
	default:
		return nil, fmt.Sprintf("%s: Unknown type '%s'", rowLabel, typeStr), ""
	}

	// Optional color; left unset so the type color applies when added
	e.SetColor(model.Color{})
	var warning string
	if colorStr := getCell(row, mapping.Color); colorStr != "" {
		if c, ok := ParseColor(colorStr); ok {
			e.SetColor(c)
		} else {
			warning = fmt.Sprintf("%s: Unknown color '%s', using the type color", rowLabel, colorStr)
		}
	}
	return e, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports library entities from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports entities from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports entities from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportFile dispatches on the file extension.
func ImportFile(path string) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path)
	}
	return ImportCSV(path)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if mapping.Type == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: Type")
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		e, errMsg, warning := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		switch v := e.(type) {
		case *model.Tool:
			result.Tools = append(result.Tools, *v)
		case *model.Holder:
			result.Holders = append(result.Holders, *v)
		case *model.Adapter:
			result.Adapters = append(result.Adapters, *v)
		}
	}

	return result
}
