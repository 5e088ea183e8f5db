package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/ToolCrib/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Type,Name,Diameter\nDrill,D6,6\nMill,M10,10\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Type;Name;Diameter\nDrill;D6;6,5\nMill;M10;10\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Type\tName\tDiameter\nDrill\tD6\t6\nMill\tM10\t10\n")
	if got := DetectCSVDelimiter(data); got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Type|Name|Diameter\nDrill|D6|6\nMill|M10|10\n")
	if got := DetectCSVDelimiter(data); got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, ok := DetectColumns([]string{"Type", "Name", "Diameter", "Degree", "Color"})
	if !ok {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Type: 0, Name: 1, Diameter: 2, Degree: 3, Color: 4}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_AliasesAndOrder(t *testing.T) {
	mapping, ok := DetectColumns([]string{" COLOUR ", "Angle", "Kind", "Dia", "Label"})
	if !ok {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Type: 2, Name: 4, Diameter: 3, Degree: 1, Color: 0}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, ok := DetectColumns([]string{"Drill", "D6", "6"})
	if ok {
		t.Error("data row should not be detected as header")
	}
	if mapping.Type != 0 || mapping.Name != 1 || mapping.Diameter != 2 || mapping.Degree != 3 || mapping.Color != 4 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── ImportCSVFromReader Tests ─────────────────────────────

func TestImportCSVFromReader_AllKinds(t *testing.T) {
	data := "Type,Name,Diameter,Degree,Color\n" +
		"Drill,D6,6,,blue\n" +
		"Mill,Endmill 12,12,,#00ff00\n" +
		"TrigonInsert,VBMT,,35,orange\n" +
		"Collet,ER32,,,\n" +
		"Hydraulic,HSK63,,,red\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Tools) != 3 || len(result.Holders) != 1 || len(result.Adapters) != 1 {
		t.Fatalf("unexpected counts: %d tools, %d holders, %d adapters",
			len(result.Tools), len(result.Holders), len(result.Adapters))
	}
	if result.Count() != 5 {
		t.Errorf("expected Count 5, got %d", result.Count())
	}

	drill := result.Tools[0]
	if drill.Type != model.ToolDrill || drill.Diameter != 6 || drill.Color != model.ColorBlue {
		t.Errorf("unexpected drill %+v", drill)
	}
	if drill.ID == "" {
		t.Error("imported tools should get an ID")
	}
	if result.Tools[1].Type != model.ToolMill || result.Tools[1].Color != model.RGB(0, 255, 0) {
		t.Errorf("unexpected mill %+v", result.Tools[1])
	}
	if result.Tools[2].Degree != 35 || result.Tools[2].Category() != model.CategoryLatheInsert {
		t.Errorf("unexpected insert %+v", result.Tools[2])
	}
	if !result.Holders[0].Color.IsZero() {
		t.Errorf("holder without color should leave it unset, got %s", result.Holders[0].Color)
	}
	if result.Adapters[0].Name != "HSK63" || result.Adapters[0].Color != model.ColorRed {
		t.Errorf("unexpected adapter %+v", result.Adapters[0])
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "drill,D3,3\ninsert,CCMT,,80\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(result.Tools))
	}
	if result.Tools[1].Type != model.ToolTrigonInsert || result.Tools[1].Degree != 80 {
		t.Errorf("unexpected insert %+v", result.Tools[1])
	}
}

func TestImportCSVFromReader_SemicolonDecimalComma(t *testing.T) {
	data := "Type;Name;Diameter\nDrill;D6.5;6,5\n"

	result := ImportCSVFromReader(strings.NewReader(data), ';')
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Tools[0].Diameter != 6.5 {
		t.Errorf("expected diameter 6.5, got %f", result.Tools[0].Diameter)
	}
}

func TestImportCSVFromReader_RowErrors(t *testing.T) {
	data := "Type,Name,Diameter,Degree\n" +
		"Drill,NoDia,,\n" +
		"Mill,Bad,abc,\n" +
		"Drill,Huge,500,\n" +
		"Insert,NoAngle,,\n" +
		"Saw,Blade,100,\n" +
		",Nameless,5,\n" +
		"Drill,Good,5,\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')
	if len(result.Errors) != 6 {
		t.Fatalf("expected 6 errors, got %d: %v", len(result.Errors), result.Errors)
	}
	if len(result.Tools) != 1 || result.Tools[0].Name != "Good" {
		t.Errorf("expected the valid row to survive, got %+v", result.Tools)
	}
	if !strings.HasPrefix(result.Errors[0], "Line 2:") {
		t.Errorf("errors should carry the line number, got %q", result.Errors[0])
	}
	if !strings.Contains(result.Errors[4], "Unknown type 'Saw'") {
		t.Errorf("unexpected error %q", result.Errors[4])
	}
}

func TestImportCSVFromReader_UnknownColorWarns(t *testing.T) {
	data := "Type,Name,Color\nCollet,ER20,chartreuse\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Holders) != 1 {
		t.Fatalf("expected the holder to be imported, got %d", len(result.Holders))
	}
	if !result.Holders[0].Color.IsZero() {
		t.Errorf("unknown color should leave it unset, got %s", result.Holders[0].Color)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Unknown color 'chartreuse'") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected unknown color warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_DefaultNames(t *testing.T) {
	data := "Type,Name,Diameter\nMill,,8\nHydraulic,,\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')
	if result.Tools[0].Name != "Mill" {
		t.Errorf("expected default tool name, got %q", result.Tools[0].Name)
	}
	if result.Adapters[0].Name != "Hydraulic" {
		t.Errorf("expected default adapter name, got %q", result.Adapters[0].Name)
	}
}

func TestImportCSVFromReader_MissingTypeColumn(t *testing.T) {
	data := "Name,Diameter\nD6,6\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Type") {
		t.Errorf("expected missing Type column error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_EmptyInput(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

func TestImportCSVFromReader_EmptyRows(t *testing.T) {
	data := "Type,Name,Diameter\n\nDrill,D1,1\n , , \n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Tools) != 1 {
		t.Errorf("expected 1 tool, got %d", len(result.Tools))
	}
}

func TestImportResult_Entities(t *testing.T) {
	data := "Type,Name,Diameter\nCollet,ER11,\nDrill,D2,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	entities := result.Entities()
	if len(entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(entities))
	}
	if entities[0].EntityKind() != model.KindTool || entities[1].EntityKind() != model.KindHolder {
		t.Error("entities should list tools before holders")
	}
}

// ─── File Import Tests ─────────────────────────────────────

func TestImportCSV_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.csv")
	data := "Type;Name;Diameter;Degree\nDrill;D6;6;\nTrigonInsert;T35;;35\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportFile(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Tools) != 2 {
		t.Errorf("expected 2 tools, got %d", len(result.Tools))
	}
	if len(result.Warnings) == 0 || result.Warnings[0] != "Detected semicolon delimiter" {
		t.Errorf("expected delimiter warning first, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/library.csv")
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	result := ImportCSV(path)
	if len(result.Errors) != 1 || result.Errors[0] != "File is empty" {
		t.Errorf("expected empty file error, got %v", result.Errors)
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Type", "Name", "Diameter", "Degree", "Color"},
		{"Mill", "M16", 16, "", "green"},
		{"TrigonInsert", "WNMG", "", 60, ""},
		{"Collet", "ER25", "", "", "gray"},
	})

	result := ImportFile(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Tools) != 2 || len(result.Holders) != 1 {
		t.Fatalf("unexpected counts: %d tools, %d holders", len(result.Tools), len(result.Holders))
	}
	if result.Tools[0].Diameter != 16 || result.Tools[0].Color != model.ColorGreen {
		t.Errorf("unexpected mill %+v", result.Tools[0])
	}
	if result.Tools[1].Degree != 60 {
		t.Errorf("expected degree 60, got %f", result.Tools[1].Degree)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/library.xlsx")
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

// ─── ParseColor Tests ──────────────────────────────────────

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want model.Color
		ok   bool
	}{
		{"Blue", model.ColorBlue, true},
		{"grey", model.ColorGray, true},
		{"#ff0000", model.RGB(255, 0, 0), true},
		{"0f0", model.RGB(0, 255, 0), true},
		{"purple", model.Color{}, false},
		{"#12", model.Color{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
