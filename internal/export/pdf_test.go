package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/ToolCrib/internal/model"
)

// buildTestMachine creates a two-magazine machine with a few loaded slots.
func buildTestMachine(t *testing.T) model.Machine {
	t.Helper()
	m, err := model.NewMachine("DMU 50", 2, 6)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}

	drill := model.NewDrill("Drill 8", 8)
	drill.Color = model.ColorBlue
	mill := model.NewMill("Endmill 12", 12)
	mill.Color = model.ColorGreen
	insert := model.NewTrigonInsert("VBMT", 35)
	insert.Color = model.ColorOrange
	collet := model.NewCollet("ER32")
	collet.Color = model.ColorGray
	hydraulic := model.NewHydraulic("HSK63")
	hydraulic.Color = model.ColorRed

	m.Magazines[0].Slots[0].Tool = &drill
	m.Magazines[0].Slots[0].Holder = &collet
	m.Magazines[0].Slots[0].Comment = "coolant through"
	m.Magazines[0].Slots[2].Tool = &mill
	m.Magazines[0].Slots[2].Adapter = &hydraulic
	m.Magazines[1].Slots[4].Tool = &insert
	return m
}

func assertPDF(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("output file not created: %v", err)
	}
	if len(data) < 4 || string(data[:4]) != "%PDF" {
		t.Error("output file does not start with PDF header")
	}
}

func TestExportLoadSheet_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "load_sheet.pdf")

	if err := ExportLoadSheet(path, buildTestMachine(t)); err != nil {
		t.Fatalf("ExportLoadSheet returned error: %v", err)
	}
	assertPDF(t, path)
}

func TestExportLoadSheet_EmptyMagazines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	m, err := model.NewMachine("Empty", 1, 4)
	if err != nil {
		t.Fatal(err)
	}

	if err := ExportLoadSheet(path, m); err != nil {
		t.Fatalf("empty magazines should still export: %v", err)
	}
	assertPDF(t, path)
}

func TestExportLoadSheet_LargeMagazinePaginates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "large.pdf")
	m, err := model.NewMachine("Big", 1, model.MaxMagazineSize)
	if err != nil {
		t.Fatal(err)
	}
	for i := range m.Magazines[0].Slots {
		tool := model.NewDrill("Drill", float64(i%20)+1)
		m.Magazines[0].Slots[i].Tool = &tool
	}

	if err := ExportLoadSheet(path, m); err != nil {
		t.Fatalf("ExportLoadSheet returned error: %v", err)
	}
	assertPDF(t, path)
}

func TestExportLoadSheet_NoMagazines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.pdf")
	err := ExportLoadSheet(path, model.Machine{Name: "Broken"})
	if err == nil {
		t.Fatal("expected error for machine without magazines")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("no file should be written on error")
	}
}

func TestExportLoadSheet_InvalidPath(t *testing.T) {
	err := ExportLoadSheet("/nonexistent/dir/out.pdf", buildTestMachine(t))
	if err == nil {
		t.Fatal("expected error for invalid output path")
	}
}

func TestCountToolTypes(t *testing.T) {
	m := buildTestMachine(t)

	counts := countToolTypes(&m.Magazines[0])
	if counts[model.ToolDrill] != 1 || counts[model.ToolMill] != 1 {
		t.Errorf("unexpected counts for first magazine: %v", counts)
	}
	if counts[model.ToolTrigonInsert] != 0 {
		t.Errorf("first magazine has no inserts, got %d", counts[model.ToolTrigonInsert])
	}

	counts = countToolTypes(&m.Magazines[1])
	if counts[model.ToolTrigonInsert] != 1 {
		t.Errorf("expected 1 insert in second magazine, got %d", counts[model.ToolTrigonInsert])
	}
}
