package export

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/piwi3910/ToolCrib/internal/model"
)

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, buildTestMachine(t)); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	assertPDF(t, path)
}

func TestExportLabels_NoOccupiedSlots(t *testing.T) {
	m, err := model.NewMachine("Empty", 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := ExportLabels(filepath.Join(t.TempDir(), "labels.pdf"), m); err == nil {
		t.Fatal("expected error when nothing is loaded")
	}
}

func TestExportLabels_MultiplePages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.pdf")
	m, err := model.NewMachine("Big", 1, labelsPerPage+5)
	if err != nil {
		t.Fatal(err)
	}
	for i := range m.Magazines[0].Slots {
		holder := model.NewCollet("ER16 with a rather long name that must be truncated")
		m.Magazines[0].Slots[i].Holder = &holder
	}

	if err := ExportLabels(path, m); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	assertPDF(t, path)
}

func TestCollectLabelInfos(t *testing.T) {
	m := buildTestMachine(t)

	infos := CollectLabelInfos(m)
	if len(infos) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(infos))
	}

	first := infos[0]
	if first.Machine != "DMU 50" || first.Magazine != "Magazine 0" || first.Slot != 0 {
		t.Errorf("unexpected first label position: %+v", first)
	}
	if first.Tool != "Drill 8" || first.ToolType != "Drill" {
		t.Errorf("unexpected first label tool: %+v", first)
	}
	if first.Holder != "ER32" || first.Adapter != "" {
		t.Errorf("unexpected first label holder/adapter: %+v", first)
	}
	if first.Comment != "coolant through" {
		t.Errorf("expected comment on first label, got %q", first.Comment)
	}
	if first.ToolID == "" {
		t.Error("expected tool ID on first label")
	}

	if infos[1].Slot != 2 || infos[1].Adapter != "HSK63" {
		t.Errorf("unexpected second label: %+v", infos[1])
	}
	if infos[2].Magazine != "Magazine 1" || infos[2].Measure != "35\xb0" {
		t.Errorf("unexpected third label: %+v", infos[2])
	}
}

func TestLabelInfo_JSONPayload(t *testing.T) {
	info := LabelInfo{Machine: "M", Magazine: "Magazine 0", Slot: 4, Holder: "ER20"}

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["tool"]; ok {
		t.Error("empty tool should be omitted from the QR payload")
	}
	if decoded["slot"] != float64(4) {
		t.Errorf("expected slot 4, got %v", decoded["slot"])
	}
}

func TestMeasureText(t *testing.T) {
	if got := measureText(model.NewMill("M", 6.5)); got != "D6.5 mm" {
		t.Errorf("mill: got %q", got)
	}
	if got := measureText(model.NewTrigonInsert("I", 55)); got != "55\xb0" {
		t.Errorf("insert: got %q", got)
	}
}
