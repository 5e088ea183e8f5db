package model

import "testing"

func TestDefaultTemplates(t *testing.T) {
	ts := DefaultTemplates()

	if len(ts.RotatingTools) != 2 {
		t.Fatalf("expected 2 rotating templates, got %d", len(ts.RotatingTools))
	}
	if ts.RotatingTools[0].Type != ToolDrill || ts.RotatingTools[0].Diameter != 10 {
		t.Errorf("unexpected drill template %+v", ts.RotatingTools[0])
	}
	if ts.RotatingTools[1].Type != ToolMill || ts.RotatingTools[1].Name != "Mill" {
		t.Errorf("unexpected mill template %+v", ts.RotatingTools[1])
	}
	if len(ts.InsertTools) != 1 || ts.InsertTools[0].Degree != 35 {
		t.Errorf("unexpected insert templates %+v", ts.InsertTools)
	}
	if len(ts.Holders) != 1 || ts.Holders[0].Type != HolderCollet {
		t.Errorf("unexpected holder templates %+v", ts.Holders)
	}
	if len(ts.Adapters) != 1 || ts.Adapters[0].Type != AdapterHydraulic {
		t.Errorf("unexpected adapter templates %+v", ts.Adapters)
	}
}

func TestTemplateSetSetColor(t *testing.T) {
	ts := DefaultTemplates()

	if err := ts.SetColor(PoolRotating, 1, ColorRed); err != nil {
		t.Fatalf("SetColor failed: %v", err)
	}
	if ts.RotatingTools[1].Color != ColorRed {
		t.Errorf("expected mill template red, got %s", ts.RotatingTools[1].Color)
	}
	if err := ts.SetColor(PoolHolder, 5, ColorRed); err == nil {
		t.Error("expected error for out of range template")
	}
}

func TestApplyColorsPaintsEveryOccupiedField(t *testing.T) {
	ts := DefaultTemplates()
	ts.Holders[0].Color = ColorGreen
	ts.Adapters[0].Color = ColorBlue

	drill := NewDrill("D5", 5)
	insert := NewTrigonInsert("T", 55)
	collet := NewCollet("ER32")
	hyd := NewHydraulic("HSK")

	slots := []Slot{
		{Index: 0, Tool: &drill},
		// no tool: holder and adapter must still be painted
		{Index: 1, Holder: &collet, Adapter: &hyd},
		{Index: 2, Tool: &insert},
		{Index: 3},
	}
	ApplyColors(slots, &ts)

	if slots[0].Tool.Color != ts.RotatingTools[0].Color {
		t.Errorf("drill color = %s, want %s", slots[0].Tool.Color, ts.RotatingTools[0].Color)
	}
	if slots[1].Holder.Color != ColorGreen {
		t.Errorf("holder color = %s, want green", slots[1].Holder.Color)
	}
	if slots[1].Adapter.Color != ColorBlue {
		t.Errorf("adapter color = %s, want blue", slots[1].Adapter.Color)
	}
	if slots[2].Tool.Color != ts.InsertTools[0].Color {
		t.Errorf("insert color = %s, want %s", slots[2].Tool.Color, ts.InsertTools[0].Color)
	}
	if !slots[3].IsEmpty() {
		t.Error("empty slot should stay empty")
	}
}

func TestRecolorUnknownTypeKeepsColor(t *testing.T) {
	ts := TemplateSet{}
	tool := NewMill("M", 6)
	tool.Color = ColorOrange

	ts.Recolor(&tool)

	if tool.Color != ColorOrange {
		t.Errorf("expected color unchanged, got %s", tool.Color)
	}
}
