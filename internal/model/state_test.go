package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAppStateJSONRoundTrip(t *testing.T) {
	st := DefaultAppState()
	m, _ := NewMachine("Lathe", 1, 3)
	insert := NewTrigonInsert("VBMT", 35)
	m.Magazines[0].Slots[2].Tool = &insert
	m.Magazines[0].Slots[2].Comment = "chipped insert"
	st.Machines = append(st.Machines, m)
	sel := 0
	st.Selections.Machine = &sel
	st.Library.AddHolder(NewCollet("ER16"))
	st.View.SelectSort(SortDegree)

	data, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back AppState
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if diff := cmp.Diff(st, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestAppStateNormalize(t *testing.T) {
	bad := 7
	st := AppState{Selections: Selections{Machine: &bad}}

	st.Normalize()

	if st.Machines == nil || st.Library.Tools == nil || st.Library.Holders == nil || st.Library.Adapters == nil {
		t.Error("nil pools should be replaced")
	}
	if st.Selections.Machine != nil {
		t.Error("dangling machine selection should be dropped")
	}
	if len(st.Templates.RotatingTools) == 0 || len(st.Templates.Adapters) == 0 {
		t.Error("missing templates should be restored")
	}
}

func TestAppStateDisplayWithoutMachine(t *testing.T) {
	st := DefaultAppState()
	if got := st.Display(); got != nil {
		t.Errorf("expected nil projection without a machine, got %v", got)
	}
}

func TestAppStateApplyColors(t *testing.T) {
	st := DefaultAppState()
	m, _ := NewMachine("M", 2, 2)
	collet := NewCollet("ER")
	m.Magazines[1].Slots[0].Holder = &collet
	st.Machines = append(st.Machines, m)
	st.Library.AddHolder(NewCollet("ER2"))
	st.Templates.Holders[0].Color = ColorOrange

	st.ApplyColors()

	if st.Machines[0].Magazines[1].Slots[0].Holder.Color != ColorOrange {
		t.Error("holder in a non-current magazine was not painted")
	}
	if st.Library.Holders[0].Color != ColorOrange {
		t.Error("library holder was not painted")
	}
}
