package ui

import (
	"fmt"
	"testing"

	"github.com/piwi3910/ToolCrib/internal/model"
)

func stateWithTools(n int) model.AppState {
	st := model.DefaultAppState()
	for i := 0; i < n; i++ {
		st.Library.AddTool(model.NewDrill(fmt.Sprintf("D%d", i+1), float64(i+1)))
	}
	return st
}

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if h.CanRedo() {
		t.Error("new history should not be redoable")
	}
}

func TestPushAndUndo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(stateWithTools(0), "initial"))
	if !h.CanUndo() {
		t.Fatal("should be able to undo after push")
	}
	if h.UndoLabel() != "initial" {
		t.Errorf("expected undo label 'initial', got %q", h.UndoLabel())
	}

	restored, ok := h.Undo(MakeSnapshot(stateWithTools(1), "current"))
	if !ok {
		t.Fatal("undo should succeed")
	}
	if len(restored.State.Library.Tools) != 0 {
		t.Errorf("expected 0 tools after undo, got %d", len(restored.State.Library.Tools))
	}
	if restored.Label != "initial" {
		t.Errorf("expected label 'initial', got %q", restored.Label)
	}
}

func TestUndoRedo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(stateWithTools(0), "empty"))
	h.Push(MakeSnapshot(stateWithTools(1), "one tool"))
	current := MakeSnapshot(stateWithTools(2), "two tools")

	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("first undo should succeed")
	}
	if len(restored.State.Library.Tools) != 1 {
		t.Errorf("expected 1 tool, got %d", len(restored.State.Library.Tools))
	}

	if !h.CanRedo() {
		t.Fatal("should be able to redo")
	}
	if h.RedoLabel() != "two tools" {
		t.Errorf("expected redo label 'two tools', got %q", h.RedoLabel())
	}
	redone, ok := h.Redo(restored)
	if !ok {
		t.Fatal("redo should succeed")
	}
	if len(redone.State.Library.Tools) != 2 {
		t.Errorf("expected 2 tools after redo, got %d", len(redone.State.Library.Tools))
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(stateWithTools(0), "empty"))
	if _, ok := h.Undo(MakeSnapshot(stateWithTools(1), "one tool")); !ok {
		t.Fatal("undo should succeed")
	}
	if !h.CanRedo() {
		t.Fatal("should be able to redo after undo")
	}

	h.Push(MakeSnapshot(stateWithTools(0), "new action"))
	if h.CanRedo() {
		t.Error("redo stack should be cleared after push")
	}
}

func TestMaxDepth(t *testing.T) {
	h := &History{maxDepth: 3}

	for i := 0; i < 5; i++ {
		h.Push(MakeSnapshot(stateWithTools(i), fmt.Sprintf("step %d", i)))
	}
	if len(h.undoStack) != 3 {
		t.Fatalf("expected undo stack capped at 3, got %d", len(h.undoStack))
	}
	if h.undoStack[0].Label != "step 2" {
		t.Errorf("oldest entries should be dropped, got %q", h.undoStack[0].Label)
	}
}

func TestUndoRedoEmpty(t *testing.T) {
	h := NewHistory()
	if _, ok := h.Undo(Snapshot{}); ok {
		t.Error("undo on empty history should fail")
	}
	if _, ok := h.Redo(Snapshot{}); ok {
		t.Error("redo on empty history should fail")
	}
	if h.UndoLabel() != "" {
		t.Errorf("expected empty undo label, got %q", h.UndoLabel())
	}
}

func TestClear(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(stateWithTools(1), "a"))
	h.Push(MakeSnapshot(stateWithTools(2), "b"))
	h.Undo(MakeSnapshot(stateWithTools(3), "c"))

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("history should be empty after Clear")
	}
}

func TestMakeSnapshot_IsDeepCopy(t *testing.T) {
	st := stateWithTools(1)
	m, err := model.NewMachine("M", 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	st.Machines = append(st.Machines, m)

	snap := MakeSnapshot(st, "copy")

	st.Library.Tools[0].Name = "changed"
	st.Machines[0].Magazines[0].Slots[0].Comment = "changed"

	if snap.State.Library.Tools[0].Name != "D1" {
		t.Error("library change leaked into snapshot")
	}
	if snap.State.Machines[0].Magazines[0].Slots[0].Comment != "" {
		t.Error("slot change leaked into snapshot")
	}
}
