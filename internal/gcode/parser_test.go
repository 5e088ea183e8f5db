package gcode

import (
	"testing"
)

func TestParseToolCalls_Empty(t *testing.T) {
	if calls := ParseToolCalls(""); len(calls) != 0 {
		t.Errorf("expected 0 calls for empty input, got %d", len(calls))
	}
}

func TestParseToolCalls_CommentsOnly(t *testing.T) {
	code := `; T1 M6 in a comment
(T2 parenthetical)
%
`
	if calls := ParseToolCalls(code); len(calls) != 0 {
		t.Errorf("expected 0 calls for comments-only input, got %d: %+v", len(calls), calls)
	}
}

func TestParseToolCalls_ToolChange(t *testing.T) {
	code := "G21 G90\nT1 M6\nS12000 M3\nG0 X10 Y10\nT12 M06 (endmill)\n"
	calls := ParseToolCalls(code)
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}
	if calls[0] != (ToolCall{Line: 2, Number: 1, Change: true}) {
		t.Errorf("unexpected first call %+v", calls[0])
	}
	if calls[1] != (ToolCall{Line: 5, Number: 12, Change: true}) {
		t.Errorf("unexpected second call %+v", calls[1])
	}
}

func TestParseToolCalls_PreselectThenChange(t *testing.T) {
	code := "N10 T5\nN20 G0 Z50\nN30 M6\nN40 T6\n"
	calls := ParseToolCalls(code)
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}
	if !calls[0].Change {
		t.Error("M6 on a later line should mark the pending call as a change")
	}
	if calls[1].Change {
		t.Error("T6 without M6 is only a preselect")
	}
}

func TestParseToolCalls_IgnoresOtherWords(t *testing.T) {
	// G-code words like M60 or a T inside a comment must not count
	code := "M60\nG1 X1 (T9)\nt3m6\nG43 H3 ; T4\n"
	calls := ParseToolCalls(code)
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d: %+v", len(calls), calls)
	}
	if calls[0].Number != 3 || !calls[0].Change {
		t.Errorf("unexpected call %+v", calls[0])
	}
}

func TestParseToolCalls_M6WithoutTool(t *testing.T) {
	calls := ParseToolCalls("M6\nT2\n")
	if len(calls) != 1 || calls[0].Change {
		t.Errorf("a leading M6 should not attach to a later call, got %+v", calls)
	}
}

func TestStripComments(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"G0 X1 ; rapid", "G0 X1"},
		{"(a) T1 (b) M6", "T1   M6"},
		{"T1 (unterminated", "T1"},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := stripComments(tt.in); got != tt.want {
			t.Errorf("stripComments(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToolNumbers(t *testing.T) {
	calls := ParseToolCalls("T3 M6\nT1 M6\nT3 M6\n")
	got := ToolNumbers(calls)
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("expected [1 3], got %v", got)
	}
}
